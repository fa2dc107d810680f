package cmd

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
)

const (
	flagSupported    = "supported"
	flagCounterparty = "counterparty"
)

func versionCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Connection version negotiation",
	}

	cmd.AddCommand(versionPickCmd(a), versionCompatibleCmd(a))

	return cmd
}

func versionPickCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick the version a connection handshake would negotiate",
		Long: strings.TrimSpace(`Pick the version a connection handshake would negotiate between the
supported versions and the versions proposed by the counterparty. Both files
hold a list of versions, encoded as JSON when the file ends in .json and as
YAML otherwise. The host compatible versions are used if --supported is unset.`),
		Example: "ibc-core version pick --counterparty counterparty.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counterpartyFile, err := cmd.Flags().GetString(flagCounterparty)
			if err != nil {
				return err
			}
			counterpartyVersions, err := readVersions(counterpartyFile)
			if err != nil {
				return err
			}

			supportedVersions := connectiontypes.GetCompatibleVersions()
			supportedFile, err := cmd.Flags().GetString(flagSupported)
			if err != nil {
				return err
			}
			if supportedFile != "" {
				if supportedVersions, err = readVersions(supportedFile); err != nil {
					return err
				}
			}

			for _, version := range append(connectiontypes.CopyVersions(supportedVersions), counterpartyVersions...) {
				if err := connectiontypes.ValidateVersion(version); err != nil {
					return err
				}
			}

			version, err := connectiontypes.PickVersion(supportedVersions, counterpartyVersions)
			if err != nil {
				return err
			}

			a.logger.Info("picked version", "identifier", version.GetIdentifier(), "features", strings.Join(version.GetFeatures(), ","))

			return a.print(cmd, version)
		},
	}

	cmd.Flags().String(flagSupported, "", "file with the versions supported by this chain")
	cmd.Flags().String(flagCounterparty, "", "file with the versions proposed by the counterparty")
	_ = cmd.MarkFlagRequired(flagCounterparty)

	return cmd
}

func versionCompatibleCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "compatible",
		Short: "Print the versions the host supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, connectiontypes.GetCompatibleVersions())
		},
	}
}

// readVersions decodes a list of versions from a JSON or YAML file.
func readVersions(file string) ([]*connectiontypes.Version, error) {
	bz, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read versions file %s", file)
	}

	var versions []*connectiontypes.Version
	if strings.EqualFold(filepath.Ext(file), ".json") {
		err = json.Unmarshal(bz, &versions)
	} else {
		err = yaml.Unmarshal(bz, &versions)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode versions file %s", file)
	}

	if len(versions) == 0 {
		return nil, errors.Errorf("versions file %s holds no versions", file)
	}

	return versions, nil
}
