package cmd

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// print writes v to the command output in the configured format.
func (a *appState) print(cmd *cobra.Command, v interface{}) error {
	var (
		bz  []byte
		err error
	)

	switch a.config.Output {
	case outputJSON:
		bz, err = json.MarshalIndent(v, "", "  ")
		bz = append(bz, '\n')
	default:
		bz, err = yaml.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}

	_, err = cmd.OutOrStdout().Write(bz)
	return err
}

// decodeInput returns the raw bytes of a command argument, hex decoding it
// when asHex is set.
func decodeInput(arg string, asHex bool) ([]byte, error) {
	if !asHex {
		return []byte(arg), nil
	}

	bz, err := hex.DecodeString(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex input %q", arg)
	}
	return bz, nil
}
