package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagConfig   = "config"
	flagOutput   = "output"
	flagLogLevel = "log-level"
)

// appState is shared by the commands of a single command tree. It is filled
// in by the root PersistentPreRunE before any subcommand runs.
type appState struct {
	viper  *viper.Viper
	config Config
	logger log.Logger
}

// NewRootCmd returns the ibc-core command tree. Every tree owns its viper
// instance so it can be executed more than once in a process.
func NewRootCmd() *cobra.Command {
	a := &appState{
		viper:  viper.New(),
		config: DefaultConfig(),
		logger: log.NewNopLogger(),
	}

	rootCmd := &cobra.Command{
		Use:          "ibc-core",
		Short:        "Inspect IBC host paths, commitments and connection version negotiation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", outputYAML, "output format (yaml|json)")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (debug|info|error|none)")

	rootCmd.AddCommand(
		pathCmd(a),
		commitCmd(a),
		versionCmd(a),
		delayCmd(a),
		configCmd(a),
	)

	return rootCmd
}
