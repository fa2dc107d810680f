package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
)

// DelayOutput is printed by the delay command.
type DelayOutput struct {
	DelayPeriod          uint64 `json:"delay_period" yaml:"delay_period"`
	ExpectedTimePerBlock uint64 `json:"expected_time_per_block" yaml:"expected_time_per_block"`
	BlockDelay           uint64 `json:"block_delay" yaml:"block_delay"`
}

func delayCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:     "delay [delay-period]",
		Short:   "Convert a connection delay period into the block delay enforced with the configured block time",
		Example: "ibc-core delay 30s",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delayPeriod, err := parseNanoseconds(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid delay period %q", args[0])
			}

			return a.print(cmd, DelayOutput{
				DelayPeriod:          delayPeriod,
				ExpectedTimePerBlock: a.config.ExpectedTimePerBlock,
				BlockDelay:           host.BlockDelay(delayPeriod, a.config.ExpectedTimePerBlock),
			})
		},
	}
}
