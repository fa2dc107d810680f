package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"

	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
)

const (
	keyCommitmentPrefix     = "commitment_prefix"
	keyExpectedTimePerBlock = "expected_time_per_block"
	keyLogLevel             = "log_level"
	keyOutput               = "output"

	outputYAML = "yaml"
	outputJSON = "json"

	// DefaultExpectedTimePerBlock is 10 seconds in nanoseconds.
	DefaultExpectedTimePerBlock = uint64(10 * time.Second)
)

// Config is the ibc-core configuration file.
type Config struct {
	CommitmentPrefix string `json:"commitment_prefix" yaml:"commitment_prefix"`
	// ExpectedTimePerBlock is expressed in nanoseconds.
	ExpectedTimePerBlock uint64 `json:"expected_time_per_block" yaml:"expected_time_per_block"`
	LogLevel             string `json:"log_level" yaml:"log_level"`
	Output               string `json:"output" yaml:"output"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		CommitmentPrefix:     host.DefaultCommitmentPrefix,
		ExpectedTimePerBlock: DefaultExpectedTimePerBlock,
		LogLevel:             "info",
		Output:               outputYAML,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.CommitmentPrefix) == "" {
		return errors.New("commitment prefix cannot be blank")
	}
	if c.Output != outputYAML && c.Output != outputJSON {
		return errors.Errorf("invalid output format %q, expected %s or %s", c.Output, outputYAML, outputJSON)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

// initConfig layers the config file and the command line flags over the
// defaults and builds the logger.
func (a *appState) initConfig(cmd *cobra.Command) error {
	v := a.viper

	defaults := DefaultConfig()
	v.SetDefault(keyCommitmentPrefix, defaults.CommitmentPrefix)
	v.SetDefault(keyExpectedTimePerBlock, defaults.ExpectedTimePerBlock)
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyOutput, defaults.Output)

	cfgPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", cfgPath)
		}
	}

	// flags only take precedence when set explicitly
	if err := v.BindPFlag(keyOutput, cmd.Flags().Lookup(flagOutput)); err != nil {
		return err
	}
	if err := v.BindPFlag(keyLogLevel, cmd.Flags().Lookup(flagLogLevel)); err != nil {
		return err
	}

	timePerBlock, err := parseNanoseconds(v.Get(keyExpectedTimePerBlock))
	if err != nil {
		return errors.Wrap(err, "invalid expected time per block")
	}

	cfg := Config{
		CommitmentPrefix:     v.GetString(keyCommitmentPrefix),
		ExpectedTimePerBlock: timePerBlock,
		LogLevel:             strings.ToLower(v.GetString(keyLogLevel)),
		Output:               strings.ToLower(v.GetString(keyOutput)),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	option, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = log.NewFilter(log.NewTMLogger(log.NewSyncWriter(cmd.ErrOrStderr())), option).With("module", "ibc-core")
	a.logger.Debug("loaded config", "config-file", cfgPath, "commitment-prefix", cfg.CommitmentPrefix, "output", cfg.Output)

	return nil
}

// parseNanoseconds accepts either an integer amount of nanoseconds or a
// duration string such as "5s".
func parseNanoseconds(raw interface{}) (uint64, error) {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" && strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			d, err := cast.ToDurationE(s)
			if err != nil {
				return 0, err
			}
			if d < 0 {
				return 0, fmt.Errorf("duration %s cannot be negative", s)
			}
			return uint64(d), nil
		}
	}

	return cast.ToUint64E(raw)
}

func configCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ibc-core configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, a.config)
		},
	})

	return cmd
}
