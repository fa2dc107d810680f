package cmd

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
)

// PathOutput is printed by the path commands. Key is the hex encoded
// commitment store key of the path.
type PathOutput struct {
	Path             string `json:"path" yaml:"path"`
	Key              string `json:"key" yaml:"key"`
	CommitmentPrefix string `json:"commitment_prefix" yaml:"commitment_prefix"`
}

// pathKind describes one canonical path and how to build it from arguments.
type pathKind struct {
	use   string
	short string
	args  int
	build func(args []string) (string, error)
}

var pathKinds = []pathKind{
	{
		use:   "client-state [client-id]",
		short: "Path of a client state",
		args:  1,
		build: func(args []string) (string, error) {
			if err := host.ClientIdentifierValidator(args[0]); err != nil {
				return "", err
			}
			return host.ClientStatePath(args[0]), nil
		},
	},
	{
		use:   "consensus-state [client-id] [height]",
		short: "Path of a consensus state, height formatted as {revision}-{height}",
		args:  2,
		build: func(args []string) (string, error) {
			if err := host.ClientIdentifierValidator(args[0]); err != nil {
				return "", err
			}
			height, err := clienttypes.ParseHeight(args[1])
			if err != nil {
				return "", err
			}
			return host.FullConsensusStatePath(args[0], height), nil
		},
	},
	{
		use:   "connection [connection-id]",
		short: "Path of a connection end",
		args:  1,
		build: func(args []string) (string, error) {
			if err := host.ConnectionIdentifierValidator(args[0]); err != nil {
				return "", err
			}
			return host.ConnectionPath(args[0]), nil
		},
	},
	{
		use:   "channel [port-id] [channel-id]",
		short: "Path of a channel end",
		args:  2,
		build: channelPathBuilder(host.ChannelPath),
	},
	{
		use:   "next-sequence-send [port-id] [channel-id]",
		short: "Path of the next send sequence of a channel",
		args:  2,
		build: channelPathBuilder(host.NextSequenceSendPath),
	},
	{
		use:   "next-sequence-recv [port-id] [channel-id]",
		short: "Path of the next receive sequence of a channel",
		args:  2,
		build: channelPathBuilder(host.NextSequenceRecvPath),
	},
	{
		use:   "next-sequence-ack [port-id] [channel-id]",
		short: "Path of the next acknowledgement sequence of a channel",
		args:  2,
		build: channelPathBuilder(host.NextSequenceAckPath),
	},
	{
		use:   "packet-commitment [port-id] [channel-id] [sequence]",
		short: "Path of a packet commitment",
		args:  3,
		build: packetPathBuilder(host.PacketCommitmentPath),
	},
	{
		use:   "packet-ack [port-id] [channel-id] [sequence]",
		short: "Path of a packet acknowledgement",
		args:  3,
		build: packetPathBuilder(host.PacketAcknowledgementPath),
	},
	{
		use:   "packet-receipt [port-id] [channel-id] [sequence]",
		short: "Path of a packet receipt",
		args:  3,
		build: packetPathBuilder(host.PacketReceiptPath),
	},
}

func channelPathBuilder(fn func(portID, channelID string) string) func([]string) (string, error) {
	return func(args []string) (string, error) {
		if err := validatePortAndChannel(args[0], args[1]); err != nil {
			return "", err
		}
		return fn(args[0], args[1]), nil
	}
}

func packetPathBuilder(fn func(portID, channelID string, sequence uint64) string) func([]string) (string, error) {
	return func(args []string) (string, error) {
		if err := validatePortAndChannel(args[0], args[1]); err != nil {
			return "", err
		}
		sequence, err := parseSequence(args[2])
		if err != nil {
			return "", err
		}
		return fn(args[0], args[1], sequence), nil
	}
}

func validatePortAndChannel(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return err
	}
	return host.ChannelIdentifierValidator(channelID)
}

func parseSequence(arg string) (uint64, error) {
	sequence, err := cast.ToUint64E(arg)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid sequence %q", arg)
	}
	return sequence, nil
}

func pathCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print canonical IBC paths and their commitment store keys",
	}

	for _, kind := range pathKinds {
		kind := kind
		cmd.AddCommand(&cobra.Command{
			Use:   kind.use,
			Short: kind.short,
			Args:  cobra.ExactArgs(kind.args),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := kind.build(args)
				if err != nil {
					return err
				}

				a.logger.Debug("built path", "path", path)

				return a.print(cmd, PathOutput{
					Path:             path,
					Key:              hex.EncodeToString(host.CommitmentKey(path)),
					CommitmentPrefix: a.config.CommitmentPrefix,
				})
			},
		})
	}

	return cmd
}
