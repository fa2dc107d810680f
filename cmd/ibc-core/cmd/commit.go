package cmd

import (
	"encoding/hex"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
)

const (
	flagHex              = "hex"
	flagTimeoutHeight    = "timeout-height"
	flagTimeoutTimestamp = "timeout-timestamp"
)

// CommitOutput is printed by the commit commands. Value is the verification
// value a counterparty proves and Commitment is what the host stores for it.
type CommitOutput struct {
	Value      string `json:"value" yaml:"value"`
	Commitment string `json:"commitment" yaml:"commitment"`
}

func newCommitOutput(value, commitment []byte) CommitOutput {
	return CommitOutput{
		Value:      hex.EncodeToString(value),
		Commitment: hex.EncodeToString(commitment),
	}
}

func commitCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute the commitment values stored for packets, acknowledgements, receipts and sequences",
	}

	cmd.AddCommand(
		commitPacketCmd(a),
		commitAckCmd(a),
		commitReceiptCmd(a),
		commitNextSequenceCmd(a),
	)

	return cmd
}

func commitPacketCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packet [data]",
		Short: "Compute the commitment of a packet",
		Long: strings.TrimSpace(`Compute the commitment of a packet from its data and timeouts.
At least one of the timeout height and the timeout timestamp must be set.`),
		Example: "ibc-core commit packet 0a0b --hex --timeout-height 1-100",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asHex, err := cmd.Flags().GetBool(flagHex)
			if err != nil {
				return err
			}
			data, err := decodeInput(args[0], asHex)
			if err != nil {
				return err
			}

			timeoutHeight := clienttypes.ZeroHeight()
			heightStr, err := cmd.Flags().GetString(flagTimeoutHeight)
			if err != nil {
				return err
			}
			if heightStr != "" {
				if timeoutHeight, err = clienttypes.ParseHeight(heightStr); err != nil {
					return err
				}
			}

			timestampStr, err := cmd.Flags().GetString(flagTimeoutTimestamp)
			if err != nil {
				return err
			}
			timeoutTimestamp, err := cast.ToUint64E(timestampStr)
			if err != nil {
				return errors.Wrapf(err, "invalid timeout timestamp %q", timestampStr)
			}

			if timeoutHeight.IsZero() && timeoutTimestamp == 0 {
				return sdkerrors.Wrap(channeltypes.ErrZeroTimeout, "set --timeout-height or --timeout-timestamp")
			}

			a.logger.Debug("committing packet", "timeout-height", timeoutHeight.String(), "timeout-timestamp", timeoutTimestamp, "data-length", len(data))

			return a.print(cmd, newCommitOutput(
				commitmenttypes.PacketCommitmentValue(timeoutHeight, timeoutTimestamp, data),
				commitmenttypes.CommitPacket(timeoutHeight, timeoutTimestamp, data),
			))
		},
	}

	cmd.Flags().Bool(flagHex, false, "decode the argument as hex")
	cmd.Flags().String(flagTimeoutHeight, "", "timeout height formatted as {revision}-{height}")
	cmd.Flags().String(flagTimeoutTimestamp, "0", "timeout timestamp in unix nanoseconds")

	return cmd
}

func commitAckCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack [acknowledgement]",
		Short: "Compute the commitment of an acknowledgement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asHex, err := cmd.Flags().GetBool(flagHex)
			if err != nil {
				return err
			}
			ack, err := decodeInput(args[0], asHex)
			if err != nil {
				return err
			}
			if len(ack) == 0 {
				return sdkerrors.Wrap(channeltypes.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
			}

			return a.print(cmd, newCommitOutput(
				commitmenttypes.AcknowledgementValue(ack),
				commitmenttypes.CommitAcknowledgement(ack),
			))
		},
	}

	cmd.Flags().Bool(flagHex, false, "decode the argument as hex")

	return cmd
}

func commitReceiptCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [successful|none]",
		Short: "Compute the commitment of a packet receipt, successful by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := commitmenttypes.ReceiptSuccessful
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "successful":
				case "none":
					kind = commitmenttypes.ReceiptNone
				default:
					return errors.Errorf("unknown receipt kind %q, expected successful or none", args[0])
				}
			}

			return a.print(cmd, newCommitOutput(kind.Bytes(), commitmenttypes.CommitReceipt(kind)))
		},
	}
}

func commitNextSequenceCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "next-seq [sequence]",
		Short: "Compute the commitment of a next sequence counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sequence, err := parseSequence(args[0])
			if err != nil {
				return err
			}

			return a.print(cmd, newCommitOutput(
				commitmenttypes.SequenceValue(sequence),
				commitmenttypes.CommitSequence(sequence),
			))
		},
	}
}
