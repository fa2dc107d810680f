package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// TimeoutPacket is called by a module which originally attempted to send a
// packet to a counterparty module, where the timeout height has passed on the
// counterparty chain without the packet being committed, to prove that the
// packet can no longer be executed and to allow the calling module to safely
// perform appropriate state transitions.
//
// On success the packet commitment is deleted and, for ORDERED channels, the
// channel is closed.
func (k Keeper) TimeoutPacket(
	ctx sdk.Context,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		return sdkerrors.Wrapf(
			types.ErrChannelNotFound,
			"port ID (%s) channel ID (%s)", packet.GetSourcePort(), packet.GetSourceChannel(),
		)
	}

	if channel.State != types.OPEN {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	if err := checkPacketDestination(packet, channel); err != nil {
		return err
	}

	connectionEnd, err := k.GetConnection(ctx, channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if err := k.checkTimeoutReached(ctx, connectionEnd, packet, proofHeight); err != nil {
		return err
	}

	if err := k.checkPacketCommitment(ctx, packet); err != nil {
		return err
	}

	if err := k.verifyPacketUnreceived(ctx, connectionEnd, channel, packet, proof, proofHeight, nextSequenceRecv); err != nil {
		return err
	}

	k.timeoutExecuted(ctx, packet, channel)

	// emit an event marking that we have processed the timeout
	emitTimeoutPacketEvent(ctx, packet, channel)

	return nil
}

// TimeoutOnClose is called by a module in order to prove that the channel to
// which an unreceived packet was addressed has been closed, so the packet will
// never be received (even if the timeoutHeight has not yet been reached).
// The local channel may be in any state, an ORDERED channel closed by an
// earlier timeout still has to release its remaining packets.
func (k Keeper) TimeoutOnClose(
	ctx sdk.Context,
	packet types.Packet,
	proof,
	closedProof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		return sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", packet.GetSourcePort(), packet.GetSourceChannel())
	}

	if err := checkPacketDestination(packet, channel); err != nil {
		return err
	}

	connectionEnd, err := k.GetConnection(ctx, channel.ConnectionHops[0])
	if err != nil {
		return err
	}

	if err := k.checkPacketCommitment(ctx, packet); err != nil {
		return err
	}

	counterpartyHops := []string{connectionEnd.Counterparty.ConnectionId}

	counterparty := types.NewCounterparty(packet.GetSourcePort(), packet.GetSourceChannel())
	expectedChannel := types.NewChannel(
		types.CLOSED, channel.Ordering, counterparty, counterpartyHops, channel.Version,
	)

	// check that the opposing channel end has closed
	if err := k.connectionKeeper.VerifyChannelState(
		ctx, connectionEnd, proofHeight, closedProof,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId,
		expectedChannel.Marshal(),
	); err != nil {
		return err
	}

	if err := k.verifyPacketUnreceived(ctx, connectionEnd, channel, packet, proof, proofHeight, nextSequenceRecv); err != nil {
		return err
	}

	k.timeoutExecuted(ctx, packet, channel)

	emitTimeoutOnClosePacketEvent(ctx, packet, channel)

	return nil
}

// checkTimeoutReached requires the packet timeout to have passed on the
// counterparty at the proof height: either the proof height reached a non-zero
// timeout height or the counterparty timestamp at that height reached a
// non-zero timeout timestamp.
func (k Keeper) checkTimeoutReached(
	ctx sdk.Context,
	connectionEnd connectiontypes.ConnectionEnd,
	packet types.Packet,
	proofHeight exported.Height,
) error {
	timeout := types.TimeoutFromPacket(packet)
	if timeout.HeightElapsed(proofHeight) {
		return nil
	}

	if timeout.Timestamp != 0 {
		proofTimestamp, err := k.connectionKeeper.GetTimestampAtHeight(ctx, connectionEnd, proofHeight)
		if err != nil {
			return err
		}

		if timeout.TimestampElapsed(proofTimestamp) {
			return nil
		}

		return sdkerrors.Wrapf(
			types.ErrTimeoutNotReached,
			"proof height (%s) < timeout height (%s) and proof timestamp (%d) < timeout timestamp (%d)",
			proofHeight, timeout.Height, proofTimestamp, timeout.Timestamp,
		)
	}

	return sdkerrors.Wrapf(types.ErrTimeoutNotReached, "proof height (%s) < timeout height (%s)", proofHeight, timeout.Height)
}

// verifyPacketUnreceived proves the packet was never received by the
// counterparty: for ORDERED channels the counterparty's next receive sequence
// must not have passed the packet, for UNORDERED channels no receipt exists.
func (k Keeper) verifyPacketUnreceived(
	ctx sdk.Context,
	connectionEnd connectiontypes.ConnectionEnd,
	channel types.Channel,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
) error {
	switch channel.Ordering {
	case types.ORDERED:
		// check that packet has not been received
		if nextSequenceRecv > packet.GetSequence() {
			return sdkerrors.Wrapf(
				types.ErrPacketAlreadyProcessed,
				"packet already received, next sequence receive > packet sequence (%d > %d)", nextSequenceRecv, packet.GetSequence(),
			)
		}

		// check that the recv sequence is as claimed
		if err := k.connectionKeeper.VerifyNextSequenceRecv(
			ctx, connectionEnd, proofHeight, proof,
			packet.GetDestPort(), packet.GetDestChannel(), nextSequenceRecv,
		); err != nil {
			return err
		}

	case types.UNORDERED:
		if err := k.connectionKeeper.VerifyPacketReceiptAbsence(
			ctx, connectionEnd, proofHeight, proof,
			packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(),
		); err != nil {
			return err
		}

	default:
		panic(sdkerrors.Wrap(types.ErrInvalidChannelOrdering, channel.Ordering.String()))
	}

	return nil
}

// timeoutExecuted deletes the commitment send from this chain.
// If an ordered channel is being used, it sets the channel state to CLOSED.
func (k Keeper) timeoutExecuted(ctx sdk.Context, packet types.Packet, channel types.Channel) {
	k.deletePacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())

	if channel.Ordering == types.ORDERED && channel.State != types.CLOSED {
		k.Logger(ctx).Info("channel state updated", "port-id", packet.GetSourcePort(), "channel-id", packet.GetSourceChannel(), "previous-state", channel.State.String(), "new-state", types.CLOSED.String())

		channel.State = types.CLOSED
		k.SetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), channel)

		defer telemetry.IncrCounter(1, "ibc", "channel", "close-timeout")

		emitChannelClosedEvent(ctx, packet, channel)
	}

	k.Logger(ctx).Info(
		"packet timed-out",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)
}
