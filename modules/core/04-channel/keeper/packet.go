package keeper

import (
	"bytes"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// SendPacket is called by a module in order to send an IBC packet on a channel.
// The packet sequence generated for the packet to be sent is returned. An error
// is returned if one occurs. The caller must own the channel capability.
func (k Keeper) SendPacket(
	ctx sdk.Context,
	caller sdk.AccAddress,
	sourcePort string,
	sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	if !k.portKeeper.AuthenticateChannelCapability(ctx, sourcePort, sourceChannel, caller) {
		return 0, sdkerrors.Wrapf(types.ErrChannelCapabilityNotFound, "caller %s does not own channel (%s, %s)", caller, sourcePort, sourceChannel)
	}

	channel, found := k.GetChannel(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrap(types.ErrChannelNotFound, sourceChannel)
	}

	if channel.State != types.OPEN {
		return 0, sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel is not OPEN (got %s)", channel.State)
	}

	if timeoutHeight.IsZero() && timeoutTimestamp == 0 {
		return 0, sdkerrors.Wrap(types.ErrZeroTimeout, "packet timeout height and packet timeout timestamp cannot both be 0")
	}

	sequence, found := k.GetNextSequenceSend(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrapf(
			types.ErrSequenceSendNotFound,
			"source port: %s, source channel: %s", sourcePort, sourceChannel,
		)
	}

	// construct packet from given fields and channel state
	packet := types.NewPacket(data, sequence, sourcePort, sourceChannel,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId, timeoutHeight, timeoutTimestamp)

	if err := packet.ValidateBasic(); err != nil {
		return 0, sdkerrors.Wrap(err, "constructed packet failed basic validation")
	}

	connectionEnd, err := k.GetConnection(ctx, channel.ConnectionHops[0])
	if err != nil {
		return 0, err
	}

	// prevent accidental sends with clients that cannot be updated
	latestInfo, err := k.clientKeeper.GetLatestInfo(ctx, connectionEnd.ClientId)
	if err != nil {
		return 0, err
	}

	if latestInfo.Status != exported.Active {
		return 0, sdkerrors.Wrapf(clienttypes.ErrClientNotActive, "cannot send packet using client (%s) with status %s", connectionEnd.ClientId, latestInfo.Status)
	}

	// check if packet is timed out on the receiving chain
	timeout := types.TimeoutFromPacket(packet)
	if timeout.HeightElapsed(latestInfo.LatestHeight) {
		return 0, sdkerrors.Wrapf(
			types.ErrPastTimeoutHeight,
			"receiving chain block height >= packet timeout height (%s >= %s)", latestInfo.LatestHeight, timeoutHeight,
		)
	}

	if timeout.TimestampElapsed(latestInfo.LatestTimestamp) {
		return 0, sdkerrors.Wrapf(
			types.ErrPastTimeoutTimestamp,
			"receiving chain block timestamp >= packet timeout timestamp (%d >= %d)", latestInfo.LatestTimestamp, timeoutTimestamp,
		)
	}

	k.SetNextSequenceSend(ctx, sourcePort, sourceChannel, sequence+1)
	k.SetPacketCommitment(ctx, sourcePort, sourceChannel, packet.GetSequence(), types.CommitPacket(packet))

	emitSendPacketEvent(ctx, packet, channel)

	k.Logger(ctx).Info(
		"packet sent",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", sourcePort,
		"src_channel", sourceChannel,
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	return packet.GetSequence(), nil
}

// RecvPacket is called by a module in order to receive & process an IBC packet
// sent on the corresponding channel end on the counterparty chain.
func (k Keeper) RecvPacket(
	ctx sdk.Context,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
) error {
	channel, found := k.GetChannel(ctx, packet.GetDestPort(), packet.GetDestChannel())
	if !found {
		return sdkerrors.Wrap(types.ErrChannelNotFound, packet.GetDestChannel())
	}

	switch channel.State {
	case types.OPEN:
	case types.FLUSHING, types.FLUSHCOMPLETE:
		// packets sent before the counterparty started its upgrade may still
		// be received while flushing
		recvStartSequence, _ := k.GetRecvStartSequence(ctx, packet.GetDestPort(), packet.GetDestChannel())
		if err := recvStartSequence.CheckFlushWindow(packet.GetSequence()); err != nil {
			return err
		}
	default:
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "expected channel state to be one of [%s, %s, %s], but got %s", types.OPEN, types.FLUSHING, types.FLUSHCOMPLETE, channel.State)
	}

	// packet must come from the channel's counterparty
	if packet.GetSourcePort() != channel.Counterparty.PortId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacketSource,
			"packet source port doesn't match the counterparty's port (%s ≠ %s)", packet.GetSourcePort(), channel.Counterparty.PortId,
		)
	}

	if packet.GetSourceChannel() != channel.Counterparty.ChannelId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacketSource,
			"packet source channel doesn't match the counterparty's channel (%s ≠ %s)", packet.GetSourceChannel(), channel.Counterparty.ChannelId,
		)
	}

	// Connection must be OPEN to receive a packet. It is possible for connection to not yet be open if packet was
	// sent optimistically before connection and channel handshake completed. However, to receive a packet,
	// connection and channel must both be open
	connectionEnd, err := k.getOpenConnection(ctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	// check if packet timed out by comparing it with the latest height of the chain
	selfHeight := k.hostKeeper.GetSelfHeight(ctx)
	selfTimestamp, err := k.hostKeeper.GetHostTimestamp(ctx)
	if err != nil {
		return err
	}

	timeout := types.TimeoutFromPacket(packet)
	if timeout.Elapsed(selfHeight, selfTimestamp) {
		return sdkerrors.Wrap(timeout.ErrTimeoutElapsed(selfHeight, selfTimestamp), "packet timeout elapsed")
	}

	// verify that the counterparty did commit to sending this packet
	if err := k.connectionKeeper.VerifyPacketCommitment(
		ctx, connectionEnd, proofHeight, proof,
		packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(),
		commitmenttypes.PacketCommitmentValue(packet.GetTimeoutHeight(), packet.GetTimeoutTimestamp(), packet.GetData()),
	); err != nil {
		return sdkerrors.Wrap(err, "couldn't verify counterparty packet commitment")
	}

	if err := k.applyReplayProtection(ctx, packet, channel); err != nil {
		return err
	}

	// log that a packet has been received & executed
	k.Logger(ctx).Info(
		"packet received",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	// emit an event that the relayer can query for
	emitRecvPacketEvent(ctx, packet, channel)

	return nil
}

// applyReplayProtection ensures a packet has not already been received
// and performs the necessary state changes to ensure it cannot be received again.
func (k Keeper) applyReplayProtection(ctx sdk.Context, packet types.Packet, channel types.Channel) error {
	switch channel.Ordering {
	case types.UNORDERED:
		// packets from a previous upgrade epoch were either received or
		// timed out before the upgrade completed
		if channel.State == types.OPEN {
			recvStartSequence, found := k.GetRecvStartSequence(ctx, packet.GetDestPort(), packet.GetDestChannel())
			if found && packet.GetSequence() < recvStartSequence.Sequence {
				return sdkerrors.Wrapf(types.ErrPacketAlreadyProcessed, "packet sequence %d < recv start sequence %d", packet.GetSequence(), recvStartSequence.Sequence)
			}
		}

		// check if the packet receipt has been received already for unordered channels
		if _, found := k.GetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()); found {
			return sdkerrors.Wrapf(types.ErrPacketReceiptExists, "sequence %d", packet.GetSequence())
		}

		// All verification complete, update state
		// For unordered channels we must set the receipt so it can be verified on the other side.
		// This receipt does not contain any data, since the packet has not yet been processed,
		// it's just a single store key set to a single byte to indicate that the packet has been received
		k.SetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

	case types.ORDERED:
		// check if the packet is being received in order
		nextSequenceRecv, found := k.GetNextSequenceRecv(ctx, packet.GetDestPort(), packet.GetDestChannel())
		if !found {
			return sdkerrors.Wrapf(
				types.ErrSequenceReceiveNotFound,
				"destination port: %s, destination channel: %s", packet.GetDestPort(), packet.GetDestChannel(),
			)
		}

		if packet.GetSequence() != nextSequenceRecv {
			return sdkerrors.Wrapf(
				types.ErrPacketSequenceOutOfOrder,
				"packet sequence ≠ next receive sequence (%d ≠ %d)", packet.GetSequence(), nextSequenceRecv,
			)
		}

		// All verification complete, update state
		// In ordered case, we must increment nextSequenceRecv
		k.SetNextSequenceRecv(ctx, packet.GetDestPort(), packet.GetDestChannel(), nextSequenceRecv+1)

	default:
		return sdkerrors.Wrapf(types.ErrInvalidChannelOrdering, "channel ordering is %s", channel.Ordering)
	}

	return nil
}

// WriteAcknowledgement writes the packet execution acknowledgement to the state,
// which will be verified by the counterparty chain using AcknowledgePacket. The
// caller must own the capability of the destination channel.
func (k Keeper) WriteAcknowledgement(
	ctx sdk.Context,
	caller sdk.AccAddress,
	packet types.Packet,
	acknowledgement exported.Acknowledgement,
) error {
	if !k.portKeeper.AuthenticateChannelCapability(ctx, packet.GetDestPort(), packet.GetDestChannel(), caller) {
		return sdkerrors.Wrapf(
			types.ErrChannelCapabilityNotFound,
			"caller %s does not own channel (%s, %s)", caller, packet.GetDestPort(), packet.GetDestChannel(),
		)
	}

	channel, found := k.GetChannel(ctx, packet.GetDestPort(), packet.GetDestChannel())
	if !found {
		return sdkerrors.Wrap(types.ErrChannelNotFound, packet.GetDestChannel())
	}

	if channel.State != types.OPEN {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	return k.writeAcknowledgement(ctx, packet, channel, acknowledgement)
}

// WriteReceivedAcknowledgement writes the acknowledgement returned by the
// application when a packet is received. It runs in the same call as
// RecvPacket, so the channel may also be flushing an upgrade.
func (k Keeper) WriteReceivedAcknowledgement(
	ctx sdk.Context,
	packet types.Packet,
	acknowledgement exported.Acknowledgement,
) error {
	channel, found := k.GetChannel(ctx, packet.GetDestPort(), packet.GetDestChannel())
	if !found {
		return sdkerrors.Wrap(types.ErrChannelNotFound, packet.GetDestChannel())
	}

	switch channel.State {
	case types.OPEN, types.FLUSHING, types.FLUSHCOMPLETE:
	default:
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "expected channel state to be one of [%s, %s, %s], but got %s", types.OPEN, types.FLUSHING, types.FLUSHCOMPLETE, channel.State)
	}

	return k.writeAcknowledgement(ctx, packet, channel, acknowledgement)
}

func (k Keeper) writeAcknowledgement(
	ctx sdk.Context,
	packet types.Packet,
	channel types.Channel,
	acknowledgement exported.Acknowledgement,
) error {
	// NOTE: IBC app modules might have written the acknowledgement synchronously on
	// the OnRecvPacket callback so we need to check if the acknowledgement is already
	// set on the store and return an error if so.
	if k.HasPacketAcknowledgement(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()) {
		return sdkerrors.Wrapf(types.ErrAcknowledgementExists, "sequence %d", packet.GetSequence())
	}

	if acknowledgement == nil {
		return sdkerrors.Wrap(types.ErrInvalidAcknowledgement, "acknowledgement cannot be nil")
	}

	bz := acknowledgement.Acknowledgement()
	if len(bz) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}

	// set the acknowledgement so that it can be verified on the other side
	k.SetPacketAcknowledgement(
		ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(),
		commitmenttypes.CommitAcknowledgement(bz),
	)

	// log that a packet acknowledgement has been written
	k.Logger(ctx).Info(
		"acknowledgement written",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	emitWriteAcknowledgementEvent(ctx, packet, channel, bz)

	return nil
}

// AcknowledgePacket is called by a module to process the acknowledgement of a
// packet previously sent by the calling module on a channel to a counterparty
// module on the counterparty chain. AcknowledgePacket will clean up the packet
// commitment, which is no longer necessary since the packet has been received
// and acted upon. It will also increment NextSequenceAck in case of ORDERED channels.
func (k Keeper) AcknowledgePacket(
	ctx sdk.Context,
	packet types.Packet,
	acknowledgement []byte,
	proof []byte,
	proofHeight exported.Height,
) error {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		return sdkerrors.Wrapf(
			types.ErrChannelNotFound,
			"port ID (%s) channel ID (%s)", packet.GetSourcePort(), packet.GetSourceChannel(),
		)
	}

	if channel.State != types.OPEN && channel.State != types.FLUSHING {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "expected channel state to be one of [%s, %s], but got %s", types.OPEN, types.FLUSHING, channel.State)
	}

	// packet must have been sent to the channel's counterparty
	if err := checkPacketDestination(packet, channel); err != nil {
		return err
	}

	connectionEnd, err := k.getOpenConnection(ctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	if err := k.checkPacketCommitment(ctx, packet); err != nil {
		return err
	}

	if err := k.connectionKeeper.VerifyPacketAcknowledgement(
		ctx, connectionEnd, proofHeight, proof, packet.GetDestPort(), packet.GetDestChannel(),
		packet.GetSequence(), acknowledgement,
	); err != nil {
		return err
	}

	switch channel.Ordering {
	case types.ORDERED:
		nextSequenceAck, found := k.GetNextSequenceAck(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
		if !found {
			return sdkerrors.Wrapf(
				types.ErrSequenceAckNotFound,
				"source port: %s, source channel: %s", packet.GetSourcePort(), packet.GetSourceChannel(),
			)
		}

		if packet.GetSequence() != nextSequenceAck {
			return sdkerrors.Wrapf(
				types.ErrPacketSequenceOutOfOrder,
				"packet sequence ≠ next ack sequence (%d ≠ %d)", packet.GetSequence(), nextSequenceAck,
			)
		}

		// All verification complete, in the case of ORDERED channels we must increment nextSequenceAck
		k.SetNextSequenceAck(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), nextSequenceAck+1)

	case types.UNORDERED:
		ackStartSequence, found := k.GetAckStartSequence(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
		if found && packet.GetSequence() < ackStartSequence {
			return sdkerrors.Wrapf(types.ErrPacketAlreadyProcessed, "packet sequence %d < ack start sequence %d", packet.GetSequence(), ackStartSequence)
		}
	}

	// Delete packet commitment, since the packet has been acknowledged, the commitment is no longer necessary
	k.deletePacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())

	// log that a packet has been acknowledged
	k.Logger(ctx).Info(
		"packet acknowledged",
		"sequence", strconv.FormatUint(packet.GetSequence(), 10),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	// emit an event marking that we have processed the acknowledgement
	emitAcknowledgePacketEvent(ctx, packet, channel)

	return nil
}

// checkPacketDestination requires the packet to be addressed to the
// channel's counterparty.
func checkPacketDestination(packet types.Packet, channel types.Channel) error {
	if packet.GetDestPort() != channel.Counterparty.PortId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacketDestination,
			"packet destination port doesn't match the counterparty's port (%s ≠ %s)", packet.GetDestPort(), channel.Counterparty.PortId,
		)
	}

	if packet.GetDestChannel() != channel.Counterparty.ChannelId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacketDestination,
			"packet destination channel doesn't match the counterparty's channel (%s ≠ %s)", packet.GetDestChannel(), channel.Counterparty.ChannelId,
		)
	}

	return nil
}

// checkPacketCommitment requires the packet commitment to still be stored and
// to match the given packet.
func (k Keeper) checkPacketCommitment(ctx sdk.Context, packet types.Packet) error {
	commitment := k.GetPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
	if len(commitment) == 0 {
		return sdkerrors.Wrapf(
			types.ErrPacketCommitmentNotFound,
			"port ID (%s) channel ID (%s) sequence (%d)", packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(),
		)
	}

	packetCommitment := types.CommitPacket(packet)

	// verify we sent the packet and haven't cleared it out yet
	if !bytes.Equal(commitment, packetCommitment) {
		return sdkerrors.Wrapf(types.ErrPacketCommitmentMismatch, "commitment bytes are not equal: got (%X), expected (%X)", packetCommitment, commitment)
	}

	return nil
}
