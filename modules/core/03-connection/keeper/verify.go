package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// VerifyClientState verifies a proof of a client state of the running machine
// stored on the target machine
func (k Keeper) VerifyClientState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	clientState []byte,
) error {
	path := host.ClientStatePath(connection.Counterparty.ClientId)
	if err := k.verifyMembership(ctx, connection, height, false, proof, path, clientState); err != nil {
		return sdkerrors.Wrapf(err, "failed client state verification for target client: %s", connection.ClientId)
	}
	return nil
}

// VerifyClientConsensusState verifies a proof of the consensus state of the
// specified client stored on the target machine.
func (k Keeper) VerifyClientConsensusState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	consensusHeight exported.Height,
	proof []byte,
	consensusState []byte,
) error {
	path := host.FullConsensusStatePath(connection.Counterparty.ClientId, consensusHeight)
	if err := k.verifyMembership(ctx, connection, height, false, proof, path, consensusState); err != nil {
		return sdkerrors.Wrapf(err, "failed consensus state verification for client (%s)", connection.ClientId)
	}
	return nil
}

// VerifyConnectionState verifies a proof of the connection state of the
// specified connection end stored on the target machine.
func (k Keeper) VerifyConnectionState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	connectionID string,
	counterpartyConnection types.ConnectionEnd, // opposite connection
) error {
	path := host.ConnectionPath(connectionID)
	if err := k.verifyMembership(ctx, connection, height, false, proof, path, counterpartyConnection.Marshal()); err != nil {
		return sdkerrors.Wrapf(err, "failed connection state verification for client (%s)", connection.ClientId)
	}
	return nil
}

// VerifyChannelState verifies a proof of the channel state of the specified
// channel end, under the specified port, stored on the target machine.
func (k Keeper) VerifyChannelState(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	channelBz []byte,
) error {
	path := host.ChannelPath(portID, channelID)
	if err := k.verifyMembership(ctx, connection, height, false, proof, path, channelBz); err != nil {
		return sdkerrors.Wrapf(err, "failed channel state verification for client (%s)", connection.ClientId)
	}
	return nil
}

// VerifyPacketCommitment verifies a proof of an outgoing packet commitment at
// the specified port, specified channel, and specified sequence.
func (k Keeper) VerifyPacketCommitment(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	commitmentBytes []byte,
) error {
	path := host.PacketCommitmentPath(portID, channelID, sequence)
	if err := k.verifyMembership(ctx, connection, height, true, proof, path, commitmentBytes); err != nil {
		return sdkerrors.Wrapf(err, "failed packet commitment verification for client (%s)", connection.ClientId)
	}
	return nil
}

// VerifyPacketAcknowledgement verifies a proof of an incoming packet
// acknowledgement at the specified port, specified channel, and specified sequence.
func (k Keeper) VerifyPacketAcknowledgement(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	acknowledgement []byte,
) error {
	path := host.PacketAcknowledgementPath(portID, channelID, sequence)
	value := commitmenttypes.AcknowledgementValue(acknowledgement)
	if err := k.verifyMembership(ctx, connection, height, true, proof, path, value); err != nil {
		return sdkerrors.Wrapf(err, "failed packet acknowledgement verification for client (%s)", connection.ClientId)
	}
	return nil
}

// VerifyPacketReceiptAbsence verifies a proof of the absence of an
// incoming packet receipt at the specified port, specified channel, and
// specified sequence.
func (k Keeper) VerifyPacketReceiptAbsence(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
) error {
	lightClientModule, err := k.activeClient(ctx, connection.ClientId)
	if err != nil {
		return err
	}

	timeDelay := connection.DelayPeriod
	blockDelay := k.hostKeeper.CalculateBlockDelay(ctx, timeDelay)

	if err := lightClientModule.VerifyNonMembership(
		ctx, connection.ClientId, height,
		timeDelay, blockDelay,
		proof, connection.Counterparty.Prefix.Bytes(), host.PacketReceiptPath(portID, channelID, sequence),
	); err != nil {
		return sdkerrors.Wrapf(commitmenttypes.ErrNonMembershipVerificationFailed, "failed packet receipt absence verification for client (%s): %s", connection.ClientId, err)
	}

	return nil
}

// VerifyNextSequenceRecv verifies a proof of the next sequence number to be
// received of the specified channel at the specified port.
func (k Keeper) VerifyNextSequenceRecv(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	nextSequenceRecv uint64,
) error {
	path := host.NextSequenceRecvPath(portID, channelID)
	value := commitmenttypes.SequenceValue(nextSequenceRecv)
	if err := k.verifyMembership(ctx, connection, height, true, proof, path, value); err != nil {
		return sdkerrors.Wrapf(err, "failed next sequence receive verification for client (%s)", connection.ClientId)
	}
	return nil
}

// GetTimestampAtHeight returns the timestamp of the consensus state the
// connection's client stores at the given height.
func (k Keeper) GetTimestampAtHeight(ctx sdk.Context, connection types.ConnectionEnd, height exported.Height) (uint64, error) {
	return k.clientKeeper.GetTimestampAtHeight(ctx, connection.ClientId, height)
}

// verifyMembership proves value at the counterparty path through the
// connection's client. Packet proofs are subject to the connection delay
// period, handshake proofs are not.
func (k Keeper) verifyMembership(
	ctx sdk.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	delayed bool,
	proof []byte,
	path string,
	value []byte,
) error {
	lightClientModule, err := k.activeClient(ctx, connection.ClientId)
	if err != nil {
		return err
	}

	var timeDelay, blockDelay uint64
	if delayed {
		timeDelay = connection.DelayPeriod
		blockDelay = k.hostKeeper.CalculateBlockDelay(ctx, timeDelay)
	}

	if err := lightClientModule.VerifyMembership(
		ctx, connection.ClientId, height,
		timeDelay, blockDelay,
		proof, connection.Counterparty.Prefix.Bytes(), path, value,
	); err != nil {
		return sdkerrors.Wrapf(commitmenttypes.ErrMembershipVerificationFailed, "path %s: %s", path, err)
	}

	return nil
}

func (k Keeper) activeClient(ctx sdk.Context, clientID string) (exported.LightClientModule, error) {
	if err := k.checkClientActive(ctx, clientID); err != nil {
		return nil, err
	}
	return k.clientKeeper.CheckAndGetClient(ctx, clientID)
}
