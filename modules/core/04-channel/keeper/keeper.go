package keeper

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Keeper defines the IBC channel keeper
type Keeper struct {
	storeKey         sdk.StoreKey
	clientKeeper     types.ClientKeeper
	connectionKeeper types.ConnectionKeeper
	hostKeeper       types.HostKeeper
	portKeeper       types.PortKeeper
}

// NewKeeper creates a new IBC channel Keeper instance
func NewKeeper(
	key sdk.StoreKey,
	clientKeeper types.ClientKeeper,
	connectionKeeper types.ConnectionKeeper,
	hostKeeper types.HostKeeper,
	portKeeper types.PortKeeper,
) *Keeper {
	return &Keeper{
		storeKey:         key,
		clientKeeper:     clientKeeper,
		connectionKeeper: connectionKeeper,
		hostKeeper:       hostKeeper,
		portKeeper:       portKeeper,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GenerateChannelIdentifier returns the next channel identifier.
func (k Keeper) GenerateChannelIdentifier(ctx sdk.Context) string {
	return types.FormatChannelIdentifier(k.hostKeeper.GenerateChannelSequence(ctx))
}

// HasChannel true if the channel with the given identifiers exists in state.
func (k Keeper) HasChannel(ctx sdk.Context, portID, channelID string) bool {
	return ctx.KVStore(k.storeKey).Has(host.ChannelKey(portID, channelID))
}

// GetChannel returns a channel with a particular identifier binded to a specific port
func (k Keeper) GetChannel(ctx sdk.Context, portID, channelID string) (types.Channel, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.ChannelKey(portID, channelID))
	if len(bz) == 0 {
		return types.Channel{}, false
	}

	return types.MustUnmarshalChannel(bz), true
}

// SetChannel sets a channel to the store and commits to it under the channel
// path.
func (k Keeper) SetChannel(ctx sdk.Context, portID, channelID string, channel types.Channel) {
	bz := channel.Marshal()
	ctx.KVStore(k.storeKey).Set(host.ChannelKey(portID, channelID), bz)
	k.hostKeeper.SetCommitment(ctx, host.ChannelPath(portID, channelID), commitmenttypes.Commit(bz))
}

// GetAppVersion gets the version for the specified channel.
func (k Keeper) GetAppVersion(ctx sdk.Context, portID, channelID string) (string, bool) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", false
	}

	return channel.Version, true
}

// GetNextSequenceSend gets a channel's next send sequence from the store
func (k Keeper) GetNextSequenceSend(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceSendKey(portID, channelID))
}

// SetNextSequenceSend sets a channel's next send sequence to the store
func (k Keeper) SetNextSequenceSend(ctx sdk.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore(k.storeKey).Set(host.NextSequenceSendKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

// GetNextSequenceRecv gets a channel's next receive sequence from the store
func (k Keeper) GetNextSequenceRecv(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceRecvKey(portID, channelID))
}

// SetNextSequenceRecv sets a channel's next receive sequence to the store and
// commits to it. The commitment is what counterparties prove against when
// timing out packets on ordered channels.
func (k Keeper) SetNextSequenceRecv(ctx sdk.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore(k.storeKey).Set(host.NextSequenceRecvKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
	k.hostKeeper.SetCommitment(ctx, host.NextSequenceRecvPath(portID, channelID), commitmenttypes.CommitSequence(sequence))
}

// GetNextSequenceAck gets a channel's next ack sequence from the store
func (k Keeper) GetNextSequenceAck(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceAckKey(portID, channelID))
}

// SetNextSequenceAck sets a channel's next ack sequence to the store
func (k Keeper) SetNextSequenceAck(ctx sdk.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore(k.storeKey).Set(host.NextSequenceAckKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

func (k Keeper) getSequence(ctx sdk.Context, key []byte) (uint64, bool) {
	bz := ctx.KVStore(k.storeKey).Get(key)
	if len(bz) == 0 {
		return 0, false
	}

	return sdk.BigEndianToUint64(bz), true
}

// GetPacketCommitment gets the packet commitment hash.
func (k Keeper) GetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) []byte {
	return k.hostKeeper.GetCommitmentAtPath(ctx, host.PacketCommitmentPath(portID, channelID, sequence))
}

// HasPacketCommitment returns true if the packet commitment exists
func (k Keeper) HasPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) bool {
	return k.hostKeeper.HasCommitment(ctx, host.PacketCommitmentPath(portID, channelID, sequence))
}

// SetPacketCommitment sets the packet commitment hash to the store
func (k Keeper) SetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64, commitmentHash []byte) {
	k.hostKeeper.SetCommitment(ctx, host.PacketCommitmentPath(portID, channelID, sequence), commitmentHash)
}

func (k Keeper) deletePacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.hostKeeper.DeleteCommitment(ctx, host.PacketCommitmentPath(portID, channelID, sequence))
}

// GetPacketReceipt gets a packet receipt from the store
func (k Keeper) GetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64) (commitmenttypes.ReceiptKind, bool) {
	commitment := k.hostKeeper.GetCommitmentAtPath(ctx, host.PacketReceiptPath(portID, channelID, sequence))
	receipt, err := commitmenttypes.ReceiptFromCommitment(commitment)
	if err != nil {
		panic(fmt.Errorf("corrupted receipt for port %s, channel %s, sequence %d: %w", portID, channelID, sequence, err))
	}
	return receipt, receipt != commitmenttypes.ReceiptNone
}

// SetPacketReceipt sets an empty packet receipt to the store
func (k Keeper) SetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.hostKeeper.SetCommitment(ctx, host.PacketReceiptPath(portID, channelID, sequence), commitmenttypes.CommitReceipt(commitmenttypes.ReceiptSuccessful))
}

// GetPacketAcknowledgement gets the packet ack hash from the store
func (k Keeper) GetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	bz := k.hostKeeper.GetCommitmentAtPath(ctx, host.PacketAcknowledgementPath(portID, channelID, sequence))
	if len(bz) == 0 {
		return nil, false
	}
	return bz, true
}

// HasPacketAcknowledgement check if the packet ack hash is already on the store
func (k Keeper) HasPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64) bool {
	return k.hostKeeper.HasCommitment(ctx, host.PacketAcknowledgementPath(portID, channelID, sequence))
}

// SetPacketAcknowledgement sets the packet ack hash to the store
func (k Keeper) SetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64, ackHash []byte) {
	k.hostKeeper.SetCommitment(ctx, host.PacketAcknowledgementPath(portID, channelID, sequence), ackHash)
}

// GetConnection wraps the connection keeper's GetConnection function.
func (k Keeper) GetConnection(ctx sdk.Context, connectionID string) (connectiontypes.ConnectionEnd, error) {
	connection, found := k.connectionKeeper.GetConnection(ctx, connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(connectiontypes.ErrConnectionNotFound, "connection-id: %s", connectionID)
	}

	return connection, nil
}

// GetChannelConnection returns the connection ID and state associated with the given port and channel identifier.
func (k Keeper) GetChannelConnection(ctx sdk.Context, portID, channelID string) (string, connectiontypes.ConnectionEnd, error) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(types.ErrChannelNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}

	connectionID := channel.ConnectionHops[0]
	connection, err := k.GetConnection(ctx, connectionID)
	if err != nil {
		return "", connectiontypes.ConnectionEnd{}, err
	}

	return connectionID, connection, nil
}

// initSequences starts every packet counter of a new channel at 1.
func (k Keeper) initSequences(ctx sdk.Context, portID, channelID string) {
	k.SetNextSequenceSend(ctx, portID, channelID, 1)
	k.SetNextSequenceRecv(ctx, portID, channelID, 1)
	k.SetNextSequenceAck(ctx, portID, channelID, 1)
}
