package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
)

// GetRecvStartSequence returns the receive window recorded when the channel
// last started an upgrade.
func (k Keeper) GetRecvStartSequence(ctx sdk.Context, portID, channelID string) (types.RecvStartSequence, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.RecvStartSequenceKey(portID, channelID))
	if len(bz) == 0 {
		return types.RecvStartSequence{}, false
	}

	var recvStartSequence types.RecvStartSequence
	if err := recvStartSequence.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode recv start sequence for port %s, channel %s: %w", portID, channelID, err))
	}
	return recvStartSequence, true
}

// SetRecvStartSequence stores the receive window of an upgrade.
func (k Keeper) SetRecvStartSequence(ctx sdk.Context, portID, channelID string, recvStartSequence types.RecvStartSequence) {
	ctx.KVStore(k.storeKey).Set(host.RecvStartSequenceKey(portID, channelID), recvStartSequence.Marshal())
}

// GetAckStartSequence returns the first sequence whose acknowledgement
// belongs to the current upgrade epoch.
func (k Keeper) GetAckStartSequence(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.AckStartSequenceKey(portID, channelID))
}

// SetAckStartSequence stores the ack start sequence of an upgrade.
func (k Keeper) SetAckStartSequence(ctx sdk.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore(k.storeKey).Set(host.AckStartSequenceKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

// GetLatestErrorReceiptSequence returns the upgrade sequence of the last
// error receipt written for the channel.
func (k Keeper) GetLatestErrorReceiptSequence(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.LatestErrorReceiptSequenceKey(portID, channelID))
}

// SetLatestErrorReceiptSequence stores the upgrade sequence of the last error receipt.
func (k Keeper) SetLatestErrorReceiptSequence(ctx sdk.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore(k.storeKey).Set(host.LatestErrorReceiptSequenceKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}
