package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	GetClientStatus(ctx sdk.Context, clientID string) exported.Status
	GetLatestInfo(ctx sdk.Context, clientID string) (exported.LatestInfo, error)
}

// HostKeeper expected host keeper: the commitment map, the channel
// identifier counter and the host's view of time.
type HostKeeper interface {
	GenerateChannelSequence(ctx sdk.Context) uint64
	SetCommitment(ctx sdk.Context, path string, commitment []byte)
	GetCommitmentAtPath(ctx sdk.Context, path string) []byte
	HasCommitment(ctx sdk.Context, path string) bool
	DeleteCommitment(ctx sdk.Context, path string)
	GetHostTimestamp(ctx sdk.Context) (uint64, error)
	GetSelfHeight(ctx sdk.Context) clienttypes.Height
	CalculateBlockDelay(ctx sdk.Context, delayPeriod uint64) uint64
}

// ConnectionKeeper expected account IBC connection keeper
type ConnectionKeeper interface {
	GetConnection(ctx sdk.Context, connectionID string) (connectiontypes.ConnectionEnd, bool)
	GetTimestampAtHeight(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
	) (uint64, error)
	VerifyChannelState(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
		proof []byte,
		portID,
		channelID string,
		channelBz []byte,
	) error
	VerifyPacketCommitment(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
		proof []byte,
		portID,
		channelID string,
		sequence uint64,
		commitmentBytes []byte,
	) error
	VerifyPacketAcknowledgement(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
		proof []byte,
		portID,
		channelID string,
		sequence uint64,
		acknowledgement []byte,
	) error
	VerifyPacketReceiptAbsence(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
		proof []byte,
		portID,
		channelID string,
		sequence uint64,
	) error
	VerifyNextSequenceRecv(
		ctx sdk.Context,
		connection connectiontypes.ConnectionEnd,
		height exported.Height,
		proof []byte,
		portID,
		channelID string,
		nextSequenceRecv uint64,
	) error
}

// PortKeeper expected account IBC port keeper: the owner-address capability
// maps.
type PortKeeper interface {
	GetPortOwner(ctx sdk.Context, portID string) (sdk.AccAddress, bool)
	ClaimChannelCapability(ctx sdk.Context, portID, channelID string, owner sdk.AccAddress) error
	AuthenticateChannelCapability(ctx sdk.Context, portID, channelID string, caller sdk.AccAddress) bool
}
