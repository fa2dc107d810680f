package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	GetClientStatus(ctx sdk.Context, clientID string) exported.Status
	CheckAndGetClient(ctx sdk.Context, clientID string) (exported.LightClientModule, error)
	GetSelfConsensusState(ctx sdk.Context, height exported.Height, hostConsensusStateProof []byte) ([]byte, error)
	GetTimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error)
}

// HostKeeper expected host keeper: commitment store, identifier counters and
// host configuration.
type HostKeeper interface {
	GetCommitmentPrefix() []byte
	GenerateConnectionSequence(ctx sdk.Context) uint64
	SetCommitment(ctx sdk.Context, path string, commitment []byte)
	CalculateBlockDelay(ctx sdk.Context, delayPeriod uint64) uint64
}
