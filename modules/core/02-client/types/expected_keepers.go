package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// HostKeeper expected host keeper used to allocate client identifiers and to
// commit client and consensus states.
type HostKeeper interface {
	GenerateClientSequence(ctx sdk.Context) uint64
	SetCommitment(ctx sdk.Context, path string, commitment []byte)
}
