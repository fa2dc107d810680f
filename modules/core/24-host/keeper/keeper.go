package keeper

import (
	"fmt"
	"math"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Keeper owns the host-wide state every other IBC keeper builds on: the
// commitment map counterparties prove against, the identifier counters and
// the host configuration.
type Keeper struct {
	storeKey         sdk.StoreKey
	commitmentPrefix []byte
}

// NewKeeper creates a new host Keeper instance
func NewKeeper(key sdk.StoreKey, commitmentPrefix []byte) *Keeper {
	if len(commitmentPrefix) == 0 {
		panic("commitment prefix cannot be empty")
	}

	return &Keeper{
		storeKey:         key,
		commitmentPrefix: commitmentPrefix,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+host.SubModuleName)
}

// GetCommitmentPrefix returns the prefix counterparties use to address this
// host's commitment store.
func (k Keeper) GetCommitmentPrefix() []byte {
	return k.commitmentPrefix
}

// GetHostInfo returns the host-wide record. A missing record is the zero value.
func (k Keeper) GetHostInfo(ctx sdk.Context) host.HostInfo {
	var info host.HostInfo
	bz := ctx.KVStore(k.storeKey).Get(host.HostInfoKey())
	if len(bz) == 0 {
		return info
	}

	if err := info.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode host info: %w", err))
	}
	return info
}

// SetHostInfo stores the host-wide record.
func (k Keeper) SetHostInfo(ctx sdk.Context, info host.HostInfo) {
	ctx.KVStore(k.storeKey).Set(host.HostInfoKey(), info.Marshal())
}

// SetExpectedTimePerBlock sets the expected block time in nanoseconds.
func (k Keeper) SetExpectedTimePerBlock(ctx sdk.Context, expectedTimePerBlock uint64) {
	info := k.GetHostInfo(ctx)
	info.ExpectedTimePerBlock = expectedTimePerBlock
	k.SetHostInfo(ctx, info)
}

// GetExpectedTimePerBlock returns the expected block time in nanoseconds.
func (k Keeper) GetExpectedTimePerBlock(ctx sdk.Context) uint64 {
	return k.GetHostInfo(ctx).ExpectedTimePerBlock
}

// GenerateClientSequence returns the next client sequence and increments the counter.
func (k Keeper) GenerateClientSequence(ctx sdk.Context) uint64 {
	info := k.GetHostInfo(ctx)
	sequence := info.NextClientSequence
	info.NextClientSequence++
	k.SetHostInfo(ctx, info)
	return sequence
}

// GenerateConnectionSequence returns the next connection sequence and increments the counter.
func (k Keeper) GenerateConnectionSequence(ctx sdk.Context) uint64 {
	info := k.GetHostInfo(ctx)
	sequence := info.NextConnectionSequence
	info.NextConnectionSequence++
	k.SetHostInfo(ctx, info)
	return sequence
}

// GenerateChannelSequence returns the next channel sequence and increments the counter.
func (k Keeper) GenerateChannelSequence(ctx sdk.Context) uint64 {
	info := k.GetHostInfo(ctx)
	sequence := info.NextChannelSequence
	info.NextChannelSequence++
	k.SetHostInfo(ctx, info)
	return sequence
}

// GetHostTimestamp returns the block time in unix nanoseconds.
func (Keeper) GetHostTimestamp(ctx sdk.Context) (uint64, error) {
	blockTime := ctx.BlockTime()
	seconds := blockTime.Unix()
	if seconds < 0 {
		return 0, sdkerrors.Wrapf(ibcerrors.ErrOverflow, "block time %s is before the unix epoch", blockTime)
	}

	nanos := uint64(blockTime.Nanosecond())
	if uint64(seconds) > (math.MaxUint64-nanos)/1e9 {
		return 0, sdkerrors.Wrapf(ibcerrors.ErrOverflow, "block time %s does not fit in uint64 nanoseconds", blockTime)
	}

	return uint64(seconds)*1e9 + nanos, nil
}

// GetSelfHeight returns the height of the executing chain.
func (Keeper) GetSelfHeight(ctx sdk.Context) clienttypes.Height {
	return clienttypes.GetSelfHeight(ctx)
}

// CalculateBlockDelay converts a time delay period into a block delay using
// the configured expected time per block.
func (k Keeper) CalculateBlockDelay(ctx sdk.Context, delayPeriod uint64) uint64 {
	return host.BlockDelay(delayPeriod, k.GetExpectedTimePerBlock(ctx))
}

func (k Keeper) commitmentStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), host.CommitmentStoreKeyPrefix())
}

// SetCommitment stores the commitment hash under keccak256(path).
func (k Keeper) SetCommitment(ctx sdk.Context, path string, commitment []byte) {
	k.commitmentStore(ctx).Set(host.CommitmentKey(path), commitment)
}

// GetCommitment returns the commitment stored under the given hashed key, or
// nil if there is none.
func (k Keeper) GetCommitment(ctx sdk.Context, key []byte) []byte {
	return k.commitmentStore(ctx).Get(key)
}

// GetCommitmentAtPath returns the commitment stored for the given path.
func (k Keeper) GetCommitmentAtPath(ctx sdk.Context, path string) []byte {
	return k.GetCommitment(ctx, host.CommitmentKey(path))
}

// HasCommitment returns true if a commitment is stored for the given path.
func (k Keeper) HasCommitment(ctx sdk.Context, path string) bool {
	return k.commitmentStore(ctx).Has(host.CommitmentKey(path))
}

// DeleteCommitment removes the commitment stored for the given path.
func (k Keeper) DeleteCommitment(ctx sdk.Context, path string) {
	k.commitmentStore(ctx).Delete(host.CommitmentKey(path))
}
