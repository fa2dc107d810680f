package keeper

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	storeKey   sdk.StoreKey
	hostKeeper types.HostKeeper
	router     *types.Router
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(key sdk.StoreKey, hostKeeper types.HostKeeper, router *types.Router) *Keeper {
	if router == nil {
		panic("light client router cannot be nil")
	}

	return &Keeper{
		storeKey:   key,
		hostKeeper: hostKeeper,
		router:     router,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GetRouter returns the light client router.
func (k Keeper) GetRouter() *types.Router {
	return k.router
}

// Route returns the light client module for the given client identifier.
func (k Keeper) Route(clientID string) (exported.LightClientModule, bool) {
	return k.router.GetRoute(clientID)
}

// GenerateClientIdentifier returns the next client identifier.
func (k Keeper) GenerateClientIdentifier(ctx sdk.Context, clientType string) string {
	return types.FormatClientIdentifier(clientType, k.hostKeeper.GenerateClientSequence(ctx))
}

// GetClientInfo gets the record of a created client.
func (k Keeper) GetClientInfo(ctx sdk.Context, clientID string) (types.ClientInfo, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.ClientInfoKey(clientID))
	if len(bz) == 0 {
		return types.ClientInfo{}, false
	}

	var info types.ClientInfo
	if err := info.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode client info for %s: %w", clientID, err))
	}
	return info, true
}

// SetClientInfo sets the record of a created client.
func (k Keeper) SetClientInfo(ctx sdk.Context, clientID string, info types.ClientInfo) {
	ctx.KVStore(k.storeKey).Set(host.ClientInfoKey(clientID), info.Marshal())
}

// CheckAndGetClient returns the light client module backing an existing
// client. The localhost client always exists.
func (k Keeper) CheckAndGetClient(ctx sdk.Context, clientID string) (exported.LightClientModule, error) {
	if clientID != exported.LocalhostClientID {
		if _, found := k.GetClientInfo(ctx, clientID); !found {
			return nil, sdkerrors.Wrapf(types.ErrClientNotFound, "client (%s)", clientID)
		}
	}

	lightClientModule, found := k.router.GetRoute(clientID)
	if !found {
		return nil, sdkerrors.Wrap(types.ErrRouteNotFound, clientID)
	}
	return lightClientModule, nil
}

// GetClientStatus returns the status for a client. Unknown is returned for
// clients that cannot be resolved.
func (k Keeper) GetClientStatus(ctx sdk.Context, clientID string) exported.Status {
	info, err := k.GetLatestInfo(ctx, clientID)
	if err != nil {
		return exported.Unknown
	}
	return info.Status
}

// GetLatestInfo returns the latest height, timestamp and status of a client.
func (k Keeper) GetLatestInfo(ctx sdk.Context, clientID string) (exported.LatestInfo, error) {
	lightClientModule, err := k.CheckAndGetClient(ctx, clientID)
	if err != nil {
		return exported.LatestInfo{}, err
	}
	return lightClientModule.LatestInfo(ctx, clientID)
}

// GetLatestHeight returns the latest height of a client. A zero height is
// returned for clients that cannot be resolved.
func (k Keeper) GetLatestHeight(ctx sdk.Context, clientID string) types.Height {
	info, err := k.GetLatestInfo(ctx, clientID)
	if err != nil || info.LatestHeight == nil {
		return types.ZeroHeight()
	}
	return types.NewHeight(info.LatestHeight.GetRevisionNumber(), info.LatestHeight.GetRevisionHeight())
}

// GetTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (k Keeper) GetTimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error) {
	lightClientModule, err := k.CheckAndGetClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return lightClientModule.TimestampAtHeight(ctx, clientID, height)
}

// GetSelfConsensusState checks that a consensus height claimed by a
// counterparty lies in the past of this chain's current revision and returns
// the encoded self consensus state the counterparty client is expected to
// store at that height.
func (Keeper) GetSelfConsensusState(ctx sdk.Context, height exported.Height, hostConsensusStateProof []byte) ([]byte, error) {
	selfHeight := types.GetSelfHeight(ctx)
	if height.GetRevisionNumber() != selfHeight.GetRevisionNumber() {
		return nil, sdkerrors.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"consensus height revision %d does not match self revision %d", height.GetRevisionNumber(), selfHeight.GetRevisionNumber(),
		)
	}
	if height.GTE(selfHeight) {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidHeight, "consensus height %s must be below self height %s", height, selfHeight)
	}
	if len(hostConsensusStateProof) == 0 {
		return nil, sdkerrors.Wrapf(types.ErrSelfConsensusStateNotFound, "no host consensus state supplied for height %s", height)
	}
	return hostConsensusStateProof, nil
}

// commitClientState commits the current client state of a client and the
// consensus states at the given heights.
func (k Keeper) commitClientState(ctx sdk.Context, lightClientModule exported.LightClientModule, clientID string, heights []exported.Height) error {
	clientState, err := lightClientModule.ClientState(ctx, clientID)
	if err != nil {
		return err
	}
	k.hostKeeper.SetCommitment(ctx, host.ClientStatePath(clientID), commitmenttypes.Commit(clientState))

	for _, height := range heights {
		consensusState, err := lightClientModule.ConsensusState(ctx, clientID, height)
		if err != nil {
			return err
		}
		k.hostKeeper.SetCommitment(ctx, host.FullConsensusStatePath(clientID, height), commitmenttypes.Commit(consensusState))
	}
	return nil
}
