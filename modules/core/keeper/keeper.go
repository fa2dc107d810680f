package keeper

import (
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clientkeeper "github.com/multiversx/mx-ibc-go/modules/core/02-client/keeper"
	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectionkeeper "github.com/multiversx/mx-ibc-go/modules/core/03-connection/keeper"
	channelkeeper "github.com/multiversx/mx-ibc-go/modules/core/04-channel/keeper"
	portkeeper "github.com/multiversx/mx-ibc-go/modules/core/05-port/keeper"
	porttypes "github.com/multiversx/mx-ibc-go/modules/core/05-port/types"
	hostkeeper "github.com/multiversx/mx-ibc-go/modules/core/24-host/keeper"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	HostKeeper       *hostkeeper.Keeper
	ClientKeeper     *clientkeeper.Keeper
	ConnectionKeeper *connectionkeeper.Keeper
	ChannelKeeper    *channelkeeper.Keeper
	PortKeeper       *portkeeper.Keeper
}

// NewKeeper creates a new ibc Keeper. Every submodule keeper shares the given
// store key, the host keeper owns the commitment map under the given prefix.
func NewKeeper(key sdk.StoreKey, commitmentPrefix []byte, clientRouter *clienttypes.Router) *Keeper {
	if key == nil {
		panic(errors.New("cannot initialize IBC keeper: empty store key"))
	}

	hostKeeper := hostkeeper.NewKeeper(key, commitmentPrefix)
	clientKeeper := clientkeeper.NewKeeper(key, hostKeeper, clientRouter)
	connectionKeeper := connectionkeeper.NewKeeper(key, clientKeeper, hostKeeper)
	portKeeper := portkeeper.NewKeeper(key)
	channelKeeper := channelkeeper.NewKeeper(key, clientKeeper, connectionKeeper, hostKeeper, portKeeper)

	return &Keeper{
		HostKeeper:       hostKeeper,
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		PortKeeper:       portKeeper,
	}
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	if k.PortKeeper.Router != nil && k.PortKeeper.Router.Sealed() {
		panic(errors.New("cannot reset a sealed router"))
	}

	k.PortKeeper.SetRouter(rtr)
}

// InitHost sets the host configuration and the sentinel localhost connection.
// It is called once when the chain starts.
func (k *Keeper) InitHost(ctx sdk.Context, expectedTimePerBlock uint64) {
	k.HostKeeper.SetExpectedTimePerBlock(ctx, expectedTimePerBlock)
	k.ConnectionKeeper.CreateSentinelLocalhostConnection(ctx)
}

// atomic runs fn against a cached branch of ctx with its own event manager.
// State changes and events reach ctx only if fn succeeds.
func atomic(ctx sdk.Context, fn func(cacheCtx sdk.Context) error) error {
	cacheCtx, writeFn := ctx.CacheContext()
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())

	if err := fn(cacheCtx); err != nil {
		return err
	}

	writeFn()
	ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())

	return nil
}
