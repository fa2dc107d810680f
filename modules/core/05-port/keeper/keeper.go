package keeper

import (
	"bytes"

	"github.com/tendermint/tendermint/libs/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/modules/core/05-port/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Keeper defines the IBC port keeper. Ports and channels are bound to the
// address of the module that owns them. A binding is set once and never
// changes.
type Keeper struct {
	storeKey sdk.StoreKey
	Router   *types.Router
}

// NewKeeper creates a new IBC port Keeper instance
func NewKeeper(key sdk.StoreKey) *Keeper {
	return &Keeper{
		storeKey: key,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// SetRouter sets the application router. It panics if a router is already set
// and seals the given router.
func (k *Keeper) SetRouter(rtr *types.Router) {
	if k.Router != nil && k.Router.Sealed() {
		panic("cannot reset a sealed router")
	}

	k.Router = rtr
	k.Router.Seal()
}

// isBound checks a given port ID is already bounded.
func (k Keeper) isBound(ctx sdk.Context, portID string) bool {
	return ctx.KVStore(k.storeKey).Has(host.PortCapabilityKey(portID))
}

// BindPort binds a port to the application module routed under moduleName and
// owned by owner. It returns an error if the port is already bound or the
// module has no route.
func (k Keeper) BindPort(ctx sdk.Context, portID, moduleName string, owner sdk.AccAddress) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return err
	}
	if owner.Empty() {
		return sdkerrors.Wrapf(types.ErrInvalidPort, "port %s cannot be bound to an empty owner", portID)
	}
	if k.Router != nil && !k.Router.HasRoute(moduleName) {
		return sdkerrors.Wrapf(types.ErrInvalidRoute, "route %s does not exist", moduleName)
	}
	if k.isBound(ctx, portID) {
		return sdkerrors.Wrapf(types.ErrPortExists, "port %s is already bound", portID)
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(host.PortCapabilityKey(portID), owner)
	store.Set([]byte(host.PortPath(portID)), []byte(moduleName))

	k.Logger(ctx).Info("port bound", "port-id", portID, "module", moduleName, "owner", owner.String())
	return nil
}

// GetPortOwner returns the address the port is bound to.
func (k Keeper) GetPortOwner(ctx sdk.Context, portID string) (sdk.AccAddress, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.PortCapabilityKey(portID))
	if len(bz) == 0 {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// AuthenticatePort returns true if caller is the owner of the port.
func (k Keeper) AuthenticatePort(ctx sdk.Context, portID string, caller sdk.AccAddress) bool {
	owner, found := k.GetPortOwner(ctx, portID)
	return found && bytes.Equal(owner, caller)
}

// LookupModuleByPort returns the name of the module the port is bound to.
func (k Keeper) LookupModuleByPort(ctx sdk.Context, portID string) (string, bool) {
	bz := ctx.KVStore(k.storeKey).Get([]byte(host.PortPath(portID)))
	if len(bz) == 0 {
		return "", false
	}
	return string(bz), true
}

// Route returns the application callbacks of the module a port is bound to.
func (k Keeper) Route(ctx sdk.Context, portID string) (types.IBCModule, error) {
	module, found := k.LookupModuleByPort(ctx, portID)
	if !found {
		return nil, sdkerrors.Wrapf(types.ErrPortNotFound, "could not retrieve module from port-id: %s", portID)
	}

	cbs, ok := k.Router.GetRoute(module)
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrInvalidRoute, "route not found to module: %s", module)
	}
	return cbs, nil
}

// ClaimChannelCapability binds a channel to an owner. A channel can only be
// claimed once.
func (k Keeper) ClaimChannelCapability(ctx sdk.Context, portID, channelID string, owner sdk.AccAddress) error {
	if owner.Empty() {
		return sdkerrors.Wrapf(types.ErrCapabilityNotFound, "port %s, channel %s: empty owner", portID, channelID)
	}

	store := ctx.KVStore(k.storeKey)
	key := host.ChannelCapabilityKey(portID, channelID)
	if store.Has(key) {
		return sdkerrors.Wrapf(types.ErrCapabilityExists, "port %s, channel %s", portID, channelID)
	}

	store.Set(key, owner)
	return nil
}

// GetChannelCapabilityOwner returns the address that owns a channel.
func (k Keeper) GetChannelCapabilityOwner(ctx sdk.Context, portID, channelID string) (sdk.AccAddress, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.ChannelCapabilityKey(portID, channelID))
	if len(bz) == 0 {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// AuthenticateChannelCapability returns true if caller owns the channel.
func (k Keeper) AuthenticateChannelCapability(ctx sdk.Context, portID, channelID string, caller sdk.AccAddress) bool {
	owner, found := k.GetChannelCapabilityOwner(ctx, portID, channelID)
	return found && bytes.Equal(owner, caller)
}
