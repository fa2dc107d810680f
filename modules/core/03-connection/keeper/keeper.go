package keeper

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Keeper defines the IBC connection keeper
type Keeper struct {
	storeKey     sdk.StoreKey
	clientKeeper types.ClientKeeper
	hostKeeper   types.HostKeeper
}

// NewKeeper creates a new IBC connection Keeper instance
func NewKeeper(key sdk.StoreKey, ck types.ClientKeeper, hk types.HostKeeper) *Keeper {
	return &Keeper{
		storeKey:     key,
		clientKeeper: ck,
		hostKeeper:   hk,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GetCommitmentPrefix returns the IBC connection store prefix as a commitment
// Prefix
func (k Keeper) GetCommitmentPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(k.hostKeeper.GetCommitmentPrefix())
}

// GenerateConnectionIdentifier returns the next connection identifier.
func (k Keeper) GenerateConnectionIdentifier(ctx sdk.Context) string {
	return types.FormatConnectionIdentifier(k.hostKeeper.GenerateConnectionSequence(ctx))
}

// GetConnection returns a connection with a particular identifier
func (k Keeper) GetConnection(ctx sdk.Context, connectionID string) (types.ConnectionEnd, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.ConnectionKey(connectionID))
	if len(bz) == 0 {
		return types.ConnectionEnd{}, false
	}

	return types.MustUnmarshalConnection(bz), true
}

// HasConnection returns a true if the connection with the given identifier
// exists in the store.
func (k Keeper) HasConnection(ctx sdk.Context, connectionID string) bool {
	return ctx.KVStore(k.storeKey).Has(host.ConnectionKey(connectionID))
}

// SetConnection sets a connection to the store and commits to it under the
// connection path.
func (k Keeper) SetConnection(ctx sdk.Context, connectionID string, connection types.ConnectionEnd) {
	bz := types.MustMarshalConnection(connection)
	ctx.KVStore(k.storeKey).Set(host.ConnectionKey(connectionID), bz)
	k.hostKeeper.SetCommitment(ctx, host.ConnectionPath(connectionID), commitmenttypes.Commit(bz))
}

// GetClientConnectionPaths returns all the connection paths stored under a
// particular client
func (k Keeper) GetClientConnectionPaths(ctx sdk.Context, clientID string) ([]string, bool) {
	bz := ctx.KVStore(k.storeKey).Get(host.ClientConnectionsKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	var clientPaths types.ClientPaths
	if err := clientPaths.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode connection paths of client %s: %w", clientID, err))
	}
	return clientPaths.Paths, true
}

// SetClientConnectionPaths sets the connections paths for client
func (k Keeper) SetClientConnectionPaths(ctx sdk.Context, clientID string, paths []string) {
	clientPaths := types.ClientPaths{Paths: paths}
	ctx.KVStore(k.storeKey).Set(host.ClientConnectionsKey(clientID), clientPaths.Marshal())
}

// IterateConnections provides an iterator over all ConnectionEnd objects.
// For each ConnectionEnd, cb will be called. If the cb returns true, the
// iterator will close and stop.
func (k Keeper) IterateConnections(ctx sdk.Context, cb func(types.IdentifiedConnection) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), []byte(host.KeyConnectionPrefix+"/"))
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		connection := types.MustUnmarshalConnection(iterator.Value())
		identifiedConnection := types.NewIdentifiedConnection(string(iterator.Key()), connection)
		if cb(identifiedConnection) {
			break
		}
	}
}

// GetAllConnections returns all stored ConnectionEnd objects.
func (k Keeper) GetAllConnections(ctx sdk.Context) (connections []types.IdentifiedConnection) {
	k.IterateConnections(ctx, func(connection types.IdentifiedConnection) bool {
		connections = append(connections, connection)
		return false
	})
	return connections
}

// CreateSentinelLocalhostConnection creates and sets the sentinel localhost connection end in the IBC store.
func (k Keeper) CreateSentinelLocalhostConnection(ctx sdk.Context) {
	counterparty := types.NewCounterparty(exported.LocalhostClientID, exported.LocalhostConnectionID, k.GetCommitmentPrefix())
	connectionEnd := types.NewConnectionEnd(types.OPEN, exported.LocalhostClientID, counterparty, types.GetCompatibleVersions(), 0)

	k.SetConnection(ctx, exported.LocalhostConnectionID, connectionEnd)
}

// addConnectionToClient is used to add a connection identifier to the set of
// connections associated with a client.
func (k Keeper) addConnectionToClient(ctx sdk.Context, clientID, connectionID string) {
	conns, found := k.GetClientConnectionPaths(ctx, clientID)
	if !found {
		conns = []string{}
	}

	conns = append(conns, connectionID)
	k.SetClientConnectionPaths(ctx, clientID, conns)
}

// checkClientActive returns an error unless the client exists and is active.
func (k Keeper) checkClientActive(ctx sdk.Context, clientID string) error {
	if _, err := k.clientKeeper.CheckAndGetClient(ctx, clientID); err != nil {
		return err
	}

	if status := k.clientKeeper.GetClientStatus(ctx, clientID); status != exported.Active {
		return sdkerrors.Wrapf(clienttypes.ErrClientNotActive, "client (%s) status is %s", clientID, status)
	}
	return nil
}
