package simapp

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	porttypes "github.com/multiversx/mx-ibc-go/modules/core/05-port/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	ibckeeper "github.com/multiversx/mx-ibc-go/modules/core/keeper"
	mockclient "github.com/multiversx/mx-ibc-go/modules/light-clients/00-mock"
	localhost "github.com/multiversx/mx-ibc-go/modules/light-clients/09-localhost"
	ibcmock "github.com/multiversx/mx-ibc-go/testing/mock"
)

const (
	// DefaultCommitmentPrefix is the prefix every commitment path is stored under.
	DefaultCommitmentPrefix = "ibc"

	// DefaultExpectedTimePerBlock is 10 seconds in nanoseconds.
	DefaultExpectedTimePerBlock uint64 = 10_000_000_000
)

// SimApp is a single chain running the IBC core over an IAVL multistore. The
// mock light client is routed under the mock and tendermint client types and
// the mock application owns the mock port.
type SimApp struct {
	logger log.Logger
	cms    storetypes.CommitMultiStore

	keys map[string]*storetypes.KVStoreKey

	IBCKeeper *ibckeeper.Keeper

	MockClientModule      *mockclient.LightClientModule
	LocalhostClientModule *localhost.LightClientModule

	MockApp    *ibcmock.IBCApp
	MockModule ibcmock.IBCModule
}

// NewSimApp returns a SimApp persisting its state in db.
func NewSimApp(logger log.Logger, db dbm.DB) *SimApp {
	keys := map[string]*storetypes.KVStoreKey{
		host.StoreKey:    sdk.NewKVStoreKey(host.StoreKey),
		ibcmock.StoreKey: sdk.NewKVStoreKey(ibcmock.StoreKey),
	}

	cms := store.NewCommitMultiStore(db)
	for _, key := range keys {
		cms.MountStoreWithDB(key, sdk.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		panic(fmt.Errorf("failed to load simapp multistore: %w", err))
	}

	app := &SimApp{
		logger: logger,
		cms:    cms,
		keys:   keys,
	}

	app.MockClientModule = mockclient.NewLightClientModule(keys[host.StoreKey])

	clientRouter := clienttypes.NewRouter()
	clientRouter.AddRoute(exported.Mock, app.MockClientModule)
	clientRouter.AddRoute(exported.Tendermint, app.MockClientModule)

	app.IBCKeeper = ibckeeper.NewKeeper(keys[host.StoreKey], []byte(DefaultCommitmentPrefix), clientRouter)

	// the localhost client reads the commitments of the host keeper it is routed from
	app.LocalhostClientModule = localhost.NewLightClientModule(app.IBCKeeper.HostKeeper)
	clientRouter.AddRoute(exported.Localhost, app.LocalhostClientModule)

	app.MockApp = ibcmock.NewIBCApp(ibcmock.PortID)
	app.MockModule = ibcmock.NewIBCModule(app.MockApp, keys[ibcmock.StoreKey])

	portRouter := porttypes.NewRouter()
	portRouter.AddRoute(ibcmock.ModuleName, app.MockModule)
	app.IBCKeeper.SetRouter(portRouter)

	return app
}

// InitChain sets the host configuration, binds the mock port and commits the
// genesis state.
func (app *SimApp) InitChain(header tmproto.Header, expectedTimePerBlock uint64) {
	ctx := app.NewContext(header)

	app.IBCKeeper.InitHost(ctx, expectedTimePerBlock)
	if err := app.IBCKeeper.PortKeeper.BindPort(ctx, ibcmock.PortID, ibcmock.ModuleName, ibcmock.ModuleAddress); err != nil {
		panic(fmt.Errorf("failed to bind mock port: %w", err))
	}

	app.Commit()
}

// NewContext returns a context writing directly to the latest working state.
func (app *SimApp) NewContext(header tmproto.Header) sdk.Context {
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists the working state as a new version.
func (app *SimApp) Commit() abci.ResponseCommit {
	commitID := app.cms.Commit()
	app.logger.Debug("committed state", "version", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash))

	return abci.ResponseCommit{Data: commitID.Hash}
}

// LastCommitID returns the id of the latest committed version.
func (app *SimApp) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

// GetKey returns the store key mounted under name.
func (app *SimApp) GetKey(name string) *storetypes.KVStoreKey {
	return app.keys[name]
}
