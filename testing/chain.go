package ibctesting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/simapp"
)

// TestChain is a testing struct that wraps a simapp with the last committed
// header and the header of the block being built. Messages are delivered
// directly to the IBC msg server and every successful delivery commits a block.
type TestChain struct {
	testing.TB

	Coordinator   *Coordinator
	App           *simapp.SimApp
	ChainID       string
	LastHeader    tmproto.Header // header for last committed block
	CurrentHeader tmproto.Header // header for the block being built

	// SenderAccount relays every message delivered by this chain's endpoints.
	SenderAccount sdk.AccAddress
}

// NewTestChain initializes a new TestChain at height 1 with the mock port
// bound. Time management is handled by the Coordinator in order to ensure
// synchrony between chains.
func NewTestChain(t *testing.T, coord *Coordinator, chainID string) *TestChain {
	t.Helper()

	app := simapp.NewSimApp(log.NewNopLogger(), dbm.NewMemDB())

	header := tmproto.Header{
		ChainID: chainID,
		Height:  1,
		Time:    coord.CurrentTime.UTC(),
	}
	app.InitChain(header, DefaultExpectedBlockTime)

	chain := &TestChain{
		TB:            t,
		Coordinator:   coord,
		App:           app,
		ChainID:       chainID,
		LastHeader:    header,
		SenderAccount: sdk.AccAddress(tmhash.SumTruncated([]byte(chainID))),
	}

	chain.CurrentHeader = tmproto.Header{
		ChainID: chainID,
		Height:  header.Height + 1,
		Time:    coord.CurrentTime.UTC(),
		AppHash: app.LastCommitID().Hash,
	}

	return chain
}

// GetContext returns the current context for the application.
func (chain *TestChain) GetContext() sdk.Context {
	return chain.App.NewContext(chain.CurrentHeader)
}

// NextBlock commits the current block and sets up the header of the next
// one. The time of the new block is the current time of the coordinator.
func (chain *TestChain) NextBlock() {
	res := chain.App.Commit()

	chain.LastHeader = chain.CurrentHeader
	chain.CurrentHeader = tmproto.Header{
		ChainID: chain.ChainID,
		Height:  chain.LastHeader.Height + 1,
		AppHash: res.Data,
		Time:    chain.CurrentHeader.Time,
	}
}

// Deliver executes fn against a fresh context of the current block. If fn
// succeeds the block is committed, time is incremented and the emitted
// events are returned.
func (chain *TestChain) Deliver(fn func(goCtx context.Context) error) (sdk.Events, error) {
	chain.TB.Helper()

	// ensure the chain has the latest time
	chain.Coordinator.UpdateTimeForChain(chain)

	ctx := chain.GetContext().WithEventManager(sdk.NewEventManager())
	if err := fn(sdk.WrapSDKContext(ctx)); err != nil {
		return nil, err
	}

	events := ctx.EventManager().Events()

	chain.NextBlock()
	chain.Coordinator.IncrementTime()

	return events, nil
}

// GetCommitment returns the commitment the chain holds under the given hashed
// key. Mock light clients of other chains read proofs through it.
func (chain *TestChain) GetCommitment(key []byte) []byte {
	return chain.App.IBCKeeper.HostKeeper.GetCommitment(chain.GetContext(), key)
}

// HasCommitment reports whether the chain commits to a value at path.
func (chain *TestChain) HasCommitment(path string) bool {
	return chain.App.IBCKeeper.HostKeeper.HasCommitment(chain.GetContext(), path)
}

// LatestHeight returns the height of the last committed block as seen by
// light clients tracking this chain.
func (chain *TestChain) LatestHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.LastHeader.Height))
}

// LatestTimestamp returns the time of the last committed block in unix nanoseconds.
func (chain *TestChain) LatestTimestamp() uint64 {
	return uint64(chain.LastHeader.Time.UnixNano())
}

// CurrentTimestamp returns the time of the block being built in unix nanoseconds.
func (chain *TestChain) CurrentTimestamp() uint64 {
	return uint64(chain.CurrentHeader.Time.UnixNano())
}

// GetConnection retrieves an IBC connection for the provided connection identifier.
func (chain *TestChain) GetConnection(connectionID string) connectiontypes.ConnectionEnd {
	connection, found := chain.App.IBCKeeper.ConnectionKeeper.GetConnection(chain.GetContext(), connectionID)
	require.True(chain.TB, found)

	return connection
}

// GetChannel retrieves an IBC channel for the provided port and channel identifier.
func (chain *TestChain) GetChannel(portID, channelID string) channeltypes.Channel {
	channel, found := chain.App.IBCKeeper.ChannelKeeper.GetChannel(chain.GetContext(), portID, channelID)
	require.True(chain.TB, found)

	return channel
}

// GetTimeoutHeight returns a timeout height of DefaultTimeoutHeightDelta
// blocks above the current height of the chain.
func (chain *TestChain) GetTimeoutHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.CurrentHeader.Height)+DefaultTimeoutHeightDelta)
}

// GetTimeoutTimestamp returns a timeout timestamp DefaultTimeoutTimestampDelta
// after the current block time of the chain.
func (chain *TestChain) GetTimeoutTimestamp() uint64 {
	return uint64(chain.CurrentHeader.Time.Add(DefaultTimeoutTimestampDelta).UnixNano())
}

// TimeoutTimestampIn returns a timestamp d after the current block time.
func (chain *TestChain) TimeoutTimestampIn(d time.Duration) uint64 {
	return uint64(chain.CurrentHeader.Time.Add(d).UnixNano())
}
