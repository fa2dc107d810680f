package mock

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// ModuleName defines the 00-mock light client module name
const ModuleName = exported.Mock

// ValidProof is the only proof accepted by mock clients.
var ValidProof = crypto.Keccak256([]byte("01"))

// CommitmentReader returns the commitment a tracked chain holds under the
// given hashed key, or nil.
type CommitmentReader func(key []byte) []byte

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 00-mock light client.
type LightClientModule struct {
	key sdk.StoreKey

	mtx          sync.RWMutex
	counterparty map[string]CommitmentReader
}

// NewLightClientModule creates and returns a new 00-mock LightClientModule.
func NewLightClientModule(key sdk.StoreKey) *LightClientModule {
	return &LightClientModule{
		key:          key,
		counterparty: make(map[string]CommitmentReader),
	}
}

// RegisterCounterparty sets the commitment reader used to answer proofs for
// clients tracking the given chain.
func (l *LightClientModule) RegisterCounterparty(chainID string, reader CommitmentReader) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.counterparty[chainID] = reader
}

func (l *LightClientModule) reader(chainID string) (CommitmentReader, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	reader, ok := l.counterparty[chainID]
	if !ok {
		return nil, sdkerrors.Wrapf(ErrCounterpartyNotFound, "chain id %s", chainID)
	}
	return reader, nil
}

// Initialize stores the initial client and consensus states and marks the
// client Active.
func (l *LightClientModule) Initialize(ctx sdk.Context, clientID string, clientStateBz, consensusStateBz []byte) (exported.Height, error) {
	var clientState ClientState
	if err := clientState.Unmarshal(clientStateBz); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidClientState, err.Error())
	}
	if err := clientState.Validate(); err != nil {
		return nil, err
	}

	var consensusState ConsensusState
	if err := consensusState.Unmarshal(consensusStateBz); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidConsensusState, err.Error())
	}
	if consensusState.Timestamp == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidConsensusState, "timestamp cannot be zero")
	}

	if _, found := l.getClientState(ctx, clientID); found {
		return nil, sdkerrors.Wrap(ErrClientAlreadyInitiated, clientID)
	}

	l.setClientState(ctx, clientID, clientState)
	l.setConsensusState(ctx, clientID, clientState.LatestHeight, consensusState)
	l.setStatus(ctx, clientID, exported.Active)

	return clientState.LatestHeight, nil
}

// SetStatus overrides the status of a mock client.
func (l *LightClientModule) SetStatus(ctx sdk.Context, clientID string, status exported.Status) error {
	if _, found := l.getClientState(ctx, clientID); !found {
		return sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	l.setStatus(ctx, clientID, status)
	return nil
}

// ClientState returns the encoded client state.
func (l *LightClientModule) ClientState(ctx sdk.Context, clientID string) ([]byte, error) {
	clientState, found := l.getClientState(ctx, clientID)
	if !found {
		return nil, sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}
	return clientState.Marshal(), nil
}

// ConsensusState returns the encoded consensus state at the given height.
func (l *LightClientModule) ConsensusState(ctx sdk.Context, clientID string, height exported.Height) ([]byte, error) {
	consensusState, found := l.getConsensusState(ctx, clientID, height)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "client %s, height %s", clientID, height)
	}
	return consensusState.Marshal(), nil
}

// LatestInfo returns the latest height, its timestamp and the client status.
func (l *LightClientModule) LatestInfo(ctx sdk.Context, clientID string) (exported.LatestInfo, error) {
	clientState, found := l.getClientState(ctx, clientID)
	if !found {
		return exported.LatestInfo{}, sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}

	timestamp, err := l.TimestampAtHeight(ctx, clientID, clientState.LatestHeight)
	if err != nil {
		return exported.LatestInfo{}, err
	}

	return exported.LatestInfo{
		LatestHeight:    clientState.LatestHeight,
		LatestTimestamp: timestamp,
		Status:          l.getStatus(ctx, clientID),
	}, nil
}

// TimestampAtHeight returns the timestamp of the consensus state at the given height.
func (l *LightClientModule) TimestampAtHeight(ctx sdk.Context, clientID string, height exported.Height) (uint64, error) {
	consensusState, found := l.getConsensusState(ctx, clientID, height)
	if !found {
		return 0, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "client %s, height %s", clientID, height)
	}
	return consensusState.GetTimestamp(), nil
}

// VerifyMembership checks that the tracked chain commits to value at path.
func (l *LightClientModule) VerifyMembership(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	_ uint64,
	_ uint64,
	proof []byte,
	prefix []byte,
	path string,
	value []byte,
) error {
	reader, err := l.verifyPreconditions(ctx, clientID, height, proof, prefix)
	if err != nil {
		return err
	}
	return commitmenttypes.VerifyCommittedValue(reader(host.CommitmentKey(path)), value)
}

// VerifyNonMembership checks that the tracked chain commits to nothing at path.
func (l *LightClientModule) VerifyNonMembership(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	_ uint64,
	_ uint64,
	proof []byte,
	prefix []byte,
	path string,
) error {
	reader, err := l.verifyPreconditions(ctx, clientID, height, proof, prefix)
	if err != nil {
		return err
	}
	return commitmenttypes.VerifyAbsence(reader(host.CommitmentKey(path)))
}

func (l *LightClientModule) verifyPreconditions(
	ctx sdk.Context, clientID string, height exported.Height, proof, prefix []byte,
) (CommitmentReader, error) {
	clientState, found := l.getClientState(ctx, clientID)
	if !found {
		return nil, sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}
	if _, err := l.TimestampAtHeight(ctx, clientID, height); err != nil {
		return nil, err
	}
	if len(prefix) == 0 {
		return nil, sdkerrors.Wrap(commitmenttypes.ErrInvalidPrefix, "prefix cannot be empty")
	}
	if !bytes.Equal(proof, ValidProof) {
		return nil, sdkerrors.Wrapf(commitmenttypes.ErrInvalidProof, "expected %X, got %X", ValidProof, proof)
	}
	return l.reader(clientState.ChainId)
}
