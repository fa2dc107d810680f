package localhost

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

const (
	// ModuleName defines the 09-localhost light client module name
	ModuleName = exported.Localhost
)

// SentinelProof defines the 09-localhost sentinel proof.
// Submission of nil or empty proofs is disallowed in core IBC messaging.
// This serves as a placeholder value for relayers to leverage as the proof field in various message types.
// Localhost client state verification will fail if the sentinel proof value is not provided.
var SentinelProof = []byte{0x01}

// HostKeeper is the read access the localhost client needs to the host.
type HostKeeper interface {
	GetCommitment(ctx sdk.Context, key []byte) []byte
	GetCommitmentPrefix() []byte
	GetHostTimestamp(ctx sdk.Context) (uint64, error)
}

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the core IBC api.LightClientModule interface.
type LightClientModule struct {
	hostKeeper HostKeeper
}

// NewLightClientModule creates and returns a new 09-localhost LightClientModule.
func NewLightClientModule(hostKeeper HostKeeper) *LightClientModule {
	return &LightClientModule{
		hostKeeper: hostKeeper,
	}
}

// Initialize returns an error because it is stateless.
func (LightClientModule) Initialize(_ sdk.Context, _ string, _, _ []byte) (exported.Height, error) {
	return nil, sdkerrors.Wrap(clienttypes.ErrClientExists, "localhost is stateless and cannot be initialized")
}

// UpdateState performs a no-op and returns the context height in the updated heights return value.
func (LightClientModule) UpdateState(ctx sdk.Context, _ string, _ []byte) ([]exported.Height, error) {
	return []exported.Height{clienttypes.GetSelfHeight(ctx)}, nil
}

// ClientState returns the client state at the current block height.
func (LightClientModule) ClientState(ctx sdk.Context, _ string) ([]byte, error) {
	return ClientState{LatestHeight: clienttypes.GetSelfHeight(ctx)}.Marshal(), nil
}

// ConsensusState returns the empty sentinel consensus state. The localhost
// client does not store consensus states.
func (LightClientModule) ConsensusState(_ sdk.Context, _ string, _ exported.Height) ([]byte, error) {
	return []byte{}, nil
}

// LatestInfo returns the context height, the block time and Active.
func (l LightClientModule) LatestInfo(ctx sdk.Context, clientID string) (exported.LatestInfo, error) {
	height := clienttypes.GetSelfHeight(ctx)
	timestamp, err := l.TimestampAtHeight(ctx, clientID, height)
	if err != nil {
		return exported.LatestInfo{}, err
	}

	return exported.LatestInfo{
		LatestHeight:    height,
		LatestTimestamp: timestamp,
		Status:          exported.Active,
	}, nil
}

// TimestampAtHeight returns the current block time retrieved from the application context. The localhost client does not store consensus states and thus
// cannot provide a timestamp for the provided height.
func (l LightClientModule) TimestampAtHeight(ctx sdk.Context, _ string, height exported.Height) (uint64, error) {
	selfHeight := clienttypes.GetSelfHeight(ctx)
	if height.GetRevisionNumber() != selfHeight.GetRevisionNumber() || height.GT(selfHeight) {
		return 0, sdkerrors.Wrapf(ibcerrors.ErrInvalidHeight, "height %s is not reachable from self height %s", height, selfHeight)
	}
	return l.hostKeeper.GetHostTimestamp(ctx)
}

// VerifyMembership is a generic proof verification method which verifies the existence of a given key and value within the IBC store.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (l LightClientModule) VerifyMembership(
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
	if err := l.verifyPreconditions(ctx, clientID, height, proof, prefix); err != nil {
		return err
	}
	return commitmenttypes.VerifyCommittedValue(l.hostKeeper.GetCommitment(ctx, host.CommitmentKey(path)), value)
}

// VerifyNonMembership is a generic proof verification method which verifies the absence of a given CommitmentPath within the IBC store.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (l LightClientModule) VerifyNonMembership(
	ctx sdk.Context,
	clientID string,
	height exported.Height,
	_ uint64,
	_ uint64,
	proof []byte,
	prefix []byte,
	path string,
) error {
	if err := l.verifyPreconditions(ctx, clientID, height, proof, prefix); err != nil {
		return err
	}
	return commitmenttypes.VerifyAbsence(l.hostKeeper.GetCommitment(ctx, host.CommitmentKey(path)))
}

func (l LightClientModule) verifyPreconditions(ctx sdk.Context, clientID string, height exported.Height, proof, prefix []byte) error {
	if _, err := l.TimestampAtHeight(ctx, clientID, height); err != nil {
		return err
	}

	// ensure the proof provided is the expected sentinel localhost client proof
	if !bytes.Equal(proof, SentinelProof) {
		return sdkerrors.Wrapf(commitmenttypes.ErrInvalidProof, "expected %X, got %X", SentinelProof, proof)
	}

	if !bytes.Equal(prefix, l.hostKeeper.GetCommitmentPrefix()) {
		return sdkerrors.Wrapf(commitmenttypes.ErrInvalidPrefix, "expected %s, got %s", l.hostKeeper.GetCommitmentPrefix(), prefix)
	}
	return nil
}
