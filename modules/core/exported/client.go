package exported

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Status represents the status of a client
type Status string

const (
	// ModuleName defines the IBC module name
	ModuleName = "ibc"

	// Mock is the client type for the mock light client used by tests and devnets.
	Mock string = "00-mock"

	// Tendermint is used to indicate that the client uses the Tendermint Consensus Algorithm.
	Tendermint string = "07-tendermint"

	// Localhost is the client type for a localhost client.
	Localhost string = "09-localhost"

	// LocalhostClientID is the sentinel client ID for the localhost client.
	LocalhostClientID string = Localhost

	// LocalhostConnectionID is the sentinel connection ID for the localhost connection.
	LocalhostConnectionID string = "connection-localhost"

	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"
)

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	IsZero() bool
	LT(Height) bool
	LTE(Height) bool
	EQ(Height) bool
	GT(Height) bool
	GTE(Height) bool
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	Increment() Height
	Decrement() (Height, bool)
	String() string
}

// LatestInfo is the summary a light client gives about the chain it tracks.
type LatestInfo struct {
	LatestHeight    Height
	LatestTimestamp uint64
	Status          Status
}

// LightClientModule is the capability set every light client implementation
// exposes to the core. Implementations are registered per client type in the
// 02-client router and looked up by client identifier.
type LightClientModule interface {
	// Initialize is called upon client creation, it allows the client to perform validation on the client state and initial consensus state.
	// The light client module is responsible for setting any client-specific data in the store.
	// It returns the latest height of the new client.
	Initialize(ctx sdk.Context, clientID string, clientState, consensusState []byte) (Height, error)

	// UpdateState updates the client with the provided message and returns the
	// consensus heights that were added.
	UpdateState(ctx sdk.Context, clientID string, clientMsg []byte) ([]Height, error)

	// ClientState returns the canonical encoding of the client state. The core
	// commits to it under the client state path.
	ClientState(ctx sdk.Context, clientID string) ([]byte, error)

	// ConsensusState returns the canonical encoding of the consensus state at the given height.
	ConsensusState(ctx sdk.Context, clientID string, height Height) ([]byte, error)

	// VerifyMembership is a generic proof verification method which verifies a proof of the existence of a value at a given CommitmentPath at the specified height.
	// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
	VerifyMembership(
		ctx sdk.Context,
		clientID string,
		height Height,
		delayTimePeriod uint64,
		delayBlockPeriod uint64,
		proof []byte,
		prefix []byte,
		path string,
		value []byte,
	) error

	// VerifyNonMembership is a generic proof verification method which verifies the absence of a given CommitmentPath at a specified height.
	// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
	VerifyNonMembership(
		ctx sdk.Context,
		clientID string,
		height Height,
		delayTimePeriod uint64,
		delayBlockPeriod uint64,
		proof []byte,
		prefix []byte,
		path string,
	) error

	// LatestInfo returns the latest height, latest timestamp and status of the client.
	LatestInfo(ctx sdk.Context, clientID string) (LatestInfo, error)

	// TimestampAtHeight must return the timestamp for the consensus state associated with the provided height.
	TimestampAtHeight(ctx sdk.Context, clientID string, height Height) (uint64, error)
}
