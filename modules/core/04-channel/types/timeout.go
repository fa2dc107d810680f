package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// Timeout defines an execution deadline structure for 04-channel handlers.
// This includes packet lifecycle handlers as well as the upgrade handshake handlers.
// A valid Timeout contains either one or both of a timestamp and block height (sequence).
type Timeout struct {
	// block height after which the packet or upgrade times out
	Height clienttypes.Height `json:"height" yaml:"height"`
	// block timestamp (in nanoseconds) after which the packet or upgrade times out
	Timestamp uint64 `json:"timestamp,omitempty" yaml:"timestamp"`
}

// NewTimeout returns a new Timeout instance.
func NewTimeout(height clienttypes.Height, timestamp uint64) Timeout {
	return Timeout{
		Height:    height,
		Timestamp: timestamp,
	}
}

// IsValid returns true if either the height or timestamp is non-zero
func (t Timeout) IsValid() bool {
	return !t.Height.IsZero() || t.Timestamp != 0
}

// HeightElapsed returns true if the timeout height is non empty
// and the timeout height is less than or equal to the provided height.
func (t Timeout) HeightElapsed(height exported.Height) bool {
	return !t.Height.IsZero() && height.GTE(t.Height)
}

// TimestampElapsed returns true if the timeout timestamp is non empty
// and the timeout timestamp is less than or equal to the provided timestamp.
func (t Timeout) TimestampElapsed(timestamp uint64) bool {
	return t.Timestamp != 0 && timestamp >= t.Timestamp
}

// Elapsed returns true if either the provided height or timestamp is past the
// respective fields of the timeout.
func (t Timeout) Elapsed(height exported.Height, timestamp uint64) bool {
	return t.HeightElapsed(height) || t.TimestampElapsed(timestamp)
}

// ErrTimeoutElapsed returns a timeout elapsed error indicating which timeout value
// has elapsed.
func (t Timeout) ErrTimeoutElapsed(height exported.Height, timestamp uint64) error {
	if t.HeightElapsed(height) {
		return sdkerrors.Wrapf(ErrTimeoutElapsed, "current height: %s, timeout height %s", height, t.Height)
	}
	return sdkerrors.Wrapf(ErrTimeoutElapsed, "current timestamp: %d, timeout timestamp %d", timestamp, t.Timestamp)
}

// TimeoutFromPacket returns the timeout carried by a packet.
func TimeoutFromPacket(packet Packet) Timeout {
	return NewTimeout(packet.TimeoutHeight, packet.TimeoutTimestamp)
}
