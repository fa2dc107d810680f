package mock

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// ConsensusState is the consensus state a mock client stores per height.
type ConsensusState struct {
	// unix nanoseconds
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`
}

// NewConsensusState creates a new mock ConsensusState instance.
func NewConsensusState(timestamp uint64) ConsensusState {
	return ConsensusState{Timestamp: timestamp}
}

// GetTimestamp returns the timestamp of the consensus state.
func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

// Marshal encodes the consensus state (field 1: timestamp).
func (cs ConsensusState) Marshal() []byte {
	return new(wire.Encoder).Uint64(1, cs.Timestamp).Encoded()
}

// Unmarshal decodes a consensus state produced by Marshal.
func (cs *ConsensusState) Unmarshal(bz []byte) error {
	*cs = ConsensusState{}
	return wire.Decode(bz, func(f wire.Field) error {
		if f.Num == 1 {
			cs.Timestamp = f.Varint
		}
		return nil
	})
}
