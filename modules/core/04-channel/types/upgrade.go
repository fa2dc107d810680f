package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// RecvStartSequence records where receiving resumes after a channel upgrade:
// packets below Sequence were sent in a previous upgrade epoch. PrevSequence
// is the next receive sequence at the time the upgrade started, bounding the
// window of in-flight packets that may still be received while flushing.
type RecvStartSequence struct {
	Sequence     uint64 `json:"sequence" yaml:"sequence"`
	PrevSequence uint64 `json:"prev_sequence" yaml:"prev_sequence"`
}

// NewRecvStartSequence creates a new RecvStartSequence instance.
func NewRecvStartSequence(sequence, prevSequence uint64) RecvStartSequence {
	return RecvStartSequence{
		Sequence:     sequence,
		PrevSequence: prevSequence,
	}
}

// Marshal encodes the record (field 1: sequence, field 2: prev_sequence).
func (r RecvStartSequence) Marshal() []byte {
	return new(wire.Encoder).Uint64(1, r.Sequence).Uint64(2, r.PrevSequence).Encoded()
}

// Unmarshal decodes a record produced by Marshal.
func (r *RecvStartSequence) Unmarshal(bz []byte) error {
	*r = RecvStartSequence{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			r.Sequence = f.Varint
		case 2:
			r.PrevSequence = f.Varint
		}
		return nil
	})
}

// CheckFlushWindow returns an error unless a packet with the given sequence
// may still be received while the channel flushes. A zero PrevSequence means
// no upgrade is in progress on the counterparty and every sequence is allowed.
func (r RecvStartSequence) CheckFlushWindow(sequence uint64) error {
	if r.PrevSequence == 0 {
		return nil
	}
	if sequence >= r.Sequence {
		return sdkerrors.Wrapf(ErrCannotReceiveNextUpgrade, "packet sequence %d >= upgrade start sequence %d", sequence, r.Sequence)
	}
	if sequence < r.PrevSequence {
		return sdkerrors.Wrapf(ErrPacketAlreadyProcessed, "packet sequence %d < previous receive sequence %d", sequence, r.PrevSequence)
	}
	return nil
}
