package host

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// HostInfo is the host-wide record holding the identifier counters and the
// expected block time used to convert delay periods into block delays.
type HostInfo struct {
	NextClientSequence     uint64 `json:"next_client_sequence" yaml:"next_client_sequence"`
	NextConnectionSequence uint64 `json:"next_connection_sequence" yaml:"next_connection_sequence"`
	NextChannelSequence    uint64 `json:"next_channel_sequence" yaml:"next_channel_sequence"`
	// ExpectedTimePerBlock is expressed in nanoseconds.
	ExpectedTimePerBlock uint64 `json:"expected_time_per_block" yaml:"expected_time_per_block"`
}

// Marshal encodes the record with fields 1 to 4 in declaration order.
func (hi HostInfo) Marshal() []byte {
	return new(wire.Encoder).
		Uint64(1, hi.NextClientSequence).
		Uint64(2, hi.NextConnectionSequence).
		Uint64(3, hi.NextChannelSequence).
		Uint64(4, hi.ExpectedTimePerBlock).
		Encoded()
}

// Unmarshal decodes a record produced by Marshal.
func (hi *HostInfo) Unmarshal(bz []byte) error {
	*hi = HostInfo{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			hi.NextClientSequence = f.Varint
		case 2:
			hi.NextConnectionSequence = f.Varint
		case 3:
			hi.NextChannelSequence = f.Varint
		case 4:
			hi.ExpectedTimePerBlock = f.Varint
		}
		return nil
	})
}

// BlockDelay converts a time delay period into the number of blocks expected
// to be produced within it, rounding up. It returns 0 if either argument is 0.
func BlockDelay(delayPeriod, expectedTimePerBlock uint64) uint64 {
	if delayPeriod == 0 || expectedTimePerBlock == 0 {
		return 0
	}

	blockDelay := delayPeriod / expectedTimePerBlock
	if delayPeriod%expectedTimePerBlock != 0 {
		blockDelay++
	}
	return blockDelay
}
