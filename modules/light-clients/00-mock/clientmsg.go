package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/internal/wire"
	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
)

// Header is the client message accepted by UpdateState.
type Header struct {
	Height    clienttypes.Height `json:"height" yaml:"height"`
	Timestamp uint64             `json:"timestamp" yaml:"timestamp"`
}

// NewHeader creates a new mock Header instance.
func NewHeader(height clienttypes.Height, timestamp uint64) Header {
	return Header{
		Height:    height,
		Timestamp: timestamp,
	}
}

// ValidateBasic checks the header carries a usable height and timestamp.
func (h Header) ValidateBasic() error {
	if h.Height.RevisionNumber != 0 || h.Height.RevisionHeight == 0 || h.Timestamp == 0 {
		return sdkerrors.Wrapf(ErrInvalidHeader, "height %s, timestamp %d", h.Height, h.Timestamp)
	}
	return nil
}

// Marshal encodes the header (field 1: height, field 2: timestamp).
func (h Header) Marshal() []byte {
	return new(wire.Encoder).Message(1, h.Height.Marshal()).Uint64(2, h.Timestamp).Encoded()
}

// Unmarshal decodes a header produced by Marshal.
func (h *Header) Unmarshal(bz []byte) error {
	*h = Header{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			return h.Height.Unmarshal(f.Bytes)
		case 2:
			h.Timestamp = f.Varint
		}
		return nil
	})
}
