package types

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// ClientInfo is the core's record of a created client. The light client
// module owns every other piece of client state.
type ClientInfo struct {
	ClientType string `json:"client_type" yaml:"client_type"`
}

// NewClientInfo creates a client record.
func NewClientInfo(clientType string) ClientInfo {
	return ClientInfo{ClientType: clientType}
}

// Marshal encodes the record (field 1: client_type).
func (ci ClientInfo) Marshal() []byte {
	return new(wire.Encoder).String(1, ci.ClientType).Encoded()
}

// Unmarshal decodes a record produced by Marshal.
func (ci *ClientInfo) Unmarshal(bz []byte) error {
	*ci = ClientInfo{}
	return wire.Decode(bz, func(f wire.Field) error {
		if f.Num == 1 {
			ci.ClientType = string(f.Bytes)
		}
		return nil
	})
}

// Marshal encodes the height (field 1: revision_number, field 2: revision_height).
func (h Height) Marshal() []byte {
	return new(wire.Encoder).Uint64(1, h.RevisionNumber).Uint64(2, h.RevisionHeight).Encoded()
}

// Unmarshal decodes a height produced by Marshal.
func (h *Height) Unmarshal(bz []byte) error {
	*h = Height{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			h.RevisionNumber = f.Varint
		case 2:
			h.RevisionHeight = f.Varint
		}
		return nil
	})
}
