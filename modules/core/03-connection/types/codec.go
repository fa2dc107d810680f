package types

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// Marshal encodes the connection end with the field numbers of
// ibc.core.connection.v1.ConnectionEnd. The output is what the core commits
// to and what counterparties verify.
func (c ConnectionEnd) Marshal() []byte {
	enc := new(wire.Encoder).String(1, c.ClientId)
	for _, version := range c.Versions {
		enc.Message(2, version.Marshal())
	}
	return enc.
		Uint64(3, uint64(c.State)).
		Message(4, c.Counterparty.Marshal()).
		Uint64(5, c.DelayPeriod).
		Encoded()
}

// Unmarshal decodes a connection end produced by Marshal.
func (c *ConnectionEnd) Unmarshal(bz []byte) error {
	*c = ConnectionEnd{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			c.ClientId = string(f.Bytes)
		case 2:
			version := new(Version)
			if err := version.Unmarshal(f.Bytes); err != nil {
				return err
			}
			c.Versions = append(c.Versions, version)
		case 3:
			c.State = State(f.Varint)
		case 4:
			return c.Counterparty.Unmarshal(f.Bytes)
		case 5:
			c.DelayPeriod = f.Varint
		}
		return nil
	})
}

// Marshal encodes the counterparty with the field numbers of
// ibc.core.connection.v1.Counterparty.
func (c Counterparty) Marshal() []byte {
	return new(wire.Encoder).
		String(1, c.ClientId).
		String(2, c.ConnectionId).
		Message(3, c.Prefix.Marshal()).
		Encoded()
}

// Unmarshal decodes a counterparty produced by Marshal.
func (c *Counterparty) Unmarshal(bz []byte) error {
	*c = Counterparty{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			c.ClientId = string(f.Bytes)
		case 2:
			c.ConnectionId = string(f.Bytes)
		case 3:
			return c.Prefix.Unmarshal(f.Bytes)
		}
		return nil
	})
}

// MustMarshalConnection encodes a connection end.
func MustMarshalConnection(connection ConnectionEnd) []byte {
	return connection.Marshal()
}

// MustUnmarshalConnection decodes a connection end and panics on failure.
// Stored records are always written by Marshal.
func MustUnmarshalConnection(bz []byte) ConnectionEnd {
	var connection ConnectionEnd
	if err := connection.Unmarshal(bz); err != nil {
		panic(err)
	}
	return connection
}
