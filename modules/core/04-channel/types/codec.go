package types

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// Marshal encodes the channel end with the field numbers of
// ibc.core.channel.v1.Channel. The output is what the core commits to and
// what counterparties verify.
func (ch Channel) Marshal() []byte {
	return new(wire.Encoder).
		Uint64(1, uint64(ch.State)).
		Uint64(2, uint64(ch.Ordering)).
		Message(3, ch.Counterparty.Marshal()).
		Strings(4, ch.ConnectionHops).
		String(5, ch.Version).
		Uint64(6, ch.UpgradeSequence).
		Encoded()
}

// Unmarshal decodes a channel end produced by Marshal.
func (ch *Channel) Unmarshal(bz []byte) error {
	*ch = Channel{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			ch.State = State(f.Varint)
		case 2:
			ch.Ordering = Order(f.Varint)
		case 3:
			return ch.Counterparty.Unmarshal(f.Bytes)
		case 4:
			ch.ConnectionHops = append(ch.ConnectionHops, string(f.Bytes))
		case 5:
			ch.Version = string(f.Bytes)
		case 6:
			ch.UpgradeSequence = f.Varint
		}
		return nil
	})
}

// Marshal encodes the counterparty (field 1: port_id, field 2: channel_id).
func (c Counterparty) Marshal() []byte {
	return new(wire.Encoder).String(1, c.PortId).String(2, c.ChannelId).Encoded()
}

// Unmarshal decodes a counterparty produced by Marshal.
func (c *Counterparty) Unmarshal(bz []byte) error {
	*c = Counterparty{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			c.PortId = string(f.Bytes)
		case 2:
			c.ChannelId = string(f.Bytes)
		}
		return nil
	})
}

// MustUnmarshalChannel decodes a channel end and panics on failure.
// Stored records are always written by Marshal.
func MustUnmarshalChannel(bz []byte) Channel {
	var channel Channel
	if err := channel.Unmarshal(bz); err != nil {
		panic(err)
	}
	return channel
}
