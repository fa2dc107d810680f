package types

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// MerklePrefix is the prefix under which a chain exposes its commitment
// store to counterparties.
type MerklePrefix struct {
	KeyPrefix []byte `json:"key_prefix,omitempty" yaml:"key_prefix"`
}

// NewMerklePrefix constructs new MerklePrefix instance
func NewMerklePrefix(keyPrefix []byte) MerklePrefix {
	return MerklePrefix{
		KeyPrefix: keyPrefix,
	}
}

// Bytes returns the key prefix bytes
func (mp MerklePrefix) Bytes() []byte {
	return mp.KeyPrefix
}

// Empty returns true if the prefix is empty
func (mp MerklePrefix) Empty() bool {
	return len(mp.Bytes()) == 0
}

// Marshal encodes the prefix (field 1: key_prefix).
func (mp MerklePrefix) Marshal() []byte {
	return new(wire.Encoder).Bytes(1, mp.KeyPrefix).Encoded()
}

// Unmarshal decodes a prefix produced by Marshal.
func (mp *MerklePrefix) Unmarshal(bz []byte) error {
	*mp = MerklePrefix{}
	return wire.Decode(bz, func(f wire.Field) error {
		if f.Num == 1 {
			mp.KeyPrefix = append([]byte(nil), f.Bytes...)
		}
		return nil
	})
}
