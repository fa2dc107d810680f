package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/internal/wire"
	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
)

// ClientState is the state of a mock client.
type ClientState struct {
	ChainId      string             `json:"chain_id" yaml:"chain_id"`
	LatestHeight clienttypes.Height `json:"latest_height" yaml:"latest_height"`
}

// NewClientState creates a new mock ClientState instance.
func NewClientState(chainID string, latestHeight clienttypes.Height) ClientState {
	return ClientState{
		ChainId:      chainID,
		LatestHeight: latestHeight,
	}
}

// Validate checks the client state can seed a mock client.
func (cs ClientState) Validate() error {
	if cs.ChainId == "" {
		return sdkerrors.Wrap(ErrInvalidClientState, "chain id cannot be empty")
	}
	if cs.LatestHeight.RevisionNumber != 0 || cs.LatestHeight.RevisionHeight == 0 {
		return sdkerrors.Wrapf(ErrInvalidClientState, "latest height %s must have revision 0 and a non-zero height", cs.LatestHeight)
	}
	return nil
}

// Marshal encodes the client state (field 1: chain_id, field 2: latest_height).
func (cs ClientState) Marshal() []byte {
	return new(wire.Encoder).String(1, cs.ChainId).Message(2, cs.LatestHeight.Marshal()).Encoded()
}

// Unmarshal decodes a client state produced by Marshal.
func (cs *ClientState) Unmarshal(bz []byte) error {
	*cs = ClientState{}
	return wire.Decode(bz, func(f wire.Field) error {
		switch f.Num {
		case 1:
			cs.ChainId = string(f.Bytes)
		case 2:
			return cs.LatestHeight.Unmarshal(f.Bytes)
		}
		return nil
	})
}
