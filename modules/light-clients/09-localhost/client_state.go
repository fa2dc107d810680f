package localhost

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
)

// ClientState is the view the localhost client exposes of itself: the
// current block height of the host.
type ClientState struct {
	LatestHeight clienttypes.Height `json:"latest_height" yaml:"latest_height"`
}

// Marshal encodes the client state (field 1: latest_height).
func (cs ClientState) Marshal() []byte {
	return new(wire.Encoder).Message(1, cs.LatestHeight.Marshal()).Encoded()
}

// Unmarshal decodes a client state produced by Marshal.
func (cs *ClientState) Unmarshal(bz []byte) error {
	*cs = ClientState{}
	return wire.Decode(bz, func(f wire.Field) error {
		if f.Num == 1 {
			return cs.LatestHeight.Unmarshal(f.Bytes)
		}
		return nil
	})
}
