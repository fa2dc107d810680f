package types

import (
	"github.com/multiversx/mx-ibc-go/internal/wire"
)

// ClientPaths define all the connection paths for a client state.
type ClientPaths struct {
	// list of connection paths
	Paths []string `json:"paths" yaml:"paths"`
}

// Marshal encodes the paths as repeated field 1.
func (cp ClientPaths) Marshal() []byte {
	return new(wire.Encoder).Strings(1, cp.Paths).Encoded()
}

// Unmarshal decodes paths produced by Marshal.
func (cp *ClientPaths) Unmarshal(bz []byte) error {
	*cp = ClientPaths{}
	return wire.Decode(bz, func(f wire.Field) error {
		if f.Num == 1 {
			cp.Paths = append(cp.Paths, string(f.Bytes))
		}
		return nil
	})
}

// IdentifiedConnection defines a connection with additional connection
// identifier field.
type IdentifiedConnection struct {
	Id string `json:"id" yaml:"id"`
	ConnectionEnd `yaml:",inline"`
}

// NewIdentifiedConnection creates a new IdentifiedConnection instance
func NewIdentifiedConnection(connectionID string, conn ConnectionEnd) IdentifiedConnection {
	return IdentifiedConnection{
		Id:            connectionID,
		ConnectionEnd: conn,
	}
}
