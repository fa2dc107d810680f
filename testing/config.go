package ibctesting

import (
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

// ClientConfig selects the client type an endpoint creates. Both supported
// types are served by the mock light client.
type ClientConfig struct {
	ClientType string
}

func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		ClientType: DefaultClientType,
	}
}

type ConnectionConfig struct {
	DelayPeriod uint64
	Version     *connectiontypes.Version
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
