package ibctesting

import (
	"bytes"
	"errors"

	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
)

// Path contains two endpoints representing two chains connected over IBC
type Path struct {
	EndpointA *Endpoint
	EndpointB *Endpoint
}

// NewPath constructs an endpoint for each chain using the default values
// for the endpoints. Each endpoint is updated to have a pointer to the
// counterparty endpoint.
func NewPath(chainA, chainB *TestChain) *Path {
	endpointA := NewDefaultEndpoint(chainA)
	endpointB := NewDefaultEndpoint(chainB)

	endpointA.Counterparty = endpointB
	endpointB.Counterparty = endpointA

	return &Path{
		EndpointA: endpointA,
		EndpointB: endpointB,
	}
}

// SetChannelOrdered sets the channel order for both endpoints to ORDERED.
func (path *Path) SetChannelOrdered() {
	path.EndpointA.ChannelConfig.Order = channeltypes.ORDERED
	path.EndpointB.ChannelConfig.Order = channeltypes.ORDERED
}

// RelayPacket attempts to relay the packet first on EndpointA and then on EndpointB
// if EndpointA does not contain a packet commitment for that packet. An error is returned
// if a relay step fails or the packet commitment does not exist on either endpoint.
func (path *Path) RelayPacket(packet channeltypes.Packet) error {
	_, err := path.RelayPacketWithResults(packet)
	return err
}

// RelayPacketWithResults receives the packet on the counterparty of the
// sending endpoint and, if an acknowledgement was written, acknowledges it
// on the sending endpoint. The written acknowledgement is returned.
func (path *Path) RelayPacketWithResults(packet channeltypes.Packet) ([]byte, error) {
	for _, pair := range [][2]*Endpoint{
		{path.EndpointA, path.EndpointB},
		{path.EndpointB, path.EndpointA},
	} {
		src, dst := pair[0], pair[1]

		commitment := src.Chain.App.IBCKeeper.ChannelKeeper.GetPacketCommitment(
			src.Chain.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(),
		)
		if !bytes.Equal(commitment, channeltypes.CommitPacket(packet)) {
			continue
		}

		ack, err := dst.RecvPacket(packet)
		if err != nil {
			return nil, err
		}
		if ack == nil {
			return nil, nil
		}

		if err := src.AcknowledgePacket(packet, ack); err != nil {
			return nil, err
		}
		return ack, nil
	}

	return nil, errors.New("packet commitment does not exist on either endpoint for provided packet")
}

// Setup constructs a TM client, connection, and channel on both chains provided. It will
// fail if any error occurs.
func (path *Path) Setup() {
	path.SetupConnections()

	// channels can also be referred to as 'ports'
	path.CreateChannels()
}

// SetupClients is a helper function to create clients on both chains. It assumes the
// caller does not anticipate any errors.
func (path *Path) SetupClients() {
	err := path.EndpointA.CreateClient()
	if err != nil {
		panic(err)
	}

	err = path.EndpointB.CreateClient()
	if err != nil {
		panic(err)
	}
}

// SetupConnections is a helper function to create clients and the appropriate
// connections on both the source and counterparty chain. It assumes the caller does not
// anticipate any errors.
func (path *Path) SetupConnections() {
	path.SetupClients()

	path.CreateConnections()
}

// CreateConnections constructs and executes connection handshake messages in order to create
// OPEN connections on chainA and chainB. The function expects the connections to be
// successfully opened otherwise testing will fail.
func (path *Path) CreateConnections() {
	err := path.EndpointA.ConnOpenInit()
	if err != nil {
		panic(err)
	}

	err = path.EndpointB.ConnOpenTry()
	if err != nil {
		panic(err)
	}

	err = path.EndpointA.ConnOpenAck()
	if err != nil {
		panic(err)
	}

	err = path.EndpointB.ConnOpenConfirm()
	if err != nil {
		panic(err)
	}
}

// CreateChannels constructs and executes channel handshake messages in order to create
// OPEN channels on chainA and chainB. The function expects the channels to be
// successfully opened otherwise testing will fail.
func (path *Path) CreateChannels() {
	err := path.EndpointA.ChanOpenInit()
	if err != nil {
		panic(err)
	}

	err = path.EndpointB.ChanOpenTry()
	if err != nil {
		panic(err)
	}

	err = path.EndpointA.ChanOpenAck()
	if err != nil {
		panic(err)
	}

	err = path.EndpointB.ChanOpenConfirm()
	if err != nil {
		panic(err)
	}
}
