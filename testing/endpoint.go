package ibctesting

import (
	"context"

	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	mockclient "github.com/multiversx/mx-ibc-go/modules/light-clients/00-mock"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

// Endpoint is one side of a path: a chain together with the client,
// connection and channel it opened towards the counterparty endpoint. The
// config structs select the parameters of the messages it delivers.
type Endpoint struct {
	Chain        *TestChain
	Counterparty *Endpoint
	ClientID     string
	ConnectionID string
	ChannelID    string

	ClientConfig     *ClientConfig
	ConnectionConfig *ConnectionConfig
	ChannelConfig    *ChannelConfig
}

// NewEndpoint constructs a new endpoint without the counterparty.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewEndpoint(
	chain *TestChain, clientConfig *ClientConfig,
	connectionConfig *ConnectionConfig, channelConfig *ChannelConfig,
) *Endpoint {
	return &Endpoint{
		Chain:            chain,
		ClientConfig:     clientConfig,
		ConnectionConfig: connectionConfig,
		ChannelConfig:    channelConfig,
	}
}

// NewDefaultEndpoint constructs a new endpoint using default values.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewDefaultEndpoint(chain *TestChain) *Endpoint {
	return &Endpoint{
		Chain:            chain,
		ClientConfig:     NewClientConfig(),
		ConnectionConfig: NewConnectionConfig(),
		ChannelConfig:    NewChannelConfig(),
	}
}

// CreateClient creates a mock client of the counterparty chain on the
// endpoint chain, initialised at the last committed counterparty block.
func (endpoint *Endpoint) CreateClient() error {
	counterpartyChain := endpoint.Counterparty.Chain

	clientState := mockclient.NewClientState(counterpartyChain.ChainID, counterpartyChain.LatestHeight())
	consensusState := mockclient.NewConsensusState(counterpartyChain.LatestTimestamp())

	msg := clienttypes.NewMsgCreateClient(
		endpoint.ClientConfig.ClientType, clientState.Marshal(), consensusState.Marshal(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.CreateClient(goCtx, msg)
		if err != nil {
			return err
		}
		endpoint.ClientID = res.ClientId
		return nil
	})
	return err
}

// UpdateClient updates the endpoint client to the last committed block of
// the counterparty chain.
func (endpoint *Endpoint) UpdateClient() error {
	counterpartyChain := endpoint.Counterparty.Chain

	header := mockclient.NewHeader(counterpartyChain.LatestHeight(), counterpartyChain.LatestTimestamp())
	msg := clienttypes.NewMsgUpdateClient(endpoint.ClientID, header.Marshal(), endpoint.Chain.SenderAccount)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.UpdateClient(goCtx, msg)
		return err
	})
	return err
}

// GetClientLatestHeight returns the latest height of the endpoint client.
// Proofs against the counterparty are constructed at this height.
func (endpoint *Endpoint) GetClientLatestHeight() clienttypes.Height {
	return endpoint.Chain.App.IBCKeeper.ClientKeeper.GetLatestHeight(endpoint.Chain.GetContext(), endpoint.ClientID)
}

// ConnOpenInit will construct and execute a MsgConnectionOpenInit on the associated endpoint.
func (endpoint *Endpoint) ConnOpenInit() error {
	counterparty := connectiontypes.NewCounterparty(
		endpoint.Counterparty.ClientID, "", endpoint.Counterparty.Chain.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix(),
	)

	msg := connectiontypes.NewMsgConnectionOpenInit(
		endpoint.ClientID, counterparty,
		endpoint.ConnectionConfig.Version, endpoint.ConnectionConfig.DelayPeriod,
		endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.ConnectionOpenInit(goCtx, msg)
		if err != nil {
			return err
		}
		endpoint.ConnectionID = res.ConnectionId
		return nil
	})
	return err
}

// ConnOpenTry will construct and execute a MsgConnectionOpenTry on the associated endpoint.
func (endpoint *Endpoint) ConnOpenTry() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	clientState, proofHeight, consensusHeight, hostConsensusState := endpoint.QueryConnectionHandshakeProof()

	counterpartyConnection := endpoint.Counterparty.Chain.GetConnection(endpoint.Counterparty.ConnectionID)
	counterparty := connectiontypes.NewCounterparty(
		endpoint.Counterparty.ClientID, endpoint.Counterparty.ConnectionID,
		endpoint.Counterparty.Chain.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix(),
	)

	msg := &connectiontypes.MsgConnectionOpenTry{
		ClientId:                endpoint.ClientID,
		Counterparty:            counterparty,
		DelayPeriod:             endpoint.ConnectionConfig.DelayPeriod,
		ClientState:             clientState,
		CounterpartyVersions:    counterpartyConnection.Versions,
		ProofInit:               MockProof,
		ProofClient:             MockProof,
		ProofConsensus:          MockProof,
		ProofHeight:             proofHeight,
		ConsensusHeight:         consensusHeight,
		HostConsensusStateProof: hostConsensusState,
		Signer:                  endpoint.Chain.SenderAccount,
	}

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.ConnectionOpenTry(goCtx, msg)
		if err != nil {
			return err
		}
		endpoint.ConnectionID = res.ConnectionId
		return nil
	})
	return err
}

// ConnOpenAck will construct and execute a MsgConnectionOpenAck on the associated endpoint.
func (endpoint *Endpoint) ConnOpenAck() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	clientState, proofHeight, consensusHeight, hostConsensusState := endpoint.QueryConnectionHandshakeProof()

	counterpartyConnection := endpoint.Counterparty.Chain.GetConnection(endpoint.Counterparty.ConnectionID)
	require.Len(endpoint.Chain.TB, counterpartyConnection.Versions, 1)

	msg := &connectiontypes.MsgConnectionOpenAck{
		ConnectionId:             endpoint.ConnectionID,
		CounterpartyConnectionId: endpoint.Counterparty.ConnectionID,
		Version:                  counterpartyConnection.Versions[0],
		ClientState:              clientState,
		ProofTry:                 MockProof,
		ProofClient:              MockProof,
		ProofConsensus:           MockProof,
		ProofHeight:              proofHeight,
		ConsensusHeight:          consensusHeight,
		HostConsensusStateProof:  hostConsensusState,
		Signer:                   endpoint.Chain.SenderAccount,
	}

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ConnectionOpenAck(goCtx, msg)
		return err
	})
	return err
}

// ConnOpenConfirm will construct and execute a MsgConnectionOpenConfirm on the associated endpoint.
func (endpoint *Endpoint) ConnOpenConfirm() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := connectiontypes.NewMsgConnectionOpenConfirm(
		endpoint.ConnectionID, MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ConnectionOpenConfirm(goCtx, msg)
		return err
	})
	return err
}

// QueryConnectionHandshakeProof returns the client state the counterparty
// holds for the endpoint chain, the proof height, and the consensus height and
// encoded consensus state of the counterparty client at its latest height.
func (endpoint *Endpoint) QueryConnectionHandshakeProof() (
	clientState []byte, proofHeight, consensusHeight clienttypes.Height, consensusState []byte,
) {
	counterparty := endpoint.Counterparty
	counterpartyCtx := counterparty.Chain.GetContext()
	clientModule := counterparty.Chain.App.MockClientModule

	var err error
	clientState, err = clientModule.ClientState(counterpartyCtx, counterparty.ClientID)
	require.NoError(endpoint.Chain.TB, err)

	consensusHeight = counterparty.GetClientLatestHeight()
	consensusState, err = clientModule.ConsensusState(counterpartyCtx, counterparty.ClientID, consensusHeight)
	require.NoError(endpoint.Chain.TB, err)

	return clientState, endpoint.GetClientLatestHeight(), consensusHeight, consensusState
}

// ChanOpenInit will construct and execute a MsgChannelOpenInit on the associated endpoint.
func (endpoint *Endpoint) ChanOpenInit() error {
	msg := channeltypes.NewMsgChannelOpenInit(
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelConfig.Version, endpoint.ChannelConfig.Order, []string{endpoint.ConnectionID},
		endpoint.Counterparty.ChannelConfig.PortID,
		endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.ChannelOpenInit(goCtx, msg)
		if err != nil {
			return err
		}
		endpoint.ChannelID = res.ChannelId
		// update version to selected app version
		endpoint.ChannelConfig.Version = res.Version
		return nil
	})
	return err
}

// ChanOpenTry will construct and execute a MsgChannelOpenTry on the associated endpoint.
func (endpoint *Endpoint) ChanOpenTry() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenTry(
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelConfig.Version, endpoint.ChannelConfig.Order, []string{endpoint.ConnectionID},
		endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID, endpoint.Counterparty.ChannelConfig.Version,
		MockProof, endpoint.GetClientLatestHeight(),
		endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.ChannelOpenTry(goCtx, msg)
		if err != nil {
			return err
		}
		endpoint.ChannelID = res.ChannelId
		// update version to selected app version
		endpoint.ChannelConfig.Version = res.Version
		return nil
	})
	return err
}

// ChanOpenAck will construct and execute a MsgChannelOpenAck on the associated endpoint.
func (endpoint *Endpoint) ChanOpenAck() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenAck(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		endpoint.Counterparty.ChannelID, endpoint.Counterparty.ChannelConfig.Version,
		MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ChannelOpenAck(goCtx, msg)
		return err
	})
	if err != nil {
		return err
	}

	endpoint.ChannelConfig.Version = endpoint.GetChannel().Version
	return nil
}

// ChanOpenConfirm will construct and execute a MsgChannelOpenConfirm on the associated endpoint.
func (endpoint *Endpoint) ChanOpenConfirm() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenConfirm(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ChannelOpenConfirm(goCtx, msg)
		return err
	})
	return err
}

// ChanCloseInit will construct and execute a MsgChannelCloseInit on the associated endpoint.
func (endpoint *Endpoint) ChanCloseInit() error {
	msg := channeltypes.NewMsgChannelCloseInit(endpoint.ChannelConfig.PortID, endpoint.ChannelID, endpoint.Chain.SenderAccount)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ChannelCloseInit(goCtx, msg)
		return err
	})
	return err
}

// ChanCloseConfirm will construct and execute a MsgChannelCloseConfirm on the associated endpoint.
func (endpoint *Endpoint) ChanCloseConfirm() error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelCloseConfirm(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID,
		MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.ChannelCloseConfirm(goCtx, msg)
		return err
	})
	return err
}

// SendPacket sends a packet through the channel keeper using the associated
// endpoint. The mock module owns every channel, so it sends on its behalf. The
// packet sequence is returned.
func (endpoint *Endpoint) SendPacket(
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	msg := channeltypes.NewMsgSendPacket(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID, timeoutHeight, timeoutTimestamp, data, mock.ModuleAddress,
	)

	var sequence uint64
	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.SendPacket(goCtx, msg)
		if err != nil {
			return err
		}
		sequence = res.Sequence
		return nil
	})
	if err != nil {
		return 0, err
	}

	return sequence, nil
}

// RecvPacket receives a packet on the associated endpoint. The counterparty
// client is updated so the packet commitment can be proven. The written
// acknowledgement, if any, is returned.
func (endpoint *Endpoint) RecvPacket(packet channeltypes.Packet) ([]byte, error) {
	_, ack, err := endpoint.RecvPacketWithResult(packet)
	return ack, err
}

// RecvPacketWithResult receives a packet on the associated endpoint and
// returns the emitted events together with the written acknowledgement.
func (endpoint *Endpoint) RecvPacketWithResult(packet channeltypes.Packet) (sdk.Events, []byte, error) {
	if err := endpoint.UpdateClient(); err != nil {
		return nil, nil, err
	}

	msg := channeltypes.NewMsgRecvPacket(packet, MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount)

	var ack []byte
	events, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		res, err := endpoint.Chain.App.IBCKeeper.RecvPacket(goCtx, msg)
		if err != nil {
			return err
		}
		ack = res.Acknowledgement
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return events, ack, nil
}

// WriteAcknowledgement writes an asynchronous acknowledgement for a packet
// received on the associated endpoint.
func (endpoint *Endpoint) WriteAcknowledgement(ack channeltypes.Acknowledgement, packet channeltypes.Packet) error {
	msg := channeltypes.NewMsgWriteAcknowledgement(packet, ack, mock.ModuleAddress)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.WriteAcknowledgement(goCtx, msg)
		return err
	})
	return err
}

// AcknowledgePacket sends a MsgAcknowledgement to the channel associated with the endpoint.
func (endpoint *Endpoint) AcknowledgePacket(packet channeltypes.Packet, ack []byte) error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgAcknowledgement(packet, ack, MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.Acknowledgement(goCtx, msg)
		return err
	})
	return err
}

// TimeoutPacket sends a MsgTimeout to the channel associated with the endpoint.
func (endpoint *Endpoint) TimeoutPacket(packet channeltypes.Packet) error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgTimeout(
		packet, endpoint.Counterparty.GetNextSequenceRecv(), MockProof, endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.Timeout(goCtx, msg)
		return err
	})
	return err
}

// TimeoutOnClose sends a MsgTimeoutOnClose to the channel associated with the endpoint.
func (endpoint *Endpoint) TimeoutOnClose(packet channeltypes.Packet) error {
	if err := endpoint.UpdateClient(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgTimeoutOnClose(
		packet, endpoint.Counterparty.GetNextSequenceRecv(), MockProof, MockProof,
		endpoint.GetClientLatestHeight(), endpoint.Chain.SenderAccount,
	)

	_, err := endpoint.Chain.Deliver(func(goCtx context.Context) error {
		_, err := endpoint.Chain.App.IBCKeeper.TimeoutOnClose(goCtx, msg)
		return err
	})
	return err
}

// SetChannelState sets a channel state and commits the block.
func (endpoint *Endpoint) SetChannelState(state channeltypes.State) {
	channel := endpoint.GetChannel()
	channel.State = state
	endpoint.SetChannel(channel)
}

// GetClientStatus returns the status of the endpoint client.
func (endpoint *Endpoint) GetClientStatus() exported.Status {
	return endpoint.Chain.App.IBCKeeper.ClientKeeper.GetClientStatus(endpoint.Chain.GetContext(), endpoint.ClientID)
}

// SetClientStatus overrides the status of the endpoint mock client and
// commits the block.
func (endpoint *Endpoint) SetClientStatus(status exported.Status) {
	err := endpoint.Chain.App.MockClientModule.SetStatus(endpoint.Chain.GetContext(), endpoint.ClientID, status)
	require.NoError(endpoint.Chain.TB, err)

	endpoint.Chain.Coordinator.CommitBlock(endpoint.Chain)
}

// GetConnection retrieves an IBC Connection for the endpoint. The
// connection is expected to exist otherwise testing will fail.
func (endpoint *Endpoint) GetConnection() connectiontypes.ConnectionEnd {
	return endpoint.Chain.GetConnection(endpoint.ConnectionID)
}

// SetConnection sets the connection for this endpoint and commits the block.
func (endpoint *Endpoint) SetConnection(connection connectiontypes.ConnectionEnd) {
	endpoint.Chain.App.IBCKeeper.ConnectionKeeper.SetConnection(endpoint.Chain.GetContext(), endpoint.ConnectionID, connection)

	endpoint.Chain.Coordinator.CommitBlock(endpoint.Chain)
}

// GetChannel retrieves an IBC Channel for the endpoint. The channel
// is expected to exist otherwise testing will fail.
func (endpoint *Endpoint) GetChannel() channeltypes.Channel {
	return endpoint.Chain.GetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID)
}

// SetChannel sets the channel for this endpoint and commits the block.
func (endpoint *Endpoint) SetChannel(channel channeltypes.Channel) {
	endpoint.Chain.App.IBCKeeper.ChannelKeeper.SetChannel(endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID, channel)

	endpoint.Chain.Coordinator.CommitBlock(endpoint.Chain)
}

// GetNextSequenceRecv returns the next receive sequence of the endpoint channel.
func (endpoint *Endpoint) GetNextSequenceRecv() uint64 {
	sequence, found := endpoint.Chain.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(
		endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID,
	)
	require.True(endpoint.Chain.TB, found)

	return sequence
}

// QueryPacketReceipt reports whether the endpoint chain stored a receipt for the sequence.
func (endpoint *Endpoint) QueryPacketReceipt(sequence uint64) bool {
	_, found := endpoint.Chain.App.IBCKeeper.ChannelKeeper.GetPacketReceipt(
		endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID, sequence,
	)
	return found
}

// HasPacketCommitment reports whether the endpoint chain still commits to
// the sent packet with the given sequence.
func (endpoint *Endpoint) HasPacketCommitment(sequence uint64) bool {
	return endpoint.Chain.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(
		endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID, sequence,
	)
}
