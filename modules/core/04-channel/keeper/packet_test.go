package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

var disabledTimeoutTimestamp = uint64(0)

// emptyAcknowledgement encodes to no bytes at all.
type emptyAcknowledgement struct{}

func (emptyAcknowledgement) Success() bool           { return true }
func (emptyAcknowledgement) Acknowledgement() []byte { return nil }

// sendPacket sends data on the endpointA channel and updates the endpointB
// client so the packet commitment can be proven on chainB.
func (suite *KeeperTestSuite) sendPacket(path *ibctesting.Path, data []byte, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) types.Packet {
	sequence, err := path.EndpointA.SendPacket(timeoutHeight, timeoutTimestamp, data)
	suite.Require().NoError(err)
	suite.Require().NoError(path.EndpointB.UpdateClient())

	return types.NewPacket(
		data, sequence,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		timeoutHeight, timeoutTimestamp,
	)
}

// TestSendPacket tests SendPacket from chainA to chainB
func (suite *KeeperTestSuite) TestSendPacket() {
	var (
		path             *ibctesting.Path
		caller           sdk.AccAddress
		sourceChannel    string
		packetData       []byte
		timeoutHeight    clienttypes.Height
		timeoutTimestamp uint64
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: UNORDERED channel", func() {
			path.Setup()
		}, nil},
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
		}, nil},
		{"success: timeout height disabled", func() {
			path.Setup()
			timeoutHeight = clienttypes.ZeroHeight()
		}, nil},
		{"success: timeout timestamp disabled", func() {
			path.Setup()
			timeoutTimestamp = disabledTimeoutTimestamp
		}, nil},
		{"failure: caller does not own the channel capability", func() {
			path.Setup()
			caller = suite.chainA.SenderAccount
		}, types.ErrChannelCapabilityNotFound},
		{"failure: channel does not exist", func() {
			path.Setup()
			sourceChannel = "channel-10"
			err := suite.chainA.App.IBCKeeper.PortKeeper.ClaimChannelCapability(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, sourceChannel, mock.ModuleAddress,
			)
			suite.Require().NoError(err)
		}, types.ErrChannelNotFound},
		{"failure: channel is CLOSED", func() {
			path.Setup()
			path.EndpointA.SetChannelState(types.CLOSED)
		}, types.ErrInvalidChannelState},
		{"failure: channel is still in INIT", func() {
			path.SetupConnections()
			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			sourceChannel = path.EndpointA.ChannelID
		}, types.ErrInvalidChannelState},
		{"failure: both timeouts disabled", func() {
			path.Setup()
			timeoutHeight = clienttypes.ZeroHeight()
			timeoutTimestamp = disabledTimeoutTimestamp
		}, types.ErrZeroTimeout},
		{"failure: empty packet data", func() {
			path.Setup()
			packetData = []byte{}
		}, types.ErrInvalidPacket},
		{"failure: client is frozen", func() {
			path.Setup()
			path.EndpointA.SetClientStatus(exported.Frozen)
		}, clienttypes.ErrClientNotActive},
		{"failure: timeout height already passed on the counterparty", func() {
			path.Setup()
			timeoutHeight = path.EndpointA.GetClientLatestHeight()
		}, types.ErrPastTimeoutHeight},
		{"failure: timeout timestamp already passed on the counterparty", func() {
			path.Setup()
			latestInfo, err := suite.chainA.App.IBCKeeper.ClientKeeper.GetLatestInfo(suite.chainA.GetContext(), path.EndpointA.ClientID)
			suite.Require().NoError(err)
			timeoutTimestamp = latestInfo.LatestTimestamp
		}, types.ErrPastTimeoutTimestamp},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			caller = mock.ModuleAddress
			sourceChannel = ibctesting.FirstChannelID
			packetData = ibctesting.MockPacketData
			timeoutHeight = suite.chainB.GetTimeoutHeight()
			timeoutTimestamp = suite.chainB.GetTimeoutTimestamp()

			tc.malleate()

			portID := path.EndpointA.ChannelConfig.PortID
			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())

			sequence, err := suite.chainA.App.IBCKeeper.ChannelKeeper.SendPacket(
				ctx, caller, portID, sourceChannel, timeoutHeight, timeoutTimestamp, packetData,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(uint64(1), sequence)

				packet := types.NewPacket(
					packetData, sequence, portID, sourceChannel,
					path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
					timeoutHeight, timeoutTimestamp,
				)
				commitment := suite.chainA.App.IBCKeeper.ChannelKeeper.GetPacketCommitment(ctx, portID, sourceChannel, sequence)
				suite.Require().Equal(types.CommitPacket(packet), commitment)

				nextSequenceSend, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetNextSequenceSend(ctx, portID, sourceChannel)
				suite.Require().True(found)
				suite.Require().Equal(sequence+1, nextSequenceSend)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeSendPacket: {
						types.AttributeKeySrcChannel: sourceChannel,
						types.AttributeKeyDstChannel: path.EndpointB.ChannelID,
						types.AttributeKeySequence:   "1",
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Zero(sequence)
			}
		})
	}
}

// TestRecvPacket tests RecvPacket on chainB for packets sent by chainA.
func (suite *KeeperTestSuite) TestRecvPacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		proof  []byte
	)

	setupAndSend := func(order types.Order) {
		path.EndpointA.ChannelConfig.Order = order
		path.EndpointB.ChannelConfig.Order = order
		path.Setup()
		packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: UNORDERED channel", func() {
			setupAndSend(types.UNORDERED)
		}, nil},
		{"success: ORDERED channel", func() {
			setupAndSend(types.ORDERED)
		}, nil},
		{"success: FLUSHING channel within the flush window", func() {
			setupAndSend(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetRecvStartSequence(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				types.NewRecvStartSequence(2, 1),
			)
			path.EndpointB.SetChannelState(types.FLUSHING)
		}, nil},
		{"failure: FLUSHING channel, packet sent after the upgrade started", func() {
			setupAndSend(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetRecvStartSequence(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				types.NewRecvStartSequence(1, 1),
			)
			path.EndpointB.SetChannelState(types.FLUSHING)
		}, types.ErrCannotReceiveNextUpgrade},
		{"failure: channel does not exist", func() {
			setupAndSend(types.UNORDERED)
			packet.DestinationChannel = "channel-10"
		}, types.ErrChannelNotFound},
		{"failure: channel is CLOSED", func() {
			setupAndSend(types.UNORDERED)
			path.EndpointB.SetChannelState(types.CLOSED)
		}, types.ErrInvalidChannelState},
		{"failure: packet source port is not the counterparty port", func() {
			setupAndSend(types.UNORDERED)
			packet.SourcePort = "invalidport"
		}, types.ErrInvalidPacketSource},
		{"failure: packet source channel is not the counterparty channel", func() {
			setupAndSend(types.UNORDERED)
			packet.SourceChannel = "channel-10"
		}, types.ErrInvalidPacketSource},
		{"failure: connection is not OPEN", func() {
			setupAndSend(types.UNORDERED)
			connection := path.EndpointB.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointB.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"failure: timeout height elapsed on the receiving chain", func() {
			path.Setup()
			timeoutHeight := clienttypes.NewHeight(0, uint64(suite.chainB.CurrentHeader.Height))
			packet = suite.sendPacket(path, ibctesting.MockPacketData, timeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrTimeoutElapsed},
		{"failure: timeout timestamp elapsed on the receiving chain", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, clienttypes.ZeroHeight(), suite.chainB.CurrentTimestamp())
		}, types.ErrTimeoutElapsed},
		{"failure: packet was never sent", func() {
			setupAndSend(types.UNORDERED)
			packet.Data = []byte("not the sent data")
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: invalid proof", func() {
			setupAndSend(types.UNORDERED)
			proof = []byte("invalid proof")
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: client is frozen", func() {
			setupAndSend(types.UNORDERED)
			path.EndpointB.SetClientStatus(exported.Frozen)
		}, clienttypes.ErrClientNotActive},
		{"failure: UNORDERED packet already received", func() {
			setupAndSend(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, packet.Sequence,
			)
		}, types.ErrPacketReceiptExists},
		{"failure: UNORDERED packet from a previous upgrade epoch", func() {
			setupAndSend(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetRecvStartSequence(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				types.NewRecvStartSequence(2, 0),
			)
		}, types.ErrPacketAlreadyProcessed},
		{"failure: ORDERED packet out of order", func() {
			setupAndSend(types.ORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetNextSequenceRecv(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, 5,
			)
		}, types.ErrPacketSequenceOutOfOrder},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			proof = ibctesting.MockProof

			tc.malleate()

			ctx := suite.chainB.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainB.App.IBCKeeper.ChannelKeeper.RecvPacket(ctx, packet, proof, path.EndpointB.GetClientLatestHeight())

			if tc.expErr == nil {
				suite.Require().NoError(err)

				channel := path.EndpointB.GetChannel()
				if channel.Ordering == types.ORDERED {
					suite.Require().Equal(packet.Sequence+1, path.EndpointB.GetNextSequenceRecv())
				} else {
					suite.Require().True(path.EndpointB.QueryPacketReceipt(packet.Sequence))
				}

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeRecvPacket: {
						types.AttributeKeySrcChannel:      packet.SourceChannel,
						types.AttributeKeyDstChannel:      packet.DestinationChannel,
						types.AttributeKeyChannelOrdering: channel.Ordering.String(),
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestWriteAcknowledgement tests writing an asynchronous acknowledgement on
// chainB for a packet it already received.
func (suite *KeeperTestSuite) TestWriteAcknowledgement() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		caller sdk.AccAddress
		ack    exported.Acknowledgement
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"success: error acknowledgement", func() {
			ack = mock.MockFailAcknowledgement
		}, nil},
		{"failure: caller does not own the channel capability", func() {
			caller = suite.chainB.SenderAccount
		}, types.ErrChannelCapabilityNotFound},
		{"failure: channel is not OPEN", func() {
			path.EndpointB.SetChannelState(types.CLOSED)
		}, types.ErrInvalidChannelState},
		{"failure: acknowledgement already written", func() {
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketAcknowledgement(
				suite.chainB.GetContext(), packet.DestinationPort, packet.DestinationChannel, packet.Sequence,
				commitmenttypes.CommitAcknowledgement(ibctesting.MockAcknowledgement),
			)
		}, types.ErrAcknowledgementExists},
		{"failure: nil acknowledgement", func() {
			ack = nil
		}, types.ErrInvalidAcknowledgement},
		{"failure: empty acknowledgement", func() {
			ack = emptyAcknowledgement{}
		}, types.ErrInvalidAcknowledgement},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			packet = suite.sendPacket(path, ibctesting.MockAsyncPacketData, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
			written, err := path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
			suite.Require().Nil(written)

			caller = mock.ModuleAddress
			ack = mock.MockAcknowledgement

			tc.malleate()

			ctx := suite.chainB.GetContext().WithEventManager(sdk.NewEventManager())
			err = suite.chainB.App.IBCKeeper.ChannelKeeper.WriteAcknowledgement(ctx, caller, packet, ack)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				stored, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetPacketAcknowledgement(
					ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence,
				)
				suite.Require().True(found)
				suite.Require().Equal(commitmenttypes.CommitAcknowledgement(ack.Acknowledgement()), stored)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeWriteAck: {
						types.AttributeKeyDstChannel: packet.DestinationChannel,
						types.AttributeKeySequence:   "1",
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestAcknowledgePacket tests acknowledging on chainA a packet chainB received.
func (suite *KeeperTestSuite) TestAcknowledgePacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		ack    []byte
		proof  []byte
	)

	setupAndRecv := func(order types.Order) {
		path.EndpointA.ChannelConfig.Order = order
		path.EndpointB.ChannelConfig.Order = order
		path.Setup()

		packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)

		var err error
		ack, err = path.EndpointB.RecvPacket(packet)
		suite.Require().NoError(err)
		suite.Require().NotNil(ack)

		suite.Require().NoError(path.EndpointA.UpdateClient())
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: UNORDERED channel", func() {
			setupAndRecv(types.UNORDERED)
		}, nil},
		{"success: ORDERED channel", func() {
			setupAndRecv(types.ORDERED)
		}, nil},
		{"success: FLUSHING channel", func() {
			setupAndRecv(types.UNORDERED)
			path.EndpointA.SetChannelState(types.FLUSHING)
		}, nil},
		{"failure: channel does not exist", func() {
			setupAndRecv(types.UNORDERED)
			packet.SourceChannel = "channel-10"
		}, types.ErrChannelNotFound},
		{"failure: channel is CLOSED", func() {
			setupAndRecv(types.UNORDERED)
			path.EndpointA.SetChannelState(types.CLOSED)
		}, types.ErrInvalidChannelState},
		{"failure: packet destination is not the counterparty channel", func() {
			setupAndRecv(types.UNORDERED)
			packet.DestinationChannel = "channel-10"
		}, types.ErrInvalidPacketDestination},
		{"failure: connection is not OPEN", func() {
			setupAndRecv(types.UNORDERED)
			connection := path.EndpointA.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointA.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"failure: packet commitment does not exist", func() {
			setupAndRecv(types.UNORDERED)
			packet.Sequence = 2
		}, types.ErrPacketCommitmentNotFound},
		{"failure: packet does not match the commitment", func() {
			setupAndRecv(types.UNORDERED)
			packet.Data = []byte("not the sent data")
		}, types.ErrPacketCommitmentMismatch},
		{"failure: acknowledgement differs from the one written", func() {
			setupAndRecv(types.UNORDERED)
			ack = ibctesting.MockFailAcknowledgement
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: invalid proof", func() {
			setupAndRecv(types.UNORDERED)
			proof = []byte("invalid proof")
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: ORDERED acknowledgement out of order", func() {
			setupAndRecv(types.ORDERED)
			suite.chainA.App.IBCKeeper.ChannelKeeper.SetNextSequenceAck(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, 5,
			)
		}, types.ErrPacketSequenceOutOfOrder},
		{"failure: UNORDERED acknowledgement from a previous upgrade epoch", func() {
			setupAndRecv(types.UNORDERED)
			suite.chainA.App.IBCKeeper.ChannelKeeper.SetAckStartSequence(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, 2,
			)
		}, types.ErrPacketAlreadyProcessed},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			proof = ibctesting.MockProof

			tc.malleate()

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainA.App.IBCKeeper.ChannelKeeper.AcknowledgePacket(ctx, packet, ack, proof, path.EndpointA.GetClientLatestHeight())

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))

				if path.EndpointA.ChannelConfig.Order == types.ORDERED {
					nextSequenceAck, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetNextSequenceAck(
						ctx, packet.SourcePort, packet.SourceChannel,
					)
					suite.Require().True(found)
					suite.Require().Equal(packet.Sequence+1, nextSequenceAck)
				}

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeAcknowledgePacket: {
						types.AttributeKeySrcChannel: packet.SourceChannel,
						types.AttributeKeySequence:   "1",
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
