package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
)

// sendUnrelayedPacket sends a packet on endpointA without updating the
// endpointB client.
func (suite *KeeperTestSuite) sendUnrelayedPacket(path *ibctesting.Path, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) types.Packet {
	sequence, err := path.EndpointA.SendPacket(timeoutHeight, timeoutTimestamp, ibctesting.MockPacketData)
	suite.Require().NoError(err)

	return types.NewPacket(
		ibctesting.MockPacketData, sequence,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		timeoutHeight, timeoutTimestamp,
	)
}

// TestTimeoutPacket tests timing out on chainA a packet chainB never received.
func (suite *KeeperTestSuite) TestTimeoutPacket() {
	var (
		path             *ibctesting.Path
		packet           types.Packet
		proof            []byte
		nextSequenceRecv uint64
	)

	// timeoutOnHeight sends a packet that times out at the current chainB
	// height and commits a chainB block past it.
	timeoutOnHeight := func(order types.Order) {
		path.EndpointA.ChannelConfig.Order = order
		path.EndpointB.ChannelConfig.Order = order
		path.Setup()

		timeoutHeight := clienttypes.NewHeight(0, uint64(suite.chainB.CurrentHeader.Height))
		packet = suite.sendUnrelayedPacket(path, timeoutHeight, disabledTimeoutTimestamp)
		suite.coordinator.CommitBlock(suite.chainB)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: UNORDERED channel, timeout height", func() {
			timeoutOnHeight(types.UNORDERED)
		}, nil},
		{"success: ORDERED channel, timeout height", func() {
			timeoutOnHeight(types.ORDERED)
		}, nil},
		{"success: UNORDERED channel, timeout timestamp", func() {
			path.Setup()
			packet = suite.sendUnrelayedPacket(path, clienttypes.ZeroHeight(), suite.chainB.CurrentTimestamp())
			suite.coordinator.CommitBlock(suite.chainB)
		}, nil},
		{"failure: channel does not exist", func() {
			timeoutOnHeight(types.UNORDERED)
			packet.SourceChannel = "channel-10"
		}, types.ErrChannelNotFound},
		{"failure: channel is CLOSED", func() {
			timeoutOnHeight(types.UNORDERED)
			path.EndpointA.SetChannelState(types.CLOSED)
		}, types.ErrInvalidChannelState},
		{"failure: packet destination is not the counterparty channel", func() {
			timeoutOnHeight(types.UNORDERED)
			packet.DestinationChannel = "channel-10"
		}, types.ErrInvalidPacketDestination},
		{"failure: timeout height not reached", func() {
			path.Setup()
			packet = suite.sendUnrelayedPacket(path, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
		}, types.ErrTimeoutNotReached},
		{"failure: timeout timestamp not reached", func() {
			path.Setup()
			packet = suite.sendUnrelayedPacket(path, clienttypes.ZeroHeight(), suite.chainB.GetTimeoutTimestamp())
		}, types.ErrTimeoutNotReached},
		{"failure: packet commitment does not exist", func() {
			timeoutOnHeight(types.UNORDERED)
			packet.Sequence = 2
		}, types.ErrPacketCommitmentNotFound},
		{"failure: packet does not match the commitment", func() {
			timeoutOnHeight(types.UNORDERED)
			packet.Data = []byte("not the sent data")
		}, types.ErrPacketCommitmentMismatch},
		{"failure: UNORDERED packet was received", func() {
			timeoutOnHeight(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(
				suite.chainB.GetContext(), packet.DestinationPort, packet.DestinationChannel, packet.Sequence,
			)
		}, commitmenttypes.ErrNonMembershipVerificationFailed},
		{"failure: UNORDERED invalid proof", func() {
			timeoutOnHeight(types.UNORDERED)
			proof = []byte("invalid proof")
		}, commitmenttypes.ErrNonMembershipVerificationFailed},
		{"failure: ORDERED packet already processed", func() {
			timeoutOnHeight(types.ORDERED)
			nextSequenceRecv = packet.Sequence + 1
		}, types.ErrPacketAlreadyProcessed},
		{"failure: ORDERED next receive sequence differs from the counterparty", func() {
			timeoutOnHeight(types.ORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetNextSequenceRecv(
				suite.chainB.GetContext(), packet.DestinationPort, packet.DestinationChannel, 0,
			)
		}, commitmenttypes.ErrMembershipVerificationFailed},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			proof = ibctesting.MockProof
			nextSequenceRecv = 1

			tc.malleate()

			suite.Require().NoError(path.EndpointA.UpdateClient())

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainA.App.IBCKeeper.ChannelKeeper.TimeoutPacket(
				ctx, packet, proof, path.EndpointA.GetClientLatestHeight(), nextSequenceRecv,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))

				expected := map[string]map[string]string{
					types.EventTypeTimeoutPacket: {
						types.AttributeKeySrcChannel: packet.SourceChannel,
						types.AttributeKeySequence:   "1",
					},
				}

				channel := path.EndpointA.GetChannel()
				if channel.Ordering == types.ORDERED {
					suite.Require().Equal(types.CLOSED, channel.State)
					expected[types.EventTypeChannelClosed] = map[string]string{
						types.AttributeKeyChannelID: packet.SourceChannel,
					}
				} else {
					suite.Require().Equal(types.OPEN, channel.State)
				}

				ibctesting.AssertEventsContain(suite.T(), expected, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)

				if tc.expErr == types.ErrTimeoutNotReached {
					suite.Require().True(path.EndpointA.HasPacketCommitment(packet.Sequence))
				}
			}
		})
	}
}

// TestTimeoutOnClose tests timing out on chainA a packet addressed to a
// channel chainB has closed.
func (suite *KeeperTestSuite) TestTimeoutOnClose() {
	var (
		path        *ibctesting.Path
		packet      types.Packet
		proof       []byte
		closedProof []byte
	)

	// sendAndClose sends a packet which has not timed out and closes the
	// chainB channel end.
	sendAndClose := func(order types.Order) {
		path.EndpointA.ChannelConfig.Order = order
		path.EndpointB.ChannelConfig.Order = order
		path.Setup()

		packet = suite.sendUnrelayedPacket(path, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
		path.EndpointB.SetChannelState(types.CLOSED)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: UNORDERED channel", func() {
			sendAndClose(types.UNORDERED)
		}, nil},
		{"success: ORDERED channel", func() {
			sendAndClose(types.ORDERED)
		}, nil},
		{"success: ORDERED channel already closed by an earlier timeout", func() {
			sendAndClose(types.ORDERED)
			path.EndpointA.SetChannelState(types.CLOSED)
		}, nil},
		{"failure: channel does not exist", func() {
			sendAndClose(types.UNORDERED)
			packet.SourceChannel = "channel-10"
		}, types.ErrChannelNotFound},
		{"failure: packet destination is not the counterparty channel", func() {
			sendAndClose(types.UNORDERED)
			packet.DestinationChannel = "channel-10"
		}, types.ErrInvalidPacketDestination},
		{"failure: packet commitment does not exist", func() {
			sendAndClose(types.UNORDERED)
			packet.Sequence = 2
		}, types.ErrPacketCommitmentNotFound},
		{"failure: counterparty channel is not CLOSED", func() {
			path.Setup()
			packet = suite.sendUnrelayedPacket(path, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: invalid closed proof", func() {
			sendAndClose(types.UNORDERED)
			closedProof = []byte("invalid proof")
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: UNORDERED packet was received", func() {
			sendAndClose(types.UNORDERED)
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(
				suite.chainB.GetContext(), packet.DestinationPort, packet.DestinationChannel, packet.Sequence,
			)
		}, commitmenttypes.ErrNonMembershipVerificationFailed},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			proof = ibctesting.MockProof
			closedProof = ibctesting.MockProof

			tc.malleate()

			suite.Require().NoError(path.EndpointA.UpdateClient())

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainA.App.IBCKeeper.ChannelKeeper.TimeoutOnClose(
				ctx, packet, proof, closedProof, path.EndpointA.GetClientLatestHeight(), 1,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))

				channel := path.EndpointA.GetChannel()
				if channel.Ordering == types.ORDERED {
					suite.Require().Equal(types.CLOSED, channel.State)
				}

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeTimeoutPacketOnClose: {
						types.AttributeKeySrcChannel: packet.SourceChannel,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
