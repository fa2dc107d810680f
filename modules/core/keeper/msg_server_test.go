package keeper_test

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	coretypes "github.com/multiversx/mx-ibc-go/modules/core/types"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

// sendPacket sends data from endpointA and returns the sent packet.
func (suite *KeeperTestSuite) sendPacket(path *ibctesting.Path, data []byte, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) channeltypes.Packet {
	sequence, err := path.EndpointA.SendPacket(timeoutHeight, timeoutTimestamp, data)
	suite.Require().NoError(err)

	return channeltypes.NewPacket(
		data, sequence,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		timeoutHeight, timeoutTimestamp,
	)
}

// tests the IBC handler receiving a packet on ordered and unordered channels.
// It verifies that which application state is committed depends on the
// acknowledgement returned by the application.
func (suite *KeeperTestSuite) TestHandleRecvPacket() {
	var (
		path   *ibctesting.Path
		packet channeltypes.Packet
		proof  []byte
	)

	testCases := []struct {
		name       string
		malleate   func()
		expErr     error
		expAck     []byte
		expAppSave bool
	}{
		{
			"success: ORDERED channel",
			func() {
				path.SetChannelOrdered()
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
			},
			nil, ibctesting.MockAcknowledgement, true,
		},
		{
			"success: UNORDERED channel",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
			},
			nil, ibctesting.MockAcknowledgement, true,
		},
		{
			"success: asynchronous acknowledgement",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockAsyncPacketData, suite.chainB.GetTimeoutHeight(), 0)
			},
			nil, nil, true,
		},
		{
			"success: empty acknowledgement is left for a later write",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockEmptyAckPacketData, suite.chainB.GetTimeoutHeight(), 0)
			},
			nil, nil, true,
		},
		{
			"success: error acknowledgement discards application state",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockFailPacketData, suite.chainB.GetTimeoutHeight(), 0)
			},
			nil, ibctesting.MockFailAcknowledgement, false,
		},
		{
			"failure: invalid proof",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed, nil, false,
		},
		{
			"failure: packet was never sent",
			func() {
				path.Setup()
				packet = channeltypes.NewPacket(
					ibctesting.MockPacketData, 1,
					path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
					path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
					suite.chainB.GetTimeoutHeight(), 0,
				)
			},
			commitmenttypes.ErrMembershipVerificationFailed, nil, false,
		},
		{
			"failure: acknowledgement written twice reverts the receive",
			func() {
				path.Setup()
				packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)

				suite.chainB.App.MockApp.OnRecvPacket = func(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) exported.Acknowledgement {
					err := suite.chainB.App.IBCKeeper.ChannelKeeper.WriteAcknowledgement(ctx, mock.ModuleAddress, packet, mock.MockAcknowledgement)
					suite.Require().NoError(err)
					return mock.MockAcknowledgement
				}
			},
			channeltypes.ErrAcknowledgementExists, nil, false,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			proof = ibctesting.MockProof

			tc.malleate()

			suite.Require().NoError(path.EndpointB.UpdateClient())
			msg := channeltypes.NewMsgRecvPacket(packet, proof, path.EndpointB.GetClientLatestHeight(), suite.chainB.SenderAccount)

			var res *channeltypes.MsgRecvPacketResponse
			events, err := suite.chainB.Deliver(func(goCtx context.Context) error {
				var err error
				res, err = suite.chainB.App.IBCKeeper.RecvPacket(goCtx, msg)
				return err
			})

			ctx := suite.chainB.GetContext()
			_, receiptFound := suite.chainB.App.IBCKeeper.ChannelKeeper.GetPacketReceipt(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
			ackStored := suite.chainB.App.IBCKeeper.ChannelKeeper.HasPacketAcknowledgement(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
			suite.Require().Equal(tc.expAppSave, suite.chainB.App.MockModule.HasReceived(ctx, packet))

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(tc.expAck, res.Acknowledgement)
				suite.Require().Equal(tc.expAck != nil, ackStored)

				if path.EndpointB.ChannelConfig.Order == channeltypes.UNORDERED {
					suite.Require().True(receiptFound)
				} else {
					suite.Require().Equal(packet.Sequence+1, path.EndpointB.GetNextSequenceRecv())
				}

				// application events are kept, but marked as errors for error acknowledgements
				sequenceKey := mock.AttributeKeySequence
				if !tc.expAppSave {
					sequenceKey += coretypes.ErrorAttributeKeySuffix
				}
				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					mock.EventTypeRecvPacket:        {sequenceKey: "1"},
					channeltypes.EventTypeRecvPacket: {channeltypes.AttributeKeySequence: "1"},
				}, events)

				if tc.expAck != nil {
					ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
						channeltypes.EventTypeWriteAck: {channeltypes.AttributeKeySequence: "1"},
					}, events)
				}

				// replay of the same packet is rejected
				_, err = suite.chainB.Deliver(func(goCtx context.Context) error {
					_, err := suite.chainB.App.IBCKeeper.RecvPacket(goCtx, msg)
					return err
				})
				suite.Require().Error(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().False(receiptFound)
				suite.Require().False(ackStored)
			}
		})
	}
}

// tests that an asynchronous acknowledgement written through
// MsgWriteAcknowledgement can be relayed back to the sender.
func (suite *KeeperTestSuite) TestHandleWriteAcknowledgement() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	packet := suite.sendPacket(path, ibctesting.MockAsyncPacketData, suite.chainB.GetTimeoutHeight(), 0)

	ack, err := path.EndpointB.RecvPacket(packet)
	suite.Require().NoError(err)
	suite.Require().Nil(ack)

	// only the channel owner may write the acknowledgement
	msg := channeltypes.NewMsgWriteAcknowledgement(packet, mock.MockAcknowledgement, suite.chainB.SenderAccount)
	_, err = suite.chainB.Deliver(func(goCtx context.Context) error {
		_, err := suite.chainB.App.IBCKeeper.WriteAcknowledgement(goCtx, msg)
		return err
	})
	suite.Require().ErrorIs(err, channeltypes.ErrChannelCapabilityNotFound)

	suite.Require().NoError(path.EndpointB.WriteAcknowledgement(mock.MockAcknowledgement, packet))
	suite.Require().Error(path.EndpointB.WriteAcknowledgement(mock.MockAcknowledgement, packet))

	suite.Require().NoError(path.EndpointA.AcknowledgePacket(packet, ibctesting.MockAcknowledgement))
	suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))
	suite.Require().True(suite.chainA.App.MockModule.HasSettled(suite.chainA.GetContext(), packet))
}

// tests the IBC handler acknowledging a packet on ordered and unordered
// channels. A failing application callback reverts the acknowledgement.
func (suite *KeeperTestSuite) TestHandleAcknowledgePacket() {
	var (
		path   *ibctesting.Path
		packet channeltypes.Packet
		ack    []byte
	)

	setupAndRecv := func() {
		path.Setup()
		packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)

		var err error
		ack, err = path.EndpointB.RecvPacket(packet)
		suite.Require().NoError(err)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			setupAndRecv()
		}, nil},
		{"success: UNORDERED channel", func() {
			setupAndRecv()
		}, nil},
		{"success: error acknowledgement", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockFailPacketData, suite.chainB.GetTimeoutHeight(), 0)

			var err error
			ack, err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, nil},
		{"failure: acknowledgement was never written", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
			ack = ibctesting.MockAcknowledgement
		}, commitmenttypes.ErrMembershipVerificationFailed},
		{"failure: packet already acknowledged", func() {
			setupAndRecv()
			suite.Require().NoError(path.EndpointA.AcknowledgePacket(packet, ack))
		}, channeltypes.ErrPacketCommitmentNotFound},
		{"failure: application callback fails", func() {
			setupAndRecv()
			suite.chainA.App.MockApp.OnAcknowledgementPacket = func(sdk.Context, channeltypes.Packet, []byte, sdk.AccAddress) error {
				return mock.MockApplicationCallbackError
			}
		}, mock.MockApplicationCallbackError},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := path.EndpointA.AcknowledgePacket(packet, ack)

			ctx := suite.chainA.GetContext()
			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))
				suite.Require().True(suite.chainA.App.MockModule.HasSettled(ctx, packet))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				if tc.expErr == mock.MockApplicationCallbackError {
					suite.Require().True(path.EndpointA.HasPacketCommitment(packet.Sequence))
					suite.Require().False(suite.chainA.App.MockModule.HasSettled(ctx, packet))
				}
			}
		})
	}
}

// tests the IBC handler timing out a packet on ordered and unordered
// channels. A failing application callback leaves the channel untouched.
func (suite *KeeperTestSuite) TestHandleTimeoutPacket() {
	var (
		path   *ibctesting.Path
		packet channeltypes.Packet
	)

	sendTimedOut := func() {
		path.Setup()
		timeoutHeight := clienttypes.NewHeight(0, uint64(suite.chainB.CurrentHeader.Height))
		packet = suite.sendPacket(path, ibctesting.MockPacketData, timeoutHeight, 0)
		suite.coordinator.CommitBlock(suite.chainB)
	}

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			sendTimedOut()
		}, nil},
		{"success: UNORDERED channel", func() {
			sendTimedOut()
		}, nil},
		{"success: timeout timestamp", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, ibctesting.DisabledTimeoutHeight, suite.chainB.CurrentTimestamp())
			suite.coordinator.CommitBlock(suite.chainB)
		}, nil},
		{"failure: packet was received", func() {
			sendTimedOut()
			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(
				suite.chainB.GetContext(), packet.DestinationPort, packet.DestinationChannel, packet.Sequence,
			)
		}, commitmenttypes.ErrNonMembershipVerificationFailed},
		{"failure: application callback fails on ORDERED channel", func() {
			path.SetChannelOrdered()
			sendTimedOut()
			suite.chainA.App.MockApp.OnTimeoutPacket = func(sdk.Context, channeltypes.Packet, sdk.AccAddress) error {
				return mock.MockApplicationCallbackError
			}
		}, mock.MockApplicationCallbackError},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := path.EndpointA.TimeoutPacket(packet)

			ctx := suite.chainA.GetContext()
			channel := path.EndpointA.GetChannel()
			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))
				suite.Require().True(suite.chainA.App.MockModule.HasSettled(ctx, packet))

				if channel.Ordering == channeltypes.ORDERED {
					suite.Require().Equal(channeltypes.CLOSED, channel.State)
				}
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().True(path.EndpointA.HasPacketCommitment(packet.Sequence))
				suite.Require().Equal(channeltypes.OPEN, channel.State)
			}
		})
	}
}

// tests the IBC handler timing out a packet because the counterparty channel closed.
func (suite *KeeperTestSuite) TestHandleTimeoutOnClose() {
	var (
		path   *ibctesting.Path
		packet channeltypes.Packet
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
			path.EndpointB.SetChannelState(channeltypes.CLOSED)
		}, nil},
		{"success: UNORDERED channel", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
			path.EndpointB.SetChannelState(channeltypes.CLOSED)
		}, nil},
		{"failure: counterparty channel is OPEN", func() {
			path.Setup()
			packet = suite.sendPacket(path, ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), 0)
		}, commitmenttypes.ErrMembershipVerificationFailed},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := path.EndpointA.TimeoutOnClose(packet)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(path.EndpointA.HasPacketCommitment(packet.Sequence))
				suite.Require().True(suite.chainA.App.MockModule.HasSettled(suite.chainA.GetContext(), packet))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().True(path.EndpointA.HasPacketCommitment(packet.Sequence))
			}
		})
	}
}

// tests that the application may choose the channel version and that a
// failing callback leaves no channel, capability or identifier behind.
func (suite *KeeperTestSuite) TestChannelOpenInitCallback() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupConnections()

	suite.chainA.App.MockApp.OnChanOpenInit = func(
		sdk.Context, channeltypes.Order, []string, string, string, channeltypes.Counterparty, string,
	) (string, error) {
		return "", mock.MockApplicationCallbackError
	}

	err := path.EndpointA.ChanOpenInit()
	suite.Require().ErrorIs(err, mock.MockApplicationCallbackError)

	ctx := suite.chainA.GetContext()
	suite.Require().False(suite.chainA.App.IBCKeeper.ChannelKeeper.HasChannel(ctx, mock.PortID, ibctesting.FirstChannelID))
	suite.Require().False(suite.chainA.App.IBCKeeper.PortKeeper.AuthenticateChannelCapability(ctx, mock.PortID, ibctesting.FirstChannelID, mock.ModuleAddress))

	suite.chainA.App.MockApp.OnChanOpenInit = func(
		sdk.Context, channeltypes.Order, []string, string, string, channeltypes.Counterparty, string,
	) (string, error) {
		return "custom-version", nil
	}

	suite.Require().NoError(path.EndpointA.ChanOpenInit())
	suite.Require().Equal(ibctesting.FirstChannelID, path.EndpointA.ChannelID)
	suite.Require().Equal("custom-version", path.EndpointA.GetChannel().Version)
	suite.Require().Equal("custom-version", path.EndpointA.ChannelConfig.Version)
}

// tests that the counterparty version rejected by the application aborts the
// OpenTry step atomically.
func (suite *KeeperTestSuite) TestChannelOpenTryCallback() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupConnections()

	path.EndpointA.ChannelConfig.Version = "unsupported-version"
	suite.Require().NoError(path.EndpointA.ChanOpenInit())

	err := path.EndpointB.ChanOpenTry()
	suite.Require().ErrorIs(err, mock.MockApplicationCallbackError)
	suite.Require().False(suite.chainB.App.IBCKeeper.ChannelKeeper.HasChannel(suite.chainB.GetContext(), mock.PortID, ibctesting.FirstChannelID))
}

// tests that an application refusing to close keeps the channel OPEN.
func (suite *KeeperTestSuite) TestChannelCloseInitCallback() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	suite.chainA.App.MockApp.OnChanCloseInit = func(sdk.Context, string, string) error {
		return mock.MockApplicationCallbackError
	}

	err := path.EndpointA.ChanCloseInit()
	suite.Require().ErrorIs(err, mock.MockApplicationCallbackError)
	suite.Require().Equal(channeltypes.OPEN, path.EndpointA.GetChannel().State)

	suite.chainA.App.MockApp.Reset()

	suite.Require().NoError(path.EndpointA.ChanCloseInit())
	suite.Require().Equal(channeltypes.CLOSED, path.EndpointA.GetChannel().State)

	suite.Require().NoError(path.EndpointB.ChanCloseConfirm())
	suite.Require().Equal(channeltypes.CLOSED, path.EndpointB.GetChannel().State)
}

// tests that packets flow in both directions over the same channel pair.
func (suite *KeeperTestSuite) TestRelayPacket() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	sequence, err := path.EndpointA.SendPacket(suite.chainB.GetTimeoutHeight(), 0, ibctesting.MockPacketData)
	suite.Require().NoError(err)
	packetAB := channeltypes.NewPacket(
		ibctesting.MockPacketData, sequence,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		suite.chainB.GetTimeoutHeight(), 0,
	)
	ack, err := path.RelayPacketWithResults(packetAB)
	suite.Require().NoError(err)
	suite.Require().Equal(ibctesting.MockAcknowledgement, ack)

	timeoutHeight := suite.chainA.GetTimeoutHeight()
	sequence, err = path.EndpointB.SendPacket(timeoutHeight, 0, ibctesting.MockPacketData)
	suite.Require().NoError(err)
	packetBA := channeltypes.NewPacket(
		ibctesting.MockPacketData, sequence,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		timeoutHeight, 0,
	)
	suite.Require().NoError(path.RelayPacket(packetBA))

	suite.Require().False(path.EndpointA.HasPacketCommitment(packetAB.Sequence))
	suite.Require().False(path.EndpointB.HasPacketCommitment(packetBA.Sequence))
	suite.Require().True(suite.chainB.App.MockModule.HasReceived(suite.chainB.GetContext(), packetAB))
	suite.Require().True(suite.chainA.App.MockModule.HasReceived(suite.chainA.GetContext(), packetBA))
}
