package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	"github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/multiversx/mx-ibc-go/modules/core/05-port/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

// TestChanOpenInit tests the OpenInit handshake call for channels. It uses
// message passing to enter into the appropriate state and then calls
// ChanOpenInit directly.
func (suite *KeeperTestSuite) TestChanOpenInit() {
	var (
		path           *ibctesting.Path
		portID         string
		order          types.Order
		connectionHops []string
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success: ORDERED channel",
			func() {
				order = types.ORDERED
			},
			nil,
		},
		{
			"failure: port is not bound",
			func() {
				portID = "unboundport"
			},
			porttypes.ErrPortNotFound,
		},
		{
			"failure: connection does not exist",
			func() {
				connectionHops = []string{"connection-10"}
			},
			connectiontypes.ErrConnectionNotFound,
		},
		{
			"failure: multiple connection hops",
			func() {
				connectionHops = []string{path.EndpointA.ConnectionID, path.EndpointA.ConnectionID}
			},
			types.ErrTooManyConnectionHops,
		},
		{
			"failure: connection is not OPEN",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = connectiontypes.TRYOPEN
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidConnectionState,
		},
		{
			"failure: connection version does not support the ordering",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.Versions = []*connectiontypes.Version{connectiontypes.NewVersion("1", []string{"ORDER_ORDERED"})}
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidVersion,
		},
		{
			"failure: connection negotiated more than one version",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.Versions = []*connectiontypes.Version{connectiontypes.DefaultIBCVersion, connectiontypes.NewVersion("2", []string{"ORDER_UNORDERED"})}
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidVersion,
		},
		{
			"failure: client is frozen",
			func() {
				path.EndpointA.SetClientStatus(exported.Frozen)
			},
			clienttypes.ErrClientNotActive,
		},
		{
			"failure: channel capability already claimed",
			func() {
				err := suite.chainA.App.IBCKeeper.PortKeeper.ClaimChannelCapability(
					suite.chainA.GetContext(), portID, types.FormatChannelIdentifier(0), mock.ModuleAddress,
				)
				suite.Require().NoError(err)
			},
			porttypes.ErrCapabilityExists,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			portID = path.EndpointA.ChannelConfig.PortID
			order = types.UNORDERED
			connectionHops = []string{path.EndpointA.ConnectionID}

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointB.ChannelConfig.PortID, "")
			ctx := suite.chainA.GetContext()

			channelID, err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanOpenInit(
				ctx, order, connectionHops, portID, counterparty, mock.Version,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)
				suite.Require().True(suite.chainA.App.IBCKeeper.PortKeeper.AuthenticateChannelCapability(ctx, portID, channelID, mock.ModuleAddress))

				suite.chainA.App.IBCKeeper.ChannelKeeper.WriteOpenInitChannel(ctx, portID, channelID, order, connectionHops, counterparty, mock.Version)

				channel, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetChannel(ctx, portID, channelID)
				suite.Require().True(found)
				suite.Require().Equal(types.NewChannel(types.INIT, order, counterparty, connectionHops, mock.Version), channel)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
			}
		})
	}
}

// TestChanOpenTry tests the OpenTry handshake call for channels.
func (suite *KeeperTestSuite) TestChanOpenTry() {
	var (
		path                *ibctesting.Path
		portID              string
		order               types.Order
		connectionHops      []string
		counterparty        types.Counterparty
		counterpartyVersion string
		proof               []byte
		proofHeight         exported.Height
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"failure: port is not bound",
			func() {
				portID = "unboundport"
			},
			porttypes.ErrPortNotFound,
		},
		{
			"failure: connection is not OPEN",
			func() {
				connection := path.EndpointB.GetConnection()
				connection.State = connectiontypes.INIT
				path.EndpointB.SetConnection(connection)
			},
			connectiontypes.ErrInvalidConnectionState,
		},
		{
			"failure: ordering differs from counterparty",
			func() {
				order = types.ORDERED
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: counterparty version differs",
			func() {
				counterpartyVersion = "other-version"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: counterparty channel does not exist",
			func() {
				counterparty.ChannelId = "channel-10"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid proof",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: no consensus state at proof height",
			func() {
				proofHeight = proofHeight.Increment()
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: client is frozen",
			func() {
				path.EndpointB.SetClientStatus(exported.Frozen)
			},
			clienttypes.ErrClientNotActive,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			portID = path.EndpointB.ChannelConfig.PortID
			order = types.UNORDERED
			connectionHops = []string{path.EndpointB.ConnectionID}
			counterparty = types.NewCounterparty(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			counterpartyVersion = path.EndpointA.ChannelConfig.Version
			proof = ibctesting.MockProof
			proofHeight = path.EndpointB.GetClientLatestHeight()

			tc.malleate()

			ctx := suite.chainB.GetContext()
			channelID, err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanOpenTry(
				ctx, order, connectionHops, portID, counterparty, counterpartyVersion, proof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)
				suite.Require().True(suite.chainB.App.IBCKeeper.PortKeeper.AuthenticateChannelCapability(ctx, portID, channelID, mock.ModuleAddress))

				suite.chainB.App.IBCKeeper.ChannelKeeper.WriteOpenTryChannel(ctx, portID, channelID, order, connectionHops, counterparty, counterpartyVersion)

				channel, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetChannel(ctx, portID, channelID)
				suite.Require().True(found)
				suite.Require().Equal(types.TRYOPEN, channel.State)
				suite.Require().Equal(counterparty, channel.Counterparty)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
			}
		})
	}
}

// TestChanOpenAck tests the OpenAck handshake call for channels.
func (suite *KeeperTestSuite) TestChanOpenAck() {
	var (
		path                  *ibctesting.Path
		channelID             string
		counterpartyChannelID string
		counterpartyVersion   string
		proof                 []byte
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"failure: channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrChannelNotFound,
		},
		{
			"failure: channel is not in INIT",
			func() {
				path.EndpointA.SetChannelState(types.TRYOPEN)
			},
			types.ErrInvalidChannelState,
		},
		{
			"failure: connection is not OPEN",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = connectiontypes.TRYOPEN
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidConnectionState,
		},
		{
			"failure: wrong counterparty channel identifier",
			func() {
				counterpartyChannelID = "channel-10"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: counterparty version differs from TRYOPEN",
			func() {
				counterpartyVersion = "other-version"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid proof",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.ChanOpenTry())
			suite.Require().NoError(path.EndpointA.UpdateClient())

			channelID = path.EndpointA.ChannelID
			counterpartyChannelID = path.EndpointB.ChannelID
			counterpartyVersion = path.EndpointB.ChannelConfig.Version
			proof = ibctesting.MockProof

			tc.malleate()

			portID := path.EndpointA.ChannelConfig.PortID
			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanOpenAck(
				ctx, portID, channelID, counterpartyVersion, counterpartyChannelID,
				proof, path.EndpointA.GetClientLatestHeight(),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				suite.chainA.App.IBCKeeper.ChannelKeeper.WriteOpenAckChannel(ctx, portID, channelID, counterpartyVersion, counterpartyChannelID)

				channel, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetChannel(ctx, portID, channelID)
				suite.Require().True(found)
				suite.Require().Equal(types.OPEN, channel.State)
				suite.Require().Equal(counterpartyVersion, channel.Version)
				suite.Require().Equal(counterpartyChannelID, channel.Counterparty.ChannelId)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeChannelOpenAck: {
						types.AttributeKeyChannelID:             channelID,
						types.AttributeKeyCounterpartyChannelID: counterpartyChannelID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanOpenConfirm tests the OpenConfirm handshake call for channels.
func (suite *KeeperTestSuite) TestChanOpenConfirm() {
	var (
		path      *ibctesting.Path
		channelID string
		proof     []byte
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"failure: channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrChannelNotFound,
		},
		{
			"failure: channel is not in TRYOPEN",
			func() {
				path.EndpointB.SetChannelState(types.OPEN)
			},
			types.ErrInvalidChannelState,
		},
		{
			"failure: connection is not OPEN",
			func() {
				connection := path.EndpointB.GetConnection()
				connection.State = connectiontypes.TRYOPEN
				path.EndpointB.SetConnection(connection)
			},
			connectiontypes.ErrInvalidConnectionState,
		},
		{
			"failure: counterparty channel is not OPEN",
			func() {
				path.EndpointA.SetChannelState(types.INIT)
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid proof",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()
			suite.Require().NoError(path.EndpointA.ChanOpenInit())
			suite.Require().NoError(path.EndpointB.ChanOpenTry())
			suite.Require().NoError(path.EndpointA.ChanOpenAck())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			channelID = path.EndpointB.ChannelID
			proof = ibctesting.MockProof

			tc.malleate()

			portID := path.EndpointB.ChannelConfig.PortID
			ctx := suite.chainB.GetContext()

			err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanOpenConfirm(ctx, portID, channelID, proof, path.EndpointB.GetClientLatestHeight())

			if tc.expErr == nil {
				suite.Require().NoError(err)

				suite.chainB.App.IBCKeeper.ChannelKeeper.WriteOpenConfirmChannel(ctx, portID, channelID)
				suite.Require().Equal(types.OPEN, path.EndpointB.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseInit tests the initial closing of a handshake on chainA.
func (suite *KeeperTestSuite) TestChanCloseInit() {
	var (
		path      *ibctesting.Path
		channelID string
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success: channel still in INIT",
			func() {
				path.EndpointA.SetChannelState(types.INIT)
			},
			nil,
		},
		{
			"failure: channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrChannelNotFound,
		},
		{
			"failure: channel already CLOSED",
			func() {
				path.EndpointA.SetChannelState(types.CLOSED)
			},
			types.ErrInvalidChannelState,
		},
		{
			"failure: connection is not OPEN",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = connectiontypes.INIT
				path.EndpointA.SetConnection(connection)
			},
			connectiontypes.ErrInvalidConnectionState,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()
			channelID = path.EndpointA.ChannelID

			tc.malleate()

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanCloseInit(ctx, path.EndpointA.ChannelConfig.PortID, channelID)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointA.GetChannel().State)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeChannelCloseInit: {
						types.AttributeKeyChannelID: channelID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseConfirm tests the confirming closing channel ends by chainB,
// after chainA has closed their end.
func (suite *KeeperTestSuite) TestChanCloseConfirm() {
	var (
		path      *ibctesting.Path
		channelID string
		proof     []byte
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"failure: channel does not exist",
			func() {
				channelID = "channel-10"
			},
			types.ErrChannelNotFound,
		},
		{
			"failure: channel already CLOSED",
			func() {
				path.EndpointB.SetChannelState(types.CLOSED)
			},
			types.ErrInvalidChannelState,
		},
		{
			"failure: counterparty channel is not CLOSED",
			func() {
				path.EndpointA.SetChannelState(types.OPEN)
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid proof",
			func() {
				proof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()
			suite.Require().NoError(path.EndpointA.ChanCloseInit())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			channelID = path.EndpointB.ChannelID
			proof = ibctesting.MockProof

			tc.malleate()

			ctx := suite.chainB.GetContext()
			err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanCloseConfirm(
				ctx, path.EndpointB.ChannelConfig.PortID, channelID, proof, path.EndpointB.GetClientLatestHeight(),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointB.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
