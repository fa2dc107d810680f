package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
)

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (suite *KeeperTestSuite) TestConnOpenInit() {
	var (
		path         *ibctesting.Path
		version      *types.Version
		delayPeriod  uint64
		clientID     string
		counterparty types.Counterparty
		expVersions  []*types.Version
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
			"success with explicit supported version",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})
				expVersions = []*types.Version{version}
			},
			nil,
		},
		{
			"success with non zero delay period",
			func() {
				delayPeriod = uint64(60_000_000_000)
			},
			nil,
		},
		{
			"success with featureless version selects compatible versions",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, nil)
			},
			nil,
		},
		{
			"failure: unsupported version",
			func() {
				version = types.NewVersion("2", []string{"ORDER_ORDERED"})
			},
			types.ErrVersionNotSupported,
		},
		{
			"failure: unsupported feature",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
			},
			types.ErrVersionNotSupported,
		},
		{
			"failure: client not found",
			func() {
				clientID = "07-tendermint-100"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"failure: client is frozen",
			func() {
				path.EndpointA.SetClientStatus(exported.Frozen)
			},
			clienttypes.ErrClientNotActive,
		},
		{
			"success with counterparty connection id",
			func() {
				counterparty.ConnectionId = types.FormatConnectionIdentifier(5)
			},
			nil,
		},
		{
			"failure: invalid counterparty connection id",
			func() {
				counterparty.ConnectionId = "(connection)"
			},
			host.ErrInvalidID,
		},
		{
			"failure: empty counterparty prefix",
			func() {
				counterparty.Prefix = commitmenttypes.MerklePrefix{}
			},
			types.ErrInvalidCounterparty,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			version = nil
			delayPeriod = 0
			expVersions = types.GetCompatibleVersions()
			clientID = path.EndpointA.ClientID
			counterparty = types.NewCounterparty(path.EndpointB.ClientID, "", suite.chainB.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix())

			tc.malleate()

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			connectionID, err := suite.chainA.App.IBCKeeper.ConnectionKeeper.ConnOpenInit(ctx, clientID, counterparty, version, delayPeriod)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				connection, found := suite.chainA.App.IBCKeeper.ConnectionKeeper.GetConnection(ctx, connectionID)
				suite.Require().True(found)
				suite.Require().Equal(types.INIT, connection.State)
				suite.Require().Equal(expVersions, connection.Versions)
				suite.Require().Equal(delayPeriod, connection.DelayPeriod)
				suite.Require().Equal(counterparty, connection.Counterparty)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeConnectionOpenInit: {
						types.AttributeKeyConnectionID: connectionID,
						types.AttributeKeyClientID:     clientID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(connectionID)
			}
		})
	}
}

// TestConnOpenInitFirstConnection checks the identifiers and defaults of the
// first connection opened by a chain.
func (suite *KeeperTestSuite) TestConnOpenInitFirstConnection() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()
	suite.Require().Equal("07-tendermint-0", path.EndpointA.ClientID)

	counterparty := types.NewCounterparty("07-tendermint-7", "connection-5", commitmenttypes.NewMerklePrefix([]byte("ibc")))

	connectionID, err := suite.chainA.App.IBCKeeper.ConnectionKeeper.ConnOpenInit(suite.chainA.GetContext(), path.EndpointA.ClientID, counterparty, nil, 0)
	suite.Require().NoError(err)
	suite.Require().Equal("connection-0", connectionID)

	connection := suite.chainA.GetConnection(connectionID)
	suite.Require().Equal(types.INIT, connection.State)
	suite.Require().Equal(counterparty, connection.Counterparty)
	suite.Require().Equal([]*types.Version{types.NewVersion("1", []string{"ORDER_ORDERED", "ORDER_UNORDERED"})}, connection.Versions)
	suite.Require().Zero(connection.DelayPeriod)
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (suite *KeeperTestSuite) TestConnOpenTry() {
	var (
		path                 *ibctesting.Path
		delayPeriod          uint64
		counterparty         types.Counterparty
		counterpartyVersions []*types.Version
		clientState          []byte
		initProof            []byte
		clientProof          []byte
		consensusProof       []byte
		proofHeight          exported.Height
		consensusHeight      exported.Height
		hostConsensusState   []byte
	)

	invalidProof := []byte("invalid proof")

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
			"failure: empty counterparty versions",
			func() {
				counterpartyVersions = nil
			},
			types.ErrInvalidVersion,
		},
		{
			"failure: no matching counterparty version",
			func() {
				counterpartyVersions = []*types.Version{types.NewVersion("2", []string{"ORDER_ORDERED"})}
			},
			types.ErrNoMatchingVersion,
		},
		{
			"failure: counterparty versions differ from the ones stored in INIT",
			func() {
				counterpartyVersions = []*types.Version{types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})}
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
		{
			"failure: consensus height is not below self height",
			func() {
				consensusHeight = clienttypes.GetSelfHeight(suite.chainB.GetContext())
			},
			ibcerrors.ErrInvalidHeight,
		},
		{
			"failure: consensus height revision does not match",
			func() {
				consensusHeight = clienttypes.NewHeight(1, 1)
			},
			ibcerrors.ErrInvalidHeight,
		},
		{
			"failure: empty host consensus state",
			func() {
				hostConsensusState = nil
			},
			clienttypes.ErrSelfConsensusStateNotFound,
		},
		{
			"failure: counterparty connection not found",
			func() {
				counterparty.ConnectionId = "connection-10"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: delay period differs from counterparty",
			func() {
				delayPeriod = 1
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid init proof",
			func() {
				initProof = invalidProof
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid client proof",
			func() {
				clientProof = invalidProof
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid consensus proof",
			func() {
				consensusProof = invalidProof
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: client state not stored by counterparty",
			func() {
				clientState = []byte("client state")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: consensus state not stored by counterparty",
			func() {
				hostConsensusState = []byte("consensus state")
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
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			var height, cpHeight clienttypes.Height
			clientState, height, cpHeight, hostConsensusState = path.EndpointB.QueryConnectionHandshakeProof()
			proofHeight, consensusHeight = height, cpHeight

			delayPeriod = 0
			counterparty = types.NewCounterparty(
				path.EndpointA.ClientID, path.EndpointA.ConnectionID, suite.chainA.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix(),
			)
			counterpartyVersions = path.EndpointA.GetConnection().Versions
			initProof, clientProof, consensusProof = ibctesting.MockProof, ibctesting.MockProof, ibctesting.MockProof

			tc.malleate()

			ctx := suite.chainB.GetContext().WithEventManager(sdk.NewEventManager())
			connectionID, err := suite.chainB.App.IBCKeeper.ConnectionKeeper.ConnOpenTry(
				ctx, counterparty, delayPeriod, path.EndpointB.ClientID, clientState, counterpartyVersions,
				initProof, clientProof, consensusProof, proofHeight, consensusHeight, hostConsensusState,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				connection, found := suite.chainB.App.IBCKeeper.ConnectionKeeper.GetConnection(ctx, connectionID)
				suite.Require().True(found)
				suite.Require().Equal(types.TRYOPEN, connection.State)
				suite.Require().Equal([]*types.Version{types.DefaultIBCVersion}, connection.Versions)
				suite.Require().Equal(path.EndpointA.ConnectionID, connection.Counterparty.ConnectionId)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeConnectionOpenTry: {
						types.AttributeKeyConnectionID:             connectionID,
						types.AttributeKeyCounterpartyConnectionID: path.EndpointA.ConnectionID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(connectionID)
			}
		})
	}
}

// TestConnOpenAck - Ack is called on chainA after ConnOpenTry on chainB
// verifying the TRYOPEN state of the connection on chainB.
func (suite *KeeperTestSuite) TestConnOpenAck() {
	var (
		path                     *ibctesting.Path
		connectionID             string
		counterpartyConnectionID string
		version                  *types.Version
		clientState              []byte
		tryProof                 []byte
		proofHeight              exported.Height
		consensusHeight          exported.Height
		hostConsensusState       []byte
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
			"failure: connection not found",
			func() {
				connectionID = "connection-10"
			},
			types.ErrConnectionNotFound,
		},
		{
			"failure: connection is not in INIT",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = types.TRYOPEN
				path.EndpointA.SetConnection(connection)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"failure: version not proposed in INIT",
			func() {
				version = types.NewVersion("2", []string{"ORDER_ORDERED"})
			},
			types.ErrVersionNotSupported,
		},
		{
			"failure: version feature not proposed in INIT",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_DAG"})
			},
			types.ErrVersionNotSupported,
		},
		{
			"failure: version differs from the one chosen in TRYOPEN",
			func() {
				version = types.NewVersion(types.DefaultIBCVersionIdentifier, []string{"ORDER_ORDERED"})
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: consensus height is not below self height",
			func() {
				consensusHeight = clienttypes.GetSelfHeight(suite.chainA.GetContext()).Increment()
			},
			ibcerrors.ErrInvalidHeight,
		},
		{
			"failure: wrong counterparty connection identifier",
			func() {
				counterpartyConnectionID = "connection-10"
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid try proof",
			func() {
				tryProof = []byte("invalid proof")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: client state not stored by counterparty",
			func() {
				clientState = []byte("client state")
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: client is expired",
			func() {
				path.EndpointA.SetClientStatus(exported.Expired)
			},
			clienttypes.ErrClientNotActive,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.ConnOpenTry())
			suite.Require().NoError(path.EndpointA.UpdateClient())

			var height, cpHeight clienttypes.Height
			clientState, height, cpHeight, hostConsensusState = path.EndpointA.QueryConnectionHandshakeProof()
			proofHeight, consensusHeight = height, cpHeight

			connectionID = path.EndpointA.ConnectionID
			counterpartyConnectionID = path.EndpointB.ConnectionID
			version = path.EndpointB.GetConnection().Versions[0]
			tryProof = ibctesting.MockProof

			tc.malleate()

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainA.App.IBCKeeper.ConnectionKeeper.ConnOpenAck(
				ctx, connectionID, clientState, version, counterpartyConnectionID,
				tryProof, ibctesting.MockProof, ibctesting.MockProof, proofHeight, consensusHeight, hostConsensusState,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				connection, found := suite.chainA.App.IBCKeeper.ConnectionKeeper.GetConnection(ctx, connectionID)
				suite.Require().True(found)
				suite.Require().Equal(types.OPEN, connection.State)
				suite.Require().Equal([]*types.Version{version}, connection.Versions)
				suite.Require().Equal(counterpartyConnectionID, connection.Counterparty.ConnectionId)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeConnectionOpenAck: {
						types.AttributeKeyConnectionID:             connectionID,
						types.AttributeKeyCounterpartyConnectionID: counterpartyConnectionID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (suite *KeeperTestSuite) TestConnOpenConfirm() {
	var (
		path         *ibctesting.Path
		connectionID string
		ackProof     []byte
		proofHeight  exported.Height
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
			"failure: connection not found",
			func() {
				connectionID = "connection-10"
			},
			types.ErrConnectionNotFound,
		},
		{
			"failure: connection is not in TRYOPEN",
			func() {
				connection := path.EndpointB.GetConnection()
				connection.State = types.OPEN
				path.EndpointB.SetConnection(connection)
			},
			types.ErrInvalidConnectionState,
		},
		{
			"failure: counterparty connection is not OPEN",
			func() {
				connection := path.EndpointA.GetConnection()
				connection.State = types.INIT
				path.EndpointA.SetConnection(connection)
			},
			commitmenttypes.ErrMembershipVerificationFailed,
		},
		{
			"failure: invalid ack proof",
			func() {
				ackProof = []byte("invalid proof")
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
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			suite.Require().NoError(path.EndpointA.ConnOpenInit())
			suite.Require().NoError(path.EndpointB.ConnOpenTry())
			suite.Require().NoError(path.EndpointA.ConnOpenAck())
			suite.Require().NoError(path.EndpointB.UpdateClient())

			connectionID = path.EndpointB.ConnectionID
			ackProof = ibctesting.MockProof
			proofHeight = path.EndpointB.GetClientLatestHeight()

			tc.malleate()

			ctx := suite.chainB.GetContext().WithEventManager(sdk.NewEventManager())
			err := suite.chainB.App.IBCKeeper.ConnectionKeeper.ConnOpenConfirm(ctx, connectionID, ackProof, proofHeight)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				connection, found := suite.chainB.App.IBCKeeper.ConnectionKeeper.GetConnection(ctx, connectionID)
				suite.Require().True(found)
				suite.Require().Equal(types.OPEN, connection.State)

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					types.EventTypeConnectionOpenConfirm: {
						types.AttributeKeyConnectionID: connectionID,
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
