package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	mock "github.com/multiversx/mx-ibc-go/modules/light-clients/00-mock"
	ibctesting "github.com/multiversx/mx-ibc-go/testing"
)

func (suite *KeeperTestSuite) TestCreateClient() {
	var (
		clientType     string
		clientState    []byte
		consensusState []byte
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success: 07-tendermint client type",
			func() {},
			nil,
		},
		{
			"success: 00-mock client type",
			func() {
				clientType = exported.Mock
			},
			nil,
		},
		{
			"failure: 09-localhost client type cannot be created",
			func() {
				clientType = exported.Localhost
			},
			clienttypes.ErrInvalidClientType,
		},
		{
			"failure: no light client module routed",
			func() {
				clientType = "08-wasm"
			},
			clienttypes.ErrRouteNotFound,
		},
		{
			"failure: invalid client state",
			func() {
				clientState = mock.NewClientState("", suite.chainB.LatestHeight()).Marshal()
			},
			mock.ErrInvalidClientState,
		},
		{
			"failure: zero consensus timestamp",
			func() {
				consensusState = mock.NewConsensusState(0).Marshal()
			},
			mock.ErrInvalidConsensusState,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			clientType = exported.Tendermint
			clientState = mock.NewClientState(suite.chainB.ChainID, suite.chainB.LatestHeight()).Marshal()
			consensusState = mock.NewConsensusState(suite.chainB.LatestTimestamp()).Marshal()

			tc.malleate()

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			clientID, err := suite.chainA.App.IBCKeeper.ClientKeeper.CreateClient(ctx, clientType, clientState, consensusState)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(clienttypes.FormatClientIdentifier(clientType, 0), clientID)

				info, found := suite.chainA.App.IBCKeeper.ClientKeeper.GetClientInfo(ctx, clientID)
				suite.Require().True(found)
				suite.Require().Equal(clientType, info.ClientType)

				suite.requireClientCommitted(suite.chainA, clientID, suite.chainB.LatestHeight())

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					clienttypes.EventTypeCreateClient: {
						clienttypes.AttributeKeyClientID:        clientID,
						clienttypes.AttributeKeyClientType:      clientType,
						clienttypes.AttributeKeyConsensusHeight: suite.chainB.LatestHeight().String(),
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(clientID)
			}
		})
	}
}

func (suite *KeeperTestSuite) TestCreateClientSequence() {
	pathA := ibctesting.NewPath(suite.chainA, suite.chainB)
	pathA.SetupClients()

	pathB := ibctesting.NewPath(suite.chainA, suite.chainB)
	pathB.SetupClients()

	suite.Require().Equal("07-tendermint-0", pathA.EndpointA.ClientID)
	suite.Require().Equal("07-tendermint-1", pathB.EndpointA.ClientID)
}

func (suite *KeeperTestSuite) TestUpdateClient() {
	var (
		path     *ibctesting.Path
		clientID string
		header   mock.Header
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
			"success: header below latest height adds a consensus state",
			func() {
				header.Height = clienttypes.NewHeight(0, 1)
			},
			nil,
		},
		{
			"failure: client not found",
			func() {
				clientID = "07-tendermint-100"
			},
			clienttypes.ErrClientNotFound,
		},
		{
			"failure: client frozen",
			func() {
				path.EndpointA.SetClientStatus(exported.Frozen)
			},
			clienttypes.ErrClientNotActive,
		},
		{
			"failure: client expired",
			func() {
				path.EndpointA.SetClientStatus(exported.Expired)
			},
			clienttypes.ErrClientNotActive,
		},
		{
			"failure: zero header height",
			func() {
				header.Height = clienttypes.ZeroHeight()
			},
			mock.ErrInvalidHeader,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			suite.coordinator.CommitBlock(suite.chainB)

			clientID = path.EndpointA.ClientID
			header = mock.NewHeader(suite.chainB.LatestHeight(), suite.chainB.LatestTimestamp())

			tc.malleate()

			keeper := suite.chainA.App.IBCKeeper.ClientKeeper
			previousHeight := keeper.GetLatestHeight(suite.chainA.GetContext(), path.EndpointA.ClientID)

			ctx := suite.chainA.GetContext().WithEventManager(sdk.NewEventManager())
			err := keeper.UpdateClient(ctx, clientID, header.Marshal())

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.requireClientCommitted(suite.chainA, clientID, header.Height)

				expHeight := previousHeight
				if header.Height.GT(previousHeight) {
					expHeight = header.Height
				}
				suite.Require().Equal(expHeight, keeper.GetLatestHeight(ctx, clientID))

				ibctesting.AssertEventsContain(suite.T(), map[string]map[string]string{
					clienttypes.EventTypeUpdateClient: {
						clienttypes.AttributeKeyClientID:         clientID,
						clienttypes.AttributeKeyConsensusHeights: header.Height.String(),
					},
				}, ctx.EventManager().Events())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
