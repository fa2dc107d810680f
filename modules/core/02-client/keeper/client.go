package keeper

import (
	metrics "github.com/armon/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	coremetrics "github.com/multiversx/mx-ibc-go/modules/core/metrics"
)

// CreateClient generates a new client identifier and hands the initial client
// and consensus states to the light client module registered for the client
// type. The resulting client and consensus states are committed so that
// counterparties can verify them.
func (k Keeper) CreateClient(
	ctx sdk.Context, clientType string, clientState []byte, consensusState []byte,
) (string, error) {
	if clientType == exported.Localhost {
		return "", sdkerrors.Wrapf(types.ErrInvalidClientType, "cannot create client of type: %s", clientType)
	}

	lightClientModule, found := k.router.GetRoute(clientType)
	if !found {
		return "", sdkerrors.Wrap(types.ErrRouteNotFound, clientType)
	}

	clientID := k.GenerateClientIdentifier(ctx, clientType)
	k.SetClientInfo(ctx, clientID, types.NewClientInfo(clientType))

	height, err := lightClientModule.Initialize(ctx, clientID, clientState, consensusState)
	if err != nil {
		return "", sdkerrors.Wrapf(err, "cannot initialize client %s", clientID)
	}

	if err := k.commitClientState(ctx, lightClientModule, clientID, []exported.Height{height}); err != nil {
		return "", err
	}

	k.Logger(ctx).Info("client created at height", "client-id", clientID, "height", height.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "create"},
		1,
		[]metrics.Label{telemetry.NewLabel(coremetrics.LabelClientType, clientType)},
	)

	emitCreateClientEvent(ctx, clientID, clientType, height)

	return clientID, nil
}

// UpdateClient updates the consensus state and the state root from a provided client message.
func (k Keeper) UpdateClient(ctx sdk.Context, clientID string, clientMsg []byte) error {
	lightClientModule, err := k.CheckAndGetClient(ctx, clientID)
	if err != nil {
		return err
	}

	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return sdkerrors.Wrapf(types.ErrClientNotActive, "cannot update client (%s) with status %s", clientID, status)
	}

	consensusHeights, err := lightClientModule.UpdateState(ctx, clientID, clientMsg)
	if err != nil {
		return sdkerrors.Wrapf(err, "cannot update client %s", clientID)
	}

	if err := k.commitClientState(ctx, lightClientModule, clientID, consensusHeights); err != nil {
		return err
	}

	k.Logger(ctx).Info("client state updated", "client-id", clientID, "heights", consensusHeights)

	info, _ := k.GetClientInfo(ctx, clientID)
	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "update"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, info.ClientType),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
			telemetry.NewLabel(coremetrics.LabelUpdateType, "msg"),
		},
	)

	emitUpdateClientEvent(ctx, clientID, info.ClientType, consensusHeights)

	return nil
}
