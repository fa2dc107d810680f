package mock

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// UpdateState trusts the header, stores a consensus state at its height and
// advances the latest height if the header is newer.
func (l *LightClientModule) UpdateState(ctx sdk.Context, clientID string, clientMsg []byte) ([]exported.Height, error) {
	clientState, found := l.getClientState(ctx, clientID)
	if !found {
		return nil, sdkerrors.Wrap(clienttypes.ErrClientNotFound, clientID)
	}
	if status := l.getStatus(ctx, clientID); status != exported.Active {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotActive, "client %s is %s", clientID, status)
	}

	var header Header
	if err := header.Unmarshal(clientMsg); err != nil {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidClientMessage, err.Error())
	}
	if err := header.ValidateBasic(); err != nil {
		return nil, err
	}

	if header.Height.GT(clientState.LatestHeight) {
		clientState.LatestHeight = header.Height
		l.setClientState(ctx, clientID, clientState)
	}
	l.setConsensusState(ctx, clientID, header.Height, NewConsensusState(header.Timestamp))

	return []exported.Height{header.Height}, nil
}
