package mock

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

const keyStatus = "status"

func (l *LightClientModule) clientStore(ctx sdk.Context, clientID string) prefix.Store {
	return prefix.NewStore(ctx.KVStore(l.key), []byte(host.FullClientPath(clientID, "")))
}

func (l *LightClientModule) getClientState(ctx sdk.Context, clientID string) (ClientState, bool) {
	bz := l.clientStore(ctx, clientID).Get(host.ClientStateKey())
	if len(bz) == 0 {
		return ClientState{}, false
	}

	var clientState ClientState
	if err := clientState.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode mock client state: %w", err))
	}
	return clientState, true
}

func (l *LightClientModule) setClientState(ctx sdk.Context, clientID string, clientState ClientState) {
	l.clientStore(ctx, clientID).Set(host.ClientStateKey(), clientState.Marshal())
}

func (l *LightClientModule) getConsensusState(ctx sdk.Context, clientID string, height exported.Height) (ConsensusState, bool) {
	bz := l.clientStore(ctx, clientID).Get(host.ConsensusStateKey(height))
	if len(bz) == 0 {
		return ConsensusState{}, false
	}

	var consensusState ConsensusState
	if err := consensusState.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode mock consensus state: %w", err))
	}
	return consensusState, true
}

func (l *LightClientModule) setConsensusState(ctx sdk.Context, clientID string, height exported.Height, consensusState ConsensusState) {
	l.clientStore(ctx, clientID).Set(host.ConsensusStateKey(height), consensusState.Marshal())
}

func (l *LightClientModule) getStatus(ctx sdk.Context, clientID string) exported.Status {
	bz := l.clientStore(ctx, clientID).Get([]byte(keyStatus))
	if len(bz) == 0 {
		return exported.Unknown
	}
	return exported.Status(bz)
}

func (l *LightClientModule) setStatus(ctx sdk.Context, clientID string, status exported.Status) {
	l.clientStore(ctx, clientID).Set([]byte(keyStatus), []byte(status))
}
