package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	ErrInvalidClientState     = sdkerrors.Register(ModuleName, 2, "invalid mock client state")
	ErrInvalidConsensusState  = sdkerrors.Register(ModuleName, 3, "invalid mock consensus state")
	ErrInvalidHeader          = sdkerrors.Register(ModuleName, 4, "invalid mock header")
	ErrCounterpartyNotFound   = sdkerrors.Register(ModuleName, 5, "counterparty commitment reader not registered")
	ErrClientAlreadyInitiated = sdkerrors.Register(ModuleName, 6, "mock client already initialized")
)
