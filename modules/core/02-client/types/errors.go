package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC client sentinel errors
var (
	ErrClientExists               = sdkerrors.Register(SubModuleName, 2, "light client already exists")
	ErrInvalidClient              = sdkerrors.Register(SubModuleName, 3, "light client is invalid")
	ErrClientNotFound             = sdkerrors.Register(SubModuleName, 4, "light client not found")
	ErrClientFrozen               = sdkerrors.Register(SubModuleName, 5, "light client is frozen due to misbehaviour")
	ErrConsensusStateNotFound     = sdkerrors.Register(SubModuleName, 6, "consensus state not found")
	ErrInvalidConsensus           = sdkerrors.Register(SubModuleName, 7, "invalid consensus state")
	ErrClientTypeNotFound         = sdkerrors.Register(SubModuleName, 8, "client type not found")
	ErrInvalidClientType          = sdkerrors.Register(SubModuleName, 9, "invalid client type")
	ErrInvalidHeader              = sdkerrors.Register(SubModuleName, 10, "invalid client header")
	ErrClientNotActive            = sdkerrors.Register(SubModuleName, 11, "client state is not active")
	ErrRouteNotFound              = sdkerrors.Register(SubModuleName, 12, "light client module route not found")
	ErrInvalidHeight              = sdkerrors.Register(SubModuleName, 13, "invalid height")
	ErrSelfConsensusStateNotFound = sdkerrors.Register(SubModuleName, 14, "self consensus state not found")
	ErrInvalidClientMessage       = sdkerrors.Register(SubModuleName, 15, "invalid client message")
)
