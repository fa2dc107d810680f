package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// SubModuleName is the error codespace
const SubModuleName string = "commitment"

// IBC connection sentinel errors
var (
	ErrInvalidProof                    = sdkerrors.Register(SubModuleName, 2, "invalid proof")
	ErrInvalidPrefix                   = sdkerrors.Register(SubModuleName, 3, "invalid prefix")
	ErrMembershipVerificationFailed    = sdkerrors.Register(SubModuleName, 4, "membership verification failed")
	ErrNonMembershipVerificationFailed = sdkerrors.Register(SubModuleName, 5, "non-membership verification failed")
	ErrInvalidReceipt                  = sdkerrors.Register(SubModuleName, 6, "invalid packet receipt commitment")
)
