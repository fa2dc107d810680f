package errors

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

const codespace = exported.ModuleName

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = sdkerrors.Register(codespace, 2, "unauthorized")

	// ErrInvalidAddress is used when an address is found to be invalid.
	ErrInvalidAddress = sdkerrors.Register(codespace, 3, "invalid address")

	// ErrInvalidRequest defines an ABCI typed error where the request contains
	// invalid data.
	ErrInvalidRequest = sdkerrors.Register(codespace, 4, "invalid request")

	// ErrInvalidHeight defines an error for an invalid height
	ErrInvalidHeight = sdkerrors.Register(codespace, 5, "invalid height")

	// ErrInvalidType defines an error an invalid type.
	ErrInvalidType = sdkerrors.Register(codespace, 6, "invalid type")

	// ErrLogic defines an internal logic error, e.g. an invariant or assertion
	// that is violated. It is a programmer error, not a user-facing error.
	ErrLogic = sdkerrors.Register(codespace, 7, "internal logic error")

	// ErrNotFound defines an error when requested entity doesn't exist in the state.
	ErrNotFound = sdkerrors.Register(codespace, 8, "not found")

	// ErrOverflow defines an error when an arithmetic conversion overflows,
	// e.g. converting the block time to nanoseconds.
	ErrOverflow = sdkerrors.Register(codespace, 9, "arithmetic overflow")

	// ErrInvalidEncoding defines an error when a stored record cannot be decoded.
	ErrInvalidEncoding = sdkerrors.Register(codespace, 10, "invalid encoding")
)
