package types

import (
	"bytes"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// VerifyCommittedValue checks that the commitment read from a counterparty
// commitment store is the commitment of value.
func VerifyCommittedValue(stored []byte, value []byte) error {
	if len(stored) == 0 {
		return sdkerrors.Wrap(ErrMembershipVerificationFailed, "no commitment stored at path")
	}
	if !bytes.Equal(stored, Commit(value)) {
		return sdkerrors.Wrapf(ErrMembershipVerificationFailed, "stored commitment %X does not commit to value", stored)
	}
	return nil
}

// VerifyAbsence checks that nothing is committed at a path.
func VerifyAbsence(stored []byte) error {
	if len(stored) != 0 && !bytes.Equal(stored, CommitReceipt(ReceiptNone)) {
		return sdkerrors.Wrapf(ErrNonMembershipVerificationFailed, "commitment %X stored at path", stored)
	}
	return nil
}
