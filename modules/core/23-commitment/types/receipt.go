package types

import (
	"bytes"
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ReceiptKind is the outcome recorded for a packet received on an unordered channel.
type ReceiptKind byte

const (
	// ReceiptNone means no packet was received. It is stored as absence.
	ReceiptNone ReceiptKind = iota
	// ReceiptSuccessful means the packet was received.
	ReceiptSuccessful
)

// String implements fmt.Stringer.
func (rk ReceiptKind) String() string {
	switch rk {
	case ReceiptNone:
		return "NONE"
	case ReceiptSuccessful:
		return "SUCCESSFUL"
	default:
		return fmt.Sprintf("RECEIPT_%d", byte(rk))
	}
}

// Bytes returns the encoded enum tag.
func (rk ReceiptKind) Bytes() []byte {
	return []byte{byte(rk)}
}

// CommitReceipt returns the stored commitment of a receipt: keccak256 of the
// encoded tag, or the all-zero hash for ReceiptNone.
func CommitReceipt(kind ReceiptKind) []byte {
	if kind == ReceiptNone {
		return make([]byte, HashLength)
	}
	return Commit(kind.Bytes())
}

// ReceiptFromCommitment maps a stored receipt commitment back to its kind. An
// empty or all-zero commitment is ReceiptNone.
func ReceiptFromCommitment(commitment []byte) (ReceiptKind, error) {
	if len(commitment) == 0 || bytes.Equal(commitment, CommitReceipt(ReceiptNone)) {
		return ReceiptNone, nil
	}
	if bytes.Equal(commitment, CommitReceipt(ReceiptSuccessful)) {
		return ReceiptSuccessful, nil
	}
	return ReceiptNone, sdkerrors.Wrapf(ErrInvalidReceipt, "unknown receipt commitment %X", commitment)
}
