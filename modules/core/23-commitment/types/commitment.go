package types

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/crypto"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// HashLength is the length of every key and value in the commitment store.
const HashLength = 32

// Commit returns the value stored in the commitment map for a verification
// value: keccak256(value). Counterparties prove the pre-image, the host
// stores the hash.
func Commit(value []byte) []byte {
	return crypto.Keccak256(value)
}

// PacketCommitmentValue returns the packet verification value
// sha256(timeout_timestamp ++ revision_number ++ revision_height ++ sha256(data)),
// all integers big-endian on 8 bytes.
func PacketCommitmentValue(timeoutHeight exported.Height, timeoutTimestamp uint64, data []byte) []byte {
	buf := sdk.Uint64ToBigEndian(timeoutTimestamp)

	revisionNumber := sdk.Uint64ToBigEndian(timeoutHeight.GetRevisionNumber())
	buf = append(buf, revisionNumber...)

	revisionHeight := sdk.Uint64ToBigEndian(timeoutHeight.GetRevisionHeight())
	buf = append(buf, revisionHeight...)

	dataHash := sha256.Sum256(data)
	buf = append(buf, dataHash[:]...)

	hash := sha256.Sum256(buf)
	return hash[:]
}

// CommitPacket returns the stored packet commitment keccak256(PacketCommitmentValue).
func CommitPacket(timeoutHeight exported.Height, timeoutTimestamp uint64, data []byte) []byte {
	return Commit(PacketCommitmentValue(timeoutHeight, timeoutTimestamp, data))
}

// AcknowledgementValue returns the acknowledgement verification value sha256(ack).
func AcknowledgementValue(ack []byte) []byte {
	hash := sha256.Sum256(ack)
	return hash[:]
}

// CommitAcknowledgement returns the stored acknowledgement commitment keccak256(sha256(ack)).
func CommitAcknowledgement(ack []byte) []byte {
	return Commit(AcknowledgementValue(ack))
}

// SequenceValue returns the verification value of a sequence counter, its
// 8 byte big-endian encoding.
func SequenceValue(sequence uint64) []byte {
	return sdk.Uint64ToBigEndian(sequence)
}

// CommitSequence returns the stored commitment of a sequence counter.
func CommitSequence(sequence uint64) []byte {
	return Commit(SequenceValue(sequence))
}
