package host

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// ModuleName is the name of the IBC module
	ModuleName = "ibc"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the IBC module
	RouterKey = ModuleName

	// DefaultCommitmentPrefix is the key prefix counterparties use to reach the commitment store
	DefaultCommitmentPrefix = "ibc"
)

const (
	KeyClientStorePrefix      = "clients"
	KeyClientState            = "clientState"
	KeyConsensusStatePrefix   = "consensusStates"
	KeyClientInfo             = "clientInfo"
	KeyConnectionPrefix       = "connections"
	KeyChannelEndPrefix       = "channelEnds"
	KeyChannelPrefix          = "channels"
	KeyPortPrefix             = "ports"
	KeySequencePrefix         = "sequences"
	KeyChannelUpgradePrefix   = "channelUpgrades"
	KeyUpgradePrefix          = "upgrades"
	KeyUpgradeErrorPrefix     = "upgradeError"
	KeyCapabilityPrefix       = "capabilities"
	KeyNextSeqSendPrefix      = "nextSequenceSend"
	KeyNextSeqRecvPrefix      = "nextSequenceRecv"
	KeyNextSeqAckPrefix       = "nextSequenceAck"
	KeyPacketCommitmentPrefix = "commitments"
	KeyPacketAckPrefix        = "acks"
	KeyPacketReceiptPrefix    = "receipts"
	KeyRecvStartSequence      = "recvStartSequence"
	KeyAckStartSequence       = "ackStartSequence"
	KeyLatestErrorReceipt     = "latestErrorReceiptSequence"
	KeyHostInfo               = "hostInfo"
	KeyCommitmentStorePrefix  = "commitmentStore"
)

// CommitmentKey returns the key under which the commitment for the given
// path is stored: keccak256 of the ASCII path.
func CommitmentKey(path string) []byte {
	return crypto.Keccak256([]byte(path))
}

// FullClientPath returns the full path of a specific client path in the format:
// "clients/{clientID}/{path}" as a string.
func FullClientPath(clientID string, path string) string {
	return fmt.Sprintf("%s/%s/%s", KeyClientStorePrefix, clientID, path)
}

// FullClientKey returns the full path of specific client path in the format:
// "clients/{clientID}/{path}" as a byte array.
func FullClientKey(clientID string, path []byte) []byte {
	return []byte(FullClientPath(clientID, string(path)))
}

// PrefixedClientStorePath returns a key path which can be used for prefixed
// key store iteration. The prefix may be a clientType, clientID, or any
// valid key prefix which may be concatenated with the client store constant.
func PrefixedClientStorePath(prefix []byte) string {
	return fmt.Sprintf("%s/%s", KeyClientStorePrefix, prefix)
}

// PrefixedClientStoreKey returns a key which can be used for prefixed
// key store iteration.
func PrefixedClientStoreKey(prefix []byte) []byte {
	return []byte(PrefixedClientStorePath(prefix))
}

// HostInfoKey returns the store key of the host-wide counter record.
func HostInfoKey() []byte {
	return []byte(KeyHostInfo)
}

// CommitmentStoreKeyPrefix returns the prefix under which the hashed commitment map lives.
func CommitmentStoreKeyPrefix() []byte {
	return []byte(KeyCommitmentStorePrefix + "/")
}
