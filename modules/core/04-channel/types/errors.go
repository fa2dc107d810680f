package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC channel sentinel errors
var (
	ErrChannelExists             = sdkerrors.Register(SubModuleName, 2, "channel already exists")
	ErrChannelNotFound           = sdkerrors.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannel            = sdkerrors.Register(SubModuleName, 4, "invalid channel")
	ErrInvalidChannelState       = sdkerrors.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering    = sdkerrors.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty       = sdkerrors.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrInvalidChannelCapability  = sdkerrors.Register(SubModuleName, 8, "invalid channel capability")
	ErrChannelCapabilityNotFound = sdkerrors.Register(SubModuleName, 9, "channel capability not found")
	ErrSequenceSendNotFound      = sdkerrors.Register(SubModuleName, 10, "sequence send not found")
	ErrSequenceReceiveNotFound   = sdkerrors.Register(SubModuleName, 11, "sequence receive not found")
	ErrSequenceAckNotFound       = sdkerrors.Register(SubModuleName, 12, "sequence acknowledgement not found")
	ErrInvalidPacket             = sdkerrors.Register(SubModuleName, 13, "invalid packet")
	ErrTooManyConnectionHops     = sdkerrors.Register(SubModuleName, 14, "too many connection hops")
	ErrInvalidAcknowledgement    = sdkerrors.Register(SubModuleName, 15, "invalid acknowledgement")
	ErrAcknowledgementExists     = sdkerrors.Register(SubModuleName, 16, "acknowledgement for packet already exists")
	ErrInvalidChannelIdentifier  = sdkerrors.Register(SubModuleName, 17, "invalid channel identifier")
	ErrPacketCommitmentNotFound  = sdkerrors.Register(SubModuleName, 18, "packet commitment not found")
	ErrPacketCommitmentMismatch  = sdkerrors.Register(SubModuleName, 19, "packet commitment does not match the packet")
	ErrPacketSequenceOutOfOrder  = sdkerrors.Register(SubModuleName, 20, "packet sequence is out of order")
	ErrPacketAlreadyProcessed    = sdkerrors.Register(SubModuleName, 21, "packet already processed")
	ErrPacketReceiptExists       = sdkerrors.Register(SubModuleName, 22, "packet receipt already exists")
	ErrInvalidPacketSource       = sdkerrors.Register(SubModuleName, 23, "packet source does not match the channel counterparty")
	ErrInvalidPacketDestination  = sdkerrors.Register(SubModuleName, 24, "packet destination does not match the channel counterparty")
	ErrZeroTimeout               = sdkerrors.Register(SubModuleName, 25, "packet timeout height and timestamp cannot both be zero")
	ErrPastTimeoutHeight         = sdkerrors.Register(SubModuleName, 26, "packet timeout height already elapsed on the counterparty")
	ErrPastTimeoutTimestamp      = sdkerrors.Register(SubModuleName, 27, "packet timeout timestamp already elapsed on the counterparty")
	ErrTimeoutElapsed            = sdkerrors.Register(SubModuleName, 28, "packet timeout elapsed")
	ErrTimeoutNotReached         = sdkerrors.Register(SubModuleName, 29, "packet timeout not reached")
	ErrInvalidChannelVersion     = sdkerrors.Register(SubModuleName, 30, "invalid channel version")
	ErrInvalidUpgradeSequence    = sdkerrors.Register(SubModuleName, 31, "invalid upgrade sequence")
	ErrCannotReceiveNextUpgrade  = sdkerrors.Register(SubModuleName, 32, "cannot receive packets sent after the upgrade started")
	ErrInvalidTimeout            = sdkerrors.Register(SubModuleName, 33, "invalid packet timeout")
)
