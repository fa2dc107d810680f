package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/multiversx/mx-ibc-go/internal/validate"
	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
)

// MsgChannelOpenInit defines an sdk.Msg to initialize a channel handshake. It
// is called by a relayer on Chain A.
type MsgChannelOpenInit struct {
	PortId  string
	Channel Channel
	Signer  sdk.AccAddress
}

// NewMsgChannelOpenInit creates a new MsgChannelOpenInit. It sets the counterparty channel
// identifier to be empty.
func NewMsgChannelOpenInit(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID string, signer sdk.AccAddress,
) *MsgChannelOpenInit {
	counterparty := NewCounterparty(counterpartyPortID, "")
	channel := NewChannel(INIT, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenInit{
		PortId:  portID,
		Channel: channel,
		Signer:  signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenInit) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if msg.Channel.State != INIT {
		return sdkerrors.Wrapf(ErrInvalidChannelState,
			"channel state must be INIT in MsgChannelOpenInit. expected: %s, got: %s",
			INIT, msg.Channel.State,
		)
	}
	if msg.Channel.Counterparty.ChannelId != "" {
		return sdkerrors.Wrap(ErrInvalidCounterparty, "counterparty channel identifier must be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Channel.ValidateBasic()
}

// MsgChannelOpenTry defines a msg sent by a Relayer to try to open a channel
// on Chain B.
type MsgChannelOpenTry struct {
	PortId              string
	Channel             Channel
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         clienttypes.Height
	Signer              sdk.AccAddress
}

// NewMsgChannelOpenTry creates a new MsgChannelOpenTry instance
func NewMsgChannelOpenTry(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID, counterpartyChannelID, counterpartyVersion string,
	proofInit []byte, proofHeight clienttypes.Height, signer sdk.AccAddress,
) *MsgChannelOpenTry {
	counterparty := NewCounterparty(counterpartyPortID, counterpartyChannelID)
	channel := NewChannel(TRYOPEN, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenTry{
		PortId:              portID,
		Channel:             channel,
		CounterpartyVersion: counterpartyVersion,
		ProofInit:           proofInit,
		ProofHeight:         proofHeight,
		Signer:              signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenTry) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if len(msg.ProofInit) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if msg.Channel.State != TRYOPEN {
		return sdkerrors.Wrapf(ErrInvalidChannelState,
			"channel state must be TRYOPEN in MsgChannelOpenTry. expected: %s, got: %s",
			TRYOPEN, msg.Channel.State,
		)
	}
	// counterparty validate basic allows empty counterparty channel identifiers
	if err := host.ChannelIdentifierValidator(msg.Channel.Counterparty.ChannelId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty channel ID")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Channel.ValidateBasic()
}

// MsgChannelOpenAck defines a msg sent by a Relayer to Chain A to acknowledge
// the change of channel state to TRYOPEN on Chain B.
type MsgChannelOpenAck struct {
	PortId                string
	ChannelId             string
	CounterpartyChannelId string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           clienttypes.Height
	Signer                sdk.AccAddress
}

// NewMsgChannelOpenAck creates a new MsgChannelOpenAck instance
func NewMsgChannelOpenAck(
	portID, channelID, counterpartyChannelID string, cpv string, proofTry []byte, proofHeight clienttypes.Height,
	signer sdk.AccAddress,
) *MsgChannelOpenAck {
	return &MsgChannelOpenAck{
		PortId:                portID,
		ChannelId:             channelID,
		CounterpartyChannelId: counterpartyChannelID,
		CounterpartyVersion:   cpv,
		ProofTry:              proofTry,
		ProofHeight:           proofHeight,
		Signer:                signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenAck) ValidateBasic() error {
	if err := validatePortAndChannel(msg.PortId, msg.ChannelId); err != nil {
		return err
	}
	if err := host.ChannelIdentifierValidator(msg.CounterpartyChannelId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty channel ID")
	}
	if len(msg.ProofTry) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// MsgChannelOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of channel state to OPEN on Chain A.
type MsgChannelOpenConfirm struct {
	PortId      string
	ChannelId   string
	ProofAck    []byte
	ProofHeight clienttypes.Height
	Signer      sdk.AccAddress
}

// NewMsgChannelOpenConfirm creates a new MsgChannelOpenConfirm instance
func NewMsgChannelOpenConfirm(
	portID, channelID string, proofAck []byte, proofHeight clienttypes.Height,
	signer sdk.AccAddress,
) *MsgChannelOpenConfirm {
	return &MsgChannelOpenConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofAck:    proofAck,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenConfirm) ValidateBasic() error {
	if err := validatePortAndChannel(msg.PortId, msg.ChannelId); err != nil {
		return err
	}
	if len(msg.ProofAck) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// MsgChannelCloseInit defines a msg sent by a Relayer to Chain A
// to close a channel with Chain B.
type MsgChannelCloseInit struct {
	PortId    string
	ChannelId string
	Signer    sdk.AccAddress
}

// NewMsgChannelCloseInit creates a new MsgChannelCloseInit instance
func NewMsgChannelCloseInit(portID string, channelID string, signer sdk.AccAddress) *MsgChannelCloseInit {
	return &MsgChannelCloseInit{
		PortId:    portID,
		ChannelId: channelID,
		Signer:    signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelCloseInit) ValidateBasic() error {
	if err := validatePortAndChannel(msg.PortId, msg.ChannelId); err != nil {
		return err
	}
	return validateSigner(msg.Signer)
}

// MsgChannelCloseConfirm defines a msg sent by a Relayer to Chain B
// to acknowledge the change of channel state to CLOSED on Chain A.
type MsgChannelCloseConfirm struct {
	PortId      string
	ChannelId   string
	ProofInit   []byte
	ProofHeight clienttypes.Height
	Signer      sdk.AccAddress
}

// NewMsgChannelCloseConfirm creates a new MsgChannelCloseConfirm instance
func NewMsgChannelCloseConfirm(
	portID, channelID string, proofInit []byte, proofHeight clienttypes.Height,
	signer sdk.AccAddress,
) *MsgChannelCloseConfirm {
	return &MsgChannelCloseConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofInit:   proofInit,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelCloseConfirm) ValidateBasic() error {
	if err := validatePortAndChannel(msg.PortId, msg.ChannelId); err != nil {
		return err
	}
	if len(msg.ProofInit) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// MsgRecvPacket receives incoming IBC packet
type MsgRecvPacket struct {
	Packet          Packet
	ProofCommitment []byte
	ProofHeight     clienttypes.Height
	Signer          sdk.AccAddress
}

// NewMsgRecvPacket constructs new MsgRecvPacket
func NewMsgRecvPacket(
	packet Packet, proofCommitment []byte, proofHeight clienttypes.Height,
	signer sdk.AccAddress,
) *MsgRecvPacket {
	return &MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: proofCommitment,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgRecvPacket) ValidateBasic() error {
	if len(msg.ProofCommitment) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// MsgTimeout receives timed-out packet
type MsgTimeout struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           sdk.AccAddress
}

// NewMsgTimeout constructs new MsgTimeout
func NewMsgTimeout(
	packet Packet, nextSequenceRecv uint64, proofUnreceived []byte,
	proofHeight clienttypes.Height, signer sdk.AccAddress,
) *MsgTimeout {
	return &MsgTimeout{
		Packet:           packet,
		NextSequenceRecv: nextSequenceRecv,
		ProofUnreceived:  proofUnreceived,
		ProofHeight:      proofHeight,
		Signer:           signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgTimeout) ValidateBasic() error {
	if len(msg.ProofUnreceived) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if msg.NextSequenceRecv == 0 {
		return sdkerrors.Wrap(ErrInvalidPacket, "next sequence receive cannot be 0")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// MsgTimeoutOnClose timed-out packet upon counterparty channel closure.
type MsgTimeoutOnClose struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofClose       []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           sdk.AccAddress
}

// NewMsgTimeoutOnClose constructs new MsgTimeoutOnClose
func NewMsgTimeoutOnClose(
	packet Packet, nextSequenceRecv uint64,
	proofUnreceived, proofClose []byte,
	proofHeight clienttypes.Height, signer sdk.AccAddress,
) *MsgTimeoutOnClose {
	return &MsgTimeoutOnClose{
		Packet:           packet,
		NextSequenceRecv: nextSequenceRecv,
		ProofUnreceived:  proofUnreceived,
		ProofClose:       proofClose,
		ProofHeight:      proofHeight,
		Signer:           signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgTimeoutOnClose) ValidateBasic() error {
	if msg.NextSequenceRecv == 0 {
		return sdkerrors.Wrap(ErrInvalidPacket, "next sequence receive cannot be 0")
	}
	if len(msg.ProofUnreceived) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if len(msg.ProofClose) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of closed counterparty channel end")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// MsgAcknowledgement receives incoming IBC acknowledgement
type MsgAcknowledgement struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     clienttypes.Height
	Signer          sdk.AccAddress
}

// NewMsgAcknowledgement constructs a new MsgAcknowledgement
func NewMsgAcknowledgement(
	packet Packet,
	ack, proofAcked []byte,
	proofHeight clienttypes.Height,
	signer sdk.AccAddress,
) *MsgAcknowledgement {
	return &MsgAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		ProofAcked:      proofAcked,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgAcknowledgement) ValidateBasic() error {
	if len(msg.ProofAcked) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if len(msg.Acknowledgement) == 0 {
		return sdkerrors.Wrap(ErrInvalidAcknowledgement, "ack bytes cannot be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// MsgSendPacket is sent by the module owning a channel to send a packet on it.
type MsgSendPacket struct {
	SourcePort       string
	SourceChannel    string
	TimeoutHeight    clienttypes.Height
	TimeoutTimestamp uint64
	Data             []byte
	Signer           sdk.AccAddress
}

// NewMsgSendPacket constructs a new MsgSendPacket
func NewMsgSendPacket(
	sourcePort, sourceChannel string,
	timeoutHeight clienttypes.Height, timeoutTimestamp uint64,
	data []byte, signer sdk.AccAddress,
) *MsgSendPacket {
	return &MsgSendPacket{
		SourcePort:       sourcePort,
		SourceChannel:    sourceChannel,
		TimeoutHeight:    timeoutHeight,
		TimeoutTimestamp: timeoutTimestamp,
		Data:             data,
		Signer:           signer,
	}
}

// ValidateBasic implements sdk.Msg. The zero timeout is rejected by the
// keeper so that it surfaces as ErrZeroTimeout after the channel checks.
func (msg MsgSendPacket) ValidateBasic() error {
	if err := validatePortAndChannel(msg.SourcePort, msg.SourceChannel); err != nil {
		return err
	}
	if len(msg.Data) == 0 {
		return sdkerrors.Wrap(ErrInvalidPacket, "packet data bytes cannot be empty")
	}
	return validateSigner(msg.Signer)
}

// MsgWriteAcknowledgement is sent by the module owning a channel to write an
// acknowledgement for a packet it received asynchronously.
type MsgWriteAcknowledgement struct {
	Packet          Packet
	Acknowledgement Acknowledgement
	Signer          sdk.AccAddress
}

// NewMsgWriteAcknowledgement constructs a new MsgWriteAcknowledgement
func NewMsgWriteAcknowledgement(packet Packet, ack Acknowledgement, signer sdk.AccAddress) *MsgWriteAcknowledgement {
	return &MsgWriteAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgWriteAcknowledgement) ValidateBasic() error {
	if err := msg.Acknowledgement.ValidateBasic(); err != nil {
		return err
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// MsgChannelOpenInitResponse defines the response of the channel open init handler.
type MsgChannelOpenInitResponse struct {
	ChannelId string
	Version   string
}

// MsgChannelOpenTryResponse defines the response of the channel open try handler.
type MsgChannelOpenTryResponse struct {
	ChannelId string
	Version   string
}

// MsgChannelOpenAckResponse defines the response of the channel open ack handler.
type MsgChannelOpenAckResponse struct{}

// MsgChannelOpenConfirmResponse defines the response of the channel open confirm handler.
type MsgChannelOpenConfirmResponse struct{}

// MsgChannelCloseInitResponse defines the response of the channel close init handler.
type MsgChannelCloseInitResponse struct{}

// MsgChannelCloseConfirmResponse defines the response of the channel close confirm handler.
type MsgChannelCloseConfirmResponse struct{}

// MsgSendPacketResponse carries the sequence assigned to the sent packet.
type MsgSendPacketResponse struct {
	Sequence uint64
}

// MsgRecvPacketResponse carries the acknowledgement returned by the
// application, which is nil for asynchronous acknowledgements.
type MsgRecvPacketResponse struct {
	Acknowledgement []byte
}

// MsgWriteAcknowledgementResponse defines the response of the write acknowledgement handler.
type MsgWriteAcknowledgementResponse struct{}

// MsgAcknowledgementResponse defines the response of the acknowledgement handler.
type MsgAcknowledgementResponse struct{}

// MsgTimeoutResponse defines the response of the timeout handler.
type MsgTimeoutResponse struct{}

// MsgTimeoutOnCloseResponse defines the response of the timeout on close handler.
type MsgTimeoutOnCloseResponse struct{}

func validatePortAndChannel(portID, channelID string) error {
	if err := validate.PortAndChannel(portID, channelID); err != nil {
		return err
	}
	if !IsValidChannelID(channelID) {
		return sdkerrors.Wrapf(ErrInvalidChannelIdentifier, "invalid channel ID %s", channelID)
	}
	return nil
}

func validateSigner(signer sdk.AccAddress) error {
	if err := sdk.VerifyAddressFormat(signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "invalid signer: %v", err)
	}
	return nil
}
