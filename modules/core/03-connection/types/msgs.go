package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	commitmenttypes "github.com/multiversx/mx-ibc-go/modules/core/23-commitment/types"
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
)

// MsgConnectionOpenInit defines the msg sent by an account on Chain A to
// initialize a connection with Chain B.
type MsgConnectionOpenInit struct {
	ClientId     string
	Counterparty Counterparty
	Version      *Version
	DelayPeriod  uint64
	Signer       sdk.AccAddress
}

// NewMsgConnectionOpenInit creates a new MsgConnectionOpenInit instance.
func NewMsgConnectionOpenInit(
	clientID string, counterparty Counterparty,
	version *Version, delayPeriod uint64, signer sdk.AccAddress,
) *MsgConnectionOpenInit {
	return &MsgConnectionOpenInit{
		ClientId:     clientID,
		Counterparty: counterparty,
		Version:      version,
		DelayPeriod:  delayPeriod,
		Signer:       signer,
	}
}

// ValidateBasic performs stateless checks.
func (msg MsgConnectionOpenInit) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid client ID")
	}
	// NOTE: Version can be nil on MsgConnectionOpenInit
	if msg.Version != nil {
		if err := ValidateVersion(msg.Version); err != nil {
			return sdkerrors.Wrap(err, "basic validation of the provided version failed")
		}
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Counterparty.ValidateBasic()
}

// MsgConnectionOpenTry defines a msg sent by a Relayer to try to open a
// connection on Chain B.
type MsgConnectionOpenTry struct {
	ClientId                string
	Counterparty            Counterparty
	DelayPeriod             uint64
	ClientState             []byte
	CounterpartyVersions    []*Version
	ProofInit               []byte
	ProofClient             []byte
	ProofConsensus          []byte
	ProofHeight             clienttypes.Height
	ConsensusHeight         clienttypes.Height
	HostConsensusStateProof []byte
	Signer                  sdk.AccAddress
}

// ValidateBasic performs stateless checks.
func (msg MsgConnectionOpenTry) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid client ID")
	}
	// the counterparty connection identifier must be known at this step
	if err := host.ConnectionIdentifierValidator(msg.Counterparty.ConnectionId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty connection ID")
	}
	if len(msg.ClientState) == 0 {
		return sdkerrors.Wrap(clienttypes.ErrInvalidClient, "counterparty client is empty")
	}
	if len(msg.CounterpartyVersions) == 0 {
		return sdkerrors.Wrap(ErrInvalidVersion, "empty counterparty versions")
	}
	for i, version := range msg.CounterpartyVersions {
		if err := ValidateVersion(version); err != nil {
			return sdkerrors.Wrapf(err, "basic validation failed on version with index %d", i)
		}
	}
	if len(msg.ProofInit) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof init")
	}
	if len(msg.ProofClient) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit empty proof client")
	}
	if len(msg.ProofConsensus) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of consensus state")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if msg.ConsensusHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "consensus height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Counterparty.ValidateBasic()
}

// MsgConnectionOpenAck defines a msg sent by a Relayer to Chain A to
// acknowledge the change of connection state to TRYOPEN on Chain B.
type MsgConnectionOpenAck struct {
	ConnectionId             string
	CounterpartyConnectionId string
	Version                  *Version
	ClientState              []byte
	ProofTry                 []byte
	ProofClient              []byte
	ProofConsensus           []byte
	ProofHeight              clienttypes.Height
	ConsensusHeight          clienttypes.Height
	HostConsensusStateProof  []byte
	Signer                   sdk.AccAddress
}

// ValidateBasic performs stateless checks.
func (msg MsgConnectionOpenAck) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if err := host.ConnectionIdentifierValidator(msg.CounterpartyConnectionId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty connection ID")
	}
	if err := ValidateVersion(msg.Version); err != nil {
		return err
	}
	if len(msg.ClientState) == 0 {
		return sdkerrors.Wrap(clienttypes.ErrInvalidClient, "counterparty client is empty")
	}
	if len(msg.ProofTry) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof try")
	}
	if len(msg.ProofClient) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit empty proof client")
	}
	if len(msg.ProofConsensus) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof of consensus state")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if msg.ConsensusHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "consensus height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// MsgConnectionOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of connection state to OPEN on Chain A.
type MsgConnectionOpenConfirm struct {
	ConnectionId string
	ProofAck     []byte
	ProofHeight  clienttypes.Height
	Signer       sdk.AccAddress
}

// NewMsgConnectionOpenConfirm creates a new MsgConnectionOpenConfirm instance
func NewMsgConnectionOpenConfirm(
	connectionID string, ackProof []byte, proofHeight clienttypes.Height, signer sdk.AccAddress,
) *MsgConnectionOpenConfirm {
	return &MsgConnectionOpenConfirm{
		ConnectionId: connectionID,
		ProofAck:     ackProof,
		ProofHeight:  proofHeight,
		Signer:       signer,
	}
}

// ValidateBasic performs stateless checks.
func (msg MsgConnectionOpenConfirm) ValidateBasic() error {
	if !IsValidConnectionID(msg.ConnectionId) {
		return ErrInvalidConnectionIdentifier
	}
	if len(msg.ProofAck) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "cannot submit an empty proof ack")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// MsgConnectionOpenInitResponse carries the generated connection identifier.
type MsgConnectionOpenInitResponse struct {
	ConnectionId string
}

// MsgConnectionOpenTryResponse carries the generated connection identifier.
type MsgConnectionOpenTryResponse struct {
	ConnectionId string
}

// MsgConnectionOpenAckResponse defines the response of the connection open ack handler.
type MsgConnectionOpenAckResponse struct{}

// MsgConnectionOpenConfirmResponse defines the response of the connection open confirm handler.
type MsgConnectionOpenConfirmResponse struct{}

func validateSigner(signer sdk.AccAddress) error {
	if err := sdk.VerifyAddressFormat(signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "invalid signer: %v", err)
	}
	return nil
}
