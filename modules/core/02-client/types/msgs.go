package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
)

// MsgCreateClient defines a message to create an IBC client. The client and
// consensus states are opaque to the core and decoded by the light client
// module registered for ClientType.
type MsgCreateClient struct {
	ClientType     string
	ClientState    []byte
	ConsensusState []byte
	Signer         sdk.AccAddress
}

// NewMsgCreateClient creates a new MsgCreateClient instance
func NewMsgCreateClient(clientType string, clientState, consensusState []byte, signer sdk.AccAddress) *MsgCreateClient {
	return &MsgCreateClient{
		ClientType:     clientType,
		ClientState:    clientState,
		ConsensusState: consensusState,
		Signer:         signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgCreateClient) ValidateBasic() error {
	if err := ValidateClientType(msg.ClientType); err != nil {
		return err
	}
	if len(msg.ClientState) == 0 {
		return sdkerrors.Wrap(ErrInvalidClient, "client state cannot be empty")
	}
	if len(msg.ConsensusState) == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensus, "consensus state cannot be empty")
	}
	return validateSigner(msg.Signer)
}

// MsgCreateClientResponse carries the generated client identifier.
type MsgCreateClientResponse struct {
	ClientId string
}

// MsgUpdateClient defines an sdk.Msg to update an IBC client state using
// the given client message.
type MsgUpdateClient struct {
	ClientId      string
	ClientMessage []byte
	Signer        sdk.AccAddress
}

// NewMsgUpdateClient creates a new MsgUpdateClient instance
func NewMsgUpdateClient(clientID string, clientMessage []byte, signer sdk.AccAddress) *MsgUpdateClient {
	return &MsgUpdateClient{
		ClientId:      clientID,
		ClientMessage: clientMessage,
		Signer:        signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateClient) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(msg.ClientId); err != nil {
		return err
	}
	if len(msg.ClientMessage) == 0 {
		return sdkerrors.Wrap(ErrInvalidClientMessage, "client message cannot be empty")
	}
	return validateSigner(msg.Signer)
}

// MsgUpdateClientResponse defines the response of the update client handler.
type MsgUpdateClientResponse struct{}

func validateSigner(signer sdk.AccAddress) error {
	if err := sdk.VerifyAddressFormat(signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "invalid signer: %v", err)
	}
	return nil
}
