package mock

import (
	"bytes"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/multiversx/mx-ibc-go/modules/core/05-port/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// IBCModule implements the ICS26 callbacks for testing/mock. Received and
// settled packets are recorded in the module store so tests can observe
// which callback state was committed.
type IBCModule struct {
	IBCApp *IBCApp

	key sdk.StoreKey
}

// NewIBCModule creates a new IBCModule given the underlying mock IBC application and its store key.
func NewIBCModule(app *IBCApp, key sdk.StoreKey) IBCModule {
	return IBCModule{
		IBCApp: app,
		key:    key,
	}
}

// OnChanOpenInit implements the IBCModule interface.
func (im IBCModule) OnChanOpenInit(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	if strings.TrimSpace(version) == "" {
		version = Version
	}

	if im.IBCApp.OnChanOpenInit != nil {
		return im.IBCApp.OnChanOpenInit(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	return version, nil
}

// OnChanOpenTry implements the IBCModule interface.
func (im IBCModule) OnChanOpenTry(
	ctx sdk.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (version string, err error) {
	if im.IBCApp.OnChanOpenTry != nil {
		return im.IBCApp.OnChanOpenTry(ctx, order, connectionHops, portID, channelID, counterparty, counterpartyVersion)
	}

	if counterpartyVersion != Version {
		return "", MockApplicationCallbackError
	}

	return Version, nil
}

// OnChanOpenAck implements the IBCModule interface.
func (im IBCModule) OnChanOpenAck(ctx sdk.Context, portID string, channelID string, counterpartyChannelID string, counterpartyVersion string) error {
	if im.IBCApp.OnChanOpenAck != nil {
		return im.IBCApp.OnChanOpenAck(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion)
	}

	return nil
}

// OnChanOpenConfirm implements the IBCModule interface.
func (im IBCModule) OnChanOpenConfirm(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanOpenConfirm != nil {
		return im.IBCApp.OnChanOpenConfirm(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseInit implements the IBCModule interface.
func (im IBCModule) OnChanCloseInit(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseInit != nil {
		return im.IBCApp.OnChanCloseInit(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseConfirm implements the IBCModule interface.
func (im IBCModule) OnChanCloseConfirm(ctx sdk.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseConfirm != nil {
		return im.IBCApp.OnChanCloseConfirm(ctx, portID, channelID)
	}

	return nil
}

// OnRecvPacket implements the IBCModule interface. MockPacketData is acknowledged
// successfully, MockAsyncPacketData asynchronously, MockEmptyAckPacketData with an
// empty acknowledgement and any other data fails.
func (im IBCModule) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) exported.Acknowledgement {
	if im.IBCApp.OnRecvPacket != nil {
		return im.IBCApp.OnRecvPacket(ctx, packet, relayer)
	}

	ctx.KVStore(im.key).Set(receivedKey(packet), packet.GetData())
	ctx.EventManager().EmitEvent(NewMockRecvPacketEvent(packet.GetSequence()))

	switch {
	case bytes.Equal(MockPacketData, packet.GetData()):
		return MockAcknowledgement
	case bytes.Equal(MockAsyncPacketData, packet.GetData()):
		return nil
	case bytes.Equal(MockEmptyAckPacketData, packet.GetData()):
		return MockEmptyAcknowledgement
	default:
		return MockFailAcknowledgement
	}
}

// OnAcknowledgementPacket implements the IBCModule interface.
func (im IBCModule) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
	if im.IBCApp.OnAcknowledgementPacket != nil {
		return im.IBCApp.OnAcknowledgementPacket(ctx, packet, acknowledgement, relayer)
	}

	ctx.KVStore(im.key).Set(settledKey(packet), acknowledgement)
	ctx.EventManager().EmitEvent(NewMockAckPacketEvent(packet.GetSequence()))

	return nil
}

// OnTimeoutPacket implements the IBCModule interface.
func (im IBCModule) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) error {
	if im.IBCApp.OnTimeoutPacket != nil {
		return im.IBCApp.OnTimeoutPacket(ctx, packet, relayer)
	}

	ctx.KVStore(im.key).Set(settledKey(packet), []byte{})
	ctx.EventManager().EmitEvent(NewMockTimeoutPacketEvent(packet.GetSequence()))

	return nil
}

// HasReceived reports whether the default OnRecvPacket state for the packet was committed.
func (im IBCModule) HasReceived(ctx sdk.Context, packet channeltypes.Packet) bool {
	return ctx.KVStore(im.key).Has(receivedKey(packet))
}

// HasSettled reports whether the packet was acknowledged or timed out on the sending side.
func (im IBCModule) HasSettled(ctx sdk.Context, packet channeltypes.Packet) bool {
	return ctx.KVStore(im.key).Has(settledKey(packet))
}
