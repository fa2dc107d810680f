package mock

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

// IBCApp holds optional overrides of the mock application callbacks. A nil
// field falls back to the default mock behaviour.
type IBCApp struct {
	PortID string

	OnChanOpenInit func(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID string,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) (string, error)

	OnChanOpenTry func(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID,
		channelID string,
		counterparty channeltypes.Counterparty,
		counterpartyVersion string,
	) (version string, err error)

	OnChanOpenAck func(
		ctx sdk.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	OnChanOpenConfirm func(ctx sdk.Context, portID, channelID string) error

	OnChanCloseInit func(ctx sdk.Context, portID, channelID string) error

	OnChanCloseConfirm func(ctx sdk.Context, portID, channelID string) error

	OnRecvPacket func(
		ctx sdk.Context,
		packet channeltypes.Packet,
		relayer sdk.AccAddress,
	) exported.Acknowledgement

	OnAcknowledgementPacket func(
		ctx sdk.Context,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer sdk.AccAddress,
	) error

	OnTimeoutPacket func(
		ctx sdk.Context,
		packet channeltypes.Packet,
		relayer sdk.AccAddress,
	) error
}

// NewIBCApp returns an IBCApp bound to the given port.
func NewIBCApp(portID string) *IBCApp {
	return &IBCApp{
		PortID: portID,
	}
}

// Reset clears every callback override.
func (app *IBCApp) Reset() {
	*app = IBCApp{PortID: app.PortID}
}
