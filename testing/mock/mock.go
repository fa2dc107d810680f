package mock

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
)

const (
	ModuleName = "mock"

	StoreKey = ModuleName

	PortID = ModuleName

	Version = "mock-version"
)

var (
	MockAcknowledgement     = channeltypes.NewResultAcknowledgement([]byte("mock acknowledgement"))
	MockFailAcknowledgement = channeltypes.NewErrorAcknowledgement(errors.New("mock failed acknowledgement"))
	MockPacketData          = []byte("mock packet data")
	MockFailPacketData      = []byte("mock failed packet data")
	MockAsyncPacketData     = []byte("mock async packet data")
	MockEmptyAckPacketData  = []byte("mock empty ack packet data")

	// MockEmptyAcknowledgement is a successful acknowledgement without bytes.
	MockEmptyAcknowledgement exported.Acknowledgement = emptyAcknowledgement{}

	// MockApplicationCallbackError should be returned when an application callback should fail. It is possible to
	// test that this error was returned using ErrorIs.
	MockApplicationCallbackError error = &applicationCallbackError{}

	// ModuleAddress owns the mock port and every channel opened on it.
	ModuleAddress = authtypes.NewModuleAddress(ModuleName)
)

type emptyAcknowledgement struct{}

func (emptyAcknowledgement) Success() bool { return true }

func (emptyAcknowledgement) Acknowledgement() []byte { return []byte{} }

// applicationCallbackError is a custom error type that will be unique for testing purposes.
type applicationCallbackError struct{}

func (applicationCallbackError) Error() string {
	return "mock application callback failed"
}

const (
	EventTypeRecvPacket    = "mock_recv_packet"
	EventTypeAckPacket     = "mock_ack_packet"
	EventTypeTimeoutPacket = "mock_timeout_packet"

	AttributeKeySequence = "sequence"
)

// NewMockRecvPacketEvent returns a mock receive packet event
func NewMockRecvPacketEvent(sequence uint64) sdk.Event {
	return sdk.NewEvent(EventTypeRecvPacket, sdk.NewAttribute(AttributeKeySequence, fmt.Sprintf("%d", sequence)))
}

// NewMockAckPacketEvent returns a mock acknowledgement packet event
func NewMockAckPacketEvent(sequence uint64) sdk.Event {
	return sdk.NewEvent(EventTypeAckPacket, sdk.NewAttribute(AttributeKeySequence, fmt.Sprintf("%d", sequence)))
}

// NewMockTimeoutPacketEvent returns a mock timeout packet event
func NewMockTimeoutPacketEvent(sequence uint64) sdk.Event {
	return sdk.NewEvent(EventTypeTimeoutPacket, sdk.NewAttribute(AttributeKeySequence, fmt.Sprintf("%d", sequence)))
}

func receivedKey(packet channeltypes.Packet) []byte {
	return []byte(fmt.Sprintf("received/%s/%s/%d", packet.DestinationPort, packet.DestinationChannel, packet.Sequence))
}

func settledKey(packet channeltypes.Packet) []byte {
	return []byte(fmt.Sprintf("settled/%s/%s/%d", packet.SourcePort, packet.SourceChannel, packet.Sequence))
}
