/*
This file contains the variables, constants, and default values
used in the testing package and commonly defined in tests.
*/
package ibctesting

import (
	"time"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	mockclient "github.com/multiversx/mx-ibc-go/modules/light-clients/00-mock"
	"github.com/multiversx/mx-ibc-go/simapp"
	"github.com/multiversx/mx-ibc-go/testing/mock"
)

const (
	FirstClientID     = "07-tendermint-0"
	SecondClientID    = "07-tendermint-1"
	FirstConnectionID = "connection-0"
	FirstChannelID    = "channel-0"

	// Default params constants used to create a mock client
	DefaultClientType = exported.Tendermint

	DefaultDelayPeriod uint64 = 0

	DefaultChannelVersion = mock.Version
	InvalidID             = "IDisInvalid"

	// MockPort is the port bound by the mock application on every test chain.
	MockPort = mock.PortID

	// Timeout values relative to the current block of the sending chain.
	DefaultTimeoutHeightDelta    uint64 = 100
	DefaultTimeoutTimestampDelta        = time.Hour
)

var (
	// ConnectionVersion is the default IBC connection version.
	ConnectionVersion = connectiontypes.DefaultIBCVersion

	// MockProof is the proof accepted by mock light clients.
	MockProof = mockclient.ValidProof

	// DisabledTimeoutHeight disables height based timeouts.
	DisabledTimeoutHeight = clienttypes.ZeroHeight()

	MockAcknowledgement      = mock.MockAcknowledgement.Acknowledgement()
	MockFailAcknowledgement  = mock.MockFailAcknowledgement.Acknowledgement()
	MockPacketData           = mock.MockPacketData
	MockFailPacketData       = mock.MockFailPacketData
	MockAsyncPacketData      = mock.MockAsyncPacketData
	MockEmptyAckPacketData   = mock.MockEmptyAckPacketData
	DefaultUnorderedChannel  = channeltypes.UNORDERED
	DefaultCommitmentPrefix  = []byte(simapp.DefaultCommitmentPrefix)
	DefaultExpectedBlockTime = simapp.DefaultExpectedTimePerBlock
)
