package host

import "fmt"

// ICS05
// The following paths are the keys to the store as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-005-port-allocation#store-paths

// PortPath defines the path under which ports paths are stored on the capability module
func PortPath(portID string) string {
	return fmt.Sprintf("%s/%s", KeyPortPrefix, portID)
}

// PortCapabilityKey returns the store key of the owner bound to a port.
func PortCapabilityKey(portID string) []byte {
	return []byte(fmt.Sprintf("%s/%s", KeyCapabilityPrefix, PortPath(portID)))
}

// ChannelCapabilityKey returns the store key of the owner bound to a channel.
func ChannelCapabilityKey(portID, channelID string) []byte {
	return []byte(ChannelCapabilityPath(portID, channelID))
}
