package validate

import (
	host "github.com/multiversx/mx-ibc-go/modules/core/24-host"
)

// PortAndChannel validates that the portID and channelID of a request are valid identifiers.
func PortAndChannel(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return err
	}

	return host.ChannelIdentifierValidator(channelID)
}
