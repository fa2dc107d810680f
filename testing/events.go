package ibctesting

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
)

// ParseClientIDFromEvents parses events emitted from a MsgCreateClient and returns the
// client identifier.
func ParseClientIDFromEvents(events sdk.Events) (string, error) {
	for _, ev := range events {
		if ev.Type == clienttypes.EventTypeCreateClient {
			if attribute, found := attributeValue(ev, clienttypes.AttributeKeyClientID); found {
				return attribute, nil
			}
		}
	}
	return "", fmt.Errorf("client identifier event attribute not found")
}

// ParseConnectionIDFromEvents parses events emitted from a MsgConnectionOpenInit or
// MsgConnectionOpenTry and returns the connection identifier.
func ParseConnectionIDFromEvents(events sdk.Events) (string, error) {
	for _, ev := range events {
		if ev.Type == connectiontypes.EventTypeConnectionOpenInit ||
			ev.Type == connectiontypes.EventTypeConnectionOpenTry {
			if attribute, found := attributeValue(ev, connectiontypes.AttributeKeyConnectionID); found {
				return attribute, nil
			}
		}
	}
	return "", fmt.Errorf("connection identifier event attribute not found")
}

// ParseChannelIDFromEvents parses events emitted from a MsgChannelOpenInit or
// MsgChannelOpenTry and returns the channel identifier.
func ParseChannelIDFromEvents(events sdk.Events) (string, error) {
	for _, ev := range events {
		if ev.Type == channeltypes.EventTypeChannelOpenInit || ev.Type == channeltypes.EventTypeChannelOpenTry {
			if attribute, found := attributeValue(ev, channeltypes.AttributeKeyChannelID); found {
				return attribute, nil
			}
		}
	}
	return "", fmt.Errorf("channel identifier event attribute not found")
}

// ParsePacketFromEvents parses events emitted from a send packet and returns
// the first packet found.
func ParsePacketFromEvents(events sdk.Events) (channeltypes.Packet, error) {
	packets, err := ParsePacketsFromEvents(channeltypes.EventTypeSendPacket, events)
	if err != nil {
		return channeltypes.Packet{}, err
	}
	return packets[0], nil
}

// ParsePacketsFromEvents parses events of the given packet event type and
// returns every packet found.
func ParsePacketsFromEvents(eventType string, events sdk.Events) ([]channeltypes.Packet, error) {
	var packets []channeltypes.Packet
	for _, ev := range events {
		if ev.Type != eventType {
			continue
		}

		var packet channeltypes.Packet
		for _, attr := range ev.Attributes {
			value := string(attr.Value)
			switch string(attr.Key) {
			case channeltypes.AttributeKeyDataHex:
				data, err := hex.DecodeString(value)
				if err != nil {
					return nil, err
				}
				packet.Data = data

			case channeltypes.AttributeKeySequence:
				seq, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return nil, err
				}
				packet.Sequence = seq

			case channeltypes.AttributeKeySrcPort:
				packet.SourcePort = value

			case channeltypes.AttributeKeySrcChannel:
				packet.SourceChannel = value

			case channeltypes.AttributeKeyDstPort:
				packet.DestinationPort = value

			case channeltypes.AttributeKeyDstChannel:
				packet.DestinationChannel = value

			case channeltypes.AttributeKeyTimeoutHeight:
				height, err := clienttypes.ParseHeight(value)
				if err != nil {
					return nil, err
				}
				packet.TimeoutHeight = height

			case channeltypes.AttributeKeyTimeoutTimestamp:
				timestamp, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return nil, err
				}
				packet.TimeoutTimestamp = timestamp
			}
		}

		packets = append(packets, packet)
	}

	if len(packets) == 0 {
		return nil, fmt.Errorf("%s event not found", eventType)
	}
	return packets, nil
}

// ParseAckFromEvents parses events emitted from a MsgRecvPacket and returns the
// acknowledgement.
func ParseAckFromEvents(events sdk.Events) ([]byte, error) {
	for _, ev := range events {
		if ev.Type == channeltypes.EventTypeWriteAck {
			if attribute, found := attributeValue(ev, channeltypes.AttributeKeyAckHex); found {
				return hex.DecodeString(attribute)
			}
		}
	}
	return nil, fmt.Errorf("acknowledgement event attribute not found")
}

// AssertEventsContain requires every expected event type to appear in events
// with at least the given attributes.
func AssertEventsContain(t require.TestingT, expected map[string]map[string]string, events sdk.Events) {
	for eventType, attributes := range expected {
		matched := false
		for _, ev := range events {
			if ev.Type != eventType {
				continue
			}

			matched = true
			for key, value := range attributes {
				actual, found := attributeValue(ev, key)
				if !found || actual != value {
					matched = false
					break
				}
			}
			if matched {
				break
			}
		}
		require.True(t, matched, "event %s with attributes %v not found", eventType, attributes)
	}
}

func attributeValue(event sdk.Event, key string) (string, bool) {
	for _, attr := range event.Attributes {
		if string(attr.Key) == key {
			return string(attr.Value), true
		}
	}
	return "", false
}
