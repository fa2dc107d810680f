// Package metrics holds the label names attached to core IBC telemetry counters.
package metrics

// client counters
const (
	LabelClientType = "client_type"
	LabelClientID   = "client_id"
	LabelUpdateType = "update_type"
)

// packet counters
const (
	LabelSourcePort         = "source_port"
	LabelSourceChannel      = "source_channel"
	LabelDestinationPort    = "destination_port"
	LabelDestinationChannel = "destination_channel"
	// LabelTimeoutType is "height", "timestamp" or "channel-closed".
	LabelTimeoutType = "timeout_type"
)
