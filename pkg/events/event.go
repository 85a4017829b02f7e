package events

import "time"

// Event types emitted by the query pipeline.
const (
	TypeQueryProcessed   = "QUERY_PROCESSED"
	TypeSessionCleared   = "SESSION_CLEARED"
	TypeRosterRefreshed  = "ROSTER_REFRESHED"
	TypeEmployeeIngested = "EMPLOYEE_INGESTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "QUERY_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation used across the
// pipeline.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewQueryProcessed builds the audit event recorded after every chat
// turn.
func NewQueryProcessed(sessionId, intent, theme string, employees int, durationMs int64) BaseEvent {
	return BaseEvent{
		Type: TypeQueryProcessed,
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"intent":      intent,
			"theme":       theme,
			"employees":   employees,
			"duration_ms": durationMs,
		},
		OccurredAt: time.Now(),
	}
}
