package events

import "time"

const (
	PolicyChangedTopic     = "attendance.policy.changed.v1"
	PolicyChangedEventType = "policy_changed"
)

// PolicyChangedEvent asks the consumer to fan a company-wide notice out to
// every employee. EventID doubles as the notification idempotency event.
type PolicyChangedEvent struct {
	EventType        string    `json:"event_type"`
	EventID          string    `json:"event_id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	RequestID        string    `json:"request_id,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
