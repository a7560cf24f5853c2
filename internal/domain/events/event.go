package events

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard event types
const (
	EventTypeTaskUpdate    = "task_update"
	EventTypeAwardEarned   = "award_earned"
	EventTypeStreakUpdate  = "streak_update"
	EventTypePresetUpdate  = "preset_update"
	EventTypeSessionUpdate = "session_update"
)

// DashboardEvent represents a dashboard-related event
type DashboardEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	EntityID  string      `json:"entity_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}
