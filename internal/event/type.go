package event

import "time"

const NotiQueue = "push_noti_events"

type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityNormal NotificationPriority = "normal"
)

type NotificationType string

const (
	TypeInApp NotificationType = "in_app"
	TypeEmail NotificationType = "email"
)

// NotificationMessage is the envelope consumed by the notification worker.
type NotificationMessage struct {
	ID           string               `json:"id"`
	Type         NotificationType     `json:"type"`
	Priority     NotificationPriority `json:"priority"`
	RecipientID  string               `json:"recipient_id"`
	Payload      map[string]any       `json:"payload"`
	RetryCount   int                  `json:"retry_count"`
	MaxRetries   int                  `json:"max_retries"`
	CreatedAt    time.Time            `json:"created_at"`
	ScheduledFor *time.Time           `json:"scheduled_for"`
}

// ActivityDecisionEvent notifies an activity author that a manager decided on
// their pending submission.
type ActivityDecisionEvent struct {
	ActivityID      string `json:"activity_id"`
	ProjectID       string `json:"project_id"`
	AuthorID        string `json:"author_id"`
	DecidedBy       string `json:"decided_by"`
	Decision        string `json:"decision"` // approved | rejected
	ManagerFeedback string `json:"manager_feedback,omitempty"`
}
