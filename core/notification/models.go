package notification

import "time"

// Notification types.
const (
	TypeInfo    = "INFO"
	TypeSuccess = "SUCCESS"
	TypeWarning = "WARNING"
)

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}
