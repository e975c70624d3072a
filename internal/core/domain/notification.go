package domain

import "time"

// NotificationKind classifies a notification for display policy purposes
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Display durations: success toasts dismiss after 3s, error toasts after 5s.
const (
	SuccessTTL = 3 * time.Second
	ErrorTTL   = 5 * time.Second
)

// Notification is a transient operator-facing message. Every terminal
// outcome of a dispatch or bulk operation produces exactly one.
type Notification struct {
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// NewSuccessNotification creates a success notification with the standard TTL.
func NewSuccessNotification(message string) *Notification {
	now := time.Now()
	return &Notification{
		Message:   message,
		Kind:      NotificationSuccess,
		CreatedAt: now,
		ExpiresAt: now.Add(SuccessTTL),
	}
}

// NewErrorNotification creates an error notification with the standard TTL.
func NewErrorNotification(message string) *Notification {
	now := time.Now()
	return &Notification{
		Message:   message,
		Kind:      NotificationError,
		CreatedAt: now,
		ExpiresAt: now.Add(ErrorTTL),
	}
}

// Active reports whether the notification should still be displayed.
func (n *Notification) Active(now time.Time) bool {
	return now.Before(n.ExpiresAt)
}
