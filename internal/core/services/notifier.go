package services

import (
	"sync"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Ensure Notifier implements NotificationService
var _ driving.NotificationService = (*Notifier)(nil)

// Notifier is the unified notification queue. Each workspace has at most
// one active toast; pushing a new one replaces the current one. Expiry is
// evaluated lazily on read (3s for success, 5s for errors) so there are no
// per-call-site timers.
type Notifier struct {
	mu     sync.Mutex
	active map[string]*domain.Notification
	now    func() time.Time
}

// NewNotifier creates a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		active: make(map[string]*domain.Notification),
		now:    time.Now,
	}
}

// Success records a success notification for a workspace.
func (n *Notifier) Success(customerID, botID, message string) *domain.Notification {
	return n.push(customerID, botID, domain.NewSuccessNotification(message))
}

// Error records an error notification for a workspace.
func (n *Notifier) Error(customerID, botID, message string) *domain.Notification {
	return n.push(customerID, botID, domain.NewErrorNotification(message))
}

func (n *Notifier) push(customerID, botID string, notification *domain.Notification) *domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active[workspaceKey(customerID, botID)] = notification
	return notification
}

// Active returns the workspace's current toast, or nil once it has expired
// or been dismissed.
func (n *Notifier) Active(customerID, botID string) *domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := workspaceKey(customerID, botID)
	notification, ok := n.active[key]
	if !ok {
		return nil
	}
	if !notification.Active(n.now()) {
		delete(n.active, key)
		return nil
	}
	return notification
}

// Dismiss removes the workspace's current toast, if any.
func (n *Notifier) Dismiss(customerID, botID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.active, workspaceKey(customerID, botID))
}
