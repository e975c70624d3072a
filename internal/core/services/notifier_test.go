package services

import (
	"testing"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

func TestNotifierSingleActiveToast(t *testing.T) {
	n := NewNotifier()

	n.Success("cust-1", "bot-1", "first")
	n.Error("cust-1", "bot-1", "second")

	active := n.Active("cust-1", "bot-1")
	if active == nil {
		t.Fatal("no active toast")
	}
	if active.Message != "second" || active.Kind != domain.NotificationError {
		t.Errorf("active = %+v, want the replacement toast", active)
	}
}

func TestNotifierExpiry(t *testing.T) {
	n := NewNotifier()
	base := time.Now()
	n.now = func() time.Time { return base }

	n.Success("cust-1", "bot-1", "saved")
	n.Error("cust-1", "bot-2", "failed")

	if n.Active("cust-1", "bot-1") == nil {
		t.Error("success toast expired immediately")
	}

	// Success expires at 3s, error survives until 5s
	n.now = func() time.Time { return base.Add(4 * time.Second) }
	if n.Active("cust-1", "bot-1") != nil {
		t.Error("success toast still active after 4s")
	}
	if n.Active("cust-1", "bot-2") == nil {
		t.Error("error toast expired before 5s")
	}

	n.now = func() time.Time { return base.Add(6 * time.Second) }
	if n.Active("cust-1", "bot-2") != nil {
		t.Error("error toast still active after 6s")
	}
}

func TestNotifierDismiss(t *testing.T) {
	n := NewNotifier()

	n.Success("cust-1", "bot-1", "saved")
	n.Dismiss("cust-1", "bot-1")
	if n.Active("cust-1", "bot-1") != nil {
		t.Error("toast still active after dismiss")
	}
}

func TestNotifierWorkspaceScoping(t *testing.T) {
	n := NewNotifier()

	n.Success("cust-1", "bot-1", "saved")
	if n.Active("cust-1", "bot-2") != nil {
		t.Error("toast leaked into another workspace")
	}
	if n.Active("cust-2", "bot-1") != nil {
		t.Error("toast leaked into another tenant")
	}
}
