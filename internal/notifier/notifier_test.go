package notifier

import (
	"testing"
	"time"

	"github.com/viorex/viorex-exchange/internal/models"
)

func TestHub_InfoExpires(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	hub := NewHub(4 * time.Second)
	hub.now = func() time.Time { return current }

	hub.Push("Logging in...", models.SeverityInfo)

	if got := hub.List(); len(got) != 1 || got[0].Message != "Logging in..." {
		t.Fatalf("Expected one live notification, got: %v", got)
	}

	current = current.Add(3 * time.Second)
	if got := hub.List(); len(got) != 1 {
		t.Errorf("Expected notification to still be live before TTL, got: %v", got)
	}

	current = current.Add(2 * time.Second)
	if got := hub.List(); len(got) != 0 {
		t.Errorf("Expected notification to expire after TTL, got: %v", got)
	}
}

func TestHub_ErrorPersists(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	hub := NewHub(4 * time.Second)
	hub.now = func() time.Time { return current }

	pushed := hub.Push("Please enter price and amount", models.SeverityError)

	current = current.Add(time.Hour)
	if got := hub.List(); len(got) != 1 {
		t.Fatalf("Expected error notification to persist, got: %v", got)
	}

	if !hub.Dismiss(pushed.ID) {
		t.Errorf("Expected Dismiss to remove the notification")
	}
	if got := hub.List(); len(got) != 0 {
		t.Errorf("Expected no notifications after dismiss, got: %v", got)
	}
	if hub.Dismiss(pushed.ID) {
		t.Errorf("Expected second Dismiss to report missing notification")
	}
}

func TestHub_PushReplaces(t *testing.T) {
	hub := NewHub(4 * time.Second)

	hub.Push("something went wrong", models.SeverityError)
	replacement := hub.Push("Login successful! Redirecting...", models.SeveritySuccess)

	got := hub.List()
	if len(got) != 1 {
		t.Fatalf("Expected exactly one notification, got: %d", len(got))
	}
	if got[0].ID != replacement.ID || got[0].Severity != models.SeveritySuccess {
		t.Errorf("Expected replacement notification, got: %v", got[0])
	}
}
