// ABOUTME: Tests for the Subscription model constructor
// ABOUTME: Verifies ID generation, timestamps, and params handling

package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSubscription(t *testing.T) {
	sub := NewSubscription("/github/issue/golang/go", "Go issues", map[string]string{"limit": "20"})

	if _, err := uuid.Parse(sub.ID); err != nil {
		t.Errorf("ID = %q, want a valid UUID: %v", sub.ID, err)
	}
	if sub.Route != "/github/issue/golang/go" {
		t.Errorf("Route = %q, want route kept verbatim", sub.Route)
	}
	if sub.Name != "Go issues" {
		t.Errorf("Name = %q, want %q", sub.Name, "Go issues")
	}
	if sub.Params["limit"] != "20" {
		t.Errorf("Params = %v, want limit=20", sub.Params)
	}
	if sub.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want a timestamp")
	}
	if sub.CreatedAt.Location() != nil && sub.CreatedAt.Location().String() != "UTC" {
		t.Errorf("CreatedAt location = %v, want UTC", sub.CreatedAt.Location())
	}
}

func TestNewSubscription_EmptyParamsOmitted(t *testing.T) {
	if sub := NewSubscription("/telegram/channel/x", "", nil); sub.Params != nil {
		t.Errorf("Params = %v, want nil for nil input", sub.Params)
	}
	if sub := NewSubscription("/telegram/channel/x", "", map[string]string{}); sub.Params != nil {
		t.Errorf("Params = %v, want nil for empty map", sub.Params)
	}
}

func TestNewSubscription_UniqueIDs(t *testing.T) {
	a := NewSubscription("/zhihu/hot", "", nil)
	b := NewSubscription("/zhihu/hot", "", nil)
	if a.ID == b.ID {
		t.Errorf("two subscriptions share ID %q, want unique IDs", a.ID)
	}
}
