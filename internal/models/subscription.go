// ABOUTME: Subscription model binding a saved RSSHub route to optional default query parameters
// ABOUTME: Persisted as a JSON array in the subscription store file

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a saved route plus the query parameters to apply on every
// fetch. Params values are stored as strings; callers coerce richer types
// before subscribing.
type Subscription struct {
	ID        string            `json:"id"`
	Route     string            `json:"route"`
	Name      string            `json:"name,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewSubscription creates a Subscription with a generated ID and timestamp.
func NewSubscription(route, name string, params map[string]string) Subscription {
	sub := Subscription{
		ID:        uuid.New().String(),
		Route:     route,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if len(params) > 0 {
		sub.Params = params
	}
	return sub
}
