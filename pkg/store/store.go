// Package store persists saved wheels so the server can hand out stable
// links to a rendered year. Two backends: MongoDB for deployments and an
// in-memory map for tests and single-process use.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/komapc/yearwheel/pkg/errors"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// Wheel is a saved layout with identity and bookkeeping.
type Wheel struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Layout    wheel.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// WheelStore persists saved wheels.
type WheelStore interface {
	// Save stores a layout and returns the new wheel's id.
	Save(ctx context.Context, name string, l wheel.Layout) (string, error)
	// Get retrieves a saved wheel by id.
	Get(ctx context.Context, id string) (Wheel, error)
	// List returns saved wheels newest first, up to limit (0 means all).
	List(ctx context.Context, limit int) ([]Wheel, error)
	// Delete removes a saved wheel. Deleting a missing id is an error.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID returns a fresh wheel id.
func NewID() string { return uuid.NewString() }

// notFound builds the standard missing-wheel error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeWheelNotFound, "wheel %s not found", id)
}
