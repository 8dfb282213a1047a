package participants

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a participant lookup fails.
var ErrNotFound = errors.New("participant not found")

// ErrEventNotFound is returned when a write references an event that
// does not exist. The check runs before any row is written.
var ErrEventNotFound = errors.New("event not found")

// Participant is an attendee record scoped to exactly one event.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	EventID   string    `json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateParams struct {
	ID      string
	Name    string
	Email   string
	EventID string
}

// UpdateParams carries a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Name    *string
	Email   *string
	EventID *string
}

type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]Participant, error)
	GetByID(ctx context.Context, id string) (*Participant, error)
	Create(ctx context.Context, params CreateParams) (*Participant, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Participant, error)
	// Delete removes the participant, returning ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
	// EventExists reports whether the referenced event row exists.
	EventExists(ctx context.Context, eventID string) (bool, error)

	// WithTx runs fn against a repository bound to a single transaction,
	// so existence checks and the following write observe the same state.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
