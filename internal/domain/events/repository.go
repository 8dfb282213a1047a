package events

import (
	"context"
	"errors"
	"time"

	"github.com/gatherkit/server/internal/domain/participants"
)

// ErrNotFound is returned when an event lookup fails.
var ErrNotFound = errors.New("event not found")

// Event is the parent schedulable entity that participants register for.
// Participants is the ordered collection owned by the event; deleting an
// event cascades to its participants.
type Event struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Location     string                     `json:"location"`
	DateTime     time.Time                  `json:"dateTime"`
	Participants []participants.Participant `json:"participants"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

type CreateParams struct {
	ID          string
	Name        string
	Description string
	Location    string
	DateTime    time.Time
}

// UpdateParams carries a partial update of the mutable text fields.
// DateTime is intentionally absent: every update stamps date_time with
// the current time, regardless of caller input.
type UpdateParams struct {
	Name        *string
	Description *string
	Location    *string
}

type Repository interface {
	// List returns all events, each with its participants collection.
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	// Update applies params and resets date_time to now; ErrNotFound
	// when the id does not resolve.
	Update(ctx context.Context, id string, params UpdateParams) (*Event, error)
	// Delete removes the event and, via the schema's cascade, its
	// participants. ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
