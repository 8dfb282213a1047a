package participants

import (
	"context"
	"fmt"

	"github.com/gatherkit/server/internal/domain/ids"
)

// Service implements participant operations. Writes that depend on the
// existence of another row (the participant itself, or the referenced
// event) run check and write inside one transaction, so a failed check
// never leaves a partial write behind.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListByEvent returns the participants of a single event. Callers must
// scope the listing: an unscoped list across all events is never exposed.
func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]Participant, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *Service) Get(ctx context.Context, id string) (*Participant, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a participant after confirming the referenced event
// exists. Returns ErrEventNotFound, with no write, when it does not.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Participant, error) {
	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate participant id: %w", err)
	}
	params.ID = id

	var created *Participant
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		exists, err := repo.EventExists(ctx, params.EventID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEventNotFound
		}
		created, err = repo.Create(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. Two sequential existence checks run
// first, both short-circuiting with no write: the participant must
// exist (ErrNotFound), and when a new eventId is supplied, that event
// must exist (ErrEventNotFound).
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Participant, error) {
	var updated *Participant
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		if params.EventID != nil {
			exists, err := repo.EventExists(ctx, *params.EventID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrEventNotFound
			}
		}
		var err error
		updated, err = repo.Update(ctx, id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a participant, returning ErrNotFound when the id does
// not resolve. A missing row causes no side effect.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
