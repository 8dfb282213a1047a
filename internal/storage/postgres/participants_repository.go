package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/jackc/pgx/v5"
)

var _ participants.Repository = (*ParticipantRepository)(nil)

const participantColumns = `id, name, email, event_id, created_at, updated_at`

func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID string) ([]participants.Participant, error) {
	return listParticipantsByEvent(ctx, r.queryer(), eventID)
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*participants.Participant, error) {
	q := r.queryer()

	var participant participants.Participant
	err := q.QueryRow(ctx, `
SELECT `+participantColumns+`
  FROM participants
 WHERE id = $1
`, id).Scan(
		&participant.ID,
		&participant.Name,
		&participant.Email,
		&participant.EventID,
		&participant.CreatedAt,
		&participant.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, participants.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return &participant, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, params participants.CreateParams) (*participants.Participant, error) {
	q := r.queryer()

	var participant participants.Participant
	err := q.QueryRow(ctx, `
INSERT INTO participants (id, name, email, event_id)
VALUES ($1, $2, $3, $4)
RETURNING `+participantColumns+`
`, params.ID, params.Name, params.Email, params.EventID).Scan(
		&participant.ID,
		&participant.Name,
		&participant.Email,
		&participant.EventID,
		&participant.CreatedAt,
		&participant.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return &participant, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, id string, params participants.UpdateParams) (*participants.Participant, error) {
	q := r.queryer()

	var participant participants.Participant
	err := q.QueryRow(ctx, `
UPDATE participants
   SET name = COALESCE($2::text, name),
       email = COALESCE($3::text, email),
       event_id = COALESCE($4::text, event_id),
       updated_at = now()
 WHERE id = $1
RETURNING `+participantColumns+`
`, id, params.Name, params.Email, params.EventID).Scan(
		&participant.ID,
		&participant.Name,
		&participant.Email,
		&participant.EventID,
		&participant.CreatedAt,
		&participant.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, participants.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update participant: %w", err)
	}
	return &participant, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	q := r.queryer()

	tag, err := q.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return participants.ErrNotFound
	}
	return nil
}

func (r *ParticipantRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	q := r.queryer()

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event exists: %w", err)
	}
	return exists, nil
}

// WithTx binds the repository to a single transaction for the duration
// of fn, so the existence checks and the following write are atomic.
func (r *ParticipantRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo participants.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &ParticipantRepository{db: r.db, tx: tx}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func listParticipantsByEvent(ctx context.Context, q queryer, eventID string) ([]participants.Participant, error) {
	rows, err := q.Query(ctx, `
SELECT `+participantColumns+`
  FROM participants
 WHERE event_id = $1
 ORDER BY created_at ASC, id ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	items := make([]participants.Participant, 0)
	for rows.Next() {
		var participant participants.Participant
		if err := rows.Scan(
			&participant.ID,
			&participant.Name,
			&participant.Email,
			&participant.EventID,
			&participant.CreatedAt,
			&participant.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		items = append(items, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return items, nil
}
