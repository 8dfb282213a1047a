package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `e.id, e.name, e.description, e.location, e.date_time, e.created_at, e.updated_at`

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	q := r.queryer()

	rows, err := q.Query(ctx, `
SELECT `+eventColumns+`,
       p.id, p.name, p.email, p.event_id, p.created_at, p.updated_at
  FROM events e
  LEFT JOIN participants p ON p.event_id = e.id
 ORDER BY e.created_at ASC, e.id ASC, p.created_at ASC, p.id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	index := make(map[string]int)
	for rows.Next() {
		event, participant, err := scanEventWithParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan events: %w", err)
		}

		pos, seen := index[event.ID]
		if !seen {
			pos = len(items)
			index[event.ID] = pos
			items = append(items, event)
		}
		if participant != nil {
			items[pos].Participants = append(items[pos].Participants, *participant)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	q := r.queryer()

	rows, err := q.Query(ctx, `
SELECT `+eventColumns+`,
       p.id, p.name, p.email, p.event_id, p.created_at, p.updated_at
  FROM events e
  LEFT JOIN participants p ON p.event_id = e.id
 WHERE e.id = $1
 ORDER BY p.created_at ASC, p.id ASC
`, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	defer rows.Close()

	var event *events.Event
	for rows.Next() {
		scanned, participant, err := scanEventWithParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if event == nil {
			event = &scanned
		}
		if participant != nil {
			event.Participants = append(event.Participants, *participant)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event: %w", err)
	}
	if event == nil {
		return nil, events.ErrNotFound
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	q := r.queryer()

	var event events.Event
	err := q.QueryRow(ctx, `
INSERT INTO events (id, name, description, location, date_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, description, location, date_time, created_at, updated_at
`, params.ID, params.Name, params.Description, params.Location, params.DateTime).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.DateTime,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.Participants = []participants.Participant{}
	return &event, nil
}

// Update overwrites only the supplied text fields; date_time is always
// reset to the time of the update.
func (r *EventRepository) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	q := r.queryer()

	var event events.Event
	err := q.QueryRow(ctx, `
UPDATE events
   SET name = COALESCE($2::text, name),
       description = COALESCE($3::text, description),
       location = COALESCE($4::text, location),
       date_time = now(),
       updated_at = now()
 WHERE id = $1
RETURNING id, name, description, location, date_time, created_at, updated_at
`, id, params.Name, params.Description, params.Location).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.DateTime,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, events.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	attached, err := listParticipantsByEvent(ctx, q, event.ID)
	if err != nil {
		return nil, err
	}
	event.Participants = attached
	return &event, nil
}

// Delete removes the event; the participants FK cascades, so the
// event's participants are removed in the same statement.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	q := r.queryer()

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

// scanEventWithParticipant reads one joined row; the participant side
// is nil when the event has no participants.
func scanEventWithParticipant(rows pgx.Rows) (events.Event, *participants.Participant, error) {
	var (
		event                events.Event
		participantID        *string
		participantName      *string
		participantEmail     *string
		participantEventID   *string
		participantCreatedAt pgtype.Timestamptz
		participantUpdatedAt pgtype.Timestamptz
	)

	if err := rows.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.DateTime,
		&event.CreatedAt,
		&event.UpdatedAt,
		&participantID,
		&participantName,
		&participantEmail,
		&participantEventID,
		&participantCreatedAt,
		&participantUpdatedAt,
	); err != nil {
		return events.Event{}, nil, err
	}

	event.Participants = []participants.Participant{}

	if participantID == nil {
		return event, nil, nil
	}

	participant := participants.Participant{
		ID:      *participantID,
		Name:    derefString(participantName),
		Email:   derefString(participantEmail),
		EventID: derefString(participantEventID),
	}
	if participantCreatedAt.Valid {
		participant.CreatedAt = participantCreatedAt.Time
	}
	if participantUpdatedAt.Valid {
		participant.UpdatedAt = participantUpdatedAt.Time
	}
	return event, &participant, nil
}
