package postgres

import (
	"context"
	"fmt"

	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/gatherkit/server/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. Tests satisfy
// it with a pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ storage.Repository = (*Repository)(nil)

type Repository struct {
	db DB
}

func NewRepository(db DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres repository: db is nil")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{db: r.db}
}

func (r *Repository) Participants() participants.Repository {
	return &ParticipantRepository{db: r.db}
}

// queryer is satisfied by both the pool and an open transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type EventRepository struct {
	db DB
	tx pgx.Tx
}

type ParticipantRepository struct {
	db DB
	tx pgx.Tx
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *ParticipantRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
