package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherkit/server/internal/domain/participants"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var participantRowColumns = []string{"id", "name", "email", "event_id", "created_at", "updated_at"}

func newParticipantRepo(t *testing.T) (*ParticipantRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &ParticipantRepository{db: mock}, mock
}

func TestParticipantRepositoryListByEvent(t *testing.T) {
	repo, mock := newParticipantRepo(t)
	now := time.Now().Truncate(time.Second)

	rows := pgxmock.NewRows(participantRowColumns).
		AddRow(testParticipantID, "Ada", "ada@example.org", testEventID, now, now)
	mock.ExpectQuery("SELECT id, name, email, event_id").
		WithArgs(testEventID).
		WillReturnRows(rows)

	items, err := repo.ListByEvent(context.Background(), testEventID)

	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Ada", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newParticipantRepo(t)

	mock.ExpectQuery("SELECT id, name, email, event_id").
		WithArgs(testParticipantID).
		WillReturnRows(pgxmock.NewRows(participantRowColumns))

	_, err := repo.GetByID(context.Background(), testParticipantID)

	require.ErrorIs(t, err, participants.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryEventExists(t *testing.T) {
	repo, mock := newParticipantRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(testEventID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EventExists(context.Background(), testEventID)

	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryWithTxCommits(t *testing.T) {
	repo, mock := newParticipantRepo(t)
	now := time.Now().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(testEventID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO participants").
		WithArgs(testParticipantID, "Ada", "ada@example.org", testEventID).
		WillReturnRows(pgxmock.NewRows(participantRowColumns).
			AddRow(testParticipantID, "Ada", "ada@example.org", testEventID, now, now))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(ctx context.Context, txRepo participants.Repository) error {
		exists, err := txRepo.EventExists(ctx, testEventID)
		require.NoError(t, err)
		require.True(t, exists)

		_, err = txRepo.Create(ctx, participants.CreateParams{
			ID:      testParticipantID,
			Name:    "Ada",
			Email:   "ada@example.org",
			EventID: testEventID,
		})
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryWithTxRollsBackOnError(t *testing.T) {
	repo, mock := newParticipantRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(testEventID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.WithTx(context.Background(), func(ctx context.Context, txRepo participants.Repository) error {
		exists, err := txRepo.EventExists(ctx, testEventID)
		if err != nil {
			return err
		}
		if !exists {
			return participants.ErrEventNotFound
		}
		return errors.New("unreachable")
	})

	require.ErrorIs(t, err, participants.ErrEventNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newParticipantRepo(t)

	mock.ExpectQuery("UPDATE participants").
		WithArgs(testParticipantID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(participantRowColumns))

	_, err := repo.Update(context.Background(), testParticipantID, participants.UpdateParams{})

	require.ErrorIs(t, err, participants.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newParticipantRepo(t)

	mock.ExpectExec("DELETE FROM participants").
		WithArgs(testParticipantID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), testParticipantID)

	require.ErrorIs(t, err, participants.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
