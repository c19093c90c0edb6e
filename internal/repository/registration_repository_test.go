package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakriti/events-backend/internal/model"
)

func newMockRegRepo(t *testing.T) (*RegistrationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRegistrationRepo(db), mock
}

func mockRegRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"event_registration_id", "user_id", "event_name", "season",
		"artwork_count", "registration_status", "created_dt", "updated_dt",
	})
	for _, id := range ids {
		rows.AddRow(id, "USER1234567", "Painting Contest", "2026", 1, "pending", time.Now().UTC(), nil)
	}
	return rows
}

func TestRegistrationCreate(t *testing.T) {
	repo, mock := newMockRegRepo(t)

	mock.ExpectExec(`INSERT INTO event_registrations (event_registration_id, user_id, event_name, season, artwork_count, registration_status) VALUES (?,?,?,?,?,?)`).
		WithArgs(sqlmock.AnyArg(), "USER1234567", "Painting Contest", "2026", 1, model.RegistrationPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT event_registration_id, user_id, event_name, season, artwork_count, registration_status, created_dt, updated_dt FROM event_registrations WHERE event_registration_id=? LIMIT 1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(mockRegRows("REG1234567"))

	reg, err := repo.Create(context.Background(), "USER1234567", "Painting Contest", "2026", 1, model.RegistrationPending)
	require.NoError(t, err)
	assert.Equal(t, "REG1234567", reg.EventRegistrationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationListBuildsFilter(t *testing.T) {
	repo, mock := newMockRegRepo(t)

	mock.ExpectQuery(`SELECT event_registration_id, user_id, event_name, season, artwork_count, registration_status, created_dt, updated_dt FROM event_registrations WHERE 1=1 AND user_id=? AND season LIKE ? ORDER BY created_dt DESC`).
		WithArgs("USER1234567", "%2026%").
		WillReturnRows(mockRegRows("REG1", "REG2"))

	regs, err := repo.List(context.Background(), RegistrationFilter{UserID: "USER1234567", Season: "2026"})
	require.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationDeleteNotFound(t *testing.T) {
	repo, mock := newMockRegRepo(t)

	mock.ExpectExec(`DELETE FROM event_registrations WHERE event_registration_id=?`).
		WithArgs("REG0000000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "REG0000000"), ErrNotFound)
}
