package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{conn: conn}, mock
}

func TestUpsertGame(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO game_info .* ON CONFLICT \(id\)`).
		WithArgs("g1", "Catan", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := db.UpsertGame(context.Background(), GameRow{ID: "g1", Title: "Catan"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSchedule_MembersDefaultEmptyArray(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO schedules .* ON CONFLICT \(id\)`).
		WithArgs("s1", "real", nil, "pending", nil, nil, nil, nil, nil,
			"[]", nil, nil, nil, false, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := db.UpsertSchedule(context.Background(), ScheduleRow{
		ID:          "s1",
		ContentType: "real",
		Status:      "pending",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSession_ConflictOnScheduleID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO scenario_sessions .* ON CONFLICT \(schedule_id\)`).
		WithArgs("s1", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := db.UpsertSession(context.Background(), SessionRow{ID: "s1", ScheduleID: "s1"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectIDs(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM game_info`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	ids, err := db.GameIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestDeleteByIDs_Placeholders(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM days_status WHERE id IN ($1, $2)`)).
		WithArgs("x", "y").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := db.DeleteDaysByIDs(context.Background(), []string{"x", "y"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs_EmptyNoQuery(t *testing.T) {
	db, mock := newMockDB(t)

	err := db.DeleteSchedulesByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScenarioScheduleIDs(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM schedules WHERE content_type = 'scenario'`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))

	ids, err := db.ScenarioScheduleIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}
