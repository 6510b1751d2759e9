package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

func TestRoomCreateDuplicateNumber(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec("INSERT INTO rooms").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "rooms_number_key"})

	err := repo.Create(context.Background(), &models.Room{
		Number: "A-101",
		Type:   models.RoomSingle,
		Block:  models.BlockA,
		Status: models.RoomAvailable,
	})
	assert.ErrorIs(t, err, appErrors.ErrRoomNumberExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateOccupantTaken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec("UPDATE rooms SET").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rooms_occupant"})

	occupant := "u1"
	err := repo.Update(context.Background(), &models.Room{
		ID:         "r1",
		Number:     "A-101",
		Type:       models.RoomSingle,
		Block:      models.BlockA,
		OccupantID: &occupant,
		Status:     models.RoomOccupied,
	})
	assert.ErrorIs(t, err, appErrors.ErrUserHasRoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomFindByOccupant(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	now := time.Now()
	occupant := "u1"
	rows := sqlmock.NewRows([]string{"id", "number", "room_type", "hostel_block", "occupant_id", "status", "created_at", "updated_at"}).
		AddRow("r1", "A-101", string(models.RoomSingle), string(models.BlockA), occupant, string(models.RoomOccupied), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, number, room_type, hostel_block, occupant_id, status, created_at, updated_at FROM rooms WHERE occupant_id = $1 LIMIT 1")).
		WithArgs("u1").
		WillReturnRows(rows)

	room, err := repo.FindByOccupant(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "A-101", room.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomDeleteAvailable(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1 AND status = 'available'")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteAvailable(context.Background(), "r1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomDeleteAvailableOccupied(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1 AND status = 'available'")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteAvailable(context.Background(), "r1")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomOccupancyCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS total, COUNT(occupant_id) AS occupied FROM rooms")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "occupied"}).AddRow(10, 4))

	total, occupied, err := repo.OccupancyCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 4, occupied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
