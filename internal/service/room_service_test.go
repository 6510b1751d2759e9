package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type mockRoomRepo struct {
	rooms      map[string]*models.Room
	byOccupant map[string]*models.Room
	createErr  error
	updateErr  error
	deleted    bool
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

func (m *mockRoomRepo) FindByOccupant(ctx context.Context, userID string) (*models.Room, error) {
	room, ok := m.byOccupant[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

func (m *mockRoomRepo) List(ctx context.Context) ([]models.RoomDetail, error) {
	return nil, nil
}

func (m *mockRoomRepo) ListAvailable(ctx context.Context) ([]models.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.createErr != nil {
		return m.createErr
	}
	room.ID = "r-new"
	if m.rooms == nil {
		m.rooms = make(map[string]*models.Room)
	}
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *models.Room) error {
	return m.updateErr
}

func (m *mockRoomRepo) Unassign(ctx context.Context, id string) error {
	return nil
}

func (m *mockRoomRepo) DeleteAvailable(ctx context.Context, id string) (bool, error) {
	room, ok := m.rooms[id]
	if !ok || room.Status != models.RoomAvailable {
		return false, nil
	}
	m.deleted = true
	return true, nil
}

type mockRoomUsers struct {
	byCustomID map[string]*models.User
	auditLogs  []*models.AuditLog
}

func (m *mockRoomUsers) FindByCustomID(ctx context.Context, customID string) (*models.User, error) {
	user, ok := m.byCustomID[customID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockRoomUsers) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newRoomService(repo *mockRoomRepo, users *mockRoomUsers) *RoomService {
	return NewRoomService(repo, users, validator.New(), zap.NewNop())
}

func TestRoomServiceCreateVacant(t *testing.T) {
	repo := &mockRoomRepo{}
	users := &mockRoomUsers{}
	svc := newRoomService(repo, users)

	room, err := svc.Create(context.Background(), "admin", models.RoomCreateRequest{
		Number: "A-101",
		Type:   models.RoomSingle,
		Block:  models.BlockA,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Nil(t, room.OccupantID)
	assert.NotEmpty(t, users.auditLogs)
}

func TestRoomServiceCreateWithOccupant(t *testing.T) {
	repo := &mockRoomRepo{}
	users := &mockRoomUsers{byCustomID: map[string]*models.User{
		"aB3xY9": {ID: "u1", CustomID: "aB3xY9", Role: models.RoleStudent},
	}}
	svc := newRoomService(repo, users)

	room, err := svc.Create(context.Background(), "admin", models.RoomCreateRequest{
		Number:           "A-102",
		Type:             models.RoomDouble,
		Block:            models.BlockB,
		OccupantCustomID: "aB3xY9",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, room.Status)
	require.NotNil(t, room.OccupantID)
	assert.Equal(t, "u1", *room.OccupantID)
}

func TestRoomServiceCreateUnknownOccupant(t *testing.T) {
	repo := &mockRoomRepo{}
	users := &mockRoomUsers{}
	svc := newRoomService(repo, users)

	_, err := svc.Create(context.Background(), "admin", models.RoomCreateRequest{
		Number:           "A-103",
		Type:             models.RoomSingle,
		Block:            models.BlockA,
		OccupantCustomID: "zzzzzz",
	})
	assert.ErrorIs(t, err, appErrors.ErrUnknownUser)
}

func TestRoomServiceCreateConflictPassthrough(t *testing.T) {
	repo := &mockRoomRepo{createErr: appErrors.ErrRoomNumberExists}
	users := &mockRoomUsers{}
	svc := newRoomService(repo, users)

	_, err := svc.Create(context.Background(), "admin", models.RoomCreateRequest{
		Number: "A-101",
		Type:   models.RoomSingle,
		Block:  models.BlockA,
	})
	assert.ErrorIs(t, err, appErrors.ErrRoomNumberExists)
}

func TestRoomServiceDeleteOccupied(t *testing.T) {
	occupant := "u1"
	repo := &mockRoomRepo{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Number: "A-101", OccupantID: &occupant, Status: models.RoomOccupied},
	}}
	svc := newRoomService(repo, &mockRoomUsers{})

	err := svc.Delete(context.Background(), "admin", "r1")
	assert.ErrorIs(t, err, appErrors.ErrRoomOccupied)
	assert.False(t, repo.deleted)
}

func TestRoomServiceDeleteMissing(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := newRoomService(repo, &mockRoomUsers{})

	err := svc.Delete(context.Background(), "admin", "ghost")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRoomServiceDeleteVacant(t *testing.T) {
	repo := &mockRoomRepo{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Number: "A-101", Status: models.RoomAvailable},
	}}
	svc := newRoomService(repo, &mockRoomUsers{})

	require.NoError(t, svc.Delete(context.Background(), "admin", "r1"))
	assert.True(t, repo.deleted)
}
