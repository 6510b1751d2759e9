package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type roomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindByOccupant(ctx context.Context, userID string) (*models.Room, error)
	List(ctx context.Context) ([]models.RoomDetail, error)
	ListAvailable(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Unassign(ctx context.Context, id string) error
	DeleteAvailable(ctx context.Context, id string) (bool, error)
}

type roomUserRepository interface {
	FindByCustomID(ctx context.Context, customID string) (*models.User, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RoomService provides room ledger use cases.
type RoomService struct {
	repo      roomRepository
	users     roomUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService instance.
func NewRoomService(repo roomRepository, users roomUserRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RoomService{repo: repo, users: users, validator: validate, logger: logger}
}

// resolveOccupant maps a custom id to the internal user id. The unknown id
// case is an explicit error.
func (s *RoomService) resolveOccupant(ctx context.Context, customID string) (*string, error) {
	if customID == "" {
		return nil, nil
	}
	user, err := s.users.FindByCustomID(ctx, customID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnknownUser
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve occupant")
	}
	return &user.ID, nil
}

// Create adds a room to the ledger, optionally with an initial occupant.
// Status is derived from occupant presence, never taken from the caller.
func (s *RoomService) Create(ctx context.Context, actorID string, req models.RoomCreateRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	occupantID, err := s.resolveOccupant(ctx, req.OccupantCustomID)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:     req.Number,
		Type:       req.Type,
		Block:      req.Block,
		OccupantID: occupantID,
		Status:     models.RoomAvailable,
	}
	if occupantID != nil {
		room.Status = models.RoomOccupied
	}

	if err := s.repo.Create(ctx, room); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRoomCreate,
		Resource:   "room",
		ResourceID: &room.ID,
		NewValues:  []byte(fmt.Sprintf(`{"number":%q}`, room.Number)),
	}); err != nil {
		s.logger.Warn("failed to record room create audit log", zap.Error(err))
	}

	return room, nil
}

// Update replaces a room's number, type, block and occupant. Keeping the
// current occupant does not trip the one-room-per-user rule because the
// assignment stays on the same row.
func (s *RoomService) Update(ctx context.Context, actorID, roomID string, req models.RoomUpdateRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	occupantID, err := s.resolveOccupant(ctx, req.OccupantCustomID)
	if err != nil {
		return nil, err
	}

	room.Number = req.Number
	room.Type = req.Type
	room.Block = req.Block
	room.OccupantID = occupantID
	room.Status = models.RoomAvailable
	if occupantID != nil {
		room.Status = models.RoomOccupied
	}

	if err := s.repo.Update(ctx, room); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRoomUpdate,
		Resource:   "room",
		ResourceID: &room.ID,
		NewValues:  []byte(fmt.Sprintf(`{"number":%q}`, room.Number)),
	}); err != nil {
		s.logger.Warn("failed to record room update audit log", zap.Error(err))
	}

	return room, nil
}

// Unassign clears the room's occupant. Unassigning an already vacant room
// succeeds without effect.
func (s *RoomService) Unassign(ctx context.Context, actorID, roomID string) error {
	if _, err := s.repo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	if err := s.repo.Unassign(ctx, roomID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unassign room")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRoomUnassign,
		Resource:   "room",
		ResourceID: &roomID,
	}); err != nil {
		s.logger.Warn("failed to record room unassign audit log", zap.Error(err))
	}

	return nil
}

// Delete removes a vacant room. Occupied rooms must be unassigned first.
func (s *RoomService) Delete(ctx context.Context, actorID, roomID string) error {
	deleted, err := s.repo.DeleteAvailable(ctx, roomID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	if !deleted {
		if _, err := s.repo.FindByID(ctx, roomID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "room not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
		}
		return appErrors.ErrRoomOccupied
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRoomDelete,
		Resource:   "room",
		ResourceID: &roomID,
	}); err != nil {
		s.logger.Warn("failed to record room delete audit log", zap.Error(err))
	}

	return nil
}

// List returns every room with occupant identity for the admin ledger.
func (s *RoomService) List(ctx context.Context) ([]models.RoomDetail, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// ListAvailable returns vacant rooms for residents browsing before a request.
func (s *RoomService) ListAvailable(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available rooms")
	}
	return rooms, nil
}
