package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type roomRequestRepository interface {
	FindByID(ctx context.Context, id string) (*models.RoomRequest, error)
	Create(ctx context.Context, req *models.RoomRequest) error
	ListByRequester(ctx context.Context, requesterID string) ([]models.RoomRequest, error)
	ListPending(ctx context.Context) ([]models.PendingRequest, error)
	Reject(ctx context.Context, id string) (bool, error)
	Approve(ctx context.Context, requestID, requesterID, roomID string) error
}

type requestRoomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindByOccupant(ctx context.Context, userID string) (*models.Room, error)
}

type requestAuditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RoomRequestService drives the request workflow from submission to the
// admin decision.
type RoomRequestService struct {
	repo   roomRequestRepository
	rooms  requestRoomRepository
	audit  requestAuditRepository
	logger *zap.Logger
}

// NewRoomRequestService constructs a RoomRequestService instance.
func NewRoomRequestService(repo roomRequestRepository, rooms requestRoomRepository, audit requestAuditRepository, logger *zap.Logger) *RoomRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomRequestService{repo: repo, rooms: rooms, audit: audit, logger: logger}
}

// Submit opens a pending request for the caller. Residents who already hold
// a room or an open request are turned away.
func (s *RoomRequestService) Submit(ctx context.Context, requesterID string) (*models.RoomRequest, error) {
	if _, err := s.rooms.FindByOccupant(ctx, requesterID); err == nil {
		return nil, appErrors.ErrAlreadyHasRoom
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room assignment")
	}

	req := &models.RoomRequest{RequesterID: requesterID}
	if err := s.repo.Create(ctx, req); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit request")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &requesterID,
		Action:     models.AuditActionRequestSubmit,
		Resource:   "room_request",
		ResourceID: &req.ID,
	}); err != nil {
		s.logger.Warn("failed to record request submit audit log", zap.Error(err))
	}

	return req, nil
}

// ListMine returns the caller's own requests, newest first.
func (s *RoomRequestService) ListMine(ctx context.Context, requesterID string) ([]models.RoomRequest, error) {
	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return requests, nil
}

// ListPending returns the admin review queue, oldest first, with invalid
// requests flagged.
func (s *RoomRequestService) ListPending(ctx context.Context) ([]models.PendingRequest, error) {
	requests, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending requests")
	}
	return requests, nil
}

// Approve assigns the chosen room to the requester and finalises the
// request atomically. When two approvals race for one room, exactly one
// succeeds and the other observes a conflict with no partial effect.
func (s *RoomRequestService) Approve(ctx context.Context, actorID, requestID, roomID string) error {
	req, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	if req.Status != models.RequestPending {
		return appErrors.Clone(appErrors.ErrConflict, "request is no longer pending")
	}

	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	if err := s.repo.Approve(ctx, requestID, req.RequesterID, roomID); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve request")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRequestApprove,
		Resource:   "room_request",
		ResourceID: &requestID,
	}); err != nil {
		s.logger.Warn("failed to record request approve audit log", zap.Error(err))
	}

	return nil
}

// Reject moves a pending request into the terminal rejected state. It is
// also the only action allowed on an invalid request.
func (s *RoomRequestService) Reject(ctx context.Context, actorID, requestID string) error {
	rejected, err := s.repo.Reject(ctx, requestID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject request")
	}
	if !rejected {
		if _, err := s.repo.FindByID(ctx, requestID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "request not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
		}
		return appErrors.Clone(appErrors.ErrConflict, "request is no longer pending")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionRequestReject,
		Resource:   "room_request",
		ResourceID: &requestID,
	}); err != nil {
		s.logger.Warn("failed to record request reject audit log", zap.Error(err))
	}

	return nil
}
