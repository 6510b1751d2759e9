package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type maintenanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.MaintenanceTicket, error)
	Create(ctx context.Context, ticket *models.MaintenanceTicket) error
	ListAll(ctx context.Context) ([]models.MaintenanceDetail, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.MaintenanceDetail, error)
	UpdateStatus(ctx context.Context, id string, status models.MaintenanceStatus, assignedStaffID *string) error
	Delete(ctx context.Context, id string) error
}

type maintenanceUserRepository interface {
	FindByCustomID(ctx context.Context, customID string) (*models.User, error)
}

// MaintenanceService drives the repair ticket lifecycle.
type MaintenanceService struct {
	repo      maintenanceRepository
	users     maintenanceUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaintenanceService constructs a MaintenanceService instance.
func NewMaintenanceService(repo maintenanceRepository, users maintenanceUserRepository, validate *validator.Validate, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MaintenanceService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create opens a ticket for the caller. New tickets always start pending.
func (s *MaintenanceService) Create(ctx context.Context, requesterID string, req models.MaintenanceCreateRequest) (*models.MaintenanceTicket, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ticket payload")
	}

	ticket := &models.MaintenanceTicket{
		RequesterID: requesterID,
		Description: req.Description,
		Status:      models.MaintenancePending,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create ticket")
	}
	return ticket, nil
}

// List returns tickets scoped by role: students see their own, staff and
// admin see everything.
func (s *MaintenanceService) List(ctx context.Context, callerID string, role models.UserRole) ([]models.MaintenanceDetail, error) {
	var (
		tickets []models.MaintenanceDetail
		err     error
	)
	if role == models.RoleStudent {
		tickets, err = s.repo.ListByRequester(ctx, callerID)
	} else {
		tickets, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tickets")
	}
	return tickets, nil
}

// UpdateStatus moves a ticket to a new state and optionally assigns a staff
// member by their short id. Any transition between known states is legal.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, ticketID string, req models.MaintenanceStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !models.ValidMaintenanceStatus(req.Status) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown ticket status")
	}

	var staffID *string
	if req.AssignedStaffCustomID != "" {
		staff, err := s.users.FindByCustomID(ctx, req.AssignedStaffCustomID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.ErrUnknownUser
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve staff member")
		}
		staffID = &staff.ID
	}

	if err := s.repo.UpdateStatus(ctx, ticketID, req.Status, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update ticket")
	}
	return nil
}

// Delete removes a ticket in any state.
func (s *MaintenanceService) Delete(ctx context.Context, ticketID string) error {
	if err := s.repo.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete ticket")
	}
	return nil
}
