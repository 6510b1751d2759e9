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

type visitorRepository interface {
	FindByID(ctx context.Context, id string) (*models.VisitorRecord, error)
	Create(ctx context.Context, visitor *models.VisitorRecord) error
	ListAll(ctx context.Context) ([]models.VisitorDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.VisitorDetail, error)
	UpdateStatus(ctx context.Context, id string, status models.VisitorStatus) error
	Delete(ctx context.Context, id string) error
}

// VisitorService manages visit registrations and the staff decisions on them.
type VisitorService struct {
	repo      visitorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVisitorService constructs a VisitorService instance.
func NewVisitorService(repo visitorRepository, validate *validator.Validate, logger *zap.Logger) *VisitorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &VisitorService{repo: repo, validator: validate, logger: logger}
}

// Register records an upcoming visit for the calling student. New
// registrations start pending.
func (s *VisitorService) Register(ctx context.Context, studentID string, req models.VisitorCreateRequest) (*models.VisitorRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visitor payload")
	}

	visitor := &models.VisitorRecord{
		RegisteredBy: studentID,
		Name:         req.Name,
		Contact:      req.Contact,
		VisitDate:    req.VisitDate,
		Purpose:      req.Purpose,
		Status:       models.VisitorPending,
	}
	if err := s.repo.Create(ctx, visitor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register visitor")
	}
	return visitor, nil
}

// List returns registrations scoped by role: students see their own, staff
// and admin see everything.
func (s *VisitorService) List(ctx context.Context, callerID string, role models.UserRole) ([]models.VisitorDetail, error) {
	var (
		visitors []models.VisitorDetail
		err      error
	)
	if role == models.RoleStudent {
		visitors, err = s.repo.ListByStudent(ctx, callerID)
	} else {
		visitors, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list visitors")
	}
	return visitors, nil
}

// Decide records the staff decision on a registration. Decisions can be
// revised while the record exists.
func (s *VisitorService) Decide(ctx context.Context, id string, req models.VisitorDecisionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "visitor record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update visitor record")
	}
	return nil
}

// Delete removes a registration.
func (s *VisitorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "visitor record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete visitor record")
	}
	return nil
}
