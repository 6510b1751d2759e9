package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type occupancyCounter interface {
	OccupancyCounts(ctx context.Context) (total int, occupied int, err error)
	FindByOccupant(ctx context.Context, userID string) (*models.Room, error)
}

type pendingRequestCounter interface {
	PendingCount(ctx context.Context) (int, error)
	HasPending(ctx context.Context, requesterID string) (bool, error)
}

type openTicketCounter interface {
	OpenCount(ctx context.Context, requesterID string) (int, error)
}

type pendingVisitorCounter interface {
	PendingCount(ctx context.Context) (int, error)
}

type unpaidFeeCounter interface {
	UnpaidSummary(ctx context.Context, studentID string) (count int, total float64, err error)
}

type roleCounter interface {
	CountByRole(ctx context.Context, role models.UserRole) (int, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes summary payloads for the landing views.
type DashboardService struct {
	rooms    occupancyCounter
	requests pendingRequestCounter
	tickets  openTicketCounter
	visitors pendingVisitorCounter
	fees     unpaidFeeCounter
	users    roleCounter
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
	cfg      DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Rooms    occupancyCounter
	Requests pendingRequestCounter
	Tickets  openTicketCounter
	Visitors pendingVisitorCounter
	Fees     unpaidFeeCounter
	Users    roleCounter
	Cache    *CacheService
	Logger   *zap.Logger
	Config   DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		rooms:    params.Rooms,
		requests: params.Requests,
		tickets:  params.Tickets,
		visitors: params.Visitors,
		fees:     params.Fees,
		users:    params.Users,
		cache:    params.Cache,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

const adminDashboardKey = "dash:admin"

// Admin returns the hostel-wide summary and indicates cache utilisation.
func (s *DashboardService) Admin(ctx context.Context) (*models.AdminDashboard, bool, error) {
	if s.cache != nil {
		var cached models.AdminDashboard
		hit, err := s.cache.Get(ctx, adminDashboardKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	summary, err := s.composeAdminSummary(ctx)
	if err != nil {
		return nil, false, err
	}
	s.persistCache(ctx, adminDashboardKey, summary)
	return summary, false, nil
}

// Student returns the caller's own summary. Student dashboards are not
// cached; the payload is cheap and per user.
func (s *DashboardService) Student(ctx context.Context, userID string) (*models.StudentDashboard, error) {
	summary := &models.StudentDashboard{GeneratedAt: s.now().UTC()}

	room, err := s.rooms.FindByOccupant(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room assignment")
		}
	} else {
		summary.Room = room
	}

	pending, err := s.requests.HasPending(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending request")
	}
	summary.PendingRequest = pending

	openTickets, err := s.tickets.OpenCount(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count open tickets")
	}
	summary.OpenMaintenance = openTickets

	unpaid, _, err := s.fees.UnpaidSummary(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise fees")
	}
	summary.UnpaidFees = unpaid

	return summary, nil
}

// Invalidate drops the cached admin summary after a mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, adminDashboardKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) composeAdminSummary(ctx context.Context) (*models.AdminDashboard, error) {
	total, occupied, err := s.rooms.OccupancyCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count rooms")
	}
	pendingRequests, err := s.requests.PendingCount(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending requests")
	}
	openTickets, err := s.tickets.OpenCount(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count open tickets")
	}
	pendingVisitors, err := s.visitors.PendingCount(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending visitors")
	}
	_, unpaidTotal, err := s.fees.UnpaidSummary(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise fees")
	}
	students, err := s.users.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}

	return &models.AdminDashboard{
		TotalRooms:         total,
		OccupiedRooms:      occupied,
		AvailableRooms:     total - occupied,
		PendingRequests:    pendingRequests,
		OpenMaintenance:    openTickets,
		PendingVisitors:    pendingVisitors,
		UnpaidFeeTotal:     unpaidTotal,
		RegisteredStudents: students,
		GeneratedAt:        s.now().UTC(),
	}, nil
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
