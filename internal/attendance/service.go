package attendance

import (
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	Create(rec *Record) error
	GetByUserAndDate(userID int64, date string) (*Record, error)
	Update(rec *Record) error
	ListByUser(userID int64) ([]*Record, error)
	ListByUserRange(userID int64, start, end string) ([]*Record, error)
	ListRecent(userID int64, limit int) ([]*Record, error)
	ListByDate(date string) ([]*Record, error)
	ListByDateWithUsers(date string) ([]*RecordWithUser, error)
	ListAllWithUsers() ([]*RecordWithUser, error)
	ListForExport(start, end string, userID int64) ([]*RecordWithUser, error)
}

// EmployeeCounter exposes the distinct-employee count the team rollups use
// for set-difference absence.
type EmployeeCounter interface {
	CountEmployees() (int64, error)
}

type Service struct {
	repo      Repository
	employees EmployeeCounter
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the service clock; used by tests to pin the check-in
// instant against the cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, employees EmployeeCounter, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn creates today's record for the user, deciding present-vs-late at
// creation time. A second check-in the same day fails; the read guard catches
// the common case and the store's unique index closes the concurrent race.
func (s *Service) CheckIn(userID int64) (*Record, error) {
	now := s.now()
	today := DateKey(now)

	if existing, err := s.repo.GetByUserAndDate(userID, today); err == nil && existing != nil {
		return nil, internal.ErrAlreadyCheckedIn
	}

	rec := &Record{
		UserID:    userID,
		Date:      today,
		CheckInAt: now,
		Status:    StatusForCheckIn(now),
	}

	if err := s.repo.Create(rec); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("check-in failed", "error", err, "user_id", userID, "date", today)
		return nil, internal.NewInternalError("check-in failed", err)
	}

	s.logger.Info("checked in", "user_id", userID, "date", today, "status", rec.Status)
	return rec, nil
}

// CheckOut closes today's record. It requires a prior check-in and rejects a
// second check-out; hours are computed from the stored instants.
func (s *Service) CheckOut(userID int64) (*Record, error) {
	now := s.now()
	today := DateKey(now)

	rec, err := s.repo.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, internal.ErrNoCheckInRecord) {
			return nil, internal.ErrNoCheckInRecord
		}
		s.logger.Error("check-out lookup failed", "error", err, "user_id", userID, "date", today)
		return nil, internal.NewInternalError("check-out failed", err)
	}
	if rec == nil {
		return nil, internal.ErrNoCheckInRecord
	}

	if rec.CheckOutAt != nil {
		return nil, internal.ErrAlreadyCheckedOut
	}

	rec.CheckOutAt = &now
	rec.TotalHours = RoundHours(now.Sub(rec.CheckInAt))

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("check-out failed", "error", err, "user_id", userID, "date", today)
		return nil, internal.NewInternalError("check-out failed", err)
	}

	s.logger.Info("checked out", "user_id", userID, "date", today, "total_hours", rec.TotalHours)
	return rec, nil
}

// TodayStatus reports whether the user has checked in today and the visible
// times if so.
func (s *Service) TodayStatus(userID int64) (*TodayStatusResponse, error) {
	rec, err := s.repo.GetByUserAndDate(userID, DateKey(s.now()))
	if err != nil {
		if errors.Is(err, internal.ErrNoCheckInRecord) {
			return &TodayStatusResponse{CheckedIn: false}, nil
		}
		s.logger.Error("today status lookup failed", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load today's status", err)
	}
	if rec == nil {
		return &TodayStatusResponse{CheckedIn: false}, nil
	}

	resp := &TodayStatusResponse{
		CheckedIn:   true,
		Status:      rec.Status,
		CheckInTime: formatTimeOfDay(rec.CheckInAt),
	}
	if rec.CheckOutAt != nil {
		resp.CheckOutTime = formatTimeOfDay(*rec.CheckOutAt)
	}
	return resp, nil
}

// History returns the user's records, newest first.
func (s *Service) History(userID int64) ([]*Record, error) {
	return s.repo.ListByUser(userID)
}

// RecentRecords returns the user's latest records capped at limit.
func (s *Service) RecentRecords(userID int64, limit int) ([]*Record, error) {
	return s.repo.ListRecent(userID, limit)
}

// MonthlySummary aggregates one user's records over a calendar month.
func (s *Service) MonthlySummary(userID int64, year int, month time.Month) (*Summary, error) {
	start, end := MonthRange(year, month)
	records, err := s.repo.ListByUserRange(userID, start, end)
	if err != nil {
		s.logger.Error("monthly summary query failed", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load summary", err)
	}
	return Summarize(records), nil
}

// AllRecords returns every record with the owning user joined, newest first.
func (s *Service) AllRecords() ([]*RecordWithUser, error) {
	return s.repo.ListAllWithUsers()
}

// EmployeeHistory returns one employee's records for manager viewing.
func (s *Service) EmployeeHistory(employeeUserID int64) ([]*Record, error) {
	return s.repo.ListByUser(employeeUserID)
}

// TeamToday lists today's records with user details.
func (s *Service) TeamToday() ([]*RecordWithUser, error) {
	return s.repo.ListByDateWithUsers(DateKey(s.now()))
}

// TeamSummary rolls up today's records against the employee headcount.
// Employees without a record are implicitly absent; absent rows are never
// written to the store.
func (s *Service) TeamSummary() (*TeamSummary, error) {
	total, err := s.employees.CountEmployees()
	if err != nil {
		return nil, internal.NewInternalError("failed to count employees", err)
	}

	records, err := s.repo.ListByDate(DateKey(s.now()))
	if err != nil {
		return nil, internal.NewInternalError("failed to load today's records", err)
	}

	summary := &TeamSummary{TotalEmployees: total}
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent:
			summary.Present++
		case StatusLate:
			summary.Late++
		}
	}

	summary.Absent = total - int64(len(records))
	if summary.Absent < 0 {
		summary.Absent = 0
	}
	return summary, nil
}

// Export returns joined records filtered by an optional inclusive date range
// and an optional employee. Start and end must be given together.
func (s *Service) Export(start, end string, userID int64) ([]*RecordWithUser, error) {
	if (start == "") != (end == "") {
		return nil, internal.NewValidationError("start and end must be provided together", internal.ErrCodeInvalidDateRange)
	}
	if start != "" {
		if _, err := time.Parse("2006-01-02", start); err != nil {
			return nil, internal.NewValidationError("start must be YYYY-MM-DD", internal.ErrCodeInvalidDateRange)
		}
		if _, err := time.Parse("2006-01-02", end); err != nil {
			return nil, internal.NewValidationError("end must be YYYY-MM-DD", internal.ErrCodeInvalidDateRange)
		}
		if end < start {
			return nil, internal.NewValidationError("end must not precede start", internal.ErrCodeInvalidDateRange)
		}
	}

	return s.repo.ListForExport(start, end, userID)
}
