package dashboard

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

const recentRecordLimit = 7

// AttendanceAPI is the slice of the attendance service the dashboards need.
type AttendanceAPI interface {
	TodayStatus(userID int64) (*attendance.TodayStatusResponse, error)
	RecentRecords(userID int64, limit int) ([]*attendance.Record, error)
	MonthlySummary(userID int64, year int, month time.Month) (*attendance.Summary, error)
	TeamToday() ([]*attendance.RecordWithUser, error)
	TeamSummary() (*attendance.TeamSummary, error)
}

// UserAPI resolves the implicitly-absent employee list for the manager view.
type UserAPI interface {
	AbsentEmployees(presentIDs []int64) ([]*user.User, error)
}

type Service struct {
	att    AttendanceAPI
	users  UserAPI
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(att AttendanceAPI, users UserAPI, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		att:    att,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EmployeeDashboard bundles today's status, the running month's summary and
// the most recent records into one payload.
func (s *Service) EmployeeDashboard(userID int64) (*EmployeeDashboardResponse, error) {
	today, err := s.att.TodayStatus(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load today's status", err)
	}

	now := s.now()
	summary, err := s.att.MonthlySummary(userID, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	recent, err := s.att.RecentRecords(userID, recentRecordLimit)
	if err != nil {
		return nil, internal.NewInternalError("failed to load recent records", err)
	}

	return &EmployeeDashboardResponse{
		TodayStatus:      today,
		MonthlySummary:   summary,
		RecentAttendance: attendance.ToResponseSlice(recent),
	}, nil
}

// ManagerDashboard rolls up today's team state plus the list of employees
// with no record, who are implicitly absent.
func (s *Service) ManagerDashboard() (*ManagerDashboardResponse, error) {
	summary, err := s.att.TeamSummary()
	if err != nil {
		return nil, err
	}

	todayRecords, err := s.att.TeamToday()
	if err != nil {
		return nil, internal.NewInternalError("failed to load today's records", err)
	}

	presentIDs := make([]int64, len(todayRecords))
	for i, rec := range todayRecords {
		presentIDs[i] = rec.UserID
	}

	absent, err := s.users.AbsentEmployees(presentIDs)
	if err != nil {
		return nil, internal.NewInternalError("failed to load absent employees", err)
	}

	absentList := make([]AbsentEmployee, len(absent))
	for i, u := range absent {
		absentList[i] = AbsentEmployee{Name: u.Name, EmployeeID: u.EmployeeID}
	}

	return &ManagerDashboardResponse{
		TotalEmployees:  summary.TotalEmployees,
		Present:         summary.Present,
		Late:            summary.Late,
		Absent:          summary.Absent,
		AbsentEmployees: absentList,
	}, nil
}
