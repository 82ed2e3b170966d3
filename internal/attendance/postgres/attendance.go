package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
)

// AttendanceRepository implements the attendance.Repository interface using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// recordWithUserRow is the flat scan target for user-joined queries.
type recordWithUserRow struct {
	attendanceDatamodel.AttendanceRecord
	UserName   string
	UserEmail  string
	EmployeeID string
	Department string
}

const joinedSelect = "attendance_records.*, users.name AS user_name, users.email AS user_email, users.employee_id AS employee_id, users.department AS department"

func (r *AttendanceRepository) Create(rec *attendance.Record) error {
	dm := attendance.ToDataModel(rec)
	if err := r.db.Create(dm).Error; err != nil {
		// Two concurrent check-ins can both pass the service's read guard;
		// the unique (user_id, date) index resolves the race here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrAlreadyCheckedIn
		}
		return err
	}
	rec.ID = dm.ID
	rec.CreatedAt = dm.CreatedAt
	rec.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *AttendanceRepository) GetByUserAndDate(userID int64, date string) (*attendance.Record, error) {
	var dm attendanceDatamodel.AttendanceRecord
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrNoCheckInRecord
		}
		return nil, err
	}
	return attendance.FromDataModel(&dm), nil
}

func (r *AttendanceRepository) Update(rec *attendance.Record) error {
	rec.UpdatedAt = time.Now()
	return r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"check_out_at": rec.CheckOutAt,
			"total_hours":  rec.TotalHours,
			"updated_at":   rec.UpdatedAt,
		}).Error
}

func (r *AttendanceRepository) ListByUser(userID int64) ([]*attendance.Record, error) {
	var dms []*attendanceDatamodel.AttendanceRecord
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}

func (r *AttendanceRepository) ListByUserRange(userID int64, start, end string) ([]*attendance.Record, error) {
	var dms []*attendanceDatamodel.AttendanceRecord
	err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}

func (r *AttendanceRepository) ListRecent(userID int64, limit int) ([]*attendance.Record, error) {
	var dms []*attendanceDatamodel.AttendanceRecord
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}

func (r *AttendanceRepository) ListByDate(date string) ([]*attendance.Record, error) {
	var dms []*attendanceDatamodel.AttendanceRecord
	err := r.db.Where("date = ?", date).Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(dms), nil
}

func (r *AttendanceRepository) ListByDateWithUsers(date string) ([]*attendance.RecordWithUser, error) {
	var rows []recordWithUserRow
	err := r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Select(joinedSelect).
		Joins("JOIN users ON users.id = attendance_records.user_id").
		Where("attendance_records.date = ?", date).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromJoinedRows(rows), nil
}

func (r *AttendanceRepository) ListAllWithUsers() ([]*attendance.RecordWithUser, error) {
	var rows []recordWithUserRow
	err := r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Select(joinedSelect).
		Joins("JOIN users ON users.id = attendance_records.user_id").
		Order("attendance_records.date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromJoinedRows(rows), nil
}

func (r *AttendanceRepository) ListForExport(start, end string, userID int64) ([]*attendance.RecordWithUser, error) {
	q := r.db.Model(&attendanceDatamodel.AttendanceRecord{}).
		Select(joinedSelect).
		Joins("JOIN users ON users.id = attendance_records.user_id")

	if start != "" && end != "" {
		q = q.Where("attendance_records.date >= ? AND attendance_records.date <= ?", start, end)
	}
	if userID != 0 {
		q = q.Where("attendance_records.user_id = ?", userID)
	}

	var rows []recordWithUserRow
	err := q.Order("attendance_records.date ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromJoinedRows(rows), nil
}

func fromJoinedRows(rows []recordWithUserRow) []*attendance.RecordWithUser {
	result := make([]*attendance.RecordWithUser, len(rows))
	for i, row := range rows {
		result[i] = &attendance.RecordWithUser{
			Record:     *attendance.FromDataModel(&row.AttendanceRecord),
			UserName:   row.UserName,
			UserEmail:  row.UserEmail,
			EmployeeID: row.EmployeeID,
			Department: row.Department,
		}
	}
	return result
}
