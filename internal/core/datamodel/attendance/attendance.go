package attendance

import "time"

// AttendanceRecord is the persistence model for attendance rows.
// The composite unique index on (user_id, date) is the store-level guard
// against two concurrent check-ins inserting duplicate rows for one day.
type AttendanceRecord struct {
	ID         int64      `gorm:"primaryKey"`
	UserID     int64      `gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date       string     `gorm:"column:date;size:10;not null;uniqueIndex:idx_attendance_user_date"`
	CheckInAt  time.Time  `gorm:"column:check_in_at;not null"`
	CheckOutAt *time.Time `gorm:"column:check_out_at"`
	Status     string     `gorm:"column:status;not null"`
	TotalHours float64    `gorm:"column:total_hours;default:0"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
