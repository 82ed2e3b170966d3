package attendance

import (
	"math"
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusHalfDay = "halfDay"
)

// Late cutoff: check-ins at or before 09:30:00 local count as present.
const (
	lateCutoffHour   = 9
	lateCutoffMinute = 30
)

// Record is the domain model for one (user, day) attendance row. Instants are
// kept as real timestamps; the locale-facing time-of-day strings are produced
// only at the serialization boundary.
type Record struct {
	ID         int64
	UserID     int64
	Date       string
	CheckInAt  time.Time
	CheckOutAt *time.Time
	Status     string
	TotalHours float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecordWithUser flattens the owning user's display fields onto a record for
// the manager views and the export.
type RecordWithUser struct {
	Record
	UserName   string
	UserEmail  string
	EmployeeID string
	Department string
}

// StatusForCheckIn classifies a check-in instant against the daily cutoff.
// Absent is never produced here: absence is inferred from the lack of a row.
// halfDay is a reserved status no write path emits.
func StatusForCheckIn(t time.Time) string {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), lateCutoffHour, lateCutoffMinute, 0, 0, t.Location())
	if t.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// DateKey renders the calendar-day key used as part of the record's natural key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RoundHours converts a duration to decimal hours rounded to 2 places.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// MonthRange returns the inclusive [first, last] day keys of a month using
// calendar arithmetic, so February never bleeds into March.
func MonthRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return DateKey(first), DateKey(last)
}

func ToDataModel(rec *Record) *attendanceDatamodel.AttendanceRecord {
	return &attendanceDatamodel.AttendanceRecord{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Date:       rec.Date,
		CheckInAt:  rec.CheckInAt,
		CheckOutAt: rec.CheckOutAt,
		Status:     rec.Status,
		TotalHours: rec.TotalHours,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func FromDataModel(dm *attendanceDatamodel.AttendanceRecord) *Record {
	return &Record{
		ID:         dm.ID,
		UserID:     dm.UserID,
		Date:       dm.Date,
		CheckInAt:  dm.CheckInAt,
		CheckOutAt: dm.CheckOutAt,
		Status:     dm.Status,
		TotalHours: dm.TotalHours,
		CreatedAt:  dm.CreatedAt,
		UpdatedAt:  dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*attendanceDatamodel.AttendanceRecord) []*Record {
	result := make([]*Record, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
