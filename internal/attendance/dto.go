package attendance

import "time"

// timeOfDayFormat is the display format for check-in/out instants. The wire
// contract exposes wall-clock time strings; the stored value stays a real
// timestamp.
const timeOfDayFormat = "15:04:05"

// RecordResponse is the wire shape of one attendance record.
type RecordResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckInTime  string  `json:"checkInTime"`
	CheckOutTime string  `json:"checkOutTime,omitempty"`
	TotalHours   float64 `json:"totalHours"`
}

// RecordUserSummary mirrors the joined user fields the manager views expose.
type RecordUserSummary struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department,omitempty"`
}

type RecordWithUserResponse struct {
	RecordResponse
	User RecordUserSummary `json:"user"`
}

// TodayStatusResponse reports the caller's own state for the current day.
type TodayStatusResponse struct {
	CheckedIn    bool   `json:"checkedIn"`
	Status       string `json:"status,omitempty"`
	CheckInTime  string `json:"checkInTime,omitempty"`
	CheckOutTime string `json:"checkOutTime,omitempty"`
}

func formatTimeOfDay(t time.Time) string {
	return t.Format(timeOfDayFormat)
}

func (r *Record) ToResponse() RecordResponse {
	resp := RecordResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date,
		Status:      r.Status,
		CheckInTime: formatTimeOfDay(r.CheckInAt),
		TotalHours:  r.TotalHours,
	}
	if r.CheckOutAt != nil {
		resp.CheckOutTime = formatTimeOfDay(*r.CheckOutAt)
	}
	return resp
}

func (r *RecordWithUser) ToResponse() RecordWithUserResponse {
	return RecordWithUserResponse{
		RecordResponse: r.Record.ToResponse(),
		User: RecordUserSummary{
			Name:       r.UserName,
			Email:      r.UserEmail,
			EmployeeID: r.EmployeeID,
			Department: r.Department,
		},
	}
}

func ToResponseSlice(records []*Record) []RecordResponse {
	result := make([]RecordResponse, len(records))
	for i, rec := range records {
		result[i] = rec.ToResponse()
	}
	return result
}

func ToResponseWithUserSlice(records []*RecordWithUser) []RecordWithUserResponse {
	result := make([]RecordWithUserResponse, len(records))
	for i, rec := range records {
		result[i] = rec.ToResponse()
	}
	return result
}
