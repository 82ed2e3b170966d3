package attendance

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/report"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"
)

type ServiceAPI interface {
	CheckIn(userID int64) (*Record, error)
	CheckOut(userID int64) (*Record, error)
	TodayStatus(userID int64) (*TodayStatusResponse, error)
	History(userID int64) ([]*Record, error)
	MonthlySummary(userID int64, year int, month time.Month) (*Summary, error)
	AllRecords() ([]*RecordWithUser, error)
	EmployeeHistory(employeeUserID int64) ([]*Record, error)
	TeamToday() ([]*RecordWithUser, error)
	TeamSummary() (*TeamSummary, error)
	Export(start, end string, userID int64) ([]*RecordWithUser, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.CheckIn(u.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec.ToResponse())
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.CheckOut(u.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec.ToResponse())
}

func (h *Handler) TodayStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	status, err := h.Service.TodayStatus(u.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) MyHistory(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.Service.History(u.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseSlice(records))
}

// MySummary handles GET /attendance/my-summary?month=MM&year=YYYY.
func (h *Handler) MySummary(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr == "" || yearStr == "" {
		h.WriteError(w, http.StatusBadRequest, "Month & year required")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		h.WriteError(w, http.StatusBadRequest, "invalid month")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	summary, err := h.Service.MonthlySummary(u.ID, year, time.Month(month))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) AllRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.AllRecords()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseWithUserSlice(records))
}

func (h *Handler) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	employeeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	records, err := h.Service.EmployeeHistory(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseSlice(records))
}

func (h *Handler) TeamToday(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.TeamToday()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseWithUserSlice(records))
}

func (h *Handler) TeamSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.TeamSummary()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// Export handles GET /attendance/export?start&end&employeeId and streams a
// CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var employeeID int64
	if idStr := q.Get("employeeId"); idStr != "" {
		parsed, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employeeId")
			return
		}
		employeeID = parsed
	}

	records, err := h.Service.Export(q.Get("start"), q.Get("end"), employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows := make([]report.Row, len(records))
	for i, rec := range records {
		rows[i] = exportRow(rec)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	if err := report.WriteCSV(w, rows); err != nil {
		logger.From(r.Context()).Error("csv export failed", "error", err)
	}
}

func exportRow(rec *RecordWithUser) report.Row {
	row := report.Row{
		EmployeeID: rec.EmployeeID,
		Name:       rec.UserName,
		Date:       rec.Date,
		Status:     rec.Status,
		CheckIn:    formatTimeOfDay(rec.CheckInAt),
		Hours:      fmt.Sprintf("%g", rec.TotalHours),
	}
	if rec.CheckOutAt != nil {
		row.CheckOut = formatTimeOfDay(*rec.CheckOutAt)
	}
	return row
}
