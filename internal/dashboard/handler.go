package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"
)

type ServiceAPI interface {
	EmployeeDashboard(userID int64) (*EmployeeDashboardResponse, error)
	ManagerDashboard() (*ManagerDashboardResponse, error)
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

func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.Service.EmployeeDashboard(u.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Manager(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ManagerDashboard()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
