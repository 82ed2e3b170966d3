package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"
)

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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Register(dto)
	if err != nil {
		logger.From(r.Context()).Error("registration failed", "error", err, "email", dto.Email)
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(dto)
	if err != nil {
		logger.From(r.Context()).Error("authentication failed", "error", err)
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	cu, ok := internal.UserFromContext(r.Context())
	if !ok || cu == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.CurrentUser(cu.ID)
	if err != nil {
		logger.From(r.Context()).Error("Me: failed to load user", "error", err, "user_id", cu.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT/PATCH /auth/update. Only name, email and
// department are mutable.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	cu, ok := internal.UserFromContext(r.Context())
	if !ok || cu == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateProfile(cu.ID, dto)
	if err != nil {
		logger.From(r.Context()).Error("profile update failed", "error", err, "user_id", cu.ID)
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// AuthMiddleware verifies the bearer token on every protected route and
// attaches the authenticated identity to the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			logger.From(r.Context()).Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		u, err := h.Service.GetUser(claims.UserID)
		if err != nil {
			logger.From(r.Context()).Warn("auth middleware: user not found", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u.ToCore())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireManager is the single role gate applied at the routing boundary for
// every manager-only route. Non-managers get 403 before any handler runs.
func (h *Handler) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := internal.UserFromContext(r.Context())
		if !ok || u == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if !u.IsManager() {
			logger.From(r.Context()).Warn("access denied: manager role required", "user_id", u.ID, "role", u.Role)
			h.WriteError(w, http.StatusForbidden, internal.ErrAccessDenied.Message)
			return
		}

		next.ServeHTTP(w, r)
	})
}
