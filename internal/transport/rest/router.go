package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/dashboard"
	"github.com/frahmantamala/attendance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/attendance-tracker/internal/transport/swagger"
)

// RegisterAllRoutes wires the full HTTP surface. Manager-only routes are
// grouped under the single RequireManager gate rather than checking roles
// inside handlers.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, attendanceHandler *attendance.Handler, dashboardHandler *dashboard.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Get("/me", authHandler.Me)
				pr.Put("/update", authHandler.UpdateProfile)
				pr.Patch("/update", authHandler.UpdateProfile)
			})
		})

		r.Route("/attendance", func(ar chi.Router) {
			ar.Use(authHandler.AuthMiddleware)

			ar.Post("/checkin", attendanceHandler.CheckIn)
			ar.Post("/checkout", attendanceHandler.CheckOut)
			ar.Get("/today", attendanceHandler.TodayStatus)
			ar.Get("/my-history", attendanceHandler.MyHistory)
			ar.Get("/my-summary", attendanceHandler.MySummary)

			ar.Group(func(mr chi.Router) {
				mr.Use(authHandler.RequireManager)
				mr.Get("/all", attendanceHandler.AllRecords)
				mr.Get("/employee/{id}", attendanceHandler.EmployeeHistory)
				mr.Get("/today-status", attendanceHandler.TeamToday)
				mr.Get("/summary", attendanceHandler.TeamSummary)
				mr.Get("/export", attendanceHandler.Export)
			})
		})

		r.Route("/dashboard", func(dr chi.Router) {
			dr.Use(authHandler.AuthMiddleware)

			dr.Get("/employee", dashboardHandler.Employee)

			dr.Group(func(mr chi.Router) {
				mr.Use(authHandler.RequireManager)
				mr.Get("/manager", dashboardHandler.Manager)
			})
		})
	})
}
