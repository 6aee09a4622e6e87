package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-app/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, authHandler AuthHandler, attendanceHandler AttendanceHandler, adminHandler AdminHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/status", attendanceHandler.Status)
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/break-start", attendanceHandler.BreakStart)
				r.Post("/break-end", attendanceHandler.BreakEnd)

				r.Get("/list", attendanceHandler.MonthList)
				r.Get("/list/{year}/{month}", attendanceHandler.MonthList)

				r.Get("/detail/{id}", attendanceHandler.Detail)
				r.Post("/detail/{id}", attendanceHandler.SubmitCorrection)
			})

			r.Get("/requests", attendanceHandler.Requests)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/attendances", func(r chi.Router) {
					r.Get("/", adminHandler.DailyRoster)
					r.Get("/{id}", adminHandler.Detail)
					r.Post("/{id}", adminHandler.SubmitCorrection)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", adminHandler.Users)
					r.Get("/{id}/attendances", adminHandler.UserMonth)
					r.Get("/{id}/attendances/csv", adminHandler.UserMonthCSV)
					r.Get("/{id}/attendances/{year}/{month}", adminHandler.UserMonth)
				})

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", adminHandler.Requests)
					r.Get("/{id}", adminHandler.RequestDetail)
					r.Post("/{id}/approve", adminHandler.Approve)
				})
			})
		})
	})
	return r
}
