package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sheets-otp/internal/application/otp"
	"github.com/sheets-otp/internal/config"
	"github.com/sheets-otp/internal/pkg/logger"
	"github.com/sheets-otp/internal/transport/http/handler"
	appmiddleware "github.com/sheets-otp/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(appmiddleware.RequestID)
	r.Use(appmiddleware.Logger(logger.WithModule("http")))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appmiddleware.RequestIDHeader},
		ExposedHeaders:   []string{appmiddleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RequestMaxBytes > 0 {
		r.Use(chimiddleware.RequestSize(cfg.RequestMaxBytes))
	}
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	otpSvc := otp.NewService(otp.ServiceDeps{
		Reader:        deps.CellReader,
		SpreadsheetID: cfg.SpreadsheetID,
		EmailCell:     cfg.Cells.Email,
		OTPCell:       cfg.Cells.OTP,
	})

	healthH := handler.NewHealthHandler(cfg.AppEnv)
	otpH := handler.NewOTPHandler(otpSvc)

	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/health-check/{action}", healthH.Ping)
	r.Post("/validate-otp", otpH.Validate)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
