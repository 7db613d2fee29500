package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sheets-otp/internal/application/otp"
	"github.com/sheets-otp/internal/domain"
	"github.com/sheets-otp/internal/pkg/logger"
	"github.com/sheets-otp/internal/pkg/metrics"
	"github.com/sheets-otp/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// Client-facing messages. Format and mismatch failures share one message.
const (
	MsgRequired     = "Email and OTP are required."
	MsgIncorrectOTP = "Please enter the correct OTP."
	MsgInternal     = "Internal server error."
)

// OTPHandler handles the validate-otp endpoint.
type OTPHandler struct {
	svc otp.Service
	log *zap.Logger
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc, log: logger.WithModule("otp")}
}

func (h *OTPHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req domain.ValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.Validations.WithLabelValues("missing_field").Inc()
		writeResult(w, http.StatusBadRequest, MsgRequired)
		return
	}
	if err := h.svc.Validate(r.Context(), req); err != nil {
		status, msg := otpError(err)
		if status == http.StatusInternalServerError {
			h.log.Error("error accessing google sheets",
				zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
				zap.Error(err),
			)
		}
		writeResult(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, ResultEnvelope{Success: true})
}

// otpError maps a validation error to its status code and scrubbed client message.
func otpError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, MsgRequired
	case errors.Is(err, domain.ErrInvalidOTPFormat):
		return http.StatusBadRequest, MsgIncorrectOTP
	case errors.Is(err, domain.ErrCredentialMismatch):
		return http.StatusUnauthorized, MsgIncorrectOTP
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}
