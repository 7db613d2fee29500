package otp

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sheets-otp/internal/domain"
	"github.com/sheets-otp/internal/pkg/metrics"
	"github.com/sheets-otp/internal/pkg/validate"
	"golang.org/x/sync/errgroup"
)

// CellReader is the minimal interface the service requires from the spreadsheet store.
// ok is false when the sheet or cell does not exist or holds no value.
type CellReader interface {
	ReadCell(ctx context.Context, spreadsheetID, sheet, cell string) (value string, ok bool, err error)
}

type Service interface {
	// Validate returns nil when the stored email and otp of the user's sheet
	// equal the submitted ones, or one of the domain sentinel errors.
	Validate(ctx context.Context, req domain.ValidationRequest) error
}

// ServiceDeps groups the collaborators and store addressing of the service.
type ServiceDeps struct {
	Reader        CellReader
	SpreadsheetID string
	EmailCell     string
	OTPCell       string
}

type service struct {
	reader        CellReader
	spreadsheetID string
	emailCell     string
	otpCell       string
}

func NewService(d ServiceDeps) Service {
	return &service{
		reader:        d.Reader,
		spreadsheetID: d.SpreadsheetID,
		emailCell:     d.EmailCell,
		otpCell:       d.OTPCell,
	}
}

func (s *service) Validate(ctx context.Context, req domain.ValidationRequest) (err error) {
	defer func() { metrics.Validations.WithLabelValues(outcome(err)).Inc() }()

	if err := checkRequest(req); err != nil {
		return err
	}

	sheet := domain.RecordKey(req.Email)
	rec, err := s.lookup(ctx, sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w: %w", sheet, domain.ErrStoreUnavailable, err)
	}
	if !rec.Matches(req) {
		return domain.ErrCredentialMismatch
	}
	return nil
}

func checkRequest(req domain.ValidationRequest) error {
	failed, err := validate.Failures(req)
	if err != nil {
		return err
	}
	if failed["email"] == "required" || failed["otp"] == "required" {
		return domain.ErrMissingField
	}
	if failed["otp"] != "" {
		return domain.ErrInvalidOTPFormat
	}
	return nil
}

// lookup reads the email and otp cells of sheet concurrently.
func (s *service) lookup(ctx context.Context, sheet string) (domain.StoredRecord, error) {
	var rec domain.StoredRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, ok, err := s.read(gctx, sheet, s.emailCell, "email")
		rec.Email, rec.HasEmail = v, ok
		return err
	})
	g.Go(func() error {
		v, ok, err := s.read(gctx, sheet, s.otpCell, "otp")
		rec.OTP, rec.HasOTP = v, ok
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.StoredRecord{}, err
	}
	return rec, nil
}

func (s *service) read(ctx context.Context, sheet, cell, label string) (string, bool, error) {
	timer := prometheus.NewTimer(metrics.StoreReadLatency.WithLabelValues(label))
	defer timer.ObserveDuration()

	v, ok, err := s.reader.ReadCell(ctx, s.spreadsheetID, sheet, cell)
	if err != nil {
		return "", false, fmt.Errorf("%s cell %s: %w", label, cell, err)
	}
	return v, ok, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrMissingField):
		return "missing_field"
	case errors.Is(err, domain.ErrInvalidOTPFormat):
		return "invalid_format"
	case errors.Is(err, domain.ErrCredentialMismatch):
		return "mismatch"
	default:
		return "store_error"
	}
}
