package otp

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sheets-otp/internal/domain"
	"github.com/sheets-otp/internal/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockCellReader struct{ mock.Mock }

func (m *mockCellReader) ReadCell(ctx context.Context, spreadsheetID, sheet, cell string) (string, bool, error) {
	args := m.Called(ctx, spreadsheetID, sheet, cell)
	return args.String(0), args.Bool(1), args.Error(2)
}

// --- builder ---

const spreadsheetID = "sheet-id"

func newService(r *mockCellReader) Service {
	return NewService(ServiceDeps{
		Reader:        r,
		SpreadsheetID: spreadsheetID,
		EmailCell:     "A1",
		OTPCell:       "A3",
	})
}

func stored(r *mockCellReader, sheet, email, otp string) {
	r.On("ReadCell", mock.Anything, spreadsheetID, sheet, "A1").Return(email, email != "", nil)
	r.On("ReadCell", mock.Anything, spreadsheetID, sheet, "A3").Return(otp, otp != "", nil)
}

// --- request shape ---

func TestValidate_MissingFields(t *testing.T) {
	r := &mockCellReader{}
	svc := newService(r)

	for _, req := range []domain.ValidationRequest{
		{},
		{Email: "a@b.com"},
		{OTP: "123456"},
		{Email: "", OTP: "123"},
	} {
		err := svc.Validate(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrMissingField, "%+v", req)
	}
	r.AssertNotCalled(t, "ReadCell", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_InvalidOTPLength(t *testing.T) {
	r := &mockCellReader{}
	svc := newService(r)

	for _, otp := range []string{"123", "12345", "1234567", "12345678901"} {
		err := svc.Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: otp})
		assert.ErrorIs(t, err, domain.ErrInvalidOTPFormat, otp)
	}
	r.AssertNotCalled(t, "ReadCell", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_LengthOnlyNotCharset(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "a@b.com", "ab!d 6")

	err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "ab!d 6"})

	require.NoError(t, err)
	r.AssertExpectations(t)
}

// --- lookup & comparison ---

func TestValidate_HappyPath(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "a@b.com", "123456")

	err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "123456"})

	require.NoError(t, err)
	r.AssertExpectations(t)
}

func TestValidate_WrongOTP(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "a@b.com", "123456")

	err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "654321"})

	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestValidate_WrongStoredEmail(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "someone@else.com", "123456")

	err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "123456"})

	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestValidate_CaseAndWhitespaceSensitive(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "A_b_com", "A@b.com", "abcdef")
	svc := newService(r)

	assert.ErrorIs(t, svc.Validate(context.Background(), domain.ValidationRequest{Email: "A@b.com", OTP: "ABCDEF"}), domain.ErrCredentialMismatch)
	assert.NoError(t, svc.Validate(context.Background(), domain.ValidationRequest{Email: "A@b.com", OTP: "abcdef"}))
}

func TestValidate_AbsentCells(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "nobody_x_com", "", "")

	err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "nobody@x.com", OTP: "123456"})

	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestValidate_SanitizationCollision(t *testing.T) {
	r := &mockCellReader{}
	// Both emails address sheet a_b_c_com; only the stored raw email wins.
	stored(r, "a_b_c_com", "a.b@c.com", "123456")
	svc := newService(r)

	assert.NoError(t, svc.Validate(context.Background(), domain.ValidationRequest{Email: "a.b@c.com", OTP: "123456"}))
	assert.ErrorIs(t, svc.Validate(context.Background(), domain.ValidationRequest{Email: "a_b@c.com", OTP: "123456"}), domain.ErrCredentialMismatch)
}

func TestValidate_Idempotent(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "a@b.com", "123456")
	svc := newService(r)
	req := domain.ValidationRequest{Email: "a@b.com", OTP: "123456"}

	assert.NoError(t, svc.Validate(context.Background(), req))
	assert.NoError(t, svc.Validate(context.Background(), req))
	r.AssertNumberOfCalls(t, "ReadCell", 4)
}

// --- store failures ---

func TestValidate_StoreError(t *testing.T) {
	for _, failing := range []string{"A1", "A3"} {
		t.Run(failing, func(t *testing.T) {
			cause := errors.New("connection reset")
			r := &mockCellReader{}
			for _, cell := range []string{"A1", "A3"} {
				call := r.On("ReadCell", mock.Anything, spreadsheetID, "a_b_com", cell)
				if cell == failing {
					call.Return("", false, cause)
				} else {
					call.Return("123456", true, nil).Maybe()
				}
			}

			err := newService(r).Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "123456"})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
			assert.ErrorIs(t, err, cause)
			assert.NotErrorIs(t, err, domain.ErrCredentialMismatch)
			r.AssertExpectations(t)
		})
	}
}

// --- metrics ---

func TestValidate_CountsOutcome(t *testing.T) {
	r := &mockCellReader{}
	stored(r, "a_b_com", "a@b.com", "123456")
	svc := newService(r)

	before := testutil.ToFloat64(metrics.Validations.WithLabelValues("mismatch"))
	_ = svc.Validate(context.Background(), domain.ValidationRequest{Email: "a@b.com", OTP: "000000"})
	after := testutil.ToFloat64(metrics.Validations.WithLabelValues("mismatch"))

	assert.Equal(t, before+1, after)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "missing_field", outcome(domain.ErrMissingField))
	assert.Equal(t, "invalid_format", outcome(domain.ErrInvalidOTPFormat))
	assert.Equal(t, "mismatch", outcome(domain.ErrCredentialMismatch))
	assert.Equal(t, "store_error", outcome(errors.New("boom")))
}
