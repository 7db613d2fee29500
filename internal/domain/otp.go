package domain

import "crypto/subtle"

// ValidationRequest is the body of a validate-otp call. The otp length is
// counted in characters; its charset is not restricted.
type ValidationRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// StoredRecord holds the two cells read from a user's sheet.
// Has* is false when the sheet or cell does not exist or is empty.
type StoredRecord struct {
	Email    string
	OTP      string
	HasEmail bool
	HasOTP   bool
}

// Matches reports whether both the raw submitted email and the otp equal the stored values.
func (r StoredRecord) Matches(req ValidationRequest) bool {
	if !r.HasEmail || !r.HasOTP {
		return false
	}
	emailOK := r.Email == req.Email
	otpOK := subtle.ConstantTimeCompare([]byte(r.OTP), []byte(req.OTP)) == 1
	return emailOK && otpOK
}

// RecordKey derives the sheet name of a user from their email by replacing
// every character outside [A-Za-z0-9] with '_'. Distinct emails may collide.
func RecordKey(email string) string {
	b := make([]byte, 0, len(email))
	for _, c := range email {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b = append(b, byte(c))
		default:
			b = append(b, '_')
		}
	}
	return string(b)
}
