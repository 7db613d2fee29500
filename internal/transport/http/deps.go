package http

import (
	"github.com/sheets-otp/internal/application/otp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	// CellReader is the spreadsheet store; in production a *sheets.Reader.
	CellReader otp.CellReader
}
