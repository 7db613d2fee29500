package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Reader reads single cells from a spreadsheet.
type Reader struct {
	svc *sheetsapi.Service
}

func NewReader(svc *sheetsapi.Service) *Reader {
	return &Reader{svc: svc}
}

// ReadCell returns the formatted value of cell in sheet. ok is false when the
// sheet does not exist or the cell is empty.
func (r *Reader) ReadCell(ctx context.Context, spreadsheetID, sheet, cell string) (string, bool, error) {
	area := A1Range(sheet, cell)
	response, err := r.svc.Spreadsheets.Values.Get(spreadsheetID, area).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		if isMissingSheet(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", area, err)
	}

	if len(response.Values) == 0 || len(response.Values[0]) == 0 {
		return "", false, nil
	}

	var v string
	switch c := response.Values[0][0].(type) {
	case string:
		v = c
	case nil:
	default:
		v = fmt.Sprint(c)
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// A1Range builds the A1 notation range of cell in sheet, e.g. 'a_b_com'!A1.
func A1Range(sheet, cell string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cell
}

// isMissingSheet matches the error the API returns for a range naming an unknown sheet.
func isMissingSheet(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) &&
		gerr.Code == http.StatusBadRequest &&
		strings.Contains(gerr.Message, "Unable to parse range")
}
