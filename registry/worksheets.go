// Package registry is the Google-Sheets-backed project/report registry:
// three logical tables (Proyectos, Informes, INFORMES_SEQ) on one shared
// spreadsheet, plus the report-numbering protocol built on top of them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// ErrSheetNotFound reports a read of a tab the spreadsheet does not
// have. Callers that treat a tab as optional match on it; every other
// read failure stays a real error.
var ErrSheetNotFound = errors.New("sheet not found")

// Worksheets is the minimal surface this service needs from a
// spreadsheet store. The production implementation talks to the Google
// Sheets API; tests use an in-memory fake.
type Worksheets interface {
	// EnsureSheet creates the named tab when it does not exist yet.
	EnsureSheet(ctx context.Context, tab string) error
	// ReadAll returns every populated row of the tab, header included.
	ReadAll(ctx context.Context, tab string) ([][]string, error)
	// AppendRow appends one row after the last populated row.
	AppendRow(ctx context.Context, tab string, row []string) error
	// WriteHeader overwrites row 1 with the given header cells.
	WriteHeader(ctx context.Context, tab string, headers []string) error
}

// GoogleWorksheets implements Worksheets against the Sheets v4 API.
type GoogleWorksheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

func clientOptions(cfg *config.Settings, scopes ...string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(scopes...)}
	// Prefer inline JSON (container deployments), then an explicit file,
	// then ADC.
	if cfg.ServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	} else if cfg.ServiceAccountFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountFile))
	}
	return opts
}

func NewGoogleWorksheets(ctx context.Context, cfg *config.Settings) (*GoogleWorksheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("GSHEET_ID is not configured; set it to the registry spreadsheet ID")
	}
	svc, err := sheets.NewService(ctx, clientOptions(cfg, sheets.SpreadsheetsScope)...)
	if err != nil {
		return nil, fmt.Errorf("could not create sheets client: %w", err)
	}
	return &GoogleWorksheets{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (g *GoogleWorksheets) EnsureSheet(ctx context.Context, tab string) error {
	meta, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not read spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return nil
		}
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: tab,
					GridProperties: &sheets.GridProperties{
						RowCount:    1,
						ColumnCount: 8,
					},
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", tab, err)
	}
	return nil
}

func (g *GoogleWorksheets) ReadAll(ctx context.Context, tab string) ([][]string, error) {
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		// The API reports a nonexistent tab as an unparseable range.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "Unable to parse range") {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, tab)
		}
		return nil, fmt.Errorf("could not read sheet %q: %w", tab, err)
	}
	rows := make([][]string, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *GoogleWorksheets) AppendRow(ctx context.Context, tab string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, tab, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not append to sheet %q: %w", tab, err)
	}
	return nil
}

func (g *GoogleWorksheets) WriteHeader(ctx context.Context, tab string, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, cell := range headers {
		values[i] = cell
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	rangeA1 := fmt.Sprintf("%s!A1:%s1", tab, columnLetter(len(headers)))
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rangeA1, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not write headers of sheet %q: %w", tab, err)
	}
	return nil
}

// columnLetter turns a 1-based column count into its A1 letter. Header
// rows here are at most a handful of columns wide, so single letters
// are enough.
func columnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	if n > 26 {
		n = 26
	}
	return string(rune('A' + n - 1))
}
