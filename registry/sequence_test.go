package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

func testSettings() *config.Settings {
	return &config.Settings{
		SpreadsheetID: "test-spreadsheet",
		TabLegacy:     "Datos",
		TabProjects:   "Proyectos",
		TabReports:    "Informes",
		SeqSheetName:  "INFORMES_SEQ",
		NumberPrefix:  "INF",
		NumberPad:     5,
		Timezone:      time.UTC,
	}
}

func TestReserve_SequentialNumbersFromEmptyCounter(t *testing.T) {
	ws := newFakeWorksheets()
	client := NewClient(ws, testSettings())
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		got, err := client.Reserve(ctx, "inspector", "P-001")
		if err != nil {
			t.Fatalf("Reserve #%d error: %v", want, err)
		}
		if got != want {
			t.Fatalf("Reserve #%d expected sequence %d, got %d", want, want, got)
		}
	}

	rows := ws.tabs["INFORMES_SEQ"]
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 data rows, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][1] != "responsable" || rows[0][2] != "proyecto_id" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
}

func TestReserve_CreatesCounterSheetAndHeaders(t *testing.T) {
	ws := newFakeWorksheets()
	client := NewClient(ws, testSettings())

	if _, ok := ws.tabs["INFORMES_SEQ"]; ok {
		t.Fatalf("counter sheet should not exist before the first reservation")
	}
	seq, err := client.Reserve(context.Background(), "inspector", "")
	if err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	if seq != 1 {
		t.Fatalf("first reservation expected sequence 1, got %d", seq)
	}
}

func TestReserve_RowsAreAppendOnly(t *testing.T) {
	ws := newFakeWorksheets()
	client := NewClient(ws, testSettings())
	ctx := context.Background()

	if _, err := client.Reserve(ctx, "a", "P-001"); err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	first := append([]string(nil), ws.tabs["INFORMES_SEQ"][1]...)

	if _, err := client.Reserve(ctx, "b", "P-002"); err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	for i, cell := range ws.tabs["INFORMES_SEQ"][1] {
		if cell != first[i] {
			t.Fatalf("existing counter row was mutated: %v vs %v", first, ws.tabs["INFORMES_SEQ"][1])
		}
	}
	if ws.tabs["INFORMES_SEQ"][2][1] != "b" {
		t.Fatalf("second reservation row not appended: %v", ws.tabs["INFORMES_SEQ"])
	}
}

func TestReserve_AppendFailurePropagates(t *testing.T) {
	ws := newFakeWorksheets()
	ws.failAppend = true
	client := NewClient(ws, testSettings())

	if _, err := client.Reserve(context.Background(), "inspector", ""); err == nil {
		t.Fatalf("expected error when the counter append fails")
	}
}

func TestReserve_SequenceErrorOnMiscount(t *testing.T) {
	ws := newFakeWorksheets()
	ws.tabs["INFORMES_SEQ"] = [][]string{{"timestamp", "responsable", "proyecto_id"}}

	// A store whose append is not yet visible to the re-read: only the
	// header row ever comes back, so rowCount-1 is 0.
	client := NewClient(&miscountingWorksheets{fakeWorksheets: ws}, testSettings())

	_, err := client.Reserve(context.Background(), "inspector", "")
	if !errors.Is(err, ErrSequence) {
		t.Fatalf("expected ErrSequence, got %v", err)
	}
}

// miscountingWorksheets accepts appends but never reflects them in
// ReadAll, modeling a store without read-after-write consistency.
type miscountingWorksheets struct {
	*fakeWorksheets
}

func (m *miscountingWorksheets) AppendRow(_ context.Context, _ string, _ []string) error {
	return nil
}

func (m *miscountingWorksheets) ReadAll(ctx context.Context, tab string) ([][]string, error) {
	rows, err := m.fakeWorksheets.ReadAll(ctx, tab)
	if err != nil {
		return nil, err
	}
	if len(rows) > 1 {
		return rows[:1], nil
	}
	return rows, nil
}
