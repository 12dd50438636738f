package registry

import (
	"context"
	"fmt"
)

// fakeWorksheets is an in-memory Worksheets for tests. Reading a tab
// that was never created fails, like the Sheets API does.
type fakeWorksheets struct {
	tabs map[string][][]string

	failAppend bool
}

func newFakeWorksheets() *fakeWorksheets {
	return &fakeWorksheets{tabs: make(map[string][][]string)}
}

func (f *fakeWorksheets) EnsureSheet(_ context.Context, tab string) error {
	if _, ok := f.tabs[tab]; !ok {
		f.tabs[tab] = [][]string{}
	}
	return nil
}

func (f *fakeWorksheets) ReadAll(_ context.Context, tab string) ([][]string, error) {
	rows, ok := f.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, tab)
	}
	return rows, nil
}

func (f *fakeWorksheets) AppendRow(_ context.Context, tab string, row []string) error {
	if f.failAppend {
		return fmt.Errorf("append to %q failed", tab)
	}
	if _, ok := f.tabs[tab]; !ok {
		return fmt.Errorf("no such sheet %q", tab)
	}
	f.tabs[tab] = append(f.tabs[tab], row)
	return nil
}

func (f *fakeWorksheets) WriteHeader(_ context.Context, tab string, headers []string) error {
	rows, ok := f.tabs[tab]
	if !ok {
		return fmt.Errorf("no such sheet %q", tab)
	}
	if len(rows) == 0 {
		f.tabs[tab] = [][]string{headers}
		return nil
	}
	rows[0] = headers
	return nil
}
