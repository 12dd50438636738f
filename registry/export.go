package registry

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportReportsExcel streams the Informes audit trail as an xlsx
// workbook, one column per registry header.
func (c *Client) ExportReportsExcel(ctx context.Context, w io.Writer) error {
	rows, err := c.records(ctx, c.cfg.TabReports)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	columns := []string{"A", "B", "C", "D"}
	for i, h := range reportHeaders {
		f.SetCellValue("Sheet1", columns[i]+"1", h)
	}
	for i, row := range rows {
		for j, h := range reportHeaders {
			f.SetCellValue("Sheet1", columns[j]+fmt.Sprint(i+2), row.Get(h))
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write xlsx export: %w", err)
	}
	return nil
}
