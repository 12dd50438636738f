package registry

import (
	"context"
	"errors"
)

var reportHeaders = []string{"proyecto_id", "id_informe", "fecha", "responsable"}

// GetReportByID finds a stored report row by id_informe. It searches the
// Informes tab first and falls back to the legacy tab while old data is
// being migrated. Returns (nil, nil) when neither tab has the id.
func (c *Client) GetReportByID(ctx context.Context, idInforme string) (Row, error) {
	rows, err := c.records(ctx, c.cfg.TabReports)
	if err != nil {
		return nil, err
	}
	if row := findByKey(rows, "id_informe", idInforme); row != nil {
		return row, nil
	}

	legacy, err := c.records(ctx, c.cfg.TabLegacy)
	if err != nil {
		// The legacy tab is optional; registries created after the
		// two-tab migration never have it. Any other failure means the
		// id could exist but we could not look, so it must propagate
		// instead of reading as not-found.
		if errors.Is(err, ErrSheetNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return findByKey(legacy, "id_informe", idInforme), nil
}

// AppendReportEntry writes the permanent audit-trail row once a document
// has been rendered. Called after generation succeeds; the caller treats
// a failure here as a warning, never as a generation failure.
func (c *Client) AppendReportEntry(ctx context.Context, proyectoID, idInforme, fechaISO, responsable string) error {
	if err := c.ensureHeaders(ctx, c.cfg.TabReports, reportHeaders); err != nil {
		return err
	}
	return c.ws.AppendRow(ctx, c.cfg.TabReports, []string{proyectoID, idInforme, fechaISO, responsable})
}
