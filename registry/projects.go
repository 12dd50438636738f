package registry

import (
	"context"
	"fmt"
	"strings"
)

// Expected Proyectos headers:
// proyecto_id, nombre_proyecto, promotor_representante, licencia_ambiental,
// sector_productivo, ubicacion_politica, area

// ListProjects returns every row of the Proyectos tab.
func (c *Client) ListProjects(ctx context.Context) ([]Row, error) {
	return c.records(ctx, c.cfg.TabProjects)
}

// GetProjectByID looks a project up by proyecto_id. A blank id or a
// missing project yields (nil, nil): project association is optional and
// absence is not an error here.
func (c *Client) GetProjectByID(ctx context.Context, proyectoID string) (Row, error) {
	if strings.TrimSpace(proyectoID) == "" {
		return nil, nil
	}
	rows, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return findByKey(rows, "proyecto_id", proyectoID), nil
}

// AddProject appends a project row, honoring the column order of the
// existing Proyectos header. Requires write scope on the spreadsheet.
func (c *Client) AddProject(ctx context.Context, project Row) (string, error) {
	rows, err := c.ws.ReadAll(ctx, c.cfg.TabProjects)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", fmt.Errorf("sheet %q has no header row", c.cfg.TabProjects)
	}
	headers := rows[0]
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = project.Get(strings.TrimSpace(h))
	}
	if err := c.ws.AppendRow(ctx, c.cfg.TabProjects, row); err != nil {
		return "", err
	}
	return project.Get("proyecto_id"), nil
}
