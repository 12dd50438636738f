package registry

import (
	"context"
	"strings"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// Client is the registry facade used by the HTTP layer and the
// generation workflow. All tab names come from Settings; the Client
// itself is stateless.
type Client struct {
	ws  Worksheets
	cfg *config.Settings
}

func NewClient(ws Worksheets, cfg *config.Settings) *Client {
	return &Client{ws: ws, cfg: cfg}
}

// ensureHeaders creates the tab if needed and writes the header row when
// row 1 is still empty. Existing headers are never rewritten.
func (c *Client) ensureHeaders(ctx context.Context, tab string, headers []string) error {
	if err := c.ws.EnsureSheet(ctx, tab); err != nil {
		return err
	}
	rows, err := c.ws.ReadAll(ctx, tab)
	if err != nil {
		return err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return c.ws.WriteHeader(ctx, tab, headers)
	}
	return nil
}

func (c *Client) records(ctx context.Context, tab string) ([]Row, error) {
	rows, err := c.ws.ReadAll(ctx, tab)
	if err != nil {
		return nil, err
	}
	return Records(rows), nil
}

func findByKey(rows []Row, key, value string) Row {
	want := strings.TrimSpace(value)
	for _, r := range rows {
		if strings.TrimSpace(r.Get(key)) == want {
			return r
		}
	}
	return nil
}
