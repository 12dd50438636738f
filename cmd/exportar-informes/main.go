// exportar-informes dumps the Informes audit trail to a local xlsx file.
//
// Usage (from the backend directory):
//   GSHEET_ID=... GOOGLE_SERVICE_ACCOUNT_FILE=... go run ./cmd/exportar-informes informes.xlsx
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
	"github.com/dalgorosas/sistema-informes-dalgoro/registry"
)

func main() {
	out := "informes.xlsx"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	cfg, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	ws, err := registry.NewGoogleWorksheets(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not connect to the registry: %v\n", err)
		os.Exit(1)
	}
	client := registry.NewClient(ws, cfg)

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create %s: %v\n", out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := client.ExportReportsExcel(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", out)
}
