package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

var sofficeCandidates = []string{
	"soffice",
	"/usr/bin/soffice",
	"/usr/lib/libreoffice/program/soffice",
}

// TryConvertToPDF converts a rendered DOCX to PDF via a headless
// LibreOffice process. Best-effort by contract: any failure (no soffice
// installed, conversion error) returns "" and the report flow continues
// with no PDF. Honors PDF_ENABLED=off.
func TryConvertToPDF(ctx context.Context, cfg *config.Settings, docxPath string) string {
	if cfg.PDFEnabled == "off" {
		return ""
	}
	logger := config.GetLogger()

	abs, err := filepath.Abs(docxPath)
	if err != nil {
		config.LogWarn(logger, "pdf.go", "TryConvertToPDF", "Abs", docxPath, err)
		return ""
	}
	pdfPath := strings.TrimSuffix(abs, filepath.Ext(abs)) + ".pdf"

	for _, soffice := range sofficeCandidates {
		cmd := exec.CommandContext(ctx, soffice,
			"--headless", "--convert-to", "pdf",
			"--outdir", filepath.Dir(abs), abs)
		out, err := cmd.CombinedOutput()
		if err != nil {
			config.LogWarn(logger, "pdf.go", "TryConvertToPDF", soffice, strings.TrimSpace(string(out)), err)
			continue
		}
		if _, err := os.Stat(pdfPath); err == nil {
			return filepath.Base(pdfPath)
		}
		config.LogWarn(logger, "pdf.go", "TryConvertToPDF", soffice, nil,
			fmt.Errorf("conversion reported success but %s does not exist", pdfPath))
	}
	return ""
}
