// Package workflow runs the end-to-end report generation flow:
// resolve project, reserve a sequence number, fetch images, build the
// template context, render the DOCX, attempt PDF conversion, archive
// and log the result.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
	"github.com/dalgorosas/sistema-informes-dalgoro/drive"
	"github.com/dalgorosas/sistema-informes-dalgoro/registry"
	"github.com/dalgorosas/sistema-informes-dalgoro/render"
	"github.com/dalgorosas/sistema-informes-dalgoro/utils"
)

// Deps bundles the external collaborators of the generation flow so
// tests can substitute fakes for the Sheets registry and Drive store.
type Deps struct {
	Cfg      *config.Settings
	Registry *registry.Client
	Images   drive.Downloader
}

// Result is what the HTTP layer reports back to the user.
type Result struct {
	NumeroInforme string
	Filename      string
	FilenamePDF   string
}

const defaultResponsible = "SIN_RESPONSABLE"

// GenerateReport runs one request to completion. Fatal errors (missing
// template, sequence failure, chart write, render/save) abort and
// propagate; image fetch, PDF conversion, GCS archival and the final
// registry append degrade gracefully. A reserved sequence number is
// never rolled back, so an aborted render leaves an accepted gap in the
// numbering.
func GenerateReport(ctx context.Context, deps Deps, reportRow registry.Row, imageRefs []string) (*Result, error) {
	logger := config.GetLogger()
	cfg := deps.Cfg

	// Fail before reserving a number when the template cannot possibly
	// be rendered. Reservations made after this point stay consumed.
	if _, err := os.Stat(cfg.TemplatePath); err != nil {
		return nil, fmt.Errorf("docx template not found at %q; set DOCX_TEMPLATE_PATH or place the file there", cfg.TemplatePath)
	}

	// Project resolution is optional: lookup failures degrade to an
	// empty project row.
	proyectoID := strings.TrimSpace(reportRow.Get("proyecto_id"))
	project, err := deps.Registry.GetProjectByID(ctx, proyectoID)
	if err != nil {
		config.LogWarn(logger, "generate.go", "GenerateReport", "GetProjectByID", proyectoID, err)
		project = nil
	}
	row := registry.Merge(project, reportRow)
	if strings.TrimSpace(row.Get("nombre_proyecto")) == "" {
		row["nombre_proyecto"] = row.Get("proyecto")
	}

	responsible := strings.TrimSpace(row.Get("responsable"))
	if responsible == "" {
		responsible = defaultResponsible
	}

	seq, err := deps.Registry.Reserve(ctx, responsible, proyectoID)
	if err != nil {
		return nil, err
	}
	numeroInforme := registry.FormatReportNumber(seq, cfg.NumberPrefix, cfg.NumberPad)
	logger.WithFields(logrus.Fields{
		"numeroInforme": numeroInforme,
		"sequence":      seq,
		"proyectoId":    proyectoID,
	}).Info("sequence reserved")

	images := drive.DownloadImages(ctx, deps.Images, drive.NormalizeIDs(imageRefs))

	row["numero_informe"] = numeroInforme
	rc, err := render.BuildContext(cfg, row, images)
	if err != nil {
		return nil, err
	}

	filename := documentFilename(numeroInforme, row)
	path := filepath.Join(cfg.OutputDir, filename)
	if err := render.RenderDocument(cfg, rc, path); err != nil {
		return nil, err
	}

	filenamePDF := render.TryConvertToPDF(ctx, cfg, path)

	archiveToGCS(ctx, cfg, filename, filenamePDF)

	// The audit trail is written last; a failure here is logged and the
	// request still succeeds, so a rendered document can exist with no
	// registry entry.
	fechaISO := time.Now().In(cfg.Timezone).Format("2006-01-02 15:04:05")
	if err := deps.Registry.AppendReportEntry(ctx, proyectoID, numeroInforme, fechaISO, responsible); err != nil {
		config.LogWarn(logger, "generate.go", "GenerateReport", "AppendReportEntry", numeroInforme, err)
	}

	return &Result{
		NumeroInforme: numeroInforme,
		Filename:      filename,
		FilenamePDF:   filenamePDF,
	}, nil
}

// documentFilename builds {numero}_{proyecto}_{cliente}_{fecha}.docx
// with sanitized segments; when every segment is empty the number alone
// names the file.
func documentFilename(numeroInforme string, row registry.Row) string {
	base := row.Get("nombre_proyecto")
	if base == "" {
		base = row.Get("proyecto")
	}
	proyecto := utils.SafeFilenameSegment(base)
	cliente := utils.SafeFilenameSegment(row.Get("cliente"))

	fecha := strings.NewReplacer("/", "-", "\\", "-").Replace(row.Get("fecha"))
	fecha = utils.SafeFilename(fecha)

	if proyecto == "" && cliente == "" && fecha == "" {
		return numeroInforme + ".docx"
	}
	return fmt.Sprintf("%s_%s_%s_%s.docx", numeroInforme, proyecto, cliente, fecha)
}

// archiveToGCS mirrors the generated files into the archive bucket when
// one is configured. Best-effort, like PDF conversion.
func archiveToGCS(ctx context.Context, cfg *config.Settings, filename, filenamePDF string) {
	if cfg.GCSBucket == "" {
		return
	}
	logger := config.GetLogger()
	for _, name := range []string{filename, filenamePDF} {
		if name == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			config.LogWarn(logger, "generate.go", "archiveToGCS", "ReadFile", name, err)
			continue
		}
		if err := utils.UploadReportToGCS(ctx, cfg.GCSBucket, name, data); err != nil {
			config.LogWarn(logger, "generate.go", "archiveToGCS", "UploadReportToGCS", name, err)
		}
	}
}
