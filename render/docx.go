package render

import (
	"fmt"
	"os"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// Media-slot convention: the template carries a placeholder PNG for the
// compliance chart as its first media part, and photo slots from the
// second part onward. Replacing a slot swaps the binary; the printed
// size stays whatever extent the template declares for that slot.
const chartSlot = "word/media/image1.png"

var photoSlotFormats = []string{
	"word/media/image%d.jpeg",
	"word/media/image%d.jpg",
	"word/media/image%d.png",
}

func (rc *ReportContext) placeholders() docx.PlaceholderMap {
	return docx.PlaceholderMap{
		"nombre_proyecto":        rc.NombreProyecto,
		"promotor_representante": rc.PromotorRepresentante,
		"licencia_ambiental":     rc.LicenciaAmbiental,
		"sector_productivo":      rc.SectorProductivo,
		"ubicacion_politica":     rc.UbicacionPolitica,
		"area":                   rc.Area,

		"id_informe":     rc.IDInforme,
		"numero_informe": rc.NumeroInforme,
		"fecha":          rc.Fecha,
		"responsable":    rc.Responsable,

		"sitio_inspeccion":    rc.SitioInspeccion,
		"objetivo_visita":     rc.ObjetivoVisita,
		"metodologia":         rc.Metodologia,
		"descripcion":         rc.Descripcion,
		"hallazgos":           rc.Hallazgos,
		"conformidades":       rc.Conformidades,
		"no_conformidades":    rc.NoConformidades,
		"acciones_inmediatas": rc.AccionesInmediatas,
		"conclusiones":        rc.Conclusiones,
		"recomendaciones":     rc.Recomendaciones,
		"nivel_cumplimiento":  rc.NivelCumplimiento,

		"proyecto": rc.Proyecto,
		"cliente":  rc.Cliente,

		"porcentaje_cumplimiento": rc.PorcentajeCumplimiento,
	}
}

// RenderDocument renders the template with the built context and saves
// the result at outPath. Placeholder or save failures are fatal for the
// request; missing photo slots only mean the extra photos are dropped.
func RenderDocument(cfg *config.Settings, rc *ReportContext, outPath string) error {
	logger := config.GetLogger()

	if _, err := os.Stat(cfg.TemplatePath); err != nil {
		return fmt.Errorf("docx template not found at %q: %w", cfg.TemplatePath, err)
	}

	doc, err := docx.Open(cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("could not open docx template: %w", err)
	}

	if err := doc.ReplaceAll(rc.placeholders()); err != nil {
		return fmt.Errorf("could not replace template placeholders: %w", err)
	}

	if rc.ChartPath != "" {
		chartBytes, err := os.ReadFile(rc.ChartPath)
		if err != nil {
			return fmt.Errorf("could not read chart file: %w", err)
		}
		if err := doc.SetFile(chartSlot, chartBytes); err != nil {
			config.LogWarn(logger, "docx.go", "RenderDocument", "SetFile chart", chartSlot, err)
		}
	}

	for i, img := range rc.Imagenes {
		if !setPhotoSlot(doc, i+2, img) {
			config.LogWarn(logger, "docx.go", "RenderDocument", "photo slots exhausted",
				fmt.Sprintf("photo %d of %d", i+1, len(rc.Imagenes)),
				fmt.Errorf("template has no media slot for photo %d", i+1))
			break
		}
	}

	if err := doc.WriteToFile(outPath); err != nil {
		return fmt.Errorf("could not save document: %w", err)
	}
	return nil
}

func setPhotoSlot(doc *docx.Document, slot int, data []byte) bool {
	for _, format := range photoSlotFormats {
		if err := doc.SetFile(fmt.Sprintf(format, slot), data); err == nil {
			return true
		}
	}
	return false
}
