package render

import (
	"fmt"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
	"github.com/dalgorosas/sistema-informes-dalgoro/registry"
)

// ReportContext is the fully resolved input of the DOCX template. Every
// placeholder the template knows has a named field here; anything absent
// from the source row stays "". Keeping this an explicit record (rather
// than the open map the template engine would accept) means a renamed
// placeholder breaks at compile time, not at render time.
type ReportContext struct {
	// Project data.
	NombreProyecto        string
	PromotorRepresentante string
	LicenciaAmbiental     string
	SectorProductivo      string
	UbicacionPolitica     string
	Area                  string

	// Report metadata.
	IDInforme     string
	NumeroInforme string
	Fecha         string
	Responsable   string

	// Inspection body.
	SitioInspeccion    string
	ObjetivoVisita     string
	Metodologia        string
	Descripcion        string
	Hallazgos          string
	Conformidades      string
	NoConformidades    string
	AccionesInmediatas string
	Conclusiones       string
	Recomendaciones    string
	NivelCumplimiento  string

	// Legacy template keys.
	Proyecto string
	Cliente  string

	// Derived display value: rounded percentage without the "%" sign.
	PorcentajeCumplimiento string

	// Processed (resized, re-encoded) inspection photos, in input order.
	Imagenes [][]byte

	// Rendered compliance chart.
	ChartPath    string
	ChartWidthMM int
}

// BuildContext assembles the template context from a merged
// project+report row and the downloaded image binaries. Images that fail
// to decode are dropped like failed downloads; the only fatal path is
// the chart renderer being unable to write its output.
func BuildContext(cfg *config.Settings, row registry.Row, images [][]byte) (*ReportContext, error) {
	logger := config.GetLogger()

	processed := make([][]byte, 0, len(images))
	for i, data := range images {
		b, err := ProcessImage(data, cfg.ImageMaxWidth)
		if err != nil {
			config.LogWarn(logger, "context.go", "BuildContext", "ProcessImage", i, err)
			continue
		}
		processed = append(processed, b)
	}

	pct := ClampPercentage(ParsePercentage(row.Get("nivel_cumplimiento")))

	base := "cumplimiento_" + row.Get("id_informe")
	if row.Get("id_informe") == "" {
		base = "cumplimiento_tmp"
	}
	chartPath, err := ComplianceChart(cfg, pct, base)
	if err != nil {
		return nil, err
	}

	return &ReportContext{
		NombreProyecto:        row.Get("nombre_proyecto"),
		PromotorRepresentante: row.Get("promotor_representante"),
		LicenciaAmbiental:     row.Get("licencia_ambiental"),
		SectorProductivo:      row.Get("sector_productivo"),
		UbicacionPolitica:     row.Get("ubicacion_politica"),
		Area:                  row.Get("area"),

		IDInforme:     row.Get("id_informe"),
		NumeroInforme: row.Get("numero_informe"),
		Fecha:         row.Get("fecha"),
		Responsable:   row.Get("responsable"),

		SitioInspeccion:    row.Get("sitio_inspeccion"),
		ObjetivoVisita:     row.Get("objetivo_visita"),
		Metodologia:        row.Get("metodologia"),
		Descripcion:        row.Get("descripcion"),
		Hallazgos:          row.Get("hallazgos"),
		Conformidades:      row.Get("conformidades"),
		NoConformidades:    row.Get("no_conformidades"),
		AccionesInmediatas: row.Get("acciones_inmediatas"),
		Conclusiones:       row.Get("conclusiones"),
		Recomendaciones:    row.Get("recomendaciones"),
		NivelCumplimiento:  row.Get("nivel_cumplimiento"),

		Proyecto: row.Get("proyecto"),
		Cliente:  row.Get("cliente"),

		PorcentajeCumplimiento: fmt.Sprintf("%.0f", pct),

		Imagenes:     processed,
		ChartPath:    chartPath,
		ChartWidthMM: cfg.ChartWidthMM,
	}, nil
}
