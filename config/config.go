package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings captures every environment-derived knob once at startup.
// Treat the returned value as immutable; components receive it by value
// or as a shared pointer and never write to it.
type Settings struct {
	// Google Sheets registry.
	SpreadsheetID string
	TabLegacy     string
	TabProjects   string
	TabReports    string
	SeqSheetName  string

	// Report numbering.
	NumberPrefix string
	NumberPad    int
	Timezone     *time.Location

	// Templates and output.
	TemplatePath  string
	OutputDir     string
	ImageMaxWidth int

	// Compliance chart.
	ChartWidthMM    int
	ColorFilled     string
	ColorPending    string
	ChartBackground string

	// Credentials: inline JSON wins over a file path.
	ServiceAccountJSON string
	ServiceAccountFile string

	// Optional integrations.
	PDFEnabled   string // "auto" | "on" | "off"
	GCSBucket    string
	RedisAddress string
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// LoadSettings reads the environment (after godotenv has loaded .env)
// and builds the process configuration. The output directory is created
// here so every later file write can assume it exists.
func LoadSettings() (*Settings, error) {
	godotenv.Load()

	tzName := getEnv("REPORTS_TIMEZONE", "America/Guayaquil")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTS_TIMEZONE %q: %w", tzName, err)
	}

	s := &Settings{
		SpreadsheetID: getEnv("GSHEET_ID", ""),
		TabLegacy:     getEnv("GSHEET_TAB", "Datos"),
		TabProjects:   getEnv("GSHEET_TAB_PROYECTOS", "Proyectos"),
		TabReports:    getEnv("GSHEET_TAB_REPORTES", "Informes"),
		SeqSheetName:  getEnv("REPORTS_SEQ_SHEET_NAME", "INFORMES_SEQ"),

		NumberPrefix: getEnv("REPORTS_NUMBER_PREFIX", "INF"),
		NumberPad:    getEnvInt("REPORTS_NUMBER_PAD", 5),
		Timezone:     loc,

		TemplatePath:  getEnv("DOCX_TEMPLATE_PATH", "report_templates/reporte_base.docx"),
		OutputDir:     getEnv("OUTPUT_DIR", "downloads"),
		ImageMaxWidth: getEnvInt("IMAGE_MAX_WIDTH", 500),

		ChartWidthMM:    getEnvInt("CHART_WIDTH_MM", 80),
		ColorFilled:     getEnv("COLOR_CUMPLIMIENTO", "2c5364"),
		ColorPending:    getEnv("COLOR_PENDIENTE", "203a43"),
		ChartBackground: getEnv("CHART_BG", "white"),

		ServiceAccountJSON: strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		PDFEnabled:   strings.ToLower(getEnv("PDF_ENABLED", "auto")),
		GCSBucket:    getEnv("GCS_BUCKET", ""),
		RedisAddress: getEnv("REDIS_ADDRESS", ""),
	}

	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output dir %q: %w", s.OutputDir, err)
	}

	return s, nil
}
