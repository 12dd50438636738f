package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
	"github.com/dalgorosas/sistema-informes-dalgoro/drive"
	"github.com/dalgorosas/sistema-informes-dalgoro/registry"
	"github.com/dalgorosas/sistema-informes-dalgoro/utils"
	"github.com/dalgorosas/sistema-informes-dalgoro/workflow"
)

const defaultPort = "8080"

type server struct {
	cfg      *config.Settings
	registry *registry.Client
	images   drive.Downloader
}

// generateForm is the field-by-field submission variant of report
// generation. Field names match the registry headers so the row built
// from it merges cleanly with project data.
type generateForm struct {
	ProyectoID     string `form:"proyecto_id"`
	NombreProyecto string `form:"nombre_proyecto"`
	Proyecto       string `form:"proyecto" binding:"required"`
	Cliente        string `form:"cliente" binding:"required"`
	Fecha          string `form:"fecha" binding:"required"`
	Responsable    string `form:"responsable" binding:"required"`

	ObjetivoVisita     string `form:"objetivo_visita"`
	Metodologia        string `form:"metodologia"`
	Descripcion        string `form:"descripcion"`
	Hallazgos          string `form:"hallazgos"`
	Conformidades      string `form:"conformidades"`
	NoConformidades    string `form:"no_conformidades"`
	AccionesInmediatas string `form:"acciones_inmediatas"`
	Conclusiones       string `form:"conclusiones"`
	Recomendaciones    string `form:"recomendaciones"`
	NivelCumplimiento  string `form:"nivel_cumplimiento"`

	ImagenesDriveIDs string `form:"imagenes_drive_ids"`
}

func (s *server) deps() workflow.Deps {
	return workflow.Deps{Cfg: s.cfg, Registry: s.registry, Images: s.images}
}

func (s *server) listProjectsHandler(c *gin.Context) {
	// The project selector must load even when the registry is down.
	projects, err := s.registry.ListProjects(c.Request.Context())
	if err != nil {
		logger := config.GetLogger()
		config.LogWarn(logger, "server.go", "listProjectsHandler", "ListProjects", nil, err)
		projects = nil
	}
	if projects == nil {
		projects = []registry.Row{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *server) previewHandler(c *gin.Context) {
	idInforme := strings.TrimSpace(c.Query("id_informe"))
	if idInforme == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_informe is required"})
		return
	}

	report, err := s.registry.GetReportByID(c.Request.Context(), idInforme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "could not read the registry; check GSHEET_ID, tabs and credentials: " + err.Error(),
		})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "id_informe " + idInforme + " not found"})
		return
	}

	project, err := s.registry.GetProjectByID(c.Request.Context(), report.Get("proyecto_id"))
	if err != nil {
		project = nil
	}
	row := registry.Merge(project, report)
	row["id_informe"] = idInforme

	c.JSON(http.StatusOK, gin.H{"row": row})
}

func (s *server) projectDataHandler(c *gin.Context) {
	proyectoID := strings.TrimSpace(c.Query("proyecto_id"))
	data, err := s.registry.GetProjectByID(c.Request.Context(), proyectoID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "proyecto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// addProjectForm carries the Proyectos columns; only proyecto_id is
// mandatory, the sheet header decides which other columns land.
type addProjectForm struct {
	ProyectoID            string `form:"proyecto_id" binding:"required"`
	NombreProyecto        string `form:"nombre_proyecto"`
	PromotorRepresentante string `form:"promotor_representante"`
	LicenciaAmbiental     string `form:"licencia_ambiental"`
	SectorProductivo      string `form:"sector_productivo"`
	UbicacionPolitica     string `form:"ubicacion_politica"`
	Area                  string `form:"area"`
}

func (s *server) addProjectHandler(c *gin.Context) {
	var form addProjectForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	project := registry.Row{
		"proyecto_id":            form.ProyectoID,
		"nombre_proyecto":        form.NombreProyecto,
		"promotor_representante": form.PromotorRepresentante,
		"licencia_ambiental":     form.LicenciaAmbiental,
		"sector_productivo":      form.SectorProductivo,
		"ubicacion_politica":     form.UbicacionPolitica,
		"area":                   form.Area,
	}
	id, err := s.registry.AddProject(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "proyecto_id": id})
}

func (s *server) generateFromSheetHandler(c *gin.Context) {
	idInforme := strings.TrimSpace(c.PostForm("id_informe"))
	if idInforme == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_informe is required"})
		return
	}

	report, err := s.registry.GetReportByID(c.Request.Context(), idInforme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "could not read the registry; check GSHEET_ID, tabs and credentials: " + err.Error(),
		})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "id_informe " + idInforme + " not found"})
		return
	}
	report["id_informe"] = idInforme

	imageRefs := drive.SplitIDList(report.Get("imagenes_drive_ids"))
	s.generate(c, report, imageRefs)
}

func (s *server) generateFromFormHandler(c *gin.Context) {
	var form generateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	row := registry.Row{
		"proyecto_id": form.ProyectoID,
		"proyecto":    form.Proyecto,
		"cliente":     form.Cliente,
		"fecha":       form.Fecha,
		"responsable": form.Responsable,
	}
	// Optional fields are only set when present so project values
	// survive the merge for keys the form left blank.
	optional := map[string]string{
		"nombre_proyecto":     form.NombreProyecto,
		"objetivo_visita":     form.ObjetivoVisita,
		"metodologia":         form.Metodologia,
		"descripcion":         form.Descripcion,
		"hallazgos":           form.Hallazgos,
		"conformidades":       form.Conformidades,
		"no_conformidades":    form.NoConformidades,
		"acciones_inmediatas": form.AccionesInmediatas,
		"conclusiones":        form.Conclusiones,
		"recomendaciones":     form.Recomendaciones,
		"nivel_cumplimiento":  form.NivelCumplimiento,
	}
	for k, v := range optional {
		if strings.TrimSpace(v) != "" {
			row[k] = v
		}
	}

	s.generate(c, row, drive.SplitIDList(form.ImagenesDriveIDs))
}

func (s *server) generate(c *gin.Context, row registry.Row, imageRefs []string) {
	result, err := workflow.GenerateReport(c.Request.Context(), s.deps(), row, imageRefs)
	if err != nil {
		logger := config.GetLogger()
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogError(logger, "server.go", "generate", "GenerateReport correlationId="+cid, row.Get("id_informe"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"numero_informe": result.NumeroInforme,
		"filename":       result.Filename,
		"filename_pdf":   result.FilenamePDF,
	})
}

func (s *server) downloadHandler(c *gin.Context) {
	// Base() strips any traversal; generated files live flat in the
	// output directory.
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	mime := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		mime = "application/pdf"
	}
	c.Header("Content-Type", mime)
	c.FileAttachment(path, filename)
}

func (s *server) exportReportsHandler(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=informes.xlsx")
	if err := s.registry.ExportReportsExcel(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func main() {
	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	cfg, err := config.LoadSettings()
	if err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()
	srv := &server{cfg: cfg}
	if ws, err := registry.NewGoogleWorksheets(ctx, cfg); err != nil {
		config.LogError(logger, "server.go", "main", "NewGoogleWorksheets", nil, err)
	} else {
		srv.registry = registry.NewClient(ws, cfg)
	}
	if dl, err := drive.NewGoogleDownloader(ctx, cfg); err != nil {
		config.LogError(logger, "server.go", "main", "NewGoogleDownloader", nil, err)
	} else {
		srv.images = dl
	}

	r := newRouter(srv)

	// Redis only serializes sequence reservations; connect after the
	// server is up so startup never blocks on it.
	go config.ConnectRedisWithRetry(cfg.RedisAddress)

	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

func newRouter(srv *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type")
	// CORS runs before the readiness gate so 503s and preflights reach
	// browsers with their headers instead of an opaque CORS failure.
	r.Use(cors.New(corsConfig))

	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}
		// Gate registry-backed endpoints on client readiness; a bad
		// credential or missing GSHEET_ID is a configuration error the
		// caller should see.
		if srv.registry == nil || srv.images == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "registry clients not initialized; check GSHEET_ID and Google credentials",
			})
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/", srv.listProjectsHandler)
	r.GET("/previsualizar", srv.previewHandler)
	r.GET("/get_project_data", srv.projectDataHandler)
	r.POST("/agregar_proyecto", srv.addProjectHandler)
	r.POST("/generar_desde_sheet", srv.generateFromSheetHandler)
	r.POST("/generar", srv.generateFromFormHandler)
	r.GET("/descargar/:filename", srv.downloadHandler)
	r.GET("/exportar_informes", srv.exportReportsHandler)

	return r
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
