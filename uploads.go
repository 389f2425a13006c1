package main

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kuchya/ris-app/config"
	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/models/reports"
	"github.com/kuchya/ris-app/utils"
	"github.com/sirupsen/logrus"
)

const maxUploadSizeBytes int64 = 10 * 1024 * 1024

// The three dataset slots a run is built from. The slot name doubles as
// the dataset label in error messages ("FC file missing columns: ...").
var datasetKinds = map[string]string{
	"orders": "orders",
	"fc":     "FC",
	"pm":     "PM",
}

var xlsxMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/octet-stream":                                          true,
	"": true,
}

// analysisApp holds the uploaded datasets and finished runs for the HTTP
// surface. Everything lives in memory for the lifetime of the process;
// nothing is persisted between runs.
type analysisApp struct {
	mu       sync.RWMutex
	datasets map[string]*models.Dataset
	runs     map[string]*reports.AnalysisResult

	localFCMap map[string][]string
}

func newAnalysisApp(localFCMap map[string][]string) *analysisApp {
	return &analysisApp{
		datasets:   make(map[string]*models.Dataset),
		runs:       make(map[string]*reports.AnalysisResult),
		localFCMap: localFCMap,
	}
}

func (a *analysisApp) uploadDatasetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		kind := strings.ToLower(strings.TrimSpace(c.Param("kind")))
		name, ok := datasetKinds[kind]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown dataset kind; expected orders, fc or pm"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 10MB limit"})
			return
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type: only .xlsx files are allowed"})
			return
		}
		if !xlsxMimeTypes[fileHeader.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			config.LogError(logger, "uploads.go", "uploadDatasetHandler", "open multipart file", fileHeader.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		defer file.Close()

		dataset, err := models.ReadDataset(file, name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		a.mu.Lock()
		a.datasets[kind] = dataset
		a.mu.Unlock()

		logger.WithFields(logrus.Fields{
			"dataset": kind,
			"file":    fileHeader.Filename,
			"rows":    dataset.RowCount(),
		}).Info("[dataset.upload]")

		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"dataset": kind,
			"rows":    dataset.RowCount(),
			"columns": dataset.Columns,
		}})
	}
}

func (a *analysisApp) datasetStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.mu.RLock()
		defer a.mu.RUnlock()

		status := gin.H{}
		for kind := range datasetKinds {
			if ds, ok := a.datasets[kind]; ok {
				status[kind] = gin.H{"rows": ds.RowCount()}
			} else {
				status[kind] = nil
			}
		}
		c.JSON(http.StatusOK, gin.H{"data": status})
	}
}

func (a *analysisApp) processHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		a.mu.RLock()
		orders := a.datasets["orders"]
		fc := a.datasets["fc"]
		pm := a.datasets["pm"]
		a.mu.RUnlock()

		if orders == nil || fc == nil || pm == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all three datasets (orders, fc, pm) must be uploaded before processing"})
			return
		}

		runId := uuid.NewString()
		ctx := utils.SetRunIdInContext(c.Request.Context(), runId)

		result, err := reports.RunAnalysis(ctx, orders, fc, pm, a.localFCMap)
		if err != nil {
			status := http.StatusInternalServerError
			if utils.IsSchemaError(err) {
				status = http.StatusUnprocessableEntity
			}
			config.LogError(logger, "uploads.go", "processHandler", "run analysis", runId, err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// A failed run leaves prior results untouched; only success is stored.
		a.mu.Lock()
		a.runs[runId] = result
		a.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"runId":       runId,
			"orderLines":         len(result.Orders.Lines),
			"brandJoined":        result.BrandJoined,
			"receiveCentreFound": result.Orders.HasReceiveCentre,
			"reports":     []string{"state-based", "inventory-placement", "combined", "processed-data"},
		}})
	}
}

func (a *analysisApp) downloadReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		runId := c.Param("id")
		name := c.Param("name")

		a.mu.RLock()
		result, ok := a.runs[runId]
		a.mu.RUnlock()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}

		f, err := reports.ReportWorkbook(result, name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filename := reportFilename(name)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			config.LogError(logger, "uploads.go", "downloadReportHandler", "write workbook", filename, err)
		}
	}
}

func reportFilename(name string) string {
	switch name {
	case "state-based":
		return "state_based_ris_analysis.xlsx"
	case "inventory-placement":
		return "inventory_placement_analysis.xlsx"
	case "combined":
		return "complete_ris_analysis_report.xlsx"
	default:
		return "processed_data.xlsx"
	}
}
