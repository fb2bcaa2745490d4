package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/domain/accounting"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// ExportHandler serves the DATEV CSV export
type ExportHandler struct {
	datevService *service.DatevService
}

// NewExportHandler creates a new export handler
func NewExportHandler(datevService *service.DatevService) *ExportHandler {
	return &ExportHandler{datevService: datevService}
}

func (h *ExportHandler) exportOptions(c *gin.Context) (service.DatevExportOptions, error) {
	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		return service.DatevExportOptions{}, err
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		return service.DatevExportOptions{}, err
	}

	chart := accounting.Chart(c.DefaultQuery("chart", string(accounting.ChartSKR03)))

	return service.DatevExportOptions{
		StartDate:        startDate,
		EndDate:          endDate,
		Chart:            chart,
		ConsultantNumber: c.Query("consultant_number"),
		ClientNumber:     c.Query("client_number"),
	}, nil
}

// GenerateDatevExport returns the export result as JSON (records, CSV text,
// warnings) for preview in the client.
func (h *ExportHandler) GenerateDatevExport(c *gin.Context) {
	opts, err := h.exportOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.datevService.GenerateExport(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "DATEV export generated successfully", result)
}

// DownloadDatevExport streams the CSV file in the Windows-1252 encoding
// DATEV imports expect.
func (h *ExportHandler) DownloadDatevExport(c *gin.Context) {
	opts, err := h.exportOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.datevService.GenerateExport(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := service.CSVBytes(result.CSV)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, "text/csv; charset=windows-1252", data)
}
