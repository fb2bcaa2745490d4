package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// ReportHandler serves the BWA reports
type ReportHandler struct {
	bwaService *service.BwaService
}

// NewReportHandler creates a new report handler
func NewReportHandler(bwaService *service.BwaService) *ReportHandler {
	return &ReportHandler{bwaService: bwaService}
}

// GetYearlyBWA returns the full-year report
func (h *ReportHandler) GetYearlyBWA(c *gin.Context) {
	year, err := parseIntParam(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.bwaService.GenerateBWA(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "BWA report generated successfully", report)
}

// GetMonthlyBWA returns one monthly aggregate
func (h *ReportHandler) GetMonthlyBWA(c *gin.Context) {
	year, err := parseIntParam(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := parseIntParam(c, "month")
	if err != nil {
		response.Error(c, err)
		return
	}

	aggregate, err := h.bwaService.GenerateMonthlyAggregate(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly aggregate generated successfully", aggregate)
}

// ExportBWA streams the yearly report as an XLSX download
func (h *ReportHandler) ExportBWA(c *gin.Context) {
	year, err := parseIntParam(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, filename, err := h.bwaService.ExportXLSX(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
