package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the business settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the business settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		BusinessName     *string `json:"business_name"`
		TaxNumber        *string `json:"tax_number"`
		VatID            *string `json:"vat_id"`
		ConsultantNumber *string `json:"consultant_number"`
		ClientNumber     *string `json:"client_number"`
		HomeCountry      *string `json:"home_country"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		BusinessName:     req.BusinessName,
		TaxNumber:        req.TaxNumber,
		VatID:            req.VatID,
		ConsultantNumber: req.ConsultantNumber,
		ClientNumber:     req.ClientNumber,
		HomeCountry:      req.HomeCountry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}
