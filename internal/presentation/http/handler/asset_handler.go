package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// AssetHandler handles fixed-asset HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

type assetRequest struct {
	Name               string  `json:"name" binding:"required"`
	Category           string  `json:"category"`
	PurchaseDate       string  `json:"purchase_date" binding:"required"`
	PurchasePrice      string  `json:"purchase_price" binding:"required"`
	UsefulLifeYears    int     `json:"useful_life_years" binding:"required"`
	SalvageValue       string  `json:"salvage_value"`
	DepreciationMethod string  `json:"depreciation_method"`
}

// CreateAsset books a new asset and generates its depreciation schedule
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		response.BadRequest(c, "purchase_date must be formatted as YYYY-MM-DD")
		return
	}
	purchasePrice, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		response.BadRequest(c, "purchase_price must be a decimal number")
		return
	}
	salvageValue := decimal.Zero
	if req.SalvageValue != "" {
		salvageValue, err = decimal.NewFromString(req.SalvageValue)
		if err != nil {
			response.BadRequest(c, "salvage_value must be a decimal number")
			return
		}
	}
	method := enum.DepreciationMethod(req.DepreciationMethod)
	if req.DepreciationMethod == "" {
		method = enum.DepreciationLinear
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), &service.CreateAssetInput{
		Name:               req.Name,
		Category:           req.Category,
		PurchaseDate:       purchaseDate,
		PurchasePrice:      purchasePrice,
		UsefulLifeYears:    req.UsefulLifeYears,
		SalvageValue:       salvageValue,
		DepreciationMethod: method,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Asset created successfully", asset)
}

// UpdateAsset applies changes and regenerates the schedule when needed
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		Name               *string `json:"name"`
		Category           *string `json:"category"`
		PurchaseDate       *string `json:"purchase_date"`
		PurchasePrice      *string `json:"purchase_price"`
		UsefulLifeYears    *int    `json:"useful_life_years"`
		SalvageValue       *string `json:"salvage_value"`
		DepreciationMethod *string `json:"depreciation_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateAssetInput{
		Name:            req.Name,
		Category:        req.Category,
		UsefulLifeYears: req.UsefulLifeYears,
	}
	if req.PurchaseDate != nil {
		date, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			response.BadRequest(c, "purchase_date must be formatted as YYYY-MM-DD")
			return
		}
		input.PurchaseDate = &date
	}
	if req.PurchasePrice != nil {
		price, err := decimal.NewFromString(*req.PurchasePrice)
		if err != nil {
			response.BadRequest(c, "purchase_price must be a decimal number")
			return
		}
		input.PurchasePrice = &price
	}
	if req.SalvageValue != nil {
		salvage, err := decimal.NewFromString(*req.SalvageValue)
		if err != nil {
			response.BadRequest(c, "salvage_value must be a decimal number")
			return
		}
		input.SalvageValue = &salvage
	}
	if req.DepreciationMethod != nil {
		method := enum.DepreciationMethod(*req.DepreciationMethod)
		input.DepreciationMethod = &method
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Asset updated successfully", asset)
}

// GetAsset returns an asset with its schedule
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Asset retrieved successfully", asset)
}

// ListAssets returns all assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assets retrieved successfully", assets)
}

// DeleteAsset removes an asset and its schedule
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
