package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// CreateClient stores a new client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		VatID        string `json:"vat_id"`
		CountryCode  string `json:"country_code"`
		IsEuBusiness bool   `json:"is_eu_business"`
		Email        string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:         req.Name,
		VatID:        req.VatID,
		CountryCode:  req.CountryCode,
		IsEuBusiness: req.IsEuBusiness,
		Email:        req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Client created successfully", client)
}

// ListClients returns all clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Clients retrieved successfully", clients)
}

// GetClient returns one client
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Client retrieved successfully", client)
}

// UpdateClient applies changed fields
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		Name         *string `json:"name"`
		VatID        *string `json:"vat_id"`
		CountryCode  *string `json:"country_code"`
		IsEuBusiness *bool   `json:"is_eu_business"`
		Email        *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, &service.UpdateClientInput{
		Name:         req.Name,
		VatID:        req.VatID,
		CountryCode:  req.CountryCode,
		IsEuBusiness: req.IsEuBusiness,
		Email:        req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Client updated successfully", client)
}

// DeleteClient removes a client
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
