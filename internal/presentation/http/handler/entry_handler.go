package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
	"github.com/kontorhq/kontor-api/pkg/pagination"
)

// EntryHandler handles ledger entries and duplicate detection
type EntryHandler struct {
	ledgerService    *service.LedgerService
	duplicateService *service.DuplicateService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(ledgerService *service.LedgerService, duplicateService *service.DuplicateService) *EntryHandler {
	return &EntryHandler{
		ledgerService:    ledgerService,
		duplicateService: duplicateService,
	}
}

func listParams(c *gin.Context) (*repository.LedgerFilterParams, error) {
	params := &repository.LedgerFilterParams{
		Pagination: pagination.DefaultPagination(),
		Category:   c.Query("category"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		return nil, err
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		params.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		params.EndDate = &end
	}
	return params, nil
}

// CreateIncome books a revenue row
func (h *EntryHandler) CreateIncome(c *gin.Context) {
	var req struct {
		Date         string  `json:"date" binding:"required"`
		Description  string  `json:"description" binding:"required"`
		ClientID     *string `json:"client_id"`
		NetAmount    string  `json:"net_amount" binding:"required"`
		VatRate      int     `json:"vat_rate"`
		EuerCategory string  `json:"euer_category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}
	net, err := decimal.NewFromString(req.NetAmount)
	if err != nil {
		response.BadRequest(c, "net_amount must be a decimal number")
		return
	}
	var clientID *uuid.UUID
	if req.ClientID != nil {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "client_id must be a UUID")
			return
		}
		clientID = &id
	}

	entry, err := h.ledgerService.CreateIncome(c.Request.Context(), &service.CreateIncomeInput{
		Date:         date,
		Description:  req.Description,
		ClientID:     clientID,
		NetAmount:    net,
		VatRate:      enum.VatRate(req.VatRate),
		EuerCategory: req.EuerCategory,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Income entry created successfully", entry)
}

// CreateExpense books an expense row
func (h *EntryHandler) CreateExpense(c *gin.Context) {
	var req struct {
		Date              string `json:"date" binding:"required"`
		Description       string `json:"description" binding:"required"`
		Vendor            string `json:"vendor"`
		NetAmount         string `json:"net_amount" binding:"required"`
		VatRate           int    `json:"vat_rate"`
		Category          string `json:"category" binding:"required"`
		EuerLine          int    `json:"euer_line"`
		DeductiblePercent *int   `json:"deductible_percent"`
		PaymentMethod     string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}
	net, err := decimal.NewFromString(req.NetAmount)
	if err != nil {
		response.BadRequest(c, "net_amount must be a decimal number")
		return
	}

	entry, err := h.ledgerService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		Date:              date,
		Description:       req.Description,
		Vendor:            req.Vendor,
		NetAmount:         net,
		VatRate:           enum.VatRate(req.VatRate),
		Category:          req.Category,
		EuerLine:          req.EuerLine,
		DeductiblePercent: req.DeductiblePercent,
		PaymentMethod:     enum.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense entry created successfully", entry)
}

// ListIncome returns a paginated income listing
func (h *EntryHandler) ListIncome(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.ledgerService.ListIncome(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Income entries retrieved successfully", result)
}

// ListExpenses returns a paginated expense listing
func (h *EntryHandler) ListExpenses(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.ledgerService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Expense entries retrieved successfully", result)
}

// GetIncome returns one income entry
func (h *EntryHandler) GetIncome(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.ledgerService.GetIncome(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Income entry retrieved successfully", entry)
}

// GetExpense returns one expense entry
func (h *EntryHandler) GetExpense(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.ledgerService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense entry retrieved successfully", entry)
}

func entryTypeParam(c *gin.Context) (enum.EntryType, bool) {
	t := enum.EntryType(c.Param("type"))
	if !t.Valid() {
		response.BadRequest(c, "type must be income or expense")
		return "", false
	}
	return t, true
}

// DeleteEntry soft-deletes a ledger row
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entryType, ok := entryTypeParam(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entryType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RestoreEntry clears the soft-delete flag
func (h *EntryHandler) RestoreEntry(c *gin.Context) {
	entryType, ok := entryTypeParam(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ledgerService.RestoreEntry(c.Request.Context(), entryType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry restored successfully", nil)
}

// FindDuplicates scores potential duplicates for a prospective entry
func (h *EntryHandler) FindDuplicates(c *gin.Context) {
	entryType, ok := entryTypeParam(c)
	if !ok {
		return
	}

	var req struct {
		Amount    string  `form:"amount" binding:"required"`
		Date      string  `form:"date" binding:"required"`
		Partner   string  `form:"partner"`
		ExcludeID *string `form:"exclude_id"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "amount and date are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(c, "amount must be a decimal number")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}
	var excludeID *uuid.UUID
	if req.ExcludeID != nil {
		id, err := uuid.Parse(*req.ExcludeID)
		if err != nil {
			response.BadRequest(c, "exclude_id must be a UUID")
			return
		}
		excludeID = &id
	}

	candidates, err := h.duplicateService.FindCandidates(c.Request.Context(), entryType, amount, date, req.Partner, excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Duplicate candidates retrieved successfully", candidates)
}

// MarkDuplicate confirms an entry as a duplicate of another
func (h *EntryHandler) MarkDuplicate(c *gin.Context) {
	entryType, ok := entryTypeParam(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		DuplicateOfID string `json:"duplicate_of_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "duplicate_of_id is required")
		return
	}
	duplicateOfID, err := uuid.Parse(req.DuplicateOfID)
	if err != nil {
		response.BadRequest(c, "duplicate_of_id must be a UUID")
		return
	}

	if err := h.duplicateService.MarkDuplicate(c.Request.Context(), entryType, id, duplicateOfID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry marked as duplicate", nil)
}

// UnmarkDuplicate clears the duplicate flag
func (h *EntryHandler) UnmarkDuplicate(c *gin.Context) {
	entryType, ok := entryTypeParam(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.duplicateService.UnmarkDuplicate(c.Request.Context(), entryType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Duplicate flag cleared", nil)
}
