package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/application/service"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/presentation/http/dto/response"
)

// ElsterHandler serves USt-VA/ZM calculation, XML generation and the
// submission audit trail.
type ElsterHandler struct {
	ustVaService      *service.UstVaService
	zmService         *service.ZmService
	submissionService *service.SubmissionService
}

// NewElsterHandler creates a new ELSTER handler
func NewElsterHandler(
	ustVaService *service.UstVaService,
	zmService *service.ZmService,
	submissionService *service.SubmissionService,
) *ElsterHandler {
	return &ElsterHandler{
		ustVaService:      ustVaService,
		zmService:         zmService,
		submissionService: submissionService,
	}
}

// CalculateUstVa computes the VAT return for a period
func (h *ElsterHandler) CalculateUstVa(c *gin.Context) {
	var req struct {
		Year       int    `form:"year" binding:"required"`
		Period     string `form:"period" binding:"required"`
		PeriodType string `form:"period_type"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "year and period are required")
		return
	}

	periodType := enum.PeriodType(req.PeriodType)
	if req.PeriodType == "" {
		periodType = enum.PeriodQuarterly
	}
	if !periodType.Valid() {
		response.BadRequest(c, "period_type must be monthly or quarterly")
		return
	}

	result, err := h.ustVaService.Calculate(c.Request.Context(), req.Year, req.Period, periodType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "USt-VA calculated successfully", result)
}

// GenerateUstVaXml computes the VAT return and records a draft submission
// with the serialized XML.
func (h *ElsterHandler) GenerateUstVaXml(c *gin.Context) {
	var req struct {
		Year       int    `json:"year" binding:"required"`
		Period     string `json:"period" binding:"required"`
		PeriodType string `json:"period_type"`
		TestMode   bool   `json:"test_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	periodType := enum.PeriodType(req.PeriodType)
	if req.PeriodType == "" {
		periodType = enum.PeriodQuarterly
	}
	if !periodType.Valid() {
		response.BadRequest(c, "period_type must be monthly or quarterly")
		return
	}

	result, err := h.ustVaService.Calculate(c.Request.Context(), req.Year, req.Period, periodType)
	if err != nil {
		response.Error(c, err)
		return
	}
	xmlPayload, err := h.ustVaService.BuildXML(c.Request.Context(), result)
	if err != nil {
		response.Error(c, err)
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), &service.CreateSubmissionInput{
		Type:       enum.SubmissionUstVa,
		Year:       req.Year,
		Period:     req.Period,
		XMLPayload: xmlPayload,
		TestMode:   req.TestMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "USt-VA XML generated successfully", gin.H{
		"result":     result,
		"xml":        xmlPayload,
		"submission": submission,
	})
}

// CalculateZm computes the quarterly EU sales summary
func (h *ElsterHandler) CalculateZm(c *gin.Context) {
	var req struct {
		Year    int `form:"year" binding:"required"`
		Quarter int `form:"quarter" binding:"required"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "year and quarter are required")
		return
	}

	result, err := h.zmService.Calculate(c.Request.Context(), req.Year, req.Quarter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "ZM calculated successfully", result)
}

// GenerateZmXml computes the ZM and records a draft submission.
func (h *ElsterHandler) GenerateZmXml(c *gin.Context) {
	var req struct {
		Year     int  `json:"year" binding:"required"`
		Quarter  int  `json:"quarter" binding:"required"`
		TestMode bool `json:"test_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.zmService.Calculate(c.Request.Context(), req.Year, req.Quarter)
	if err != nil {
		response.Error(c, err)
		return
	}
	xmlPayload, err := h.zmService.BuildXML(result)
	if err != nil {
		response.Error(c, err)
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), &service.CreateSubmissionInput{
		Type:       enum.SubmissionZm,
		Year:       req.Year,
		Period:     fmt.Sprintf("Q%d", req.Quarter),
		XMLPayload: xmlPayload,
		TestMode:   req.TestMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "ZM XML generated successfully", gin.H{
		"result":     result,
		"xml":        xmlPayload,
		"submission": submission,
	})
}

// ListSubmissions returns the filing audit trail
func (h *ElsterHandler) ListSubmissions(c *gin.Context) {
	params := &repository.SubmissionFilterParams{}

	if raw := c.Query("type"); raw != "" {
		t := enum.SubmissionType(raw)
		if !t.Valid() {
			response.BadRequest(c, "type must be UStVA or ZM")
			return
		}
		params.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := enum.SubmissionStatus(raw)
		if !s.Valid() {
			response.BadRequest(c, "invalid status filter")
			return
		}
		params.Status = &s
	}
	var yearReq struct {
		Year *int `form:"year"`
	}
	if err := c.ShouldBindQuery(&yearReq); err == nil && yearReq.Year != nil {
		params.Year = yearReq.Year
	}

	submissions, err := h.submissionService.ListSubmissions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Submissions retrieved successfully", submissions)
}

// GetSubmission returns one filing record
func (h *ElsterHandler) GetSubmission(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Submission retrieved successfully", submission)
}

// UpdateSubmissionStatus applies a lifecycle transition
func (h *ElsterHandler) UpdateSubmissionStatus(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		Status         string `json:"status" binding:"required"`
		TransferTicket string `json:"transfer_ticket"`
		ErrorMessage   string `json:"error_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.UpdateStatus(c.Request.Context(), id, &service.UpdateStatusInput{
		Status:         enum.SubmissionStatus(req.Status),
		TransferTicket: req.TransferTicket,
		ErrorMessage:   req.ErrorMessage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Submission status updated successfully", submission)
}
