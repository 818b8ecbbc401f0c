package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/api/dto"
	"github.com/spec-kit/workorder-service/internal/auth"
	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/service"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// TicketsHandler serves submission, reads and engagement endpoints.
type TicketsHandler struct {
	workflow   *service.WorkflowService
	queries    *service.QueryService
	engagement *service.EngagementService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(workflow *service.WorkflowService, queries *service.QueryService, engagement *service.EngagementService) *TicketsHandler {
	return &TicketsHandler{workflow: workflow, queries: queries, engagement: engagement}
}

// Submit POST /tickets.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	result, err := h.workflow.Submit(c.Context(), actor, service.SubmitInput{
		Title:              req.Title,
		Category:           req.Category,
		Description:        req.Description,
		ContactInfo:        req.ContactInfo,
		SubmitDepartment:   req.SubmitDepartment,
		ResponseDepartment: req.ResponseDepartment,
		Priority:           req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TransitionFromResult(result)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	views, err := h.queries.ListTickets(c.Context(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(views))
	for i := range views {
		items = append(items, dto.SummaryFromView(&views[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}

	view, err := h.queries.GetTicket(c.Context(), ticketID)
	if err != nil {
		return err
	}
	// View counting is advisory; never fail the read over it.
	_ = h.engagement.RecordView(c.Context(), actor, ticketID)

	return c.JSON(fiber.Map{"data": dto.DetailFromView(view)})
}

// StatusLogs GET /tickets/:id/status-logs.
func (h *TicketsHandler) StatusLogs(c *fiber.Ctx) error {
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	logs, err := h.queries.GetStatusLogs(c.Context(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.StatusLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, dto.StatusLogResponse{
			OldStatus: log.OldStatus,
			NewStatus: log.NewStatus,
			Operator:  log.Operator,
			Comment:   log.Comment,
			CreatedAt: log.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Records GET /tickets/:id/records.
func (h *TicketsHandler) Records(c *fiber.Ctx) error {
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	records, err := h.queries.GetRecords(c.Context(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.RecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.RecordFromDomain(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Attachments GET /tickets/:id/attachments.
func (h *TicketsHandler) Attachments(c *fiber.Ctx) error {
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	files, err := h.queries.GetAttachments(c.Context(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentDTO, 0, len(files))
	for _, file := range files {
		items = append(items, dto.AttachmentDTO{
			ID:        file.ID,
			FileName:  file.FileName,
			MimeType:  file.MimeType,
			SizeBytes: file.SizeBytes,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	comment, err := h.engagement.AddComment(c.Context(), actor, ticketID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentResponse{
		ID:        comment.ID,
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	comments, err := h.engagement.ListComments(c.Context(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, dto.CommentResponse{
			ID:        comment.ID,
			Author:    comment.Author,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// React POST /tickets/:id/reactions.
func (h *TicketsHandler) React(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.engagement.React(c.Context(), actor, ticketID, req.Kind); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "recorded"}})
}

// Statistics GET /tickets/statistics.
func (h *TicketsHandler) Statistics(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	stats, err := h.queries.ComputeStatistics(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError("invalid ticket id", nil)
	}
	return id, nil
}

func parseListQuery(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("statuses"); raw != "" {
		for _, status := range strings.Split(raw, ",") {
			status = strings.TrimSpace(status)
			if status != "" {
				filter.Statuses = append(filter.Statuses, domain.TicketStatus(status))
			}
		}
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if department := c.Query("department"); department != "" {
		filter.Department = &department
	}
	if from := c.Query("created_from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &ts
		}
	}
	if to := c.Query("created_to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &ts
		}
	}
	return filter
}
