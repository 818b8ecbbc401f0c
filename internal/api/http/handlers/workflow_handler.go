package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/api/dto"
	"github.com/spec-kit/workorder-service/internal/auth"
	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/service"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// WorkflowHandler exposes one endpoint per transition verb.
type WorkflowHandler struct {
	workflow *service.WorkflowService
}

// NewWorkflowHandler constructs the handler.
func NewWorkflowHandler(workflow *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

type verbFunc func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error)

func (h *WorkflowHandler) run(c *fiber.Ctx, verb verbFunc) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	result, err := verb(c, actor, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TransitionFromResult(result)})
}

// Dispatch POST /tickets/:id/dispatch.
func (h *WorkflowHandler) Dispatch(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		var req dto.RouteRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, util.NewValidationError("invalid payload", nil)
		}
		return h.workflow.Dispatch(c.Context(), actor, ticketID, req.Departments, req.Persons, req.Comment)
	})
}

// Reassign POST /tickets/:id/reassign.
func (h *WorkflowHandler) Reassign(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		var req dto.RouteRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, util.NewValidationError("invalid payload", nil)
		}
		return h.workflow.Reassign(c.Context(), actor, ticketID, req.Departments, req.Persons, req.Comment)
	})
}

// Accept POST /tickets/:id/accept.
func (h *WorkflowHandler) Accept(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		req := parseAction(c)
		return h.workflow.Accept(c.Context(), actor, ticketID, req.Comment)
	})
}

// Reply POST /tickets/:id/reply.
func (h *WorkflowHandler) Reply(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		req := parseAction(c)
		return h.workflow.Reply(c.Context(), actor, ticketID, req.Comment)
	})
}

// Reject POST /tickets/:id/reject.
func (h *WorkflowHandler) Reject(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		req := parseAction(c)
		return h.workflow.RejectAssigned(c.Context(), actor, ticketID, req.Comment)
	})
}

// RejectReply POST /tickets/:id/reject-reply.
func (h *WorkflowHandler) RejectReply(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		var req dto.RejectReplyRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, util.NewValidationError("invalid payload", nil)
		}
		return h.workflow.RejectReply(c.Context(), actor, ticketID, req.Reason, req.Departments)
	})
}

// Collaborate POST /tickets/:id/collaborate.
func (h *WorkflowHandler) Collaborate(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		var req dto.CollaborateRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, util.NewValidationError("invalid payload", nil)
		}
		return h.workflow.Collaborate(c.Context(), actor, ticketID, req.Departments, req.Comment)
	})
}

// Close POST /tickets/:id/close.
func (h *WorkflowHandler) Close(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		req := parseAction(c)
		return h.workflow.Close(c.Context(), actor, ticketID, req.Comment)
	})
}

// Reopen POST /tickets/:id/reopen.
func (h *WorkflowHandler) Reopen(c *fiber.Ctx) error {
	return h.run(c, func(c *fiber.Ctx, actor domain.Actor, ticketID int64) (*service.TransitionResult, error) {
		req := parseAction(c)
		return h.workflow.Reopen(c.Context(), actor, ticketID, req.Comment)
	})
}

// Delete DELETE /tickets/:id.
func (h *WorkflowHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	if err := h.workflow.Delete(c.Context(), actor, ticketID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func parseAction(c *fiber.Ctx) dto.ActionRequest {
	var req dto.ActionRequest
	_ = c.BodyParser(&req)
	return req
}
