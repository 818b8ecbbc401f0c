package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/service"
)

// DirectoryHandler serves the department directory.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListDepartments GET /departments.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.directory.ListDepartments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departments})
}

// ListProcessors GET /departments/:name/processors.
func (h *DirectoryHandler) ListProcessors(c *fiber.Ctx) error {
	processors, err := h.directory.ListProcessors(c.Context(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": processors})
}
