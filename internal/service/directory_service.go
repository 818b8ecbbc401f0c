package service

import (
	"context"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// DirectoryService exposes the department directory: the known departments
// and the staff who can process tickets for each.
type DirectoryService struct {
	directory repository.DirectoryRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(directory repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// ListDepartments returns every known department in display order.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]string, error) {
	departments, err := s.directory.ListDepartments(ctx)
	if err != nil {
		return nil, util.NewStoreFailure(err)
	}
	return departments, nil
}

// Processor is a staff member able to handle tickets for a department.
type Processor struct {
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
}

// ListProcessors returns the active staff of a department.
func (s *DirectoryService) ListProcessors(ctx context.Context, department string) ([]Processor, error) {
	if department == "" {
		return nil, util.NewValidationError("department is required", nil)
	}
	users, err := s.directory.ListProcessors(ctx, department)
	if err != nil {
		return nil, util.NewStoreFailure(err)
	}
	processors := make([]Processor, 0, len(users))
	for _, user := range users {
		processors = append(processors, Processor{
			Name:       user.RealName,
			Role:       user.Role,
			Department: user.Department,
		})
	}
	return processors, nil
}
