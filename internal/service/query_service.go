package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// QueryService serves the read side: single tickets with their derived
// status, filtered lists, audit trails and per-stage statistics. List
// failures degrade to empty results so dashboards survive a bad row.
type QueryService struct {
	store  repository.Store
	gate   PermissionGate
	logger *zap.Logger
}

// QueryDependencies bundles collaborators for the query service.
type QueryDependencies struct {
	Store  repository.Store
	Logger *zap.Logger
}

// NewQueryService constructs the service.
func NewQueryService(deps QueryDependencies) *QueryService {
	return &QueryService{store: deps.Store, logger: deps.Logger}
}

// TicketView is a ticket joined with everything derivation consumed.
type TicketView struct {
	Ticket      *domain.Ticket
	Display     domain.DisplayStatus
	Assignments []domain.DepartmentAssignment
	Records     []domain.ProcessingRecord
}

// ListFilter captures caller-facing list parameters. Scoping by actor
// visibility happens on top of it.
type ListFilter struct {
	Statuses    []domain.TicketStatus
	Category    *string
	Department  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// Statistics counts tickets by canonical stage within the actor's scope.
type Statistics struct {
	Total      int                          `json:"total"`
	ByStatus   map[domain.DisplayStatus]int `json:"by_status"`
	Department string                       `json:"department,omitempty"`
}

// GetTicket loads one ticket with its derived display status.
func (s *QueryService) GetTicket(ctx context.Context, ticketID int64) (*TicketView, error) {
	st, err := loadState(ctx, s.store, ticketID)
	if err != nil {
		return nil, err
	}
	return &TicketView{
		Ticket:      st.Ticket,
		Display:     st.Display,
		Assignments: st.Assignments,
		Records:     st.Records,
	}, nil
}

// ListTickets returns tickets matching the filter within the actor's
// visibility, newest first, each with its derived display status.
func (s *QueryService) ListTickets(ctx context.Context, actor domain.Actor, filter ListFilter) ([]TicketView, error) {
	repoFilter := repository.TicketFilter{
		Statuses:    filter.Statuses,
		Category:    filter.Category,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if filter.Department != nil {
		repoFilter.ProcessingUnit = filter.Department
	}
	if !s.gate.SeesAllTickets(actor) {
		dept := actor.Department
		repoFilter.RelatedDepartment = &dept
	}

	tickets, err := s.store.Tickets().ListWithFilter(ctx, repoFilter)
	if err != nil {
		s.logWarn("ticket list failed", err)
		return []TicketView{}, nil
	}

	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		view, err := s.decorate(ctx, &tickets[i])
		if err != nil {
			s.logWarn("ticket decoration failed", err)
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetAssociations returns the ticket's department associations in
// primary-first order.
func (s *QueryService) GetAssociations(ctx context.Context, ticketID int64) ([]domain.DepartmentAssignment, error) {
	assignments, err := s.store.Assignments().ListByTicket(ctx, ticketID)
	if err != nil {
		s.logWarn("association list failed", err)
		return []domain.DepartmentAssignment{}, nil
	}
	return assignments, nil
}

// GetRecords returns the ticket's processing records in creation order.
func (s *QueryService) GetRecords(ctx context.Context, ticketID int64) ([]domain.ProcessingRecord, error) {
	records, err := s.store.Records().ListByTicket(ctx, ticketID)
	if err != nil {
		s.logWarn("record list failed", err)
		return []domain.ProcessingRecord{}, nil
	}
	return records, nil
}

// GetStatusLogs returns the ticket's raw-status audit trail.
func (s *QueryService) GetStatusLogs(ctx context.Context, ticketID int64) ([]domain.StatusLog, error) {
	logs, err := s.store.StatusLogs().ListByTicket(ctx, ticketID)
	if err != nil {
		s.logWarn("status log list failed", err)
		return []domain.StatusLog{}, nil
	}
	return logs, nil
}

// GetAttachments returns the ticket's file metadata.
func (s *QueryService) GetAttachments(ctx context.Context, ticketID int64) ([]domain.Attachment, error) {
	files, err := s.store.Attachments().ListByTicket(ctx, ticketID)
	if err != nil {
		s.logWarn("attachment list failed", err)
		return []domain.Attachment{}, nil
	}
	return files, nil
}

// ComputeDisplayStatus derives the display status of a single ticket.
func (s *QueryService) ComputeDisplayStatus(ctx context.Context, ticketID int64) (domain.DisplayStatus, error) {
	st, err := loadState(ctx, s.store, ticketID)
	if err != nil {
		return "", err
	}
	return st.Display, nil
}

// ComputeStatistics counts tickets by canonical stage, scoped to the
// actor's visibility: admins and the dispatch center see everything, other
// departments see only tickets they have touched.
func (s *QueryService) ComputeStatistics(ctx context.Context, actor domain.Actor) (*Statistics, error) {
	filter := repository.TicketFilter{Limit: statisticsScanLimit}
	stats := &Statistics{ByStatus: map[domain.DisplayStatus]int{}}
	if !s.gate.SeesAllTickets(actor) {
		dept := actor.Department
		filter.RelatedDepartment = &dept
		stats.Department = dept
	}

	tickets, err := s.store.Tickets().ListWithFilter(ctx, filter)
	if err != nil {
		return nil, util.NewStoreFailure(err)
	}
	for i := range tickets {
		view, err := s.decorate(ctx, &tickets[i])
		if err != nil {
			s.logWarn("ticket decoration failed", err)
			continue
		}
		stats.ByStatus[view.Display.Base()]++
		stats.Total++
	}
	return stats, nil
}

// statisticsScanLimit caps the derivation scan for the dashboard counters.
const statisticsScanLimit = 10000

func (s *QueryService) decorate(ctx context.Context, ticket *domain.Ticket) (*TicketView, error) {
	assignments, err := s.store.Assignments().ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.Records().ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketView{
		Ticket:      ticket,
		Display:     domain.DeriveStatus(ticket, assignments, records),
		Assignments: assignments,
		Records:     records,
	}, nil
}

func (s *QueryService) logWarn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, zap.Error(err))
	}
}
