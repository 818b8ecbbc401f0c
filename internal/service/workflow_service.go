package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/events"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// WorkflowService owns the transition verbs of the ticket lifecycle. Every
// verb validates the displayed status, checks the permission gate, then
// mutates the store atomically: one workflow update guarded by the version
// column, the association change, one processing record and one status log.
// Nothing is written when any step fails.
type WorkflowService struct {
	store      repository.Store
	gate       PermissionGate
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// WorkflowDependencies bundles collaborators for the workflow service.
type WorkflowDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewWorkflowService constructs the service.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	return &WorkflowService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// SubmitInput describes a new ticket submission.
type SubmitInput struct {
	Title              string
	Category           string
	Description        string
	ContactInfo        string
	SubmitDepartment   string
	ResponseDepartment string
	Priority           domain.TicketPriority
}

// TransitionResult reports the ticket after a successful operation together
// with its freshly derived display status.
type TransitionResult struct {
	Ticket  *domain.Ticket
	Display domain.DisplayStatus
}

// ticketState is one consistent read of everything derivation needs.
type ticketState struct {
	Ticket      *domain.Ticket
	Assignments []domain.DepartmentAssignment
	Records     []domain.ProcessingRecord
	Display     domain.DisplayStatus
}

// Submit creates a ticket. A concrete response department short-circuits the
// dispatch center: the ticket starts ASSIGNED to that department with a
// primary association. Otherwise it starts PENDING at the dispatch center.
func (s *WorkflowService) Submit(ctx context.Context, actor domain.Actor, input SubmitInput) (*TransitionResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, util.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, util.NewValidationError("description is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	response := strings.TrimSpace(input.ResponseDepartment)
	if response == "" {
		response = domain.ResponseUndetermined
	}
	directDispatch := response != domain.ResponseUndetermined && response != domain.DispatchCenter

	ticket := &domain.Ticket{
		Title:              strings.TrimSpace(input.Title),
		Category:           input.Category,
		Description:        input.Description,
		Author:             actor.Name,
		ContactInfo:        input.ContactInfo,
		SubmitDepartment:   input.SubmitDepartment,
		ResponseDepartment: response,
		Status:             domain.TicketStatusPending,
		Priority:           priority,
		ProcessingUnit:     domain.DispatchCenter,
	}
	if directDispatch {
		ticket.Status = domain.TicketStatusAssigned
		ticket.ProcessingUnit = response
	}

	var result *TransitionResult
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return util.NewStoreFailure(err)
		}
		if directDispatch {
			if err := tx.Assignments().Replace(ctx, ticket.ID, []string{response}, actor.Name); err != nil {
				return util.NewStoreFailure(err)
			}
			record := &domain.ProcessingRecord{
				TicketID:         ticket.ID,
				Processor:        actor.Name,
				Action:           domain.ActionDispatch,
				Comment:          "routed at submission",
				Department:       input.SubmitDepartment,
				TargetDepartment: response,
			}
			if err := tx.Records().Append(ctx, record); err != nil {
				return util.NewStoreFailure(err)
			}
			log := &domain.StatusLog{
				TicketID:  ticket.ID,
				OldStatus: domain.TicketStatusPending,
				NewStatus: domain.TicketStatusAssigned,
				Operator:  actor.Name,
			}
			if err := tx.StatusLogs().Append(ctx, log); err != nil {
				return util.NewStoreFailure(err)
			}
		}
		st, err := loadState(ctx, tx, ticket.ID)
		if err != nil {
			return err
		}
		result = &TransitionResult{Ticket: st.Ticket, Display: st.Display}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketSubmitted, ticket.ID, actor, events.TicketSubmittedPayload{
		Title:              ticket.Title,
		Category:           ticket.Category,
		ResponseDepartment: ticket.ResponseDepartment,
		Priority:           ticket.Priority,
	})
	return result, nil
}

// Dispatch routes a pending ticket to one or more departments. The first
// department listed becomes primary.
func (s *WorkflowService) Dispatch(ctx context.Context, actor domain.Actor, ticketID int64, departments []string, persons []string, comment string) (*TransitionResult, error) {
	return s.route(ctx, actor, ticketID, departments, persons, comment, domain.ActionDispatch)
}

// Reassign re-routes a pending ticket, including one bounced back by a
// rejection. Same mechanics as Dispatch under a distinct audit action.
func (s *WorkflowService) Reassign(ctx context.Context, actor domain.Actor, ticketID int64, departments []string, persons []string, comment string) (*TransitionResult, error) {
	return s.route(ctx, actor, ticketID, departments, persons, comment, domain.ActionReassign)
}

func (s *WorkflowService) route(ctx context.Context, actor domain.Actor, ticketID int64, departments []string, persons []string, comment string, action domain.ActionKind) (*TransitionResult, error) {
	departments = dedupeDepartments(departments)
	if len(departments) == 0 {
		return nil, util.NewConstraintViolation("at least one target department is required", nil)
	}
	if !s.gate.CanDispatch(actor) {
		return nil, util.NewUnauthorized("dispatching is reserved to the dispatch center")
	}

	eventType := events.EventTicketDispatched
	return s.transition(ctx, actor, ticketID, eventType, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if st.Display != domain.DisplayPending {
			return nil, util.NewInvalidTransition("only pending tickets can be dispatched", map[string]any{"display_status": st.Display})
		}
		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusAssigned
		ticket.ProcessingUnit = departments[0]
		ticket.ProcessingPerson = firstOrEmpty(persons)
		ticket.Processing = false

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		if err := tx.Assignments().Replace(ctx, ticket.ID, departments, actor.Name); err != nil {
			return nil, util.NewStoreFailure(err)
		}
		return &domain.ProcessingRecord{
			TicketID:         ticket.ID,
			Processor:        actor.Name,
			Action:           action,
			Comment:          comment,
			Department:       actor.Department,
			TargetDepartment: strings.Join(departments, ","),
			TargetPerson:     strings.Join(persons, ","),
		}, nil
	})
}

// Accept claims an assigned ticket for the actor's department and person.
func (s *WorkflowService) Accept(ctx context.Context, actor domain.Actor, ticketID int64, comment string) (*TransitionResult, error) {
	return s.transition(ctx, actor, ticketID, events.EventTicketAccepted, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		base := st.Display.Base()
		if base != domain.DisplayAssigned && base != domain.DisplayProcessing {
			return nil, util.NewInvalidTransition("only assigned or processing tickets can be accepted", map[string]any{"display_status": st.Display})
		}
		if !s.gate.CanManage(actor, st.Ticket, st.Display, st.Assignments, st.Records) {
			return nil, util.NewUnauthorized("ticket is not held by your department")
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusProcessing
		ticket.Processing = true
		ticket.ProcessingUnit = actor.Department
		ticket.ProcessingPerson = actor.Name

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		return &domain.ProcessingRecord{
			TicketID:   ticket.ID,
			Processor:  actor.Name,
			Action:     domain.ActionAccept,
			Comment:    comment,
			Department: actor.Department,
		}, nil
	})
}

// Reply records the actor department's answer. The department's association
// is marked replied before the completion check. Single-department replies
// and the final collaborative reply collapse the ticket to the dispatch
// center for confirmation; an incomplete collaborative reply hands the
// ticket to the next department still owing one.
func (s *WorkflowService) Reply(ctx context.Context, actor domain.Actor, ticketID int64, comment string) (*TransitionResult, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, util.NewConstraintViolation("a reply requires a comment", nil)
	}
	return s.transition(ctx, actor, ticketID, events.EventTicketReplied, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if st.Display.Base() != domain.DisplayProcessing && st.Display != domain.DisplayRepliedCollaborativePending {
			return nil, util.NewInvalidTransition("only processing tickets can be replied to", map[string]any{"display_status": st.Display})
		}
		if !s.gate.CanManage(actor, st.Ticket, st.Display, st.Assignments, st.Records) {
			return nil, util.NewUnauthorized("ticket is not held by your department")
		}

		collaborative := domain.IsCollaborative(st.Assignments)
		if err := tx.Assignments().MarkReplied(ctx, ticketID, actor.Department); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewStoreFailure(err)
			}
			if collaborative {
				return nil, util.NewConstraintViolation("your department is not assigned to this ticket", nil)
			}
		}
		assignments, err := tx.Assignments().ListByTicket(ctx, ticketID)
		if err != nil {
			return nil, util.NewStoreFailure(err)
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusReplied
		ticket.Processing = false
		ticket.ProcessingPerson = ""

		if !collaborative || domain.AllReplied(assignments) {
			// Flow to the dispatch center for confirmation.
			if err := tx.Assignments().Replace(ctx, ticketID, []string{domain.DispatchCenter}, actor.Name); err != nil {
				return nil, util.NewStoreFailure(err)
			}
			ticket.ProcessingUnit = domain.DispatchCenter
		} else if next := domain.NextPendingDepartment(assignments, actor.Department); next != "" {
			ticket.ProcessingUnit = next
		}

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		return &domain.ProcessingRecord{
			TicketID:   ticketID,
			Processor:  actor.Name,
			Action:     domain.ActionReply,
			Comment:    comment,
			Department: actor.Department,
		}, nil
	})
}

// RejectAssigned bounces an assigned ticket back to the dispatch center.
func (s *WorkflowService) RejectAssigned(ctx context.Context, actor domain.Actor, ticketID int64, reason string) (*TransitionResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, util.NewConstraintViolation("a rejection requires a reason", nil)
	}
	return s.transition(ctx, actor, ticketID, events.EventTicketRejected, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if st.Display.Base() != domain.DisplayAssigned {
			return nil, util.NewInvalidTransition("only assigned tickets can be rejected", map[string]any{"display_status": st.Display})
		}
		if !s.gate.CanManage(actor, st.Ticket, st.Display, st.Assignments, st.Records) {
			return nil, util.NewUnauthorized("ticket is not held by your department")
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusPending
		ticket.ProcessingUnit = domain.DispatchCenter
		ticket.ProcessingPerson = ""
		ticket.Processing = false

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, reason); err != nil {
			return nil, err
		}
		if err := tx.Assignments().Replace(ctx, ticketID, []string{domain.DispatchCenter}, actor.Name); err != nil {
			return nil, util.NewStoreFailure(err)
		}
		return &domain.ProcessingRecord{
			TicketID:         ticketID,
			Processor:        actor.Name,
			Action:           domain.ActionReject,
			Comment:          reason,
			Department:       actor.Department,
			TargetDepartment: domain.DispatchCenter,
		}, nil
	})
}

// RejectReply sends a replied ticket back into processing. For collaborative
// tickets an empty target list means every department must re-reply; a
// non-empty list clears only the named ones. Non-collaborative rejections
// return the ticket to the department that produced the reply, inferred from
// the record history.
func (s *WorkflowService) RejectReply(ctx context.Context, actor domain.Actor, ticketID int64, reason string, departments []string) (*TransitionResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, util.NewConstraintViolation("a rejection requires a reason", nil)
	}
	if !s.gate.CanConfirm(actor) {
		return nil, util.NewUnauthorized("reply confirmation is reserved to the dispatch center")
	}
	departments = dedupeDepartments(departments)

	return s.transition(ctx, actor, ticketID, events.EventTicketRejected, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if !st.Display.IsReplied() {
			return nil, util.NewInvalidTransition("only replied tickets can have their reply rejected", map[string]any{"display_status": st.Display})
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		target := ""

		if domain.IsCollaborative(st.Assignments) {
			for _, dept := range departments {
				if !domain.HasDepartment(st.Assignments, dept) {
					return nil, util.NewConstraintViolation("department is not assigned to this ticket", map[string]any{"department": dept})
				}
			}
			if err := tx.Assignments().ClearReplied(ctx, ticketID, departments); err != nil {
				return nil, util.NewStoreFailure(err)
			}
			if len(departments) > 0 {
				target = departments[0]
			} else {
				target = domain.PrimaryDepartment(st.Assignments)
			}
		} else {
			target = domain.PreReplyDepartment(st.Records)
			if err := tx.Assignments().Replace(ctx, ticketID, []string{target}, actor.Name); err != nil {
				return nil, util.NewStoreFailure(err)
			}
		}

		ticket.Status = domain.TicketStatusProcessing
		ticket.Processing = true
		ticket.ProcessingUnit = target
		ticket.ProcessingPerson = ""

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, reason); err != nil {
			return nil, err
		}
		return &domain.ProcessingRecord{
			TicketID:         ticketID,
			Processor:        actor.Name,
			Action:           domain.ActionReject,
			Comment:          reason,
			Department:       actor.Department,
			TargetDepartment: strings.Join(departments, ","),
		}, nil
	})
}

// Collaborate pulls additional departments into the ticket. The actor's own
// department leads the resulting association set.
func (s *WorkflowService) Collaborate(ctx context.Context, actor domain.Actor, ticketID int64, departments []string, comment string) (*TransitionResult, error) {
	collaborators := make([]string, 0, len(departments))
	for _, dept := range dedupeDepartments(departments) {
		if dept != actor.Department {
			collaborators = append(collaborators, dept)
		}
	}
	if len(collaborators) == 0 {
		return nil, util.NewConstraintViolation("at least one collaborator department is required", nil)
	}

	return s.transition(ctx, actor, ticketID, events.EventTicketCollaborated, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		base := st.Display.Base()
		if base != domain.DisplayAssigned && base != domain.DisplayProcessing {
			return nil, util.NewInvalidTransition("only assigned or processing tickets can be collaborated on", map[string]any{"display_status": st.Display})
		}
		if !s.gate.CanManage(actor, st.Ticket, st.Display, st.Assignments, st.Records) {
			return nil, util.NewUnauthorized("ticket is not held by your department")
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusProcessing
		ticket.Processing = true
		ticket.ProcessingUnit = actor.Department
		ticket.ProcessingPerson = actor.Name

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		set := append([]string{actor.Department}, collaborators...)
		if err := tx.Assignments().Replace(ctx, ticketID, set, actor.Name); err != nil {
			return nil, util.NewStoreFailure(err)
		}
		return &domain.ProcessingRecord{
			TicketID:         ticketID,
			Processor:        actor.Name,
			Action:           domain.ActionCollaborate,
			Comment:          comment,
			Department:       actor.Department,
			TargetDepartment: strings.Join(collaborators, ","),
		}, nil
	})
}

// Close resolves a replied ticket. Collaborative tickets must be complete.
func (s *WorkflowService) Close(ctx context.Context, actor domain.Actor, ticketID int64, comment string) (*TransitionResult, error) {
	if !s.gate.CanConfirm(actor) {
		return nil, util.NewUnauthorized("closing is reserved to the dispatch center")
	}
	return s.transition(ctx, actor, ticketID, events.EventTicketClosed, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if st.Display != domain.DisplayReplied && st.Display != domain.DisplayRepliedCollaborativeComplete {
			return nil, util.NewInvalidTransition("only fully replied tickets can be closed", map[string]any{"display_status": st.Display})
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusResolved
		ticket.Resolved = true
		ticket.Processing = false

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		return &domain.ProcessingRecord{
			TicketID:   ticketID,
			Processor:  actor.Name,
			Action:     domain.ActionClose,
			Comment:    comment,
			Department: actor.Department,
		}, nil
	})
}

// Reopen returns a resolved ticket to processing. Admin only.
func (s *WorkflowService) Reopen(ctx context.Context, actor domain.Actor, ticketID int64, comment string) (*TransitionResult, error) {
	if !s.gate.CanReopen(actor) {
		return nil, util.NewUnauthorized("reopening is reserved to administrators")
	}
	return s.transition(ctx, actor, ticketID, events.EventTicketReopened, func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error) {
		if st.Display != domain.DisplayResolved {
			return nil, util.NewInvalidTransition("only resolved tickets can be reopened", map[string]any{"display_status": st.Display})
		}

		ticket := st.Ticket
		oldStatus := ticket.Status
		ticket.Status = domain.TicketStatusProcessing
		ticket.Resolved = false
		ticket.Processing = true

		if err := s.applyWorkflow(ctx, tx, ticket, oldStatus, actor.Name, comment); err != nil {
			return nil, err
		}
		return &domain.ProcessingRecord{
			TicketID:   ticketID,
			Processor:  actor.Name,
			Action:     domain.ActionReopen,
			Comment:    comment,
			Department: actor.Department,
		}, nil
	})
}

// Delete removes a ticket and everything hanging off it. Admin only.
func (s *WorkflowService) Delete(ctx context.Context, actor domain.Actor, ticketID int64) error {
	if !s.gate.CanDelete(actor) {
		return util.NewUnauthorized("deleting is reserved to administrators")
	}

	var title string
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ticket, err := tx.Tickets().GetByID(ctx, ticketID)
		if err != nil {
			return mapLoadErr(err)
		}
		title = ticket.Title
		if err := tx.Tickets().Delete(ctx, ticketID); err != nil {
			return mapLoadErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventTicketDeleted, ticketID, actor, events.TicketDeletedPayload{Title: title})
	return nil
}

// transition runs one verb inside a single transaction: load a consistent
// state, let apply validate and mutate, append the returned processing
// record, then re-derive the display status from the post-write state.
func (s *WorkflowService) transition(ctx context.Context, actor domain.Actor, ticketID int64, eventType events.EventType, apply func(tx repository.Store, st *ticketState) (*domain.ProcessingRecord, error)) (*TransitionResult, error) {
	var (
		result  *TransitionResult
		payload events.TransitionPayload
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		st, err := loadState(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		oldStatus := st.Ticket.Status

		record, err := apply(tx, st)
		if err != nil {
			return err
		}
		if err := tx.Records().Append(ctx, record); err != nil {
			return util.NewStoreFailure(err)
		}

		after, err := loadState(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		result = &TransitionResult{Ticket: after.Ticket, Display: after.Display}
		payload = events.TransitionPayload{
			Action:      record.Action,
			OldStatus:   oldStatus,
			NewStatus:   after.Ticket.Status,
			Display:     after.Display,
			Departments: splitTargets(record.TargetDepartment),
			Persons:     splitTargets(record.TargetPerson),
			Comment:     record.Comment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventType, ticketID, actor, payload)
	return result, nil
}

// applyWorkflow validates the raw transition, writes the ticket row under
// the optimistic lock and appends the status log entry.
func (s *WorkflowService) applyWorkflow(ctx context.Context, tx repository.Store, ticket *domain.Ticket, oldStatus domain.TicketStatus, operator, comment string) error {
	if !domain.ValidRawTransition(oldStatus, ticket.Status) {
		return util.NewInvalidTransition("status transition not permitted", map[string]any{
			"from": oldStatus,
			"to":   ticket.Status,
		})
	}
	if err := tx.Tickets().UpdateWorkflow(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return util.NewConflict("ticket was modified concurrently", nil)
		}
		return util.NewStoreFailure(err)
	}
	log := &domain.StatusLog{
		TicketID:  ticket.ID,
		OldStatus: oldStatus,
		NewStatus: ticket.Status,
		Operator:  operator,
		Comment:   comment,
	}
	if err := tx.StatusLogs().Append(ctx, log); err != nil {
		return util.NewStoreFailure(err)
	}
	return nil
}

func (s *WorkflowService) publish(ctx context.Context, eventType events.EventType, ticketID int64, actor domain.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Actor:     events.Actor{Name: actor.Name, Role: actor.Role, Department: actor.Department},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func loadState(ctx context.Context, tx repository.Store, ticketID int64) (*ticketState, error) {
	ticket, err := tx.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	assignments, err := tx.Assignments().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, util.NewStoreFailure(err)
	}
	records, err := tx.Records().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, util.NewStoreFailure(err)
	}
	return &ticketState{
		Ticket:      ticket,
		Assignments: assignments,
		Records:     records,
		Display:     domain.DeriveStatus(ticket, assignments, records),
	}, nil
}

func mapLoadErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return util.NewNotFound("ticket", nil)
	}
	return util.NewStoreFailure(err)
}

func dedupeDepartments(departments []string) []string {
	seen := make(map[string]struct{}, len(departments))
	result := make([]string, 0, len(departments))
	for _, dept := range departments {
		dept = strings.TrimSpace(dept)
		if dept == "" {
			continue
		}
		if _, ok := seen[dept]; ok {
			continue
		}
		seen[dept] = struct{}{}
		result = append(result, dept)
	}
	return result
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func splitTargets(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
