package service

import (
	"github.com/spec-kit/workorder-service/internal/domain"
)

// PermissionGate decides which transitions an actor may invoke on a
// ticket, from the actor's role and department, the ticket's current
// assignment and the derived display status.
//
// The ladder is user < processor < manager < admin; users have no
// ticket-management permissions at all. Staff visibility is
// department-scoped except for the dispatch center, which needs the
// global triage view.
type PermissionGate struct{}

// CanManage reports whether the actor may operate on the ticket in its
// currently displayed state.
func (PermissionGate) CanManage(actor domain.Actor, ticket *domain.Ticket, display domain.DisplayStatus, assignments []domain.DepartmentAssignment, records []domain.ProcessingRecord) bool {
	if !actor.Role.AtLeast(domain.RoleProcessor) {
		return false
	}

	if actor.Role == domain.RoleAdmin {
		switch {
		case display.Base() == domain.DisplayPending:
			return true
		case ticket.ProcessingUnit == actor.Department:
			return true
		case actor.IsDispatchCenter() && domain.HasDepartment(assignments, domain.DispatchCenter):
			return true
		case display == domain.DisplayRepliedCollaborativeComplete:
			return true
		}
		return false
	}

	// Reply-stage tickets belong exclusively to the dispatch center for
	// confirmation: a plain REPLIED ticket held elsewhere is off limits
	// regardless of any other match.
	if display == domain.DisplayReplied && ticket.ProcessingUnit != actor.Department {
		return false
	}

	if actor.IsDispatchCenter() {
		switch {
		case display.Base() == domain.DisplayPending:
			return true
		case ticket.ProcessingUnit == domain.DispatchCenter:
			return true
		case domain.HasDepartment(assignments, domain.DispatchCenter):
			return true
		case display == domain.DisplayRepliedCollaborativeComplete:
			return true
		}
		return false
	}

	switch {
	case ticket.ProcessingUnit == actor.Department:
		return true
	case domain.HasDepartment(assignments, actor.Department):
		return true
	case domain.IsCollaboratingDepartment(records, actor.Department):
		return true
	}
	return false
}

// CanDispatch reports whether the actor may dispatch or reassign pending
// tickets. Triage is a dispatch-center verb; admins may always do it.
func (PermissionGate) CanDispatch(actor domain.Actor) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role.AtLeast(domain.RoleProcessor) && actor.IsDispatchCenter()
}

// CanConfirm reports whether the actor may act on the reply-confirmation
// step: closing a ticket or rejecting its reply.
func (PermissionGate) CanConfirm(actor domain.Actor) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role.AtLeast(domain.RoleProcessor) && actor.IsDispatchCenter()
}

// CanReopen reports whether the actor may reopen a resolved ticket.
func (PermissionGate) CanReopen(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// CanDelete reports whether the actor may delete a ticket outright.
func (PermissionGate) CanDelete(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// SeesAllTickets reports whether list views and statistics for the actor
// are unscoped. The dispatch center keeps a global view; everyone else is
// limited to tickets their department has touched.
func (PermissionGate) SeesAllTickets(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin || actor.IsDispatchCenter()
}
