package service

import (
	"testing"

	"github.com/spec-kit/workorder-service/internal/domain"
)

func actor(role domain.Role, department string) domain.Actor {
	return domain.Actor{Name: "tester", Role: role, Department: department}
}

func TestCanManage(t *testing.T) {
	gate := PermissionGate{}

	tests := []struct {
		name        string
		actor       domain.Actor
		ticket      *domain.Ticket
		display     domain.DisplayStatus
		assignments []domain.DepartmentAssignment
		records     []domain.ProcessingRecord
		want        bool
	}{
		{
			name:    "user role has no management rights",
			actor:   actor(domain.RoleUser, "HR"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			want:    false,
		},
		{
			name:    "admin on pending ticket",
			actor:   actor(domain.RoleAdmin, "Legal"),
			ticket:  &domain.Ticket{ProcessingUnit: domain.DispatchCenter},
			display: domain.DisplayPending,
			want:    true,
		},
		{
			name:    "admin on own department ticket",
			actor:   actor(domain.RoleAdmin, "HR"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			want:    true,
		},
		{
			name:        "dispatch-center admin via association",
			actor:       actor(domain.RoleAdmin, domain.DispatchCenter),
			ticket:      &domain.Ticket{ProcessingUnit: "HR"},
			display:     domain.DisplayProcessing,
			assignments: []domain.DepartmentAssignment{{Department: domain.DispatchCenter}, {Department: "HR"}},
			want:        true,
		},
		{
			name:    "admin on collaborative complete reply",
			actor:   actor(domain.RoleAdmin, "Legal"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayRepliedCollaborativeComplete,
			want:    true,
		},
		{
			name:    "admin without any match",
			actor:   actor(domain.RoleAdmin, "Legal"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			want:    false,
		},
		{
			name:    "dispatch-center staff on pending ticket",
			actor:   actor(domain.RoleProcessor, domain.DispatchCenter),
			ticket:  &domain.Ticket{ProcessingUnit: domain.DispatchCenter},
			display: domain.DisplayPending,
			want:    true,
		},
		{
			name:    "dispatch-center staff on replied ticket at the center",
			actor:   actor(domain.RoleManager, domain.DispatchCenter),
			ticket:  &domain.Ticket{ProcessingUnit: domain.DispatchCenter},
			display: domain.DisplayReplied,
			want:    true,
		},
		{
			name:    "staff on own processing ticket",
			actor:   actor(domain.RoleProcessor, "HR"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			want:    true,
		},
		{
			name:        "staff via association membership",
			actor:       actor(domain.RoleProcessor, "IT"),
			ticket:      &domain.Ticket{ProcessingUnit: "HR"},
			display:     domain.DisplayProcessingCollaborative,
			assignments: []domain.DepartmentAssignment{{Department: "HR", Primary: true}, {Department: "IT"}},
			want:        true,
		},
		{
			name:    "staff via collaborate record",
			actor:   actor(domain.RoleProcessor, "Finance"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			records: []domain.ProcessingRecord{{Action: domain.ActionCollaborate, TargetDepartment: "Finance"}},
			want:    true,
		},
		{
			name: "replied tickets belong to the dispatch center",
			// Other matches (association membership) would grant access,
			// but the reply-confirmation carve-out denies it.
			actor:       actor(domain.RoleManager, "HR"),
			ticket:      &domain.Ticket{ProcessingUnit: domain.DispatchCenter},
			display:     domain.DisplayReplied,
			assignments: []domain.DepartmentAssignment{{Department: "HR"}},
			want:        false,
		},
		{
			name:    "staff without any match",
			actor:   actor(domain.RoleProcessor, "Legal"),
			ticket:  &domain.Ticket{ProcessingUnit: "HR"},
			display: domain.DisplayProcessing,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.CanManage(tt.actor, tt.ticket, tt.display, tt.assignments, tt.records)
			if got != tt.want {
				t.Fatalf("CanManage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOperationGates(t *testing.T) {
	gate := PermissionGate{}

	dcProcessor := actor(domain.RoleProcessor, domain.DispatchCenter)
	hrManager := actor(domain.RoleManager, "HR")
	admin := actor(domain.RoleAdmin, "Legal")
	endUser := actor(domain.RoleUser, domain.DispatchCenter)

	if !gate.CanDispatch(dcProcessor) {
		t.Error("dispatch-center processor should dispatch")
	}
	if gate.CanDispatch(hrManager) {
		t.Error("non-dispatch-center manager must not dispatch")
	}
	if !gate.CanDispatch(admin) {
		t.Error("admin should dispatch")
	}
	if gate.CanDispatch(endUser) {
		t.Error("user role must never dispatch")
	}

	// Closing a ticket held by the manager's own department is still a
	// dispatch-center verb.
	if gate.CanConfirm(hrManager) {
		t.Error("non-dispatch-center manager must not confirm replies")
	}
	if !gate.CanConfirm(dcProcessor) || !gate.CanConfirm(admin) {
		t.Error("dispatch center and admins confirm replies")
	}

	if gate.CanReopen(hrManager) || gate.CanReopen(dcProcessor) {
		t.Error("only admins reopen")
	}
	if !gate.CanReopen(admin) {
		t.Error("admin should reopen")
	}

	if gate.CanDelete(dcProcessor) {
		t.Error("only admins delete")
	}
	if !gate.CanDelete(admin) {
		t.Error("admin should delete")
	}
}

func TestSeesAllTickets(t *testing.T) {
	gate := PermissionGate{}

	if !gate.SeesAllTickets(actor(domain.RoleAdmin, "HR")) {
		t.Error("admin sees everything")
	}
	if !gate.SeesAllTickets(actor(domain.RoleProcessor, domain.DispatchCenter)) {
		t.Error("dispatch center sees everything")
	}
	if gate.SeesAllTickets(actor(domain.RoleManager, "HR")) {
		t.Error("department manager is scoped")
	}
}
