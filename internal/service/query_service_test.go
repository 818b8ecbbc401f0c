package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/domain"
)

func newQueryFixture(t *testing.T) (*QueryService, *WorkflowService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	workflow := newWorkflowService(store)
	queries := NewQueryService(QueryDependencies{Store: store, Logger: zap.NewNop()})
	return queries, workflow, store
}

func TestGetTicket(t *testing.T) {
	ctx := context.Background()
	queries, workflow, _ := newQueryFixture(t)
	id := submitTicket(t, workflow, "HR")

	view, err := queries.GetTicket(ctx, id)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if view.Display != domain.DisplayAssigned {
		t.Errorf("display = %s, want ASSIGNED", view.Display)
	}
	if len(view.Assignments) != 1 || len(view.Records) != 1 {
		t.Errorf("assignments/records = %d/%d, want 1/1", len(view.Assignments), len(view.Records))
	}

	_, err = queries.GetTicket(ctx, 42)
	assertCode(t, err, "NOT_FOUND")
}

func TestListTicketsScoping(t *testing.T) {
	ctx := context.Background()
	queries, workflow, store := newQueryFixture(t)
	submitTicket(t, workflow, "HR")

	if _, err := queries.ListTickets(ctx, sysAdmin, ListFilter{}); err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if store.tickets.lastFilter.RelatedDepartment != nil {
		t.Error("admin listing must not be scoped to a department")
	}

	if _, err := queries.ListTickets(ctx, hrManager, ListFilter{}); err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	scope := store.tickets.lastFilter.RelatedDepartment
	if scope == nil || *scope != "HR" {
		t.Errorf("manager listing scope = %v, want HR", scope)
	}
}

func TestComputeStatistics(t *testing.T) {
	ctx := context.Background()
	queries, workflow, _ := newQueryFixture(t)

	submitTicket(t, workflow, "")   // stays PENDING
	submitTicket(t, workflow, "HR") // stays ASSIGNED
	processingID := submitTicket(t, workflow, "HR")
	if _, err := workflow.Accept(ctx, hrManager, processingID, ""); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	stats, err := queries.ComputeStatistics(ctx, sysAdmin)
	if err != nil {
		t.Fatalf("ComputeStatistics: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	want := map[domain.DisplayStatus]int{
		domain.DisplayPending:    1,
		domain.DisplayAssigned:   1,
		domain.DisplayProcessing: 1,
	}
	for status, count := range want {
		if stats.ByStatus[status] != count {
			t.Errorf("ByStatus[%s] = %d, want %d", status, stats.ByStatus[status], count)
		}
	}
}

func TestComputeDisplayStatus(t *testing.T) {
	ctx := context.Background()
	queries, workflow, _ := newQueryFixture(t)
	id := submitTicket(t, workflow, "")

	display, err := queries.ComputeDisplayStatus(ctx, id)
	if err != nil {
		t.Fatalf("ComputeDisplayStatus: %v", err)
	}
	if display != domain.DisplayPending {
		t.Errorf("display = %s, want PENDING", display)
	}
}
