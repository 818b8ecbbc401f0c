package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/domain"
)

func newEngagementFixture(t *testing.T) (*EngagementService, *fakeStore, int64) {
	t.Helper()
	store := newFakeStore()
	workflow := newWorkflowService(store)
	id := submitTicket(t, workflow, "")
	svc := NewEngagementService(EngagementDependencies{Store: store, Logger: zap.NewNop()})
	return svc, store, id
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	svc, store, id := newEngagementFixture(t)

	_, err := svc.AddComment(ctx, reporter, id, "   ")
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.AddComment(ctx, reporter, 42, "orphan")
	assertCode(t, err, "NOT_FOUND")

	comment, err := svc.AddComment(ctx, reporter, id, "any update on this?")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.ID == 0 || comment.Author != reporter.Name {
		t.Fatalf("comment = %+v, want persisted with the actor as author", comment)
	}

	ticket, _ := store.tickets.GetByID(ctx, id)
	if ticket.CommentCount != 1 {
		t.Fatalf("comment count = %d, want 1", ticket.CommentCount)
	}
	comments, err := svc.ListComments(ctx, id)
	if err != nil || len(comments) != 1 {
		t.Fatalf("ListComments = %v (%v), want one comment", comments, err)
	}
}

func TestReactToggle(t *testing.T) {
	ctx := context.Background()
	svc, store, id := newEngagementFixture(t)

	if err := svc.React(ctx, reporter, id, "SHRUG"); err == nil {
		t.Fatal("unknown reaction kind should be rejected")
	}

	if err := svc.React(ctx, reporter, id, domain.ReactionLike); err != nil {
		t.Fatalf("React: %v", err)
	}
	ticket, _ := store.tickets.GetByID(ctx, id)
	if ticket.Likes != 1 || ticket.Dislikes != 0 {
		t.Fatalf("likes/dislikes = %d/%d, want 1/0", ticket.Likes, ticket.Dislikes)
	}

	// Switching kinds replaces the reaction rather than stacking it.
	if err := svc.React(ctx, reporter, id, domain.ReactionDislike); err != nil {
		t.Fatalf("React switch: %v", err)
	}
	ticket, _ = store.tickets.GetByID(ctx, id)
	if ticket.Likes != 0 || ticket.Dislikes != 1 {
		t.Fatalf("likes/dislikes = %d/%d, want 0/1", ticket.Likes, ticket.Dislikes)
	}

	// Repeating the same kind withdraws it.
	if err := svc.React(ctx, reporter, id, domain.ReactionDislike); err != nil {
		t.Fatalf("React toggle off: %v", err)
	}
	ticket, _ = store.tickets.GetByID(ctx, id)
	if ticket.Likes != 0 || ticket.Dislikes != 0 {
		t.Fatalf("likes/dislikes = %d/%d, want 0/0 after withdrawal", ticket.Likes, ticket.Dislikes)
	}
}

func TestRecordViewWithoutRedis(t *testing.T) {
	ctx := context.Background()
	svc, store, id := newEngagementFixture(t)

	for i := 0; i < 3; i++ {
		if err := svc.RecordView(ctx, reporter, id); err != nil {
			t.Fatalf("RecordView: %v", err)
		}
	}
	ticket, _ := store.tickets.GetByID(ctx, id)
	if ticket.Views != 3 {
		t.Fatalf("views = %d, want 3 (no throttle without redis)", ticket.Views)
	}
}
