package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// EngagementService handles the advisory side data of a ticket: comments,
// like/dislike reactions and view counting. These run outside the workflow
// unit of work so a slow counter never blocks or aborts a transition.
type EngagementService struct {
	store       repository.Store
	redisClient *redis.Client
	logger      *zap.Logger
	viewTTL     time.Duration
}

// EngagementDependencies bundles collaborators for the engagement service.
type EngagementDependencies struct {
	Store       repository.Store
	RedisClient *redis.Client
	Logger      *zap.Logger
	ViewTTL     time.Duration
}

// NewEngagementService constructs the service.
func NewEngagementService(deps EngagementDependencies) *EngagementService {
	ttl := deps.ViewTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EngagementService{
		store:       deps.Store,
		redisClient: deps.RedisClient,
		logger:      deps.Logger,
		viewTTL:     ttl,
	}
}

// AddComment appends a comment and bumps the ticket's comment counter in
// one short transaction.
func (s *EngagementService) AddComment(ctx context.Context, actor domain.Actor, ticketID int64, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.NewValidationError("comment content is required", nil)
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		Author:   actor.Name,
		Content:  strings.TrimSpace(content),
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Tickets().GetByID(ctx, ticketID); err != nil {
			return mapLoadErr(err)
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return util.NewStoreFailure(err)
		}
		if err := tx.Tickets().IncrementCommentCount(ctx, ticketID); err != nil {
			return util.NewStoreFailure(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the ticket's comment thread, oldest first.
func (s *EngagementService) ListComments(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	comments, err := s.store.Comments().ListByTicket(ctx, ticketID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("comment list failed", zap.Error(err))
		}
		return []domain.Comment{}, nil
	}
	return comments, nil
}

// React toggles the user's reaction: a repeated identical reaction removes
// it, a different one replaces it. The tally recompute runs after the
// primary write; its failure is logged and swallowed since the counters are
// advisory.
func (s *EngagementService) React(ctx context.Context, actor domain.Actor, ticketID int64, kind domain.ReactionKind) error {
	if kind != domain.ReactionLike && kind != domain.ReactionDislike {
		return util.NewValidationError("unknown reaction kind", map[string]any{"kind": kind})
	}
	if _, err := s.store.Tickets().GetByID(ctx, ticketID); err != nil {
		return mapLoadErr(err)
	}

	existing, err := s.store.Reactions().GetByUser(ctx, ticketID, actor.Name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return util.NewStoreFailure(err)
	}
	if existing != nil && existing.Kind == kind {
		if err := s.store.Reactions().Remove(ctx, ticketID, actor.Name); err != nil {
			return util.NewStoreFailure(err)
		}
	} else {
		reaction := &domain.Reaction{TicketID: ticketID, UserName: actor.Name, Kind: kind}
		if err := s.store.Reactions().Set(ctx, reaction); err != nil {
			return util.NewStoreFailure(err)
		}
	}

	s.recomputeReactionCounts(ctx, ticketID)
	return nil
}

// recomputeReactionCounts refreshes the denormalized like/dislike totals in
// its own short transaction. Failures here never surface to the caller.
func (s *EngagementService) recomputeReactionCounts(ctx context.Context, ticketID int64) {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		likes, dislikes, err := tx.Reactions().Tally(ctx, ticketID)
		if err != nil {
			return err
		}
		return tx.Tickets().UpdateReactionCounts(ctx, ticketID, likes, dislikes)
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("reaction tally recompute failed",
			zap.Int64("ticket_id", ticketID),
			zap.Error(err))
	}
}

// RecordView bumps the view counter at most once per viewer per TTL window,
// throttled through Redis. Without Redis every view counts.
func (s *EngagementService) RecordView(ctx context.Context, actor domain.Actor, ticketID int64) error {
	if s.redisClient != nil {
		key := fmt.Sprintf("workorder:view:%d:%s", ticketID, actor.Name)
		fresh, err := s.redisClient.SetNX(ctx, key, 1, s.viewTTL).Result()
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("view throttle check failed", zap.Error(err))
			}
		} else if !fresh {
			return nil
		}
	}
	if err := s.store.Tickets().IncrementViews(ctx, ticketID); err != nil {
		return util.NewStoreFailure(err)
	}
	return nil
}
