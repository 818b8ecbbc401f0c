package repository

import (
	"context"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// CommentRepository persists the discussion thread of a ticket.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error)
}

// ReactionRepository persists per-user like/dislike reactions.
type ReactionRepository interface {
	// Set records the user's reaction, replacing any previous one.
	Set(ctx context.Context, reaction *domain.Reaction) error
	// Remove drops the user's reaction if present.
	Remove(ctx context.Context, ticketID int64, userName string) error
	GetByUser(ctx context.Context, ticketID int64, userName string) (*domain.Reaction, error)
	// Tally recomputes the like/dislike totals for the ticket.
	Tally(ctx context.Context, ticketID int64) (likes, dislikes int, err error)
}

type commentRepository struct {
	db DB
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, author, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, comment.TicketID, comment.Author, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author, content, created_at
        FROM comments WHERE ticket_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

type reactionRepository struct {
	db DB
}

func (r *reactionRepository) Set(ctx context.Context, reaction *domain.Reaction) error {
	const query = `
        INSERT INTO reactions (ticket_id, user_name, kind)
        VALUES ($1,$2,$3)
        ON CONFLICT (ticket_id, user_name) DO UPDATE SET kind=EXCLUDED.kind, created_at=NOW()`
	_, err := r.db.Exec(ctx, query, reaction.TicketID, reaction.UserName, reaction.Kind)
	return err
}

func (r *reactionRepository) Remove(ctx context.Context, ticketID int64, userName string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reactions WHERE ticket_id=$1 AND user_name=$2`, ticketID, userName)
	return err
}

func (r *reactionRepository) GetByUser(ctx context.Context, ticketID int64, userName string) (*domain.Reaction, error) {
	const query = `
        SELECT ticket_id, user_name, kind, created_at
        FROM reactions WHERE ticket_id=$1 AND user_name=$2`
	var reaction domain.Reaction
	if err := r.db.QueryRow(ctx, query, ticketID, userName).
		Scan(&reaction.TicketID, &reaction.UserName, &reaction.Kind, &reaction.CreatedAt); err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Tally(ctx context.Context, ticketID int64) (int, int, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE kind=$2),
            COUNT(*) FILTER (WHERE kind=$3)
        FROM reactions WHERE ticket_id=$1`
	var likes, dislikes int
	if err := r.db.QueryRow(ctx, query, ticketID, domain.ReactionLike, domain.ReactionDislike).
		Scan(&likes, &dislikes); err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
