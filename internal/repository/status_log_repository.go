package repository

import (
	"context"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// StatusLogRepository persists raw-status transitions for audit display.
type StatusLogRepository interface {
	Append(ctx context.Context, log *domain.StatusLog) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.StatusLog, error)
}

type statusLogRepository struct {
	db DB
}

func (r *statusLogRepository) Append(ctx context.Context, log *domain.StatusLog) error {
	const query = `
        INSERT INTO status_logs (ticket_id, old_status, new_status, operator, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		log.TicketID,
		log.OldStatus,
		log.NewStatus,
		log.Operator,
		log.Comment,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *statusLogRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.StatusLog, error) {
	const query = `
        SELECT id, ticket_id, old_status, new_status, operator, comment, created_at
        FROM status_logs WHERE ticket_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusLog
	for rows.Next() {
		var log domain.StatusLog
		if err := rows.Scan(&log.ID, &log.TicketID, &log.OldStatus, &log.NewStatus, &log.Operator, &log.Comment, &log.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}
