package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// RecordRepository persists the append-only processing audit trail.
type RecordRepository interface {
	Append(ctx context.Context, record *domain.ProcessingRecord) error
	// ListByTicket returns records ordered by creation time ascending.
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.ProcessingRecord, error)
}

type recordRepository struct {
	db DB
}

func (r *recordRepository) Append(ctx context.Context, record *domain.ProcessingRecord) error {
	const query = `
        INSERT INTO processing_records (ticket_id, processor, action, comment, department, target_department, target_person)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		record.TicketID,
		record.Processor,
		record.Action,
		record.Comment,
		record.Department,
		record.TargetDepartment,
		record.TargetPerson,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *recordRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.ProcessingRecord, error) {
	const query = `
        SELECT id, ticket_id, processor, action, comment, department, target_department, target_person, created_at
        FROM processing_records WHERE ticket_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]domain.ProcessingRecord, error) {
	var result []domain.ProcessingRecord
	for rows.Next() {
		var rec domain.ProcessingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.TicketID,
			&rec.Processor,
			&rec.Action,
			&rec.Comment,
			&rec.Department,
			&rec.TargetDepartment,
			&rec.TargetPerson,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
