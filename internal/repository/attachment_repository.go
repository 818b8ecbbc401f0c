package repository

import (
	"context"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// AttachmentRepository lists file metadata for a ticket. Upload storage
// lives outside the core; this surface is read-only.
type AttachmentRepository interface {
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	db DB
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error) {
	const query = `
        SELECT id, ticket_id, file_name, file_path, size_bytes, mime_type, created_at
        FROM ticket_files WHERE ticket_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(&att.ID, &att.TicketID, &att.FileName, &att.FilePath, &att.SizeBytes, &att.MimeType, &att.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
