package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// TicketFilter captures list/search parameters.
type TicketFilter struct {
	Statuses []domain.TicketStatus
	Category *string
	// SubmitDepartment filters by the submitting department.
	SubmitDepartment *string
	// ProcessingUnit filters by the current processing department.
	ProcessingUnit *string
	// RelatedDepartment widens the match to every ticket a department has
	// touched: submitted, first-response target, association member, or
	// acted on in the processing history. Used for department-scoped
	// dashboards and statistics.
	RelatedDepartment *string
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	Limit             int
	Offset            int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// UpdateWorkflow writes the workflow-owned columns guarded by the
	// version column. Returns ErrVersionConflict when the row moved on.
	UpdateWorkflow(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	IncrementCommentCount(ctx context.Context, id int64) error
	UpdateReactionCounts(ctx context.Context, id int64, likes, dislikes int) error
}

type ticketRepository struct {
	db DB
}

const ticketColumns = `id, title, category, description, author, contact_info, submit_department,
           response_department, status, priority, processing_unit, processing_person,
           is_resolved, is_processing, views, likes, dislikes, comment_count, version,
           created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, category, description, author, contact_info, submit_department,
            response_department, status, priority, processing_unit, processing_person,
            is_resolved, is_processing)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, version, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.Title,
		ticket.Category,
		ticket.Description,
		ticket.Author,
		ticket.ContactInfo,
		ticket.SubmitDepartment,
		ticket.ResponseDepartment,
		ticket.Status,
		ticket.Priority,
		ticket.ProcessingUnit,
		ticket.ProcessingPerson,
		ticket.Resolved,
		ticket.Processing,
	).Scan(&ticket.ID, &ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	where, args := filter.whereClause()

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// whereClause assembles the WHERE predicate and its positional arguments.
func (f TicketFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, status := range f.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if f.SubmitDepartment != nil {
		args = append(args, *f.SubmitDepartment)
		clauses = append(clauses, fmt.Sprintf("submit_department=$%d", len(args)))
	}
	if f.ProcessingUnit != nil {
		args = append(args, *f.ProcessingUnit)
		clauses = append(clauses, fmt.Sprintf("processing_unit=$%d", len(args)))
	}
	if f.RelatedDepartment != nil {
		args = append(args, *f.RelatedDepartment)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(`(submit_department=%[1]s OR response_department=%[1]s
            OR EXISTS (SELECT 1 FROM ticket_departments td WHERE td.ticket_id=tickets.id AND td.department=%[1]s)
            OR EXISTS (SELECT 1 FROM processing_records pr WHERE pr.ticket_id=tickets.id AND pr.department=%[1]s))`, placeholder))
	}
	if f.CreatedFrom != nil {
		args = append(args, *f.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.CreatedTo != nil {
		args = append(args, *f.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *ticketRepository) UpdateWorkflow(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, processing_unit=$2, processing_person=$3,
            is_resolved=$4, is_processing=$5, version=version+1, updated_at=NOW()
        WHERE id=$6 AND version=$7`
	cmd, err := r.db.Exec(ctx, query,
		ticket.Status,
		ticket.ProcessingUnit,
		ticket.ProcessingPerson,
		ticket.Resolved,
		ticket.Processing,
		ticket.ID,
		ticket.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	ticket.Version++
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE tickets SET views=views+1 WHERE id=$1`, id)
	return err
}

func (r *ticketRepository) IncrementCommentCount(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE tickets SET comment_count=comment_count+1 WHERE id=$1`, id)
	return err
}

func (r *ticketRepository) UpdateReactionCounts(ctx context.Context, id int64, likes, dislikes int) error {
	_, err := r.db.Exec(ctx, `UPDATE tickets SET likes=$1, dislikes=$2 WHERE id=$3`, likes, dislikes, id)
	return err
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Category,
		&ticket.Description,
		&ticket.Author,
		&ticket.ContactInfo,
		&ticket.SubmitDepartment,
		&ticket.ResponseDepartment,
		&ticket.Status,
		&ticket.Priority,
		&ticket.ProcessingUnit,
		&ticket.ProcessingPerson,
		&ticket.Resolved,
		&ticket.Processing,
		&ticket.Views,
		&ticket.Likes,
		&ticket.Dislikes,
		&ticket.CommentCount,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
