package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// AssignmentRepository persists department associations. The set for a
// ticket is replaced wholesale on every re-dispatch, never patched.
type AssignmentRepository interface {
	// Replace drops every association for the ticket and inserts the given
	// departments in order; the first becomes primary.
	Replace(ctx context.Context, ticketID int64, departments []string, assignedBy string) error
	// ListByTicket returns associations primary-first, then by assignment
	// order.
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.DepartmentAssignment, error)
	IsAssigned(ctx context.Context, ticketID int64, department string) (bool, error)
	// MarkReplied flags the department's association as replied.
	MarkReplied(ctx context.Context, ticketID int64, department string) error
	// ClearReplied resets the replied flag for the given departments, or
	// for every non-dispatch-center association when none are given.
	ClearReplied(ctx context.Context, ticketID int64, departments []string) error
}

type assignmentRepository struct {
	db DB
}

func (r *assignmentRepository) Replace(ctx context.Context, ticketID int64, departments []string, assignedBy string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM ticket_departments WHERE ticket_id=$1`, ticketID); err != nil {
		return err
	}
	const insert = `
        INSERT INTO ticket_departments (ticket_id, department, is_primary, replied, assigned_by)
        VALUES ($1,$2,$3,false,$4)`
	for i, dept := range departments {
		if _, err := r.db.Exec(ctx, insert, ticketID, dept, i == 0, assignedBy); err != nil {
			return err
		}
	}
	return nil
}

func (r *assignmentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.DepartmentAssignment, error) {
	const query = `
        SELECT id, ticket_id, department, is_primary, replied, assigned_by, assigned_at
        FROM ticket_departments WHERE ticket_id=$1
        ORDER BY is_primary DESC, assigned_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *assignmentRepository) IsAssigned(ctx context.Context, ticketID int64, department string) (bool, error) {
	const query = `SELECT COUNT(*) FROM ticket_departments WHERE ticket_id=$1 AND department=$2`
	var count int
	if err := r.db.QueryRow(ctx, query, ticketID, department).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentRepository) MarkReplied(ctx context.Context, ticketID int64, department string) error {
	const query = `UPDATE ticket_departments SET replied=true WHERE ticket_id=$1 AND department=$2`
	cmd, err := r.db.Exec(ctx, query, ticketID, department)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) ClearReplied(ctx context.Context, ticketID int64, departments []string) error {
	if len(departments) == 0 {
		const query = `UPDATE ticket_departments SET replied=false WHERE ticket_id=$1 AND department<>$2`
		_, err := r.db.Exec(ctx, query, ticketID, domain.DispatchCenter)
		return err
	}
	const query = `UPDATE ticket_departments SET replied=false WHERE ticket_id=$1 AND department=ANY($2)`
	_, err := r.db.Exec(ctx, query, ticketID, departments)
	return err
}

func scanAssignments(rows pgx.Rows) ([]domain.DepartmentAssignment, error) {
	var result []domain.DepartmentAssignment
	for rows.Next() {
		var a domain.DepartmentAssignment
		if err := rows.Scan(&a.ID, &a.TicketID, &a.Department, &a.Primary, &a.Replied, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
