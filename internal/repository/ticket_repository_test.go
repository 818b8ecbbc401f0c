package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// stubDB captures statements and replays canned results so the SQL layer
// can be exercised without a live connection.
type stubDB struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error

	querySQL  string
	queryArgs []any
}

func (s *stubDB) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	s.execSQL = append(s.execSQL, sql)
	s.execArgs = append(s.execArgs, arguments)
	return s.execTag, s.execErr
}

func (s *stubDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.querySQL = sql
	s.queryArgs = args
	return emptyRows{}, nil
}

func (s *stubDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.querySQL = sql
	s.queryArgs = args
	return errRow{err: pgx.ErrNoRows}
}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func strPtr(s string) *string { return &s }

func TestTicketFilterWhereClause(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	tests := []struct {
		name      string
		filter    TicketFilter
		fragments []string
		wantArgs  []any
	}{
		{
			name:      "empty filter matches everything",
			filter:    TicketFilter{},
			fragments: []string{"1=1"},
			wantArgs:  []any{},
		},
		{
			name:      "statuses expand to one placeholder each",
			filter:    TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusPending, domain.TicketStatusAssigned}},
			fragments: []string{"status IN ($1,$2)"},
			wantArgs:  []any{domain.TicketStatusPending, domain.TicketStatusAssigned},
		},
		{
			name: "scalar filters number after statuses",
			filter: TicketFilter{
				Statuses:         []domain.TicketStatus{domain.TicketStatusProcessing},
				Category:         strPtr("repair"),
				SubmitDepartment: strPtr("Warehouse"),
				ProcessingUnit:   strPtr("HR"),
			},
			fragments: []string{"status IN ($1)", "category=$2", "submit_department=$3", "processing_unit=$4"},
			wantArgs:  []any{domain.TicketStatusProcessing, "repair", "Warehouse", "HR"},
		},
		{
			name:   "related department binds a single argument",
			filter: TicketFilter{RelatedDepartment: strPtr("HR")},
			fragments: []string{
				"submit_department=$1",
				"response_department=$1",
				"td.department=$1",
				"pr.department=$1",
			},
			wantArgs: []any{"HR"},
		},
		{
			name:      "created range",
			filter:    TicketFilter{CreatedFrom: &from, CreatedTo: &to},
			fragments: []string{"created_at >= $1", "created_at <= $2"},
			wantArgs:  []any{from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.whereClause()
			for _, fragment := range tt.fragments {
				if !strings.Contains(where, fragment) {
					t.Errorf("predicate %q missing %q", where, fragment)
				}
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestListWithFilterQueryShape(t *testing.T) {
	db := &stubDB{}
	repo := &ticketRepository{db: db}

	if _, err := repo.ListWithFilter(context.Background(), TicketFilter{Offset: -5}); err != nil {
		t.Fatalf("ListWithFilter: %v", err)
	}
	if !strings.Contains(db.querySQL, "ORDER BY created_at DESC, id DESC") {
		t.Errorf("query %q missing newest-first ordering", db.querySQL)
	}
	if !strings.Contains(db.querySQL, "LIMIT 20 OFFSET 0") {
		t.Errorf("query %q should fall back to the default page", db.querySQL)
	}

	unit := "HR"
	if _, err := repo.ListWithFilter(context.Background(), TicketFilter{ProcessingUnit: &unit, Limit: 5, Offset: 10}); err != nil {
		t.Fatalf("ListWithFilter: %v", err)
	}
	if !strings.Contains(db.querySQL, "LIMIT 5 OFFSET 10") {
		t.Errorf("query %q ignores the explicit page", db.querySQL)
	}
	if len(db.queryArgs) != 1 || db.queryArgs[0] != "HR" {
		t.Errorf("query args = %v, want [HR]", db.queryArgs)
	}
}

func TestUpdateWorkflowBumpsVersion(t *testing.T) {
	db := &stubDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := &ticketRepository{db: db}
	ticket := &domain.Ticket{ID: 7, Status: domain.TicketStatusAssigned, Version: 3}

	if err := repo.UpdateWorkflow(context.Background(), ticket); err != nil {
		t.Fatalf("UpdateWorkflow: %v", err)
	}
	if ticket.Version != 4 {
		t.Errorf("version = %d, want 4", ticket.Version)
	}
	stmt := db.execSQL[0]
	if !strings.Contains(stmt, "version=version+1") || !strings.Contains(stmt, "AND version=$7") {
		t.Errorf("update statement %q lacks the version guard", stmt)
	}
	args := db.execArgs[0]
	if args[len(args)-2] != int64(7) || args[len(args)-1] != int64(3) {
		t.Errorf("guard args = %v, want id 7 and the read version 3 last", args)
	}
}

func TestUpdateWorkflowVersionConflict(t *testing.T) {
	db := &stubDB{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := &ticketRepository{db: db}
	ticket := &domain.Ticket{ID: 7, Status: domain.TicketStatusAssigned, Version: 3}

	if err := repo.UpdateWorkflow(context.Background(), ticket); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("UpdateWorkflow error = %v, want ErrVersionConflict", err)
	}
	if ticket.Version != 3 {
		t.Errorf("version = %d, must not advance on a lost race", ticket.Version)
	}
}

func TestDeleteMissingTicket(t *testing.T) {
	db := &stubDB{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := &ticketRepository{db: db}

	if err := repo.Delete(context.Background(), 404); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("Delete error = %v, want pgx.ErrNoRows", err)
	}
}
