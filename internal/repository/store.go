package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVersionConflict signals a lost optimistic-lock race: the ticket row
// changed between read and write.
var ErrVersionConflict = errors.New("ticket version conflict")

// DB is the querying surface shared by *pgxpool.Pool and pgx.Tx, letting
// repositories run inside or outside a transaction unchanged.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store bundles the repositories over one querying surface and scopes them
// into a single transaction on demand. Every transition operation runs
// inside WithinTx; reads may use the store directly.
type Store interface {
	Tickets() TicketRepository
	Assignments() AssignmentRepository
	Records() RecordRepository
	StatusLogs() StatusLogRepository
	Comments() CommentRepository
	Reactions() ReactionRepository
	Attachments() AttachmentRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type pgxStore struct {
	db   DB
	pool *pgxpool.Pool
}

// NewStore builds the pgx-backed store.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgxStore{db: pool, pool: pool}
}

func (s *pgxStore) Tickets() TicketRepository         { return &ticketRepository{db: s.db} }
func (s *pgxStore) Assignments() AssignmentRepository { return &assignmentRepository{db: s.db} }
func (s *pgxStore) Records() RecordRepository         { return &recordRepository{db: s.db} }
func (s *pgxStore) StatusLogs() StatusLogRepository   { return &statusLogRepository{db: s.db} }
func (s *pgxStore) Comments() CommentRepository       { return &commentRepository{db: s.db} }
func (s *pgxStore) Reactions() ReactionRepository     { return &reactionRepository{db: s.db} }
func (s *pgxStore) Attachments() AttachmentRepository { return &attachmentRepository{db: s.db} }

// WithinTx runs fn against a store scoped to one transaction. A nested
// call reuses the surrounding transaction.
func (s *pgxStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	txStore := &pgxStore{db: tx}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
