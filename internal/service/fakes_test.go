package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
)

// fakeStore is an in-memory repository.Store for service tests. It is not
// transactional: WithinTx hands back the same store, which is enough
// because the services validate before they write.
type fakeStore struct {
	tickets     *fakeTicketRepo
	assignments *fakeAssignmentRepo
	records     *fakeRecordRepo
	statusLogs  *fakeStatusLogRepo
	comments    *fakeCommentRepo
	reactions   *fakeReactionRepo
	attachments *fakeAttachmentRepo
}

func newFakeStore() *fakeStore {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return &fakeStore{
		tickets:     &fakeTicketRepo{byID: map[int64]*domain.Ticket{}, now: base},
		assignments: &fakeAssignmentRepo{now: base},
		records:     &fakeRecordRepo{now: base},
		statusLogs:  &fakeStatusLogRepo{now: base},
		comments:    &fakeCommentRepo{now: base},
		reactions:   &fakeReactionRepo{byKey: map[string]domain.Reaction{}},
		attachments: &fakeAttachmentRepo{},
	}
}

func (s *fakeStore) Tickets() repository.TicketRepository         { return s.tickets }
func (s *fakeStore) Assignments() repository.AssignmentRepository { return s.assignments }
func (s *fakeStore) Records() repository.RecordRepository         { return s.records }
func (s *fakeStore) StatusLogs() repository.StatusLogRepository   { return s.statusLogs }
func (s *fakeStore) Comments() repository.CommentRepository       { return s.comments }
func (s *fakeStore) Reactions() repository.ReactionRepository     { return s.reactions }
func (s *fakeStore) Attachments() repository.AttachmentRepository { return s.attachments }

func (s *fakeStore) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type fakeTicketRepo struct {
	byID   map[int64]*domain.Ticket
	nextID int64
	now    time.Time
	// beforeUpdate simulates a concurrent writer sneaking in between the
	// service's read and its guarded write.
	beforeUpdate func(*domain.Ticket)
	lastFilter   *repository.TicketFilter
}

func (r *fakeTicketRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = r.nextID
	ticket.Version = 0
	ticket.CreatedAt = r.tick()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.byID[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = &filter
	result := make([]domain.Ticket, 0, len(r.byID))
	for _, stored := range r.byID {
		result = append(result, *stored)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeTicketRepo) UpdateWorkflow(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.byID[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(stored)
		r.beforeUpdate = nil
	}
	if stored.Version != ticket.Version {
		return repository.ErrVersionConflict
	}
	stored.Status = ticket.Status
	stored.ProcessingUnit = ticket.ProcessingUnit
	stored.ProcessingPerson = ticket.ProcessingPerson
	stored.Resolved = ticket.Resolved
	stored.Processing = ticket.Processing
	stored.Version++
	stored.UpdatedAt = r.tick()
	ticket.Version++
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeTicketRepo) IncrementViews(_ context.Context, id int64) error {
	if stored, ok := r.byID[id]; ok {
		stored.Views++
	}
	return nil
}

func (r *fakeTicketRepo) IncrementCommentCount(_ context.Context, id int64) error {
	if stored, ok := r.byID[id]; ok {
		stored.CommentCount++
	}
	return nil
}

func (r *fakeTicketRepo) UpdateReactionCounts(_ context.Context, id int64, likes, dislikes int) error {
	if stored, ok := r.byID[id]; ok {
		stored.Likes = likes
		stored.Dislikes = dislikes
	}
	return nil
}

type fakeAssignmentRepo struct {
	rows   []domain.DepartmentAssignment
	nextID int64
	now    time.Time
}

func (r *fakeAssignmentRepo) Replace(_ context.Context, ticketID int64, departments []string, assignedBy string) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.TicketID != ticketID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	for i, dept := range departments {
		r.nextID++
		r.now = r.now.Add(time.Second)
		r.rows = append(r.rows, domain.DepartmentAssignment{
			ID:         r.nextID,
			TicketID:   ticketID,
			Department: dept,
			Primary:    i == 0,
			AssignedBy: assignedBy,
			AssignedAt: r.now,
		})
	}
	return nil
}

func (r *fakeAssignmentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.DepartmentAssignment, error) {
	var result []domain.DepartmentAssignment
	for _, row := range r.rows {
		if row.TicketID == ticketID {
			result = append(result, row)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Primary != result[j].Primary {
			return result[i].Primary
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeAssignmentRepo) IsAssigned(_ context.Context, ticketID int64, department string) (bool, error) {
	for _, row := range r.rows {
		if row.TicketID == ticketID && row.Department == department {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssignmentRepo) MarkReplied(_ context.Context, ticketID int64, department string) error {
	for i := range r.rows {
		if r.rows[i].TicketID == ticketID && r.rows[i].Department == department {
			r.rows[i].Replied = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeAssignmentRepo) ClearReplied(_ context.Context, ticketID int64, departments []string) error {
	targeted := func(dept string) bool {
		if len(departments) == 0 {
			return dept != domain.DispatchCenter
		}
		for _, d := range departments {
			if d == dept {
				return true
			}
		}
		return false
	}
	for i := range r.rows {
		if r.rows[i].TicketID == ticketID && targeted(r.rows[i].Department) {
			r.rows[i].Replied = false
		}
	}
	return nil
}

type fakeRecordRepo struct {
	rows   []domain.ProcessingRecord
	nextID int64
	now    time.Time
}

func (r *fakeRecordRepo) Append(_ context.Context, record *domain.ProcessingRecord) error {
	r.nextID++
	r.now = r.now.Add(time.Second)
	record.ID = r.nextID
	record.CreatedAt = r.now
	r.rows = append(r.rows, *record)
	return nil
}

func (r *fakeRecordRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.ProcessingRecord, error) {
	var result []domain.ProcessingRecord
	for _, row := range r.rows {
		if row.TicketID == ticketID {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeStatusLogRepo struct {
	rows   []domain.StatusLog
	nextID int64
	now    time.Time
}

func (r *fakeStatusLogRepo) Append(_ context.Context, log *domain.StatusLog) error {
	r.nextID++
	r.now = r.now.Add(time.Second)
	log.ID = r.nextID
	log.CreatedAt = r.now
	r.rows = append(r.rows, *log)
	return nil
}

func (r *fakeStatusLogRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.StatusLog, error) {
	var result []domain.StatusLog
	for _, row := range r.rows {
		if row.TicketID == ticketID {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeCommentRepo struct {
	rows   []domain.Comment
	nextID int64
	now    time.Time
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.nextID++
	r.now = r.now.Add(time.Second)
	comment.ID = r.nextID
	comment.CreatedAt = r.now
	r.rows = append(r.rows, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, row := range r.rows {
		if row.TicketID == ticketID {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeReactionRepo struct {
	byKey map[string]domain.Reaction
}

func reactionKey(ticketID int64, userName string) string {
	return fmt.Sprintf("%d:%s", ticketID, userName)
}

func (r *fakeReactionRepo) Set(_ context.Context, reaction *domain.Reaction) error {
	r.byKey[reactionKey(reaction.TicketID, reaction.UserName)] = *reaction
	return nil
}

func (r *fakeReactionRepo) Remove(_ context.Context, ticketID int64, userName string) error {
	delete(r.byKey, reactionKey(ticketID, userName))
	return nil
}

func (r *fakeReactionRepo) GetByUser(_ context.Context, ticketID int64, userName string) (*domain.Reaction, error) {
	reaction, ok := r.byKey[reactionKey(ticketID, userName)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &reaction, nil
}

func (r *fakeReactionRepo) Tally(_ context.Context, ticketID int64) (int, int, error) {
	likes, dislikes := 0, 0
	for _, reaction := range r.byKey {
		if reaction.TicketID != ticketID {
			continue
		}
		if reaction.Kind == domain.ReactionLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

type fakeAttachmentRepo struct {
	rows []domain.Attachment
}

func (r *fakeAttachmentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Attachment, error) {
	var result []domain.Attachment
	for _, row := range r.rows {
		if row.TicketID == ticketID {
			result = append(result, row)
		}
	}
	return result, nil
}
