package dto

import (
	"time"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/service"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	Title              string                `json:"title"`
	Category           string                `json:"category"`
	Description        string                `json:"description"`
	ContactInfo        string                `json:"contact_info"`
	SubmitDepartment   string                `json:"submit_department"`
	ResponseDepartment string                `json:"response_department"`
	Priority           domain.TicketPriority `json:"priority"`
}

// RouteRequest payload for dispatch and reassignment.
type RouteRequest struct {
	Departments []string `json:"departments"`
	Persons     []string `json:"persons"`
	Comment     string   `json:"comment"`
}

// ActionRequest payload for accept/reply/reject/close/reopen.
type ActionRequest struct {
	Comment string `json:"comment"`
}

// RejectReplyRequest payload. An empty department list rejects every
// collaborator's reply.
type RejectReplyRequest struct {
	Reason      string   `json:"reason"`
	Departments []string `json:"departments"`
}

// CollaborateRequest payload.
type CollaborateRequest struct {
	Departments []string `json:"departments"`
	Comment     string   `json:"comment"`
}

// CommentRequest payload.
type CommentRequest struct {
	Content string `json:"content"`
}

// ReactionRequest payload.
type ReactionRequest struct {
	Kind domain.ReactionKind `json:"kind"`
}

// TicketSummary response.
type TicketSummary struct {
	ID                 int64                 `json:"id"`
	Title              string                `json:"title"`
	Category           string                `json:"category"`
	Author             string                `json:"author"`
	SubmitDepartment   string                `json:"submit_department"`
	ResponseDepartment string                `json:"response_department"`
	DisplayStatus      domain.DisplayStatus  `json:"display_status"`
	Priority           domain.TicketPriority `json:"priority"`
	ProcessingUnit     string                `json:"processing_unit"`
	ProcessingPerson   string                `json:"processing_person,omitempty"`
	Views              int                   `json:"views"`
	Likes              int                   `json:"likes"`
	Dislikes           int                   `json:"dislikes"`
	CommentCount       int                   `json:"comment_count"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides the full ticket with its audit context.
type TicketDetailResponse struct {
	TicketSummary
	Description string               `json:"description"`
	ContactInfo string               `json:"contact_info,omitempty"`
	Assignments []AssignmentResponse `json:"assignments"`
	Records     []RecordResponse     `json:"records"`
}

// AssignmentResponse represents one department association.
type AssignmentResponse struct {
	Department string    `json:"department"`
	Primary    bool      `json:"primary"`
	Replied    bool      `json:"replied"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}

// RecordResponse represents one processing record.
type RecordResponse struct {
	Processor        string            `json:"processor"`
	Action           domain.ActionKind `json:"action"`
	Comment          string            `json:"comment,omitempty"`
	Department       string            `json:"department,omitempty"`
	TargetDepartment string            `json:"target_department,omitempty"`
	TargetPerson     string            `json:"target_person,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// StatusLogResponse represents one raw-status transition.
type StatusLogResponse struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Operator  string              `json:"operator"`
	Comment   string              `json:"comment,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// CommentResponse represents one comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentDTO metadata.
type AttachmentDTO struct {
	ID        int64  `json:"id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// TransitionResponse reports the outcome of a workflow verb.
type TransitionResponse struct {
	Ticket        TicketSummary        `json:"ticket"`
	DisplayStatus domain.DisplayStatus `json:"display_status"`
}

// SummaryFromView maps a decorated ticket into its summary shape.
func SummaryFromView(view *service.TicketView) TicketSummary {
	t := view.Ticket
	return TicketSummary{
		ID:                 t.ID,
		Title:              t.Title,
		Category:           t.Category,
		Author:             t.Author,
		SubmitDepartment:   t.SubmitDepartment,
		ResponseDepartment: t.ResponseDepartment,
		DisplayStatus:      view.Display,
		Priority:           t.Priority,
		ProcessingUnit:     t.ProcessingUnit,
		ProcessingPerson:   t.ProcessingPerson,
		Views:              t.Views,
		Likes:              t.Likes,
		Dislikes:           t.Dislikes,
		CommentCount:       t.CommentCount,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// DetailFromView maps a decorated ticket into its detail shape.
func DetailFromView(view *service.TicketView) TicketDetailResponse {
	detail := TicketDetailResponse{
		TicketSummary: SummaryFromView(view),
		Description:   view.Ticket.Description,
		ContactInfo:   view.Ticket.ContactInfo,
		Assignments:   make([]AssignmentResponse, 0, len(view.Assignments)),
		Records:       make([]RecordResponse, 0, len(view.Records)),
	}
	for _, a := range view.Assignments {
		detail.Assignments = append(detail.Assignments, AssignmentResponse{
			Department: a.Department,
			Primary:    a.Primary,
			Replied:    a.Replied,
			AssignedBy: a.AssignedBy,
			AssignedAt: a.AssignedAt,
		})
	}
	for _, r := range view.Records {
		detail.Records = append(detail.Records, RecordFromDomain(r))
	}
	return detail
}

// RecordFromDomain maps a processing record into its response shape.
func RecordFromDomain(r domain.ProcessingRecord) RecordResponse {
	return RecordResponse{
		Processor:        r.Processor,
		Action:           r.Action,
		Comment:          r.Comment,
		Department:       r.Department,
		TargetDepartment: r.TargetDepartment,
		TargetPerson:     r.TargetPerson,
		CreatedAt:        r.CreatedAt,
	}
}

// TransitionFromResult maps a transition outcome into its response shape.
func TransitionFromResult(result *service.TransitionResult) TransitionResponse {
	view := service.TicketView{Ticket: result.Ticket, Display: result.Display}
	return TransitionResponse{
		Ticket:        SummaryFromView(&view),
		DisplayStatus: result.Display,
	}
}
