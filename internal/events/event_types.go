package events

import (
	"time"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSubmitted    EventType = "ticket_submitted"
	EventTicketDispatched   EventType = "ticket_dispatched"
	EventTicketAccepted     EventType = "ticket_accepted"
	EventTicketReplied      EventType = "ticket_replied"
	EventTicketRejected     EventType = "ticket_rejected"
	EventTicketCollaborated EventType = "ticket_collaborated"
	EventTicketClosed       EventType = "ticket_closed"
	EventTicketReopened     EventType = "ticket_reopened"
	EventTicketDeleted      EventType = "ticket_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	Title              string                `json:"title"`
	Category           string                `json:"category"`
	ResponseDepartment string                `json:"response_department"`
	Priority           domain.TicketPriority `json:"priority"`
}

// TransitionPayload describes one workflow transition.
type TransitionPayload struct {
	Action      domain.ActionKind    `json:"action"`
	OldStatus   domain.TicketStatus  `json:"old_status"`
	NewStatus   domain.TicketStatus  `json:"new_status"`
	Display     domain.DisplayStatus `json:"display_status"`
	Departments []string             `json:"departments,omitempty"`
	Persons     []string             `json:"persons,omitempty"`
	Comment     string               `json:"comment,omitempty"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title string `json:"title"`
}
