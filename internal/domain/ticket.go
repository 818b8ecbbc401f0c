package domain

import "time"

// TicketStatus enumerates the raw lifecycle column. The raw status is
// updated optimistically by each transition; consumers must go through
// DeriveStatus for the canonical stage.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusAssigned   TicketStatus = "ASSIGNED"
	TicketStatusProcessing TicketStatus = "PROCESSING"
	TicketStatusReplied    TicketStatus = "REPLIED"
	TicketStatusResolved   TicketStatus = "RESOLVED"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// DispatchCenter is the coordinating department that triages pending
// tickets and confirms closure of replied ones.
const DispatchCenter = "Dispatch Center"

// ResponseUndetermined marks a submission whose first-response department
// was not chosen; such tickets start at the dispatch center.
const ResponseUndetermined = "Undetermined"

// Ticket is the aggregate for a reported issue.
type Ticket struct {
	ID                 int64
	Title              string
	Category           string
	Description        string
	Author             string
	ContactInfo        string
	SubmitDepartment   string
	ResponseDepartment string
	Status             TicketStatus
	Priority           TicketPriority
	ProcessingUnit     string
	ProcessingPerson   string
	Resolved           bool
	Processing         bool
	Views              int
	Likes              int
	Dislikes           int
	CommentCount       int
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Comment is a discussion entry attached to a ticket.
type Comment struct {
	ID        int64
	TicketID  int64
	Author    string
	Content   string
	CreatedAt time.Time
}

// ReactionKind enumerates user reactions on a ticket.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "LIKE"
	ReactionDislike ReactionKind = "DISLIKE"
)

// Reaction is one user's like/dislike on a ticket.
type Reaction struct {
	TicketID  int64
	UserName  string
	Kind      ReactionKind
	CreatedAt time.Time
}

// Attachment is file metadata keyed by ticket id. The core only reads it.
type Attachment struct {
	ID        int64
	TicketID  int64
	FileName  string
	FilePath  string
	SizeBytes int64
	MimeType  string
	CreatedAt time.Time
}
