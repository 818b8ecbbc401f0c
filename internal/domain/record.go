package domain

import "time"

// ActionKind tags a processing record with the operation it audits. State
// logic keys off this field; the free-text comment is display only.
type ActionKind string

const (
	ActionDispatch    ActionKind = "DISPATCH"
	ActionReassign    ActionKind = "REASSIGN"
	ActionAccept      ActionKind = "ACCEPT"
	ActionReply       ActionKind = "REPLY"
	ActionReject      ActionKind = "REJECT"
	ActionCollaborate ActionKind = "COLLABORATE"
	ActionClose       ActionKind = "CLOSE"
	ActionReopen      ActionKind = "REOPEN"
)

// ProcessingRecord is one append-only audit entry of an action taken on a
// ticket, ordered by creation time.
type ProcessingRecord struct {
	ID               int64
	TicketID         int64
	Processor        string
	Action           ActionKind
	Comment          string
	Department       string
	TargetDepartment string
	TargetPerson     string
	CreatedAt        time.Time
}

// StatusLog is one append-only raw-status transition entry. It feeds the
// audit trail display, never derivation.
type StatusLog struct {
	ID        int64
	TicketID  int64
	OldStatus TicketStatus
	NewStatus TicketStatus
	Operator  string
	Comment   string
	CreatedAt time.Time
}

// IsCollaboratingDepartment reports whether the department was pulled into
// the ticket through a collaborate action.
func IsCollaboratingDepartment(records []ProcessingRecord, department string) bool {
	for _, r := range records {
		if r.Action == ActionCollaborate && (r.Department == department || r.TargetDepartment == department) {
			return true
		}
	}
	return false
}

// LatestAction returns the most recent record, or nil for an empty history.
// Records are assumed ordered by creation time ascending.
func LatestAction(records []ProcessingRecord) *ProcessingRecord {
	if len(records) == 0 {
		return nil
	}
	return &records[len(records)-1]
}

// PreReplyDepartment infers which department produced the most recent
// reply: the acting department of the latest REPLY record, falling back to
// the target of the latest dispatch or reassignment, then the dispatch
// center.
func PreReplyDepartment(records []ProcessingRecord) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Action == ActionReply && records[i].Department != "" {
			return records[i].Department
		}
	}
	for i := len(records) - 1; i >= 0; i-- {
		if (records[i].Action == ActionDispatch || records[i].Action == ActionReassign) && records[i].TargetDepartment != "" {
			return records[i].TargetDepartment
		}
	}
	return DispatchCenter
}
