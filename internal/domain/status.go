package domain

// DisplayStatus is the derived, canonical lifecycle stage shown to users.
// It is distinct from the raw status column: concurrent collaborative
// flows and rejections can leave the raw column inconsistent with the
// state implied by the record history, and this derivation reconciles
// them.
type DisplayStatus string

const (
	DisplayPending                      DisplayStatus = "PENDING"
	DisplayAssigned                     DisplayStatus = "ASSIGNED"
	DisplayAssignedCollaborative        DisplayStatus = "ASSIGNED_COLLABORATIVE"
	DisplayProcessing                   DisplayStatus = "PROCESSING"
	DisplayProcessingCollaborative      DisplayStatus = "PROCESSING_COLLABORATIVE"
	DisplayReplied                      DisplayStatus = "REPLIED"
	DisplayRepliedCollaborativePending  DisplayStatus = "REPLIED_COLLABORATIVE_PENDING"
	DisplayRepliedCollaborativeComplete DisplayStatus = "REPLIED_COLLABORATIVE_COMPLETE"
	DisplayResolved                     DisplayStatus = "RESOLVED"
)

// Base collapses collaborative variants to the five canonical stages used
// by counters and dashboards.
func (d DisplayStatus) Base() DisplayStatus {
	switch d {
	case DisplayAssignedCollaborative:
		return DisplayAssigned
	case DisplayProcessingCollaborative:
		return DisplayProcessing
	case DisplayRepliedCollaborativePending, DisplayRepliedCollaborativeComplete:
		return DisplayReplied
	default:
		return d
	}
}

// IsReplied reports whether the stage sits at the reply-confirmation step.
func (d DisplayStatus) IsReplied() bool {
	return d.Base() == DisplayReplied
}

// DeriveStatus computes the display status from the ticket's raw fields,
// its department associations and its processing-record history. It is a
// pure function: identical inputs always yield identical output.
//
// Evaluation order is load-bearing; permission checks and counters depend
// on the first matching rule winning:
//
//  1. resolved flag set
//  2. raw REPLIED, sub-classified for collaborative tickets
//  3. bounced ticket: raw PENDING at the dispatch center whose latest
//     record is a rejection displays as PENDING ahead of the processing
//     heuristics
//  4. processing flag, or any handling record past PENDING
//  5. raw ASSIGNED, or a processing department set past PENDING
//  6. PENDING
func DeriveStatus(t *Ticket, assignments []DepartmentAssignment, records []ProcessingRecord) DisplayStatus {
	collaborative := IsCollaborative(assignments)

	if t.Resolved {
		return DisplayResolved
	}

	if t.Status == TicketStatusReplied {
		if collaborative {
			if AllReplied(assignments) {
				return DisplayRepliedCollaborativeComplete
			}
			return DisplayRepliedCollaborativePending
		}
		return DisplayReplied
	}

	if rejectedToDispatchCenter(t, records) {
		return DisplayPending
	}

	if t.Processing || (hasHandlingRecords(records) && t.Status != TicketStatusPending) {
		if collaborative {
			return DisplayProcessingCollaborative
		}
		return DisplayProcessing
	}

	if t.Status == TicketStatusAssigned || (t.ProcessingUnit != "" && t.Status != TicketStatusPending) {
		if collaborative {
			return DisplayAssignedCollaborative
		}
		return DisplayAssigned
	}

	return DisplayPending
}

// hasHandlingRecords reports whether any record after the latest routing
// entry describes actual handling. Dispatch and reassignment reset the
// handling history: a freshly routed ticket displays as ASSIGNED even when
// earlier records (a rejection, say) linger from a previous round.
func hasHandlingRecords(records []ProcessingRecord) bool {
	for i := len(records) - 1; i >= 0; i-- {
		switch records[i].Action {
		case ActionDispatch, ActionReassign:
			return false
		default:
			return true
		}
	}
	return false
}

// RejectedToDispatchCenter reports whether the ticket was bounced back to
// the dispatch center by a rejection. Such tickets display as PENDING like
// a fresh submission, but history-aware callers (dispatch views, gates)
// treat them differently.
func RejectedToDispatchCenter(t *Ticket, records []ProcessingRecord) bool {
	return rejectedToDispatchCenter(t, records)
}

func rejectedToDispatchCenter(t *Ticket, records []ProcessingRecord) bool {
	if t.Status != TicketStatusPending || t.ProcessingUnit != DispatchCenter || len(records) == 0 {
		return false
	}
	latest := LatestAction(records)
	return latest != nil && latest.Action == ActionReject
}

// rawTransitions is the directed graph the raw status column moves along.
// Rejections return replied/processing/assigned tickets to pending, and
// resolved tickets reopen into processing.
var rawTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:    {TicketStatusAssigned},
	TicketStatusAssigned:   {TicketStatusProcessing, TicketStatusPending},
	TicketStatusProcessing: {TicketStatusReplied, TicketStatusProcessing},
	TicketStatusReplied:    {TicketStatusResolved, TicketStatusProcessing, TicketStatusReplied},
	TicketStatusResolved:   {TicketStatusProcessing},
}

// ValidRawTransition reports whether the raw status may move from current
// to next along the transition graph.
func ValidRawTransition(current, next TicketStatus) bool {
	for _, candidate := range rawTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
