package domain

import "time"

// DepartmentAssignment maps a ticket to one department jointly responsible
// for it. The full set for a ticket is replaced wholesale on every
// dispatch/reassignment; rows are never patched in place.
type DepartmentAssignment struct {
	ID         int64
	TicketID   int64
	Department string
	Primary    bool
	Replied    bool
	AssignedBy string
	AssignedAt time.Time
}

// IsCollaborative reports whether the association set describes a
// collaborative ticket: more than one department besides the dispatch
// center.
func IsCollaborative(assignments []DepartmentAssignment) bool {
	count := 0
	for _, a := range assignments {
		if a.Department != DispatchCenter {
			count++
		}
	}
	return count > 1
}

// AllReplied reports whether every non-dispatch-center department in the
// association set has replied. Trivially true for single-department and
// dispatch-center-only tickets.
func AllReplied(assignments []DepartmentAssignment) bool {
	if !IsCollaborative(assignments) {
		return true
	}
	for _, a := range assignments {
		if a.Department == DispatchCenter {
			continue
		}
		if !a.Replied {
			return false
		}
	}
	return true
}

// HasDepartment reports whether the department appears in the set.
func HasDepartment(assignments []DepartmentAssignment, department string) bool {
	for _, a := range assignments {
		if a.Department == department {
			return true
		}
	}
	return false
}

// PrimaryDepartment returns the lead department: the row flagged primary,
// falling back to the first non-dispatch-center row. Empty when the set
// holds nothing but the dispatch center.
func PrimaryDepartment(assignments []DepartmentAssignment) string {
	for _, a := range assignments {
		if a.Primary && a.Department != DispatchCenter {
			return a.Department
		}
	}
	for _, a := range assignments {
		if a.Department != DispatchCenter {
			return a.Department
		}
	}
	return ""
}

// NextPendingDepartment scans the association set in primary-first order
// for the next department after current that has not replied, wrapping
// around to the front when nothing follows. Empty string when every
// department has replied or the ticket is not collaborative.
func NextPendingDepartment(assignments []DepartmentAssignment, current string) string {
	ordered := make([]DepartmentAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Department != DispatchCenter {
			ordered = append(ordered, a)
		}
	}
	if len(ordered) <= 1 {
		return ""
	}
	currentIdx := -1
	for i, a := range ordered {
		if a.Department == current {
			currentIdx = i
			break
		}
	}
	for i := currentIdx + 1; i < len(ordered); i++ {
		if !ordered[i].Replied {
			return ordered[i].Department
		}
	}
	for i := 0; i <= currentIdx && i < len(ordered); i++ {
		if !ordered[i].Replied {
			return ordered[i].Department
		}
	}
	return ""
}
