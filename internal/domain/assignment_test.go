package domain

import "testing"

func TestIsCollaborative(t *testing.T) {
	tests := []struct {
		name        string
		assignments []DepartmentAssignment
		want        bool
	}{
		{"empty set", nil, false},
		{"single department", assigned("HR"), false},
		{"dispatch center only", assigned(DispatchCenter), false},
		{"dispatch center plus one", assigned(DispatchCenter, "HR"), false},
		{"two departments", assigned("HR", "IT"), true},
		{"two departments plus dispatch center", assigned(DispatchCenter, "HR", "IT"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCollaborative(tt.assignments); got != tt.want {
				t.Fatalf("IsCollaborative = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllReplied(t *testing.T) {
	tests := []struct {
		name        string
		assignments []DepartmentAssignment
		want        bool
	}{
		{"non-collaborative is trivially complete", assigned("HR"), true},
		{"empty set is trivially complete", nil, true},
		{
			"one collaborator outstanding",
			[]DepartmentAssignment{{Department: "HR", Replied: true}, {Department: "IT"}},
			false,
		},
		{
			"all collaborators replied",
			[]DepartmentAssignment{{Department: "HR", Replied: true}, {Department: "IT", Replied: true}},
			true,
		},
		{
			"dispatch center row never blocks completion",
			[]DepartmentAssignment{
				{Department: DispatchCenter},
				{Department: "HR", Replied: true},
				{Department: "IT", Replied: true},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllReplied(tt.assignments); got != tt.want {
				t.Fatalf("AllReplied = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrimaryDepartment(t *testing.T) {
	if got := PrimaryDepartment(assigned("HR", "IT")); got != "HR" {
		t.Fatalf("PrimaryDepartment = %q, want HR", got)
	}
	noPrimary := []DepartmentAssignment{{Department: "IT"}, {Department: "HR"}}
	if got := PrimaryDepartment(noPrimary); got != "IT" {
		t.Fatalf("fallback PrimaryDepartment = %q, want IT", got)
	}
	if got := PrimaryDepartment(assigned(DispatchCenter)); got != "" {
		t.Fatalf("dispatch-center-only PrimaryDepartment = %q, want empty", got)
	}
}

func TestNextPendingDepartment(t *testing.T) {
	set := []DepartmentAssignment{
		{Department: "HR", Primary: true},
		{Department: "IT"},
		{Department: "Finance"},
	}

	if got := NextPendingDepartment(set, "HR"); got != "IT" {
		t.Fatalf("next after HR = %q, want IT", got)
	}

	set[1].Replied = true
	if got := NextPendingDepartment(set, "HR"); got != "Finance" {
		t.Fatalf("next after HR skipping replied = %q, want Finance", got)
	}

	// Wrap around to the front when nothing pending follows.
	set[1].Replied = false
	set[2].Replied = true
	if got := NextPendingDepartment(set, "Finance"); got != "HR" {
		t.Fatalf("wrap-around = %q, want HR", got)
	}

	for i := range set {
		set[i].Replied = true
	}
	if got := NextPendingDepartment(set, "HR"); got != "" {
		t.Fatalf("all replied = %q, want empty", got)
	}

	if got := NextPendingDepartment(assigned("HR"), "HR"); got != "" {
		t.Fatalf("non-collaborative = %q, want empty", got)
	}
}

func TestHasDepartment(t *testing.T) {
	set := assigned("HR", "IT")
	if !HasDepartment(set, "IT") {
		t.Error("expected IT to be present")
	}
	if HasDepartment(set, "Finance") {
		t.Error("did not expect Finance to be present")
	}
}
