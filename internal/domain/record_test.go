package domain

import "testing"

func TestIsCollaboratingDepartment(t *testing.T) {
	records := []ProcessingRecord{
		{Action: ActionDispatch, TargetDepartment: "HR"},
		{Action: ActionCollaborate, Department: "HR", TargetDepartment: "IT,Finance"},
	}

	if !IsCollaboratingDepartment(records, "HR") {
		t.Error("initiating department should count as collaborating")
	}
	if !IsCollaboratingDepartment(records, "IT,Finance") {
		t.Error("target match should count as collaborating")
	}
	if IsCollaboratingDepartment(records, "Legal") {
		t.Error("unrelated department must not count")
	}
	if IsCollaboratingDepartment(nil, "HR") {
		t.Error("empty history must not count")
	}
}

func TestLatestAction(t *testing.T) {
	if LatestAction(nil) != nil {
		t.Fatal("empty history should yield nil")
	}
	records := []ProcessingRecord{
		{Action: ActionDispatch},
		{Action: ActionAccept},
		{Action: ActionReply},
	}
	latest := LatestAction(records)
	if latest == nil || latest.Action != ActionReply {
		t.Fatalf("LatestAction = %+v, want REPLY", latest)
	}
}

func TestPreReplyDepartment(t *testing.T) {
	tests := []struct {
		name    string
		records []ProcessingRecord
		want    string
	}{
		{
			"latest reply wins",
			[]ProcessingRecord{
				{Action: ActionDispatch, TargetDepartment: "HR"},
				{Action: ActionReply, Department: "HR"},
			},
			"HR",
		},
		{
			"falls back to latest dispatch target",
			[]ProcessingRecord{
				{Action: ActionDispatch, TargetDepartment: "HR"},
				{Action: ActionReassign, TargetDepartment: "IT"},
			},
			"IT",
		},
		{
			"defaults to the dispatch center",
			[]ProcessingRecord{{Action: ActionAccept, Department: ""}},
			DispatchCenter,
		},
		{"empty history", nil, DispatchCenter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreReplyDepartment(tt.records); got != tt.want {
				t.Fatalf("PreReplyDepartment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoleLadder(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleManager) || !RoleManager.AtLeast(RoleProcessor) || !RoleProcessor.AtLeast(RoleUser) {
		t.Error("role ladder ordering broken")
	}
	if RoleUser.AtLeast(RoleProcessor) {
		t.Error("user must rank below processor")
	}
	if Role("intruder").AtLeast(RoleUser) {
		t.Error("unknown role must rank below user")
	}
	if Role("intruder").Valid() {
		t.Error("unknown role must be invalid")
	}
}
