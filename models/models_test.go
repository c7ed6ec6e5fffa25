package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRoleJSON(t *testing.T) {
	for _, role := range Roles {
		data, err := json.Marshal(role)
		if err != nil {
			t.Fatalf("marshal %v: %v", role, err)
		}
		var back Role
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != role {
			t.Errorf("round trip %v -> %s -> %v", role, data, back)
		}
	}

	var r Role
	for _, bad := range []string{`"admin"`, `"Owner"`, `3`, `null`} {
		if err := json.Unmarshal([]byte(bad), &r); err == nil && bad != `null` {
			t.Errorf("unmarshal %s: expected error", bad)
		}
	}
	if _, err := json.Marshal(Role(0)); err == nil {
		t.Error("marshal of zero role should fail")
	}
}

func TestRoleScan(t *testing.T) {
	var r Role
	if err := r.Scan([]byte("Manager")); err != nil || r != RoleManager {
		t.Fatalf("Scan bytes = %v, %v", r, err)
	}
	if err := r.Scan("Nobody"); err == nil {
		t.Fatal("Scan accepted unknown role")
	}
	if err := r.Scan(42); err == nil {
		t.Fatal("Scan accepted an int")
	}
	v, err := RoleDeveloper.Value()
	if err != nil || v != "Developer" {
		t.Fatalf("Value = %v, %v", v, err)
	}
}

func TestTaskStatusJSON(t *testing.T) {
	var s TaskStatus
	if err := json.Unmarshal([]byte(`"In Progress"`), &s); err != nil || s != StatusInProgress {
		t.Fatalf("got %q, %v", s, err)
	}
	if err := json.Unmarshal([]byte(`"Blocked"`), &s); err == nil {
		t.Fatal("accepted unknown status")
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-03-14T09:30:00Z",
		"2025-03-14T11:30:00+02:00",
		"2025-03-14T09:30:00",
		"2025-03-14T09:30",
		"2025-03-14 09:30:00",
	} {
		ts, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if !ts.Equal(want) || ts.Location() != time.UTC {
			t.Errorf("%s: got %v", in, ts.Time)
		}
	}
	if _, err := ParseTimestamp("tomorrow"); err == nil {
		t.Error("accepted garbage")
	}
}

func TestTaskPatchPresence(t *testing.T) {
	var p TaskPatch
	body := `{"status": "Done", "description": null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	got := p.Fields()
	want := []TaskField{FieldDescription, FieldStatus}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
	if !p.Description.IsNull() || p.Title.Set || p.AssignedTo.Set {
		t.Fatalf("unexpected presence: %+v", p)
	}

	desc := "keep me"
	assignee := uint(7)
	task := Task{Title: "t", Description: &desc, Status: StatusToDo, AssignedTo: &assignee}
	p.Apply(&task)
	if task.Status != StatusDone || task.Description != nil || task.Title != "t" || task.AssignedTo == nil {
		t.Fatalf("Apply produced %+v", task)
	}
}

func TestTaskPatchValidate(t *testing.T) {
	cases := []struct {
		body string
		ok   bool
	}{
		{`{}`, true},
		{`{"title": "new"}`, true},
		{`{"title": null}`, false},
		{`{"title": "   "}`, false},
		{`{"status": null}`, false},
		{`{"deadline": null, "assigned_to": null}`, true},
	}
	for _, tc := range cases {
		var p TaskPatch
		if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
			t.Fatalf("%s: %v", tc.body, err)
		}
		if err := p.Validate(); (err == nil) != tc.ok {
			t.Errorf("%s: Validate() = %v", tc.body, err)
		}
	}
}

func TestProjectPatchNullIsAbsent(t *testing.T) {
	var p ProjectPatch
	if err := json.Unmarshal([]byte(`{"name": "X", "description": null}`), &p); err != nil {
		t.Fatal(err)
	}
	desc := "original"
	project := Project{Name: "old", Description: &desc}
	p.Apply(&project)
	if project.Name != "X" || project.Description == nil || *project.Description != "original" {
		t.Fatalf("Apply produced %+v", project)
	}
	if _, ok := p.MemberIDs(); ok {
		t.Fatal("membership reported as supplied")
	}

	if err := json.Unmarshal([]byte(`{"team_member_ids": []}`), &p); err != nil {
		t.Fatal(err)
	}
	ids, ok := p.MemberIDs()
	if !ok || len(ids) != 0 {
		t.Fatalf("MemberIDs = %v, %v", ids, ok)
	}
}

func TestValidateNames(t *testing.T) {
	long := strings.Repeat("x", 201)
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"project ok", ValidateProjectName("Apollo"), false},
		{"project blank", ValidateProjectName("  \t"), true},
		{"project long", ValidateProjectName(long), true},
		{"title ok", ValidateTaskTitle("Build"), false},
		{"title blank", ValidateTaskTitle(" "), true},
		{"title long", ValidateTaskTitle(long), true},
	}
	for _, tt := range tests {
		if (tt.err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, tt.err, tt.wantErr)
		}
	}
}
