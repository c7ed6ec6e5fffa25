package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// TaskStatuses lists every status. There is no ordering between them.
var TaskStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusDone}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("status must be a string")
	}
	if !TaskStatus(v).Valid() {
		return fmt.Errorf("invalid status %q", v)
	}
	*s = TaskStatus(v)
	return nil
}

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `gorm:"not null;size:200" json:"title"`
	Description *string    `gorm:"size:500" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'To Do';index" json:"status"`
	Deadline    *time.Time `gorm:"index" json:"deadline"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo" json:"-"`
}

// Timestamp accepts RFC 3339 plus the zone-less layouts browsers send from
// date and datetime-local inputs. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid datetime %q", s)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("datetime must be a string")
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	ProjectID  *uint
	AssignedTo *uint
}

// TaskField names a task attribute that an update may touch.
type TaskField string

const (
	FieldTitle       TaskField = "title"
	FieldDescription TaskField = "description"
	FieldStatus      TaskField = "status"
	FieldDeadline    TaskField = "deadline"
	FieldAssignedTo  TaskField = "assigned_to"
)

// TaskPatch holds the fields of a task update. A present null clears the
// nullable fields.
type TaskPatch struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[string]     `json:"description"`
	Status      Optional[TaskStatus] `json:"status"`
	Deadline    Optional[Timestamp]  `json:"deadline"`
	AssignedTo  Optional[uint]       `json:"assigned_to"`
}

// Fields returns the fields present in the patch.
func (p TaskPatch) Fields() []TaskField {
	var fields []TaskField
	if p.Title.Set {
		fields = append(fields, FieldTitle)
	}
	if p.Description.Set {
		fields = append(fields, FieldDescription)
	}
	if p.Status.Set {
		fields = append(fields, FieldStatus)
	}
	if p.Deadline.Set {
		fields = append(fields, FieldDeadline)
	}
	if p.AssignedTo.Set {
		fields = append(fields, FieldAssignedTo)
	}
	return fields
}

// ValidateTaskTitle rejects blank and oversized titles.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title must be a non-empty string")
	}
	if len(title) > 200 {
		return errors.New("title must be at most 200 characters")
	}
	return nil
}

// Validate rejects nulls and blanks on the non-nullable fields.
func (p TaskPatch) Validate() error {
	if p.Title.Set {
		title, ok := p.Title.Get()
		if !ok {
			return errors.New("title must be a non-empty string")
		}
		if err := ValidateTaskTitle(title); err != nil {
			return err
		}
	}
	if p.Status.IsNull() {
		return errors.New("status must not be null")
	}
	if v, ok := p.Description.Get(); ok && len(v) > 500 {
		return errors.New("description must be at most 500 characters")
	}
	return nil
}

func (p TaskPatch) Apply(t *Task) {
	if v, ok := p.Title.Get(); ok {
		t.Title = v
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if v, ok := p.Status.Get(); ok {
		t.Status = v
	}
	if p.Deadline.Set {
		t.Deadline = nil
		if v, ok := p.Deadline.Get(); ok {
			deadline := v.Time
			t.Deadline = &deadline
		}
	}
	if p.AssignedTo.Set {
		t.AssignedTo = p.AssignedTo.Value
	}
}
