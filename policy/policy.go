// Package policy decides which role may perform which operation on which
// record. It is pure: callers load the records and pass in the ownership
// fields that matter.
package policy

import (
	"fmt"

	"projecthub/apierr"
	"projecthub/models"
)

type Operation int

const (
	Register Operation = iota + 1
	CreateUser
	ListUsers
	GetUser
	DeleteUser
	CreateProject
	ListProjects
	GetProject
	UpdateProject
	DeleteProject
	CreateTask
	ListTasks
	GetTask
	UpdateTask
	DeleteTask
	ViewDashboard
)

var operationNames = map[Operation]string{
	Register:      "register",
	CreateUser:    "create user",
	ListUsers:     "list users",
	GetUser:       "get user",
	DeleteUser:    "delete user",
	CreateProject: "create project",
	ListProjects:  "list projects",
	GetProject:    "get project",
	UpdateProject: "update project",
	DeleteProject: "delete project",
	CreateTask:    "create task",
	ListTasks:     "list tasks",
	GetTask:       "get task",
	UpdateTask:    "update task",
	DeleteTask:    "delete task",
	ViewDashboard: "view dashboard",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// RegistrationRole is the role every self-registered account receives,
// whatever the request asked for.
const RegistrationRole = models.RoleDeveloper

type Effect int

const (
	Deny Effect = iota
	Allow
	AllowFields
)

// Subject is the caller.
type Subject struct {
	UserID uint
	Role   models.Role
}

func SubjectOf(u *models.User) Subject {
	return Subject{UserID: u.ID, Role: u.Role}
}

// Resource carries the ownership fields of the record being acted on.
type Resource struct {
	AssignedTo *uint
}

func (r Resource) assignedTo(userID uint) bool {
	return r.AssignedTo != nil && *r.AssignedTo == userID
}

type Decision struct {
	Effect Effect
	Reason string
	// Fields lists the only task fields that may change when Effect is
	// AllowFields.
	Fields []models.TaskField
}

func allow() Decision {
	return Decision{Effect: Allow}
}

func deny(reason string) Decision {
	return Decision{Effect: Deny, Reason: reason}
}

func allowFields(fields ...models.TaskField) Decision {
	return Decision{Effect: AllowFields, Fields: fields}
}

func (d Decision) Allowed() bool {
	return d.Effect != Deny
}

// Permits reports whether field may change under this decision.
func (d Decision) Permits(field models.TaskField) bool {
	switch d.Effect {
	case Allow:
		return true
	case AllowFields:
		for _, f := range d.Fields {
			if f == field {
				return true
			}
		}
	}
	return false
}

// Err converts a denial into a Forbidden error.
func (d Decision) Err() error {
	if d.Allowed() {
		return nil
	}
	return apierr.Forbidden(d.Reason)
}

const notEnoughPermissions = "Not enough permissions"

// Decide applies the role table to one operation.
func Decide(sub Subject, op Operation, res Resource) Decision {
	if op == Register {
		return allow()
	}

	switch sub.Role {
	case models.RoleAdmin:
		return allow()

	case models.RoleManager:
		switch op {
		case CreateUser, DeleteUser:
			return deny(notEnoughPermissions)
		}
		return allow()

	case models.RoleDeveloper:
		switch op {
		case CreateUser, DeleteUser, CreateTask, DeleteTask:
			return deny(notEnoughPermissions)
		case GetTask:
			if !res.assignedTo(sub.UserID) {
				return deny("Not authorized to view this task")
			}
			return allow()
		case UpdateTask:
			if !res.assignedTo(sub.UserID) {
				return deny("Not authorized to update this task")
			}
			return allowFields(models.FieldStatus)
		}
		return allow()
	}

	return deny("Unknown role")
}

// Require is Decide for operations that do not depend on a specific record.
func Require(sub Subject, op Operation) error {
	return Decide(sub, op, Resource{}).Err()
}

// AuthorizeTaskUpdate checks both the ownership rule and the field allow-list
// for an update touching fields.
func AuthorizeTaskUpdate(sub Subject, task *models.Task, fields []models.TaskField) error {
	d := Decide(sub, UpdateTask, Resource{AssignedTo: task.AssignedTo})
	if err := d.Err(); err != nil {
		return err
	}
	for _, field := range fields {
		if !d.Permits(field) {
			return apierr.Forbidden(fmt.Sprintf("Not authorized to update task field %q", field))
		}
	}
	return nil
}

// TaskScope turns the caller's query into the filter they are entitled to.
// A developer without a project filter only sees tasks assigned to them,
// whatever assigned_to they asked for; with a project filter they see the
// project's tasks and assigned_to is ignored.
func TaskScope(sub Subject, projectID, assignedTo *uint) models.TaskFilter {
	switch sub.Role {
	case models.RoleAdmin, models.RoleManager:
		return models.TaskFilter{ProjectID: projectID, AssignedTo: assignedTo}
	case models.RoleDeveloper:
		if projectID != nil {
			return models.TaskFilter{ProjectID: projectID}
		}
		self := sub.UserID
		return models.TaskFilter{AssignedTo: &self}
	}
	self := sub.UserID
	return models.TaskFilter{AssignedTo: &self}
}
