package handlers

import (
	"net/http"

	"projecthub/apierr"
	"projecthub/database"
	"projecthub/middleware"
	"projecthub/models"
	"projecthub/policy"
	"projecthub/respond"
)

type TaskHandler struct {
	store *database.Store
}

func NewTaskHandler(store *database.Store) *TaskHandler {
	return &TaskHandler{store: store}
}

type createTaskRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=500"`
	Status      *models.TaskStatus `json:"status"`
	Deadline    *models.Timestamp  `json:"deadline"`
	ProjectID   uint               `json:"project_id" validate:"required"`
	AssignedTo  *uint              `json:"assigned_to"`
}

// Create adds a task. Routed for Managers and Admins only.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := models.ValidateTaskTitle(req.Title); err != nil {
		respond.Error(w, r, apierr.Validation(err.Error(), err))
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusToDo,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Deadline != nil {
		deadline := req.Deadline.Time
		task.Deadline = &deadline
	}

	if err := h.store.CreateTask(r.Context(), &task); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, &task)
}

// List returns the tasks the caller may see, narrowed by the project_id and
// assigned_to query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	projectID, err := queryID(r, "project_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	assignedTo, err := queryID(r, "assigned_to")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter := policy.TaskScope(policy.SubjectOf(user), projectID, assignedTo)
	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	task, err := h.store.TaskByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	decision := policy.Decide(policy.SubjectOf(user), policy.GetTask, policy.Resource{AssignedTo: task.AssignedTo})
	if err := decision.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// Update applies a partial update. Developers may only change the status of
// tasks assigned to them.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var patch models.TaskPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respond.Error(w, r, err)
		return
	}

	subject := policy.SubjectOf(user)
	fields := patch.Fields()
	task, err := h.store.UpdateTask(r.Context(), id, patch, func(current *models.Task) error {
		return policy.AuthorizeTaskUpdate(subject, current, fields)
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// Delete removes a task. Routed for Managers and Admins only.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w, r)
}
