package handlers

import (
	"net/http"

	"projecthub/apierr"
	"projecthub/database"
	"projecthub/models"
	"projecthub/respond"
)

// ProjectHandler serves project CRUD. Any authenticated user may call it.
type ProjectHandler struct {
	store *database.Store
}

func NewProjectHandler(store *database.Store) *ProjectHandler {
	return &ProjectHandler{store: store}
}

type createProjectRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	TeamMemberIDs []uint  `json:"team_member_ids"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := models.ValidateProjectName(req.Name); err != nil {
		respond.Error(w, r, apierr.Validation(err.Error(), err))
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateProject(r.Context(), &project, req.TeamMemberIDs); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, &project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	project, err := h.store.ProjectByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var patch models.ProjectPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		respond.Error(w, r, apierr.Validation(err.Error(), err))
		return
	}

	project, err := h.store.UpdateProject(r.Context(), id, patch)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, project)
}

// Delete removes the project and, with it, all of its tasks.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w, r)
}
