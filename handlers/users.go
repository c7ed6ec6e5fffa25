package handlers

import (
	"net/http"
	"strings"

	"projecthub/credentials"
	"projecthub/database"
	"projecthub/models"
	"projecthub/respond"
)

type UserHandler struct {
	store *database.Store
	creds *credentials.Service
}

func NewUserHandler(store *database.Store, creds *credentials.Service) *UserHandler {
	return &UserHandler{
		store: store,
		creds: creds,
	}
}

type createUserRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=100"`
	Password string      `json:"password" validate:"required,max=72"`
	Role     models.Role `json:"role" validate:"required"`
}

// Create adds a user with any role. Routed for Admins only.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	hashedPassword, err := h.creds.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, &user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.store.UserByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, user)
}

// Delete removes a user. Routed for Admins only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w, r)
}
