package handlers

import (
	"net/http"
	"strings"

	"projecthub/apierr"
	"projecthub/credentials"
	"projecthub/database"
	"projecthub/models"
	"projecthub/policy"
	"projecthub/respond"
)

type AuthHandler struct {
	store *database.Store
	creds *credentials.Service
}

func NewAuthHandler(store *database.Store, creds *credentials.Service) *AuthHandler {
	return &AuthHandler{
		store: store,
		creds: creds,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=72"`
	// Role is accepted for compatibility and ignored.
	Role models.Role `json:"role"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Register creates a Developer account; the requested role is ignored.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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
		Role:         policy.RegistrationRole,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, &user)
}

// Token exchanges form credentials (username is the email) for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, apierr.Validation("Invalid form data", err))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respond.Error(w, r, apierr.Validation("username and password are required", nil))
		return
	}

	invalid := apierr.Unauthorized("Incorrect email or password", nil)
	user, err := h.store.UserByEmail(r.Context(), strings.TrimSpace(username))
	if err != nil {
		if apierr.From(err).Kind == apierr.KindNotFound {
			err = invalid
		}
		respond.Error(w, r, err)
		return
	}
	if !h.creds.VerifyPassword(password, user.PasswordHash) {
		respond.Error(w, r, invalid)
		return
	}

	token, err := h.creds.IssueToken(user.Email)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
