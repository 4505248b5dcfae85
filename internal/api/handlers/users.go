package handlers

import (
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/voicelab/voiceplatform/internal/apperr"
	"github.com/voicelab/voiceplatform/internal/store"
)

var emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type UsersHandler struct {
	repo store.UserRepository
}

func NewUsersHandler(repo store.UserRepository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

type userCreateRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Password string  `json:"password"`
}

func (req *userCreateRequest) validate() error {
	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 50 {
		return apperr.Validation("username must be 3-50 characters")
	}
	if !emailRe.MatchString(req.Email) {
		return apperr.Validation("email is not valid")
	}
	if req.FullName != nil && utf8.RuneCountInString(*req.FullName) > 100 {
		return apperr.Validation("full_name must be at most 100 characters")
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	return nil
}

// Create registers a new demo user. The password is validated and discarded;
// this store keeps no credentials.
//
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body handlers.userCreateRequest true "User to create"
// @Success  201 {object} store.User
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /users [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.repo.Create(store.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// List returns all users.
//
// @Summary  List users
// @Tags     users
// @Produce  json
// @Success  200 {array} store.User
// @Router   /users [get]
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.List())
}

// Get returns one user by ID.
//
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id path int true "User ID"
// @Success  200 {object} store.User
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /users/{id} [get]
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.repo.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete removes one user by ID.
//
// @Summary  Delete a user
// @Tags     users
// @Param    id path int true "User ID"
// @Success  204
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /users/{id} [delete]
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
