package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/voicelab/voiceplatform/internal/apperr"
	"github.com/voicelab/voiceplatform/internal/store"
)

type ItemsHandler struct {
	repo store.ItemRepository
}

func NewItemsHandler(repo store.ItemRepository) *ItemsHandler {
	return &ItemsHandler{repo: repo}
}

type itemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Tax         *float64 `json:"tax,omitempty"`
}

func (req *itemRequest) validate() error {
	if n := utf8.RuneCountInString(req.Name); n < 1 || n > 100 {
		return apperr.Validation("name must be 1-100 characters")
	}
	if req.Description != nil && utf8.RuneCountInString(*req.Description) > 500 {
		return apperr.Validation("description must be at most 500 characters")
	}
	if req.Price <= 0 {
		return apperr.Validation("price must be greater than 0")
	}
	if req.Tax != nil && *req.Tax < 0 {
		return apperr.Validation("tax must not be negative")
	}
	return nil
}

// Create adds a new item.
//
// @Summary  Create an item
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    item body handlers.itemRequest true "Item to create"
// @Success  201 {object} store.Item
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /items [post]
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	item := h.repo.Create(store.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tax:         req.Tax,
	})
	writeJSON(w, http.StatusCreated, item)
}

// List returns all items.
//
// @Summary  List items
// @Tags     items
// @Produce  json
// @Success  200 {array} store.Item
// @Router   /items [get]
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.List())
}

// Get returns one item by ID.
//
// @Summary  Get an item
// @Tags     items
// @Produce  json
// @Param    id path int true "Item ID"
// @Success  200 {object} store.Item
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /items/{id} [get]
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.repo.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update replaces one item by ID.
//
// @Summary  Update an item
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    id path int true "Item ID"
// @Param    item body handlers.itemRequest true "New item values"
// @Success  200 {object} store.Item
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /items/{id} [put]
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.repo.Update(id, store.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tax:         req.Tax,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete removes one item by ID.
//
// @Summary  Delete an item
// @Tags     items
// @Param    id path int true "Item ID"
// @Success  204
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /items/{id} [delete]
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperr.Validation("id must be an integer")
	}
	return id, nil
}
