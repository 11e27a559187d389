package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"readinglist/internal/store"
)

type ReadingListHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewReadingListHandler(s store.Store, logger *slog.Logger) *ReadingListHandler {
	return &ReadingListHandler{store: s, logger: logger}
}

type listRequest struct {
	ListName string `json:"listName" validate:"required"`
}

type listResponse struct {
	ListID   string `json:"listID"`
	ListName string `json:"listName"`
}

func (h *ReadingListHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("store call failed", "path", r.URL.Path, "error", err)
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong", nil)
}

// @Summary Create reading list
// @Router /reading-lists [post]
func (h *ReadingListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required", details)
		return
	}

	listID := uuid.NewString()
	if err := h.store.CreateList(r.Context(), listID, req.ListName); err != nil {
		h.storeError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, listResponse{ListID: listID, ListName: req.ListName})
}

// @Summary List all reading lists with their books
// @Router /reading-lists [get]
func (h *ReadingListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.store.Lists(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, lists)
}

// @Summary List reading list names only
// @Router /reading-lists-info [get]
func (h *ReadingListHandler) ListInfo(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.ListSummaries(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, summaries)
}

// @Summary Get one reading list
// @Router /reading-lists/{listID} [get]
func (h *ReadingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")

	list, err := h.store.GetList(r.Context(), listID)
	if errors.Is(err, store.ErrListNotFound) {
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, list)
}

// @Summary Rename a reading list
// @Router /reading-lists/{listID} [put]
func (h *ReadingListHandler) Rename(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required", details)
		return
	}

	err := h.store.RenameList(r.Context(), listID, req.ListName)
	if errors.Is(err, store.ErrListNotFound) {
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, listResponse{ListID: listID, ListName: req.ListName})
}

// @Summary Delete a reading list
// @Router /reading-lists/{listID} [delete]
func (h *ReadingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")

	err := h.store.DeleteList(r.Context(), listID)
	if errors.Is(err, store.ErrListNotFound) {
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	NoContent(w)
}
