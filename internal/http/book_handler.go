package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"readinglist/internal/entity"
	"readinglist/internal/store"
)

type BookHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewBookHandler(s store.Store, logger *slog.Logger) *BookHandler {
	return &BookHandler{store: s, logger: logger}
}

type bookRequest struct {
	Book bookPayload `json:"book"`
}

type bookPayload struct {
	ISBN   string `json:"isbn" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Status string `json:"status" validate:"required,bookstatus"`
	Image  string `json:"image" validate:"omitempty,url"`
}

// toEntity builds the stored book. The cleaned ISBN becomes both the isbn
// field and, in the store, the map key, so the two can never disagree.
func (p bookPayload) toEntity(isbn string) entity.Book {
	book := entity.Book{
		ISBN:   entity.CleanISBN(isbn),
		Title:  p.Title,
		Author: p.Author,
		Status: p.Status,
		Image:  p.Image,
	}
	if book.Image == "" {
		book.Image = entity.PlaceholderImage
	}
	return book
}

func (h *BookHandler) decodeBook(w http.ResponseWriter, r *http.Request) (bookPayload, bool) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return bookPayload{}, false
	}
	if details := ValidateStruct(req.Book); len(details) > 0 {
		Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Book is invalid", details)
		return bookPayload{}, false
	}
	return req.Book, true
}

func (h *BookHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("store call failed", "path", r.URL.Path, "error", err)
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong", nil)
}

// @Summary Add a book to a reading list
// @Router /reading-lists/{listID}/books [post]
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")

	payload, ok := h.decodeBook(w, r)
	if !ok {
		return
	}
	book := payload.toEntity(payload.ISBN)
	if book.ISBN == "" {
		Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Book is invalid",
			[]ErrorDetail{{Field: "isbn", Message: "isbn must contain letters or digits"}})
		return
	}

	err := h.store.AddBook(r.Context(), listID, book)
	switch {
	case errors.Is(err, store.ErrListNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
	case errors.Is(err, store.ErrBookExists):
		Error(w, http.StatusConflict, "ALREADY_EXISTS", "Book already exists in this list", nil)
	case err != nil:
		h.storeError(w, r, err)
	default:
		JSON(w, http.StatusCreated, book)
	}
}

// @Summary Get one book from a reading list
// @Router /reading-lists/{listID}/books/{isbn} [get]
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")
	isbn := entity.CleanISBN(r.PathValue("isbn"))

	book, err := h.store.GetBook(r.Context(), listID, isbn)
	switch {
	case errors.Is(err, store.ErrListNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
	case errors.Is(err, store.ErrBookNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case err != nil:
		h.storeError(w, r, err)
	default:
		JSON(w, http.StatusOK, book)
	}
}

// @Summary Replace a book in a reading list
// @Router /reading-lists/{listID}/books/{isbn} [put]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")

	payload, ok := h.decodeBook(w, r)
	if !ok {
		return
	}
	// The path parameter names the book being replaced; it wins over
	// whatever isbn the payload carries.
	book := payload.toEntity(r.PathValue("isbn"))
	if book.ISBN == "" {
		Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Book is invalid",
			[]ErrorDetail{{Field: "isbn", Message: "isbn must contain letters or digits"}})
		return
	}

	err := h.store.UpdateBook(r.Context(), listID, book)
	switch {
	case errors.Is(err, store.ErrListNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
	case errors.Is(err, store.ErrBookNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case err != nil:
		h.storeError(w, r, err)
	default:
		JSON(w, http.StatusOK, book)
	}
}

// @Summary Delete a book from a reading list
// @Router /reading-lists/{listID}/books/{isbn} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")
	isbn := entity.CleanISBN(r.PathValue("isbn"))

	err := h.store.DeleteBook(r.Context(), listID, isbn)
	switch {
	case errors.Is(err, store.ErrListNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)
	case errors.Is(err, store.ErrBookNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case err != nil:
		h.storeError(w, r, err)
	default:
		NoContent(w)
	}
}
