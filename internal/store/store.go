// Package store defines the document-store port for reading lists and its
// backends. Every backend implements the same conditional-write semantics:
// adding a book succeeds only if its ISBN is absent from the list, updating
// only if it is present.
package store

import (
	"context"
	"errors"

	"readinglist/internal/entity"
)

var (
	ErrListNotFound = errors.New("reading list not found")
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
)

// Store is the interface all persistence backends implement. Book keys are
// cleaned ISBNs; callers clean before calling, backends treat them as opaque.
type Store interface {
	// CreateList stores a new empty list under listID, replacing any
	// previous document with that ID.
	CreateList(ctx context.Context, listID, name string) error

	// Lists returns every reading list keyed by list ID.
	Lists(ctx context.Context) (map[string]entity.ReadingList, error)

	// ListSummaries returns the name-only projection of every list. Its key
	// set always equals the key set of Lists.
	ListSummaries(ctx context.Context) (map[string]entity.ListSummary, error)

	// GetList returns a single list, or ErrListNotFound.
	GetList(ctx context.Context, listID string) (entity.ReadingList, error)

	// RenameList changes a list's name, or returns ErrListNotFound.
	RenameList(ctx context.Context, listID, name string) error

	// DeleteList removes a list and its books, or returns ErrListNotFound.
	DeleteList(ctx context.Context, listID string) error

	// AddBook inserts a book keyed by book.ISBN. Returns ErrListNotFound if
	// the list is absent and ErrBookExists if the ISBN is already present.
	AddBook(ctx context.Context, listID string, book entity.Book) error

	// GetBook returns one book by cleaned ISBN. Returns ErrListNotFound or
	// ErrBookNotFound.
	GetBook(ctx context.Context, listID, isbn string) (entity.Book, error)

	// UpdateBook replaces an existing book wholesale. Returns
	// ErrListNotFound or ErrBookNotFound.
	UpdateBook(ctx context.Context, listID string, book entity.Book) error

	// DeleteBook removes one book. Returns ErrListNotFound or
	// ErrBookNotFound.
	DeleteBook(ctx context.Context, listID, isbn string) error

	Close() error
}
