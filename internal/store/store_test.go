package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readinglist/internal/entity"
)

// The conformance suite runs against every locally constructible backend so
// their semantics cannot drift apart. The redis backend shares the same
// contract but needs a live server with the JSON module.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	badgerStore, err := NewBadgerStore("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerStore.Close() })

	memStore, err := NewMemoryStore("", 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = memStore.Close() })

	return map[string]Store{
		"badger": badgerStore,
		"memory": memStore,
	}
}

func sampleBook(isbn string) entity.Book {
	return entity.Book{
		ISBN:   isbn,
		Title:  "Dune",
		Author: "Frank Herbert",
		Status: entity.StatusUnread,
		Image:  entity.PlaceholderImage,
	}
}

func TestStore_ListLifecycle(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.CreateList(ctx, "L1", "SciFi"))

			list, err := s.GetList(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, "SciFi", list.ListName)
			assert.Empty(t, list.Books)
			assert.NotNil(t, list.Books)

			require.NoError(t, s.RenameList(ctx, "L1", "Science Fiction"))
			list, err = s.GetList(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, "Science Fiction", list.ListName)

			require.NoError(t, s.DeleteList(ctx, "L1"))
			_, err = s.GetList(ctx, "L1")
			assert.ErrorIs(t, err, ErrListNotFound)
		})
	}
}

func TestStore_ListNotFound(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.GetList(ctx, "missing")
			assert.ErrorIs(t, err, ErrListNotFound)
			assert.ErrorIs(t, s.RenameList(ctx, "missing", "x"), ErrListNotFound)
			assert.ErrorIs(t, s.DeleteList(ctx, "missing"), ErrListNotFound)
			assert.ErrorIs(t, s.AddBook(ctx, "missing", sampleBook("1")), ErrListNotFound)
			_, err = s.GetBook(ctx, "missing", "1")
			assert.ErrorIs(t, err, ErrListNotFound)
			assert.ErrorIs(t, s.UpdateBook(ctx, "missing", sampleBook("1")), ErrListNotFound)
			assert.ErrorIs(t, s.DeleteBook(ctx, "missing", "1"), ErrListNotFound)
		})
	}
}

func TestStore_BookLifecycle(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.CreateList(ctx, "L1", "SciFi"))

			book := sampleBook("044101634X")
			require.NoError(t, s.AddBook(ctx, "L1", book))

			got, err := s.GetBook(ctx, "L1", "044101634X")
			require.NoError(t, err)
			assert.Equal(t, book, got)

			// Only-if-absent: the duplicate is rejected and the original kept.
			dup := book
			dup.Title = "Not Dune"
			assert.ErrorIs(t, s.AddBook(ctx, "L1", dup), ErrBookExists)
			got, err = s.GetBook(ctx, "L1", "044101634X")
			require.NoError(t, err)
			assert.Equal(t, "Dune", got.Title)

			// Full replacement: every field comes from the update payload.
			updated := entity.Book{
				ISBN:   "044101634X",
				Title:  "Dune",
				Author: "Frank Herbert",
				Status: entity.StatusFinished,
				Image:  "http://covers.openlibrary.org/b/id/10110415-M.jpg",
			}
			require.NoError(t, s.UpdateBook(ctx, "L1", updated))
			got, err = s.GetBook(ctx, "L1", "044101634X")
			require.NoError(t, err)
			assert.Equal(t, updated, got)

			require.NoError(t, s.DeleteBook(ctx, "L1", "044101634X"))
			_, err = s.GetBook(ctx, "L1", "044101634X")
			assert.ErrorIs(t, err, ErrBookNotFound)
			assert.ErrorIs(t, s.DeleteBook(ctx, "L1", "044101634X"), ErrBookNotFound)
			assert.ErrorIs(t, s.UpdateBook(ctx, "L1", updated), ErrBookNotFound)
		})
	}
}

func TestStore_SummariesMatchLists(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.CreateList(ctx, "A", "First"))
			require.NoError(t, s.CreateList(ctx, "B", "Second"))
			require.NoError(t, s.AddBook(ctx, "A", sampleBook("111")))
			require.NoError(t, s.RenameList(ctx, "B", "Renamed"))
			require.NoError(t, s.CreateList(ctx, "C", "Third"))
			require.NoError(t, s.DeleteList(ctx, "C"))

			lists, err := s.Lists(ctx)
			require.NoError(t, err)
			summaries, err := s.ListSummaries(ctx)
			require.NoError(t, err)

			require.Len(t, summaries, len(lists))
			for id, list := range lists {
				assert.Equal(t, list.ListName, summaries[id].ListName, id)
			}
			assert.Equal(t, "Renamed", summaries["B"].ListName)
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			assert.ErrorIs(t, s.CreateList(ctx, "L1", "x"), context.Canceled)
			_, err := s.Lists(ctx)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestFactory_UnknownBackend(t *testing.T) {
	_, err := New("mongodb", Config{})
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestFactory_Memory(t *testing.T) {
	s, err := New("memory", Config{})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &MemoryStore{}, s)
}
