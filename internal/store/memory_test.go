package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readinglist/internal/entity"
)

func TestMemoryStore_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "readingLists.json")

	s, err := NewMemoryStore(file, 0, nil)
	require.NoError(t, err)

	require.NoError(t, s.CreateList(ctx, "L1", "SciFi"))
	require.NoError(t, s.AddBook(ctx, "L1", entity.Book{
		ISBN:   "3551557470",
		Title:  "Harry Potter and the Deathly Hallows",
		Author: "J. K. Rowling",
		Status: entity.StatusUnread,
		Image:  entity.PlaceholderImage,
	}))

	// Close flushes the final snapshot.
	require.NoError(t, s.Close())

	reloaded, err := NewMemoryStore(file, 0, nil)
	require.NoError(t, err)
	defer reloaded.Close()

	list, err := reloaded.GetList(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "SciFi", list.ListName)
	require.Contains(t, list.Books, "3551557470")
	assert.Equal(t, "J. K. Rowling", list.Books["3551557470"].Author)
}

func TestMemoryStore_MissingFileStartsEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nope.json")

	s, err := NewMemoryStore(file, 0, nil)
	require.NoError(t, err)
	defer s.Close()

	lists, err := s.Lists(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestMemoryStore_CorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, err := NewMemoryStore(file, 0, nil)
	assert.Error(t, err)
}

func TestMemoryStore_PeriodicFlush(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "readingLists.json")

	s, err := NewMemoryStore(file, 10*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, s.CreateList(ctx, "L1", "Flushed"))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(file)
		return err == nil && len(data) > 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Close())
}

func TestMemoryStore_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore("", 0, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.CreateList(ctx, "L1", "SciFi"))
	require.NoError(t, s.AddBook(ctx, "L1", entity.Book{ISBN: "1", Title: "A", Author: "B", Status: entity.StatusUnread}))

	list, err := s.GetList(ctx, "L1")
	require.NoError(t, err)
	list.Books["1"] = entity.Book{ISBN: "1", Title: "mutated"}
	delete(list.Books, "1")

	got, err := s.GetBook(ctx, "L1", "1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}
