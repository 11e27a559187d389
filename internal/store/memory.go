package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"readinglist/internal/entity"
)

// MemoryStore keeps every reading list in a map guarded by an RWMutex. With a
// data file configured it loads the map at startup and flushes it back
// periodically and on Close; without one, data is lost on restart. Safe for
// concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string]entity.ReadingList

	file   string
	logger *slog.Logger

	done      chan struct{}
	flusherWG sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore creates the store. file may be empty to disable persistence;
// flushInterval <= 0 disables the periodic flush (Close still writes the
// final snapshot when a file is configured).
func NewMemoryStore(file string, flushInterval time.Duration, logger *slog.Logger) (*MemoryStore, error) {
	s := &MemoryStore{
		lists:  make(map[string]entity.ReadingList),
		file:   file,
		logger: logger,
		done:   make(chan struct{}),
	}

	if file != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
		if flushInterval > 0 {
			s.flusherWG.Add(1)
			go s.flushLoop(flushInterval)
		}
	}
	return s, nil
}

func (s *MemoryStore) load() error {
	data, err := os.ReadFile(s.file)
	if errors.Is(err, os.ErrNotExist) {
		if s.logger != nil {
			s.logger.Info("no data file found, starting empty", "file", s.file)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}
	if err := json.Unmarshal(data, &s.lists); err != nil {
		return fmt.Errorf("decode data file %s: %w", s.file, err)
	}
	if s.logger != nil {
		s.logger.Info("loaded reading lists from file", "file", s.file, "lists", len(s.lists))
	}
	return nil
}

func (s *MemoryStore) flushLoop(interval time.Duration) {
	defer s.flusherWG.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.Flush(); err != nil && s.logger != nil {
				s.logger.Error("flush failed", "file", s.file, "error", err)
			}
		case <-s.done:
			return
		}
	}
}

// Flush writes the current snapshot to the data file. No-op without a file.
func (s *MemoryStore) Flush() error {
	if s.file == "" {
		return nil
	}
	s.mu.RLock()
	data, err := json.Marshal(s.lists)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode reading lists: %w", err)
	}
	if err := os.WriteFile(s.file, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Close stops the flusher and writes a final snapshot.
func (s *MemoryStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.flusherWG.Wait()
		err = s.Flush()
	})
	return err
}

// copyList returns a deep copy so callers cannot mutate shared state.
func copyList(list entity.ReadingList) entity.ReadingList {
	books := make(map[string]entity.Book, len(list.Books))
	for isbn, b := range list.Books {
		books[isbn] = b
	}
	return entity.ReadingList{ListName: list.ListName, Books: books}
}

func (s *MemoryStore) CreateList(ctx context.Context, listID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[listID] = entity.ReadingList{ListName: name, Books: map[string]entity.Book{}}
	return nil
}

func (s *MemoryStore) Lists(ctx context.Context) (map[string]entity.ReadingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entity.ReadingList, len(s.lists))
	for id, list := range s.lists {
		out[id] = copyList(list)
	}
	return out, nil
}

func (s *MemoryStore) ListSummaries(ctx context.Context) (map[string]entity.ListSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entity.ListSummary, len(s.lists))
	for id, list := range s.lists {
		out[id] = entity.ListSummary{ListName: list.ListName}
	}
	return out, nil
}

func (s *MemoryStore) GetList(ctx context.Context, listID string) (entity.ReadingList, error) {
	if err := ctx.Err(); err != nil {
		return entity.ReadingList{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.lists[listID]
	if !ok {
		return entity.ReadingList{}, ErrListNotFound
	}
	return copyList(list), nil
}

func (s *MemoryStore) RenameList(ctx context.Context, listID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[listID]
	if !ok {
		return ErrListNotFound
	}
	list.ListName = name
	s.lists[listID] = list
	return nil
}

func (s *MemoryStore) DeleteList(ctx context.Context, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[listID]; !ok {
		return ErrListNotFound
	}
	delete(s.lists, listID)
	return nil
}

func (s *MemoryStore) AddBook(ctx context.Context, listID string, book entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[listID]
	if !ok {
		return ErrListNotFound
	}
	if _, exists := list.Books[book.ISBN]; exists {
		return ErrBookExists
	}
	if list.Books == nil {
		list.Books = map[string]entity.Book{}
		s.lists[listID] = list
	}
	list.Books[book.ISBN] = book
	return nil
}

func (s *MemoryStore) GetBook(ctx context.Context, listID, isbn string) (entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return entity.Book{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.lists[listID]
	if !ok {
		return entity.Book{}, ErrListNotFound
	}
	book, ok := list.Books[isbn]
	if !ok {
		return entity.Book{}, ErrBookNotFound
	}
	return book, nil
}

func (s *MemoryStore) UpdateBook(ctx context.Context, listID string, book entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[listID]
	if !ok {
		return ErrListNotFound
	}
	if _, exists := list.Books[book.ISBN]; !exists {
		return ErrBookNotFound
	}
	list.Books[book.ISBN] = book
	return nil
}

func (s *MemoryStore) DeleteBook(ctx context.Context, listID, isbn string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[listID]
	if !ok {
		return ErrListNotFound
	}
	if _, exists := list.Books[isbn]; !exists {
		return ErrBookNotFound
	}
	delete(list.Books, isbn)
	return nil
}
