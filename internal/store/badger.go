package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"readinglist/internal/entity"
)

const listKeyPrefix = "list:"

// BadgerStore keeps each reading list as one JSON document under
// listKeyPrefix+listID. Conditional add/update semantics run inside a single
// transaction, so "list missing", "ISBN present" and "ISBN missing" are
// distinguished exactly. The summary projection is derived on read, never
// stored, so it cannot diverge from the primary documents.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBadgerStore opens the database at path. An empty path opens an in-memory
// instance, used by tests.
func NewBadgerStore(path string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is noisy at INFO
	if path == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.SyncWrites = true
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("badger database opened", "path", path, "in_memory", path == "")
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) Close() error {
	if s.logger != nil {
		s.logger.Info("closing badger database")
	}
	return s.db.Close()
}

func listKey(listID string) []byte {
	return []byte(listKeyPrefix + listID)
}

// getList reads and decodes one list document inside txn.
func getList(txn *badger.Txn, listID string) (entity.ReadingList, error) {
	var list entity.ReadingList

	item, err := txn.Get(listKey(listID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return list, ErrListNotFound
	}
	if err != nil {
		return list, fmt.Errorf("get list %s: %w", listID, err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &list)
	})
	if err != nil {
		return list, fmt.Errorf("decode list %s: %w", listID, err)
	}
	return list, nil
}

// putList encodes and writes one list document inside txn.
func putList(txn *badger.Txn, listID string, list entity.ReadingList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode list %s: %w", listID, err)
	}
	if err := txn.Set(listKey(listID), data); err != nil {
		return fmt.Errorf("set list %s: %w", listID, err)
	}
	return nil
}

func (s *BadgerStore) CreateList(ctx context.Context, listID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return putList(txn, listID, entity.ReadingList{
			ListName: name,
			Books:    map[string]entity.Book{},
		})
	})
}

func (s *BadgerStore) Lists(ctx context.Context) (map[string]entity.ReadingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lists := make(map[string]entity.ReadingList)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(listKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			listID := strings.TrimPrefix(string(item.Key()), listKeyPrefix)

			var list entity.ReadingList
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &list)
			})
			if err != nil {
				return fmt.Errorf("decode list %s: %w", listID, err)
			}
			lists[listID] = list
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *BadgerStore) ListSummaries(ctx context.Context) (map[string]entity.ListSummary, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]entity.ListSummary, len(lists))
	for id, list := range lists {
		summaries[id] = entity.ListSummary{ListName: list.ListName}
	}
	return summaries, nil
}

func (s *BadgerStore) GetList(ctx context.Context, listID string) (entity.ReadingList, error) {
	var list entity.ReadingList
	if err := ctx.Err(); err != nil {
		return list, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		list, err = getList(txn, listID)
		return err
	})
	return list, err
}

func (s *BadgerStore) RenameList(ctx context.Context, listID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		list, err := getList(txn, listID)
		if err != nil {
			return err
		}
		list.ListName = name
		return putList(txn, listID, list)
	})
}

func (s *BadgerStore) DeleteList(ctx context.Context, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(listKey(listID)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrListNotFound
		} else if err != nil {
			return fmt.Errorf("get list %s: %w", listID, err)
		}
		if err := txn.Delete(listKey(listID)); err != nil {
			return fmt.Errorf("delete list %s: %w", listID, err)
		}
		return nil
	})
}

func (s *BadgerStore) AddBook(ctx context.Context, listID string, book entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		list, err := getList(txn, listID)
		if err != nil {
			return err
		}
		if _, exists := list.Books[book.ISBN]; exists {
			return ErrBookExists
		}
		if list.Books == nil {
			list.Books = map[string]entity.Book{}
		}
		list.Books[book.ISBN] = book
		return putList(txn, listID, list)
	})
}

func (s *BadgerStore) GetBook(ctx context.Context, listID, isbn string) (entity.Book, error) {
	var book entity.Book
	if err := ctx.Err(); err != nil {
		return book, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		list, err := getList(txn, listID)
		if err != nil {
			return err
		}
		b, ok := list.Books[isbn]
		if !ok {
			return ErrBookNotFound
		}
		book = b
		return nil
	})
	return book, err
}

func (s *BadgerStore) UpdateBook(ctx context.Context, listID string, book entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		list, err := getList(txn, listID)
		if err != nil {
			return err
		}
		if _, exists := list.Books[book.ISBN]; !exists {
			return ErrBookNotFound
		}
		list.Books[book.ISBN] = book
		return putList(txn, listID, list)
	})
}

func (s *BadgerStore) DeleteBook(ctx context.Context, listID, isbn string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		list, err := getList(txn, listID)
		if err != nil {
			return err
		}
		if _, exists := list.Books[isbn]; !exists {
			return ErrBookNotFound
		}
		delete(list.Books, isbn)
		return putList(txn, listID, list)
	})
}
