package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"readinglist/internal/entity"
)

// Root documents. ReadingLists maps listID to the full list document,
// ListsInfo maps listID to its name-only summary.
const (
	listsRootKey   = "ReadingLists"
	summaryRootKey = "ListsInfo"
)

// RedisStore persists everything inside two root JSON documents on a Redis
// server with the JSON module, addressed by JSONPath. Conditional semantics
// use JSON.SET NX/XX; a no-op NX/XX reply alone cannot tell "list missing"
// from "book present/missing", so mutations pre-check the list path first and
// accept the small race window that leaves.
//
// The primary and summary documents are written in one MULTI/EXEC so they
// cannot diverge under partial failure.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	// Create empty root documents on first run.
	for _, key := range []string{listsRootKey, summaryRootKey} {
		err := client.JSONSetMode(ctx, key, "$", "{}", "NX").Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			_ = client.Close()
			return nil, fmt.Errorf("init root document %s: %w", key, err)
		}
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// listPath addresses one list inside a root document. Bracket notation keeps
// hyphenated UUIDs valid JSONPath.
func listPath(listID string) string {
	return fmt.Sprintf("$[%q]", listID)
}

func bookPath(listID, isbn string) string {
	return fmt.Sprintf("$[%q].books[%q]", listID, isbn)
}

// listExists checks the list path in the primary document.
func (s *RedisStore) listExists(ctx context.Context, listID string) (bool, error) {
	res, err := s.client.JSONGet(ctx, listsRootKey, listPath(listID)+".listName").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check list %s: %w", listID, err)
	}
	return res != "" && res != "[]", nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

func (s *RedisStore) CreateList(ctx context.Context, listID, name string) error {
	listDoc, err := marshalJSON(entity.ReadingList{ListName: name, Books: map[string]entity.Book{}})
	if err != nil {
		return err
	}
	summaryDoc, err := marshalJSON(entity.ListSummary{ListName: name})
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.JSONSet(ctx, listsRootKey, listPath(listID), listDoc)
	pipe.JSONSet(ctx, summaryRootKey, listPath(listID), summaryDoc)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create list %s: %w", listID, err)
	}
	return nil
}

// rootDocument fetches and decodes an entire root document.
func rootDocument[T any](ctx context.Context, s *RedisStore, key string) (map[string]T, error) {
	res, err := s.client.JSONGet(ctx, key, "$").Result()
	if errors.Is(err, redis.Nil) {
		return map[string]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get root document %s: %w", key, err)
	}

	// A "$" path query wraps the document in a one-element array.
	var docs []map[string]T
	if err := json.Unmarshal([]byte(res), &docs); err != nil {
		return nil, fmt.Errorf("decode root document %s: %w", key, err)
	}
	if len(docs) == 0 {
		return map[string]T{}, nil
	}
	return docs[0], nil
}

func (s *RedisStore) Lists(ctx context.Context) (map[string]entity.ReadingList, error) {
	return rootDocument[entity.ReadingList](ctx, s, listsRootKey)
}

func (s *RedisStore) ListSummaries(ctx context.Context) (map[string]entity.ListSummary, error) {
	return rootDocument[entity.ListSummary](ctx, s, summaryRootKey)
}

func (s *RedisStore) GetList(ctx context.Context, listID string) (entity.ReadingList, error) {
	var list entity.ReadingList

	res, err := s.client.JSONGet(ctx, listsRootKey, listPath(listID)).Result()
	if errors.Is(err, redis.Nil) {
		return list, ErrListNotFound
	}
	if err != nil {
		return list, fmt.Errorf("get list %s: %w", listID, err)
	}

	var matches []entity.ReadingList
	if err := json.Unmarshal([]byte(res), &matches); err != nil {
		return list, fmt.Errorf("decode list %s: %w", listID, err)
	}
	if len(matches) == 0 {
		return list, ErrListNotFound
	}
	return matches[0], nil
}

func (s *RedisStore) RenameList(ctx context.Context, listID, name string) error {
	exists, err := s.listExists(ctx, listID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrListNotFound
	}

	nameDoc, err := marshalJSON(name)
	if err != nil {
		return err
	}
	summaryDoc, err := marshalJSON(entity.ListSummary{ListName: name})
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.JSONSet(ctx, listsRootKey, listPath(listID)+".listName", nameDoc)
	pipe.JSONSet(ctx, summaryRootKey, listPath(listID), summaryDoc)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rename list %s: %w", listID, err)
	}
	return nil
}

func (s *RedisStore) DeleteList(ctx context.Context, listID string) error {
	pipe := s.client.TxPipeline()
	primary := pipe.JSONDel(ctx, listsRootKey, listPath(listID))
	pipe.JSONDel(ctx, summaryRootKey, listPath(listID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete list %s: %w", listID, err)
	}
	if primary.Val() == 0 {
		return ErrListNotFound
	}
	return nil
}

func (s *RedisStore) AddBook(ctx context.Context, listID string, book entity.Book) error {
	exists, err := s.listExists(ctx, listID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrListNotFound
	}

	bookDoc, err := marshalJSON(book)
	if err != nil {
		return err
	}
	err = s.client.JSONSetMode(ctx, listsRootKey, bookPath(listID, book.ISBN), bookDoc, "NX").Err()
	if errors.Is(err, redis.Nil) {
		return ErrBookExists
	}
	if err != nil {
		return fmt.Errorf("add book %s to list %s: %w", book.ISBN, listID, err)
	}
	return nil
}

func (s *RedisStore) GetBook(ctx context.Context, listID, isbn string) (entity.Book, error) {
	var book entity.Book

	exists, err := s.listExists(ctx, listID)
	if err != nil {
		return book, err
	}
	if !exists {
		return book, ErrListNotFound
	}

	res, err := s.client.JSONGet(ctx, listsRootKey, bookPath(listID, isbn)).Result()
	if errors.Is(err, redis.Nil) {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, fmt.Errorf("get book %s from list %s: %w", isbn, listID, err)
	}

	var matches []entity.Book
	if err := json.Unmarshal([]byte(res), &matches); err != nil {
		return book, fmt.Errorf("decode book %s: %w", isbn, err)
	}
	if len(matches) == 0 {
		return book, ErrBookNotFound
	}
	return matches[0], nil
}

func (s *RedisStore) UpdateBook(ctx context.Context, listID string, book entity.Book) error {
	exists, err := s.listExists(ctx, listID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrListNotFound
	}

	bookDoc, err := marshalJSON(book)
	if err != nil {
		return err
	}
	err = s.client.JSONSetMode(ctx, listsRootKey, bookPath(listID, book.ISBN), bookDoc, "XX").Err()
	if errors.Is(err, redis.Nil) {
		return ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("update book %s in list %s: %w", book.ISBN, listID, err)
	}
	return nil
}

func (s *RedisStore) DeleteBook(ctx context.Context, listID, isbn string) error {
	exists, err := s.listExists(ctx, listID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrListNotFound
	}

	deleted, err := s.client.JSONDel(ctx, listsRootKey, bookPath(listID, isbn)).Result()
	if err != nil {
		return fmt.Errorf("delete book %s from list %s: %w", isbn, listID, err)
	}
	if deleted == 0 {
		return ErrBookNotFound
	}
	return nil
}
