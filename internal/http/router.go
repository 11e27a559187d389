package http

import (
	"context"
	"net/http"
	"time"

	"readinglist/internal/store"
)

// NewRouter wires every route to its handler. Method-qualified patterns make
// the mux answer 405 for wrong verbs on known paths.
func NewRouter(st store.Store, lists *ReadingListHandler, books *BookHandler, search *SearchHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if _, err := st.ListSummaries(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("POST /reading-lists", lists.Create)
	mux.HandleFunc("GET /reading-lists", lists.List)
	mux.HandleFunc("GET /reading-lists-info", lists.ListInfo)
	mux.HandleFunc("GET /reading-lists/{listID}", lists.Get)
	mux.HandleFunc("PUT /reading-lists/{listID}", lists.Rename)
	mux.HandleFunc("DELETE /reading-lists/{listID}", lists.Delete)

	mux.HandleFunc("POST /reading-lists/{listID}/books", books.Add)
	mux.HandleFunc("GET /reading-lists/{listID}/books/{isbn}", books.Get)
	mux.HandleFunc("PUT /reading-lists/{listID}/books/{isbn}", books.Update)
	mux.HandleFunc("DELETE /reading-lists/{listID}/books/{isbn}", books.Delete)

	if search != nil {
		mux.HandleFunc("GET /search", search.Search)
	}

	return mux
}
