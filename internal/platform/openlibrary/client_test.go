package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "title,author_name,isbn", r.URL.Query().Get("fields"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"numFound": 1,
			"docs": [{"title": "Dune", "author_name": ["Frank Herbert"], "isbn": ["044101634X", "9780441016341"]}]
		}`))
	}))
	defer server.Close()

	client := NewClient("readinglist-test", 100, 0).WithBaseURL(server.URL)

	res, err := client.Search(context.Background(), "dune", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NumFound)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "Dune", res.Docs[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, res.Docs[0].AuthorNames)
}

func TestClient_SearchUpstreamClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("readinglist-test", 100, 2).WithBaseURL(server.URL)

	_, err := client.Search(context.Background(), "dune", 5)
	assert.Error(t, err)
}

func TestClient_SearchRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"numFound": 0, "docs": []}`))
	}))
	defer server.Close()

	client := NewClient("readinglist-test", 100, 2).WithBaseURL(server.URL)

	res, err := client.Search(context.Background(), "dune", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NumFound)
	assert.Equal(t, 2, calls)
}

func TestCoverURL(t *testing.T) {
	assert.Equal(t,
		"https://covers.openlibrary.org/b/isbn/044101634X-M.jpg",
		CoverURL("044101634X"))
}
