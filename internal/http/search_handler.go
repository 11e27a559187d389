package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"readinglist/internal/entity"
	"readinglist/internal/platform/openlibrary"
)

// SearchHandler proxies the search-to-add flow to Open Library so browser
// clients don't have to call it cross-origin. Results are never persisted.
type SearchHandler struct {
	client *openlibrary.Client
	logger *slog.Logger
}

func NewSearchHandler(client *openlibrary.Client, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{client: client, logger: logger}
}

type searchResult struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Image  string `json:"image"`
}

// pickISBN chooses the representative ISBN from a search doc: the longest
// all-digit candidate (favors ISBN-13 over ISBN-10), falling back to the
// first entry.
func pickISBN(isbns []string) string {
	var best string
	for _, raw := range isbns {
		cleaned := entity.CleanISBN(raw)
		if cleaned == "" {
			continue
		}
		allDigits := true
		for _, r := range cleaned {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits && len(cleaned) > len(best) {
			best = cleaned
		}
	}
	if best == "" && len(isbns) > 0 {
		best = entity.CleanISBN(isbns[0])
	}
	return best
}

// @Summary Search Open Library for books to add
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		Error(w, http.StatusBadRequest, "BAD_REQUEST", "Query parameter q is required", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	res, err := h.client.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Error("open library search failed", "query", query, "error", err)
		Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Book search is unavailable", nil)
		return
	}

	results := make([]searchResult, 0, len(res.Docs))
	for _, doc := range res.Docs {
		isbn := pickISBN(doc.ISBN)

		var author string
		if len(doc.AuthorNames) > 0 {
			author = doc.AuthorNames[0]
		}

		image := entity.PlaceholderImage
		if isbn != "" {
			image = openlibrary.CoverURL(isbn)
		}

		results = append(results, searchResult{
			ISBN:   isbn,
			Title:  doc.Title,
			Author: author,
			Image:  image,
		})
	}

	JSON(w, http.StatusOK, results)
}
