package entity

import "strings"

// Book reading statuses.
const (
	StatusUnread     = "Unread"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
)

// PlaceholderImage is stored for books without a cover URL.
const PlaceholderImage = "https://upload.wikimedia.org/wikipedia/commons/6/65/No-Image-Placeholder.svg"

func ValidStatus(status string) bool {
	switch status {
	case StatusUnread, StatusInProgress, StatusFinished:
		return true
	default:
		return false
	}
}

// Book is a single entry in a reading list. Its key in the parent Books map
// is always its own cleaned ISBN.
type Book struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Status string `json:"status"`
	Image  string `json:"image"`
}

type ReadingList struct {
	ListName string          `json:"listName"`
	Books    map[string]Book `json:"books"`
}

// ListSummary is the lightweight projection of a reading list used for
// enumeration without transferring the full book collection.
type ListSummary struct {
	ListName string `json:"listName"`
}

// CleanISBN trims surrounding whitespace and strips everything that is not an
// ASCII letter or digit. The result is used as the storage key for a book, so
// hyphenated and spaced ISBNs resolve to the same entry. No checksum
// validation is performed.
func CleanISBN(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
