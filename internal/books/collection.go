// Package books holds the pure logic of the collection view: filtering,
// summary counts, and the tag string format used by the add/edit form.
//
// Nothing here does I/O. The loaded collection comes in as a slice and the
// filtered view comes out as a new slice — the view is always a pure
// function of (collection, filter state) and is recomputed, never patched.
package books

import (
	"strings"

	"github.com/mohmadimran/books-manager-frontend/internal/model"
)

// Summary are the dashboard counts. They are always computed over the
// UNFILTERED collection — changing a filter never changes the cards.
type Summary struct {
	Total     int
	Want      int
	Reading   int
	Completed int
}

// Filter returns the books that pass BOTH the status and the tag filter.
//
// Status: an empty statusFilter passes everything; otherwise the book's
// status must match exactly.
//
// Tag: a blank tagFilter passes everything; otherwise at least one of the
// book's tags must contain tagFilter as a case-insensitive substring.
//
// The input slice is never mutated; identical inputs always produce an
// identical result.
func Filter(collection []model.Book, statusFilter, tagFilter string) []model.Book {
	filtered := make([]model.Book, 0, len(collection))
	for _, b := range collection {
		if !passesStatus(b, statusFilter) {
			continue
		}
		if !passesTag(b, tagFilter) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func passesStatus(b model.Book, statusFilter string) bool {
	return statusFilter == "" || string(b.Status) == statusFilter
}

func passesTag(b model.Book, tagFilter string) bool {
	needle := strings.TrimSpace(tagFilter)
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Summarize computes the dashboard counts over the full collection.
func Summarize(collection []model.Book) Summary {
	s := Summary{Total: len(collection)}
	for _, b := range collection {
		switch b.Status {
		case model.StatusWantToRead:
			s.Want++
		case model.StatusReading:
			s.Reading++
		case model.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// ParseTags turns the form's comma-separated tag string into the tag
// sequence sent to the backend. Each entry is trimmed, but empty entries
// are KEPT: "fiction, , Sci-Fi " becomes ["fiction", "", "Sci-Fi"].
//
// Keeping empties matches the behaviour users already rely on (tags render
// back exactly as saved); dropping them would silently rewrite data on the
// next edit.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinTags renders a tag sequence for editing, the inverse of ParseTags
// modulo whitespace.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
