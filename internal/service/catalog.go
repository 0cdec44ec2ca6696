package service

import (
	"strings"

	"github.com/rdxa101ou/bookvibe/internal/models"
)

// StatusAll disables status filtering on the catalog.
const StatusAll = "all"

// MatchesCatalog is the catalog filter predicate: the search term must be a
// case-insensitive substring of the title OR the author, and the status must
// match exactly unless the filter is "all" (or empty). Both conditions apply
// conjunctively.
func MatchesCatalog(b models.Book, term, status string) bool {
	if term != "" {
		q := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) {
			return false
		}
	}
	if status != "" && status != StatusAll && b.Status != status {
		return false
	}
	return true
}

// MatchesAdminSearch mirrors the catalog substring predicate but additionally
// matches against the status text, as the admin table search does.
func MatchesAdminSearch(b models.Book, term string) bool {
	if term == "" {
		return true
	}
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Status), q)
}

// FilterCatalog applies MatchesCatalog over a list. It is a pure function of
// its inputs: filtering twice with the same (term, status) yields the same
// set, and the input order is preserved.
func FilterCatalog(list []models.Book, term, status string) []models.Book {
	out := make([]models.Book, 0, len(list))
	for _, b := range list {
		if MatchesCatalog(b, term, status) {
			out = append(out, b)
		}
	}
	return out
}

// FilterAdmin applies MatchesAdminSearch over a list.
func FilterAdmin(list []models.Book, term string) []models.Book {
	out := make([]models.Book, 0, len(list))
	for _, b := range list {
		if MatchesAdminSearch(b, term) {
			out = append(out, b)
		}
	}
	return out
}
