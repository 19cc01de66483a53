// Package queries holds the read side: handlers that answer straight from
// the database without loading aggregates.
package queries

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// clampPage forces page >= 1 and 1 <= limit <= MaxPageLimit. A non-positive
// limit means the default.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return page, limit
}

func newPage[T any](items []T, page, limit int, total int64) Page[T] {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
