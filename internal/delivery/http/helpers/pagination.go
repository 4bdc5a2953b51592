package helpers

import (
	"net/http"
	"strconv"

	"explorewithme/internal/domain"
)

// MaxPageSize caps the size query parameter.
const MaxPageSize = 1000

// ParsePage reads from and size from the query string. from is an offset and
// defaults to 0; size defaults to domain.DefaultPageSize. Malformed or out of range
// values are a validation error.
func ParsePage(r *http.Request) (domain.Page, error) {
	var v domain.Validator
	page := domain.Page{From: 0, Size: domain.DefaultPageSize}
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		n, err := strconv.Atoi(s)
		v.Check(err == nil && n >= 0, "from", "must be a non-negative integer")
		page.From = n
	}
	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		v.Check(err == nil && n >= 1 && n <= MaxPageSize, "size", "must be between 1 and "+strconv.Itoa(MaxPageSize))
		page.Size = n
	}
	if err := v.Err(); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}
