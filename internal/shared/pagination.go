package shared

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit applies when a list request omits the limit parameter.
	DefaultLimit = 20
	// MaxLimit caps the page size for every list endpoint.
	MaxLimit = 100
)

// Page holds bounded limit/offset values for list queries.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit/offset query parameters, applying defaults and the
// page-size cap. Malformed or negative values fall back to the defaults.
func ParsePage(query url.Values) Page {
	page := Page{Limit: DefaultLimit}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			page.Limit = limit
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			page.Offset = offset
		}
	}
	return page
}
