package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortField names a player field that listings may be ordered by.
type SortField string

const (
	SortByRuns   SortField = "runs"
	SortBySalary SortField = "salary"
)

// SortableFields is the allow-list for the sortBy parameter. Adding a field
// here (plus its column in the Postgres store) is all it takes to expose it.
var SortableFields = []SortField{SortByRuns, SortBySalary}

// ParseSortField returns the SortField named s, if it is sortable.
func ParseSortField(s string) (SortField, bool) {
	for _, f := range SortableFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

func sortableNames() string {
	names := make([]string, len(SortableFields))
	for i, f := range SortableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Sort is an ordering request. The zero value keeps the store's default order.
type Sort struct {
	Field SortField
	Desc  bool
}

func (s Sort) IsZero() bool {
	return s.Field == ""
}

// Filter selects players. Empty fields match everything; set fields are ANDed.
type Filter struct {
	// Team matches exactly.
	Team string
	// NameContains matches a case-insensitive substring of the name.
	NameContains string
}

// Query is the full request handed to a Repository.
type Query struct {
	Filter Filter
	Sort   Sort
	Offset int
	Limit  int
}

// ListParams are the raw listing parameters as received from the caller.
// Empty strings mean "not supplied".
type ListParams struct {
	Page   string
	Limit  string
	Team   string
	Search string
	SortBy string
}

// ListRequest is the validated form of ListParams.
type ListRequest struct {
	Page   int
	Limit  int
	Filter Filter
	Sort   Sort
}

// ListResult is one page of players plus the unpaginated match count.
type ListResult struct {
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
	Players []Player `json:"players"`
}

// ParseListParams validates p. page and limit are both parsed before either
// is checked; the first failing rule, in the order page, limit, sortBy, is
// returned as a *ParamError.
func ParseListParams(p ListParams) (ListRequest, error) {
	page, pageOK := parsePositive(p.Page, DefaultPage)
	limit, limitOK := parsePositive(p.Limit, DefaultLimit)

	if !pageOK {
		return ListRequest{}, &ParamError{
			Param:   "page",
			Message: "Invalid 'page' parameter. Must be a positive number.",
		}
	}
	if !limitOK {
		return ListRequest{}, &ParamError{
			Param:   "limit",
			Message: "Invalid 'limit' parameter. Must be a positive number.",
		}
	}

	req := ListRequest{
		Page:  page,
		Limit: limit,
		Filter: Filter{
			Team:         p.Team,
			NameContains: p.Search,
		},
	}

	if p.SortBy != "" {
		field, ok := ParseSortField(p.SortBy)
		if !ok {
			return ListRequest{}, &ParamError{
				Param:   "sortBy",
				Message: fmt.Sprintf("sortBy must be one of: %s", sortableNames()),
			}
		}
		req.Sort = Sort{Field: field, Desc: true}
	}

	return req, nil
}

// Query converts the request into a store query with a zero-based offset.
func (r ListRequest) Query() Query {
	return Query{
		Filter: r.Filter,
		Sort:   r.Sort,
		Offset: offset(r.Page, r.Limit),
		Limit:  r.Limit,
	}
}

func parsePositive(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// offset returns (page-1)*limit, saturating instead of overflowing.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
