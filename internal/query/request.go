package query

import (
	"sort"
	"strings"
)

// FilterClause is a single (field, operator, value) filter. All clauses in a
// request combine by logical AND. Raw carries the wire-level operator token so
// error messages and the canonical encoding can name exactly what the client
// sent.
type FilterClause struct {
	Field string
	Op    Operator
	Raw   string
	Value string
}

// SortClause is a single sort key. Clause order fixes sort priority.
type SortClause struct {
	Field string
	Desc  bool
}

// Request is the canonical, structured form of a list/search query. It is
// created fresh per request and never outlives the call.
type Request struct {
	FreeText string
	Filters  []FilterClause
	Sorts    []SortClause
	Fields   []string
	Includes []string
	Page     int
	PageSize int
}

// Canonicalize reorders the request into its canonical form: filters sorted by
// (field, operator) and fields/includes sorted lexically. Two requests that
// differ only in client-supplied token order canonicalize identically, which
// is what makes cache keys deterministic. Sort order is untouched: it carries
// priority semantics.
func (r *Request) Canonicalize() {
	sort.SliceStable(r.Filters, func(i, j int) bool {
		if r.Filters[i].Field != r.Filters[j].Field {
			return r.Filters[i].Field < r.Filters[j].Field
		}
		return r.Filters[i].Raw < r.Filters[j].Raw
	})
	sort.Strings(r.Fields)
	sort.Strings(r.Includes)
}

// HasField reports whether the projection whitelist names the given field.
// An empty whitelist means every field is returned.
func (r *Request) HasField(name string) bool {
	if len(r.Fields) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, f := range r.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// PagedResult is one materialized page of entities plus the total match count
// independent of paging.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}
