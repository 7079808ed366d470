package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Wire-level parameter names consumed by Parse.
const (
	paramFreeText = "q"
	paramSort     = "sort"
	paramFields   = "fields"
	paramInclude  = "include"
	paramPage     = "page"
	paramPageSize = "pageSize"
)

// Options bounds pagination for parsed requests.
type Options struct {
	DefaultPageSize int
	MinPageSize     int
	MaxPageSize     int
}

// DefaultOptions are used for any Options field left at zero.
var DefaultOptions = Options{
	DefaultPageSize: 20,
	MinPageSize:     1,
	MaxPageSize:     100,
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = DefaultOptions.DefaultPageSize
	}
	if o.MinPageSize <= 0 {
		o.MinPageSize = DefaultOptions.MinPageSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = DefaultOptions.MaxPageSize
	}
	return o
}

// Parse converts raw wire-level key/value pairs into a canonical Request.
//
// Filter keys take the forms filter[field] (implicit eq) and
// filter[field][op]. When the same (field, operator) pair appears more than
// once the later occurrence overwrites the earlier one; the explicit-operator
// form overwrites the implicit one. Unknown operator tokens are kept so the
// predicate compiler can report them alongside every other invalid clause.
//
// Missing or unparsable page/pageSize fall back to the configured defaults
// rather than failing: a deliberate leniency, not a masked error.
func Parse(raw url.Values, opts Options) *Request {
	opts = opts.withDefaults()

	req := &Request{
		FreeText: strings.TrimSpace(raw.Get(paramFreeText)),
		Sorts:    parseSorts(raw.Get(paramSort)),
		Fields:   parseTokenSet(raw.Get(paramFields)),
		Includes: parseTokenSet(raw.Get(paramInclude)),
		Page:     parseIntOr(raw.Get(paramPage), 1),
		PageSize: parseIntOr(raw.Get(paramPageSize), opts.DefaultPageSize),
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < opts.MinPageSize {
		req.PageSize = opts.MinPageSize
	}
	if req.PageSize > opts.MaxPageSize {
		req.PageSize = opts.MaxPageSize
	}

	// Wire keys iterate in sorted order so case-variant duplicates like
	// filter[Name] and filter[name], which fold to the same clause, resolve
	// the same way on every request instead of following map iteration order.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Implicit-eq keys first, explicit-operator keys second, so the explicit
	// form wins when both address the same (field, operator) pair.
	seen := make(map[string]int)
	for _, explicitPass := range []bool{false, true} {
		for _, key := range keys {
			values := raw[key]
			field, rawOp, explicit, ok := parseFilterKey(key)
			if !ok || explicit != explicitPass || len(values) == 0 {
				continue
			}
			clause := FilterClause{
				Field: field,
				Raw:   rawOp,
				Value: values[len(values)-1],
			}
			clause.Op, _ = ParseOperator(rawOp)

			dedupe := field + "\x00" + rawOp
			if idx, dup := seen[dedupe]; dup {
				req.Filters[idx] = clause
				continue
			}
			seen[dedupe] = len(req.Filters)
			req.Filters = append(req.Filters, clause)
		}
	}

	req.Canonicalize()
	return req
}

// parseFilterKey splits filter[field] and filter[field][op] keys. The
// explicit flag distinguishes the two forms for overwrite precedence.
func parseFilterKey(key string) (field, rawOp string, explicit, ok bool) {
	const prefix = "filter["
	if !strings.HasPrefix(key, prefix) {
		return "", "", false, false
	}
	rest := key[len(prefix):]

	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return "", "", false, false
	}
	field = strings.ToLower(strings.TrimSpace(rest[:end]))
	rest = rest[end+1:]

	if rest == "" {
		return field, OpEq.String(), false, field != ""
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return "", "", false, false
	}
	rawOp = strings.ToLower(strings.TrimSpace(rest[1 : len(rest)-1]))
	if rawOp == "" || strings.ContainsAny(rawOp, "[]") {
		return "", "", false, false
	}
	return field, rawOp, true, field != ""
}

// parseSorts splits the comma-separated sort token list. Token order fixes
// sort priority; a leading '-' marks descending order.
func parseSorts(s string) []SortClause {
	if s == "" {
		return nil
	}
	var sorts []SortClause
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		desc := strings.HasPrefix(tok, "-")
		tok = strings.ToLower(strings.TrimPrefix(tok, "-"))
		if tok == "" {
			continue
		}
		sorts = append(sorts, SortClause{Field: tok, Desc: desc})
	}
	return sorts
}

// parseTokenSet splits, trims, lowercases, and de-duplicates a comma-separated
// token list.
func parseTokenSet(s string) []string {
	if s == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tokens []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
