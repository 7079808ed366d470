package query

import (
	"context"
	"fmt"
	"sort"
)

// Source is the abstract queryable collection the executor operates on. Fetch
// must honor context cancellation so a client disconnect aborts work before
// materialization, and must eagerly expand the named relations it is handed.
// The executor only passes includes it has already checked against the
// registry's allow-list.
type Source[T any] interface {
	Fetch(ctx context.Context, includes []string) ([]T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context, includes []string) ([]T, error)

// Fetch implements Source.
func (f SourceFunc[T]) Fetch(ctx context.Context, includes []string) ([]T, error) {
	return f(ctx, includes)
}

// Execute runs the compiled query against a source: filter, count, order,
// paginate, project, materialize. TotalCount always reflects the filter
// alone; a page past the end yields empty items with the correct total, not
// an error. A nil predicate matches everything and a nil comparator keeps
// source order.
func Execute[T any](ctx context.Context, src Source[T], reg *Registry[T], req *Request, pred Predicate[T], cmp Comparator[T]) (*PagedResult[T], error) {
	var errs ValidationErrors
	for _, inc := range req.Includes {
		if !reg.AllowsInclude(inc) {
			errs = append(errs, FieldError{
				Field:   inc,
				Message: fmt.Sprintf("unknown include for %s", reg.Entity()),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	all, err := src.Fetch(ctx, req.Includes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", reg.Entity(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := all
	if pred != nil {
		matched = make([]T, 0, len(all))
		for _, item := range all {
			if pred(item) {
				matched = append(matched, item)
			}
		}
	}

	total := len(matched)

	if cmp != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return cmp(matched[i], matched[j]) < 0
		})
	}

	skip := (req.Page - 1) * req.PageSize
	if skip > total {
		skip = total
	}
	take := req.PageSize
	if skip+take > total {
		take = total - skip
	}

	items := make([]T, 0, take)
	for _, item := range matched[skip : skip+take] {
		items = append(items, reg.Project(item, req.Fields))
	}

	return &PagedResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}
