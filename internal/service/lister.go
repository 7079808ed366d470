package service

import (
	"context"
	"encoding/json"
	"net/url"

	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/pkg/database"
	"github.com/tradecore/tradecore/api/internal/pkg/logger"
	"github.com/tradecore/tradecore/api/internal/query"
)

// Lister runs registry-driven list queries for one entity behind a Redis
// read-through cache. Validation failures never touch the cache or the
// source.
type Lister[T any] struct {
	registry *query.Registry[T]
	source   query.Source[T]
	cache    *database.Cache
	opts     query.Options
}

// NewLister creates a cached list runner for one entity
func NewLister[T any](registry *query.Registry[T], source query.Source[T], cache *database.Cache, opts query.Options) *Lister[T] {
	return &Lister[T]{
		registry: registry,
		source:   source,
		cache:    cache,
		opts:     opts,
	}
}

// List parses raw query parameters, compiles them against the registry
// and executes the query, serving from cache when possible. Compilation
// failures are returned as query.ValidationErrors with every problem
// accumulated.
func (l *Lister[T]) List(ctx context.Context, params url.Values) (*query.PagedResult[T], error) {
	req := query.Parse(params, l.opts)

	var errs query.ValidationErrors

	pred, err := query.CompilePredicate(l.registry, req)
	if err != nil {
		if ve, ok := query.AsValidationErrors(err); ok {
			errs = append(errs, ve...)
		} else {
			return nil, err
		}
	}

	cmp, err := query.CompileSort(l.registry, req.Sorts)
	if err != nil {
		if ve, ok := query.AsValidationErrors(err); ok {
			errs = append(errs, ve...)
		} else {
			return nil, err
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	key := query.CacheKey(l.registry.Entity(), req)

	if l.cache != nil {
		if cached, ok := l.cache.Get(ctx, key); ok {
			var result query.PagedResult[T]
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
			// Unreadable entries are dropped and recomputed.
			_ = l.cache.Delete(ctx, key)
		}
	}

	result, err := query.Execute(ctx, l.source, l.registry, req, pred, cmp)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if encoded, err := json.Marshal(result); err == nil {
			if err := l.cache.Set(ctx, key, string(encoded)); err != nil {
				logger.Warn("failed to cache list result",
					zap.String("entity", l.registry.Entity()),
					zap.Error(err),
				)
			}
		}
	}

	return result, nil
}
