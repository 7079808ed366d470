package query

import (
	"fmt"
	"strings"
)

// Predicate is a boolean test over one entity, composed from filter clauses
// by logical AND.
type Predicate[T any] func(T) bool

// CompilePredicate combines a request's filters and free-text term with the
// field registry into one composite predicate. Every invalid clause is
// accumulated, never fail-fast, so one response can report all of them.
func CompilePredicate[T any](reg *Registry[T], req *Request) (Predicate[T], error) {
	var (
		tests []Predicate[T]
		errs  ValidationErrors
	)

	for _, clause := range req.Filters {
		field, ok := reg.Resolve(clause.Field)
		if !ok {
			errs = append(errs, unknownFieldError(reg, clause.Field))
			continue
		}
		test, ferr := compileClause(field, clause)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		tests = append(tests, test)
	}

	if term := strings.TrimSpace(req.FreeText); term != "" {
		if searchable, ok := reg.Searchable(); ok {
			needle := strings.ToLower(term)
			tests = append(tests, func(item T) bool {
				return strings.Contains(strings.ToLower(fieldString(searchable.Get(item))), needle)
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return func(item T) bool {
		for _, test := range tests {
			if !test(item) {
				return false
			}
		}
		return true
	}, nil
}

// compileClause coerces the clause value to the field's kind and binds the
// operator to a closure over the field accessor.
func compileClause[T any](field Field[T], clause FilterClause) (Predicate[T], *FieldError) {
	if clause.Op == OpInvalid {
		return nil, &FieldError{
			Field:    clause.Field,
			Operator: clause.Raw,
			Value:    clause.Value,
			Message:  fmt.Sprintf("unknown operator %q", clause.Raw),
		}
	}
	if !clause.Op.appliesTo(field.Kind) {
		return nil, &FieldError{
			Field:    clause.Field,
			Operator: clause.Raw,
			Value:    clause.Value,
			Message:  fmt.Sprintf("operator %q is not supported for this field", clause.Raw),
		}
	}

	switch clause.Op {
	case OpEq, OpNeq:
		coerced, err := coerceValue(field.Kind, clause.Value)
		if err != nil {
			return nil, coercionError(clause, err)
		}
		negate := clause.Op == OpNeq
		return func(item T) bool {
			return equalValue(field.Kind, field.Get(item), coerced) != negate
		}, nil

	case OpGt, OpGte, OpLt, OpLte:
		coerced, err := coerceValue(field.Kind, clause.Value)
		if err != nil {
			return nil, coercionError(clause, err)
		}
		op := clause.Op
		return func(item T) bool {
			cmp, ok := orderValue(field.Kind, field.Get(item), coerced)
			if !ok {
				return false
			}
			switch op {
			case OpGt:
				return cmp > 0
			case OpGte:
				return cmp >= 0
			case OpLt:
				return cmp < 0
			default:
				return cmp <= 0
			}
		}, nil

	case OpIn:
		var set []any
		for _, part := range strings.Split(clause.Value, ",") {
			coerced, err := coerceValue(field.Kind, strings.TrimSpace(part))
			if err != nil {
				return nil, coercionError(clause, err)
			}
			set = append(set, coerced)
		}
		return func(item T) bool {
			v := field.Get(item)
			for _, coerced := range set {
				if equalValue(field.Kind, v, coerced) {
					return true
				}
			}
			return false
		}, nil

	case OpContains, OpStartsWith, OpEndsWith:
		needle := strings.ToLower(clause.Value)
		op := clause.Op
		return func(item T) bool {
			haystack := strings.ToLower(fieldString(field.Get(item)))
			switch op {
			case OpContains:
				return strings.Contains(haystack, needle)
			case OpStartsWith:
				return strings.HasPrefix(haystack, needle)
			default:
				return strings.HasSuffix(haystack, needle)
			}
		}, nil

	default:
		return nil, &FieldError{
			Field:    clause.Field,
			Operator: clause.Raw,
			Value:    clause.Value,
			Message:  fmt.Sprintf("unknown operator %q", clause.Raw),
		}
	}
}

func coercionError(clause FilterClause, err error) *FieldError {
	return &FieldError{
		Field:    clause.Field,
		Operator: clause.Raw,
		Value:    clause.Value,
		Message:  err.Error(),
	}
}
