package query

// Comparator orders two entities: negative when a sorts before b.
type Comparator[T any] func(a, b T) int

// CompileSort combines a request's sort clauses with the field registry into
// a single multi-key comparator: ties on the first key fall through to the
// second, in the exact order the client listed them. No sort clauses yields a
// nil comparator: the engine imposes no ordering of its own and the source's
// natural order stands.
func CompileSort[T any](reg *Registry[T], sorts []SortClause) (Comparator[T], error) {
	if len(sorts) == 0 {
		return nil, nil
	}

	var (
		fields []Field[T]
		descs  []bool
		errs   ValidationErrors
	)
	for _, clause := range sorts {
		field, ok := reg.Resolve(clause.Field)
		if !ok {
			errs = append(errs, unknownFieldError(reg, clause.Field))
			continue
		}
		fields = append(fields, field)
		descs = append(descs, clause.Desc)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return func(a, b T) int {
		for i, field := range fields {
			cmp := compareEntityValues(field.Kind, field.Get(a), field.Get(b))
			if cmp == 0 {
				continue
			}
			if descs[i] {
				return -cmp
			}
			return cmp
		}
		return 0
	}, nil
}
