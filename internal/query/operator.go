package query

// Operator is a filter comparison operator. The set is closed: dispatch is an
// exhaustive switch, so an operator unsupported for a field kind is a single
// well-defined validation error rather than a stray string branch.
type Operator uint8

// Filter operators.
const (
	OpInvalid Operator = iota
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
	OpContains
	OpStartsWith
	OpEndsWith
)

var operatorNames = map[Operator]string{
	OpEq:         "eq",
	OpNeq:        "neq",
	OpGt:         "gt",
	OpGte:        "gte",
	OpLt:         "lt",
	OpLte:        "lte",
	OpIn:         "in",
	OpContains:   "contains",
	OpStartsWith: "startswith",
	OpEndsWith:   "endswith",
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for op, name := range operatorNames {
		m[name] = op
	}
	return m
}()

// ParseOperator resolves a wire-level operator token. The zero Operator is
// returned for unknown tokens so the predicate compiler can report them.
func ParseOperator(s string) (Operator, bool) {
	op, ok := operatorsByName[s]
	return op, ok
}

// String returns the wire-level name of the operator.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "invalid"
}

// appliesTo reports whether the operator is valid for a field kind.
func (op Operator) appliesTo(k Kind) bool {
	switch op {
	case OpEq, OpNeq, OpIn:
		return true
	case OpGt, OpGte, OpLt, OpLte:
		return k == KindNumber || k == KindDate
	case OpContains, OpStartsWith, OpEndsWith:
		return k == KindString
	default:
		return false
	}
}
