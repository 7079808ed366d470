package query

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the value type of a registered field. Operator applicability and
// value coercion both key off it.
type Kind uint8

// Field value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindDate
	KindID
	KindEnum
)

// Field is one registry entry: a logical field name bound to a typed accessor.
// Accessors are explicit closures registered by the owning domain package; the
// engine never discovers fields through reflection.
type Field[T any] struct {
	Name string
	Kind Kind
	Get  func(T) any
}

// RegistryConfig describes one entity type to the engine.
type RegistryConfig[T any] struct {
	// Entity is the plural entity name used in cache keys and error messages.
	Entity string
	Fields []Field[T]
	// Searchable names the single field free-text queries match against.
	// It is fixed per entity, not user-selectable.
	Searchable string
	// Includes is the allow-list of relation names the source may expand.
	Includes []string
	// Project restricts an item to the given projection whitelist. Nil means
	// the entity does not support projection and items pass through whole.
	Project func(item T, fields []string) T
}

// Registry maps case-insensitive logical field names to typed accessors for
// one entity type. It is built once at startup and immutable afterward.
type Registry[T any] struct {
	entity     string
	fields     map[string]Field[T]
	fieldNames []string
	searchable string
	includes   map[string]struct{}
	project    func(T, []string) T
}

// NewRegistry builds a registry from explicit per-entity configuration.
func NewRegistry[T any](cfg RegistryConfig[T]) *Registry[T] {
	r := &Registry[T]{
		entity:     cfg.Entity,
		fields:     make(map[string]Field[T], len(cfg.Fields)),
		searchable: strings.ToLower(cfg.Searchable),
		includes:   make(map[string]struct{}, len(cfg.Includes)),
		project:    cfg.Project,
	}
	for _, f := range cfg.Fields {
		name := strings.ToLower(f.Name)
		if _, dup := r.fields[name]; dup {
			panic(fmt.Sprintf("query: duplicate field %q for entity %q", f.Name, cfg.Entity))
		}
		r.fields[name] = f
		r.fieldNames = append(r.fieldNames, name)
	}
	sort.Strings(r.fieldNames)
	for _, inc := range cfg.Includes {
		r.includes[strings.ToLower(inc)] = struct{}{}
	}
	return r
}

// Entity returns the entity name the registry was built for.
func (r *Registry[T]) Entity() string {
	return r.entity
}

// Resolve looks up a field by its case-insensitive logical name.
func (r *Registry[T]) Resolve(name string) (Field[T], bool) {
	f, ok := r.fields[strings.ToLower(name)]
	return f, ok
}

// FieldNames returns the sorted list of registered field names, used to make
// unknown-field errors self-documenting.
func (r *Registry[T]) FieldNames() []string {
	return r.fieldNames
}

// AllowsInclude reports whether the relation name is on the entity's
// allow-list.
func (r *Registry[T]) AllowsInclude(name string) bool {
	_, ok := r.includes[strings.ToLower(name)]
	return ok
}

// Searchable returns the field free-text queries match against, or false when
// the entity has none configured.
func (r *Registry[T]) Searchable() (Field[T], bool) {
	if r.searchable == "" {
		return Field[T]{}, false
	}
	f, ok := r.fields[r.searchable]
	return f, ok
}

// Project applies the projection whitelist to an item. Entities without a
// projection function return items unchanged.
func (r *Registry[T]) Project(item T, fields []string) T {
	if r.project == nil || len(fields) == 0 {
		return item
	}
	return r.project(item, fields)
}

func unknownFieldError[T any](r *Registry[T], field string) FieldError {
	return FieldError{
		Field: field,
		Message: fmt.Sprintf("unknown field for %s; known fields: %s",
			r.entity, strings.Join(r.fieldNames, ", ")),
	}
}
