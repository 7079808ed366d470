package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecore/tradecore/api/internal/query"
)

func TestRegistries_ResolveIsCaseInsensitive(t *testing.T) {
	reg := ProductRegistry()

	for _, name := range []string{"sku", "SKU", "Sku"} {
		f, ok := reg.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, query.KindString, f.Kind)
	}

	_, ok := reg.Resolve("warehouse")
	assert.False(t, ok)
}

func TestRegistries_Includes(t *testing.T) {
	assert.True(t, OrderRegistry().AllowsInclude("items"))
	assert.True(t, OrderRegistry().AllowsInclude("Customer"))
	assert.False(t, OrderRegistry().AllowsInclude("invoices"))
	assert.True(t, InventoryRegistry().AllowsInclude("product"))
}

func TestRegistries_TimestampsOnEveryEntity(t *testing.T) {
	resolve := map[string]func(string) (query.Kind, bool){
		"companies": func(n string) (query.Kind, bool) { f, ok := CompanyRegistry().Resolve(n); return f.Kind, ok },
		"users":     func(n string) (query.Kind, bool) { f, ok := UserRegistry().Resolve(n); return f.Kind, ok },
		"products":  func(n string) (query.Kind, bool) { f, ok := ProductRegistry().Resolve(n); return f.Kind, ok },
		"orders":    func(n string) (query.Kind, bool) { f, ok := OrderRegistry().Resolve(n); return f.Kind, ok },
		"inventory": func(n string) (query.Kind, bool) { f, ok := InventoryRegistry().Resolve(n); return f.Kind, ok },
	}

	for entity, lookup := range resolve {
		kind, ok := lookup("updatedAt")
		require.True(t, ok, entity)
		assert.Equal(t, query.KindDate, kind, entity)
	}
}

func TestRegistries_Accessors(t *testing.T) {
	placed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	order := Order{
		ID:       uuid.New(),
		Number:   "ORD-1001",
		Status:   OrderStatusPlaced,
		Total:    99.5,
		PlacedAt: placed,
	}

	reg := OrderRegistry()

	f, ok := reg.Resolve("status")
	require.True(t, ok)
	assert.Equal(t, "PLACED", f.Get(order))

	f, ok = reg.Resolve("placedAt")
	require.True(t, ok)
	assert.Equal(t, placed, f.Get(order))

	searchable, ok := reg.Searchable()
	require.True(t, ok)
	assert.Equal(t, "ORD-1001", searchable.Get(order))
}

func TestRegistries_ProjectionKeepsIdentity(t *testing.T) {
	c := Company{
		ID:            uuid.New(),
		Name:          "Acme",
		Industry:      IndustryRetail,
		EmployeeCount: 12,
		IsActive:      true,
	}

	out := CompanyRegistry().Project(c, []string{"name"})

	assert.Equal(t, c.ID, out.ID)
	assert.Equal(t, "Acme", out.Name)
	assert.Zero(t, out.EmployeeCount)
	assert.Empty(t, out.Industry)
	assert.False(t, out.IsActive)
}
