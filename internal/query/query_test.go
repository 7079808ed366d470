package query

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// account is the fixture entity shared by the engine tests.
type account struct {
	ID        uuid.UUID
	Name      string
	Plan      string
	Balance   float64
	Seats     int
	IsActive  bool
	CreatedAt time.Time
}

func newAccountRegistry() *Registry[account] {
	return NewRegistry(RegistryConfig[account]{
		Entity:     "accounts",
		Searchable: "name",
		Includes:   []string{"owner", "invoices"},
		Fields: []Field[account]{
			{Name: "id", Kind: KindID, Get: func(a account) any { return a.ID }},
			{Name: "name", Kind: KindString, Get: func(a account) any { return a.Name }},
			{Name: "plan", Kind: KindEnum, Get: func(a account) any { return a.Plan }},
			{Name: "balance", Kind: KindNumber, Get: func(a account) any { return a.Balance }},
			{Name: "seats", Kind: KindNumber, Get: func(a account) any { return a.Seats }},
			{Name: "isActive", Kind: KindBool, Get: func(a account) any { return a.IsActive }},
			{Name: "createdAt", Kind: KindDate, Get: func(a account) any { return a.CreatedAt }},
		},
		Project: func(a account, fields []string) account {
			keep := make(map[string]bool, len(fields))
			for _, f := range fields {
				keep[f] = true
			}
			out := account{ID: a.ID}
			if keep["name"] {
				out.Name = a.Name
			}
			if keep["plan"] {
				out.Plan = a.Plan
			}
			if keep["balance"] {
				out.Balance = a.Balance
			}
			if keep["isactive"] {
				out.IsActive = a.IsActive
			}
			if keep["createdat"] {
				out.CreatedAt = a.CreatedAt
			}
			return out
		},
	})
}

// fixtureAccounts builds n accounts with deterministic attributes: the first
// nActive are active, creation times step one hour apart in insertion order.
func fixtureAccounts(n, nActive int) []account {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	accounts := make([]account, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, account{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("account-%02d", i),
			Plan:      []string{"free", "team", "enterprise"}[i%3],
			Balance:   float64(i) * 10,
			Seats:     i % 7,
			IsActive:  i < nActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return accounts
}
