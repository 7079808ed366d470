package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileFor(t *testing.T, raw url.Values) (Predicate[account], error) {
	t.Helper()
	return CompilePredicate(newAccountRegistry(), Parse(raw, Options{}))
}

func matchNames(pred Predicate[account], accounts []account) []string {
	var names []string
	for _, a := range accounts {
		if pred(a) {
			names = append(names, a.Name)
		}
	}
	return names
}

func TestCompilePredicate_Operators(t *testing.T) {
	accounts := fixtureAccounts(6, 3)

	t.Run("eq on bool", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[isActive]": {"true"}})
		require.NoError(t, err)
		assert.Len(t, matchNames(pred, accounts), 3)
	})

	t.Run("neq on enum", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[plan][neq]": {"free"}})
		require.NoError(t, err)
		assert.Len(t, matchNames(pred, accounts), 4)
	})

	t.Run("ordered comparison on number", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[balance][gte]": {"30"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"account-03", "account-04", "account-05"}, matchNames(pred, accounts))
	})

	t.Run("ordered comparison on date", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[createdAt][lt]": {"2026-01-01T02:00:00Z"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"account-00", "account-01"}, matchNames(pred, accounts))
	})

	t.Run("in splits on comma", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[plan][in]": {"team, enterprise"}})
		require.NoError(t, err)
		assert.Len(t, matchNames(pred, accounts), 4)
	})

	t.Run("contains is case-insensitive", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[name][contains]": {"COUNT-0"}})
		require.NoError(t, err)
		assert.Len(t, matchNames(pred, accounts), 6)
	})

	t.Run("startswith and endswith", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[name][startswith]": {"Account"}})
		require.NoError(t, err)
		assert.Len(t, matchNames(pred, accounts), 6)

		pred, err = compileFor(t, url.Values{"filter[name][endswith]": {"-05"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"account-05"}, matchNames(pred, accounts))
	})

	t.Run("clauses across fields AND together", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{
			"filter[isActive]":     {"true"},
			"filter[balance][gt]":  {"0"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"account-01", "account-02"}, matchNames(pred, accounts))
	})

	t.Run("free text matches the searchable field only", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"q": {"ACCOUNT-02"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"account-02"}, matchNames(pred, accounts))
	})
}

func TestCompilePredicate_ValidationErrors(t *testing.T) {
	t.Run("unknown field names the field and produces no predicate", func(t *testing.T) {
		pred, err := compileFor(t, url.Values{"filter[nope]": {"x"}})

		assert.Nil(t, pred)
		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		require.Len(t, verrs, 1)
		assert.Equal(t, "nope", verrs[0].Field)
		assert.Contains(t, verrs[0].Message, "known fields")
	})

	t.Run("operator unsupported for field type", func(t *testing.T) {
		_, err := compileFor(t, url.Values{"filter[isActive][gt]": {"true"}})

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		require.Len(t, verrs, 1)
		assert.Equal(t, "isactive", verrs[0].Field)
		assert.Equal(t, "gt", verrs[0].Operator)
	})

	t.Run("contains on a non-string field", func(t *testing.T) {
		_, err := compileFor(t, url.Values{"filter[balance][contains]": {"1"}})

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		assert.Contains(t, verrs[0].Message, "not supported")
	})

	t.Run("coercion failure names field and raw value", func(t *testing.T) {
		_, err := compileFor(t, url.Values{"filter[balance][gte]": {"lots"}})

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		require.Len(t, verrs, 1)
		assert.Equal(t, "balance", verrs[0].Field)
		assert.Equal(t, "lots", verrs[0].Value)
	})

	t.Run("unknown operator token", func(t *testing.T) {
		_, err := compileFor(t, url.Values{"filter[name][matches]": {"x"}})

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		assert.Contains(t, verrs[0].Message, `unknown operator "matches"`)
	})

	t.Run("errors accumulate instead of failing fast", func(t *testing.T) {
		_, err := compileFor(t, url.Values{
			"filter[nope]":          {"x"},
			"filter[balance][gte]":  {"lots"},
			"filter[isActive][gt]":  {"true"},
		})

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		assert.Len(t, verrs, 3)
	})
}
