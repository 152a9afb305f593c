package listing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name   string          `json:"name"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
	Notes  *string         `json:"notes"`
}

func rows() []row {
	note := "Paid in cash"
	return []row{
		{Name: "Alice", Status: "active", Amount: decimal.NewFromInt(10)},
		{Name: "Bob", Status: "paused", Amount: decimal.NewFromInt(15), Notes: &note},
		{Name: "Carla", Status: "active", Amount: decimal.NewFromInt(20)},
		{Name: "dave", Status: "cancelled", Amount: decimal.NewFromFloat(20.01)},
	}
}

func names(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Name
	}
	return out
}

func TestFilterBetweenIsInclusive(t *testing.T) {
	got := Filter(rows(), []Predicate{{Field: "amount", Condition: Between{Min: 10, Max: 20}}})
	assert.Equal(t, []string{"Alice", "Bob", "Carla"}, names(got))
}

func TestFilterOperators(t *testing.T) {
	tests := []struct {
		name       string
		predicates []Predicate
		want       []string
	}{
		{"equals", []Predicate{{"status", Equals{Value: "active"}}}, []string{"Alice", "Carla"}},
		{"equals numeric", []Predicate{{"amount", Equals{Value: "15"}}}, []string{"Bob"}},
		{"contains insensitive", []Predicate{{"name", Contains{Value: "AR"}}}, []string{"Carla"}},
		{"contains sensitive", []Predicate{{"name", Contains{Value: "AR", CaseSensitive: true}}}, []string{}},
		{"starts with", []Predicate{{"name", StartsWith{Value: "d"}}}, []string{"dave"}},
		{"starts with sensitive", []Predicate{{"name", StartsWith{Value: "D", CaseSensitive: true}}}, []string{}},
		{"ends with", []Predicate{{"name", EndsWith{Value: "ce"}}}, []string{"Alice"}},
		{"greater than", []Predicate{{"amount", GreaterThan{Value: 15}}}, []string{"Carla", "dave"}},
		{"less than", []Predicate{{"amount", LessThan{Value: 15}}}, []string{"Alice"}},
		{"one of", []Predicate{{"status", OneOf{Values: []string{"PAUSED", "cancelled"}}}}, []string{"Bob", "dave"}},
		{"and of predicates", []Predicate{
			{"status", Equals{Value: "active"}},
			{"amount", GreaterThan{Value: 10}},
		}, []string{"Carla"}},
		{"absent value never matches", []Predicate{{"notes", Contains{Value: "cash"}}}, []string{"Bob"}},
		{"missing field never matches", []Predicate{{"nope", Equals{Value: "x"}}}, []string{}},
		{"pass all", []Predicate{{"nope", PassAll{}}}, []string{"Alice", "Bob", "Carla", "dave"}},
		{"no predicates", nil, []string{"Alice", "Bob", "Carla", "dave"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(rows(), tt.predicates)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := rows()
	_ = Filter(in, []Predicate{{"status", Equals{Value: "active"}}})
	assert.Equal(t, rows(), in)
}

func TestParseCondition(t *testing.T) {
	c, err := ParseCondition("between", "10, 20")
	require.NoError(t, err)
	assert.Equal(t, Between{Min: 10, Max: 20}, c)

	c, err = ParseCondition("gt", "5")
	require.NoError(t, err)
	assert.Equal(t, GreaterThan{Value: 5}, c)

	c, err = ParseCondition("in", "a, b")
	require.NoError(t, err)
	assert.Equal(t, OneOf{Values: []string{"a", "b"}}, c)

	c, err = ParseCondition("startsWith", "Al")
	require.NoError(t, err)
	assert.Equal(t, StartsWith{Value: "Al"}, c)

	c, err = ParseCondition("contains_cs", "Lux")
	require.NoError(t, err)
	assert.Equal(t, Contains{Value: "Lux", CaseSensitive: true}, c)

	c, err = ParseCondition("ENDS_WITH_CS", "Shop")
	require.NoError(t, err)
	assert.Equal(t, EndsWith{Value: "Shop", CaseSensitive: true}, c)

	c, err = ParseCondition("regex", ".*")
	require.NoError(t, err)
	assert.Equal(t, PassAll{}, c)

	_, err = ParseCondition("between", "10")
	assert.Error(t, err)

	_, err = ParseCondition("lt", "ten")
	assert.Error(t, err)
}
