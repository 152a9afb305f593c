package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func values(items []map[string]any, key string) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it[key]
	}
	return out
}

func TestSortNullsLast(t *testing.T) {
	items := []map[string]any{{"v": nil}, {"v": 2}, {"v": 1}}

	asc := Sort(items, SortConfig{Field: "v", Direction: Asc})
	assert.Equal(t, []any{1, 2, nil}, values(asc, "v"))

	desc := Sort(items, SortConfig{Field: "v", Direction: Desc})
	assert.Equal(t, []any{2, 1, nil}, values(desc, "v"))
}

func TestSortMissingFieldLast(t *testing.T) {
	items := []map[string]any{{"other": 1}, {"v": "b"}, {"v": "a"}}

	got := Sort(items, SortConfig{Field: "v", Direction: Desc})
	assert.Equal(t, []any{"b", "a", nil}, values(got, "v"))
}

func TestSortZeroTimeLast(t *testing.T) {
	type payment struct {
		When time.Time `json:"when"`
	}
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	items := []payment{{When: late}, {}, {When: early}}

	asc := Sort(items, SortConfig{Field: "when", Direction: Asc})
	assert.Equal(t, []payment{{When: early}, {When: late}, {}}, asc)

	desc := Sort(items, SortConfig{Field: "when", Direction: Desc})
	assert.Equal(t, []payment{{When: late}, {When: early}, {}}, desc)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []map[string]any{{"v": 3}, {"v": 1}, {"v": 2}}

	_ = Sort(items, SortConfig{Field: "v"})
	assert.Equal(t, []any{3, 1, 2}, values(items, "v"))
}

func TestSortStringsCollated(t *testing.T) {
	items := []map[string]any{{"v": "banana"}, {"v": "Apple"}, {"v": "cherry"}}

	got := Sort(items, SortConfig{Field: "v", Direction: Asc})
	assert.Equal(t, []any{"Apple", "banana", "cherry"}, values(got, "v"))
}

func TestSortDates(t *testing.T) {
	d1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	items := []map[string]any{{"v": d2}, {"v": "2026-01-20"}, {"v": d1}}

	got := Sort(items, SortConfig{Field: "v", Direction: Asc})
	assert.Equal(t, []any{d1, "2026-01-20", d2}, values(got, "v"))
}

func TestSortDecimalAmounts(t *testing.T) {
	got := Sort(rows(), SortConfig{Field: "amount", Direction: Desc})
	assert.Equal(t, []string{"dave", "Carla", "Bob", "Alice"}, names(got))
}

func TestSortWithoutFieldKeepsOrder(t *testing.T) {
	got := Sort(rows(), SortConfig{})
	assert.Equal(t, names(rows()), names(got))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection(""))
}
