// Package listing filters and sorts in-memory record collections by field path.
package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sjperalta/clientpulse-api/internal/fieldpath"
)

// Condition is one of the concrete condition types below. The set is closed.
type Condition interface {
	condition()
}

// Equals matches when the field equals Value. Numbers compare numerically.
type Equals struct{ Value any }

// Contains matches substrings of the field's text
type Contains struct {
	Value         string
	CaseSensitive bool
}

// StartsWith matches prefixes of the field's text
type StartsWith struct {
	Value         string
	CaseSensitive bool
}

// EndsWith matches suffixes of the field's text
type EndsWith struct {
	Value         string
	CaseSensitive bool
}

// GreaterThan matches numeric fields strictly above Value
type GreaterThan struct{ Value float64 }

// LessThan matches numeric fields strictly below Value
type LessThan struct{ Value float64 }

// Between matches numeric fields in [Min, Max]
type Between struct{ Min, Max float64 }

// OneOf matches when the field's text is any of Values (case-insensitive)
type OneOf struct{ Values []string }

// PassAll matches everything. Unknown operators parse to it.
type PassAll struct{}

func (Equals) condition()      {}
func (Contains) condition()    {}
func (StartsWith) condition()  {}
func (EndsWith) condition()    {}
func (GreaterThan) condition() {}
func (LessThan) condition()    {}
func (Between) condition()     {}
func (OneOf) condition()       {}
func (PassAll) condition()     {}

// Predicate applies a condition to the value at Field
type Predicate struct {
	Field     string
	Condition Condition
}

// Filter returns the items for which every predicate holds. The input is not modified.
func Filter[T any](items []T, predicates []Predicate) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, predicates) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll(item any, predicates []Predicate) bool {
	for _, p := range predicates {
		v, ok := fieldpath.Lookup(item, p.Field)
		if !Matches(p.Condition, v, ok) {
			return false
		}
	}
	return true
}

// Matches evaluates c against a resolved value. present is false when the
// field was absent; absent values only satisfy PassAll.
func Matches(c Condition, v any, present bool) bool {
	if _, ok := c.(PassAll); ok || c == nil {
		return true
	}
	if !present || v == nil {
		return false
	}

	switch c := c.(type) {
	case Equals:
		return equal(v, c.Value)
	case Contains:
		return textMatch(v, c.Value, c.CaseSensitive, strings.Contains)
	case StartsWith:
		return textMatch(v, c.Value, c.CaseSensitive, strings.HasPrefix)
	case EndsWith:
		return textMatch(v, c.Value, c.CaseSensitive, strings.HasSuffix)
	case GreaterThan:
		n, ok := fieldpath.Number(v)
		return ok && n > c.Value
	case LessThan:
		n, ok := fieldpath.Number(v)
		return ok && n < c.Value
	case Between:
		n, ok := fieldpath.Number(v)
		return ok && n >= c.Min && n <= c.Max
	case OneOf:
		text, ok := fieldpath.Text(v)
		if !ok {
			return false
		}
		for _, want := range c.Values {
			if strings.EqualFold(text, want) {
				return true
			}
		}
		return false
	}
	return true
}

func equal(v, want any) bool {
	if a, ok := fieldpath.Number(v); ok {
		if b, ok := fieldpath.Number(want); ok {
			return a == b
		}
	}
	a, aok := fieldpath.Text(v)
	b, bok := fieldpath.Text(want)
	return aok == bok && a == b
}

func textMatch(v any, want string, caseSensitive bool, fn func(s, substr string) bool) bool {
	text, ok := fieldpath.Text(v)
	if !ok {
		return false
	}
	if !caseSensitive {
		text = strings.ToLower(text)
		want = strings.ToLower(want)
	}
	return fn(text, want)
}

// ParseCondition builds a condition from an operator name and its raw value,
// as they arrive in a query string. A "_cs" suffix makes the text operators
// case-sensitive (contains_cs). Unknown operators yield PassAll.
func ParseCondition(op, raw string) (Condition, error) {
	op, caseSensitive := strings.CutSuffix(strings.ToLower(op), "_cs")
	switch op {
	case "equals", "eq":
		return Equals{Value: raw}, nil
	case "contains":
		return Contains{Value: raw, CaseSensitive: caseSensitive}, nil
	case "startswith", "starts_with":
		return StartsWith{Value: raw, CaseSensitive: caseSensitive}, nil
	case "endswith", "ends_with":
		return EndsWith{Value: raw, CaseSensitive: caseSensitive}, nil
	case "greaterthan", "greater_than", "gt":
		n, err := parseNumber(raw)
		if err != nil {
			return nil, err
		}
		return GreaterThan{Value: n}, nil
	case "lessthan", "less_than", "lt":
		n, err := parseNumber(raw)
		if err != nil {
			return nil, err
		}
		return LessThan{Value: n}, nil
	case "between":
		lo, hi, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("between expects two comma-separated bounds, got %q", raw)
		}
		lower, err := parseNumber(lo)
		if err != nil {
			return nil, err
		}
		upper, err := parseNumber(hi)
		if err != nil {
			return nil, err
		}
		return Between{Min: lower, Max: upper}, nil
	case "in", "oneof", "one_of":
		values := strings.Split(raw, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		return OneOf{Values: values}, nil
	}
	return PassAll{}, nil
}

func parseNumber(raw string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric bound %q: %w", raw, err)
	}
	return n, nil
}
