package listing

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sjperalta/clientpulse-api/internal/fieldpath"
)

// Direction of a sort
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortConfig selects the field and direction of a sort
type SortConfig struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// ParseDirection maps anything other than "desc" to ascending
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Sort returns a sorted copy of items. Missing values and zero times go last
// in either direction; ties keep their input order.
func Sort[T any](items []T, cfg SortConfig) []T {
	out := slices.Clone(items)
	if cfg.Field == "" {
		return out
	}

	col := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := fieldpath.Lookup(a, cfg.Field)
		bv, bok := fieldpath.Lookup(b, cfg.Field)
		aok = aok && !isEmpty(av)
		bok = bok && !isEmpty(bv)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}

		c := compareValues(col, av, bv)
		if cfg.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

func compareValues(col *collate.Collator, a, b any) int {
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			return cmpFloat(an, bn)
		}
	}

	as, aIsString := a.(string)
	bs, bIsString := b.(string)
	if aIsString && bIsString {
		return col.CompareString(as, bs)
	}

	if at, ok := parseTime(a); ok {
		if bt, ok := parseTime(b); ok {
			return at.Compare(bt)
		}
	}

	at, _ := fieldpath.Text(a)
	bt, _ := fieldpath.Text(b)
	return col.CompareString(at, bt)
}

// isEmpty treats nil and the zero time as missing
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	t, ok := v.(time.Time)
	return ok && t.IsZero()
}

// numeric accepts real numbers only; numeric-looking strings stay strings.
func numeric(v any) (float64, bool) {
	if _, isString := v.(string); isString {
		return 0, false
	}
	return fieldpath.Number(v)
}

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
