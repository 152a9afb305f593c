package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/clientpulse-api/internal/listing"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

// parseWindow reads ?start=&end= as dates (2006-01-02) or RFC 3339
// timestamps. Both must be given together; a date-only end covers the whole day.
func parseWindow(c *gin.Context, loc *time.Location) (*period.Window, error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" && rawEnd == "" {
		return nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, fmt.Errorf("start and end must be given together")
	}

	start, _, err := parseInstant(rawStart, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, dateOnly, err := parseInstant(rawEnd, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if dateOnly {
		end = period.EndOfDay(end)
	}
	return &period.Window{Start: start, End: end}, nil
}

func parseInstant(raw string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}

// parseFilters reads repeated ?filter=field:op:value parameters
func parseFilters(values []string) ([]listing.Predicate, error) {
	predicates := make([]listing.Predicate, 0, len(values))
	for _, raw := range values {
		field, rest, ok := strings.Cut(raw, ":")
		if !ok || field == "" {
			return nil, fmt.Errorf("filter %q must look like field:op:value", raw)
		}
		op, value, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("filter %q must look like field:op:value", raw)
		}
		cond, err := listing.ParseCondition(op, value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", raw, err)
		}
		predicates = append(predicates, listing.Predicate{Field: field, Condition: cond})
	}
	return predicates, nil
}

// parseLimit reads ?limit= with a default and an upper bound
func parseLimit(raw string, def, upper int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	return min(n, upper), nil
}
