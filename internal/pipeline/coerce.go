package pipeline

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Zone-less layouts are read in the
// caller's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02",
}

// ParseAmount parses a currency, distance or duration cell. It never fails:
// empty or unparseable text yields 0.
func ParseAmount(s string) float64 {
	v, _ := parseAmountOK(s)
	return v
}

// parseAmountOK is ParseAmount that also reports whether the text held a number.
func parseAmountOK(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseQuantity parses an item quantity, defaulting to 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// IsTruthy reports whether a flag cell is set.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "t":
		return true
	}
	return false
}

// ParseTimestamp reads s into loc. ok is false when s is not a real
// calendar date/time; callers must check it before using the value.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// firstTimestamp returns the first parseable timestamp among candidates.
func firstTimestamp(loc *time.Location, candidates ...string) (time.Time, bool) {
	for _, c := range candidates {
		if t, ok := ParseTimestamp(c, loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayOf projects t onto its calendar date, as midnight UTC so that
// consecutive dates are exactly 24h apart.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// timeOfDay returns the bucket name for an hour of the day.
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
