package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// LifetimeLabel keys the all-years bucket in Report.Years.
const LifetimeLabel = "Lifetime"

// Profile is account metadata shown alongside the yearly numbers.
type Profile struct {
	MemberSince string `json:"memberSince"`
	AvgRating   string `json:"avgRating"`
}

// YearSummary pairs the ride and food-delivery summaries for one bucket.
type YearSummary struct {
	Trips TripSummary `json:"trips"`
	Eats  EatsSummary `json:"eats"`
}

// YearEntry is one labelled bucket: "Lifetime" or a four-digit year.
type YearEntry struct {
	Label   string
	Summary YearSummary
}

// Years is an ordered set of buckets. It marshals to a JSON object whose key
// order is the slice order: Lifetime first, then years most recent first.
type Years []YearEntry

// Report is the full output of one aggregation run.
type Report struct {
	Profile Profile `json:"profile"`
	Years   Years   `json:"years"`
}

// Year returns the bucket for label. "lifetime" matches case-insensitively.
func (r Report) Year(label string) (YearSummary, bool) {
	for _, e := range r.Years {
		if e.Label == label || (strings.EqualFold(label, LifetimeLabel) && e.Label == LifetimeLabel) {
			return e.Summary, true
		}
	}
	return YearSummary{}, false
}

// Labels returns bucket labels in presentation order.
func (r Report) Labels() []string {
	labels := make([]string, 0, len(r.Years))
	for _, e := range r.Years {
		labels = append(labels, e.Label)
	}
	return labels
}

// MarshalJSON writes the buckets as an object preserving slice order.
func (y Years) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range y {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Summary)
		if err != nil {
			return nil, fmt.Errorf("year %s: %w", e.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into Years keeping the document's key order.
func (y *Years) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("years: expected JSON object")
	}

	var out Years
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("years: unexpected key %v", tok)
		}
		var s YearSummary
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("year %s: %w", label, err)
		}
		out = append(out, YearEntry{Label: label, Summary: s})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*y = out
	return nil
}
