package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical display format used across all pipeline stages.
// Records written at different times may carry either this format or ISO
// (2006-01-02); everything is normalized to DD/MM/YYYY before storage and
// comparison.
const (
	DateLayout = "02/01/2006"
	ISOLayout  = "2006-01-02"
)

// FormatDate renders a time as DD/MM/YYYY in IST.
func FormatDate(t time.Time) string {
	return t.In(IST).Format(DateLayout)
}

// Today returns the current IST date in canonical form.
func Today() string {
	return FormatDate(Now())
}

// ParseFlexible parses a date that may be canonical DD/MM/YYYY or ISO
// 2006-01-02 (with or without a time component).
func ParseFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if strings.Contains(s, "/") {
		return time.ParseInLocation(DateLayout, s, IST)
	}
	if t, err := time.ParseInLocation(ISOLayout, s, IST); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t.In(IST), nil
}

// Normalize rewrites a date string to canonical DD/MM/YYYY form. Canonical
// input passes through untouched; unparseable or empty input falls back to
// today, matching how the stage pages recover from missing dates.
func Normalize(s string) string {
	if strings.Contains(s, "/") {
		return s
	}
	t, err := ParseFlexible(s)
	if err != nil {
		return Today()
	}
	return FormatDate(t)
}

// InRange reports whether date falls within [start, end], all parsed
// flexibly. An unparseable record date is kept (not filtered out).
func InRange(date, start, end string) bool {
	from, err := ParseFlexible(start)
	if err != nil {
		return true
	}
	to, err := ParseFlexible(end)
	if err != nil {
		return true
	}
	d, err := ParseFlexible(date)
	if err != nil {
		return true
	}
	d = StartOfDay(d)
	return !d.Before(StartOfDay(from)) && !d.After(EndOfDay(to))
}
