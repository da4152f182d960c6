package timeutil

import (
	"testing"
	"time"
)

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "canonical", in: "15/06/2026", want: "15/06/2026"},
		{name: "iso", in: "2026-06-15", want: "15/06/2026"},
		{name: "rfc3339", in: "2026-06-15T10:30:00Z", want: "15/06/2026"},
		{name: "padded", in: "  15/06/2026 ", want: "15/06/2026"},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexible(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFlexible(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlexible(%q): %v", tt.in, err)
			}
			if f := FormatDate(got); f != tt.want {
				t.Errorf("ParseFlexible(%q) = %s, want %s", tt.in, f, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("2026-06-15"); got != "15/06/2026" {
		t.Errorf("Normalize(ISO) = %q, want 15/06/2026", got)
	}
	if got := Normalize("15/06/2026"); got != "15/06/2026" {
		t.Errorf("Normalize(canonical) = %q, want passthrough", got)
	}
	// empty falls back to today rather than erroring
	if got := Normalize(""); got != Today() {
		t.Errorf("Normalize(\"\") = %q, want today", got)
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name             string
		date, start, end string
		want             bool
	}{
		{name: "inside", date: "15/06/2026", start: "01/06/2026", end: "30/06/2026", want: true},
		{name: "on start boundary", date: "01/06/2026", start: "01/06/2026", end: "30/06/2026", want: true},
		{name: "on end boundary", date: "30/06/2026", start: "01/06/2026", end: "30/06/2026", want: true},
		{name: "before", date: "31/05/2026", start: "01/06/2026", end: "30/06/2026", want: false},
		{name: "after", date: "01/07/2026", start: "01/06/2026", end: "30/06/2026", want: false},
		{name: "iso record date", date: "2026-06-15", start: "01/06/2026", end: "30/06/2026", want: true},
		{name: "bad record date kept", date: "n/a", start: "01/06/2026", end: "30/06/2026", want: true},
		{name: "bad bound keeps record", date: "15/06/2026", start: "??", end: "30/06/2026", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.date, tt.start, tt.end); got != tt.want {
				t.Errorf("InRange(%q, %q, %q) = %v, want %v", tt.date, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestStartEndOfDay(t *testing.T) {
	in := time.Date(2026, 6, 15, 13, 45, 0, 0, time.UTC)

	start := StartOfDay(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}
	end := EndOfDay(in)
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("EndOfDay = %v, want end of day", end)
	}
	if !start.Before(end) {
		t.Error("StartOfDay not before EndOfDay")
	}
}
