package pipeline

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		qty       string
		want      string
		wantErr   error
	}{
		{name: "partial", remaining: "100", qty: "60", want: "40"},
		{name: "exact", remaining: "40", qty: "40", want: "0"},
		{name: "fractional", remaining: "10.5", qty: "0.5", want: "10"},
		{name: "zero qty", remaining: "100", qty: "0", wantErr: ErrQtyNotPositive},
		{name: "negative qty", remaining: "100", qty: "-5", wantErr: ErrQtyNotPositive},
		{name: "exceeds remaining", remaining: "40", qty: "150", wantErr: ErrQtyExceedsRemaining},
		{name: "exceeds by fraction", remaining: "40", qty: "40.01", wantErr: ErrQtyExceedsRemaining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(d(tt.remaining), d(tt.qty))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				// remaining must be untouched on rejection
				if !got.Equal(d(tt.remaining)) {
					t.Errorf("Apply() modified remaining on error: got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyConservation(t *testing.T) {
	original := d("100")
	remaining := original

	applied := []string{"25", "30", "45"}
	total := decimal.Zero
	for _, q := range applied {
		var err error
		remaining, err = Apply(remaining, d(q))
		if err != nil {
			t.Fatalf("Apply(%s) error: %v", q, err)
		}
		total = total.Add(d(q))
	}

	if !total.Add(remaining).Equal(original) {
		t.Errorf("conservation broken: applied %s + remaining %s != %s", total, remaining, original)
	}
	if !Exhausted(remaining) {
		t.Errorf("Exhausted(%s) = false, want true", remaining)
	}
}

func TestExhausted(t *testing.T) {
	if Exhausted(d("0.01")) {
		t.Error("Exhausted(0.01) = true, want false")
	}
	if !Exhausted(decimal.Zero) {
		t.Error("Exhausted(0) = false, want true")
	}
}

func TestSerial(t *testing.T) {
	tests := []struct {
		prefix string
		index  int
		want   string
	}{
		{SerialPrefixEnquiry, 0, "PM-001"},
		{SerialPrefixOrder, 9, "OD-010"},
		{SerialPrefixReceiving, 99, "RO-100"},
		{SerialPrefixFollowUp, 999, "FLW-1000"},
	}
	for _, tt := range tests {
		if got := Serial(tt.prefix, tt.index); got != tt.want {
			t.Errorf("Serial(%q, %d) = %q, want %q", tt.prefix, tt.index, got, tt.want)
		}
	}
}

func TestNewIDMonotonic(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id <= prev {
			t.Fatalf("NewID() = %d, not greater than previous %d", id, prev)
		}
		prev = id
	}
}
