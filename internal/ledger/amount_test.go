package ledger

import (
	"testing"
	"time"
)

func TestParseKoreanAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "bare digits", input: "5", want: 5},
		{name: "man unit", input: "3만", want: 30_000},
		{name: "eok unit", input: "2억", want: 200_000_000},
		{name: "jo unit", input: "1조", want: 1_000_000_000_000},
		{name: "digits with trailing text", input: "30만원 이상", want: 300_000},
		{name: "digits mid-sentence", input: "실적 5만 기준", want: 50_000},
		{name: "empty", input: "", want: 0},
		{name: "no digits", input: "abc", want: 0},
		{name: "unit without digits", input: "만", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKoreanAmount(tt.input); got != tt.want {
				t.Errorf("ParseKoreanAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{30000, "30,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.input); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatWon(t *testing.T) {
	if got := FormatWon(1234567); got != "1,234,567원" {
		t.Errorf("FormatWon(1234567) = %q, want %q", got, "1,234,567원")
	}
}

func TestParseDottedDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "full form", input: "2024. 3. 15.", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "no spaces", input: "2024.3.15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "no trailing dot", input: "2024. 12. 1", want: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "month out of range", input: "2024. 13. 1.", ok: false},
		{name: "day out of range", input: "2024. 1. 32.", ok: false},
		{name: "iso form rejected", input: "2024-03-15", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDottedDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDottedDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDottedDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
