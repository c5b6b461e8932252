package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMinor(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr error
	}{
		{"12.34", 1234, nil},
		{"12", 1200, nil},
		{"12.5", 1250, nil},
		{"0.01", 1, nil},
		{"-3.20", -320, nil},
		{"+7", 700, nil},
		{".50", 50, nil},
		{" 8.00 ", 800, nil},
		{"", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
		{"1.234", 0, ErrTooManyDecimals},
		{"1.2x", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseMinor(tc.input)
		if err != tc.wantErr {
			t.Fatalf("ParseMinor(%q) error = %v, want %v", tc.input, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseMinor(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseNonNegativeMinor(t *testing.T) {
	if _, err := ParseNonNegativeMinor("-1.00"); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	got, err := ParseNonNegativeMinor("0")
	if err != nil || got != 0 {
		t.Fatalf("ParseNonNegativeMinor(0) = %d, %v", got, err)
	}
}

func TestFormatMinor(t *testing.T) {
	if got := FormatMinor(1234); got != "12.34" {
		t.Fatalf("FormatMinor(1234) = %s", got)
	}
	if got := FormatMinor(-5); got != "-0.05" {
		t.Fatalf("FormatMinor(-5) = %s", got)
	}
	if got := FormatMinor(0); got != "0.00" {
		t.Fatalf("FormatMinor(0) = %s", got)
	}
}

func TestConvertMinor(t *testing.T) {
	rate := decimal.RequireFromString("25000")
	if got := ConvertMinor(100, rate); got != "25000.00" {
		t.Fatalf("ConvertMinor(100) = %s", got)
	}
	rate = decimal.RequireFromString("0.85")
	if got := ConvertMinor(1000, rate); got != "8.50" {
		t.Fatalf("ConvertMinor(1000, 0.85) = %s", got)
	}
}
