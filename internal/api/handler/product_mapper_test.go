package handler

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Rp0,00"},
		{"5", "Rp5,00"},
		{"999", "Rp999,00"},
		{"1000", "Rp1.000,00"},
		{"10000", "Rp10.000,00"},
		{"1234567.89", "Rp1.234.567,89"},
		{"1500.5", "Rp1.500,50"},
		{"0.99", "Rp0,99"},
		{"-2500", "-Rp2.500,00"},
	}

	for _, tc := range cases {
		got := formatRupiah(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Errorf("formatRupiah(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
