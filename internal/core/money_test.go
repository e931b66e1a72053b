package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123450, "1234.50"},
		{-75, "-0.75"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("cents %d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestDivideRounded(t *testing.T) {
	cases := []struct {
		total, n, want int64
	}{
		{100, 3, 33},  // 33.33... rounds down
		{200, 3, 67},  // 66.66... rounds up
		{101, 2, 51},  // exact half rounds up
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := DivideRounded(tc.total, tc.n).Cents; got != tc.want {
			t.Fatalf("%d/%d expected %d, got %d", tc.total, tc.n, tc.want, got)
		}
	}
}
