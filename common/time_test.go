package common

import (
	"testing"
)

func TestISO8601(t *testing.T) {
	if got := ISO8601(1722848468); got != "2024-08-05T09:01:08Z" {
		t.Fatalf("whole seconds: %q", got)
	}
	if got := ISO8601(1722848468.5); got != "2024-08-05T09:01:08.5Z" {
		t.Fatalf("fractional seconds: %q", got)
	}
	if got := ISO8601(0); got != "1970-01-01T00:00:00Z" {
		t.Fatalf("epoch: %q", got)
	}
}

func TestRound1(t *testing.T) {
	cases := []struct{ in, out float64 }{
		{64.26, 64.3},
		{64.24, 64.2},
		{0, 0},
		{-1.26, -1.3},
	}
	for _, c := range cases {
		if got := Round1(c.in); got != c.out {
			t.Fatalf("Round1(%v) = %v, want %v", c.in, got, c.out)
		}
	}
}
