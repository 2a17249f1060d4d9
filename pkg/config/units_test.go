package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"16ms", 16 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"1.5s", 1500 * time.Millisecond},
		{"2h45m", 2*time.Hour + 45*time.Minute},
		{"1d", Day},
		{"1d2h", Day + 2*time.Hour},
		{"2w", 2 * Week},
		{"", 0},
	}

	for _, c := range cases {
		got, err := ParseDuration(c.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "12x", "d"} {
		if _, err := ParseDuration(in); err == nil {
			t.Errorf("ParseDuration(%q) should fail", in)
		}
	}
}
