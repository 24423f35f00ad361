package ptbr

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-03-10", "10 de março de 2026"},
		{"2026-01-02", "2 de janeiro de 2026"},
		{"2026-12-25", "25 de dezembro de 2026"},
		{"amanhã", "amanhã"}, // unparseable passes through
	}
	for _, c := range cases {
		if got := FormatDate(c.in); got != c.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	got := FormatTimestamp(time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC))
	want := "10 de março de 2026 às 09:05"
	if got != want {
		t.Fatalf("FormatTimestamp = %q, want %q", got, want)
	}
}
