package opportunities

import "testing"

func TestDurationDays_Mapping(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"1 semana", 7},
		{"2 semanas", 14},
		{"1 mes", 30},
		{"2 meses", 60},
		{"3+ meses", 90},
	}
	for _, c := range cases {
		if got := DurationDays(c.label); got != c.want {
			t.Errorf("DurationDays(%q) = %d, want %d", c.label, got, c.want)
		}
	}
}

func TestDurationDays_UnknownLabelDefaults(t *testing.T) {
	for _, label := range []string{"5 días", "", "1 Mes", "un mes"} {
		if got := DurationDays(label); got != 30 {
			t.Errorf("DurationDays(%q) = %d, want the 30-day default", label, got)
		}
	}
}

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		accepted, total, want int
	}{
		{1, 4, 25},
		{0, 0, 0}, // no proposals: never divide by zero
		{0, 7, 0},
		{3, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, c := range cases {
		if got := successRate(c.accepted, c.total); got != c.want {
			t.Errorf("successRate(%d, %d) = %d, want %d", c.accepted, c.total, got, c.want)
		}
	}
}
