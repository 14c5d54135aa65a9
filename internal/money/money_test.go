package money

import "testing"

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"180.00", 18000},
		{"180", 18000},
		{"0.01", 1},
		{"99.995", 10000},
		{"120.50", 12050},
	}
	for _, tc := range cases {
		got, err := ToCents(tc.in)
		if err != nil {
			t.Errorf("ToCents(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToCentsRejectsGarbage(t *testing.T) {
	if _, err := ToCents("abc"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(18000); got != "180.00" {
		t.Errorf("FromCents(18000) = %q, want 180.00", got)
	}
	if got := FromCents(5); got != "0.05" {
		t.Errorf("FromCents(5) = %q, want 0.05", got)
	}
}
