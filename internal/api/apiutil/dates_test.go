package apiutil

import "testing"

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("start_date", "2026-07-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, value := range []string{"", "07/01/2026", "2026-13-01", "2026-07-1"} {
		if _, err := ParseDate("start_date", value); err == nil {
			t.Fatalf("accepted %q", value)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2026-07-01", "2026-07-31")
	if err != nil || start != "2026-07-01" || end != "2026-07-31" {
		t.Fatalf("valid range: %q %q %v", start, end, err)
	}

	// Same-day windows are legal.
	if _, _, err := ParseDateRange("2026-07-01", "2026-07-01"); err != nil {
		t.Fatalf("single-day range rejected: %v", err)
	}

	if _, _, err := ParseDateRange("2026-07-31", "2026-07-01"); err == nil {
		t.Fatalf("inverted range accepted")
	}
	if _, _, err := ParseDateRange("", "2026-07-31"); err == nil {
		t.Fatalf("missing start accepted")
	}
}
