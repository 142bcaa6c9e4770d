package pricing

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOrdering(t *testing.T) {
	t.Parallel()

	earlier := MustParseDate("2025-06-01")
	later := MustParseDate("2025-06-02")

	if !later.After(earlier) {
		t.Fatalf("expected %s to be after %s", later, earlier)
	}
	if earlier.After(later) {
		t.Fatalf("%s must not be after %s", earlier, later)
	}
	if earlier.After(earlier) {
		t.Fatalf("a date must not be after itself")
	}
	if !earlier.Before(later) {
		t.Fatalf("expected %s before %s", earlier, later)
	}

	if !MustParseDate("2026-01-01").After(MustParseDate("2025-12-31")) {
		t.Fatalf("year boundary comparison failed")
	}
	if !MustParseDate("2025-07-01").After(MustParseDate("2025-06-30")) {
		t.Fatalf("month boundary comparison failed")
	}
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*60*60)
	instant := time.Date(2025, time.June, 1, 23, 30, 0, 0, loc)

	if got := DateOf(instant); got != (Date{Year: 2025, Month: time.June, Day: 1}) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	date := MustParseDate("2025-10-15")
	raw, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	if string(raw) != `"2025-10-15"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var decoded Date
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal date: %v", err)
	}
	if decoded != date {
		t.Fatalf("round trip mismatch: %v != %v", decoded, date)
	}
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("2025/10/15"); err == nil {
		t.Fatal("expected error for slash-separated date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}
