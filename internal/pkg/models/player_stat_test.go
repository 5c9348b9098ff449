package models

import "testing"

func TestStatIDRoundTrip(t *testing.T) {
	s := PlayerStat{ElementID: 233, EventID: 7}
	if s.CacheID() != "233_7" {
		t.Fatalf("CacheID = %q", s.CacheID())
	}

	elementID, eventID, err := ParseStatID(s.CacheID())
	if err != nil {
		t.Fatalf("ParseStatID: %v", err)
	}
	if elementID != 233 || eventID != 7 {
		t.Fatalf("ParseStatID = %d, %d", elementID, eventID)
	}
}

func TestParseStatIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "233", "233_", "_7", "a_b", "233-7"} {
		if _, _, err := ParseStatID(id); err == nil {
			t.Fatalf("ParseStatID(%q) accepted malformed id", id)
		}
	}
}
