package enums

import "testing"

func TestCachePrefixRegistry(t *testing.T) {
	valid := []CachePrefix{
		PrefixEvent, PrefixPhase, PrefixTeam, PrefixPlayer,
		PrefixFixture, PrefixPlayerStat, PrefixLeague,
	}
	for _, p := range valid {
		if !p.IsValid() {
			t.Fatalf("%s not in registry", p)
		}
	}
	if CachePrefix("odds").IsValid() {
		t.Fatal("unknown prefix accepted")
	}
}

func TestElementType(t *testing.T) {
	tests := []struct {
		t     ElementType
		short string
	}{
		{Goalkeeper, "GKP"},
		{Defender, "DEF"},
		{Midfielder, "MID"},
		{Forward, "FWD"},
	}
	for _, tt := range tests {
		if !tt.t.IsValid() {
			t.Fatalf("%v invalid", tt.t)
		}
		if got := tt.t.GetInfo().Short; got != tt.short {
			t.Fatalf("short = %q, want %q", got, tt.short)
		}
	}

	for _, v := range []ElementType{0, 5, -1} {
		if v.IsValid() {
			t.Fatalf("%v accepted", v)
		}
	}
}
