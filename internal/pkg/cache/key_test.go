package cache

import (
	"testing"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"season scope", NewKey(enums.PrefixEvent, "2425"), "event::2425"},
		{"subscope", NewKey(enums.PrefixPlayerStat, "2425").WithSubscope("12"), "player-stat::2425::12"},
		{"nested subscope", NewKey(enums.PrefixFixture, "2425").WithSubscope("team::3"), "fixture::2425::team::3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithSubscopeDoesNotMutate(t *testing.T) {
	base := NewKey(enums.PrefixTeam, "2425")
	_ = base.WithSubscope("x")
	if base.Subscope != "" {
		t.Fatal("WithSubscope mutated the receiver")
	}
}
