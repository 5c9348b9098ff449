package enums

// CachePrefix identifies one entity kind in the cache key space.
// Keys are built as {prefix}::{season}[::{subscope}].
type CachePrefix string

const (
	PrefixEvent      CachePrefix = "event"
	PrefixPhase      CachePrefix = "phase"
	PrefixTeam       CachePrefix = "team"
	PrefixPlayer     CachePrefix = "player"
	PrefixFixture    CachePrefix = "fixture"
	PrefixPlayerStat CachePrefix = "player-stat"
	PrefixLeague     CachePrefix = "league"
)

// allPrefixes is the fixed registry. Keys with prefixes outside this set are
// never written.
var allPrefixes = map[CachePrefix]bool{
	PrefixEvent:      true,
	PrefixPhase:      true,
	PrefixTeam:       true,
	PrefixPlayer:     true,
	PrefixFixture:    true,
	PrefixPlayerStat: true,
	PrefixLeague:     true,
}

// IsValid reports whether the prefix is part of the registry.
func (p CachePrefix) IsValid() bool {
	return allPrefixes[p]
}

// String returns the prefix as a plain string.
func (p CachePrefix) String() string {
	return string(p)
}
