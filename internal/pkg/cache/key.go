package cache

import "github.com/tonglam/letletme-data-sub006/internal/pkg/enums"

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key addresses one bucket: {prefix}::{season}[::{subscope}].
type Key struct {
	Prefix   enums.CachePrefix
	Season   string
	Subscope string
}

// NewKey builds a season-scoped key.
func NewKey(prefix enums.CachePrefix, season string) Key {
	return Key{Prefix: prefix, Season: season}
}

// WithSubscope returns a copy of the key narrowed by a subscope segment.
func (k Key) WithSubscope(subscope string) Key {
	k.Subscope = subscope
	return k
}

func (k Key) String() string {
	s := k.Prefix.String() + KeySeparator + k.Season
	if k.Subscope != "" {
		s += KeySeparator + k.Subscope
	}
	return s
}
