package projection

import (
	"fmt"
	"strings"

	"furigana/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

// Cache memoizes Both for recently projected strings. It is safe for
// concurrent use.
type Cache struct {
	p     Projector
	cache *lru.Cache[string, model.Reading]
}

// NewCache creates a cache holding up to size readings. A size <= 0 uses the
// default size.
func NewCache(size int, p Projector) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New[string, model.Reading](size)
	if err != nil {
		return nil, fmt.Errorf("create projection cache: %w", err)
	}
	return &Cache{p: p, cache: c}, nil
}

// Both returns the reading of s, computing it on a miss.
func (c *Cache) Both(s string) model.Reading {
	if r, ok := c.cache.Get(s); ok {
		return r
	}
	r := c.p.Both(s)
	c.cache.Add(strings.Clone(s), r)
	return r
}

// Kana returns the kana projection of s.
func (c *Cache) Kana(s string) string { return c.Both(s).Kana }

// Kanji returns the kanji projection of s. Strings without kanji blocks
// project to themselves.
func (c *Cache) Kanji(s string) string { return c.Both(s).KanjiOrKana() }

// Len returns the number of cached readings.
func (c *Cache) Len() int { return c.cache.Len() }

// Purge drops all cached readings.
func (c *Cache) Purge() { c.cache.Purge() }
