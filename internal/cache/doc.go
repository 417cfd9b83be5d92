// Package cache provides a bounded, thread-safe LRU cache.
//
//	c := cache.New[string, *Alphabet](32)
//	c.Set(key, a)
//	a, ok := c.Get(key)
//
// The generator keys finished alphabets by seed and style fingerprint, so a
// repeated request for the same inputs returns the same immutable result.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
