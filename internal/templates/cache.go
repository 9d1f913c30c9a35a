// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package templates

import (
	"strings"
	"sync/atomic"
	"time"
)

// snapshot is an immutable generation of the mapping. It is never modified
// after being stored in Cache.current.
type snapshot struct {
	byTitle   map[string]string
	updatedAt time.Time
}

// Cache maps lowercase exercise titles to Hevy exercise template ids.
//
// Readers load the current snapshot with a single atomic read, so a lookup
// running during a refresh sees either the old mapping or the new one in full.
// The zero value is not usable; construct with New.
type Cache struct {
	current atomic.Pointer[snapshot]
}

// New returns an empty, initialized cache.
func New() *Cache {
	c := &Cache{}
	c.current.Store(&snapshot{byTitle: map[string]string{}})
	return c
}

// normalizeTitle is applied to every key on insert and lookup.
func normalizeTitle(title string) string {
	return strings.ToLower(title)
}

// Lookup returns the template id for title, ignoring case.
func (c *Cache) Lookup(title string) (string, bool) {
	id, ok := c.current.Load().byTitle[normalizeTitle(title)]
	return id, ok
}

// Len returns the number of titles in the live mapping.
func (c *Cache) Len() int {
	return len(c.current.Load().byTitle)
}

// UpdatedAt returns when the live mapping was installed. It is the zero
// time until the first Replace.
func (c *Cache) UpdatedAt() time.Time {
	return c.current.Load().updatedAt
}

// Snapshot returns a copy of the live mapping.
func (c *Cache) Snapshot() map[string]string {
	src := c.current.Load().byTitle
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Replace installs m as the new mapping, dropping every previous entry.
// Keys are lowercased; the caller's map is not retained.
func (c *Cache) Replace(m map[string]string) {
	byTitle := make(map[string]string, len(m))
	for title, id := range m {
		byTitle[normalizeTitle(title)] = id
	}
	c.current.Store(&snapshot{byTitle: byTitle, updatedAt: time.Now()})
}
