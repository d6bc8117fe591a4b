/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package recreator

import (
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"
)

// Cache is a bounded, off-heap digest->disclosure-index lookup backed by
// VictoriaMetrics/fastcache, for hosts recreating claims from disclosure
// bags too large to comfortably index with a plain Go map (e.g. a batch
// verification service holding many concurrent presentations). Passing one
// via WithCache is optional; the default index is a plain map, which is
// faster for the common case of a handful of disclosures.
type Cache struct {
	c *fastcache.Cache
}

// NewCache allocates a Cache with an approximate maxBytes budget.
func NewCache(maxBytes int) *Cache {
	return &Cache{c: fastcache.New(maxBytes)}
}

func (c *Cache) put(digest string, idx int) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(idx))
	c.c.Set([]byte(digest), buf[:])
}

func (c *Cache) get(digest string) (int, bool) {
	buf, ok := c.c.HasGet(nil, []byte(digest))
	if !ok || len(buf) != 4 {
		return 0, false
	}

	return int(binary.BigEndian.Uint32(buf)), true
}
