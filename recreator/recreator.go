/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package recreator implements the claim recreator (component E): given an
// SD-JWT payload and the disclosures a holder chose to reveal, it substitutes
// every resolvable digest and {"...": digest} placeholder with its plaintext
// value, dropping placeholders left undisclosed, and rejects any disclosure
// bag that is internally inconsistent.
//
// The payload tree's depth is attacker-controlled (an issuer or holder could
// nest objects arbitrarily deep), so the walk here never recurses on the Go
// call stack: it drives an explicit, heap-allocated stack of pending
// containers instead, bounding stack usage independent of input depth.
package recreator

import (
	"crypto"
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/sdjwt-engine/claimpath"
	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/hashreg"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

var logger = log.New("sdjwt-engine/recreator")

// Result is the output of a successful Recreate call.
type Result struct {
	Claims map[string]interface{}
	Ledger *Ledger
}

// config holds Recreate's settings.
type config struct {
	registry *hashreg.Registry
	cache    *Cache
}

// Option configures a Recreate call.
type Option func(*config)

func defaultConfig() *config {
	return &config{registry: hashreg.New()}
}

// WithHashRegistry overrides the hash-algorithm registry used to resolve
// the payload's _sd_alg.
func WithHashRegistry(r *hashreg.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithCache backs the digest index with a bounded off-heap cache instead of
// a plain Go map, for very large disclosure bags.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// digestIndex maps a disclosure digest to the disclosure it identifies,
// tracking which entries have been consumed during the walk.
type digestIndex struct {
	discs []*disclosure.Disclosure
	used  []bool
	byMap map[string]int
	cache *Cache
}

func newDigestIndex(discs []*disclosure.Disclosure, cache *Cache) *digestIndex {
	idx := &digestIndex{discs: discs, used: make([]bool, len(discs)), cache: cache}
	if cache == nil {
		idx.byMap = make(map[string]int, len(discs))
	}

	return idx
}

func (idx *digestIndex) put(digest string, i int) {
	if idx.cache != nil {
		idx.cache.put(digest, i)
		return
	}

	idx.byMap[digest] = i
}

func (idx *digestIndex) get(digest string) (int, bool) {
	if idx.cache != nil {
		return idx.cache.get(digest)
	}

	i, ok := idx.byMap[digest]

	return i, ok
}

func (idx *digestIndex) lookup(digest string) (*disclosure.Disclosure, bool) {
	i, ok := idx.get(digest)
	if !ok {
		return nil, false
	}

	return idx.discs[i], true
}

func (idx *digestIndex) markUsed(digest string) {
	i, ok := idx.get(digest)
	if ok {
		idx.used[i] = true
	}
}

func (idx *digestIndex) orphans() []*disclosure.Disclosure {
	var out []*disclosure.Disclosure

	for i, u := range idx.used {
		if !u {
			out = append(out, idx.discs[i])
		}
	}

	return out
}

// Recreate substitutes payload's digests with plaintext values disclosed by
// discs, per spec §4.E, and returns the fully recreated claims plus the
// per-path disclosure ledger. payload is not mutated; Recreate deep-copies
// it before walking.
func Recreate(payload map[string]interface{}, discs []*disclosure.Disclosure, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	alg, err := resolveAlg(cfg.registry, payload, len(discs))
	if err != nil {
		return nil, err
	}

	idx, err := preflight(cfg, discs, alg)
	if err != nil {
		return nil, err
	}

	root, err := deepCopyObject(payload)
	if err != nil {
		return nil, err
	}

	w := &walker{idx: idx, ledger: &Ledger{}}
	w.push(claimpath.Root(), root, nil)

	if err := w.run(); err != nil {
		return nil, err
	}

	if orphans := idx.orphans(); len(orphans) > 0 {
		logger.Debugf("%d disclosure(s) never matched a digest in the payload", len(orphans))
		return nil, sdjwterr.Inconsistent("recreator.Recreate", "%d disclosure(s) never matched a digest in the payload", len(orphans))
	}

	logger.Debugf("recreated %d claim(s) from %d disclosure(s)", len(w.ledger.Entries()), len(discs))

	return &Result{Claims: root, Ledger: w.ledger}, nil
}

// resolveAlg resolves the hash algorithm payload's digests were computed
// with. A missing _sd_alg is only tolerated when there is nothing to
// verify against it: a disclosure bag with at least one entry but no
// _sd_alg claim is rejected outright, rather than silently assumed to be
// sha-256, since that assumption is exactly the kind of algorithm
// confusion an attacker forging a payload would want a verifier to make.
func resolveAlg(reg *hashreg.Registry, payload map[string]interface{}, numDiscs int) (crypto.Hash, error) {
	name, ok := payload[disclosure.SDAlgorithmKey]
	if !ok {
		if numDiscs > 0 {
			return 0, sdjwterr.UnknownAlgorithm("recreator.resolveAlg", "%s is missing but %d disclosure(s) were supplied", disclosure.SDAlgorithmKey, numDiscs)
		}

		return reg.FromName(hashreg.DefaultAlgorithm)
	}

	s, ok := name.(string)
	if !ok {
		return 0, sdjwterr.Malformed("recreator.resolveAlg", "%s must be a string", disclosure.SDAlgorithmKey)
	}

	return reg.FromName(s)
}

// preflight builds the digest index up front, rejecting a disclosure bag
// where two distinct disclosures hash to the same digest before any
// substitution happens.
func preflight(cfg *config, discs []*disclosure.Disclosure, alg crypto.Hash) (*digestIndex, error) {
	idx := newDigestIndex(discs, cfg.cache)

	for i, d := range discs {
		digest, err := disclosure.Digest(cfg.registry, alg, d.Blob)
		if err != nil {
			return nil, err
		}

		if _, exists := idx.lookup(digest); exists {
			return nil, sdjwterr.Inconsistent("recreator.preflight", "two disclosures hash to the same digest")
		}

		idx.put(digest, i)
	}

	return idx, nil
}

func deepCopyObject(obj map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "recreator.deepCopyObject", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "recreator.deepCopyObject", err)
	}

	return out, nil
}

// deepCopyValue round-trips a disclosed value through JSON so the walker
// never mutates a Disclosure borrowed from the caller. A Disclosure may be
// reused across multiple Recreate calls (the same combined format
// presented to more than one verifier), so the value it carries must stay
// pristine no matter how the walker subsequently strips _sd keys or merges
// children into whatever gets inserted into the claims tree.
func deepCopyValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "recreator.deepCopyValue", err)
	}

	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "recreator.deepCopyValue", err)
	}

	return out, nil
}
