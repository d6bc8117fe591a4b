/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package hashreg implements the digest engine (component B): a registry of
// hash algorithms keyed by IANA name, and the digest-of-disclosure
// computation shared by the issuer factory and the claim recreator.
package hashreg

import (
	"crypto"
	// register sha-256/384/512 with the crypto package.
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/base64"
	"strings"

	// register sha3-256/512 with the crypto package.
	_ "golang.org/x/crypto/sha3"

	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// DefaultAlgorithm is the hash algorithm the issuer factory uses when the
// caller doesn't pick one.
const DefaultAlgorithm = "sha-256"

// entry pairs an IANA name with the crypto.Hash it resolves to.
type entry struct {
	name string
	hash crypto.Hash
}

// Registry maps IANA hash algorithm names (as they appear in _sd_alg) to
// crypto.Hash values. The zero Registry is unusable; use New.
type Registry struct {
	byName map[string]crypto.Hash
}

// New returns a Registry pre-populated with the algorithms this engine
// considers secure: sha-256, sha-384, sha-512, sha3-256, sha3-512. Weak
// algorithms (MD5, SHA-1, RIPEMD-160) are never registered, by design.
func New() *Registry {
	r := &Registry{byName: make(map[string]crypto.Hash)}

	for _, e := range []entry{
		{"sha-256", crypto.SHA256},
		{"sha-384", crypto.SHA384},
		{"sha-512", crypto.SHA512},
		{"sha3-256", crypto.SHA3_256},
		{"sha3-512", crypto.SHA3_512},
	} {
		r.byName[e.name] = e.hash
	}

	return r
}

// Alias registers an additional name resolving to the same algorithm as
// canonical, e.g. registering "sha256" as an alias of "sha-256" for callers
// that don't follow the IANA hyphenation.
func (r *Registry) Alias(alias, canonical string) error {
	h, ok := r.byName[strings.ToLower(canonical)]
	if !ok {
		return sdjwterr.UnknownAlgorithm("hashreg.Alias", "unknown canonical algorithm %q", canonical)
	}

	r.byName[strings.ToLower(alias)] = h

	return nil
}

// FromName resolves an IANA hash algorithm name to a crypto.Hash. It
// returns a KindAlgorithmUnknown error for a name absent from the registry
// or unavailable in the current build (missing hash import).
func (r *Registry) FromName(name string) (crypto.Hash, error) {
	h, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return 0, sdjwterr.UnknownAlgorithm("hashreg.FromName", "_sd_alg %q not supported", name)
	}

	if !h.Available() {
		return 0, sdjwterr.UnknownAlgorithm("hashreg.FromName", "_sd_alg %q not linked into this build", name)
	}

	return h, nil
}

// Hash returns H(data) for the given algorithm.
func (r *Registry) Hash(alg crypto.Hash, data []byte) ([]byte, error) {
	if !alg.Available() {
		return nil, sdjwterr.UnknownAlgorithm("hashreg.Hash", "hash function not available for %v", alg)
	}

	h := alg.New()
	h.Write(data)

	return h.Sum(nil), nil
}

// DigestString returns base64url_nopad(H(ascii(value))) — the digest form
// used both for a disclosure's own digest and, in the same shape, for
// decoy digests. The digest is deliberately computed over the ASCII/UTF-8
// bytes of value as presented, not over any re-serialization, so verifiers
// recompute it without re-encoding anything (spec §4.A rationale).
func (r *Registry) DigestString(alg crypto.Hash, value string) (string, error) {
	sum, err := r.Hash(alg, []byte(value))
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// NameOf returns the canonical IANA name this registry would emit into
// _sd_alg for the given crypto.Hash, or "" if the hash was never
// registered under a canonical name here.
func (r *Registry) NameOf(alg crypto.Hash) string {
	for name, h := range r.byName {
		if h == alg && canonicalNames[name] {
			return name
		}
	}

	return ""
}

// canonicalNames marks the names New() populates directly (as opposed to
// names added later via Alias), so NameOf never emits an alias into
// _sd_alg.
var canonicalNames = map[string]bool{ // nolint:gochecknoglobals
	"sha-256":  true,
	"sha-384":  true,
	"sha-512":  true,
	"sha3-256": true,
	"sha3-512": true,
}
