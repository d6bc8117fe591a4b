/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuer

import (
	"crypto"
	"math/rand"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"

	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/hashreg"
	"github.com/trustbloc/sdjwt-engine/randomness"
)

// MinDigestsPolicy is the "None | AtLeast(k)" minimum digest-count policy
// from spec §4.D.
type MinDigestsPolicy struct {
	atLeast int
	set     bool
}

// NoMinimum is the default policy: no padding beyond real digests.
func NoMinimum() MinDigestsPolicy {
	return MinDigestsPolicy{}
}

// AtLeast requires every _sd array to carry at least k digests, padding
// with decoys as needed.
func AtLeast(k int) MinDigestsPolicy {
	return MinDigestsPolicy{atLeast: k, set: true}
}

// target returns the size an _sd array carrying `actual` real digests must
// reach: max(k_min, actual) when a minimum is set, else just actual.
func (p MinDigestsPolicy) target(actual int) int {
	if !p.set || p.atLeast <= actual {
		return actual
	}

	return p.atLeast
}

// config holds every issuance-time setting, built from Option values.
type config struct {
	hashAlg          crypto.Hash
	registry         *hashreg.Registry
	saltProvider     randomness.SaltProvider
	decoyGenerator   randomness.DecoyGenerator
	minDigests       MinDigestsPolicy
	addRandomDecoys  bool
	marshal          disclosure.Marshaller
	shuffle          func(n int, swap func(i, j int))
	holderPublicKey  *jose.JSONWebKey
	registeredClaims registeredClaims
}

// registeredClaims carries the always-plaintext registered JWT claims a
// caller may want stamped onto the payload root alongside the disclosable
// tree's own output, mirroring the teacher's newOpts fields.
type registeredClaims struct {
	Issuer    string
	Subject   string
	Audience  string
	JTI       string
	Expiry    *jwt.NumericDate
	NotBefore *jwt.NumericDate
	IssuedAt  *jwt.NumericDate
}

// Option configures an Issue call.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		hashAlg:        crypto.SHA256,
		registry:       hashreg.New(),
		saltProvider:   randomness.DefaultSaltProvider(randomness.DefaultSaltSizeBytes),
		decoyGenerator: randomness.DefaultDecoyGenerator(),
		minDigests:     NoMinimum(),
		marshal:        nil, // disclosure package defaults to json.Marshal
		shuffle:        defaultShuffle,
	}
}

// WithHashAlgorithm selects the digest algorithm; defaults to sha-256.
func WithHashAlgorithm(alg crypto.Hash) Option {
	return func(c *config) { c.hashAlg = alg }
}

// WithHashRegistry overrides the hash-algorithm registry, e.g. to add
// aliases before issuance.
func WithHashRegistry(r *hashreg.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithSaltProvider overrides the salt source. Tests should inject a
// deterministic provider such as randomness.CounterSaltProvider.
func WithSaltProvider(sp randomness.SaltProvider) Option {
	return func(c *config) { c.saltProvider = sp }
}

// WithDecoyGenerator overrides the decoy digest source.
func WithDecoyGenerator(g randomness.DecoyGenerator) Option {
	return func(c *config) { c.decoyGenerator = g }
}

// WithMinDigestsPerSD sets the minimum-digest-count policy (spec §4.D).
func WithMinDigestsPerSD(p MinDigestsPolicy) Option {
	return func(c *config) { c.minDigests = p }
}

// WithRandomDecoys turns on the teacher-style extra obscuring padding: a
// random count (1-4) of additional decoys for every object that carries an
// _sd array, on top of any MinDigestsPolicy padding, so the number of real
// selectively-disclosable claims cannot be inferred even when it already
// exceeds any configured minimum. An object with no selectively disclosable
// claims and no configured minimum gets no decoys.
func WithRandomDecoys(flag bool) Option {
	return func(c *config) { c.addRandomDecoys = flag }
}

// WithJSONMarshaller overrides disclosure JSON encoding.
func WithJSONMarshaller(m disclosure.Marshaller) Option {
	return func(c *config) { c.marshal = m }
}

// WithShuffler overrides the shuffle function applied to each object's
// _sd array before emission (spec §4.D: "shuffled so that real vs. decoy
// ... are not inferable from order"). Tests should inject a deterministic
// (or no-op) shuffler.
func WithShuffler(shuffle func(n int, swap func(i, j int))) Option {
	return func(c *config) { c.shuffle = shuffle }
}

// WithHolderPublicKey sets the cnf.jwk confirmation claim, binding the
// SD-JWT to a holder key. This module never touches the private key; it
// only places the public key value the host provides into the payload.
func WithHolderPublicKey(jwk *jose.JSONWebKey) Option {
	return func(c *config) { c.holderPublicKey = jwk }
}

// WithIssuer sets the always-plaintext `iss` claim.
func WithIssuer(issuer string) Option {
	return func(c *config) { c.registeredClaims.Issuer = issuer }
}

// WithSubject sets the always-plaintext `sub` claim.
func WithSubject(subject string) Option {
	return func(c *config) { c.registeredClaims.Subject = subject }
}

// WithAudience sets the always-plaintext `aud` claim.
func WithAudience(audience string) Option {
	return func(c *config) { c.registeredClaims.Audience = audience }
}

// WithJTI sets the always-plaintext `jti` claim.
func WithJTI(jti string) Option {
	return func(c *config) { c.registeredClaims.JTI = jti }
}

// WithExpiry sets the always-plaintext `exp` claim.
func WithExpiry(exp *jwt.NumericDate) Option {
	return func(c *config) { c.registeredClaims.Expiry = exp }
}

// WithNotBefore sets the always-plaintext `nbf` claim.
func WithNotBefore(nbf *jwt.NumericDate) Option {
	return func(c *config) { c.registeredClaims.NotBefore = nbf }
}

// WithIssuedAt sets the always-plaintext `iat` claim.
func WithIssuedAt(iat *jwt.NumericDate) Option {
	return func(c *config) { c.registeredClaims.IssuedAt = iat }
}

// defaultShuffle wraps math/rand.Shuffle, matching the teacher's use of
// mr.Shuffle to order decoy and real digests indistinguishably. Deterministic
// tests should inject a no-op or fixed-seed shuffler via WithShuffler.
func defaultShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
