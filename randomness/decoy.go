/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package randomness

import (
	"crypto"
	"encoding/base64"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/tink/go/subtle/random"

	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// maxDecoyCollisionRetries bounds the collision-avoidance loop spec §4.D
// requires ("retry on collision"). A genuine collision under a 256-bit (or
// wider) digest is cosmically unlikely; this bound exists only to turn a
// broken RNG into a clean error instead of an infinite loop.
const maxDecoyCollisionRetries = 8

// DecoyGenerator produces a single pseudo-random digest-shaped value with
// no disclosure pre-image, used to pad an object's _sd array so the true
// number of selectively disclosable claims cannot be inferred from its
// length.
type DecoyGenerator interface {
	// Digest returns one decoy digest, the same byte width as a real
	// digest computed with alg.
	Digest(alg crypto.Hash) (string, error)
}

// DecoyGeneratorFunc adapts a plain function to the DecoyGenerator interface.
type DecoyGeneratorFunc func(alg crypto.Hash) (string, error)

// Digest calls f.
func (f DecoyGeneratorFunc) Digest(alg crypto.Hash) (string, error) {
	return f(alg)
}

// DefaultDecoyGenerator returns the engine's default DecoyGenerator: alg's
// digest-width random bytes from Tink's CSPRNG, base64url-encoded. Because
// the bytes are never a hash of anything, they have, by construction, no
// disclosure pre-image.
func DefaultDecoyGenerator() DecoyGenerator {
	return DecoyGeneratorFunc(func(alg crypto.Hash) (string, error) {
		if !alg.Available() {
			return "", sdjwterr.UnknownAlgorithm("randomness.DefaultDecoyGenerator", "hash %v not available", alg)
		}

		b := random.GetRandomBytes(uint32(alg.Size()))

		return base64.RawURLEncoding.EncodeToString(b), nil
	})
}

// GenerateUnique calls gen repeatedly (bounded by maxDecoyCollisionRetries,
// with zero backoff — collisions are not transient, retrying just re-rolls
// the dice) until it produces a digest absent from taken, then returns it.
// taken is mutated to include the returned digest, so a caller generating
// several decoys in a row can pass the same map through successive calls.
func GenerateUnique(gen DecoyGenerator, alg crypto.Hash, taken map[string]bool) (string, error) {
	var digest string

	op := func() error {
		d, err := gen.Digest(alg)
		if err != nil {
			return backoff.Permanent(err)
		}

		if taken[d] {
			return sdjwterr.Inconsistent("randomness.GenerateUnique", "decoy digest collided, retrying")
		}

		digest = d

		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(0), maxDecoyCollisionRetries)

	if err := backoff.Retry(op, policy); err != nil {
		return "", sdjwterr.New(sdjwterr.KindDisclosureInconsistency, "randomness.GenerateUnique", err)
	}

	taken[digest] = true

	return digest, nil
}
