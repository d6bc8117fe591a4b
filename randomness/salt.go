/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package randomness implements the only two sources of non-determinism
// spec §5 permits the engine: the salt provider and the decoy generator.
// Both are interfaces so tests can inject deterministic, uniqueness-
// guaranteeing implementations in place of the cryptographically random
// defaults.
package randomness

import (
	"encoding/base64"

	"github.com/google/tink/go/subtle/random"

	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// DefaultSaltSizeBytes is the salt width this engine uses by default: 128
// bits of entropy, the minimum spec §3 recommends.
const DefaultSaltSizeBytes = 16

// SaltProvider produces a fresh, high-entropy, base64url-encoded salt for
// each disclosure. A conforming implementation MUST NOT repeat a salt
// within one credential's issuance; the factory treats a repeat as the
// fatal SaltCollision failure mode.
type SaltProvider interface {
	Salt() (string, error)
}

// SaltProviderFunc adapts a plain function to the SaltProvider interface.
type SaltProviderFunc func() (string, error)

// Salt calls f.
func (f SaltProviderFunc) Salt() (string, error) {
	return f()
}

// DefaultSaltProvider returns the engine's default SaltProvider: sizeBytes
// of Tink's CSPRNG source (github.com/google/tink/go/subtle/random),
// base64url-encoded, matching spec §4.D's recommendation of a 128-bit
// randomly-generated, base64url-encoded salt.
func DefaultSaltProvider(sizeBytes int) SaltProvider {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSaltSizeBytes
	}

	return SaltProviderFunc(func() (string, error) {
		b := random.GetRandomBytes(uint32(sizeBytes))

		return base64.RawURLEncoding.EncodeToString(b), nil
	})
}

// CounterSaltProvider returns a deterministic SaltProvider suitable for
// tests: it derives salt N from a fixed seed and an incrementing counter,
// so successive calls never repeat within a single test run while still
// producing reproducible fixtures across runs.
func CounterSaltProvider(seed string) SaltProvider {
	n := 0

	return SaltProviderFunc(func() (string, error) {
		n++

		if seed == "" {
			return "", sdjwterr.Malformed("randomness.CounterSaltProvider", "seed must not be empty")
		}

		return base64.RawURLEncoding.EncodeToString([]byte(paddedCounter(seed, n))), nil
	})
}

func paddedCounter(seed string, n int) string {
	digits := "0123456789"
	out := seed + "-"

	if n == 0 {
		return out + "0"
	}

	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}

	return out + string(buf)
}
