/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package capability defines collaborator contracts the engine never
// implements itself (spec §6): signature verification, key-binding policy,
// and a hash-algorithm registry interface that hashreg.Registry satisfies.
// The salt and decoy interfaces are randomness.SaltProvider and
// randomness.DecoyGenerator; they are not redeclared here.
package capability

import (
	"crypto"
)

// SignatureVerifier verifies an unverified compact JWT (issuer-signed
// SD-JWT or a key-binding JWT) and returns its header and claims. The core
// never signs or verifies signatures itself; a host wires in a concrete
// JWS implementation here.
type SignatureVerifier interface {
	Verify(unverifiedJWT string) (header map[string]interface{}, claims map[string]interface{}, signatureOK bool, err error)
}

// KeyBindingVerifier encodes host policy over whether a key-binding JWT
// must accompany a presentation, and how its audience/challenge/nonce are
// checked once present.
type KeyBindingVerifier interface {
	// Required reports whether the policy demands a key-binding JWT.
	Required() bool
	// Verify checks a decoded key-binding JWT's claims against policy
	// (expected audience, nonce, freshness). cnf is the confirmation key
	// claim recovered from the SD-JWT payload.
	Verify(kbClaims map[string]interface{}, cnf map[string]interface{}) error
}

// HashAlgorithmRegistry is the name-resolution part of hashreg.Registry's
// surface, expressed as an interface. issuer and recreator do not accept it:
// their WithHashRegistry options take a concrete *hashreg.Registry, so a host
// extends the set of recognized names with hashreg.Registry.Alias rather than
// by substituting its own type.
type HashAlgorithmRegistry interface {
	FromName(name string) (crypto.Hash, error)
}
