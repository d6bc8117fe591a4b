/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validator

// wellKnownRootClaims are the registered JWT and SD-JWT-VC claims stripped
// from the root object before validation, since they are never modeled by a
// disclosability schema.
var wellKnownRootClaims = map[string]bool{ // nolint:gochecknoglobals
	"iss":            true,
	"sub":            true,
	"aud":            true,
	"exp":            true,
	"nbf":            true,
	"iat":            true,
	"jti":            true,
	"vct":            true,
	"vct#integrity":  true,
}

// IsWellKnownRootClaim reports whether name is one of the registered claims
// Validate strips from the root before walking against the schema.
func IsWellKnownRootClaim(name string) bool {
	return wellKnownRootClaims[name]
}
