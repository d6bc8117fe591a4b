/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sdjwtengine is the umbrella for a Selective Disclosure JWT claim
// engine: building a disclosable claims tree, issuing the digest-bearing
// payload and disclosure bundle an Issuer sends a Holder, recreating the
// fully disclosed claims a Holder chooses to reveal to a Verifier, and
// validating the result against a disclosability schema.
//
// The engine is deliberately not a JWT signing library: it produces and
// consumes claims payloads, disclosures, and combined-format framing, but
// signing, key management, and transport are left to a host, wired in
// through the interfaces in the capability package.
//
// A typical issuance flow:
//
//   - build a tree.DObject describing which claims are always visible and
//     which are selectively disclosable, with tree.Plain/tree.SD and their
//     Object/Array counterparts;
//   - call issuer.Issue to get a claims payload and a disclosure bundle;
//   - sign the payload into a JWT (host responsibility) and frame it with
//     the disclosures using boundary.CombinedFormatForIssuance.
//
// A typical verification flow:
//
//   - parse the combined format with boundary.ParseCombinedFormatFor*;
//   - verify the JWT's signature (host responsibility) to recover its
//     claims payload;
//   - call recreator.Recreate with the payload and the disclosed
//     disclosures to get the fully disclosed claims and a per-path ledger;
//   - optionally call validator.Validate against a Schema to check the
//     result matches an expected claim shape.
package sdjwtengine
