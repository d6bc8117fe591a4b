/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package boundary implements the compact-format framing (component I):
// the "~"-joined combined format an SD-JWT is transmitted in, both for
// issuance (JWT plus disclosures) and presentation (JWT, disclosures, and
// an optional key-binding JWT).
package boundary

import (
	"strings"

	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// Separator joins the compact JWT and each disclosure blob.
const Separator = "~"

// CombinedFormatForIssuance is the SD-JWT plus its disclosure bundle, as
// handed from issuer to holder.
type CombinedFormatForIssuance struct {
	SDJWT       string
	Disclosures []string
}

// Serialize renders the combined format: `<jwt>~<disclosure>~<disclosure>~...~`.
func (c CombinedFormatForIssuance) Serialize() string {
	var b strings.Builder

	b.WriteString(c.SDJWT)

	for _, d := range c.Disclosures {
		b.WriteString(Separator)
		b.WriteString(d)
	}

	b.WriteString(Separator)

	return b.String()
}

// ParseCombinedFormatForIssuance parses the issuance combined format.
func ParseCombinedFormatForIssuance(s string) (*CombinedFormatForIssuance, error) {
	parts := strings.Split(s, Separator)
	if len(parts) < 1 || parts[0] == "" {
		return nil, sdjwterr.Malformed("boundary.ParseCombinedFormatForIssuance", "missing SD-JWT")
	}

	var discs []string

	for _, p := range parts[1:] {
		if p == "" {
			continue // trailing separator
		}

		discs = append(discs, p)
	}

	return &CombinedFormatForIssuance{SDJWT: parts[0], Disclosures: discs}, nil
}

// CombinedFormatForPresentation is the SD-JWT, the disclosures a holder
// chose to reveal, and an optional key-binding JWT, as sent to a verifier.
type CombinedFormatForPresentation struct {
	SDJWT         string
	Disclosures   []string
	KeyBindingJWT string // empty when no key binding accompanies the presentation
}

// Serialize renders the presentation combined format:
// `<jwt>~<disclosure>~...~<kb-jwt-or-empty>`.
func (c CombinedFormatForPresentation) Serialize() string {
	var b strings.Builder

	b.WriteString(c.SDJWT)

	for _, d := range c.Disclosures {
		b.WriteString(Separator)
		b.WriteString(d)
	}

	b.WriteString(Separator)
	b.WriteString(c.KeyBindingJWT)

	return b.String()
}

// ParseCombinedFormatForPresentation parses the presentation combined
// format. The final segment, if non-empty, is the key-binding JWT.
func ParseCombinedFormatForPresentation(s string) (*CombinedFormatForPresentation, error) {
	parts := strings.Split(s, Separator)
	if len(parts) < 2 || parts[0] == "" {
		return nil, sdjwterr.Malformed("boundary.ParseCombinedFormatForPresentation", "missing SD-JWT")
	}

	kb := parts[len(parts)-1]

	var discs []string

	for _, p := range parts[1 : len(parts)-1] {
		if p == "" {
			continue
		}

		discs = append(discs, p)
	}

	return &CombinedFormatForPresentation{SDJWT: parts[0], Disclosures: discs, KeyBindingJWT: kb}, nil
}

// BlobsOf extracts the base64url blob of each disclosure, in order, for
// building a CombinedFormat.
func BlobsOf(discs []*disclosure.Disclosure) []string {
	blobs := make([]string, len(discs))
	for i, d := range discs {
		blobs[i] = d.Blob
	}

	return blobs
}

// DecodeAll decodes every blob into a Disclosure, failing on the first
// malformed entry.
func DecodeAll(blobs []string) ([]*disclosure.Disclosure, error) {
	discs := make([]*disclosure.Disclosure, len(blobs))

	for i, b := range blobs {
		d, err := disclosure.Decode(b)
		if err != nil {
			return nil, err
		}

		discs[i] = d
	}

	return discs, nil
}
