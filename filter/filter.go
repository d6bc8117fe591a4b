/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package filter implements disclosure selection by claim path (spec §6.1):
// picking, out of a full disclosure bundle, exactly the disclosures a
// holder needs to reveal a chosen subset of claims in a presentation.
package filter

import (
	"context"
	"strconv"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"

	"github.com/trustbloc/sdjwt-engine/claimpath"
	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/recreator"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// builder is the same gval language configuration the ecosystem's
// Presentation Exchange input-descriptor selection uses to evaluate a
// JSONPath expression against an arbitrary decoded document.
var builder = gval.Full(jsonpath.PlaceholderExtension()) // nolint:gochecknoglobals

// SelectByPaths evaluates each of paths — a concrete JSONPath expression
// such as "$.address.street_address" or "$.nationalities[0]" — against the
// recreated claims in processed to confirm it resolves to a present value,
// then looks up which disclosure the ledger recorded at that exact
// location. A path naming an always-plaintext claim contributes nothing: no
// disclosure travels with the presentation to reveal a claim already
// visible. A path that does not resolve against processed (a claim that
// isn't there at all) is an error.
func SelectByPaths(processed map[string]interface{}, ledger *recreator.Ledger, paths ...string) ([]disclosure.Disclosure, error) {
	var out []disclosure.Disclosure

	seen := map[string]bool{}

	for _, p := range paths {
		evaluable, err := builder.NewEvaluable(p)
		if err != nil {
			return nil, sdjwterr.Malformed("filter.SelectByPaths", "invalid path %q: %v", p, err)
		}

		if _, err := evaluable(context.Background(), processed); err != nil {
			return nil, sdjwterr.Malformed("filter.SelectByPaths", "path %q did not resolve: %v", p, err)
		}

		cp, err := parseConcretePath(p)
		if err != nil {
			return nil, err
		}

		d, ok := ledger.ByPath(cp)
		if !ok {
			continue
		}

		if seen[d.Blob] {
			continue
		}

		seen[d.Blob] = true

		out = append(out, *d)
	}

	return out, nil
}

// parseConcretePath translates a single-target JSONPath expression (no
// wildcards, filters, or recursive descent — this package selects one exact
// claim at a time) into a claimpath.Path for the ledger lookup.
func parseConcretePath(p string) (claimpath.Path, error) {
	rest := strings.TrimPrefix(p, "$")
	path := claimpath.Root()

	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]

			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}

			key := rest[:end]
			if key == "" {
				return claimpath.Path{}, sdjwterr.Malformed("filter.parseConcretePath", "empty key in path %q", p)
			}

			path = path.Claim(key)
			rest = rest[end:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return claimpath.Path{}, sdjwterr.Malformed("filter.parseConcretePath", "unterminated index in path %q", p)
			}

			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return claimpath.Path{}, sdjwterr.Malformed("filter.parseConcretePath", "non-numeric index in path %q", p)
			}

			path = path.ArrayElement(idx)
			rest = rest[end+1:]
		default:
			return claimpath.Path{}, sdjwterr.Malformed("filter.parseConcretePath", "unexpected character at %q in path %q", rest, p)
		}
	}

	return path, nil
}
