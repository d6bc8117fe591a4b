/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package recreator

import (
	"github.com/trustbloc/sdjwt-engine/claimpath"
	"github.com/trustbloc/sdjwt-engine/disclosure"
)

// LedgerEntry records that a disclosure was applied at a given path in the
// recreated claims tree.
type LedgerEntry struct {
	Path       claimpath.Path
	Disclosure *disclosure.Disclosure
}

// Ledger is the per-path record of which disclosure resolved which claim,
// built up over the course of one Recreate call.
type Ledger struct {
	entries []LedgerEntry
}

func (l *Ledger) record(path claimpath.Path, d *disclosure.Disclosure) {
	l.entries = append(l.entries, LedgerEntry{Path: path, Disclosure: d})
}

// Entries returns every recorded (path, disclosure) pair, in application
// order.
func (l *Ledger) Entries() []LedgerEntry {
	return l.entries
}

// ByPath returns the disclosure applied at path, if any.
func (l *Ledger) ByPath(path claimpath.Path) (*disclosure.Disclosure, bool) {
	for _, e := range l.entries {
		if e.Path.Equal(path) {
			return e.Disclosure, true
		}
	}

	return nil, false
}

// CountByPath is a convenience view over Entries keyed by the string
// rendering of each path, for callers that want simple counts (e.g. for
// metrics or logging) rather than structural ClaimPath comparisons.
func (l *Ledger) CountByPath() map[string]int {
	out := make(map[string]int, len(l.entries))

	for _, e := range l.entries {
		out[e.Path.String()]++
	}

	return out
}
