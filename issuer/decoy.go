/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuer

import (
	"math/rand"

	"github.com/trustbloc/sdjwt-engine/randomness"
)

// decoyDigest mints one decoy digest via the configured DecoyGenerator,
// guaranteed unique against every digest already emitted anywhere in the
// payload so far.
func decoyDigest(cfg *config, seen map[string]bool) (string, error) {
	return randomness.GenerateUnique(cfg.decoyGenerator, cfg.hashAlg, seen)
}

// randIntn wraps math/rand.Intn(n) for the teacher-style random decoy count.
func randIntn(n int) int {
	return rand.Intn(n)
}
