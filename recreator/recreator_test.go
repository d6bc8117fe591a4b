/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package recreator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/issuer"
	"github.com/trustbloc/sdjwt-engine/randomness"
	"github.com/trustbloc/sdjwt-engine/recreator"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
	"github.com/trustbloc/sdjwt-engine/tree"
)

func noShuffle(int, func(int, int)) {}

func issueFixture(t *testing.T) *issuer.Result {
	t.Helper()

	root := tree.DObject{
		"given_name": tree.SD("Alice"),
		"family_name": tree.Plain("Wonderland"),
		"address": tree.PlainObject(tree.DObject{
			"street_address": tree.SD("123 Main St"),
			"country":        tree.Plain("US"),
		}),
		"nationalities": tree.PlainArray(
			tree.SD("US"),
			tree.Plain("DE"),
		),
	}

	res, err := issuer.Issue(root,
		issuer.WithShuffler(noShuffle),
		issuer.WithSaltProvider(randomness.CounterSaltProvider("t")),
	)
	require.NoError(t, err)

	return res
}

func TestRecreate_FullDisclosure(t *testing.T) {
	res := issueFixture(t)

	out, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.NoError(t, err)

	require.Equal(t, "Alice", out.Claims["given_name"])
	require.Equal(t, "Wonderland", out.Claims["family_name"])

	address, ok := out.Claims["address"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "123 Main St", address["street_address"])

	nats, ok := out.Claims["nationalities"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"US", "DE"}, nats)

	require.NotContains(t, out.Claims, disclosure.SDKey)
	require.NotContains(t, out.Claims, disclosure.SDAlgorithmKey)
	require.Len(t, out.Ledger.Entries(), len(res.Disclosures))
}

func TestRecreate_PartialDisclosure_ArrayElementDropped(t *testing.T) {
	res := issueFixture(t)

	// Drop the disclosure for the selectively disclosable array element
	// ("US" in nationalities); everything else stays disclosed.
	var kept []*disclosure.Disclosure

	for _, d := range res.Disclosures {
		if d.Kind == disclosure.KindArrayElement {
			continue
		}

		kept = append(kept, d)
	}

	out, err := recreator.Recreate(res.Payload, kept)
	require.NoError(t, err)

	nats, ok := out.Claims["nationalities"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"DE"}, nats)
}

func TestRecreate_NoDisclosuresLeavesPlainClaimsIntact(t *testing.T) {
	res := issueFixture(t)

	out, err := recreator.Recreate(res.Payload, nil)
	require.NoError(t, err)
	require.Equal(t, "Wonderland", out.Claims["family_name"])
	require.NotContains(t, out.Claims, "given_name")
}

func TestRecreate_OrphanDisclosureRejected(t *testing.T) {
	res := issueFixture(t)

	stray, err := disclosure.EncodeObject("saltx", "unrelated", "value", nil)
	require.NoError(t, err)

	_, err = recreator.Recreate(res.Payload, append(res.Disclosures, stray))
	require.Error(t, err)
}

func TestRecreate_DigestCollisionRejected(t *testing.T) {
	res := issueFixture(t)

	dup := *res.Disclosures[0]

	_, err := recreator.Recreate(res.Payload, append(res.Disclosures, &dup))
	require.Error(t, err)
}

func TestRecreate_MissingHashAlgorithmWithDisclosuresRejected(t *testing.T) {
	res := issueFixture(t)

	delete(res.Payload, disclosure.SDAlgorithmKey)

	_, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.Error(t, err)
	require.True(t, sdjwterr.IsKind(err, sdjwterr.KindAlgorithmUnknown))
}

func TestRecreate_DoesNotMutateDisclosureValue(t *testing.T) {
	root := tree.DObject{
		"address": tree.SDObject(tree.DObject{
			"street_address": tree.SD("123 Main St"),
		}),
	}

	res, err := issuer.Issue(root,
		issuer.WithShuffler(noShuffle),
		issuer.WithSaltProvider(randomness.CounterSaltProvider("t")),
	)
	require.NoError(t, err)

	// address is a whole-object disclosure, so its Value carries its own
	// nested _sd array that the walker strips when merging it into a
	// result. Recreating twice from the same disclosure bag must produce
	// the same output both times, proving the walker never mutates the
	// Disclosure it was handed. The issuer emits the inner street_address
	// disclosure before its enclosing address disclosure, so address is
	// Disclosures[1].
	first, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.NoError(t, err)

	addressValue, ok := res.Disclosures[1].Value.(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, addressValue, disclosure.SDKey, "disclosure value must survive the first Recreate untouched")

	second, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.NoError(t, err)
	require.Equal(t, first.Claims, second.Claims)
}

func TestRecreate_DoesNotMutateInputPayload(t *testing.T) {
	res := issueFixture(t)

	_, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.NoError(t, err)
	require.Contains(t, res.Payload, disclosure.SDKey)
}
