/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/tree"
)

func TestBuilders(t *testing.T) {
	root := tree.DObject{
		"iss": tree.Plain("sample"),
		"sub": tree.Plain("6c5c0a49-b589-431d-bae7-219122a9ec2c"),
		"address": tree.PlainObject(tree.DObject{
			"street_address": tree.SD("Schulstr. 12"),
			"locality":       tree.Plain("Schulpforta"),
		}),
		"nationalities": tree.PlainArray(
			tree.Plain("DE"),
			tree.SD("US"),
		),
		"recursive_address": tree.SDObject(tree.DObject{
			"country": tree.Plain("DE"),
		}),
	}

	require.Equal(t, tree.NeverSelectively, root["iss"].Disclosability)
	require.Equal(t, tree.KindID, root["iss"].Value.Kind())
	require.Equal(t, "sample", root["iss"].Value.AsID())

	addr := root["address"]
	require.Equal(t, tree.NeverSelectively, addr.Disclosability)
	require.Equal(t, tree.KindObject, addr.Value.Kind())

	street := addr.Value.AsObject()["street_address"]
	require.Equal(t, tree.AlwaysSelectively, street.Disclosability)

	nat := root["nationalities"]
	require.Equal(t, tree.KindArray, nat.Value.Kind())
	require.Len(t, nat.Value.AsArray(), 2)
	require.Equal(t, tree.AlwaysSelectively, nat.Value.AsArray()[1].Disclosability)

	rec := root["recursive_address"]
	require.Equal(t, tree.AlwaysSelectively, rec.Disclosability)
	require.Equal(t, tree.KindObject, rec.Value.Kind())
}
