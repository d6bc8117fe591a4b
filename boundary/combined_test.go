/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package boundary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/boundary"
	"github.com/trustbloc/sdjwt-engine/disclosure"
)

func TestCombinedFormatForIssuance_RoundTrip(t *testing.T) {
	cf := boundary.CombinedFormatForIssuance{
		SDJWT:       "header.payload.sig",
		Disclosures: []string{"disc1", "disc2"},
	}

	s := cf.Serialize()
	require.Equal(t, "header.payload.sig~disc1~disc2~", s)

	parsed, err := boundary.ParseCombinedFormatForIssuance(s)
	require.NoError(t, err)
	require.Equal(t, cf.SDJWT, parsed.SDJWT)
	require.Equal(t, cf.Disclosures, parsed.Disclosures)
}

func TestCombinedFormatForIssuance_NoDisclosures(t *testing.T) {
	cf := boundary.CombinedFormatForIssuance{SDJWT: "header.payload.sig"}

	parsed, err := boundary.ParseCombinedFormatForIssuance(cf.Serialize())
	require.NoError(t, err)
	require.Empty(t, parsed.Disclosures)
}

func TestParseCombinedFormatForIssuance_MissingJWT(t *testing.T) {
	_, err := boundary.ParseCombinedFormatForIssuance("~disc1~")
	require.Error(t, err)
}

func TestCombinedFormatForPresentation_RoundTripWithKeyBinding(t *testing.T) {
	cf := boundary.CombinedFormatForPresentation{
		SDJWT:         "header.payload.sig",
		Disclosures:   []string{"disc1"},
		KeyBindingJWT: "kb.header.sig",
	}

	parsed, err := boundary.ParseCombinedFormatForPresentation(cf.Serialize())
	require.NoError(t, err)
	require.Equal(t, cf.SDJWT, parsed.SDJWT)
	require.Equal(t, cf.Disclosures, parsed.Disclosures)
	require.Equal(t, cf.KeyBindingJWT, parsed.KeyBindingJWT)
}

func TestCombinedFormatForPresentation_NoKeyBinding(t *testing.T) {
	cf := boundary.CombinedFormatForPresentation{
		SDJWT:       "header.payload.sig",
		Disclosures: []string{"disc1", "disc2"},
	}

	parsed, err := boundary.ParseCombinedFormatForPresentation(cf.Serialize())
	require.NoError(t, err)
	require.Empty(t, parsed.KeyBindingJWT)
	require.Equal(t, cf.Disclosures, parsed.Disclosures)
}

func TestBlobsOf_DecodeAll_RoundTrip(t *testing.T) {
	d1, err := disclosure.EncodeObject("salt1", "given_name", "Alice", nil)
	require.NoError(t, err)

	d2, err := disclosure.EncodeArray("salt2", "US", nil)
	require.NoError(t, err)

	blobs := boundary.BlobsOf([]*disclosure.Disclosure{d1, d2})
	decoded, err := boundary.DecodeAll(blobs)
	require.NoError(t, err)
	require.Equal(t, d1.Name, decoded[0].Name)
	require.Equal(t, d2.Value, decoded[1].Value)
}
