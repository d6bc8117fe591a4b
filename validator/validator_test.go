/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/issuer"
	"github.com/trustbloc/sdjwt-engine/randomness"
	"github.com/trustbloc/sdjwt-engine/recreator"
	"github.com/trustbloc/sdjwt-engine/tree"
	"github.com/trustbloc/sdjwt-engine/validator"
)

func noShuffle(int, func(int, int)) {}

func schemaFixture() validator.SchemaObject {
	return validator.SchemaObject{
		"given_name":  validator.SDLeaf(),
		"family_name": validator.PlainLeaf(),
		"address": validator.PlainObject(validator.SchemaObject{
			"street_address": validator.SDLeaf(),
			"country":        validator.PlainLeaf(),
		}),
	}
}

func issueAndRecreate(t *testing.T) (map[string]interface{}, *recreator.Ledger) {
	t.Helper()

	root := tree.DObject{
		"given_name":  tree.SD("Alice"),
		"family_name": tree.Plain("Wonderland"),
		"address": tree.PlainObject(tree.DObject{
			"street_address": tree.SD("123 Main St"),
			"country":        tree.Plain("US"),
		}),
	}

	res, err := issuer.Issue(root,
		issuer.WithShuffler(noShuffle),
		issuer.WithSaltProvider(randomness.CounterSaltProvider("t")),
	)
	require.NoError(t, err)

	out, err := recreator.Recreate(res.Payload, res.Disclosures)
	require.NoError(t, err)

	return out.Claims, out.Ledger
}

func TestValidate_ConformingCredentialIsValid(t *testing.T) {
	claims, ledger := issueAndRecreate(t)

	result := validator.Validate(claims, ledger, schemaFixture())
	require.True(t, result.Valid(), "%v", result.Violations)
}

func TestValidate_UnknownAttribute(t *testing.T) {
	claims, ledger := issueAndRecreate(t)
	claims["extra"] = "surprise"

	result := validator.Validate(claims, ledger, schemaFixture())
	require.False(t, result.Valid())
	require.Contains(t, result.Violations, validator.Violation{Kind: validator.UnknownObjectAttribute, Claim: "extra"})
}

func TestValidate_IncorrectlyDisclosed_FlippedTag(t *testing.T) {
	claims, ledger := issueAndRecreate(t)

	schema := schemaFixture()
	schema["family_name"] = validator.SDLeaf() // should be Plain, actual is not disclosed

	result := validator.Validate(claims, ledger, schema)
	require.False(t, result.Valid())

	found := false

	for _, v := range result.Violations {
		if v.Kind == validator.IncorrectlyDisclosed && v.Path.String() == "family_name" {
			found = true
		}
	}

	require.True(t, found)
}

func TestValidate_WithheldSelectiveClaimNotFlagged(t *testing.T) {
	root := tree.DObject{
		"given_name":  tree.SD("Alice"),
		"family_name": tree.Plain("Wonderland"),
	}

	res, err := issuer.Issue(root,
		issuer.WithShuffler(noShuffle),
		issuer.WithSaltProvider(randomness.CounterSaltProvider("t")),
	)
	require.NoError(t, err)

	// Holder discloses nothing: given_name never appears in the recreated
	// claims at all, which must not be reported as IncorrectlyDisclosed.
	out, err := recreator.Recreate(res.Payload, nil)
	require.NoError(t, err)

	schema := validator.SchemaObject{
		"given_name":  validator.SDLeaf(),
		"family_name": validator.PlainLeaf(),
	}

	result := validator.Validate(out.Claims, out.Ledger, schema)
	require.True(t, result.Valid(), "%v", result.Violations)
}

func TestValidate_WellKnownRootClaimsIgnored(t *testing.T) {
	claims, ledger := issueAndRecreate(t)
	claims["iss"] = "https://issuer.example"
	claims["vct"] = "https://example.com/credentials/id"

	result := validator.Validate(claims, ledger, schemaFixture())
	require.True(t, result.Valid(), "%v", result.Violations)
}

func TestLoadSchema_RoundTrip(t *testing.T) {
	description := map[string]interface{}{
		"given_name": map[string]interface{}{
			"disclosability": "always",
			"type":           "id",
		},
		"address": map[string]interface{}{
			"disclosability": "never",
			"type":           "object",
			"fields": map[string]interface{}{
				"country": map[string]interface{}{
					"disclosability": "never",
					"type":           "id",
				},
			},
		},
	}

	schema, err := validator.LoadSchema(description)
	require.NoError(t, err)
	require.Equal(t, validator.SDLeaf(), schema["given_name"])
	require.Equal(t, validator.PlainLeaf(), schema["address"].Object["country"])
}

func TestLoadSchema_MissingDisclosability(t *testing.T) {
	_, err := validator.LoadSchema(map[string]interface{}{
		"x": map[string]interface{}{"type": "id"},
	})
	require.Error(t, err)
}
