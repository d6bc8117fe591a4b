/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashreg_test

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/hashreg"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

func TestRegistry_FromName(t *testing.T) {
	r := hashreg.New()

	t.Run("known algorithms", func(t *testing.T) {
		for name, want := range map[string]crypto.Hash{
			"sha-256":  crypto.SHA256,
			"SHA-384":  crypto.SHA384,
			"sha-512":  crypto.SHA512,
			"sha3-256": crypto.SHA3_256,
			"sha3-512": crypto.SHA3_512,
		} {
			got, err := r.FromName(name)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := r.FromName("md5")
		require.Error(t, err)
		require.True(t, sdjwterr.IsKind(err, sdjwterr.KindAlgorithmUnknown))
	})
}

func TestRegistry_Alias(t *testing.T) {
	r := hashreg.New()

	require.NoError(t, r.Alias("sha256", "sha-256"))

	got, err := r.FromName("sha256")
	require.NoError(t, err)
	require.Equal(t, crypto.SHA256, got)

	require.Error(t, r.Alias("x", "not-a-real-alg"))
}

func TestRegistry_DigestString(t *testing.T) {
	r := hashreg.New()

	digest, err := r.DigestString(crypto.SHA256, "WyJzYWx0IiwibmFtZSIsInZhbHVlIl0")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	// deterministic for the same input
	digest2, err := r.DigestString(crypto.SHA256, "WyJzYWx0IiwibmFtZSIsInZhbHVlIl0")
	require.NoError(t, err)
	require.Equal(t, digest, digest2)
}

func TestRegistry_NameOf(t *testing.T) {
	r := hashreg.New()

	require.Equal(t, "sha-256", r.NameOf(crypto.SHA256))
	require.Equal(t, "sha3-512", r.NameOf(crypto.SHA3_512))

	require.NoError(t, r.Alias("sha256", "sha-256"))
	// NameOf never returns an alias
	require.Equal(t, "sha-256", r.NameOf(crypto.SHA256))
}
