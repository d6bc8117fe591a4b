/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sdjwterr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

func TestNew_WrapsCauseAndFormats(t *testing.T) {
	cause := errors.New("boom")
	err := sdjwterr.New(sdjwterr.KindInputMalformed, "pkg.Op", cause)

	require.Equal(t, sdjwterr.KindInputMalformed, err.Kind)
	require.Equal(t, "pkg.Op", err.Op)
	require.Contains(t, err.Error(), "pkg.Op")
	require.Contains(t, err.Error(), "input-malformed")
	require.Contains(t, err.Error(), "boom")
	require.ErrorIs(t, err, cause)
}

func TestNew_NilCauseUsesKindMessage(t *testing.T) {
	err := sdjwterr.New(sdjwterr.KindSchemaViolation, "pkg.Op", nil)
	require.Contains(t, err.Error(), "schema-violation")
}

func TestNewf_FormatsCause(t *testing.T) {
	err := sdjwterr.Newf(sdjwterr.KindAlgorithmUnknown, "pkg.Op", "alg %q unknown", "sha-1")
	require.Contains(t, err.Error(), `alg "sha-1" unknown`)
}

func TestIsKind(t *testing.T) {
	err := sdjwterr.Malformed("pkg.Op", "bad")

	require.True(t, sdjwterr.IsKind(err, sdjwterr.KindInputMalformed))
	require.False(t, sdjwterr.IsKind(err, sdjwterr.KindPolicyViolation))
	require.False(t, sdjwterr.IsKind(errors.New("plain"), sdjwterr.KindInputMalformed))
}

func TestSentinelBuilders(t *testing.T) {
	require.True(t, sdjwterr.IsKind(sdjwterr.Malformed("op", "x"), sdjwterr.KindInputMalformed))
	require.True(t, sdjwterr.IsKind(sdjwterr.UnknownAlgorithm("op", "x"), sdjwterr.KindAlgorithmUnknown))
	require.True(t, sdjwterr.IsKind(sdjwterr.Inconsistent("op", "x"), sdjwterr.KindDisclosureInconsistency))
	require.True(t, sdjwterr.IsKind(sdjwterr.SchemaViolation("op", "x"), sdjwterr.KindSchemaViolation))
	require.True(t, sdjwterr.IsKind(sdjwterr.Policy("op", errors.New("x")), sdjwterr.KindPolicyViolation))
}

func TestError_StackTraceNonNil(t *testing.T) {
	err := sdjwterr.Malformed("pkg.Op", "bad")
	require.NotNil(t, err.StackTrace())
}
