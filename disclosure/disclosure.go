/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package disclosure implements the disclosure codec (component A): the
// bidirectional mapping between a salt/name/value (or salt/value) triple
// and the base64url-encoded JSON array blob that travels alongside an
// SD-JWT.
package disclosure

import (
	"crypto"
	"encoding/base64"
	"encoding/json"

	"github.com/trustbloc/sdjwt-engine/hashreg"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// SDKey, SDAlgorithmKey and ArrayDigestKey are the three claim names
// reserved by the SD-JWT wire format; user claims may never use them.
const (
	SDKey          = "_sd"
	SDAlgorithmKey = "_sd_alg"
	ArrayDigestKey = "..."
)

// reserved is the set checked against a disclosure's claim name, and
// against user-supplied claim names at issuance.
var reserved = map[string]bool{ // nolint:gochecknoglobals
	SDKey:          true,
	SDAlgorithmKey: true,
	ArrayDigestKey: true,
}

// IsReserved reports whether name is one of the three claim names the wire
// format reserves for its own use.
func IsReserved(name string) bool {
	return reserved[name]
}

// Kind distinguishes the two disclosure shapes the spec defines.
type Kind int

const (
	// KindUnknown is the zero value of a not-yet-decoded Disclosure.
	KindUnknown Kind = iota
	// KindObject is a [salt, name, value] object-property disclosure.
	KindObject
	// KindArrayElement is a [salt, value] array-element disclosure.
	KindArrayElement
)

// Disclosure is a single decoded (or about-to-be-encoded) disclosure: a
// salt, an optional claim name, and the claim value it hides, together with
// the exact base64url blob it round-trips to (needed because the digest is
// computed over the blob bytes, not over any re-serialization of the
// decoded fields).
type Disclosure struct {
	Blob  string
	Salt  string
	Name  string // empty for KindArrayElement
	Value interface{}
	Kind  Kind
}

// Marshaller lets callers (mainly tests) control JSON encoding of the
// disclosure array, mirroring the issuer's injectable json.Marshal.
type Marshaller func(v interface{}) ([]byte, error)

// EncodeObject builds an object-property disclosure [salt, name, value]
// and returns its base64url blob. name must not be a reserved claim name.
func EncodeObject(salt, name string, value interface{}, marshal Marshaller) (*Disclosure, error) {
	if IsReserved(name) {
		return nil, sdjwterr.Malformed("disclosure.EncodeObject", "claim name %q is reserved", name)
	}

	blob, err := encode([]interface{}{salt, name, value}, marshal)
	if err != nil {
		return nil, err
	}

	return &Disclosure{Blob: blob, Salt: salt, Name: name, Value: value, Kind: KindObject}, nil
}

// EncodeArray builds an array-element disclosure [salt, value] and returns
// its base64url blob.
func EncodeArray(salt string, value interface{}, marshal Marshaller) (*Disclosure, error) {
	blob, err := encode([]interface{}{salt, value}, marshal)
	if err != nil {
		return nil, err
	}

	return &Disclosure{Blob: blob, Salt: salt, Value: value, Kind: KindArrayElement}, nil
}

func encode(arr []interface{}, marshal Marshaller) (string, error) {
	if marshal == nil {
		marshal = json.Marshal
	}

	raw, err := marshal(arr)
	if err != nil {
		return "", sdjwterr.New(sdjwterr.KindInputMalformed, "disclosure.encode", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses a disclosure blob per spec §4.A, failing with
// KindInputMalformed on any of: not base64url, not UTF-8/JSON, wrong
// arity, a non-string name in the 3-element form, or a reserved name.
func Decode(blob string) (*Disclosure, error) {
	raw, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "disclosure.Decode", err)
	}

	var arr []interface{}
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, sdjwterr.New(sdjwterr.KindInputMalformed, "disclosure.Decode", err)
	}

	switch len(arr) {
	case 2:
		salt, ok := arr[0].(string)
		if !ok {
			return nil, sdjwterr.Malformed("disclosure.Decode", "array-element salt must be a string, got %T", arr[0])
		}

		return &Disclosure{Blob: blob, Salt: salt, Value: arr[1], Kind: KindArrayElement}, nil
	case 3:
		salt, ok := arr[0].(string)
		if !ok {
			return nil, sdjwterr.Malformed("disclosure.Decode", "object salt must be a string, got %T", arr[0])
		}

		name, ok := arr[1].(string)
		if !ok {
			return nil, sdjwterr.Malformed("disclosure.Decode", "object claim name must be a string, got %T", arr[1])
		}

		if IsReserved(name) {
			return nil, sdjwterr.Malformed("disclosure.Decode", "claim name %q is reserved", name)
		}

		return &Disclosure{Blob: blob, Salt: salt, Name: name, Value: arr[2], Kind: KindObject}, nil
	default:
		return nil, sdjwterr.Malformed("disclosure.Decode", "disclosure array length %d must be 2 or 3", len(arr))
	}
}

// Digest computes base64url_nopad(H(ascii(blob))) — the value the payload
// carries in _sd or {"...": digest}. The digest is computed over the blob
// string itself, never over a re-serialization of the decoded array, so
// that verifiers recompute it byte-for-byte identically (spec §4.A).
func Digest(reg *hashreg.Registry, alg crypto.Hash, blob string) (string, error) {
	return reg.DigestString(alg, blob)
}
