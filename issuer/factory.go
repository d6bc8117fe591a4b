/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package issuer implements the SD-JWT factory (component D): walking a
// disclosable tree bottom-up, producing one Disclosure per AlwaysSelectively
// node and a JWT claims payload carrying digests and placeholders in their
// stead.
package issuer

import (
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
	"github.com/trustbloc/sdjwt-engine/tree"
)

var logger = log.New("sdjwt-engine/issuer")

// Result is the output of a successful Issue call: the JWT claims payload
// (ready to sign) and the ordered bundle of disclosures a holder needs to
// reveal any subset of the selectively disclosable claims.
type Result struct {
	Payload     map[string]interface{}
	Disclosures []*disclosure.Disclosure
}

// Issue walks root and produces the claims payload and disclosure bundle per
// spec §4.D. Registered claims configured via With{Issuer,Subject,...} are
// stamped onto the payload root as always-plaintext claims alongside
// whatever the tree itself contributes at the root level.
func Issue(root tree.DObject, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	b := &builder{
		cfg:         cfg,
		takenSalts:  map[string]bool{},
		seenDigests: map[string]bool{},
	}

	payload, err := b.buildObject(root)
	if err != nil {
		logger.Debugf("issuance failed: %s", err)
		return nil, err
	}

	b.stampRegisteredClaims(payload)

	if len(b.disclosures) > 0 {
		name := cfg.registry.NameOf(cfg.hashAlg)
		if name == "" {
			return nil, sdjwterr.UnknownAlgorithm("issuer.Issue", "hash algorithm %v has no registered _sd_alg name", cfg.hashAlg)
		}

		payload[disclosure.SDAlgorithmKey] = name
	}

	logger.Debugf("issued payload with %d disclosure(s)", len(b.disclosures))

	return &Result{Payload: payload, Disclosures: b.disclosures}, nil
}

// builder accumulates issuance-wide state across the recursive walk: every
// disclosure minted so far, every salt handed out (SaltCollision detection),
// and every digest emitted anywhere in the payload so far (so decoys never
// collide with a real digest already placed, regardless of where in the
// tree it lives).
type builder struct {
	cfg         *config
	disclosures []*disclosure.Disclosure
	takenSalts  map[string]bool
	seenDigests map[string]bool
}

func (b *builder) stampRegisteredClaims(payload map[string]interface{}) {
	rc := b.cfg.registeredClaims

	if rc.Issuer != "" {
		payload["iss"] = rc.Issuer
	}

	if rc.Subject != "" {
		payload["sub"] = rc.Subject
	}

	if rc.Audience != "" {
		payload["aud"] = rc.Audience
	}

	if rc.JTI != "" {
		payload["jti"] = rc.JTI
	}

	if rc.Expiry != nil {
		payload["exp"] = rc.Expiry
	}

	if rc.NotBefore != nil {
		payload["nbf"] = rc.NotBefore
	}

	if rc.IssuedAt != nil {
		payload["iat"] = rc.IssuedAt
	}

	if b.cfg.holderPublicKey != nil {
		payload["cnf"] = map[string]interface{}{"jwk": b.cfg.holderPublicKey}
	}
}

// nextSalt hands out a fresh salt, failing with SaltCollision if the
// configured SaltProvider ever repeats one within this issuance.
func (b *builder) nextSalt() (string, error) {
	salt, err := b.cfg.saltProvider.Salt()
	if err != nil {
		return "", sdjwterr.New(sdjwterr.KindDisclosureInconsistency, "issuer.nextSalt", err)
	}

	if b.takenSalts[salt] {
		return "", sdjwterr.Inconsistent("issuer.nextSalt", "salt provider produced a repeated salt")
	}

	b.takenSalts[salt] = true

	return salt, nil
}

// digestOf hashes blob and records it in seenDigests, failing if it
// collides with any digest already emitted anywhere in the payload so far
// (spec invariant: every digest identifies at most one disclosure).
func (b *builder) digestOf(blob string) (string, error) {
	d, err := disclosure.Digest(b.cfg.registry, b.cfg.hashAlg, blob)
	if err != nil {
		return "", err
	}

	if b.seenDigests[d] {
		return "", sdjwterr.Inconsistent("issuer.digestOf", "digest collision across disclosures")
	}

	b.seenDigests[d] = true

	return d, nil
}

// renderValue turns a DValue into its JSON-ready representation, recursing
// into nested objects/arrays. It rejects a tree.DElement passed as a raw ID
// value, which can only arise from a caller trying to nest a disclosable
// element directly inside another (SD(SD(x))) instead of going through
// Object/Array — the IllegalNesting failure mode.
func (b *builder) renderValue(v tree.DValue) (interface{}, error) {
	switch v.Kind() {
	case tree.KindID:
		if _, ok := v.AsID().(tree.DElement); ok {
			return nil, sdjwterr.Malformed("issuer.renderValue", "illegal nesting: a disclosable element cannot be the value of another disclosable element")
		}

		return v.AsID(), nil
	case tree.KindObject:
		return b.buildObject(v.AsObject())
	case tree.KindArray:
		return b.buildArray(v.AsArray())
	default:
		return nil, sdjwterr.Malformed("issuer.renderValue", "unknown value kind %v", v.Kind())
	}
}

// buildObject renders every field of obj, routing NeverSelectively fields
// straight into the result map and AlwaysSelectively fields into a minted
// Disclosure whose digest lands in the object's _sd array, padded with
// decoys and shuffled per spec §4.D.
func (b *builder) buildObject(obj tree.DObject) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(obj))

	var sdDigests []string

	for name, elem := range obj {
		if disclosure.IsReserved(name) {
			return nil, sdjwterr.Malformed("issuer.buildObject", "claim name %q is reserved", name)
		}

		switch elem.Disclosability {
		case tree.NeverSelectively:
			rendered, err := b.renderValue(elem.Value)
			if err != nil {
				return nil, err
			}

			result[name] = rendered
		case tree.AlwaysSelectively:
			digest, err := b.discloseObjectField(name, elem.Value)
			if err != nil {
				return nil, err
			}

			sdDigests = append(sdDigests, digest)
		default:
			return nil, sdjwterr.Malformed("issuer.buildObject", "unknown disclosability %v", elem.Disclosability)
		}
	}

	if err := b.padWithDecoys(&sdDigests); err != nil {
		return nil, err
	}

	if len(sdDigests) > 0 {
		b.cfg.shuffle(len(sdDigests), func(i, j int) { sdDigests[i], sdDigests[j] = sdDigests[j], sdDigests[i] })
		result[disclosure.SDKey] = sdDigests
	}

	return result, nil
}

func (b *builder) discloseObjectField(name string, value tree.DValue) (string, error) {
	inner, err := b.renderValue(value)
	if err != nil {
		return "", err
	}

	salt, err := b.nextSalt()
	if err != nil {
		return "", err
	}

	d, err := disclosure.EncodeObject(salt, name, inner, b.cfg.marshal)
	if err != nil {
		return "", err
	}

	digest, err := b.digestOf(d.Blob)
	if err != nil {
		return "", err
	}

	b.disclosures = append(b.disclosures, d)

	return digest, nil
}

// buildArray renders every element of arr in order; a NeverSelectively
// element embeds its value inline, an AlwaysSelectively element mints a
// Disclosure and embeds a {"...": digest} placeholder instead.
func (b *builder) buildArray(arr tree.DArray) ([]interface{}, error) {
	result := make([]interface{}, len(arr))

	for i, elem := range arr {
		switch elem.Disclosability {
		case tree.NeverSelectively:
			rendered, err := b.renderValue(elem.Value)
			if err != nil {
				return nil, err
			}

			result[i] = rendered
		case tree.AlwaysSelectively:
			placeholder, err := b.discloseArrayElement(elem.Value)
			if err != nil {
				return nil, err
			}

			result[i] = placeholder
		default:
			return nil, sdjwterr.Malformed("issuer.buildArray", "unknown disclosability %v", elem.Disclosability)
		}
	}

	return result, nil
}

func (b *builder) discloseArrayElement(value tree.DValue) (map[string]interface{}, error) {
	inner, err := b.renderValue(value)
	if err != nil {
		return nil, err
	}

	salt, err := b.nextSalt()
	if err != nil {
		return nil, err
	}

	d, err := disclosure.EncodeArray(salt, inner, b.cfg.marshal)
	if err != nil {
		return nil, err
	}

	digest, err := b.digestOf(d.Blob)
	if err != nil {
		return nil, err
	}

	b.disclosures = append(b.disclosures, d)

	return map[string]interface{}{disclosure.ArrayDigestKey: digest}, nil
}

// padWithDecoys grows sdDigests to satisfy the configured MinDigestsPolicy,
// then optionally tacks on 1-4 more when WithRandomDecoys is set, so the
// true count of real digests is never inferable from length alone.
func (b *builder) padWithDecoys(sdDigests *[]string) error {
	target := b.cfg.minDigests.target(len(*sdDigests))

	for len(*sdDigests) < target {
		d, err := b.decoy()
		if err != nil {
			return err
		}

		*sdDigests = append(*sdDigests, d)
	}

	if b.cfg.addRandomDecoys && (len(*sdDigests) > 0 || target > 0) {
		n := 1 + randIntn(4)

		for i := 0; i < n; i++ {
			d, err := b.decoy()
			if err != nil {
				return err
			}

			*sdDigests = append(*sdDigests, d)
		}
	}

	return nil
}

func (b *builder) decoy() (string, error) {
	return decoyDigest(b.cfg, b.seenDigests)
}
