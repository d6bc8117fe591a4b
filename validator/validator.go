/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/sdjwt-engine/claimpath"
	"github.com/trustbloc/sdjwt-engine/recreator"
	"github.com/trustbloc/sdjwt-engine/tree"
)

var logger = log.New("sdjwt-engine/validator")

// ViolationKind is the closed set of ways a recreated claim tree can
// disagree with its Schema.
type ViolationKind int

const (
	// UnknownObjectAttribute: a claim present in the payload has no
	// corresponding schema entry.
	UnknownObjectAttribute ViolationKind = iota
	// IncorrectlyDisclosed: a claim's actual disclosure status (whether it
	// was resolved via a digest at its exact path) disagrees with the
	// schema's disclosability tag.
	IncorrectlyDisclosed
	// WrongAttributeType: the schema expects an object (or an array) at
	// this path but the actual value is not an object (or not an array).
	WrongAttributeType
)

// String renders a ViolationKind for diagnostics.
func (k ViolationKind) String() string {
	switch k {
	case UnknownObjectAttribute:
		return "unknown-object-attribute"
	case IncorrectlyDisclosed:
		return "incorrectly-disclosed"
	case WrongAttributeType:
		return "wrong-attribute-type"
	default:
		return "unknown"
	}
}

// Violation is a single schema disagreement found at a specific path.
type Violation struct {
	Kind  ViolationKind
	Path  claimpath.Path
	Claim string // set only for UnknownObjectAttribute
}

// String renders a Violation for diagnostics/logging.
func (v Violation) String() string {
	if v.Kind == UnknownObjectAttribute {
		return fmt.Sprintf("%s: unknown attribute %q at %q", v.Kind, v.Claim, v.Path.String())
	}

	return fmt.Sprintf("%s at %q", v.Kind, v.Path.String())
}

// Result is Validate's output: an empty Violations slice means valid.
type Result struct {
	Violations []Violation
}

// Valid reports whether no violation was found.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Validate checks claims (as produced by recreator.Recreate) and its
// disclosure ledger against schema, per spec §4.F. It never short-circuits:
// every violation in the tree is collected before returning.
func Validate(claims map[string]interface{}, ledger *recreator.Ledger, schema SchemaObject) Result {
	var violations []Violation

	walkObject(claimpath.Root(), claims, schema, ledger, &violations)

	if len(violations) > 0 {
		logger.Debugf("validation found %d violation(s)", len(violations))
	}

	return Result{Violations: violations}
}

func hasEntryAt(ledger *recreator.Ledger, path claimpath.Path) bool {
	_, ok := ledger.ByPath(path)

	return ok
}

func walkObject(path claimpath.Path, actual map[string]interface{}, schema SchemaObject, ledger *recreator.Ledger, violations *[]Violation) {
	isRoot := path.Len() == 0

	for k := range actual {
		if isRoot && IsWellKnownRootClaim(k) {
			continue
		}

		if _, ok := schema[k]; !ok {
			*violations = append(*violations, Violation{Kind: UnknownObjectAttribute, Path: path, Claim: k})
		}
	}

	for k, node := range schema {
		childPath := path.Claim(k)

		val, present := actual[k]

		if !present {
			continue
		}

		checkDisclosability(node.Disclosability, childPath, ledger, violations)

		if val == nil {
			continue
		}

		checkNode(childPath, val, node, ledger, violations)
	}
}

func walkArray(path claimpath.Path, actual []interface{}, elem *SchemaNode, ledger *recreator.Ledger, violations *[]Violation) {
	if elem == nil {
		return
	}

	for i, v := range actual {
		childPath := path.ArrayElement(i)
		checkDisclosability(elem.Disclosability, childPath, ledger, violations)

		if v == nil {
			continue
		}

		checkNode(childPath, v, *elem, ledger, violations)
	}
}

func checkDisclosability(tag tree.Disclosability, path claimpath.Path, ledger *recreator.Ledger, violations *[]Violation) {
	required := hasEntryAt(ledger, path)

	switch tag {
	case tree.AlwaysSelectively:
		if !required {
			*violations = append(*violations, Violation{Kind: IncorrectlyDisclosed, Path: path})
		}
	case tree.NeverSelectively:
		if required {
			*violations = append(*violations, Violation{Kind: IncorrectlyDisclosed, Path: path})
		}
	}
}

func checkNode(path claimpath.Path, val interface{}, node SchemaNode, ledger *recreator.Ledger, violations *[]Violation) {
	switch node.Kind {
	case tree.KindObject:
		obj, ok := val.(map[string]interface{})
		if !ok {
			*violations = append(*violations, Violation{Kind: WrongAttributeType, Path: path})
			return
		}

		walkObject(path, obj, node.Object, ledger, violations)
	case tree.KindArray:
		arr, ok := val.([]interface{})
		if !ok {
			*violations = append(*violations, Violation{Kind: WrongAttributeType, Path: path})
			return
		}

		walkArray(path, arr, node.Element, ledger, violations)
	case tree.KindID:
		// scalar leaf: disclosability already checked, no further recursion.
	}
}
