/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package validator implements the definition validator (component F): it
// checks a recreated claims tree and its disclosure ledger against a Schema
// describing which claims are required to be selectively disclosable and
// which must always be plaintext, collecting every violation rather than
// stopping at the first.
package validator

import "github.com/trustbloc/sdjwt-engine/tree"

// SchemaNode is a Schema tree node: identical in shape to tree.DElement/
// DValue, but a leaf carries only its expected kind, never a value.
type SchemaNode struct {
	Disclosability tree.Disclosability
	Kind           tree.ValueKind
	Object         SchemaObject // populated when Kind == tree.KindObject
	Element        *SchemaNode  // populated when Kind == tree.KindArray; the single-element template every index must match
}

// SchemaObject maps claim name to expected node.
type SchemaObject map[string]SchemaNode

// Leaf builds a scalar schema node with an explicit disclosability tag.
func Leaf(tag tree.Disclosability) SchemaNode {
	return SchemaNode{Disclosability: tag, Kind: tree.KindID}
}

// PlainLeaf builds a scalar node that must never be selectively disclosed.
func PlainLeaf() SchemaNode {
	return Leaf(tree.NeverSelectively)
}

// SDLeaf builds a scalar node that must be selectively disclosed.
func SDLeaf() SchemaNode {
	return Leaf(tree.AlwaysSelectively)
}

// Object builds a nested-object schema node.
func Object(tag tree.Disclosability, fields SchemaObject) SchemaNode {
	return SchemaNode{Disclosability: tag, Kind: tree.KindObject, Object: fields}
}

// PlainObject builds a nested object that must never be selectively
// disclosed as a whole (its fields may still be, individually).
func PlainObject(fields SchemaObject) SchemaNode {
	return Object(tree.NeverSelectively, fields)
}

// SDObject builds a nested object that must, as a whole, be selectively
// disclosed.
func SDObject(fields SchemaObject) SchemaNode {
	return Object(tree.AlwaysSelectively, fields)
}

// Array builds an array schema node with a single-element template every
// index is checked against; an element that does not match the template is
// reported like any other violation.
func Array(tag tree.Disclosability, element SchemaNode) SchemaNode {
	return SchemaNode{Disclosability: tag, Kind: tree.KindArray, Element: &element}
}

// PlainArray builds an array node that must never be selectively disclosed
// as a whole.
func PlainArray(element SchemaNode) SchemaNode {
	return Array(tree.NeverSelectively, element)
}
