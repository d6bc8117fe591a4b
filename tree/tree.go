/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tree implements the disclosable-tree DSL and canonical IR
// (component C): a purely data-constructive description of which claims of
// a credential are always visible and which are selectively disclosable,
// including arrays whose individual elements may be independently
// disclosable, and unbounded object/array nesting.
package tree

// Disclosability tags a node of the tree as either always present in the
// issued payload, or only present behind a digest placeholder and revealed
// via a separate Disclosure.
type Disclosability int

const (
	// NeverSelectively means the plain value is embedded directly in the
	// payload; no disclosure exists for this node.
	NeverSelectively Disclosability = iota
	// AlwaysSelectively means the payload carries only a digest for this
	// node; the plain value travels in a Disclosure.
	AlwaysSelectively
)

// String renders a Disclosability for diagnostics.
func (d Disclosability) String() string {
	if d == AlwaysSelectively {
		return "always-selectively"
	}

	return "never-selectively"
}

// ValueKind is the closed set of shapes a DValue can take.
type ValueKind int

const (
	// KindID is an opaque JSON value: null, bool, number, string, or an
	// array/object that is not itself being modeled as a DArray/DObject
	// (e.g. an array of plain, non-disclosable primitives).
	KindID ValueKind = iota
	// KindObject is a nested DObject.
	KindObject
	// KindArray is a nested DArray.
	KindArray
)

// DValue is the closed sum `DValue ∈ { Id(JsonValue), Obj(DObject), Arr(DArray) }`
// from spec §3. Construct one with Id, Obj, or Arr; inspect one with Kind
// plus AsID/AsObject/AsArray.
type DValue struct {
	kind ValueKind
	id   interface{}
	obj  DObject
	arr  DArray
}

// Kind reports which of the three shapes this DValue holds.
func (v DValue) Kind() ValueKind {
	return v.kind
}

// AsID returns the opaque JSON value. Only meaningful when Kind() == KindID.
func (v DValue) AsID() interface{} {
	return v.id
}

// AsObject returns the nested object. Only meaningful when Kind() == KindObject.
func (v DValue) AsObject() DObject {
	return v.obj
}

// AsArray returns the nested array. Only meaningful when Kind() == KindArray.
func (v DValue) AsArray() DArray {
	return v.arr
}

// Id wraps an opaque JSON value (null, bool, number, string, or an
// already-JSON-shaped array/object with no further disclosability
// modeling) as a DValue.
func Id(v interface{}) DValue {
	return DValue{kind: KindID, id: v}
}

// Obj wraps a nested DObject as a DValue.
func Obj(o DObject) DValue {
	return DValue{kind: KindObject, obj: o}
}

// Arr wraps a nested DArray as a DValue.
func Arr(a DArray) DValue {
	return DValue{kind: KindArray, arr: a}
}

// DElement is `Disclosable<DValue>` from spec §3: a value plus the
// disclosability tag governing whether it appears in the issued payload
// directly or only behind a digest.
type DElement struct {
	Disclosability Disclosability
	Value          DValue
}

// DObject is a mapping from claim name to element. Insertion order is
// semantically irrelevant — the factory shuffles emitted digests — so a
// plain Go map is the correct representation.
type DObject map[string]DElement

// DArray is an ordered sequence of elements; order here is significant
// (it is preserved in the issued payload), unlike DObject.
type DArray []DElement
