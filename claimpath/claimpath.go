/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package claimpath implements ClaimPath (spec §3): an ordered sequence of
// object-key or array-index steps identifying a node in a JSON tree, and
// the bridge between that structured representation and the dot-path
// strings understood by tidwall/gjson and tidwall/sjson.
package claimpath

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// StepKind distinguishes an object-key step from an array-index step.
type StepKind int

const (
	// StepKey is an object-key step.
	StepKey StepKind = iota
	// StepIndex is an array-index step.
	StepIndex
)

// Step is one element of a ClaimPath.
type Step struct {
	Kind  StepKind
	Key   string
	Index int
}

// Path is an ordered sequence of steps identifying a node in a JSON tree.
// The zero value is the root path.
type Path struct {
	steps []Step
}

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// Claim returns a new path with an object-key step appended.
func (p Path) Claim(name string) Path {
	return p.append(Step{Kind: StepKey, Key: name})
}

// ArrayElement returns a new path with an array-index step appended.
func (p Path) ArrayElement(index int) Path {
	return p.append(Step{Kind: StepIndex, Index: index})
}

func (p Path) append(s Step) Path {
	next := make([]Step, len(p.steps)+1)
	copy(next, p.steps)
	next[len(p.steps)] = s

	return Path{steps: next}
}

// Steps returns the path's steps, in order. The returned slice must not be
// mutated by the caller.
func (p Path) Steps() []Step {
	return p.steps
}

// Len returns the number of steps in the path (0 for the root).
func (p Path) Len() int {
	return len(p.steps)
}

// Parent returns the path with its last step removed. Calling Parent on
// the root path returns the root path.
func (p Path) Parent() Path {
	if len(p.steps) == 0 {
		return p
	}

	return Path{steps: p.steps[:len(p.steps)-1]}
}

// Equal reports whether two paths have identical steps in the same order.
func (p Path) Equal(other Path) bool {
	if len(p.steps) != len(other.steps) {
		return false
	}

	for i := range p.steps {
		if p.steps[i] != other.steps[i] {
			return false
		}
	}

	return true
}

// String renders the path using gjson/sjson dot-path syntax: object keys
// joined by '.', array indices as bare integers, e.g.
// "credentialSubject.address.0". The root path renders as "".
//
// The characters '.', '*' and '?' in a key are escaped with a backslash,
// matching gjson's own escaping convention, so String() output for such keys
// can be fed back into gjson.Get / sjson.Set. Other gjson path
// metacharacters (such as '|', '#' or '@') are not escaped.
func (p Path) String() string {
	parts := make([]string, 0, len(p.steps))

	for _, s := range p.steps {
		switch s.Kind {
		case StepKey:
			parts = append(parts, escape(s.Key))
		case StepIndex:
			parts = append(parts, strconv.Itoa(s.Index))
		}
	}

	return strings.Join(parts, ".")
}

func escape(key string) string {
	r := strings.NewReplacer(".", "\\.", "*", "\\*", "?", "\\?")

	return r.Replace(key)
}

// GetIn looks up the value at this path within raw JSON document bytes,
// without unmarshalling the whole document into a map first — useful for a
// caller holding only processed-claims bytes.
func (p Path) GetIn(doc []byte) gjson.Result {
	if p.Len() == 0 {
		return gjson.ParseBytes(doc)
	}

	return gjson.GetBytes(doc, p.String())
}

// DeleteIn returns doc with the value at this path removed, using sjson,
// for callers that redact raw JSON rather than decoded maps.
func (p Path) DeleteIn(doc []byte) ([]byte, error) {
	return sjson.DeleteBytes(doc, p.String())
}

// SetIn returns doc with the value at this path set to value, using sjson.
func (p Path) SetIn(doc []byte, value interface{}) ([]byte, error) {
	return sjson.SetBytes(doc, p.String(), value)
}
