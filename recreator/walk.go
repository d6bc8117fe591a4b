/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package recreator

import (
	"golang.org/x/exp/slices"

	"github.com/trustbloc/sdjwt-engine/claimpath"
	"github.com/trustbloc/sdjwt-engine/disclosure"
	"github.com/trustbloc/sdjwt-engine/sdjwterr"
)

// jobKind distinguishes the two container shapes a job processes.
type jobKind int

const (
	jobObject jobKind = iota
	jobArray
)

// job is one pending unit of work on the explicit stack: a container found
// somewhere in the tree, the path it lives at, and (for arrays, which may be
// resized) a callback to write the processed replacement back into its
// parent.
type job struct {
	kind jobKind
	path claimpath.Path
	obj  map[string]interface{}
	arr  []interface{}
	set  func(interface{})
}

// walker drives the whole recreation with an explicit, heap-allocated
// stack instead of Go call-stack recursion, so a maliciously deep payload
// cannot exhaust the goroutine stack.
type walker struct {
	idx    *digestIndex
	ledger *Ledger
	stack  []job
}

func (w *walker) push(path claimpath.Path, v interface{}, set func(interface{})) {
	switch cv := v.(type) {
	case map[string]interface{}:
		w.stack = append(w.stack, job{kind: jobObject, path: path, obj: cv, set: set})
	case []interface{}:
		w.stack = append(w.stack, job{kind: jobArray, path: path, arr: cv, set: set})
	}
}

func (w *walker) run() error {
	for len(w.stack) > 0 {
		j := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		switch j.kind {
		case jobObject:
			if err := w.processObject(j.path, j.obj); err != nil {
				return err
			}

			if j.set != nil {
				j.set(j.obj)
			}
		case jobArray:
			newArr, err := w.processArray(j.path, j.arr)
			if err != nil {
				return err
			}

			if j.set != nil {
				j.set(newArr)
			}
		}
	}

	return nil
}

// processObject resolves obj's own _sd digests in place, then queues any
// nested containers (its own or those just merged in from disclosures) for
// later processing.
func (w *walker) processObject(path claimpath.Path, obj map[string]interface{}) error {
	sdRaw, hasSD := obj[disclosure.SDKey]
	delete(obj, disclosure.SDKey)
	delete(obj, disclosure.SDAlgorithmKey)

	if hasSD {
		digests, ok := sdRaw.([]interface{})
		if !ok {
			return sdjwterr.Malformed("recreator.processObject", "%s must be an array", disclosure.SDKey)
		}

		var seen []string

		for _, raw := range digests {
			digestStr, ok := raw.(string)
			if !ok {
				return sdjwterr.Malformed("recreator.processObject", "%s entries must be strings", disclosure.SDKey)
			}

			if slices.Contains(seen, digestStr) {
				return sdjwterr.Inconsistent("recreator.processObject", "digest %q repeated within a single %s array", digestStr, disclosure.SDKey)
			}

			seen = append(seen, digestStr)

			d, found := w.idx.lookup(digestStr)
			if !found {
				continue // undisclosed real digest or decoy: nothing to reveal here
			}

			if err := w.applyObjectDisclosure(path, obj, digestStr, d); err != nil {
				return err
			}
		}
	}

	for key, v := range obj {
		child := path.Claim(key)

		switch v.(type) {
		case map[string]interface{}:
			w.push(child, v, nil)
		case []interface{}:
			k := key
			w.push(child, v, func(nv interface{}) { obj[k] = nv })
		}
	}

	return nil
}

func (w *walker) applyObjectDisclosure(path claimpath.Path, obj map[string]interface{}, digest string, d *disclosure.Disclosure) error {
	if d.Kind != disclosure.KindObject {
		return sdjwterr.Inconsistent("recreator.applyObjectDisclosure", "digest resolves to an array-element disclosure inside %s", disclosure.SDKey)
	}

	if _, exists := obj[d.Name]; exists {
		return sdjwterr.Inconsistent("recreator.applyObjectDisclosure", "claim name %q already present, cannot disclose over it", d.Name)
	}

	value, err := deepCopyValue(d.Value)
	if err != nil {
		return err
	}

	obj[d.Name] = value
	w.idx.markUsed(digest)
	w.ledger.record(path.Claim(d.Name), d)

	return nil
}

// processArray substitutes or drops every {"...": digest} placeholder in
// arr, returning the resulting (possibly shorter) slice, and queues any
// nested containers found in the result for later processing.
func (w *walker) processArray(path claimpath.Path, arr []interface{}) ([]interface{}, error) {
	out := make([]interface{}, 0, len(arr))

	for _, elem := range arr {
		m, ok := elem.(map[string]interface{})
		if ok {
			if digestRaw, has := m[disclosure.ArrayDigestKey]; has && len(m) == 1 {
				digestStr, ok := digestRaw.(string)
				if !ok {
					return nil, sdjwterr.Malformed("recreator.processArray", "%s value must be a string", disclosure.ArrayDigestKey)
				}

				d, found := w.idx.lookup(digestStr)
				if !found {
					continue // undisclosed element: dropped from the output array
				}

				if d.Kind != disclosure.KindArrayElement {
					return nil, sdjwterr.Inconsistent("recreator.processArray", "digest resolves to an object-property disclosure inside an array")
				}

				value, err := deepCopyValue(d.Value)
				if err != nil {
					return nil, err
				}

				elemPath := path.ArrayElement(len(out))
				w.idx.markUsed(digestStr)
				w.ledger.record(elemPath, d)
				out = append(out, value)

				continue
			}
		}

		out = append(out, elem)
	}

	for i, v := range out {
		child := path.ArrayElement(i)

		switch v.(type) {
		case map[string]interface{}:
			w.push(child, v, nil)
		case []interface{}:
			idx := i
			w.push(child, v, func(nv interface{}) { out[idx] = nv })
		}
	}

	return out, nil
}
