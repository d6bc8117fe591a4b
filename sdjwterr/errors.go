/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sdjwterr defines the error taxonomy shared by every component of
// the SD-JWT claim-disclosure engine. Every failure the engine returns is
// classified into one of a small, closed set of Kinds so that callers can
// branch on failure category without string-matching messages.
package sdjwterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure into the taxonomy described by the engine's
// error handling design. Kinds are deliberately coarse: they answer "what
// broke", not "which line".
type Kind int

const (
	// KindUnknown is the zero value; never returned by this module.
	KindUnknown Kind = iota

	// KindInputMalformed covers bad base64url, bad JSON, wrong disclosure
	// arity, and reserved-name usage.
	KindInputMalformed

	// KindAlgorithmUnknown covers a missing or unrecognized _sd_alg.
	KindAlgorithmUnknown

	// KindDisclosureInconsistency covers duplicate digests, claim-name
	// collisions on re-insertion, and orphaned disclosures. A digest with
	// no matching disclosure is not an error anywhere in this module.
	KindDisclosureInconsistency

	// KindSchemaViolation covers unknown attributes, wrong types, and
	// incorrect disclosability as reported by the definition validator.
	KindSchemaViolation

	// KindPolicyViolation covers failures surfaced unchanged from
	// pluggable collaborators: bad signatures, missing/invalid key
	// binding, untrusted certificates, DID lookup failures.
	KindPolicyViolation
)

// String renders a Kind for logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindInputMalformed:
		return "input-malformed"
	case KindAlgorithmUnknown:
		return "algorithm-unknown"
	case KindDisclosureInconsistency:
		return "disclosure-inconsistency"
	case KindSchemaViolation:
		return "schema-violation"
	case KindPolicyViolation:
		return "policy-violation"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every exported operation in
// this module that can fail for a reason belonging to the taxonomy above.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.err)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// StackTrace exposes the pkg/errors stack captured at construction, so
// callers debugging a rejected credential can print exactly where in the
// walk the rejection happened.
func (e *Error) StackTrace() errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	if st, ok := e.err.(stackTracer); ok {
		return st.StackTrace()
	}

	return nil
}

// New builds an Error of the given Kind for operation op, wrapping cause
// with a stack trace via github.com/pkg/errors so the failure site survives
// past the immediate call frame.
func New(kind Kind, op string, cause error) *Error {
	if cause == nil {
		cause = errors.New(kind.String())
	}

	return &Error{
		Kind: kind,
		Op:   op,
		err:  errors.WithStack(cause),
	}
}

// Newf is New with a formatted cause message.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return New(kind, op, fmt.Errorf(format, args...))
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, sdjwterr.New(sdjwterr.KindInputMalformed, "", nil)) matches
// any KindInputMalformed error regardless of Op or cause. IsKind is the
// simpler way to ask the same question.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == other.Kind
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error

	if !errors.As(err, &e) {
		return false
	}

	return e.Kind == kind
}

// Sentinel construction helpers, one per Kind, so call sites don't repeat
// the Kind constant at every error site.

// Malformed builds a KindInputMalformed error.
func Malformed(op, format string, args ...interface{}) *Error {
	return Newf(KindInputMalformed, op, format, args...)
}

// UnknownAlgorithm builds a KindAlgorithmUnknown error.
func UnknownAlgorithm(op, format string, args ...interface{}) *Error {
	return Newf(KindAlgorithmUnknown, op, format, args...)
}

// Inconsistent builds a KindDisclosureInconsistency error.
func Inconsistent(op, format string, args ...interface{}) *Error {
	return Newf(KindDisclosureInconsistency, op, format, args...)
}

// SchemaViolation builds a KindSchemaViolation error.
func SchemaViolation(op, format string, args ...interface{}) *Error {
	return Newf(KindSchemaViolation, op, format, args...)
}

// Policy wraps a collaborator-surfaced failure as KindPolicyViolation,
// passed through unchanged in substance per the propagation rule.
func Policy(op string, cause error) *Error {
	return New(KindPolicyViolation, op, cause)
}
