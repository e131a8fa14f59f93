package lcapy

import "errors"

var (
	// ErrNaming rejects symbol names that cannot be used, such as Go
	// reserved words or the domain variable names.
	ErrNaming = errors.New("lcapy: invalid symbol name")

	// ErrDomainMismatch reports arithmetic between expressions in
	// different transform domains.
	ErrDomainMismatch = errors.New("lcapy: domain mismatch")

	// ErrKindMismatch reports arithmetic that has no quantity
	// interpretation, such as adding a voltage to an impedance.
	ErrKindMismatch = errors.New("lcapy: quantity kind mismatch")

	// ErrTransformNotFound reports that no transform rule applies to the
	// expression for the requested domain change.
	ErrTransformNotFound = errors.New("lcapy: transform not found")

	// ErrNumericEval reports that an expression could not be reduced to a
	// number, usually because free symbols remain.
	ErrNumericEval = errors.New("lcapy: cannot evaluate numerically")

	// ErrNotRational reports that a rational-function operation was
	// requested on an expression that is not a ratio of polynomials in
	// the domain variable.
	ErrNotRational = errors.New("lcapy: not a rational function")
)
