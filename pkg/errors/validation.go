package errors

import "slices"

// ValidateQubit checks that q is a logical qubit index of an n-qubit device.
func ValidateQubit(q, n int) error {
	if q < 0 || q >= n {
		return New(ErrCodeConfiguration, "qubit %d out of range [0, %d)", q, n).
			With("qubit", q).
			With("qubit_count", n)
	}
	return nil
}

// ValidateQubits checks every index in qs with ValidateQubit. The role names
// the argument in the error message (e.g. "terminal", "usable").
func ValidateQubits(role string, qs []int, n int) error {
	for _, q := range qs {
		if q < 0 || q >= n {
			return New(ErrCodeConfiguration, "%s qubit %d out of range [0, %d)", role, q, n).
				With("qubit", q).
				With("role", role).
				With("qubit_count", n)
		}
	}
	return nil
}

// ValidatePermutation checks that order is a permutation of 0..n-1.
// The validation rules are:
//   - length must equal n
//   - every element must be in range
//   - no element may repeat
func ValidatePermutation(role string, order []int, n int) error {
	if len(order) != n {
		return New(ErrCodeConfiguration, "%s has %d entries, want %d", role, len(order), n).
			With("role", role)
	}
	seen := make([]bool, n)
	for i, q := range order {
		if q < 0 || q >= n {
			return New(ErrCodeConfiguration, "%s entry %d = %d out of range [0, %d)", role, i, q, n).
				With("role", role)
		}
		if seen[q] {
			return New(ErrCodeConfiguration, "%s repeats qubit %d", role, q).
				With("role", role).
				With("order", slices.Clone(order))
		}
		seen[q] = true
	}
	return nil
}
