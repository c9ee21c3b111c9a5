// SPDX-License-Identifier: MIT

package calc

import (
	"fmt"
	"strings"
)

// Operation names one calculator operation.
type Operation string

// Supported operations. The first five are the calculator's core set.
const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpInverse        Operation = "inverse"
	OpEigen          Operation = "eigen"
	OpTranspose      Operation = "transpose"
	OpDeterminant    Operation = "determinant"
)

// allOperations fixes the listing order.
var allOperations = []Operation{
	OpAddition,
	OpSubtraction,
	OpMultiplication,
	OpInverse,
	OpEigen,
	OpTranspose,
	OpDeterminant,
}

// aliases accepted by ParseOperation in addition to the canonical names.
var aliases = map[string]Operation{
	"add":         OpAddition,
	"sum":         OpAddition,
	"sub":         OpSubtraction,
	"subtract":    OpSubtraction,
	"mul":         OpMultiplication,
	"multiply":    OpMultiplication,
	"product":     OpMultiplication,
	"inv":         OpInverse,
	"eigenvalues": OpEigen,
	"eig":         OpEigen,
	"t":           OpTranspose,
	"det":         OpDeterminant,
}

// Operations lists every supported operation in a stable order.
func Operations() []Operation {
	out := make([]Operation, len(allOperations))
	copy(out, allOperations)

	return out
}

// ParseOperation resolves a name or alias (case-insensitive).
func ParseOperation(name string) (Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, op := range allOperations {
		if string(op) == key {
			return op, nil
		}
	}
	if op, ok := aliases[key]; ok {
		return op, nil
	}

	return "", invalidInput(fmt.Sprintf("unknown operation %q", name), nil)
}

// Binary reports whether the operation needs a second matrix.
func (op Operation) Binary() bool {
	return op == OpAddition || op == OpSubtraction || op == OpMultiplication
}

// NeedsSquare reports whether the operation requires a square first matrix.
func (op Operation) NeedsSquare() bool {
	return op == OpInverse || op == OpEigen || op == OpDeterminant
}

// Describe returns a one-line human description.
func (op Operation) Describe() string {
	switch op {
	case OpAddition:
		return "A + B, element-wise (same shape)"
	case OpSubtraction:
		return "A - B, element-wise (same shape)"
	case OpMultiplication:
		return "A × B (columns of A = rows of B)"
	case OpInverse:
		return "A⁻¹ by Gauss-Jordan elimination (square, non-singular)"
	case OpEigen:
		return "eigenvalues and eigenvectors by the QR algorithm (square)"
	case OpTranspose:
		return "Aᵀ"
	case OpDeterminant:
		return "det(A) by LU factorization (square)"
	default:
		return ""
	}
}
