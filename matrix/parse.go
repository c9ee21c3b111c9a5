// SPDX-License-Identifier: MIT

// Package matrix - textual matrix input.
//
// Format: rows separated by ';', entries separated by whitespace,
// e.g. "1 2; 3 4" for [[1,2],[3,4]]. A trailing ';' is tolerated.

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ctxParse     = "ParseDense"
	rowSeparator = ";"
)

// ParseDense parses the semicolon/whitespace text form into a *Dense.
// Implementation:
//   - Stage 1: split on ';', dropping blank trailing segments.
//   - Stage 2: split each row on whitespace; parse every field as float64.
//   - Stage 3: delegate shape and finiteness checks to NewFromRows.
//
// Errors:
//   - ErrEmptyInput (blank text), ErrParse (non-numeric entry),
//     ErrRaggedRows (rows of different length), ErrNaNInf ("NaN", "Inf").
func ParseDense(text string) (*Dense, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: %w", ctxParse, ErrEmptyInput)
	}

	segments := strings.Split(text, rowSeparator)
	rows := make([][]float64, 0, len(segments))
	var (
		fields []string
		row    []float64
		v      float64
		err    error
	)
	for i, seg := range segments {
		fields = strings.Fields(seg)
		if len(fields) == 0 {
			if i == len(segments)-1 && i > 0 {
				continue // trailing separator
			}
			return nil, fmt.Errorf("%s: row %d: %w", ctxParse, i, ErrEmptyInput)
		}
		row = make([]float64, len(fields))
		for j, f := range fields {
			if v, err = strconv.ParseFloat(f, 64); err != nil {
				return nil, fmt.Errorf("%s: row %d entry %q: %w", ctxParse, i, f, ErrParse)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	m, err := NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxParse, err)
	}

	return m, nil
}

// FormatDense renders m back into the text form accepted by ParseDense.
func FormatDense(m *Dense) string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		for j = 0; j < m.c; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
	}

	return b.String()
}
