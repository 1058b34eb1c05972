package parser

import "strings"

// lastNonBlankRow returns the 1-based number of the last row below headerIdx whose cell
// in column colIdx (0-based) is not blank. It returns headerIdx+1 when there is none.
func lastNonBlankRow(rows [][]string, headerIdx, colIdx int) int {
	last := headerIdx + 1
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if colIdx < len(row) && strings.TrimSpace(row[colIdx]) != "" {
			last = rowIdx + 1
		}
	}
	return last
}

// matchingRows returns the 1-based numbers of rows below headerIdx whose normalized cell
// in column colIdx equals value.
func matchingRows(rows [][]string, headerIdx, colIdx int, value string) []int {
	var out []int
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if colIdx < len(row) && NormalizeHeader(row[colIdx]) == value {
			out = append(out, rowIdx+1)
		}
	}
	return out
}
