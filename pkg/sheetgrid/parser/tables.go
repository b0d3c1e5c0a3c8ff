package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/xuri/excelize/v2"
)

// DataArea finds the bounding box of non-empty cells.
// The returned area is 1-based; ok is false when every cell is empty.
func DataArea(rows [][]string) (area models.Area, ok bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return models.Area{}, false
	}
	return models.Area{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// AreaRef renders an area in A1:D10 notation.
func AreaRef(area models.Area) string {
	startCell, _ := excelize.CoordinatesToCellName(area.C1, area.R1)
	endCell, _ := excelize.CoordinatesToCellName(area.C2, area.R2)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// cellAt returns the text at 1-based (col, row), or "" when the row is
// shorter than col.
func cellAt(rows [][]string, col, row int) string {
	if row-1 >= len(rows) {
		return ""
	}
	r := rows[row-1]
	if col-1 >= len(r) {
		return ""
	}
	return r[col-1]
}

// NormalizeHeaders trims header text, names blank headers "Unnamed: <i>" after
// their 0-based position, and suffixes repeated names with .1, .2, ...
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	counts := make(map[string]int)
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}
