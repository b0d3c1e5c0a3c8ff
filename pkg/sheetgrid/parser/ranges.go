package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/xuri/excelize/v2"
)

// printAreaName is the defined name Excel uses for a sheet's print area.
const printAreaName = "_xlnm.Print_Area"

// ResolveArea turns a range reference into cell bounds on sheet.
// ref may be a range such as A1:D10 or 'Sheet 1'!$A$1:$D$10, the name of a
// defined name scoped to the sheet or the workbook, or "print_area" for the
// sheet's print area.
func ResolveArea(f *excelize.File, sheet, ref string) (models.Area, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Area{}, fmt.Errorf("empty range reference")
	}
	if strings.Contains(ref, ":") {
		refSheet, areas := parseAreaReference(ref)
		if refSheet != "" && refSheet != sheet {
			return models.Area{}, fmt.Errorf("range %q refers to sheet %q, not %q", ref, refSheet, sheet)
		}
		if len(areas) == 0 {
			return models.Area{}, fmt.Errorf("invalid range %q", ref)
		}
		return areas[0], nil
	}

	name := ref
	if strings.EqualFold(name, "print_area") {
		name = printAreaName
	}
	var workbookScoped *excelize.DefinedName
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) {
			continue
		}
		if dn.Scope == sheet {
			return definedNameArea(dn, sheet)
		}
		if dn.Scope == "" || dn.Scope == "Workbook" {
			dn := dn
			workbookScoped = &dn
		}
	}
	if workbookScoped != nil {
		return definedNameArea(*workbookScoped, sheet)
	}
	return models.Area{}, fmt.Errorf("defined name %q not found", ref)
}

func definedNameArea(dn excelize.DefinedName, sheet string) (models.Area, error) {
	refSheet, areas := parseAreaReference(dn.RefersTo)
	if len(areas) == 0 {
		return models.Area{}, fmt.Errorf("defined name %q does not refer to a range", dn.Name)
	}
	if refSheet != "" && refSheet != sheet {
		return models.Area{}, fmt.Errorf("defined name %q refers to sheet %q, not %q", dn.Name, refSheet, sheet)
	}
	return areas[0], nil
}

// parseAreaReference parses a range reference string.
// Format: 'SheetName'!$A$1:$D$10, SheetName!$A$1:$D$10 or A1:D10, with
// several ranges separated by commas.
func parseAreaReference(ref string) (string, []models.Area) {
	var areas []models.Area

	// Split by comma for multiple ranges
	parts := strings.Split(ref, ",")

	var sheetName string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangeStr := part
		// Split by ! to separate sheet name and range
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			sheet = strings.ReplaceAll(sheet, "''", "'")
			rangeStr = part[idx+1:]
			if sheetName == "" {
				sheetName = sheet
			}
		}

		if area := parseRangeToArea(rangeStr); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to an Area.
func parseRangeToArea(rangeStr string) *models.Area {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
