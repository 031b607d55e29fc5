package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes rows to a single-sheet workbook, header labels first.
// Unlike the legacy CSV layout, cells here carry their plain values.
func ExportXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if len(rows) > 0 {
		for i, cell := range rows[0] {
			name, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, name, HeaderLabel(cell.Key)); err != nil {
				return nil, err
			}
		}

		for ri, row := range rows {
			for ci, cell := range row {
				name, err := excelize.CoordinatesToCellName(ci+1, ri+2)
				if err != nil {
					return nil, err
				}
				value := cell.Value
				if cell.Key == "record" {
					if id, ok := recordOID(value); ok {
						value = id
					}
				}
				if err := f.SetCellValue(sheet, name, fmt.Sprintf("%v", value)); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
