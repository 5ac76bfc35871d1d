package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"dome.express/dispatch/models"
	"dome.express/dispatch/utils"
)

// ParseError covers unreadable or empty import files. The batch is never
// left half-populated after one: the import handler clears file-mode
// drafts before reporting it.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "error parsing file: " + e.Reason
}

// The columns an import file may carry. Header matching is
// case-insensitive on the trimmed label; anything else is ignored.
var expectedFields = []string{
	"cusName",
	"cusPhone",
	"cusAddress",
	"cod",
	"delivery",
	"note",
	"cityId",
}

// ParseSpreadsheet reads a tabular upload into raw rows. The format is
// chosen by file extension: .csv through encoding/csv, .xlsx and .xls
// through excelize (first sheet only).
func ParseSpreadsheet(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err := csv.NewReader(r).ReadAll()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		return records, nil
	case ".xlsx", ".xls":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ParseError{Reason: "workbook has no sheets"}
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		return rows, nil
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported file type %q", filepath.Ext(filename))}
	}
}

// MapRows turns raw spreadsheet rows into draft orders. The first row is
// the header; each data cell is assigned to the expected field whose name
// matches the header label case-insensitively. Expected fields absent from
// the header stay zero for every row. Fewer than two rows is a ParseError.
func MapRows(rows [][]string) ([]models.DraftOrder, error) {
	if len(rows) < 2 {
		return nil, &ParseError{Reason: "file contains no data rows"}
	}

	// column index -> canonical field name
	columns := map[int]string{}
	for i, header := range rows[0] {
		label := strings.TrimSpace(header)
		for _, field := range expectedFields {
			if strings.EqualFold(label, field) {
				columns[i] = field
				break
			}
		}
	}

	drafts := make([]models.DraftOrder, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := map[string]string{}
		for i, value := range row {
			if field, ok := columns[i]; ok {
				cells[field] = value
			}
		}

		draft := models.DraftOrder{
			Source:     models.ModeFile,
			CusName:    strings.TrimSpace(cells["cusName"]),
			CusPhone:   models.Phone(strings.TrimSpace(cells["cusPhone"])),
			CusAddress: strings.TrimSpace(cells["cusAddress"]),
			COD:        utils.CoerceCOD(cells["cod"]),
			Delivery:   utils.NormalizeDelivery(cells["delivery"]),
			Note:       strings.TrimSpace(cells["note"]),
			CityID:     utils.CoerceCityID(cells["cityId"]),
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}
