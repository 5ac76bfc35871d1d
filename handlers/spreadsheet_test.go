package handlers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"dome.express/dispatch/models"
)

func TestMapRows(t *testing.T) {
	rows := [][]string{
		{"cusName", "cusPhone", "cod", "delivery"},
		{"Jane", "09123456", "5000", "yes"},
	}

	drafts, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, expected 1", len(drafts))
	}

	d := drafts[0]
	if d.CusName != "Jane" {
		t.Errorf("CusName = %q", d.CusName)
	}
	if d.CusPhone != "09123456" {
		t.Errorf("CusPhone = %q", d.CusPhone)
	}
	if d.COD != 5000 {
		t.Errorf("COD = %v", d.COD)
	}
	if !d.Delivery {
		t.Error("Delivery should normalize to true for \"yes\"")
	}
	if d.CityID != nil {
		t.Errorf("CityID = %v, expected nil when the column is absent", *d.CityID)
	}
	if d.Source != models.ModeFile {
		t.Errorf("Source = %q", d.Source)
	}
}

func TestMapRowsHeaderHandling(t *testing.T) {
	rows := [][]string{
		// Case-insensitive and trimmed header labels; unknown columns
		// are ignored.
		{" CUSNAME ", "cusphone", "CityId", "whatever", "COD"},
		{"Moe", "09777", "4", "ignored", "1200"},
		{"Lin", "09888", "", "ignored", ""},
	}

	drafts, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, expected 2", len(drafts))
	}
	if drafts[0].CusName != "Moe" || drafts[0].CusPhone != "09777" {
		t.Errorf("header matching failed: %+v", drafts[0])
	}
	if drafts[0].CityID == nil || *drafts[0].CityID != 4 {
		t.Errorf("CityID = %v, expected 4", drafts[0].CityID)
	}
	if drafts[0].COD != 1200 {
		t.Errorf("COD = %v", drafts[0].COD)
	}
	// Second row has empty optional cells.
	if drafts[1].CityID != nil || drafts[1].COD != 0 {
		t.Errorf("empty cells should default: %+v", drafts[1])
	}
}

func TestMapRowsTooShort(t *testing.T) {
	for _, rows := range [][][]string{
		{},
		{{"cusName", "cusPhone"}},
	} {
		_, err := MapRows(rows)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("MapRows(%d rows) = %v, expected ParseError", len(rows), err)
		}
	}
}

func TestParseSpreadsheetCSV(t *testing.T) {
	csv := "cusName,cusPhone,cod,delivery\nJane,09123456,5000,yes\n"
	rows, err := ParseSpreadsheet("orders.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseSpreadsheet: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Jane" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestParseSpreadsheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for col, v := range []string{"cusName", "cusPhone", "cod", "delivery"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, v)
	}
	for col, v := range []string{"Jane", "09123456", "5000", "yes"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		f.SetCellValue(sheet, cell, v)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := ParseSpreadsheet("orders.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseSpreadsheet: %v", err)
	}

	drafts, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows: %v", err)
	}
	if len(drafts) != 1 || drafts[0].CusName != "Jane" || drafts[0].COD != 5000 {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}
}

func TestParseSpreadsheetUnsupported(t *testing.T) {
	_, err := ParseSpreadsheet("orders.pdf", strings.NewReader("x"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError for unsupported extension, got %v", err)
	}
}
