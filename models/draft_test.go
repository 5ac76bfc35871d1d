package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	valid := DraftOrder{CusName: "Jane", CusPhone: "09123456", CityID: intPtr(5)}

	tests := []struct {
		name   string
		mutate func(*DraftOrder)
		ok     bool
	}{
		{"complete draft", func(d *DraftOrder) {}, true},
		{"missing name", func(d *DraftOrder) { d.CusName = "" }, false},
		{"missing phone", func(d *DraftOrder) { d.CusPhone = "" }, false},
		{"missing city", func(d *DraftOrder) { d.CityID = nil }, false},
		{"negative cod", func(d *DraftOrder) { d.COD = -100 }, false},
		{"zero cod is fine", func(d *DraftOrder) { d.COD = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.ok {
				if err == nil {
					t.Error("Validate() accepted an invalid draft")
				} else if !errors.Is(err, ErrValidation) {
					t.Errorf("error %v is not a validation error", err)
				}
			}
		})
	}
}

func TestApplyStateChange(t *testing.T) {
	cities := testCities()

	// Buffalo selected under NY, then the state flips to CA: the stale
	// city is cleared in the same step.
	d := DraftOrder{StateID: "NY", CityID: intPtr(5)}
	d.ApplyStateChange("CA", cities)
	if d.StateID != "CA" {
		t.Errorf("StateID = %q, expected CA", d.StateID)
	}
	if d.CityID != nil {
		t.Errorf("CityID = %v, expected nil after the state switch", *d.CityID)
	}

	// A city that does belong to the new state survives.
	d = DraftOrder{StateID: "NY", CityID: intPtr(5)}
	d.ApplyStateChange("NY", cities)
	if d.CityID == nil || *d.CityID != 5 {
		t.Error("city of the same state should survive a no-op state change")
	}

	// Clearing the state clears the city too.
	d.ApplyStateChange("", cities)
	if d.CityID != nil {
		t.Error("CityID should be nil once no state is selected")
	}
}

func TestPageDrafts(t *testing.T) {
	drafts := make([]DraftOrder, 23)
	for i := range drafts {
		drafts[i] = DraftOrder{Position: i, CusName: fmt.Sprintf("customer-%d", i)}
	}

	tests := []struct {
		page      int
		wantLen   int
		wantFirst int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 3, 20},
		{4, 0, 0},
		{0, 10, 0}, // clamped to page 1
	}

	for _, tt := range tests {
		got := PageDrafts(drafts, tt.page)
		if len(got) != tt.wantLen {
			t.Errorf("PageDrafts(page=%d) returned %d drafts, expected %d", tt.page, len(got), tt.wantLen)
			continue
		}
		if tt.wantLen > 0 && got[0].Position != tt.wantFirst {
			t.Errorf("PageDrafts(page=%d)[0].Position = %d, expected %d", tt.page, got[0].Position, tt.wantFirst)
		}
	}

	// A record's absolute position is independent of the page it shows
	// on: index 12 sits on page 2 and still reads as position 12.
	page2 := PageDrafts(drafts, 2)
	if page2[2].Position != 12 {
		t.Errorf("page 2, row 3 has position %d, expected 12", page2[2].Position)
	}

	if TotalPages(0) != 1 || TotalPages(10) != 1 || TotalPages(11) != 2 || TotalPages(23) != 3 {
		t.Errorf("TotalPages math is off: %d %d %d %d",
			TotalPages(0), TotalPages(10), TotalPages(11), TotalPages(23))
	}
}
