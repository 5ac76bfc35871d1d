package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed page length of the manual-mode draft table.
const PageSize = 10

// DraftOrder is one not-yet-submitted destination order inside a pickup
// session's batch. Position is the absolute insertion index; edits and
// deletes address drafts by that index so paging never shifts targets.
type DraftOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null" json:"sessionId"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	Source    InputMode `gorm:"column:source;not null" json:"source"`

	CusName    string  `gorm:"column:cus_name;not null" json:"cusName"`
	CusPhone   Phone   `gorm:"column:cus_phone;not null" json:"cusPhone"`
	CusAddress string  `gorm:"column:cus_address" json:"cusAddress"`
	COD        float64 `gorm:"column:cod;not null;default:0" json:"cod"`
	Delivery   bool    `gorm:"column:delivery;not null;default:true" json:"delivery"`
	Note       string  `gorm:"column:note" json:"note"`
	StateID    string  `gorm:"column:state_id" json:"stateId,omitempty"`
	CityID     *int    `gorm:"column:city_id" json:"cityId,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Validate is the manual-mode save gate: customer name, phone and city are
// all required, and the COD amount may not be negative. Nothing is saved
// when it fails.
func (d *DraftOrder) Validate() error {
	if d.CusName == "" {
		return ValidationError("customer name is required")
	}
	if d.CusPhone == "" {
		return ValidationError("customer phone is required")
	}
	if d.CityID == nil {
		return ValidationError("destination city is required")
	}
	if d.COD < 0 {
		return ValidationError("cod amount must not be negative")
	}
	return nil
}

// ApplyStateChange moves the draft to a new destination state and, in the
// same step, clears any selected city that does not belong to the new
// state's city set. One atomic transition, never an observable
// state/city mismatch.
func (d *DraftOrder) ApplyStateChange(stateID string, cities []City) {
	d.StateID = stateID
	if stateID == "" {
		d.CityID = nil
		return
	}
	if d.CityID != nil && !CityInState(cities, stateID, *d.CityID) {
		d.CityID = nil
	}
}

// PageDrafts slices the full ordered batch into the requested 1-based page.
// Out-of-range pages yield an empty slice; drafts keep their absolute
// positions so the caller can address them regardless of the current page.
func PageDrafts(drafts []DraftOrder, page int) []DraftOrder {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(drafts) {
		return []DraftOrder{}
	}
	end := start + PageSize
	if end > len(drafts) {
		end = len(drafts)
	}
	return drafts[start:end]
}

// TotalPages returns the number of pages the batch occupies, at least 1.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}
