package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionStatus is the pickup session's position in the order-creation
// workflow. Transitions only move forward; "locked" is terminal.
type SessionStatus string

const (
	StatusAwaitingShipper SessionStatus = "awaiting_shipper"
	StatusAwaitingDate    SessionStatus = "awaiting_date"
	StatusAwaitingFields  SessionStatus = "awaiting_fields"
	StatusLocked          SessionStatus = "locked"
)

// InputMode selects how draft orders enter the batch. The two modes are
// mutually exclusive entry paths for one submission; switching clears the
// other mode's drafts.
type InputMode string

const (
	ModeManual InputMode = "manual"
	ModeFile   InputMode = "file"
)

// PickupSession is one operator's order-creation workflow. It carries the
// confirmed shipper, the pickup facts collected step by step, and the draft
// batch via DraftOrder rows keyed on SessionID.
type PickupSession struct {
	ID     uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Status SessionStatus `gorm:"column:status;not null;default:awaiting_shipper" json:"status"`
	Mode   InputMode     `gorm:"column:mode;not null;default:manual" json:"mode"`

	// Candidate shipper from the last resolve; promoted on select.
	ShipperSnapshot datatypes.JSON `gorm:"column:shipper_snapshot;type:jsonb" json:"shipperSnapshot,omitempty"`

	ShipperID     string    `gorm:"column:shipper_id" json:"shipperId,omitempty"`
	PickupDate    *JSONTime `gorm:"column:pickup_date" json:"pickupDate,omitempty"`
	PickupName    string    `gorm:"column:pickup_name" json:"pickupName,omitempty"`
	PickupPhone   string    `gorm:"column:pickup_phone" json:"pickupPhone,omitempty"`
	PickupAddress string    `gorm:"column:pickup_address" json:"pickupAddress,omitempty"`
	PickupStateID string    `gorm:"column:pickup_state_id" json:"pickupStateId,omitempty"`
	PickupCityID  *int      `gorm:"column:pickup_city_id" json:"pickupCityId,omitempty"`

	// Absolute index of the draft currently being edited, nil when no edit
	// is in progress.
	EditingIndex *int `gorm:"column:editing_index" json:"editingIndex,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PickupContext is the locked, immutable set of shipper/date/address facts
// that apply to every order of the batch. It is emitted once, when the
// session reaches "locked".
type PickupContext struct {
	ShipperID     string   `json:"shipperId"`
	PickupDate    JSONTime `json:"pickupDate"`
	PickupName    string   `json:"pickUpName"`
	PickupPhone   string   `json:"pickUpPhone"`
	PickupAddress string   `json:"pickUpAddress"`
	PickupCityID  *int     `json:"pickUpCityId"`
}

// ErrValidation marks client-side validation failures: the action is
// blocked, state is preserved, and the message is safe to show inline.
var ErrValidation = errors.New("validation")

// ValidationError wraps a human-readable message in ErrValidation.
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// SelectShipper commits the resolved shipper and advances the session to
// date selection. Selection is irreversible within the session.
func (s *PickupSession) SelectShipper(shipper Shipper) error {
	if s.Status != StatusAwaitingShipper {
		return ValidationError("shipper already selected for this session")
	}
	if shipper.ID == "" {
		return ValidationError("shipper id must not be empty")
	}
	s.ShipperID = shipper.ID
	s.PickupName = shipper.Name
	s.PickupPhone = shipper.Phone
	s.Status = StatusAwaitingDate
	return nil
}

// SetPickupDate advances the session to field entry. The date must be
// tomorrow or later relative to now; today and anything earlier is
// rejected without a transition.
func (s *PickupSession) SetPickupDate(date time.Time, now time.Time) error {
	if s.Status != StatusAwaitingDate {
		return ValidationError("session is not awaiting a pickup date")
	}
	tomorrow := now.AddDate(0, 0, 1)
	startOfTomorrow := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(startOfTomorrow) {
		return ValidationError("pickup date must be tomorrow or later")
	}
	jt := JSONTime(date)
	s.PickupDate = &jt
	s.Status = StatusAwaitingFields
	return nil
}

// Lock finalizes the pickup fields and makes the session read-only. Name,
// phone, state and city are all required. On success the emitted
// PickupContext never changes again.
func (s *PickupSession) Lock(name, phone, address, stateID string, cityID *int) (*PickupContext, error) {
	if s.Status == StatusLocked {
		return nil, ValidationError("session is already locked")
	}
	if s.Status != StatusAwaitingFields {
		return nil, ValidationError("select a shipper and pickup date first")
	}
	if name == "" || phone == "" || stateID == "" || cityID == nil {
		return nil, ValidationError("pickup name, phone, state and city are required")
	}
	s.PickupName = name
	s.PickupPhone = phone
	s.PickupAddress = address
	s.PickupStateID = stateID
	s.PickupCityID = cityID
	s.Status = StatusLocked
	return s.Context(), nil
}

// Context returns the session's pickup facts as an immutable value. Only
// meaningful once the session is locked.
func (s *PickupSession) Context() *PickupContext {
	ctx := &PickupContext{
		ShipperID:     s.ShipperID,
		PickupName:    s.PickupName,
		PickupPhone:   s.PickupPhone,
		PickupAddress: s.PickupAddress,
		PickupCityID:  s.PickupCityID,
	}
	if s.PickupDate != nil {
		ctx.PickupDate = *s.PickupDate
	}
	return ctx
}

// SwitchMode flips between manual and file entry. The caller is expected
// to drop the session's drafts alongside; switching is destructive since
// the two modes are exclusive paths to one submission. Returns true when
// the mode actually changed.
func (s *PickupSession) SwitchMode(mode InputMode) (bool, error) {
	if mode != ModeManual && mode != ModeFile {
		return false, ValidationError("unknown input mode %q", mode)
	}
	if s.Mode == mode {
		return false, nil
	}
	s.Mode = mode
	s.EditingIndex = nil
	return true, nil
}
