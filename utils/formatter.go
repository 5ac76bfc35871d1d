package utils

import (
	"strconv"
	"strings"
	"time"

	"dome.express/dispatch/models"
)

// Fallback values the legacy console baked into its formatter. They are
// kept as named constants instead of inline magic values and are still
// awaiting product confirmation; see DESIGN.md.
const (
	DefaultPickupDate    = "2024-08-15T10:00:00Z"
	DefaultPickupAddress = "Common PickUp Address, Yangon"
	DefaultPickupPhone   = "09987654321"
	DefaultPickupName    = "Common Shipper Name"
	DefaultPickupCityID  = 4
	DefaultOrderCityID   = 1
)

// ValidateForSubmission is the pre-network gate for a submit action. The
// pickup context must be complete and every draft must carry the
// upstream-mandatory fields; any violation rejects the submit before a
// request goes out.
func ValidateForSubmission(pickup *models.PickupContext, drafts []models.DraftOrder) error {
	if pickup == nil || pickup.ShipperID == "" {
		return models.ValidationError("a shipper must be selected before submitting")
	}
	if pickup.PickupDate.IsZero() {
		return models.ValidationError("a pickup date must be chosen before submitting")
	}
	if len(drafts) == 0 {
		return models.ValidationError("the batch has no orders to submit")
	}
	for i, d := range drafts {
		if d.CusName == "" || d.CusPhone == "" || d.CityID == nil {
			return models.ValidationError("order %d is missing a required field (name, phone or city)", i+1)
		}
	}
	return nil
}

// FormatSubmission merges the locked pickup context and the draft batch
// into the exact payload /order/upload expects. Pure function: same inputs
// always produce the same payload, and nothing here touches the network.
func FormatSubmission(pickup models.PickupContext, drafts []models.DraftOrder) models.SubmissionPayload {
	payload := models.SubmissionPayload{
		ShipperID:     pickup.ShipperID,
		PickupAddress: fallback(pickup.PickupAddress, DefaultPickupAddress),
		PickupDate:    formatPickupDate(pickup.PickupDate),
		PickupPhone:   fallback(pickup.PickupPhone, DefaultPickupPhone),
		PickupName:    fallback(pickup.PickupName, DefaultPickupName),
		PickupCityID:  DefaultPickupCityID,
		Orders:        make([]models.SubmissionOrder, 0, len(drafts)),
	}
	if pickup.PickupCityID != nil {
		payload.PickupCityID = *pickup.PickupCityID
	}

	for _, d := range drafts {
		order := models.SubmissionOrder{
			CusName:    d.CusName,
			CusPhone:   d.CusPhone,
			CusAddress: d.CusAddress,
			COD:        d.COD,
			Delivery:   d.Delivery,
			Note:       d.Note,
			CityID:     DefaultOrderCityID,
		}
		if d.CityID != nil {
			order.CityID = *d.CityID
		}
		payload.Orders = append(payload.Orders, order)
	}
	return payload
}

func formatPickupDate(date models.JSONTime) string {
	if date.IsZero() {
		return DefaultPickupDate
	}
	return date.Time().UTC().Format(time.RFC3339)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// NormalizeDelivery maps the spreadsheet variants of the delivery flag.
// The strings "true" and "yes" (any case) mean true; other text means
// false, except numeric cells, which are truthy when non-zero.
func NormalizeDelivery(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "true", "yes":
		return true
	case "":
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n != 0
	}
	return false
}

// CoerceCOD parses a COD cell into a non-negative amount, defaulting to 0
// when the cell is empty or unparseable.
func CoerceCOD(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// CoerceCityID parses a city id cell, nil when empty or unparseable. A
// zero id is treated as absent, matching the legacy import.
func CoerceCityID(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

// SplitTrackingIDs breaks the search box's free-form tracking-id input on
// commas and whitespace, dropping empties: "A1, A2 A3" -> [A1 A2 A3].
func SplitTrackingIDs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
