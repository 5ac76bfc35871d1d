package utils

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"dome.express/dispatch/models"
)

func intPtr(v int) *int { return &v }

func pickupContext() models.PickupContext {
	return models.PickupContext{
		ShipperID:     "791234",
		PickupDate:    models.JSONTime(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)),
		PickupName:    "Brownsley Br Nyar Shop",
		PickupPhone:   "09788889337",
		PickupAddress: "115-70B",
		PickupCityID:  intPtr(1),
	}
}

func TestFormatSubmission(t *testing.T) {
	drafts := []models.DraftOrder{
		{CusName: "Jane", CusPhone: "09123456", CusAddress: "addr", COD: 5000, Delivery: true, CityID: intPtr(5)},
		{CusName: "Moe", CusPhone: "09654321", COD: 0, Note: "fragile", CityID: intPtr(2)},
	}

	payload := FormatSubmission(pickupContext(), drafts)

	if payload.ShipperID != "791234" {
		t.Errorf("ShipperID = %q", payload.ShipperID)
	}
	if payload.PickupDate != "2025-09-01T10:00:00Z" {
		t.Errorf("PickupDate = %q, expected canonical RFC3339", payload.PickupDate)
	}
	if payload.PickupCityID != 1 {
		t.Errorf("PickupCityID = %d", payload.PickupCityID)
	}
	if len(payload.Orders) != 2 {
		t.Fatalf("payload has %d orders, expected 2", len(payload.Orders))
	}
	if payload.Orders[0].CityID != 5 || payload.Orders[1].CityID != 2 {
		t.Errorf("city ids not carried over: %d, %d", payload.Orders[0].CityID, payload.Orders[1].CityID)
	}
	if payload.Orders[1].Note != "fragile" {
		t.Errorf("Note = %q", payload.Orders[1].Note)
	}
}

func TestFormatSubmissionIsPure(t *testing.T) {
	drafts := []models.DraftOrder{
		{CusName: "Jane", CusPhone: "09123456", COD: 5000, CityID: intPtr(5)},
	}
	a := FormatSubmission(pickupContext(), drafts)
	b := FormatSubmission(pickupContext(), drafts)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different payloads")
	}
}

func TestFormatSubmissionDefaults(t *testing.T) {
	pickup := models.PickupContext{ShipperID: "791234"}
	drafts := []models.DraftOrder{{CusName: "Jane", CusPhone: "09123456"}}

	payload := FormatSubmission(pickup, drafts)

	if payload.PickupDate != DefaultPickupDate {
		t.Errorf("PickupDate = %q, expected the named fallback", payload.PickupDate)
	}
	if payload.PickupAddress != DefaultPickupAddress {
		t.Errorf("PickupAddress = %q", payload.PickupAddress)
	}
	if payload.PickupCityID != DefaultPickupCityID {
		t.Errorf("PickupCityID = %d", payload.PickupCityID)
	}
	if payload.Orders[0].CityID != DefaultOrderCityID {
		t.Errorf("order CityID = %d, expected the named fallback", payload.Orders[0].CityID)
	}
}

func TestPayloadWireTypes(t *testing.T) {
	// Regardless of how the phone entered the system, the wire payload
	// carries it as a string and COD as a number.
	var draft models.DraftOrder
	if err := json.Unmarshal([]byte(`{"cusName":"Jane","cusPhone":9123456,"cod":5000,"cityId":5}`), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}

	payload := FormatSubmission(pickupContext(), []models.DraftOrder{draft})
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	if !strings.Contains(string(raw), `"cusPhone":"9123456"`) {
		t.Errorf("phone not string-typed on the wire: %s", raw)
	}
	if !strings.Contains(string(raw), `"cod":5000`) {
		t.Errorf("cod not numeric on the wire: %s", raw)
	}
}

func TestValidateForSubmission(t *testing.T) {
	good := []models.DraftOrder{{CusName: "Jane", CusPhone: "0912", CityID: intPtr(5)}}
	pickup := pickupContext()

	tests := []struct {
		name   string
		pickup *models.PickupContext
		drafts []models.DraftOrder
		ok     bool
	}{
		{"valid", &pickup, good, true},
		{"nil pickup", nil, good, false},
		{"no shipper", &models.PickupContext{}, good, false},
		{"empty batch", &pickup, nil, false},
		{"order missing phone", &pickup, []models.DraftOrder{{CusName: "Jane", CityID: intPtr(5)}}, false},
		{"order missing city", &pickup, []models.DraftOrder{{CusName: "Jane", CusPhone: "0912"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForSubmission(tt.pickup, tt.drafts)
			if tt.ok && err != nil {
				t.Errorf("ValidateForSubmission() = %v, expected nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("ValidateForSubmission() accepted an invalid submission")
			}
		})
	}
}

func TestNormalizeDelivery(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"Yes", true},
		{" yes ", true},
		{"no", false},
		{"false", false},
		{"", false},
		{"1", true},
		{"0", false},
		{"anything else", false},
	}
	for _, tt := range tests {
		if got := NormalizeDelivery(tt.in); got != tt.want {
			t.Errorf("NormalizeDelivery(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceCOD(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{"1234.5", 1234.5},
		{" 300 ", 300},
		{"", 0},
		{"abc", 0},
		{"-50", 0},
	}
	for _, tt := range tests {
		if got := CoerceCOD(tt.in); got != tt.want {
			t.Errorf("CoerceCOD(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceCityID(t *testing.T) {
	if got := CoerceCityID("5"); got == nil || *got != 5 {
		t.Errorf("CoerceCityID(\"5\") = %v", got)
	}
	for _, in := range []string{"", "abc", "0", "4.5"} {
		if got := CoerceCityID(in); got != nil {
			t.Errorf("CoerceCityID(%q) = %d, expected nil", in, *got)
		}
	}
}

func TestSplitTrackingIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A1, A2 A3", []string{"A1", "A2", "A3"}},
		{"A1", []string{"A1"}},
		{"", []string{}},
		{"  ,  , ", []string{}},
		{"A1,A2,\nA3", []string{"A1", "A2", "A3"}},
	}
	for _, tt := range tests {
		got := SplitTrackingIDs(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTrackingIDs(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
