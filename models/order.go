package models

import (
	"encoding/json"
	"time"
)

// Phone always marshals as a JSON string but decodes from either a string
// or a bare number, guarding against numeric-typed spreadsheet cells that
// travel through JSON.
type Phone string

func (p *Phone) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Phone(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Phone(n.String())
	return nil
}

// SubmissionOrder is one normalized destination order inside a
// SubmissionPayload. CusPhone is always a string on the wire even when the
// source was a numeric spreadsheet cell.
type SubmissionOrder struct {
	CusName    string  `json:"cusName"`
	CusPhone   Phone   `json:"cusPhone"`
	CusAddress string  `json:"cusAddress"`
	COD        float64 `json:"cod"`
	Delivery   bool    `json:"delivery"`
	Note       string  `json:"note"`
	CityID     int     `json:"cityId"`
}

// SubmissionPayload is the exact body POSTed to the upstream
// /order/upload endpoint. Constructed once per submit, never mutated.
type SubmissionPayload struct {
	ShipperID     string            `json:"shipperId"`
	PickupAddress string            `json:"pickUpAddress"`
	PickupDate    string            `json:"pickUpDate"`
	PickupPhone   string            `json:"pickUpPhone"`
	PickupName    string            `json:"pickUpName"`
	PickupCityID  int               `json:"pickUpCityId"`
	Orders        []SubmissionOrder `json:"orders"`
}

// PersistedOrder is an order as the upstream service returns it: server
// ids, denormalized shipper and city objects, computed fees. The console
// treats it as read-only.
type PersistedOrder struct {
	ID              int       `json:"id"`
	TrackingID      string    `json:"trackingId"`
	CusName         string    `json:"cusName"`
	CusPhone        Phone     `json:"cusPhone"`
	CusAddress      string    `json:"cusAddress"`
	COD             float64   `json:"cod"`
	DeliveryFee     *float64  `json:"deliveryFee,omitempty"`
	TotalCOD        float64   `json:"totalCod"`
	PickupName      string    `json:"pickUpName"`
	PickupPhone     string    `json:"pickUpPhone"`
	PickupAddress   string    `json:"pickUpAddress"`
	Shipper         *Shipper  `json:"Shipper,omitempty"`
	PickupCity      *City     `json:"pickUpCity,omitempty"`
	DestinationCity *City     `json:"destinationCity,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ParcelMeasurement is the weight/size/photo record captured at the
// warehouse, fetched independently of the order and matched by tracking
// id. A missing measurement is not an error anywhere in the console.
type ParcelMeasurement struct {
	TrackingID string   `json:"trackingId"`
	OrderID    int      `json:"OrderId,omitempty"`
	Kg         float64  `json:"kg"`
	Cm         float64  `json:"cm"`
	Images     []string `json:"Images"`
}

// OrderUpdate is the partial body accepted by the upstream
// /order/OrderUpdate/{trackingId} endpoint. Nil fields stay untouched
// upstream, so the console only forwards what the operator changed.
type OrderUpdate struct {
	CusName    *string  `json:"cusName,omitempty"`
	CusPhone   *string  `json:"cusPhone,omitempty"`
	CusAddress *string  `json:"cusAddress,omitempty"`
	COD        *float64 `json:"cod,omitempty"`
	Note       *string  `json:"note,omitempty"`
	CityID     *int     `json:"cityId,omitempty"`
}
