package models

// Shipper is the merchant record returned by the upstream shipper lookup.
// Once selected for a pickup session it is immutable for the session's
// lifetime.
type Shipper struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CityName  string `json:"cityName"`
	StateName string `json:"stateName"`
}
