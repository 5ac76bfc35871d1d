// Package upstream is the typed HTTP client for the Dome logistics API.
// Order persistence, pricing, shipper and city directories, and parcel
// measurements all live behind this API; the console only reads and
// submits.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"dome.express/dispatch/models"
)

// NotFoundError is returned when the upstream service has no record for
// the requested identifier. Callers surface the message and allow retry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// ServiceError carries the upstream HTTP status and, when the service
// provided one, its own error message.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream service error (status %d)", e.Status)
}

// envelope is the {success, data, message} wrapper the API puts around
// every response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TokenSource yields the operator's upstream bearer token, empty when the
// call should go out unauthenticated.
type TokenSource func() string

// Client talks to the logistics API. The zero value is not usable; build
// one with New.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New returns a client for the given base URL. A nil token source sends
// unauthenticated requests. Requests are bounded so a dead upstream
// presents as an error instead of an indefinite hang.
func New(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
}

// NewFromEnv builds a client from UPSTREAM_API_URL.
func NewFromEnv(token TokenSource) *Client {
	return New(os.Getenv("UPSTREAM_API_URL"), token)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Status: resp.StatusCode, Message: err.Error()}
	}

	var env envelope
	if len(raw) > 0 {
		// Some endpoints answer bare JSON without the envelope; fall back
		// to treating the whole body as data.
		if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
			env = envelope{Success: resp.StatusCode < 300, Data: raw}
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: "record", ID: path}
	}
	if resp.StatusCode >= 300 || (len(raw) > 0 && !env.Success && env.Message != "") {
		return &ServiceError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &ServiceError{Status: resp.StatusCode, Message: "malformed upstream response: " + err.Error()}
		}
	}
	return nil
}

// GetStates fetches the state directory.
func (c *Client) GetStates(ctx context.Context) ([]models.State, error) {
	var states []models.State
	if err := c.do(ctx, http.MethodGet, "/order/state/get", nil, nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// GetCities fetches the full city directory.
func (c *Client) GetCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := c.do(ctx, http.MethodGet, "/order/city/get", nil, nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// GetShipper resolves one shipper by external id. A missing shipper comes
// back as *NotFoundError with a message fit for the operator.
func (c *Client) GetShipper(ctx context.Context, shipperID string) (*models.Shipper, error) {
	if shipperID == "" {
		return nil, models.ValidationError("please enter a shipper ID")
	}
	var shipper models.Shipper
	err := c.do(ctx, http.MethodGet, "/shipper/"+url.PathEscape(shipperID), nil, nil, &shipper)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Resource: "shipper", ID: shipperID}
		}
		return nil, err
	}
	if shipper.ID == "" {
		shipper.ID = shipperID
	}
	return &shipper, nil
}

// UploadOrders submits a finished batch. The payload must already satisfy
// the upstream required-field contract; the formatter guarantees that.
func (c *Client) UploadOrders(ctx context.Context, payload models.SubmissionPayload) error {
	return c.do(ctx, http.MethodPost, "/order/upload", nil, payload, nil)
}

// GetOrder fetches one persisted order by tracking id.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (*models.PersistedOrder, error) {
	var order models.PersistedOrder
	err := c.do(ctx, http.MethodGet, "/order/"+url.PathEscape(trackingID), nil, nil, &order)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Resource: "order", ID: trackingID}
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrder forwards a partial edit to the upstream order.
func (c *Client) UpdateOrder(ctx context.Context, trackingID string, update models.OrderUpdate) (*models.PersistedOrder, error) {
	var order models.PersistedOrder
	err := c.do(ctx, http.MethodPut, "/order/OrderUpdate/"+url.PathEscape(trackingID), nil, update, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SearchOrders queries persisted orders. Empty filters return the
// server-bounded recent list.
func (c *Client) SearchOrders(ctx context.Context, filters SearchFilters) ([]models.PersistedOrder, error) {
	var orders []models.PersistedOrder
	if err := c.do(ctx, http.MethodGet, "/order/search", filters.Values(), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetMeasurement fetches the parcel measurement recorded for a tracking
// id. Absence is normal; callers degrade to placeholders.
func (c *Client) GetMeasurement(ctx context.Context, trackingID string) (*models.ParcelMeasurement, error) {
	var m models.ParcelMeasurement
	err := c.do(ctx, http.MethodGet, "/oswm/"+url.PathEscape(trackingID), nil, nil, &m)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Resource: "measurement", ID: trackingID}
		}
		return nil, err
	}
	return &m, nil
}

// CreateMeasurement stores a captured weight/size/photo record upstream.
func (c *Client) CreateMeasurement(ctx context.Context, m models.ParcelMeasurement) error {
	return c.do(ctx, http.MethodPost, "/oswm", nil, m, nil)
}

// SearchFilters is the /order/search query set. Any combination may be
// set; all-empty means "recent orders".
type SearchFilters struct {
	ShipperID   string
	Name        string
	Phone       string
	TrackingIDs []string
	StartDate   string
	EndDate     string
}

// Empty reports whether no filter is set at all.
func (f SearchFilters) Empty() bool {
	return f.ShipperID == "" && f.Name == "" && f.Phone == "" &&
		len(f.TrackingIDs) == 0 && f.StartDate == "" && f.EndDate == ""
}

// Values encodes the filters as upstream query parameters. A single
// tracking id becomes the exact-match "trackingId" parameter; several
// become the batch-match "trackingIds" list.
func (f SearchFilters) Values() url.Values {
	v := url.Values{}
	if f.ShipperID != "" {
		v.Set("shipperId", f.ShipperID)
	}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Phone != "" {
		v.Set("phone", f.Phone)
	}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	switch len(f.TrackingIDs) {
	case 0:
	case 1:
		v.Set("trackingId", f.TrackingIDs[0])
	default:
		for _, id := range f.TrackingIDs {
			v.Add("trackingIds", id)
		}
	}
	return v
}
