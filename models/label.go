package models

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Fixed label literals. The contact phone is the carrier hotline printed
// on every AWB footer.
const (
	LabelContactPhone = "+959788889337"
	labelPlaceholder  = "---"
	feeUnavailable    = "N/A"

	barcodeEndpoint = "https://barcode.tec-it.com/barcode.ashx"
	qrEndpoint      = "https://api.qrserver.com/v1/create-qr-code/"
)

// Label is the pure projection printed as one 105x148 mm AWB. It is
// derived fresh from a PersistedOrder and an optional ParcelMeasurement
// for every print; nothing here is persisted.
type Label struct {
	TrackingID string `json:"trackingId"`
	BarcodeURL string `json:"barcodeUrl"`
	QRCodeURL  string `json:"qrCodeUrl"`

	SenderName      string `json:"senderName"`
	SenderPhone     string `json:"senderPhone"`
	SenderAddress   string `json:"senderAddress"`
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`

	DeliveryFee string `json:"deliveryFee"`
	COD         string `json:"cod"`
	TotalCOD    string `json:"totalCod"`
	Kg          string `json:"kg"`
	Cm          string `json:"cm"`

	ContactPhone string `json:"contactPhone"`
	CreatedDate  string `json:"createdDate"`
}

// BuildLabel projects one order, plus its measurement when available, into
// the printable label fields. A nil measurement degrades kg/cm to
// placeholders; it never fails the label.
func BuildLabel(order PersistedOrder, m *ParcelMeasurement) Label {
	l := Label{
		TrackingID:    order.TrackingID,
		BarcodeURL:    barcodeURL(order.TrackingID),
		QRCodeURL:     qrURL(order.TrackingID),
		SenderName:    order.PickupName,
		SenderPhone:   order.PickupPhone,
		ReceiverName:  order.CusName,
		ReceiverPhone: string(order.CusPhone),
		DeliveryFee:   deliveryFeeText(order),
		COD:           FormatAmount(order.COD),
		TotalCOD:      FormatAmount(order.TotalCOD),
		Kg:            labelPlaceholder,
		Cm:            labelPlaceholder,
		ContactPhone:  LabelContactPhone,
		CreatedDate:   order.CreatedAt.Format("2006-01-02"),
	}

	l.SenderAddress = joinAddress(order.PickupAddress, cityName(order.PickupCity))
	l.ReceiverAddress = joinAddress(order.CusAddress, cityName(order.DestinationCity))

	// Weight and size degrade independently; a measurement row with only
	// one of them filled still shows the other.
	if m != nil {
		if m.Kg > 0 {
			l.Kg = trimFloat(m.Kg)
		}
		if m.Cm > 0 {
			l.Cm = trimFloat(m.Cm)
		}
	}
	return l
}

func deliveryFeeText(order PersistedOrder) string {
	if order.DeliveryFee != nil {
		return FormatAmount(*order.DeliveryFee)
	}
	if order.DestinationCity != nil && order.DestinationCity.Fee != nil {
		return FormatAmount(*order.DestinationCity.Fee)
	}
	return feeUnavailable
}

func cityName(c *City) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func joinAddress(address, city string) string {
	switch {
	case address == "":
		return city
	case city == "":
		return address
	default:
		return address + ", " + city
	}
}

// FormatAmount renders a currency amount with thousands grouping, the way
// the printed label shows COD figures ("1,018,500"). Fractional parts are
// kept only when present.
func FormatAmount(v float64) string {
	neg := v < 0
	abs := math.Abs(v)
	intPart := int64(abs)
	frac := abs - float64(intPart)

	digits := strconv.FormatInt(intPart, 10)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String()
	if frac > 1e-9 {
		fracStr := strconv.FormatFloat(frac, 'f', 2, 64)
		out += fracStr[1:] // drop the leading "0"
	}
	if neg {
		out = "-" + out
	}
	return out
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func barcodeURL(trackingID string) string {
	return fmt.Sprintf("%s?data=%s&code=Code128&translate-esc=false", barcodeEndpoint, url.QueryEscape(trackingID))
}

func qrURL(trackingID string) string {
	return fmt.Sprintf("%s?data=%s&size=70x70", qrEndpoint, url.QueryEscape(trackingID))
}
