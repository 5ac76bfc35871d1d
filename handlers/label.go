package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"dome.express/dispatch/models"
)

// labelTmpl is the fixed-geometry AWB document. One .awb block per label,
// sized 105x148 mm for on-screen preview and the platform print dialog;
// there is no separate print layout.
var labelTmpl = template.Must(template.New("awb").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AWB</title>
<style>
@page { size: 105mm 148mm; margin: 0; }
body { font-family: sans-serif; margin: 0; }
.awb { width: 105mm; height: 148mm; border: 1px solid #999; box-sizing: border-box;
       padding: 4mm; display: flex; flex-direction: column; justify-content: space-between;
       page-break-after: always; }
.awb .row { border-bottom: 1px solid #999; padding: 2mm 0; }
.awb .tracking { text-align: center; font-weight: 800; }
.awb .block b { display: inline-block; min-width: 18mm; }
.awb .figures { display: flex; justify-content: space-between; font-weight: 700; }
.awb .footer { display: flex; justify-content: space-between; font-weight: 700;
               font-size: 9px; padding-top: 2mm; }
</style>
</head>
<body>
{{range .}}
<div class="awb">
  <div class="row" style="text-align:center"><img src="{{.BarcodeURL}}" alt="Barcode" style="height:14mm"></div>
  <div class="row tracking">TRACKING ID : {{.TrackingID}}</div>
  <div class="row block">
    <div><b>Sender</b> {{.SenderName}}</div>
    <div><b>Phone</b> {{.SenderPhone}}</div>
    <div><b>Address</b> {{.SenderAddress}}</div>
  </div>
  <div class="row block">
    <div><b>Receiver</b> {{.ReceiverName}}</div>
    <div><b>Phone</b> {{.ReceiverPhone}}</div>
    <div><b>Address</b> {{.ReceiverAddress}}</div>
  </div>
  <div class="row figures">
    <span>Fee {{.DeliveryFee}}</span>
    <span>COD : {{.COD}}</span>
    <span>Total : {{.TotalCOD}}</span>
  </div>
  <div class="row figures">
    <span>KG {{.Kg}}</span>
    <span>CM {{.Cm}}</span>
    <img src="{{.QRCodeURL}}" alt="QR Code" style="height:18mm;width:18mm">
  </div>
  <div class="footer">
    <span>{{.ContactPhone}}</span>
    <span>Create at : {{.CreatedDate}}</span>
  </div>
</div>
{{end}}
</body>
</html>
`))

func buildLabelFor(r *http.Request, trackingID string) (models.Label, error) {
	order, err := api.GetOrder(r.Context(), trackingID)
	if err != nil {
		return models.Label{}, err
	}

	// Measurement is best-effort; a failed fetch means placeholders, not a
	// failed label.
	measurement, err := api.GetMeasurement(r.Context(), trackingID)
	if err != nil {
		measurement = nil
	}
	return models.BuildLabel(*order, measurement), nil
}

func renderLabels(w http.ResponseWriter, r *http.Request, labels []models.Label) {
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"labels": labels,
			"count":  len(labels),
		})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := labelTmpl.Execute(w, labels); err != nil {
		http.Error(w, "failed to render label", http.StatusInternalServerError)
	}
}

// GetLabel renders the printable AWB for one order.
func GetLabel(w http.ResponseWriter, r *http.Request) {
	trackingID := mux.Vars(r)["trackingId"]

	label, err := buildLabelFor(r, trackingID)
	if err != nil {
		respondError(w, err)
		return
	}
	renderLabels(w, r, []models.Label{label})
}

// PrintLabels renders one AWB per requested tracking id for a batch
// print. Fetches run concurrently, one goroutine per order; completions
// have no ordering guarantee, so results are written back by index to
// keep the output in request order. One failed order skips only its own
// label.
func PrintLabels(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingIDs []string `json:"trackingIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.TrackingIDs) == 0 {
		http.Error(w, "no tracking ids selected", http.StatusBadRequest)
		return
	}

	type slot struct {
		label models.Label
		err   error
	}
	slots := make([]slot, len(req.TrackingIDs))

	var wg sync.WaitGroup
	for i, id := range req.TrackingIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			label, err := buildLabelFor(r, id)
			slots[i] = slot{label: label, err: err}
		}(i, id)
	}
	wg.Wait()

	labels := make([]models.Label, 0, len(slots))
	skipped := make([]string, 0)
	for i, s := range slots {
		if s.err != nil {
			skipped = append(skipped, req.TrackingIDs[i])
			continue
		}
		labels = append(labels, s.label)
	}

	if len(labels) == 0 {
		http.Error(w, "none of the selected orders could be loaded", http.StatusBadGateway)
		return
	}
	if len(skipped) > 0 {
		w.Header().Set("X-Skipped-Orders", strings.Join(skipped, ","))
	}
	renderLabels(w, r, labels)
}
