package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dome.express/dispatch/middleware"
	"dome.express/dispatch/models"
	"dome.express/dispatch/upstream"
)

var (
	api       *upstream.Client
	directory *upstream.Directory
	tokens    *middleware.TokenStore
)

// Init wires the handler package to the upstream client, the location
// cache and the operator token store. Called once from main.
func Init(client *upstream.Client, dir *upstream.Directory, store *middleware.TokenStore) {
	api = client
	directory = dir
	tokens = store
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the error taxonomy onto HTTP statuses: validation and
// parse failures are the client's to fix, upstream not-found is 404, and
// upstream service failures relay the server's message on 502.
func respondError(w http.ResponseWriter, err error) {
	var (
		nf *upstream.NotFoundError
		se *upstream.ServiceError
		pe *ParseError
	)
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &pe):
		http.Error(w, pe.Error(), http.StatusBadRequest)
	case errors.As(err, &nf):
		http.Error(w, nf.Error(), http.StatusNotFound)
	case errors.As(err, &se):
		msg := se.Message
		if msg == "" {
			msg = "upstream service request failed"
		}
		http.Error(w, msg, http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
