// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/google/uuid"

	"dome.express/dispatch/middleware"
)

// Login exchanges the console passcode for a JWT and stashes the
// operator's upstream API token for outbound calls. The real credential
// check (OTP and friends) lives upstream; this only gates the console.
func Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Phone         string `json:"phone"`
		Passcode      string `json:"passcode"`
		UpstreamToken string `json:"upstreamToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	expected := os.Getenv("CONSOLE_PASSCODE")
	if expected == "" || req.Passcode != expected {
		http.Error(w, "invalid passcode", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(uuid.NewString(), req.Name, req.Phone)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	tokens.Set(req.UpstreamToken)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"name":  req.Name,
	})
}

// Logout tears the session store down.
func Logout(w http.ResponseWriter, r *http.Request) {
	tokens.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "logged out",
	})
}
