package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"dome.express/dispatch/config"
	"dome.express/dispatch/models"
)

func loadSession(r *http.Request) (*models.PickupSession, error) {
	id := mux.Vars(r)["id"]
	var session models.PickupSession
	if err := config.DB.First(&session, "id = ?", id).Error; err != nil {
		return nil, models.ValidationError("session %s not found", id)
	}
	return &session, nil
}

func loadDrafts(session *models.PickupSession) ([]models.DraftOrder, error) {
	var drafts []models.DraftOrder
	err := config.DB.
		Where("session_id = ?", session.ID).
		Order("position ASC").
		Find(&drafts).Error
	return drafts, err
}

// CreateSession opens a fresh pickup session in awaiting_shipper.
func CreateSession(w http.ResponseWriter, r *http.Request) {
	session := models.PickupSession{
		Status: models.StatusAwaitingShipper,
		Mode:   models.ModeManual,
	}
	if err := config.DB.Create(&session).Error; err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// GetSession returns the session plus its current batch.
func GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	drafts, err := loadDrafts(session)
	if err != nil {
		http.Error(w, "failed to load drafts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"orders":  drafts,
		"count":   len(drafts),
	})
}

// ResolveShipper looks a shipper up by external id without committing it.
// The operator inspects the candidate and selects it in a separate call.
func ResolveShipper(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if session.Status != models.StatusAwaitingShipper {
		http.Error(w, "shipper already selected for this session", http.StatusBadRequest)
		return
	}

	var req struct {
		ShipperID string `json:"shipperId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	shipper, err := api.GetShipper(r.Context(), req.ShipperID)
	if err != nil {
		respondError(w, err)
		return
	}

	snapshot, _ := json.Marshal(shipper)
	session.ShipperSnapshot = snapshot
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to store shipper candidate", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"shipper": shipper,
	})
}

// SelectShipper commits the previously resolved shipper and advances the
// session to date selection. Irreversible for the session's lifetime.
func SelectShipper(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if len(session.ShipperSnapshot) == 0 {
		http.Error(w, "resolve a shipper before selecting one", http.StatusBadRequest)
		return
	}
	var shipper models.Shipper
	if err := json.Unmarshal(session.ShipperSnapshot, &shipper); err != nil {
		http.Error(w, "stored shipper candidate is unreadable", http.StatusInternalServerError)
		return
	}

	if err := session.SelectShipper(shipper); err != nil {
		respondError(w, err)
		return
	}
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to update session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SetPickupDate records the pickup date. Dates before tomorrow are
// rejected and the session stays where it was.
func SetPickupDate(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		PickupDate models.JSONTime `json:"pickupDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid pickup date", http.StatusBadRequest)
		return
	}

	if err := session.SetPickupDate(req.PickupDate.Time(), time.Now()); err != nil {
		respondError(w, err)
		return
	}
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to update session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// LockSession finalizes the pickup fields. After this the pickup context
// is immutable and order entry opens up.
func LockSession(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		StateID string `json:"stateId"`
		CityID  *int   `json:"cityId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CityID != nil && !directory.CityInState(r.Context(), req.StateID, *req.CityID) {
		http.Error(w, "selected city does not belong to the selected state", http.StatusBadRequest)
		return
	}

	pickupCtx, err := session.Lock(req.Name, req.Phone, req.Address, req.StateID, req.CityID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to update session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":       session,
		"pickupContext": pickupCtx,
	})
}

// SwitchMode flips between manual and file entry. Destructive: the
// session's in-progress drafts are dropped because the two modes are
// mutually exclusive paths to one submission.
func SwitchMode(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		Mode models.InputMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	changed, err := session.SwitchMode(req.Mode)
	if err != nil {
		respondError(w, err)
		return
	}
	if changed {
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", session.ID).Delete(&models.DraftOrder{}).Error; err != nil {
				return err
			}
			return tx.Save(session).Error
		})
		if err != nil {
			http.Error(w, "failed to switch mode", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, session)
}
