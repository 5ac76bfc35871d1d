package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"dome.express/dispatch/config"
	"dome.express/dispatch/models"
	"dome.express/dispatch/utils"
)

// SubmitOrders formats the locked pickup context plus the draft batch into
// the upstream payload and uploads it. On success the batch and session
// are cleared; on failure everything stays put so the operator can retry
// without re-entering data.
func SubmitOrders(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if session.Status != models.StatusLocked {
		http.Error(w, "confirm the pickup details before submitting", http.StatusBadRequest)
		return
	}

	drafts, err := loadDrafts(session)
	if err != nil {
		http.Error(w, "failed to load drafts", http.StatusInternalServerError)
		return
	}

	pickup := session.Context()
	if err := utils.ValidateForSubmission(pickup, drafts); err != nil {
		respondError(w, err)
		return
	}

	payload := utils.FormatSubmission(*pickup, drafts)

	if err := api.UploadOrders(r.Context(), payload); err != nil {
		// Local state is preserved for retry.
		respondError(w, err)
		return
	}

	// Batch and pickup session are done once the upload landed.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.DraftOrder{}).Error; err != nil {
			return err
		}
		return tx.Delete(session).Error
	})
	if err != nil {
		http.Error(w, "orders submitted but session cleanup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "orders submitted",
		"submitted": len(payload.Orders),
		"payload":   payload,
	})
}
