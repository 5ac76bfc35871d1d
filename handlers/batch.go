package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"dome.express/dispatch/config"
	"dome.express/dispatch/models"
)

// ListDrafts pages through the session's batch, 10 drafts per page.
// Positions stay absolute so edit/delete targets never drift with the
// page.
func ListDrafts(w http.ResponseWriter, r *http.Request) {
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

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":       models.PageDrafts(drafts, page),
		"page":         page,
		"totalPages":   models.TotalPages(len(drafts)),
		"count":        len(drafts),
		"editingIndex": session.EditingIndex,
	})
}

// SaveDraft appends a manual draft, or replaces the draft under edit when
// an edit is active. The required-field gate blocks partial saves.
func SaveDraft(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if session.Status != models.StatusLocked {
		http.Error(w, "confirm the pickup details before adding orders", http.StatusBadRequest)
		return
	}
	if session.Mode != models.ModeManual {
		http.Error(w, "session is in file mode; switch to manual entry first", http.StatusBadRequest)
		return
	}

	var req models.DraftOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// One atomic step: adopt the requested state and drop a city that does
	// not belong to it, then gate on the required fields.
	draft := models.DraftOrder{
		SessionID:  session.ID,
		Source:     models.ModeManual,
		CusName:    req.CusName,
		CusPhone:   req.CusPhone,
		CusAddress: req.CusAddress,
		COD:        req.COD,
		Delivery:   req.Delivery,
		Note:       req.Note,
		CityID:     req.CityID,
	}
	draft.ApplyStateChange(req.StateID, directory.Cities(r.Context()))
	if err := draft.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if session.EditingIndex != nil {
		index := *session.EditingIndex
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			var existing models.DraftOrder
			if err := tx.Where("session_id = ? AND position = ?", session.ID, index).First(&existing).Error; err != nil {
				return models.ValidationError("no draft at index %d", index)
			}
			existing.CusName = draft.CusName
			existing.CusPhone = draft.CusPhone
			existing.CusAddress = draft.CusAddress
			existing.COD = draft.COD
			existing.Delivery = draft.Delivery
			existing.Note = draft.Note
			existing.StateID = draft.StateID
			existing.CityID = draft.CityID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			session.EditingIndex = nil
			return tx.Save(session).Error
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "order updated", "index": index})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DraftOrder{}).Where("session_id = ?", session.ID).Count(&count).Error; err != nil {
			return err
		}
		draft.Position = int(count)
		return tx.Create(&draft).Error
	})
	if err != nil {
		http.Error(w, "failed to save draft", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

// EditDraft opens the draft at the given absolute index for editing. Only
// one draft may be under edit at a time.
func EditDraft(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		http.Error(w, "invalid draft index", http.StatusBadRequest)
		return
	}

	var draft models.DraftOrder
	if err := config.DB.Where("session_id = ? AND position = ?", session.ID, index).First(&draft).Error; err != nil {
		http.Error(w, "no draft at that index", http.StatusNotFound)
		return
	}

	session.EditingIndex = &index
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to update session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"editingIndex": index,
		"order":        draft,
	})
}

// CancelEdit discards the in-progress edit and restores the empty draft
// form.
func CancelEdit(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	session.EditingIndex = nil
	if err := config.DB.Save(session).Error; err != nil {
		http.Error(w, "failed to update session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "edit cancelled"})
}

// DeleteDraft removes the draft at an absolute index. The client must send
// confirm=true; deletion is never implicit. Positions
// above the removed draft shift down so the batch stays densely indexed,
// and an edit pointing at or past the hole is cancelled or shifted with
// it.
func DeleteDraft(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "deletion requires confirm=true", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		http.Error(w, "invalid draft index", http.StatusBadRequest)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("session_id = ? AND position = ?", session.ID, index).Delete(&models.DraftOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ValidationError("no draft at index %d", index)
		}
		if err := tx.Model(&models.DraftOrder{}).
			Where("session_id = ? AND position > ?", session.ID, index).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		if session.EditingIndex != nil {
			switch {
			case *session.EditingIndex == index:
				session.EditingIndex = nil
			case *session.EditingIndex > index:
				shifted := *session.EditingIndex - 1
				session.EditingIndex = &shifted
			}
		}
		return tx.Save(session).Error
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
