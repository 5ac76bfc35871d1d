package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"dome.express/dispatch/config"
	"dome.express/dispatch/models"
)

// maxImportSize bounds an uploaded spreadsheet at 10 MB.
const maxImportSize = 10 << 20

// ImportOrders bulk-loads a draft batch from an uploaded .xlsx/.xls/.csv
// file. The parsed rows replace the session's file-mode batch wholesale;
// on any parse failure the batch is cleared rather than left partially
// populated.
func ImportOrders(w http.ResponseWriter, r *http.Request) {
	session, err := loadSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if session.Status != models.StatusLocked {
		http.Error(w, "confirm the pickup details before importing orders", http.StatusBadRequest)
		return
	}
	if session.Mode != models.ModeFile {
		http.Error(w, "session is in manual mode; switch to file upload first", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	drafts, parseErr := func() ([]models.DraftOrder, error) {
		rows, err := ParseSpreadsheet(header.Filename, file)
		if err != nil {
			return nil, err
		}
		return MapRows(rows)
	}()
	if parseErr != nil {
		// Failed import leaves no half-imported batch behind.
		config.DB.Where("session_id = ?", session.ID).Delete(&models.DraftOrder{})
		respondError(w, parseErr)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.DraftOrder{}).Error; err != nil {
			return err
		}
		for i := range drafts {
			drafts[i].SessionID = session.ID
			drafts[i].Position = i
		}
		if len(drafts) == 0 {
			return nil
		}
		return tx.Create(&drafts).Error
	})
	if err != nil {
		http.Error(w, "failed to store imported orders", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": drafts,
		"count":  len(drafts),
	})
}
