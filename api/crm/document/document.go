package document

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list documents, filterable by category, booking and status
func GetAllDocuments(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT d.*, b.destination AS booking_destination
			FROM documents d
			LEFT JOIN bookings b ON b.id = d.booking_id`
		params := []interface{}{}
		where := ""
		appendFilter := func(col, val string) {
			if val == "" {
				return
			}
			params = append(params, val)
			if where == "" {
				where = fmt.Sprintf(" WHERE d.%s = $%d", col, len(params))
			} else {
				where += fmt.Sprintf(" AND d.%s = $%d", col, len(params))
			}
		}
		appendFilter("category", r.URL.Query().Get("category"))
		appendFilter("booking_id", r.URL.Query().Get("booking_id"))
		appendFilter("status", r.URL.Query().Get("status"))
		query += where + ` ORDER BY d.uploaded_at DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		documents, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"documents": documents})
	}
}

// Handler: document by id
func GetDocumentById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`
			SELECT d.*, b.destination AS booking_destination
			FROM documents d
			LEFT JOIN bookings b ON b.id = d.booking_id
			WHERE d.id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		documents, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(documents) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrDocumentNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"document": documents[0]})
	}
}

// Handler: register an uploaded document. Storage happens elsewhere; this
// records the metadata row with a PENDING status.
func UploadDocument(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name       string `json:"name"`
			Type       string `json:"type"`
			Category   string `json:"category"`
			FilePath   string `json:"file_path"`
			FileSize   int64  `json:"file_size"`
			BookingID  string `json:"booking_id"`
			TourFileID string `json:"tour_file_id"`
			TicketID   string `json:"ticket_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Name == "" || req.FilePath == "" {
			api.RespondWithError(w, http.StatusBadRequest, "name and file_path are required")
			return
		}

		rows, err := db.Query(`
			INSERT INTO documents (name, type, category, file_path, file_size, booking_id, tour_file_id, ticket_id, status)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), 'PENDING')
			RETURNING *`,
			req.Name, req.Type, req.Category, req.FilePath, req.FileSize, req.BookingID, req.TourFileID, req.TicketID,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to upload document")
			return
		}
		api.RespondCreated(w, "Document uploaded successfully", map[string]interface{}{"document": created[0]})
	}
}

// Handler: update status only
func UpdateDocumentStatus(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Status == "" {
			api.RespondWithError(w, http.StatusBadRequest, "status is required")
			return
		}

		rows, err := db.Query(`UPDATE documents SET status = $1 WHERE id = $2 RETURNING *`, req.Status, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		updated, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(updated) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrDocumentNotFound)
			return
		}
		api.RespondWithMessage(w, "Document status updated", map[string]interface{}{"document": updated[0]})
	}
}

// Handler: delete document metadata
func DeleteDocument(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM documents WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrDocumentNotFound)
			return
		}
		api.RespondWithMessage(w, "Document deleted successfully", nil)
	}
}

// Handler: document counts grouped by category
func GetDocumentsByCategory(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT category, COUNT(*) AS count FROM documents GROUP BY category ORDER BY count DESC`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		stats, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"stats": stats})
	}
}
