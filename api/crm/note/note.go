package note

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list notes, filterable by priority, customer and booking
func GetAllNotes(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT n.*, u.name AS author_name
			FROM notes n
			LEFT JOIN users u ON u.id = n.created_by`
		params := []interface{}{}
		where := ""
		and := func(cond string, val interface{}) {
			params = append(params, val)
			clause := fmt.Sprintf(cond, len(params))
			if where == "" {
				where = " WHERE " + clause
			} else {
				where += " AND " + clause
			}
		}

		if priority := r.URL.Query().Get("priority"); priority != "" {
			and("n.priority = $%d", priority)
		}
		if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
			and("n.customer_id = $%d", customerID)
		}
		if bookingID := r.URL.Query().Get("booking_id"); bookingID != "" {
			and("n.booking_id = $%d", bookingID)
		}
		query += where + ` ORDER BY n.created_at DESC LIMIT 100`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		notes, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"notes": notes})
	}
}

// Handler: create note, author taken from the session
func CreateNote(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content    string `json:"content"`
			Priority   string `json:"priority"`
			CustomerID string `json:"customer_id"`
			BookingID  string `json:"booking_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Content == "" {
			api.RespondWithError(w, http.StatusBadRequest, "content is required")
			return
		}
		if req.Priority == "" {
			req.Priority = "NORMAL"
		}
		userID := api.GetUserIDFromCtx(r.Context())

		rows, err := db.Query(`
			INSERT INTO notes (content, priority, customer_id, booking_id, created_by)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
			RETURNING *`,
			req.Content, req.Priority, req.CustomerID, req.BookingID, userID,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create note")
			return
		}
		api.RespondCreated(w, "Note created successfully", map[string]interface{}{"note": created[0]})
	}
}

// Handler: partial update
func UpdateNote(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{"content": true, "priority": true}
		setClause := ""
		values := []interface{}{}
		idx := 1
		for k, v := range req {
			if !allowed[k] || v == nil {
				continue
			}
			if setClause != "" {
				setClause += ", "
			}
			setClause += fmt.Sprintf("%s = $%d", k, idx)
			values = append(values, v)
			idx++
		}
		if setClause == "" {
			api.RespondWithError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		values = append(values, id)

		rows, err := db.Query(
			fmt.Sprintf("UPDATE notes SET %s WHERE id = $%d RETURNING *", setClause, idx),
			values...,
		)
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrNoteNotFound)
			return
		}
		api.RespondWithMessage(w, "Note updated successfully", map[string]interface{}{"note": updated[0]})
	}
}

// Handler: delete note
func DeleteNote(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM notes WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrNoteNotFound)
			return
		}
		api.RespondWithMessage(w, "Note deleted successfully", nil)
	}
}
