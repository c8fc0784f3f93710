package reminder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

// Handler: list reminders in due-date order, filterable by completion and priority
func GetAllReminders(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT rm.*, u.name AS assignee_name
			FROM reminders rm
			LEFT JOIN users u ON u.id = rm.assigned_to`
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

		if completed := r.URL.Query().Get("is_completed"); completed != "" {
			and("rm.is_completed = $%d", completed == "true")
		}
		if priority := r.URL.Query().Get("priority"); priority != "" {
			and("rm.priority = $%d", priority)
		}
		query += where + ` ORDER BY rm.due_date ASC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		reminders, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"reminders": reminders})
	}
}

// Handler: create reminder
func CreateReminder(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title      string `json:"title"`
			Descr      string `json:"description"`
			DueDate    string `json:"due_date"`
			Priority   string `json:"priority"`
			AssignedTo string `json:"assigned_to"`
			CustomerID string `json:"customer_id"`
			BookingID  string `json:"booking_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Title == "" || req.DueDate == "" {
			api.RespondWithError(w, http.StatusBadRequest, "title and due_date are required")
			return
		}
		if req.Priority == "" {
			req.Priority = "NORMAL"
		}
		if req.AssignedTo == "" {
			// Unassigned reminders default to the session owner.
			req.AssignedTo = api.GetUserIDFromCtx(r.Context())
		}

		rows, err := db.Query(`
			INSERT INTO reminders (title, description, due_date, priority, assigned_to, customer_id, booking_id, is_completed, is_due)
			VALUES ($1, $2, $3::timestamp, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), FALSE, FALSE)
			RETURNING *`,
			req.Title, req.Descr, req.DueDate, req.Priority, req.AssignedTo, req.CustomerID, req.BookingID,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create reminder")
			return
		}
		api.RespondCreated(w, "Reminder created successfully", map[string]interface{}{"reminder": created[0]})
	}
}

// Handler: partial update; completing a reminder clears its due flag
func UpdateReminder(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"title": true, "description": true, "due_date": true,
			"priority": true, "assigned_to": true, "is_completed": true,
		}
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
		if done, ok := req["is_completed"].(bool); ok && done {
			setClause += ", is_due = FALSE"
		}
		if setClause == "" {
			api.RespondWithError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		values = append(values, id)

		rows, err := db.Query(
			fmt.Sprintf("UPDATE reminders SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrReminderNotFound)
			return
		}
		api.RespondWithMessage(w, "Reminder updated successfully", map[string]interface{}{"reminder": updated[0]})
	}
}

// Handler: delete reminder
func DeleteReminder(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM reminders WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrReminderNotFound)
			return
		}
		api.RespondWithMessage(w, "Reminder deleted successfully", nil)
	}
}

// Handler: mark a batch of reminders completed in one statement
func CompleteMultipleReminders(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if len(req.IDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "ids is required")
			return
		}

		res, err := db.Exec(`
			UPDATE reminders
			SET is_completed = TRUE, is_due = FALSE
			WHERE id = ANY($1)`,
			pq.Array(req.IDs),
		)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		count, _ := res.RowsAffected()
		api.RespondWithMessage(w, fmt.Sprintf("%d reminders marked as completed", count), map[string]interface{}{"completed": count})
	}
}
