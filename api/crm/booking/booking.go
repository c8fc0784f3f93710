package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list bookings, filterable by status and customer
func GetAllBookings(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		customerID := r.URL.Query().Get("customer_id")

		query := `SELECT b.*, c.name AS customer_name FROM bookings b LEFT JOIN customers c ON c.id = b.customer_id`
		params := []interface{}{}
		where := ""
		if status != "" {
			params = append(params, status)
			where = fmt.Sprintf(" WHERE b.status = $%d", len(params))
		}
		if customerID != "" {
			params = append(params, customerID)
			if where == "" {
				where = fmt.Sprintf(" WHERE b.customer_id = $%d", len(params))
			} else {
				where += fmt.Sprintf(" AND b.customer_id = $%d", len(params))
			}
		}
		query += where + ` ORDER BY b.created_at DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		bookings, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"bookings": bookings})
	}
}

// Handler: booking by id with its tickets
func GetBookingById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`
			SELECT b.*, c.name AS customer_name, c.email AS customer_email
			FROM bookings b
			LEFT JOIN customers c ON c.id = b.customer_id
			WHERE b.id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		bookings, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(bookings) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrBookingNotFound)
			return
		}
		booking := bookings[0]

		ticketRows, err := db.Query(`SELECT * FROM tickets WHERE booking_id = $1 ORDER BY created_at DESC`, id)
		if err == nil {
			defer ticketRows.Close()
			if tickets, terr := api.RowsToMaps(ticketRows); terr == nil {
				booking["tickets"] = tickets
			}
		}

		docRows, err := db.Query(`SELECT * FROM documents WHERE booking_id = $1 ORDER BY uploaded_at DESC`, id)
		if err == nil {
			defer docRows.Close()
			if docs, derr := api.RowsToMaps(docRows); derr == nil {
				booking["documents"] = docs
			}
		}

		noteRows, err := db.Query(`SELECT * FROM notes WHERE booking_id = $1 ORDER BY created_at DESC`, id)
		if err == nil {
			defer noteRows.Close()
			if notes, nerr := api.RowsToMaps(noteRows); nerr == nil {
				booking["notes"] = notes
			}
		}

		api.RespondWithData(w, map[string]interface{}{"booking": booking})
	}
}

// Handler: create booking
func CreateBooking(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CustomerID  string  `json:"customer_id"`
			Destination string  `json:"destination"`
			StartDate   string  `json:"start_date"`
			EndDate     string  `json:"end_date"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"total_amount"`
			Notes       string  `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.CustomerID == "" || req.Destination == "" {
			api.RespondWithError(w, http.StatusBadRequest, "customer_id and destination are required")
			return
		}
		if req.Status == "" {
			req.Status = "PENDING"
		}

		rows, err := db.Query(`
			INSERT INTO bookings (customer_id, destination, start_date, end_date, status, total_amount, notes)
			VALUES ($1, $2, NULLIF($3, '')::date, NULLIF($4, '')::date, $5, $6, $7)
			RETURNING *`,
			req.CustomerID, req.Destination, req.StartDate, req.EndDate, req.Status, req.TotalAmount, req.Notes,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}
		api.RespondCreated(w, "Booking created successfully", map[string]interface{}{"booking": created[0]})
	}
}

// Handler: partial update
func UpdateBooking(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"destination": true, "start_date": true, "end_date": true,
			"status": true, "total_amount": true, "notes": true, "customer_id": true,
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
		if setClause == "" {
			api.RespondWithError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		values = append(values, id)

		rows, err := db.Query(
			fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrBookingNotFound)
			return
		}
		api.RespondWithMessage(w, "Booking updated successfully", map[string]interface{}{"booking": updated[0]})
	}
}

// Handler: delete booking
func DeleteBooking(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrBookingNotFound)
			return
		}
		api.RespondWithMessage(w, "Booking deleted successfully", nil)
	}
}
