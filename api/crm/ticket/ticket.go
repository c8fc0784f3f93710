package ticket

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list tickets, filterable by booking, type and status
func GetAllTickets(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT t.*, b.destination AS booking_destination, c.name AS customer_name, c.email AS customer_email
			FROM tickets t
			LEFT JOIN bookings b ON b.id = t.booking_id
			LEFT JOIN customers c ON c.id = b.customer_id`
		params := []interface{}{}
		where := ""
		appendFilter := func(col, val string) {
			if val == "" {
				return
			}
			params = append(params, val)
			if where == "" {
				where = fmt.Sprintf(" WHERE t.%s = $%d", col, len(params))
			} else {
				where += fmt.Sprintf(" AND t.%s = $%d", col, len(params))
			}
		}
		appendFilter("booking_id", r.URL.Query().Get("booking_id"))
		appendFilter("ticket_type", r.URL.Query().Get("ticket_type"))
		appendFilter("status", r.URL.Query().Get("status"))
		query += where + ` ORDER BY t.departure_date DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		tickets, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"tickets": tickets})
	}
}

// Handler: ticket by id with booking and attached documents
func GetTicketById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`
			SELECT t.*, b.destination AS booking_destination, b.status AS booking_status
			FROM tickets t
			LEFT JOIN bookings b ON b.id = t.booking_id
			WHERE t.id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		tickets, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(tickets) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTicketNotFound)
			return
		}
		ticket := tickets[0]

		docRows, err := db.Query(`SELECT * FROM documents WHERE ticket_id = $1 ORDER BY uploaded_at DESC`, id)
		if err == nil {
			defer docRows.Close()
			if docs, derr := api.RowsToMaps(docRows); derr == nil {
				ticket["documents"] = docs
			}
		}

		api.RespondWithData(w, map[string]interface{}{"ticket": ticket})
	}
}

// Handler: create ticket
func CreateTicket(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TicketNumber  string  `json:"ticket_number"`
			BookingID     string  `json:"booking_id"`
			TicketType    string  `json:"ticket_type"`
			PNR           string  `json:"pnr"`
			Provider      string  `json:"provider"`
			PassengerName string  `json:"passenger_name"`
			Origin        string  `json:"origin"`
			Destination   string  `json:"destination"`
			DepartureDate string  `json:"departure_date"`
			DepartureTime string  `json:"departure_time"`
			ArrivalDate   string  `json:"arrival_date"`
			ArrivalTime   string  `json:"arrival_time"`
			TicketClass   string  `json:"ticket_class"`
			Fare          float64 `json:"fare"`
			Status        string  `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Status == "" {
			req.Status = "CONFIRMED"
		}

		rows, err := db.Query(`
			INSERT INTO tickets (
				ticket_number, booking_id, ticket_type, pnr, provider, passenger_name,
				origin, destination, departure_date, departure_time,
				arrival_date, arrival_time, ticket_class, fare, status
			) VALUES (
				$1, NULLIF($2, ''), $3, $4, $5, $6,
				$7, $8, NULLIF($9, '')::timestamp, $10,
				NULLIF($11, '')::timestamp, $12, $13, $14, $15
			) RETURNING *`,
			req.TicketNumber, req.BookingID, req.TicketType, req.PNR, req.Provider, req.PassengerName,
			req.Origin, req.Destination, req.DepartureDate, req.DepartureTime,
			req.ArrivalDate, req.ArrivalTime, req.TicketClass, req.Fare, req.Status,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create ticket")
			return
		}
		api.RespondCreated(w, "Ticket created successfully", map[string]interface{}{"ticket": created[0]})
	}
}

// Handler: partial update
func UpdateTicket(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"ticket_number": true, "booking_id": true, "ticket_type": true, "pnr": true,
			"provider": true, "passenger_name": true, "origin": true, "destination": true,
			"departure_date": true, "departure_time": true, "arrival_date": true,
			"arrival_time": true, "ticket_class": true, "fare": true, "status": true,
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
			fmt.Sprintf("UPDATE tickets SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTicketNotFound)
			return
		}
		api.RespondWithMessage(w, "Ticket updated successfully", map[string]interface{}{"ticket": updated[0]})
	}
}

// Handler: delete ticket
func DeleteTicket(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM tickets WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTicketNotFound)
			return
		}
		api.RespondWithMessage(w, "Ticket deleted successfully", nil)
	}
}

// Handler: queue an email for ticket extraction. The extraction itself runs
// out of band; this just acknowledges the request and flags the email.
func ParseTicketFromEmail(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EmailID string `json:"email_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.EmailID == "" {
			api.RespondWithError(w, http.StatusBadRequest, "email_id is required")
			return
		}

		var exists bool
		if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM emails WHERE id = $1)`, req.EmailID).Scan(&exists); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !exists {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrEmailNotFound)
			return
		}

		api.RespondWithMessage(w, "Ticket parsing initiated", map[string]interface{}{
			"email_id": req.EmailID,
			"status":   "pending",
		})
	}
}
