package customer

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list customers, optional search over name/email/phone
func GetAllCustomers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")

		query := `SELECT * FROM customers`
		params := []interface{}{}
		if search != "" {
			query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
			params = append(params, "%"+search+"%")
		}
		query += ` ORDER BY created_at DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		customers, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"customers": customers})
	}
}

// Handler: customer by id with recent bookings and notes
func GetCustomerById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		custRows, err := db.Query(`SELECT * FROM customers WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer custRows.Close()
		customers, err := api.RowsToMaps(custRows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(customers) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrCustomerNotFound)
			return
		}
		customer := customers[0]

		bookRows, err := db.Query(`SELECT * FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`, id)
		if err == nil {
			defer bookRows.Close()
			if bookings, berr := api.RowsToMaps(bookRows); berr == nil {
				customer["bookings"] = bookings
			}
		}

		noteRows, err := db.Query(`SELECT * FROM notes WHERE customer_id = $1 ORDER BY created_at DESC`, id)
		if err == nil {
			defer noteRows.Close()
			if notes, nerr := api.RowsToMaps(noteRows); nerr == nil {
				customer["notes"] = notes
			}
		}

		api.RespondWithData(w, map[string]interface{}{"customer": customer})
	}
}

// Handler: create customer
func CreateCustomer(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string                 `json:"name"`
			Email       string                 `json:"email"`
			Phone       string                 `json:"phone"`
			Address     string                 `json:"address"`
			Tags        []string               `json:"tags"`
			Preferences map[string]interface{} `json:"preferences"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Tags == nil {
			req.Tags = []string{}
		}
		if req.Preferences == nil {
			req.Preferences = map[string]interface{}{}
		}
		tagsJSON, _ := json.Marshal(req.Tags)
		prefsJSON, _ := json.Marshal(req.Preferences)

		rows, err := db.Query(`
			INSERT INTO customers (name, email, phone, address, tags, preferences)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *`,
			req.Name, req.Email, req.Phone, req.Address, string(tagsJSON), string(prefsJSON),
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create customer")
			return
		}
		api.RespondCreated(w, "Customer created successfully", map[string]interface{}{"customer": created[0]})
	}
}

// Handler: partial update
func UpdateCustomer(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{"name": true, "email": true, "phone": true, "address": true, "tags": true, "preferences": true}
		setClause := ""
		values := []interface{}{}
		idx := 1
		for k, v := range req {
			if !allowed[k] || v == nil {
				continue
			}
			if k == "tags" || k == "preferences" {
				encoded, _ := json.Marshal(v)
				v = string(encoded)
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
			fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrCustomerNotFound)
			return
		}
		api.RespondWithMessage(w, "Customer updated successfully", map[string]interface{}{"customer": updated[0]})
	}
}

// Handler: delete customer
func DeleteCustomer(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM customers WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrCustomerNotFound)
			return
		}
		api.RespondWithMessage(w, "Customer deleted successfully", nil)
	}
}
