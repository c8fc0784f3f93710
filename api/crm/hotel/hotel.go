package hotel

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list hotels, filterable by city, minimum rating and active flag
func GetAllHotels(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM hotels`
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

		if city := r.URL.Query().Get("city"); city != "" {
			and("city = $%d", city)
		}
		if minRating := r.URL.Query().Get("min_rating"); minRating != "" {
			if n, err := strconv.Atoi(minRating); err == nil {
				and("star_rating >= $%d", n)
			}
		}
		if isActive := r.URL.Query().Get("is_active"); isActive != "" {
			and("is_active = $%d", isActive == "true")
		}
		query += where + ` ORDER BY star_rating DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		hotels, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"hotels": hotels})
	}
}

// Handler: hotel by id
func GetHotelById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`SELECT * FROM hotels WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		hotels, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(hotels) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrHotelNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"hotel": hotels[0]})
	}
}

// Handler: create hotel, always starts active
func CreateHotel(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name       string   `json:"name"`
			City       string   `json:"city"`
			Address    string   `json:"address"`
			Email      string   `json:"email"`
			Phone      string   `json:"phone"`
			StarRating int      `json:"star_rating"`
			Amenities  []string `json:"amenities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Name == "" || req.City == "" {
			api.RespondWithError(w, http.StatusBadRequest, "name and city are required")
			return
		}
		if req.Amenities == nil {
			req.Amenities = []string{}
		}
		amenitiesJSON, _ := json.Marshal(req.Amenities)

		rows, err := db.Query(`
			INSERT INTO hotels (name, city, address, email, phone, star_rating, amenities, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			RETURNING *`,
			req.Name, req.City, req.Address, req.Email, req.Phone, req.StarRating, string(amenitiesJSON),
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create hotel")
			return
		}
		api.RespondCreated(w, "Hotel created successfully", map[string]interface{}{"hotel": created[0]})
	}
}

// Handler: partial update
func UpdateHotel(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"name": true, "city": true, "address": true, "email": true,
			"phone": true, "star_rating": true, "amenities": true, "is_active": true,
		}
		setClause := ""
		values := []interface{}{}
		idx := 1
		for k, v := range req {
			if !allowed[k] || v == nil {
				continue
			}
			if k == "amenities" {
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
			fmt.Sprintf("UPDATE hotels SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrHotelNotFound)
			return
		}
		api.RespondWithMessage(w, "Hotel updated successfully", map[string]interface{}{"hotel": updated[0]})
	}
}

// Handler: delete hotel
func DeleteHotel(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM hotels WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrHotelNotFound)
			return
		}
		api.RespondWithMessage(w, "Hotel deleted successfully", nil)
	}
}
