package guide

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: list guides, filterable by city and active flag
func GetAllGuides(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM guides`
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
		if isActive := r.URL.Query().Get("is_active"); isActive != "" {
			and("is_active = $%d", isActive == "true")
		}
		query += where + ` ORDER BY rating DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		guides, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"guides": guides})
	}
}

// Handler: guide by id
func GetGuideById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`SELECT * FROM guides WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		guides, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(guides) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrGuideNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"guide": guides[0]})
	}
}

// Handler: create guide, always starts active
func CreateGuide(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string   `json:"name"`
			Email     string   `json:"email"`
			Phone     string   `json:"phone"`
			City      string   `json:"city"`
			Languages []string `json:"languages"`
			Expertise []string `json:"expertise"`
			Rating    float64  `json:"rating"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Name == "" {
			api.RespondWithError(w, http.StatusBadRequest, "name is required")
			return
		}
		if req.Languages == nil {
			req.Languages = []string{}
		}
		if req.Expertise == nil {
			req.Expertise = []string{}
		}
		languagesJSON, _ := json.Marshal(req.Languages)
		expertiseJSON, _ := json.Marshal(req.Expertise)

		rows, err := db.Query(`
			INSERT INTO guides (name, email, phone, city, languages, expertise, rating, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			RETURNING *`,
			req.Name, req.Email, req.Phone, req.City, string(languagesJSON), string(expertiseJSON), req.Rating,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create guide")
			return
		}
		api.RespondCreated(w, "Guide created successfully", map[string]interface{}{"guide": created[0]})
	}
}

// Handler: partial update
func UpdateGuide(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"name": true, "email": true, "phone": true, "city": true,
			"languages": true, "expertise": true, "rating": true, "is_active": true,
		}
		setClause := ""
		values := []interface{}{}
		idx := 1
		for k, v := range req {
			if !allowed[k] || v == nil {
				continue
			}
			if k == "languages" || k == "expertise" {
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
			fmt.Sprintf("UPDATE guides SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrGuideNotFound)
			return
		}
		api.RespondWithMessage(w, "Guide updated successfully", map[string]interface{}{"guide": updated[0]})
	}
}

// Handler: delete guide
func DeleteGuide(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM guides WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrGuideNotFound)
			return
		}
		api.RespondWithMessage(w, "Guide deleted successfully", nil)
	}
}
