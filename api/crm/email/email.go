package email

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Inbox listings are capped so an unfiltered query stays cheap.
const listLimit = 100

// Handler: list emails, filterable by read/parsed flags and type
func GetAllEmails(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM emails`
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

		if isRead := r.URL.Query().Get("is_read"); isRead != "" {
			and("is_read = $%d", isRead == "true")
		}
		if isParsed := r.URL.Query().Get("is_parsed"); isParsed != "" {
			and("is_parsed = $%d", isParsed == "true")
		}
		if emailType := r.URL.Query().Get("email_type"); emailType != "" {
			and("email_type = $%d", emailType)
		}
		query += where + fmt.Sprintf(` ORDER BY received_at DESC LIMIT %d`, listLimit)

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		emails, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"emails": emails})
	}
}

// Handler: email by id
func GetEmailById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`SELECT * FROM emails WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		emails, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(emails) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrEmailNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"email": emails[0]})
	}
}

// Handler: flag as read
func MarkEmailAsRead(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`UPDATE emails SET is_read = TRUE WHERE id = $1 RETURNING *`, id)
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrEmailNotFound)
			return
		}
		api.RespondWithMessage(w, "Email marked as read", map[string]interface{}{"email": updated[0]})
	}
}

// Handler: flag as parsed with the extractor's confidence score
func MarkEmailAsParsed(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req struct {
			Confidence float64 `json:"confidence"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		rows, err := db.Query(`UPDATE emails SET is_parsed = TRUE, confidence = $1 WHERE id = $2 RETURNING *`, req.Confidence, id)
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrEmailNotFound)
			return
		}
		api.RespondWithMessage(w, "Email marked as parsed", map[string]interface{}{"email": updated[0]})
	}
}

// Handler: parsed emails whose extraction confidence fell below 70, for
// manual review; worst scores first
func GetLowConfidenceEmails(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT * FROM emails
			WHERE is_parsed = TRUE AND confidence < 70
			ORDER BY confidence ASC
			LIMIT 50`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		emails, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"emails": emails})
	}
}
