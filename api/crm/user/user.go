package user

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Handler: register a new manager account
func Register(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Role     string `json:"role"`
			IsAdmin  bool   `json:"is_admin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		if req.Email == "" || req.Password == "" || req.Name == "" {
			api.RespondWithError(w, http.StatusBadRequest, "email, password and name are required")
			return
		}
		if req.Role == "" {
			req.Role = "MANAGER"
		}

		var id string
		err := db.QueryRow(`
			INSERT INTO users (email, password, name, role, is_admin)
			VALUES (LOWER($1), $2, $3, $4, $5)
			RETURNING id`,
			req.Email, req.Password, req.Name, req.Role, req.IsAdmin,
		).Scan(&id)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		api.RespondCreated(w, "User registered successfully", map[string]interface{}{
			"user": map[string]interface{}{
				"id":       id,
				"email":    req.Email,
				"name":     req.Name,
				"role":     req.Role,
				"is_admin": req.IsAdmin,
			},
		})
	}
}

// Handler: list all users (password never leaves the database)
func GetUsers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT id, email, name, role, is_admin, created_at FROM users ORDER BY name ASC`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		users, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"users": users})
	}
}

// Handler: profile of the session owner
func GetCurrentUser(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := api.GetUserIDFromCtx(r.Context())
		if userID == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}
		rows, err := db.Query(`SELECT id, email, name, role, is_admin, created_at FROM users WHERE id = $1`, userID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		users, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(users) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrUserNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"user": users[0]})
	}
}

// Handler: user by id
func GetUserById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		rows, err := db.Query(`SELECT id, email, name, role, is_admin, created_at FROM users WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		users, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(users) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrUserNotFound)
			return
		}
		api.RespondWithData(w, map[string]interface{}{"user": users[0]})
	}
}
