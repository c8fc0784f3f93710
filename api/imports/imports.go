package imports

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
)

// Uploads above this size are rejected before parsing.
const maxUploadBytes = 20 << 20

type batchRunner func(*sql.DB, []SheetRow) ImportResult

// uploadHandler wraps a batch runner with the shared multipart plumbing.
// The batch itself always answers 200: row failures ride back in the
// errors list, not the status code.
func uploadHandler(db *sql.DB, noun string, run batchRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFailedToParseMultipartForm)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		defer file.Close()

		rows, err := ParseSheet(file)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		result := run(db, rows)

		resp := map[string]interface{}{
			"success":  true,
			"message":  fmt.Sprintf("Imported %d %s", result.Imported, noun),
			"batch_id": result.BatchID,
			"imported": result.Imported,
		}
		if len(result.Errors) > 0 {
			resp["errors"] = result.Errors
		}
		w.Header().Set("Content-Type", constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(resp)
	}
}

// Handler: list imported tour files, filterable by year/month/manager
func listTourFiles(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT tf.*, u.name AS manager_name, u.email AS manager_email
			FROM tour_files tf
			LEFT JOIN users u ON u.id = tf.manager_id`
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
		if year := r.URL.Query().Get("year"); year != "" {
			and("tf.year = $%d", year)
		}
		if month := r.URL.Query().Get("month"); month != "" {
			and("tf.month = $%d", month)
		}
		if managerID := r.URL.Query().Get("manager_id"); managerID != "" {
			and("tf.manager_id = $%d", managerID)
		}
		query += where + ` ORDER BY tf.start_date DESC`

		rows, err := db.Query(query, params...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		tourFiles, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, tourFiles)
	}
}

func listHotels(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT * FROM hotels ORDER BY name ASC`)
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
		api.RespondWithData(w, hotels)
	}
}

func listGuides(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT * FROM guides ORDER BY name ASC`)
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
		api.RespondWithData(w, guides)
	}
}

func StartImportService(db *sql.DB) {
	router := mux.NewRouter()
	router.Use(api.SessionMiddleware(api.PolicyAllowAll))

	router.HandleFunc("/imports/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Import Service"))
	})

	router.HandleFunc("/imports/tour-files", uploadHandler(db, "tour files", RunTourFileImport)).Methods("POST")
	router.HandleFunc("/imports/hotels", uploadHandler(db, "hotels", RunHotelImport)).Methods("POST")
	router.HandleFunc("/imports/guides", uploadHandler(db, "guides", RunGuideImport)).Methods("POST")

	router.HandleFunc("/imports/tour-files", listTourFiles(db)).Methods("GET")
	router.HandleFunc("/imports/hotels", listHotels(db)).Methods("GET")
	router.HandleFunc("/imports/guides", listGuides(db)).Methods("GET")

	log.Println("Import Service started on :4243")
	err := http.ListenAndServe(":4243", router)
	if err != nil {
		log.Fatalf("Import Service failed: %v", err)
	}
}
