package tourfile

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Handler: list tour files, filterable by status, year, month and manager
func GetAllTourFiles(db *sql.DB) http.HandlerFunc {
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

		if status := r.URL.Query().Get("status"); status != "" {
			and("tf.status = $%d", status)
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
		query += where + ` ORDER BY tf.created_at DESC`

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

// Handler: tour file by id with manager summary and attached documents
func GetTourFileById(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rows, err := db.Query(`
			SELECT tf.*, u.name AS manager_name, u.email AS manager_email
			FROM tour_files tf
			LEFT JOIN users u ON u.id = tf.manager_id
			WHERE tf.id = $1`, id)
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
		if len(tourFiles) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTourFileNotFound)
			return
		}
		tourFile := tourFiles[0]

		docRows, err := db.Query(`SELECT * FROM documents WHERE tour_file_id = $1 ORDER BY uploaded_at DESC`, id)
		if err == nil {
			defer docRows.Close()
			if docs, derr := api.RowsToMaps(docRows); derr == nil {
				tourFile["documents"] = docs
			}
		}

		api.RespondWithData(w, tourFile)
	}
}

type tourFileRequest struct {
	FileCode            string      `json:"file_code"`
	TourName            string      `json:"tour_name"`
	ClientName          string      `json:"client_name"`
	ClientCountry       string      `json:"client_country"`
	StartDate           string      `json:"start_date"`
	EndDate             string      `json:"end_date"`
	Pax                 int         `json:"pax"`
	Cities              interface{} `json:"cities"`
	Hotels              interface{} `json:"hotels"`
	Guides              interface{} `json:"guides"`
	Guide               string      `json:"guide"`
	TourLeader          string      `json:"tour_leader"`
	AgentName           string      `json:"agent_name"`
	ForeignTourOperator string      `json:"foreign_tour_operator"`
	TransportType       string      `json:"transport_type"`
	Status              string      `json:"status"`
	InvoiceStatus       string      `json:"invoice_status"`
	Revenue             interface{} `json:"revenue"`
	RoomNights          int         `json:"room_nights"`
	PNR                 string      `json:"pnr"`
	ManagerID           string      `json:"manager_id"`
	ManagerName         string      `json:"manager_name"`
}

// listAsJSON accepts either an already-encoded string or a JSON array and
// returns the encoded text stored in the list columns.
func listAsJSON(v interface{}) string {
	if v == nil {
		return "[]"
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "[]"
		}
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// parseRevenue tolerates both numeric and string revenue values in request
// bodies; anything unparseable counts as zero.
func parseRevenue(v interface{}) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			return d
		}
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// resolveManagerID walks the fallback chain: explicit id, user by manager
// name, user by agent name, then the first admin. Empty result means no
// usable manager exists.
func resolveManagerID(db *sql.DB, explicitID, managerName, agentName string) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}
	for _, name := range []string{managerName, agentName} {
		if name == "" {
			continue
		}
		var id string
		err := db.QueryRow(`SELECT id FROM users WHERE name = $1 LIMIT 1`, name).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return "", err
		}
	}
	var id string
	err := db.QueryRow(`SELECT id FROM users WHERE is_admin = TRUE ORDER BY created_at ASC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Handler: create tour file. Missing file codes are generated, the manager
// is resolved through the fallback chain, and year/month come from the
// start date.
func CreateTourFile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tourFileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		managerID, err := resolveManagerID(db, req.ManagerID, req.ManagerName, req.AgentName)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if managerID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoManagerFound)
			return
		}

		startDate := time.Now()
		if req.StartDate != "" {
			if parsed, perr := time.Parse(constants.DateFormat, req.StartDate); perr == nil {
				startDate = parsed
			} else if parsed, perr := time.Parse(time.RFC3339, req.StartDate); perr == nil {
				startDate = parsed
			}
		}
		endDate := startDate
		if req.EndDate != "" {
			if parsed, perr := time.Parse(constants.DateFormat, req.EndDate); perr == nil {
				endDate = parsed
			} else if parsed, perr := time.Parse(time.RFC3339, req.EndDate); perr == nil {
				endDate = parsed
			}
		}

		if req.FileCode == "" {
			req.FileCode = fmt.Sprintf("TF-%d", time.Now().UnixMilli())
		}
		if req.TourName == "" {
			req.TourName = "New Tour"
		}
		if req.Pax <= 0 {
			req.Pax = 1
		}
		if req.Status == "" {
			req.Status = constants.StatusUpcoming
		}
		if req.InvoiceStatus == "" {
			req.InvoiceStatus = constants.InvoiceYetToRaise
		}
		guide := req.Guide
		if guide == "" {
			guide = req.TourLeader
		}

		revenue := parseRevenue(req.Revenue)

		rows, err := db.Query(`
			INSERT INTO tour_files (
				file_code, tour_name, client_name, client_country, start_date, end_date,
				pax, cities, hotels, guides, guide, agent_name, foreign_tour_operator,
				transport_type, status, invoice_status, revenue, room_nights, pnr,
				year, month, manager_id
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19,
				$20, $21, $22
			) RETURNING *`,
			req.FileCode, req.TourName, req.ClientName, req.ClientCountry, startDate, endDate,
			req.Pax, listAsJSON(req.Cities), listAsJSON(req.Hotels), listAsJSON(req.Guides),
			guide, req.AgentName, req.ForeignTourOperator,
			req.TransportType, req.Status, req.InvoiceStatus, revenue.String(), req.RoomNights, req.PNR,
			startDate.Year(), int(startDate.Month()), managerID,
		)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer rows.Close()
		created, err := api.RowsToMaps(rows)
		if err != nil || len(created) == 0 {
			api.RespondWithError(w, http.StatusInternalServerError, "Failed to create tour file")
			return
		}
		api.RespondCreated(w, "Tour file created successfully", created[0])
	}
}

// Handler: partial update; a changed start date re-derives year and month
func UpdateTourFile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		allowed := map[string]bool{
			"file_code": true, "tour_name": true, "client_name": true, "client_country": true,
			"start_date": true, "end_date": true, "pax": true, "cities": true, "hotels": true,
			"guides": true, "guide": true, "agent_name": true, "foreign_tour_operator": true,
			"transport_type": true, "status": true, "invoice_status": true, "revenue": true,
			"room_nights": true, "pnr": true, "manager_id": true,
		}
		listCols := map[string]bool{"cities": true, "hotels": true, "guides": true}

		setClause := ""
		values := []interface{}{}
		idx := 1
		add := func(col string, v interface{}) {
			if setClause != "" {
				setClause += ", "
			}
			setClause += fmt.Sprintf("%s = $%d", col, idx)
			values = append(values, v)
			idx++
		}

		for k, v := range req {
			if !allowed[k] || v == nil {
				continue
			}
			if listCols[k] {
				v = listAsJSON(v)
			}
			add(k, v)
		}

		if rawStart, ok := req["start_date"].(string); ok && rawStart != "" {
			parsed, perr := time.Parse(constants.DateFormat, rawStart)
			if perr != nil {
				parsed, perr = time.Parse(time.RFC3339, rawStart)
			}
			if perr == nil {
				add("year", parsed.Year())
				add("month", int(parsed.Month()))
			}
		}

		if setClause == "" {
			api.RespondWithError(w, http.StatusBadRequest, "No fields to update")
			return
		}
		values = append(values, id)

		rows, err := db.Query(
			fmt.Sprintf("UPDATE tour_files SET %s WHERE id = $%d RETURNING *", setClause, idx),
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
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTourFileNotFound)
			return
		}
		api.RespondWithMessage(w, "Tour file updated successfully", updated[0])
	}
}

// Handler: delete tour file
func DeleteTourFile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := db.Exec(`DELETE FROM tour_files WHERE id = $1`, id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrTourFileNotFound)
			return
		}
		api.RespondWithMessage(w, "Tour file deleted successfully", nil)
	}
}
