package imports

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/constants"
	"TravelCrmSaas/internal/config"

	"github.com/google/uuid"
)

// RowError reports a failed spreadsheet row. Row numbers are 1-based sheet
// positions including the header, so the first data row is row 2.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult is the outcome of a batch run. Errors stay nil when every
// row landed, so the field drops out of the JSON response.
type ImportResult struct {
	BatchID  string     `json:"batch_id"`
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors,omitempty"`
}

// TourFileRow is the typed form of a normalized spreadsheet row, decoded
// before it touches the store.
type TourFileRow struct {
	FileCode            string
	TourName            string
	ClientCountry       string
	Pax                 int
	StartDate           time.Time
	EndDate             time.Time
	Status              string
	InvoiceStatus       string
	PNR                 string
	Revenue             string
	RoomNights          int
	Cities              []string
	Hotels              []string
	Guides              []string
	Guide               string
	TransportType       string
	ForeignTourOperator string
	ManagerEmail        string
	ManagerName         string
}

// DecodeTourFileRow applies the defaults and normalizations a raw sheet row
// needs before upsert. idx is the zero-based data row index, used for the
// generated fallback file code.
func DecodeTourFileRow(row SheetRow, idx int) TourFileRow {
	fileCode := row["file_code"]
	if fileCode == "" {
		fileCode = fmt.Sprintf("TF%d%d", time.Now().UnixMilli(), idx)
	}
	country := row["client_country"]
	if country == "" {
		country = config.DefaultClientCountry
	}
	transport := row["transport_type"]
	if transport == "" {
		transport = config.DefaultTransportType
	}
	return TourFileRow{
		FileCode:            fileCode,
		TourName:            row["tour_name"],
		ClientCountry:       country,
		Pax:                 ParseIntCell(row["pax"]),
		StartDate:           ParseSheetDate(row["start_date"]),
		EndDate:             ParseSheetDate(row["end_date"]),
		Status:              NormalizeStatus(row.First("file_status", "status"), constants.StatusUpcoming),
		InvoiceStatus:       NormalizeStatus(row["invoice_status"], constants.InvoiceYetToRaise),
		PNR:                 row["pnr"],
		Revenue:             ParseDecimalCell(row["revenue"]).String(),
		RoomNights:          ParseIntCell(row["room_nights"]),
		Cities:              SplitList(row["cities"]),
		Hotels:              SplitList(row["hotels"]),
		Guides:              SplitList(row["guides"]),
		Guide:               row["guide"],
		TransportType:       transport,
		ForeignTourOperator: row["foreign_tour_operator"],
		ManagerEmail:        row.First("manager_email", "agent_email"),
		ManagerName:         row.First("manager_name", "agent_name"),
	}
}

// RunTourFileImport upserts every row keyed on file_code. Failed rows are
// collected, never fatal: the batch always completes and reports per-row
// errors alongside the imported count.
func RunTourFileImport(db *sql.DB, rows []SheetRow) ImportResult {
	result := ImportResult{BatchID: uuid.NewString()}

	for i, raw := range rows {
		row := DecodeTourFileRow(raw, i)

		manager, err := ResolveManager(db, row.ManagerEmail, row.ManagerName)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		if manager == nil {
			ref := row.ManagerEmail
			if ref == "" {
				ref = row.ManagerName
			}
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: "Manager not found: " + ref})
			continue
		}

		citiesJSON, _ := json.Marshal(row.Cities)
		hotelsJSON, _ := json.Marshal(row.Hotels)
		guidesJSON, _ := json.Marshal(row.Guides)

		_, err = db.Exec(`
			INSERT INTO tour_files (
				file_code, tour_name, client_name, client_country, pax,
				start_date, end_date, status, invoice_status, pnr,
				revenue, room_nights, manager_id, year, month,
				cities, hotels, guides, guide, transport_type,
				agent_name, foreign_tour_operator
			) VALUES (
				$1, $2, '', $3, $4,
				$5, $6, $7, $8, $9,
				$10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19,
				$20, $21
			)
			ON CONFLICT (file_code) DO UPDATE SET
				tour_name = EXCLUDED.tour_name,
				client_name = EXCLUDED.client_name,
				client_country = EXCLUDED.client_country,
				pax = EXCLUDED.pax,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				status = EXCLUDED.status,
				invoice_status = EXCLUDED.invoice_status,
				pnr = EXCLUDED.pnr,
				revenue = EXCLUDED.revenue,
				room_nights = EXCLUDED.room_nights,
				manager_id = EXCLUDED.manager_id,
				year = EXCLUDED.year,
				month = EXCLUDED.month,
				cities = EXCLUDED.cities,
				hotels = EXCLUDED.hotels,
				guides = EXCLUDED.guides,
				guide = EXCLUDED.guide,
				transport_type = EXCLUDED.transport_type,
				agent_name = EXCLUDED.agent_name,
				foreign_tour_operator = EXCLUDED.foreign_tour_operator`,
			row.FileCode, row.TourName, row.ClientCountry, row.Pax,
			row.StartDate, row.EndDate, row.Status, row.InvoiceStatus, row.PNR,
			row.Revenue, row.RoomNights, manager.ID, row.StartDate.Year(), int(row.StartDate.Month()),
			string(citiesJSON), string(hotelsJSON), string(guidesJSON), row.Guide, row.TransportType,
			manager.Name, row.ForeignTourOperator,
		)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	api.LogInfo("tour file import batch %s: %d imported, %d errors", result.BatchID, result.Imported, len(result.Errors))
	return result
}
