package imports

import (
	"database/sql"
	"encoding/json"

	"TravelCrmSaas/api"

	"github.com/google/uuid"
)

// GuideRow is the typed form of one guide sheet row.
type GuideRow struct {
	Name      string
	Phone     string
	City      string
	Email     string
	Languages []string
	Expertise []string
	Rating    float64
}

func DecodeGuideRow(row SheetRow) GuideRow {
	return GuideRow{
		Name:      row["name"],
		Phone:     row["phone"],
		City:      row["city"],
		Email:     row["email"],
		Languages: SplitList(row["languages"]),
		Expertise: SplitList(row["expertise"]),
		Rating:    ParseFloatCell(row["rating"]),
	}
}

// RunGuideImport matches on name+phone. On update, empty list cells keep
// the stored languages/expertise instead of wiping them.
func RunGuideImport(db *sql.DB, rows []SheetRow) ImportResult {
	result := ImportResult{BatchID: uuid.NewString()}

	for i, raw := range rows {
		row := DecodeGuideRow(raw)
		if row.Name == "" || row.Phone == "" {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: "name and phone are required"})
			continue
		}

		languagesJSON, _ := json.Marshal(row.Languages)
		expertiseJSON, _ := json.Marshal(row.Expertise)

		var existingID string
		err := db.QueryRow(`SELECT id FROM guides WHERE name = $1 AND phone = $2 LIMIT 1`, row.Name, row.Phone).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}

		if existingID != "" {
			_, err = db.Exec(`
				UPDATE guides SET
					city = COALESCE(NULLIF($1, ''), city),
					email = COALESCE(NULLIF($2, ''), email),
					languages = CASE WHEN $3 <> '[]' THEN $3 ELSE languages END,
					expertise = CASE WHEN $4 <> '[]' THEN $4 ELSE expertise END,
					rating = CASE WHEN $5::float8 > 0 THEN $5 ELSE rating END
				WHERE id = $6`,
				row.City, row.Email, string(languagesJSON), string(expertiseJSON), row.Rating, existingID,
			)
		} else {
			_, err = db.Exec(`
				INSERT INTO guides (name, phone, city, email, languages, expertise, rating, is_active)
				VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, TRUE)`,
				row.Name, row.Phone, row.City, row.Email, string(languagesJSON), string(expertiseJSON), row.Rating,
			)
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	api.LogInfo("guide import batch %s: %d processed, %d errors", result.BatchID, result.Imported, len(result.Errors))
	return result
}
