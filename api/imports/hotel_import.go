package imports

import (
	"database/sql"

	"TravelCrmSaas/api"

	"github.com/google/uuid"
)

// HotelRow is the typed form of one hotel sheet row.
type HotelRow struct {
	Name       string
	City       string
	State      string
	Address    string
	Phone      string
	Email      string
	Rating     float64
	StarRating int
}

func DecodeHotelRow(row SheetRow) HotelRow {
	return HotelRow{
		Name:       row["name"],
		City:       row["city"],
		State:      row["state"],
		Address:    row["address"],
		Phone:      row["phone"],
		Email:      row["email"],
		Rating:     ParseFloatCell(row["rating"]),
		StarRating: ParseIntCell(row["star_rating"]),
	}
}

// RunHotelImport matches on name+city: existing hotels are updated in place
// with non-empty cells only (blank cells keep the stored value), new ones
// are inserted.
func RunHotelImport(db *sql.DB, rows []SheetRow) ImportResult {
	result := ImportResult{BatchID: uuid.NewString()}

	for i, raw := range rows {
		row := DecodeHotelRow(raw)
		if row.Name == "" || row.City == "" {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: "name and city are required"})
			continue
		}

		var existingID string
		err := db.QueryRow(`SELECT id FROM hotels WHERE name = $1 AND city = $2 LIMIT 1`, row.Name, row.City).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}

		if existingID != "" {
			_, err = db.Exec(`
				UPDATE hotels SET
					state = COALESCE(NULLIF($1, ''), state),
					address = COALESCE(NULLIF($2, ''), address),
					phone = COALESCE(NULLIF($3, ''), phone),
					email = COALESCE(NULLIF($4, ''), email),
					rating = CASE WHEN $5::float8 > 0 THEN $5 ELSE rating END,
					star_rating = CASE WHEN $6 > 0 THEN $6 ELSE star_rating END
				WHERE id = $7`,
				row.State, row.Address, row.Phone, row.Email, row.Rating, row.StarRating, existingID,
			)
		} else {
			star := row.StarRating
			if star == 0 {
				star = 3
			}
			_, err = db.Exec(`
				INSERT INTO hotels (name, city, state, address, phone, email, rating, star_rating, is_active)
				VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, TRUE)`,
				row.Name, row.City, row.State, row.Address, row.Phone, row.Email, row.Rating, star,
			)
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	api.LogInfo("hotel import batch %s: %d processed, %d errors", result.BatchID, result.Imported, len(result.Errors))
	return result
}
