package imports

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHotelRowStarRating(t *testing.T) {
	// Absent cells decode to zero; defaulting happens only on insert so
	// updates can tell "not given" from a real value.
	decoded := DecodeHotelRow(SheetRow{"name": "Taj Palace", "city": "Delhi"})
	assert.Equal(t, 0, decoded.StarRating)

	decoded = DecodeHotelRow(SheetRow{"name": "Leela", "city": "Mumbai", "star_rating": "5"})
	assert.Equal(t, 5, decoded.StarRating)
}

func TestRunHotelImportInsertAndUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// New hotel inserts.
	mock.ExpectQuery(`SELECT id FROM hotels`).
		WithArgs("Taj Palace", "Delhi").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO hotels`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Known hotel updates in place.
	mock.ExpectQuery(`SELECT id FROM hotels`).
		WithArgs("Leela", "Mumbai").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("h1"))
	mock.ExpectExec(`UPDATE hotels`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := RunHotelImport(db, []SheetRow{
		{"name": "Taj Palace", "city": "Delhi", "star_rating": "5"},
		{"name": "Leela", "city": "Mumbai", "rating": "4.5"},
	})

	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunHotelImportKeepsStarRatingOnBlankCell(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM hotels`).
		WithArgs("Taj Palace", "Delhi").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("h1"))
	// Zero star rating reaches the update, whose CASE keeps the stored value.
	mock.ExpectExec(`UPDATE hotels`).
		WithArgs("", "", "", "", 4.5, 0, "h1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// A fresh hotel without a star cell still inserts with the default 3.
	mock.ExpectQuery(`SELECT id FROM hotels`).
		WithArgs("Leela", "Mumbai").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO hotels`).
		WithArgs("Leela", "Mumbai", "", "", "", "", 0.0, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := RunHotelImport(db, []SheetRow{
		{"name": "Taj Palace", "city": "Delhi", "rating": "4.5"},
		{"name": "Leela", "city": "Mumbai"},
	})

	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunHotelImportMissingKeyColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := RunHotelImport(db, []SheetRow{{"city": "Delhi"}})

	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunGuideImportKeepsListsOnEmptyCells(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM guides`).
		WithArgs("Ravi Kumar", "9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g1"))
	// Empty language/expertise cells marshal to "[]", which the update
	// statement treats as "keep the stored value".
	mock.ExpectExec(`UPDATE guides`).
		WithArgs("Jaipur", "", "[]", "[]", 0.0, "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := RunGuideImport(db, []SheetRow{
		{"name": "Ravi Kumar", "phone": "9876543210", "city": "Jaipur"},
	})

	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
