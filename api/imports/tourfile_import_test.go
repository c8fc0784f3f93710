package imports

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTourFileRowDefaults(t *testing.T) {
	row := SheetRow{
		"tour_name":  "Golden Triangle",
		"pax":        "4",
		"start_date": "2025-10-01",
		"end_date":   "2025-10-08",
		"status":     "up-coming",
		"cities":     "Delhi, Agra ,Jaipur",
		"revenue":    "1,50,000",
	}
	decoded := DecodeTourFileRow(row, 3)

	assert.NotEmpty(t, decoded.FileCode, "missing file code must be generated")
	assert.Contains(t, decoded.FileCode, "TF")
	assert.Equal(t, "India", decoded.ClientCountry)
	assert.Equal(t, "Car", decoded.TransportType)
	assert.Equal(t, "UP_COMING", decoded.Status)
	assert.Equal(t, "YET_TO_RAISE", decoded.InvoiceStatus)
	assert.Equal(t, []string{"Delhi", "Agra", "Jaipur"}, decoded.Cities)
	assert.Equal(t, "150000", decoded.Revenue)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), decoded.StartDate)
}

func TestDecodeTourFileRowFileStatusAlias(t *testing.T) {
	decoded := DecodeTourFileRow(SheetRow{"file_status": "completed"}, 0)
	assert.Equal(t, "COMPLETED", decoded.Status)
}

func TestRunTourFileImportMixedBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := []SheetRow{
		{"file_code": "TF001", "tour_name": "Golden Triangle", "manager_email": "ketan@travelcrm.example", "start_date": "2025-10-01", "pax": "4"},
		{"file_code": "TF002", "tour_name": "Orphan Tour", "manager_email": "ghost@nowhere.example"},
		{"file_code": "TF003", "tour_name": "Kerala Backwaters", "manager_name": "Priya Shah", "start_date": "2025-11-05", "pax": "2"},
	}

	// Row 1 resolves on the exact email match and upserts.
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ketan@travelcrm.example", "").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "ketan@travelcrm.example"))
	mock.ExpectExec(`INSERT INTO tour_files`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Row 2 misses on both lookups.
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ghost@nowhere.example", "").
		WillReturnRows(managerRows())
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ghost").
		WillReturnRows(managerRows())

	// Row 3 resolves by name.
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("", "Priya Shah").
		WillReturnRows(managerRows().AddRow("u2", "Priya Shah", "priya@travelcrm.example"))
	mock.ExpectExec(`INSERT INTO tour_files`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := RunTourFileImport(db, rows)

	assert.Equal(t, 2, result.Imported)
	assert.NotEmpty(t, result.BatchID)
	require.Len(t, result.Errors, 1)
	// Sheet rows are 1-based with a header, so data row index 1 is sheet row 3.
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "Manager not found: ghost@nowhere.example")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTourFileImportUpsertFailureIsRowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ketan@travelcrm.example", "").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "ketan@travelcrm.example"))
	mock.ExpectExec(`INSERT INTO tour_files`).
		WillReturnError(assert.AnError)

	result := RunTourFileImport(db, []SheetRow{
		{"file_code": "TF001", "manager_email": "ketan@travelcrm.example"},
	})

	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.NoError(t, mock.ExpectationsWereMet())
}
