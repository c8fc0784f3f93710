package imports

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email"})
}

func TestResolveManagerByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("Ketan@travelcrm.example", "").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "ketan@travelcrm.example"))

	m, err := ResolveManager(db, "Ketan@travelcrm.example", "")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "u1", m.ID)
	assert.Equal(t, "Ketan Gupta", m.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("", "Ketan Gupta").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "ketan@travelcrm.example"))

	m, err := ResolveManager(db, "", "Ketan Gupta")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "u1", m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerByEmailPrefix(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Exact match misses, prefix retry hits.
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ketan@agency.example", "").
		WillReturnRows(managerRows())
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ketan").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "ketan@travelcrm.example"))

	m, err := ResolveManager(db, "ketan@agency.example", "")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "u1", m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerPrefixMatchIsCaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The stored email is uppercased; the retry lowers both sides.
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("Ketan@agency.example", "").
		WillReturnRows(managerRows())
	mock.ExpectQuery(`LOWER\(email\) LIKE`).
		WithArgs("ketan").
		WillReturnRows(managerRows().AddRow("u1", "Ketan Gupta", "KETAN@travelcrm.example"))

	m, err := ResolveManager(db, "Ketan@agency.example", "")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "u1", m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ghost@nowhere.example", "").
		WillReturnRows(managerRows())
	mock.ExpectQuery(`SELECT id, name, email FROM users`).
		WithArgs("ghost").
		WillReturnRows(managerRows())

	m, err := ResolveManager(db, "ghost@nowhere.example", "")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerEmptyInputsSkipStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m, err := ResolveManager(db, "", "")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}
