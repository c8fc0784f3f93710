package tourfile

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveManagerIDExplicitWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id, err := resolveManagerID(db, "u42", "Someone Else", "Agent Name")
	require.NoError(t, err)
	assert.Equal(t, "u42", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerIDByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users WHERE name`).
		WithArgs("Ketan Gupta").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))

	id, err := resolveManagerID(db, "", "Ketan Gupta", "")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerIDAgentNameFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users WHERE name`).
		WithArgs("Ketan Gupta").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE name`).
		WithArgs("Priya Shah").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u2"))

	id, err := resolveManagerID(db, "", "Ketan Gupta", "Priya Shah")
	require.NoError(t, err)
	assert.Equal(t, "u2", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerIDFirstAdminFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users WHERE is_admin`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("admin1"))

	id, err := resolveManagerID(db, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "admin1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveManagerIDNoUsersAtAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users WHERE is_admin`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, err := resolveManagerID(db, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAsJSON(t *testing.T) {
	assert.Equal(t, "[]", listAsJSON(nil))
	assert.Equal(t, "[]", listAsJSON(""))
	assert.Equal(t, `["Delhi","Agra"]`, listAsJSON([]interface{}{"Delhi", "Agra"}))
	assert.Equal(t, `["Delhi"]`, listAsJSON(`["Delhi"]`))
}
