package imports

import (
	"database/sql"
	"strings"
)

// Manager is the resolved owner of an imported row.
type Manager struct {
	ID    string
	Name  string
	Email string
}

// ResolveManager finds the user a row belongs to. Exact matches first:
// email (case-insensitive) or name. If that misses and an email was given,
// retry on the prefix before the "@", so "ketan@agency.example" still finds
// the user registered as "ketan@travelcrm.example". A nil Manager with nil
// error means no match.
func ResolveManager(db *sql.DB, email, name string) (*Manager, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" && name == "" {
		return nil, nil
	}

	var m Manager
	err := db.QueryRow(`
		SELECT id, name, email FROM users
		WHERE (LOWER(email) = LOWER($1) AND $1 <> '') OR (name = $2 AND $2 <> '')
		LIMIT 1`,
		email, name,
	).Scan(&m.ID, &m.Name, &m.Email)
	if err == nil {
		return &m, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	if email != "" {
		prefix := strings.SplitN(email, "@", 2)[0]
		err = db.QueryRow(`
			SELECT id, name, email FROM users
			WHERE LOWER(email) LIKE $1 || '%'
			LIMIT 1`,
			strings.ToLower(prefix),
		).Scan(&m.ID, &m.Name, &m.Email)
		if err == nil {
			return &m, nil
		}
		if err != sql.ErrNoRows {
			return nil, err
		}
	}
	return nil, nil
}
