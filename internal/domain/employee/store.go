package employee

import "taskdesk/internal/platform/db"

// NewStore picks the store implementation matching the connected backend.
func NewStore(database *db.Database) StoreAPI {
	if database.Driver == db.DriverPostgres {
		return NewPGStore(database.Pool)
	}
	return NewSQLiteStore(database.SQL)
}
