package task

import "taskdesk/internal/platform/db"

func NewStore(database *db.Database) StoreAPI {
	if database.Driver == db.DriverPostgres {
		return NewPGStore(database.Pool)
	}
	return NewSQLiteStore(database.SQL)
}
