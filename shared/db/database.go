package db

import (
	"database/sql"
)

// Database is a connection that can be opened once and closed.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
