package db

import "context"

// DBType selects which storage engine the server runs against.
type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the lifecycle contract both engines satisfy. Repositories take the
// concrete connection; main only needs connect and disconnect.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
