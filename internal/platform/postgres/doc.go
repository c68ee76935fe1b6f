// Package postgres provides PostgreSQL implementations of the store
// interfaces using database/sql over the pgx stdlib driver. Driver errors
// are normalized through MapError so the rest of the application only deals
// with the store package's sentinel errors.
package postgres
