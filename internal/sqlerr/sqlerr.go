// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes and constraint metadata from pgx/pgconn
// errors and converts them into the application's error taxonomy:
// a unique violation becomes a conflict, a foreign key violation a
// not-found, a not-null or check violation a validation error.
package sqlerr
