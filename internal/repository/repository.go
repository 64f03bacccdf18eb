// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Multi-statement writes run inside a transaction via pgx.BeginFunc so
// a failure on any statement rolls back the whole operation. Driver
// errors are normalized through sqlerr before crossing the package
// boundary.
package repository
