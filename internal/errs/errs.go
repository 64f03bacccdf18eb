// Package errs defines the application's error taxonomy.
//
// Every failure surfaced by the data-access and service layers is one
// of a small closed set of kinds (connection, validation, auth,
// not found, conflict, internal). The taxonomy carries a machine
// readable code and optional field-level details, but deliberately no
// transport status: translating kinds into HTTP responses is the
// routing layer's job (see internal/middleware).
package errs
