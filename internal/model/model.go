// Package model defines the plain data structures exchanged between
// the repository, service, and handler layers.
//
// These are framework-free types: no request/response wrappers, no
// driver-specific fields. Prices are fixed-point decimals so currency
// never travels as binary floating point.
package model
