// Package handler is the first entry point for business logic after
// the router.
//
// It parses requests, handles input validation using the validation
// package, and calls the appropriate service layer. It acts as the
// interface between the HTTP request and the core business logic.
package handler

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance request types use in their
// Validate methods. validator.Validate is safe for concurrent use.
var validate = validator.New()
