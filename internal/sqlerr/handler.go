package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forkpoint/forkpoint-service/internal/errs"
)

// generateErrorCode creates consistent machine codes from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	users + UniqueViolation => USER_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := errs.CodeFor(tableName)
	// Naive singularization: "USERS" -> "USER". Good enough for this
	// schema's table names.
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// getEntityName infers a human entity name from table/column metadata.
// A column like "user_id" beats the table name because it identifies
// the referenced entity on foreign key violations.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}
	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}
	return "record"
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "menu_item" -> "Menu Item".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column name from a unique
// constraint named either "unique_<table>_<column>" or
// "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}
	if matches := uniqueConstraintRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// isConnectionError reports whether err is a transport-level failure:
// the server could not be reached, the dial failed, or the connection
// attempt timed out. These never carry a SQLSTATE.
func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// HandleError converts a low-level database error into a taxonomy
// error.
//
// Output:
//   - *errs.Error inputs pass through unchanged (no double wrapping)
//   - dial/transport failures become connection errors
//   - unique violations become conflicts
//   - foreign key violations become not-founds
//   - not-null and check violations become validation errors
//   - pgx.ErrNoRows / sql.ErrNoRows become not-founds
//   - anything else becomes the generic internal error
//
// Repositories call this after any statement failure, after rolling
// back whatever transaction was open.
func HandleError(err error) error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	if isConnectionError(err) {
		return errs.Connection(err)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)

		switch sqlErr.Code {
		case UniqueViolation:
			entityName := getEntityName(sqlErr.TableName, "")
			message := fmt.Sprintf("a %s with this identifier already exists", strings.ToLower(entityName))
			if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
				message = strings.ReplaceAll(message, "identifier", strings.ToLower(humanizeText(column)))
			}
			return errs.Conflict(message).WithCode(errorCode)

		case ForeignKeyViolation:
			entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
			return errs.NotFoundf("the referenced %s does not exist", strings.ToLower(entityName)).WithCode(errorCode)

		case NotNullViolation:
			fieldName := strings.ToLower(sqlErr.ColumnName)
			return errs.Validation(
				fmt.Sprintf("the %s is required", humanizeText(sqlErr.ColumnName)),
				errs.FieldError{Field: fieldName, Error: "is required"},
			).WithCode(errorCode)

		case CheckViolation:
			if sqlErr.ColumnName != "" {
				return errs.Validation(fmt.Sprintf("the %s value does not meet required conditions", humanizeText(sqlErr.ColumnName))).WithCode(errorCode)
			}
			return errs.Validation("one or more values do not meet required conditions").WithCode(errorCode)

		default:
			return errs.Internal()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound("resource not found")
	}

	return errs.Internal()
}
