package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/vaccine-tracker/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foreignKeyRegex = regexp.MustCompile(`^(?:[a-z0-9]+_)*?([a-z0-9]+_id)_fkey$`)

// ErrCode reports the Code of err, or Other when err is not a *Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates application error codes of the form <DOMAIN>_<ACTION>.
//
//	patient_id + ForeignKeyViolation => PATIENT_NOT_FOUND
//	type_dose + NotNullViolation     => DOSE_REQUIRED
func generateErrorCode(entityName string, errType Code) string {
	if entityName == "" {
		entityName = "record"
	}

	domain := errs.MakeUpperCaseWithUnderscores(entityName)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case NotNullViolation:
		action = "REQUIRED"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for sqlErr.
func formatUserFriendlyMessage(sqlErr *Error, entityName string) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
// A column like "patient_id" wins over the table name, since for
// foreign keys it names the referenced entity.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
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

// humanizeText converts snake_case into Title Case.
//
//	"last_name" -> "Last Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForForeignKeyViolation infers the referencing column from a
// Postgres-generated foreign key constraint name.
//
//	vaccines_patient_id_fkey -> "patient_id"
func extractColumnForForeignKeyViolation(tableName, constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if tableName != "" && strings.HasPrefix(constraintName, tableName+"_") {
		column := strings.TrimSuffix(strings.TrimPrefix(constraintName, tableName+"_"), "_fkey")
		if column != constraintName {
			return column
		}
	}

	matches := foreignKeyRegex.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError is returned unchanged.
//   - *pgconn.PgError foreign key, not-null and malformed-input errors
//     become 400s; anything else a 500.
//   - ErrNoRows becomes a 404.
//   - Everything else becomes a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		columnName := sqlErr.ColumnName
		if sqlErr.Code == ForeignKeyViolation && columnName == "" {
			columnName = extractColumnForForeignKeyViolation(sqlErr.TableName, sqlErr.ConstraintName)
		}

		entityName := getEntityName(sqlErr.TableName, "")
		if sqlErr.Code == ForeignKeyViolation {
			entityName = getEntityName(sqlErr.TableName, columnName)
		}

		errorCode := generateErrorCode(entityName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entityName)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case InvalidTextRepresent, NumericOutOfRange:
			return errs.NewBadRequestError("One or more values are malformed or out of range", true, nil, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
