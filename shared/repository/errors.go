package repository

import (
	"errors"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"net/http"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrRequiredFilter = errors.New("required filter")

	// ErrInvalidID is returned when a primary key filter does not hold a well-formed identifier.
	ErrInvalidID = failure.InvalidIDFormat
)

const MessageValueTooLong = "Value is too long"

var mongoDupIndexPattern = regexp.MustCompile(`index: (\w+?)_-?1`)

// DuplicateKeyError reports a unique constraint violation on Field.
type DuplicateKeyError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s.%s: %v", e.Entity, e.Field, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

func (e *DuplicateKeyError) Failure() *failure.Failure {
	field := e.Field
	if field == "" {
		field = "Value"
	}

	return &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: strings.ToUpper(field[:1]) + field[1:] + " already exists",
	}
}

// ValidationError reports a record rejected by the storage schema.
type ValidationError struct {
	Entity  string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed validation: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Failure() *failure.Failure {
	return &failure.Failure{Code: http.StatusBadRequest, Message: e.Message}
}

// IsDuplicate reports whether err is a unique violation, returning the offending field.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field, true
	}

	return "", false
}

// checks maps CHECK constraint names onto client messages.
func translatePostgresError(entity, table string, checks map[string]string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		field := strings.TrimSuffix(strings.TrimPrefix(pqErr.Constraint, table+"_"), "_key")

		return &DuplicateKeyError{Entity: entity, Field: field, Err: err}
	case constant.PqErrorCodeCheckViolation:
		msg, ok := checks[pqErr.Constraint]
		if !ok {
			msg = "Validation failed: " + pqErr.Constraint
		}

		return &ValidationError{Entity: entity, Message: msg, Err: err}
	case constant.PqErrorCodeStringTooLong:
		return &ValidationError{Entity: entity, Message: MessageValueTooLong, Err: err}
	}

	return err
}

func translateMongoError(entity string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		field := ""
		if match := mongoDupIndexPattern.FindStringSubmatch(err.Error()); len(match) == 2 {
			field = match[1]
		}

		return &DuplicateKeyError{Entity: entity, Field: field, Err: err}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == constant.MongoErrorCodeValidation {
				return &ValidationError{Entity: entity, Message: "Document failed validation", Err: err}
			}
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == constant.MongoErrorCodeValidation {
		return &ValidationError{Entity: entity, Message: "Document failed validation", Err: err}
	}

	return err
}
