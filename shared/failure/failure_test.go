package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type duplicateNumber struct{}

func (duplicateNumber) Error() string { return "E11000 duplicate key error" }

func (duplicateNumber) Failure() *failure.Failure {
	return failure.New(http.StatusBadRequest, "Room number 101 already exists")
}

type unclassified struct{}

func (unclassified) Error() string { return "driver error" }

func (unclassified) Failure() *failure.Failure { return nil }

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("Invalid email")), code: http.StatusBadRequest, message: "Invalid email"},
		{name: "bad request from string", err: failure.BadRequestFromString("Invalid dates"), code: http.StatusBadRequest, message: "Invalid dates"},
		{name: "internal", err: failure.InternalError(errors.New("connection refused")), code: http.StatusInternalServerError, message: "connection refused"},
		{name: "not found", err: failure.NotFound("Room not found"), code: http.StatusNotFound, message: "Room not found"},
		{name: "conflict", err: failure.Conflict("Email a@b.com already exists"), code: http.StatusBadRequest, message: "Email a@b.com already exists"},
		{name: "unavailable", err: failure.ServiceUnavailable("Storage disabled"), code: http.StatusServiceUnavailable, message: "Storage disabled"},
		{name: "invalid id", err: failure.InvalidIDFormat, code: http.StatusBadRequest, message: "Invalid ID format"},
		{name: "invalid page", err: failure.InvalidPageParam, code: http.StatusBadRequest, message: "Page must be a positive number"},
		{name: "invalid limit", err: failure.InvalidLimitParam, code: http.StatusBadRequest, message: "Limit must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Error())
		})
	}
}

func TestConstructors_NilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "failure", err: failure.NotFound("Guest not found"), code: http.StatusNotFound, message: "Guest not found"},
		{name: "wrapped failure", err: fmt.Errorf("get guest: %w", failure.NotFound("Guest not found")), code: http.StatusNotFound, message: "Guest not found"},
		{name: "classifier", err: fmt.Errorf("insert room: %w", duplicateNumber{}), code: http.StatusBadRequest, message: "Room number 101 already exists"},
		{name: "classifier without failure", err: unclassified{}, code: http.StatusInternalServerError, message: failure.MessageInternalServerError},
		{name: "plain error", err: errors.New("connection reset"), code: http.StatusInternalServerError, message: failure.MessageInternalServerError},
		{name: "nil", err: nil, code: http.StatusInternalServerError, message: failure.MessageInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := failure.Classify(tt.err)

			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Message)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}
