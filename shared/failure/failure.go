// Package failure carries client-facing errors: an HTTP status code and the message the
// API puts in its error envelope.
package failure

import (
	"errors"
	"net/http"
)

const MessageInternalServerError = "Internal Server Error"

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidIDFormat   = New(http.StatusBadRequest, "Invalid ID format")
	InvalidPageParam  = New(http.StatusBadRequest, "Page must be a positive number")
	InvalidLimitParam = New(http.StatusBadRequest, "Limit must be between 1 and 100")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest turns err into a 400 carrying err's text. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// InternalError turns err into a 500. The message is only shown to clients in development.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

func NotFound(message string) error {
	return New(http.StatusNotFound, message)
}

// Conflict reports a uniqueness violation. The API answers these with 400, not 409.
func Conflict(message string) error {
	return New(http.StatusBadRequest, message)
}

func ServiceUnavailable(msg string) error {
	return New(http.StatusServiceUnavailable, msg)
}

// Classifier is implemented by errors that know how they should be reported to a client.
type Classifier interface {
	Failure() *Failure
}

// Classify maps any error onto the Failure sent to the client. Anything unrecognised,
// nil included, becomes a generic internal error.
func Classify(err error) *Failure {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail
	}

	var classifier Classifier
	if errors.As(err, &classifier) {
		if f := classifier.Failure(); f != nil {
			return f
		}
	}

	return New(http.StatusInternalServerError, MessageInternalServerError)
}

func GetCode(err error) int {
	return Classify(err).Code
}
