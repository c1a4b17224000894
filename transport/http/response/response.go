package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// debug exposes error details to clients. Only enabled in development.
var debug atomic.Bool

type Body struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Pagination *gDto.Pagination `json:"pagination,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type Data[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

type List[T any] struct {
	Success    bool             `json:"success"    example:"true"`
	Data       []T              `json:"data"`
	Pagination *gDto.Pagination `json:"pagination"`
}

type Deleted[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type Error struct {
	Success bool   `json:"success"         example:"false"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// WithJSON sends a successful response containing data
func WithJSON(writer http.ResponseWriter, code int, data any) {
	response(writer, code, Body{Success: true, Data: data})
}

// WithList sends one page of a listing with its pagination block
func WithList(writer http.ResponseWriter, data any, pagination *gDto.Pagination) {
	response(writer, http.StatusOK, Body{Success: true, Data: data, Pagination: pagination})
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Body{Success: code < http.StatusBadRequest, Message: message})
}

func WithMessageAndData(writer http.ResponseWriter, code int, message string, data any) {
	response(writer, code, Body{Success: true, Message: message, Data: data})
}

// WithError sends the client-facing form of err
func WithError(writer http.ResponseWriter, err error) {
	fail := failure.Classify(err)

	body := Body{Message: fail.Message}
	if debug.Load() && err != nil && fail.Code >= http.StatusInternalServerError {
		body.Error = fmt.Sprintf("%+v", err)
	}

	response(writer, fail.Code, body)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithRouteNotFound answers a path no route matched.
func WithRouteNotFound(writer http.ResponseWriter, path string) {
	WithMessage(writer, http.StatusNotFound, fmt.Sprintf("Route %s not found", path))
}

func WithRaw(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
