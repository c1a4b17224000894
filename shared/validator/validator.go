package validator

import (
	"encoding/json"
	"errors"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *val.Validate

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// Checker is implemented by request types with rules that span several fields.
type Checker interface {
	Validate() error
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)
	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int64(maxSizeMB * bytesConversion * bytesConversion)

	return file.Size <= maxSizeBytes
}

func registerMinTrimValidation(field val.FieldLevel) bool {
	minLength, err := strconv.Atoi(field.Param())
	if err != nil {
		return false
	}

	return len([]rune(strings.TrimSpace(field.Field().String()))) >= minLength
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	rules := map[string]val.Func{
		"notblank":    validators.NotBlank,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"mintrim":     registerMinTrimValidation,
		"emailaddr": func(fl val.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		},
		"objectid": func(fl val.FieldLevel) bool {
			return IsObjectID(fl.Field().String())
		},
		"isodate": func(fl val.FieldLevel) bool {
			_, err := timezone.ParseDate(strings.TrimSpace(fl.Field().String()))

			return err == nil
		},
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// IsObjectID reports whether id is a 24 character hexadecimal identifier.
func IsObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// IsEmail reports whether email looks like local@domain.tld.
func IsEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// An empty body is validated as an empty object.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	err := decoder.Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return decodeFailure(reflect.TypeOf(data).Elem(), err)
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(reflect.TypeOf(data).Elem(), err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	if checker, ok := any(data).(Checker); ok {
		if err = checker.Validate(); err != nil {
			return failure.BadRequest(err) //nolint:wrapcheck
		}
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(nil, err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func decodeFailure(typ reflect.Type, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return failure.BadRequestFromString(typeMessage(typ, typeErr.Field, typeErr.Type.Kind().String())) //nolint:wrapcheck
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return failure.BadRequestFromString("Request body too large") //nolint:wrapcheck
	}

	return failure.BadRequestFromString("Invalid JSON payload") //nolint:wrapcheck
}
