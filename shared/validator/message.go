package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const messageTag = "message"

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"notblank":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"gt":          "{field} must be greater than {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"mintrim":     "{field} must be at least {param} characters",
		"emailaddr":   "Please provide a valid email address",
		"objectid":    "Invalid {field} format",
		"isodate":     "Invalid {field} date format. Use YYYY-MM-DD",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

// message turns validation errors into one client message. Missing fields are reported
// together, blank strings included; otherwise the first failing rule wins. A `message` struct tag overrides the
// text for every rule of that field except presence.
func message(typ reflect.Type, err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	missing := []string{}
	first := ""

	for _, valErr := range valErrors {
		override := fieldTag(typ, valErr.StructField(), messageTag)
		field := valErr.Field()

		if field == "" {
			field = "value"
		}

		if valErr.Tag() == "required" || valErr.Tag() == "notblank" {
			missing = append(missing, field)

			continue
		}

		if first != "" {
			continue
		}

		if override != "" {
			first = override

			continue
		}

		first = valErr.Error()

		if errStr := messages[valErr.Tag()]; errStr != "" {
			errStr = strings.ReplaceAll(errStr, "{field}", field)
			errStr = strings.ReplaceAll(errStr, "{param}", strings.ReplaceAll(valErr.Param(), " ", ", "))
			first = errStr
		}
	}

	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}

	return first
}

// typeMessage reports a JSON value of the wrong type for the field named by its json key.
func typeMessage(typ reflect.Type, jsonField, expected string) string {
	if typ != nil && typ.Kind() == reflect.Struct {
		for i := range typ.NumField() {
			field := typ.Field(i)
			if jsonName(field) != jsonField {
				continue
			}

			if msg := field.Tag.Get(messageTag); msg != "" {
				return msg
			}
		}
	}

	return fmt.Sprintf("%s must be a valid %s", jsonField, expected)
}

func fieldTag(typ reflect.Type, name, tag string) string {
	if typ == nil || typ.Kind() != reflect.Struct {
		return ""
	}

	field, ok := typ.FieldByName(name)
	if !ok {
		return ""
	}

	return field.Tag.Get(tag)
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]

	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}
