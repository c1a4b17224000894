package shared

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
)

// TransformFields converts the fields of a struct into a map of updated fields.
// Nil pointers and zero values are treated as "not supplied" and left out; pointers are dereferenced.
func TransformFields(data any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func FilterByIDs(ids []string, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    ids,
				Operator: dto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// FilterByOptional narrows a listing to field = value when value is set.
func FilterByOptional(field, value, table string) dto.FilterGroup {
	filter := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	if value != "" {
		filter.Filters = append(filter.Filters, dto.Filter{
			Field:    field,
			Value:    value,
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return filter
}

// Unique returns values without duplicates or empty strings, keeping first-seen order.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

// PathID returns the {id} route parameter in the lower-case form identifiers are stored in.
func PathID(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, constant.RequestParamID)))
}
