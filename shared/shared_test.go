package shared_test

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"reflect"
	"testing"
)

type updateFixture struct {
	Name      *string   `db:"name"`
	Price     *float64  `db:"price"`
	Amenities *[]string `db:"amenities"`
	Skipped   string    `db:"-"`
	NoTag     string
}

func TestTransformFields(t *testing.T) {
	name := "Deluxe"
	zero := 0.0
	amenities := []string{"wifi"}

	result := shared.TransformFields(updateFixture{
		Name:      &name,
		Price:     &zero,
		Amenities: &amenities,
		Skipped:   "x",
		NoTag:     "y",
	})

	if result["name"] != "Deluxe" {
		t.Errorf("expected name to be dereferenced, got %v", result["name"])
	}

	if result["price"] != 0.0 {
		t.Errorf("expected explicit zero price to be kept, got %v", result["price"])
	}

	if !reflect.DeepEqual(result["amenities"], []string{"wifi"}) {
		t.Errorf("expected amenities slice, got %v", result["amenities"])
	}

	if _, ok := result["-"]; ok {
		t.Error("expected dash tag to be skipped")
	}

	if _, ok := result[constant.FieldUpdatedAt]; !ok {
		t.Error("expected updated_at to be set")
	}

	if len(result) != 4 {
		t.Errorf("expected 4 fields, got %d: %v", len(result), result)
	}
}

func TestTransformFields_Pointer(t *testing.T) {
	result := shared.TransformFields(&updateFixture{})

	if len(result) != 1 {
		t.Errorf("expected only updated_at, got %v", result)
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc", "id", "rooms")

	if len(filter.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(filter.Filters))
	}

	f, ok := filter.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected dto.Filter, got %T", filter.Filters[0])
	}

	if f.Field != "id" || f.Value != "abc" || f.Operator != dto.FilterOperatorEq || f.Table != "rooms" {
		t.Errorf("unexpected filter %+v", f)
	}
}

func TestFilterByIDs(t *testing.T) {
	filter := shared.FilterByIDs([]string{"a", "b"}, "id", "")

	f := filter.Filters[0].(dto.Filter)
	if f.Operator != dto.FilterOperatorIn {
		t.Errorf("expected in operator, got %s", f.Operator)
	}
}

func TestFilterByOptional(t *testing.T) {
	if got := shared.FilterByOptional("status", "", ""); len(got.Filters) != 0 {
		t.Errorf("expected no filters for empty value, got %v", got.Filters)
	}

	if got := shared.FilterByOptional("status", "available", ""); len(got.Filters) != 1 {
		t.Errorf("expected one filter, got %v", got.Filters)
	}
}

func TestUnique(t *testing.T) {
	got := shared.Unique([]string{"a", "", "b", "a", "c", "b"})

	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected result %v", got)
	}
}
