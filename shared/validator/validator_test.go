package validator_test

import (
	"errors"
	"hotel/shared/validator"
	"strings"
	"testing"
)

type roomFixture struct {
	Number   string   `json:"number"   validate:"required,notblank"`
	Type     string   `json:"type"     validate:"required,oneof=single double" message:"Type must be one of: single, double"`
	Price    *float64 `json:"price"    validate:"required,gte=0"               message:"Price must be a positive number"`
	Capacity *int     `json:"capacity" validate:"required,gte=1"`
}

type guestFixture struct {
	Name  *string `json:"name"  validate:"omitnil,mintrim=2" message:"Name must be at least 2 characters"`
	Email *string `json:"email" validate:"omitnil,emailaddr"`
}

type stayFixture struct {
	From string `json:"from" validate:"required,isodate"`
	To   string `json:"to"   validate:"required,isodate"`
}

func (s *stayFixture) Validate() error {
	if s.To <= s.From {
		return errors.New("Check-out date must be after check-in date")
	}

	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		expected string
	}{
		{
			name:     "valid payload",
			jsonBody: `{"number":"101","type":"single","price":0,"capacity":1}`,
		},
		{
			name:     "missing fields are aggregated",
			jsonBody: `{"number":"  ","type":"single"}`,
			expected: "Missing required fields: number, price, capacity",
		},
		{
			name:     "empty body is an empty object",
			jsonBody: ``,
			expected: "Missing required fields: number, type, price, capacity",
		},
		{
			name:     "range violation uses field message",
			jsonBody: `{"number":"101","type":"single","price":-1,"capacity":1}`,
			expected: "Price must be a positive number",
		},
		{
			name:     "wrong json type uses field message",
			jsonBody: `{"number":"101","type":"single","price":"abc","capacity":1}`,
			expected: "Price must be a positive number",
		},
		{
			name:     "wrong json type without message",
			jsonBody: `{"number":"101","type":"single","price":1,"capacity":"two"}`,
			expected: "capacity must be a valid int",
		},
		{
			name:     "generic message with params",
			jsonBody: `{"number":"101","type":"single","price":1,"capacity":0}`,
			expected: "capacity must be greater than or equal to 1",
		},
		{
			name:     "enum violation",
			jsonBody: `{"number":"101","type":"suite","price":1,"capacity":1}`,
			expected: "Type must be one of: single, double",
		},
		{
			name:     "malformed JSON",
			jsonBody: `{"number":}`,
			expected: "Invalid JSON payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data roomFixture
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expected == "" {
				if err != nil {
					t.Errorf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected validation error %q, got nil", tt.expected)
			}

			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
		})
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		expected string
	}{
		{name: "nothing supplied", jsonBody: `{}`},
		{name: "short trimmed name", jsonBody: `{"name":"  a "}`, expected: "Name must be at least 2 characters"},
		{name: "bad email", jsonBody: `{"email":"a@b"}`, expected: "Please provide a valid email address"},
		{name: "good email", jsonBody: `{"email":"a@b.com","name":"Al"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestFixture
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expected == "" {
				if err != nil {
					t.Errorf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil || err.Error() != tt.expected {
				t.Errorf("expected %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestValidate_Checker(t *testing.T) {
	var data stayFixture

	err := validator.Validate(strings.NewReader(`{"from":"2025-01-03","to":"2025-01-01"}`), &data)
	if err == nil || err.Error() != "Check-out date must be after check-in date" {
		t.Errorf("expected ordering error, got %v", err)
	}

	err = validator.Validate(strings.NewReader(`{"from":"2025-13-45","to":"2025-01-01"}`), &data)
	if err == nil || err.Error() != "Invalid from date format. Use YYYY-MM-DD" {
		t.Errorf("expected date format error, got %v", err)
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid objectid", field: "507f1f77bcf86cd799439011", tag: "objectid"},
		{name: "short objectid", field: "507f1f77", tag: "objectid", expectError: true},
		{name: "valid oneof", field: "pending", tag: "oneof=pending confirmed"},
		{name: "invalid oneof", field: "invalid", tag: "oneof=pending confirmed", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestIsObjectID(t *testing.T) {
	if !validator.IsObjectID("64B7F0C2A1D3E4F5A6B7C8D9") {
		t.Error("expected upper case hex to be accepted")
	}

	if validator.IsObjectID("zzzzzzzzzzzzzzzzzzzzzzzz") {
		t.Error("expected non hex to be rejected")
	}
}
