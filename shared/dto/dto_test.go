package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"net/http"
	"net/url"
	"testing"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		expected    dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":   "2",
				"limit":  "20",
				"status": "available",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, Status: "available"},
		},
		{
			name:        "with no parameters",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "with invalid page parameter",
			queryParams: map[string]string{"page": "invalid"},
			expected:    dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "with limit above maximum",
			queryParams: map[string]string{"limit": "500"},
			expected:    dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "sort parameters are ignored",
			queryParams: map[string]string{"sort_by": "price; DROP TABLE rooms", "sort_dir": "ASC"},
			expected:    dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/api/rooms")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req)

			if *queryParams != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *queryParams)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	if got := (dto.QueryParams{Page: 3, Limit: 2}).Offset(); got != 4 {
		t.Errorf("expected offset 4, got %d", got)
	}

	if got := (dto.QueryParams{Page: 0, Limit: 10}).Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 5, limit: 2, expected: 3},
		{total: 4, limit: 2, expected: 2},
		{total: 0, limit: 10, expected: 0},
		{total: 10, limit: 0, expected: 0},
		{total: 1, limit: 100, expected: 1},
	}

	for _, tt := range tests {
		if got := dto.TotalPages(tt.total, tt.limit); got != tt.expected {
			t.Errorf("TotalPages(%d, %d) = %d, expected %d", tt.total, tt.limit, got, tt.expected)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := dto.NewPagination(5, dto.QueryParams{Page: 2, Limit: 2})

	if p.Total != 5 || p.Page != 2 || p.Limit != 2 || p.Pages != 3 {
		t.Errorf("unexpected pagination %+v", p)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn, Table: "bookings"},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(status = :status AND bookings.id IN (:id_0, :id_1) )"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if args["status"] != "pending" || args["id_0"] != "a" || args["id_1"] != "b" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_GetWhereClause_Composition(t *testing.T) {
	tests := []struct {
		name     string
		group    dto.FilterGroup
		expected string
	}{
		{
			name: "operator defaults to AND",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "type", Value: "suite", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "price", Value: 100, Operator: dto.FilterOperatorLessEq},
			}},
			expected: "(type = :type AND price <= :price)",
		},
		{
			name: "empty nested group is skipped",
			group: dto.FilterGroup{Filters: []any{
				dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
				dto.Filter{Field: "image", Operator: dto.FilterIsNull},
			}},
			expected: "(image IS NULL)",
		},
		{
			name: "nested OR group",
			group: dto.FilterGroup{Filters: []any{
				dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{
					dto.Filter{Field: "status", ArgName: "s1", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "status", ArgName: "s2", Value: "confirmed", Operator: dto.FilterOperatorEq},
				}},
			}},
			expected: "((status = :s1 OR status = :s2))",
		},
		{
			name: "empty IN matches nothing",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			}},
			expected: "(1 = 0)",
		},
		{
			name: "unknown operator renders nothing",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "id", Value: "x", Operator: "between"},
			}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, _ := tt.group.GetWhereClause()
			if where != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, where)
			}
		})
	}
}
