package dto

import (
	"hotel/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is the window of a listing. SortBy and SortDir are set by repositories,
// never from the request.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Status  string `json:"status"`
	SortBy  string `json:"-"`
	SortDir string `json:"-"`
}

// FromRequest populates QueryParams from the HTTP request.
// Pagination values are validated by middleware beforehand; anything missing or
// unparsable here falls back to the defaults page=1, limit=10.
func (q *QueryParams) FromRequest(r *http.Request) {
	queryParams := r.URL.Query()

	q.Page = constant.DefaultValuePage
	q.Limit = constant.DefaultValueLimit

	if page, err := strconv.Atoi(queryParams.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(queryParams.Get(constant.RequestParamLimit)); err == nil && limit > 0 && limit <= constant.MaxValueLimit {
		q.Limit = limit
	}

	q.Status = strings.TrimSpace(queryParams.Get(constant.RequestParamStatus))
}

// Offset is the number of records skipped before the window.
func (q QueryParams) Offset() int {
	if q.Page <= 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}
