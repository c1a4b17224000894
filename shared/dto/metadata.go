package dto

import "math"

// Pagination describes one window of a listing.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPagination(total int, params QueryParams) *Pagination {
	return &Pagination{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Pages: TotalPages(total, params.Limit),
	}
}

// TotalPages is ceil(total/limit); an empty collection has zero pages.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}
