package middleware

import (
	"net/http"
	"strconv"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// ValidateID rejects routes whose {id} is not a 24 character hex identifier.
func ValidateID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validator.IsObjectID(chi.URLParam(r, constant.RequestParamID)) {
			response.WithError(w, failure.InvalidIDFormat)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func ValidatePagination(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if raw := query.Get(constant.RequestParamPage); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				response.WithError(w, failure.InvalidPageParam)

				return
			}
		}

		if raw := query.Get(constant.RequestParamLimit); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 1 || limit > constant.MaxValueLimit {
				response.WithError(w, failure.InvalidLimitParam)

				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
