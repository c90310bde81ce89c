package middleware

import (
	"net/http"

	apperrors "classbook/pkg/errors"
	httputil "classbook/pkg/http"
)

// MaxRequestSize rejects bodies whose declared length exceeds limit and caps
// the rest, so an undeclared oversized body fails during decoding.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.TooLarge(limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
