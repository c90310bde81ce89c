package middleware

import (
	"mime"
	"net/http"

	apperrors "classbook/pkg/errors"
	httputil "classbook/pkg/http"
	"classbook/pkg/logger"
)

const jsonMediaType = "application/json"

var methodsWithBody = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// ContentTypeValidation rejects bodies that are not declared as JSON with 415.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !methodsWithBody[r.Method] {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Content-Type")
			if mediaType, _, err := mime.ParseMediaType(header); err != nil || mediaType != jsonMediaType {
				log.Warn("Rejected request body media type",
					"request_id", RequestIDFromContext(r.Context()),
					"content_type", header,
					"route", r.Method+" "+r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.UnsupportedMediaType("Content-Type must be application/json"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
