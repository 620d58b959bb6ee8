package middleware

import (
	"net/http"
	"strings"
)

// SuppressWellKnown глушит пробы браузера по /.well-known/ голым 404,
// не доводя их до роутера.
func SuppressWellKnown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/.well-known/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
