package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

const (
	allowOrigin  = "*"
	allowMethods = "GET, OPTIONS"
	allowHeaders = "Content-Type"
)

// CORS lets any origin call the wrapped routes. go-chi/cors negotiates the
// preflight details (Vary, Max-Age); the fixed Allow-* headers are then set on
// every response, with or without an Origin header, and OPTIONS is answered
// here with an empty 200.
func CORS(next http.Handler) http.Handler {
	negotiate := cors.Handler(cors.Options{
		AllowedOrigins:     []string{allowOrigin},
		AllowedMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:     []string{allowHeaders},
		MaxAge:             300,
		OptionsPassthrough: true,
	})

	return negotiate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
