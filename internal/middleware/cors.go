package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the listed origins, or any origin when the list is empty.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
