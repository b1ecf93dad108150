package middleware

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Middleware func(http.Handler) http.Handler

// Wrap applies mws in order, so the last one sees the request first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// Recover turns a panic in a handler into a 500 response. Panics after the
// connection has been hijacked are only logged.
func Recover(log logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &loggingWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.WithFields(logrus.Fields{
					"panic":  fmt.Sprint(rec),
					"method": r.Method,
					"uri":    r.URL.RequestURI(),
				}).Error("handler panicked")
				if !wrapped.hijacked && wrapped.statusCode == 0 {
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}
