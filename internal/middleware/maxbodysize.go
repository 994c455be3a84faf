package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. The body is wrapped with http.MaxBytesReader,
// so a handler reading past the limit gets an error and the connection is
// closed rather than buffering an unbounded payload.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
