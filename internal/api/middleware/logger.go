package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// crlf strips CR/LF from user-supplied values before they reach the log line.
var crlf = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger logs method, path, status, and duration for every request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the writer so the status code can be captured after the
		// handler runs. Handlers that never call WriteHeader default to 200.
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		//nolint:gosec // G706: method and path are stripped of newlines above.
		log.Printf("%s %s %d %s", crlf(r.Method), crlf(r.URL.Path), wrapped.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
