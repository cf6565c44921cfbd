package http

import (
	"crypto/subtle"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kasa/internal/log"
)

// dataTokenHeader carries the password-equivalent token the data
// endpoints require.
const dataTokenHeader = "X-Api-Token"

// requestLogger logs start and completion of every request under a
// generated request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		clientIP := clientIP(r)

		s.logger.InfoContext(r.Context(), "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.InfoContext(r.Context(), "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	})
}

// securityHeaders sets the response headers every page gets.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// requireDataToken guards the data endpoints. A missing server-side
// token rejects every request: this layer fails closed.
func (s *Server) requireDataToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.DataToken == "" {
			s.logger.WarnContext(r.Context(), "data token not configured, rejecting request",
				log.FieldPath, r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		got := r.Header.Get(dataTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.DataToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
