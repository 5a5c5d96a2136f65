package server

import (
	"net"
	"net/http"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

const (
	sessionCookieName    = "session-token"
	maxRequestsPerMinute = 50
)

type authedHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// requireAuth resolves the session cookie to a user and rejects the request
// with 401 when no valid session exists.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.CurrentUser(r.Context(), sessionToken(r))
		if err != nil {
			s.logger.Error("failed to resolve session", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			s.writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		next(w, r, user)
	}
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				s.writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateLimit caps requests per client IP per minute. The counter lives in
// Redis; a counting failure lets the request through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		count, err := s.limiter.IncrementRateLimit(r.Context(), host)
		if err != nil {
			s.logger.Warn("rate limit check failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if count > maxRequestsPerMinute {
			s.writeError(w, http.StatusTooManyRequests, "Too many requests, please slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.auth.SessionTTL().Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
