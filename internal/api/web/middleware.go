package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs method, path, status and latency of every request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), "request_id=" + requestID(c)}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(args...)
		case status >= http.StatusBadRequest:
			log.Warn(args...)
		default:
			log.Debug(args...)
		}
	}
}

// Sessions loads the session cookie and the logged in user. Visitors without
// a valid cookie get an anonymous session so that forms carry a CSRF token.
// The cookie is rewritten on every request to slide the idle timeout.
func Sessions(manager *session.Manager, accountService accounts.AccountService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Read(c.Request)
		if err != nil {
			s = nil
		}

		if s.Authenticated() {
			user, err := accountService.GetByID(c.Request.Context(), s.UserID)
			switch {
			case err == nil:
				c.Set(userKey, user)
			case errors.Is(err, accounts.ErrNotFound):
				log.Warn("Session refers to unknown user account", s.UserID)
				s = nil
			default:
				log.Error("Failed to load user account of session:", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}

		if s == nil {
			if s, err = manager.New("", false); err != nil {
				log.Error("Failed to start session:", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}

		if err := writeSession(c, manager, s); err != nil {
			log.Error("Failed to write session cookie:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}

// writeSession stores s in the context and replaces any session cookie set
// earlier in the same response
func writeSession(c *gin.Context, manager *session.Manager, s *session.Session) error {
	header := c.Writer.Header()
	prefix := manager.CookieName() + "="
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.Set(sessionKey, s)
	return manager.Write(c.Writer, s)
}

// RequireUser redirects visitors that are not logged in to the login page
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			redirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRF rejects state-changing requests whose form token does not match the session
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		s := currentSession(c)
		token := c.PostForm(csrfFormField)
		if s == nil || token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.CSRFToken)) != 1 {
			redirectToError(c, http.StatusBadRequest, "The form has expired. Please try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRateLimiter throttles login attempts per client IP
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter allows burst attempts, refilled at one per interval.
// Clients idle for longer than ten intervals are forgotten.
func NewLoginRateLimiter(interval time.Duration, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Every(interval),
		burst:    burst,
		idle:     10 * interval,
		now:      time.Now,
	}
}

// Allow reports whether the client may attempt another login
func (l *LoginRateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > l.idle {
			delete(l.limiters, ip)
		}
	}

	cl, ok := l.limiters[clientIP]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[clientIP] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Middleware sends the client to the error page with status 429 once it exceeds its budget
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			redirectToError(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
