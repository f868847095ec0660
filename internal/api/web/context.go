package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware
const (
	sessionKey   = "session"
	userKey      = "user"
	requestIDKey = "requestID"
)

// Form field carrying the anti-forgery token
const csrfFormField = "__RequestVerificationToken"

func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func currentUser(c *gin.Context) *accounts.UserAccount {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*accounts.UserAccount); ok {
			return u
		}
	}
	return nil
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func redirectToLogin(c *gin.Context) {
	redirect(c, "/Account/Login")
}

// redirectToError sends the browser to the error page with a message and status code
func redirectToError(c *gin.Context, statusCode int, message string) {
	q := url.Values{}
	if message != "" {
		q.Set("message", message)
	}
	q.Set("statusCode", strconv.Itoa(statusCode))
	redirect(c, "/Home/Error?"+q.Encode())
}

// idParam reads the numeric id from the path or, failing that, the query string or form
func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		raw = c.PostForm("id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
