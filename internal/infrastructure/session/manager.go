package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "book-organiser"

// ErrInvalidSession is returned for a missing, tampered or expired session token
var ErrInvalidSession = errors.New("invalid session")

// Session is the state carried by the session cookie. UserID is empty for
// visitors that have not logged in; they still get a CSRF token.
type Session struct {
	ID         string
	UserID     string
	CSRFToken  string
	Persistent bool
	ExpiresAt  time.Time
}

// Authenticated reports whether a user is logged in
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

type claims struct {
	jwt.RegisteredClaims
	CSRF       string `json:"csrf"`
	Persistent bool   `json:"rem,omitempty"`
}

// Manager issues, parses and writes session cookies
type Manager struct {
	secret        []byte
	cookieName    string
	idleTimeout   time.Duration
	rememberMeFor time.Duration
	secure        bool
	now           func() time.Time
}

// NewManager creates a Manager signing tokens with HS256
func NewManager(settings *config.SessionSettings) (*Manager, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		secret:        []byte(settings.Secret),
		cookieName:    settings.CookieName,
		idleTimeout:   settings.IdleTimeout,
		rememberMeFor: settings.RememberMeFor,
		secure:        settings.SecureCookie,
		now:           time.Now,
	}, nil
}

// New starts a session for userID, or an anonymous one when userID is empty
func (m *Manager) New(userID string, persistent bool) (*Session, error) {
	token, err := newCSRFToken()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		CSRFToken:  token,
		Persistent: persistent && userID != "",
	}
	m.touch(s)
	return s, nil
}

// touch slides the expiry forward from now
func (m *Manager) touch(s *Session) {
	lifetime := m.idleTimeout
	if s.Persistent {
		lifetime = m.rememberMeFor
	}
	s.ExpiresAt = m.now().Add(lifetime).Truncate(time.Second)
}

// Encode signs the session into a token
func (m *Manager) Encode(s *Session) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			ID:        s.ID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(m.now()),
		},
		CSRF:       s.CSRFToken,
		Persistent: s.Persistent,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the session it carries
func (m *Manager) Decode(token string) (*Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if c.ID == "" || c.CSRF == "" {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidSession)
	}

	return &Session{
		ID:         c.ID,
		UserID:     c.Subject,
		CSRFToken:  c.CSRF,
		Persistent: c.Persistent,
		ExpiresAt:  c.ExpiresAt.Time,
	}, nil
}

// Read returns the session of the request, or ErrInvalidSession
func (m *Manager) Read(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return m.Decode(cookie.Value)
}

// Write refreshes the idle expiry and sets the session cookie. Persistent
// sessions get an explicit Max-Age, others live until the browser closes.
func (m *Manager) Write(w http.ResponseWriter, s *Session) error {
	m.touch(s)
	token, err := m.Encode(s)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Persistent {
		cookie.Expires = s.ExpiresAt
		cookie.MaxAge = int(m.rememberMeFor.Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// Clear deletes the session cookie
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName returns the name of the session cookie
func (m *Manager) CookieName() string {
	return m.cookieName
}

func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
