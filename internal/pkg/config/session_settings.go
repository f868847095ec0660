package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultSessionCookieName is the cookie carrying the signed session token
const DefaultSessionCookieName = "bo_session"

// SessionSettings controls the signed session cookie
type SessionSettings struct {
	Secret         string        `mapstructure:"secret" validate:"required,min=32"`
	CookieName     string        `mapstructure:"cookie_name" validate:"required"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"required"`
	RememberMeFor  time.Duration `mapstructure:"remember_me_for" validate:"required"`
	SecureCookie   bool          `mapstructure:"secure_cookie"`
	SearchCacheTTL time.Duration `mapstructure:"search_cache_ttl"`
	SearchCacheMax int           `mapstructure:"search_cache_max" validate:"gte=0"`
}

// Validate checks that all fields in SessionSettings are valid
func (s *SessionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SessionSettings: %w", err)
	}

	if s.RememberMeFor < s.IdleTimeout {
		return fmt.Errorf("remember me duration must not be shorter than the idle timeout")
	}

	return nil
}
