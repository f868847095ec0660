package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

const userKey = "apiUser"

// RequireSession authenticates API calls with the session cookie of the web application
func RequireSession(manager *session.Manager, accountService accounts.AccountService, log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s, err := manager.Read(ctx.Request)
		if err != nil || !s.Authenticated() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			return
		}

		user, err := accountService.GetByID(ctx.Request.Context(), s.UserID)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
				return
			}
			log.Error("Failed to load user account of api session:", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
			return
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) *accounts.UserAccount {
	user, _ := ctx.MustGet(userKey).(*accounts.UserAccount)
	return user
}
