package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/contexts"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/server/biz"
)

// WithJWTAuth authenticates the bearer token and stores the user and its
// principal in the request context.
func WithJWTAuth(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractTokenFromRequest(c.Request, DefaultTokenConfig)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		user, err := auth.AuthenticateJWTToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, biz.ErrInvalidJWT) {
				_ = c.Error(err)
				AbortWithError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			} else {
				log.Error(c.Request.Context(), "failed to validate token", log.Cause(err))
				AbortWithError(c, http.StatusInternalServerError, errors.New("Failed to validate token"))
			}

			return
		}

		ctx := contexts.WithUser(c.Request.Context(), user)

		ctx, err = authz.WithPrincipal(ctx, *authz.NewUserPrincipal(user.ID))
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
