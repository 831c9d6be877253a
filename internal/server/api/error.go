package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/server/biz"
	"github.com/cowrite/cowrite/internal/store"
)

// JSONError returns a JSON error response and adds the error to gin context for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, policy.ErrUnauthenticated),
		errors.Is(err, biz.ErrInvalidJWT),
		errors.Is(err, biz.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, policy.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, biz.ErrEmailTaken),
		errors.Is(err, biz.ErrAlreadyMember),
		errors.Is(err, biz.ErrMemberLimitReached):
		return http.StatusConflict
	case errors.Is(err, biz.ErrInvalidArgument),
		errors.Is(err, store.ErrUnknownColumn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err with its mapped status. Server errors are logged and
// answered with a generic message.
func HandleError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status < http.StatusInternalServerError {
		JSONError(c, status, err)
		return
	}

	log.Error(c.Request.Context(), "request failed", log.Cause(err))

	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: biz.ErrInternal.Error(),
		},
	})
}

func invalidRequest(c *gin.Context, err error) {
	JSONError(c, http.StatusBadRequest, errors.Join(errors.New("Invalid request format"), err))
}
