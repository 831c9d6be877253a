package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/cowrite/cowrite/internal/authz"
)

// IDParam binds the :id path parameter.
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// MemberParam binds the :id and :userId path parameters.
type MemberParam struct {
	ID     int64 `uri:"id" binding:"required,min=1"`
	UserID int64 `uri:"userId" binding:"required,min=1"`
}

// principal returns the principal the JWT middleware stored, or nil.
func principal(c *gin.Context) *authz.Principal {
	return authz.FromContext(c.Request.Context())
}

func bindID(c *gin.Context) (int64, bool) {
	var param IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		invalidRequest(c, err)
		return 0, false
	}

	return param.ID, true
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type createFunc[E any] func(ctx context.Context, p *authz.Principal, input E) (E, error)
