package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/contexts"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/server/biz"
)

type AuthHandlersParams struct {
	fx.In

	AuthService *biz.AuthService
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	return &AuthHandlers{
		AuthService: params.AuthService,
	}
}

type AuthHandlers struct {
	AuthService *biz.AuthService
}

type SignUpRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignInResponse struct {
	User  objects.UserInfo `json:"user"`
	Token string           `json:"token"`
}

// SignUp registers a user.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.AuthService.SignUp(c.Request.Context(), biz.SignUpInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewUserInfo(user))
}

// SignIn handles user authentication.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req SignInRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	user, err := h.AuthService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, biz.ErrInvalidPassword) {
			JSONError(c, http.StatusUnauthorized, errors.New("Invalid email or password"))
			return
		}

		HandleError(c, err)

		return
	}

	token, err := h.AuthService.GenerateJWTToken(ctx, user)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SignInResponse{
		User:  objects.NewUserInfo(user),
		Token: token,
	})
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := contexts.GetUser(c.Request.Context())
	if !ok {
		HandleError(c, policy.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, objects.NewUserInfo(user))
}
