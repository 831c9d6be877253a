package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/contexts"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/pkg/xtest"
	"github.com/cowrite/cowrite/internal/server/biz"
	"github.com/cowrite/cowrite/internal/store"
)

func TestWithJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	drv := xtest.NewSQLiteDriver(t)
	require.NoError(t, store.Migrate(ctx, drv))

	svc := biz.NewServicesForTest(store.New(drv))

	user, err := svc.Auth.SignUp(ctx, biz.SignUpInput{Email: "alice@example.com", Name: "alice", Password: "secret-password"})
	require.NoError(t, err)

	token, err := svc.Auth.GenerateJWTToken(ctx, user)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(WithJWTAuth(svc.Auth))
	engine.GET("/me", func(c *gin.Context) {
		p := authz.FromContext(c.Request.Context())
		require.NotNil(t, p)
		assert.Equal(t, user.ID, p.UserID)

		u, ok := contexts.GetUser(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, "alice", u.Name)

		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer " + token, status: http.StatusNoContent},
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "not bearer", header: token, status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusUnauthorized {
				var resp objects.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "Unauthorized", resp.Error.Type)
			}
		})
	}
}

func TestWithJWTAuth_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	drv := xtest.NewSQLiteDriver(t)
	require.NoError(t, store.Migrate(ctx, drv))

	svc := biz.NewServicesForTest(store.New(drv))

	user, err := svc.Auth.SignUp(ctx, biz.SignUpInput{Email: "bob@example.com", Name: "bob", Password: "secret-password"})
	require.NoError(t, err)

	token, err := svc.Auth.GenerateJWTToken(ctx, user)
	require.NoError(t, err)

	_, err = drv.DB().ExecContext(ctx, "DROP TABLE users")
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(WithJWTAuth(svc.Auth))
	engine.GET("/me", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
