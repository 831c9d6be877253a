package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/pkg/xtest"
	"github.com/cowrite/cowrite/internal/store"
)

func setupTestServices(t *testing.T) (*ServicesForTest, *store.Stores) {
	t.Helper()

	drv := xtest.NewSQLiteDriver(t)
	require.NoError(t, store.Migrate(context.Background(), drv))

	stores := store.New(drv)

	return NewServicesForTest(stores), stores
}

// signUp registers a user named name and returns it with its principal.
func signUp(t *testing.T, svc *ServicesForTest, name string) (*objects.User, *authz.Principal) {
	t.Helper()

	u, err := svc.Auth.SignUp(context.Background(), SignUpInput{
		Email:    fmt.Sprintf("%s@example.com", name),
		Name:     name,
		Password: "secret-password",
	})
	require.NoError(t, err)

	return u, authz.NewUserPrincipal(u.ID)
}

func ptr[T any](v T) *T {
	return &v
}
