package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/store"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuthorizer),
	fx.Provide(NewUserService),
	fx.Provide(NewAuthService),
	fx.Provide(NewCommentService),
	fx.Provide(NewKnowledgeBaseService),
	fx.Provide(NewOrganizationService),
	fx.Invoke(func(lc fx.Lifecycle, users *UserService) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				users.Close()
				return nil
			},
		})
	}),
)

// NewAuthorizer builds the authorization policy over the membership store.
func NewAuthorizer(stores *store.Stores) *policy.Authorizer {
	return policy.NewAuthorizer(stores.Members)
}
