package biz

import (
	"github.com/cowrite/cowrite/internal/pkg/xcache"
	"github.com/cowrite/cowrite/internal/store"
)

// ServicesForTest bundles every service on one set of stores.
type ServicesForTest struct {
	Users          *UserService
	Auth           *AuthService
	Comments       *CommentService
	KnowledgeBases *KnowledgeBaseService
	Organizations  *OrganizationService
}

// NewServicesForTest wires the services over stores with a memory user cache.
func NewServicesForTest(stores *store.Stores) *ServicesForTest {
	authorizer := NewAuthorizer(stores)

	users, err := NewUserService(UserServiceParams{
		CacheConfig: xcache.Config{Mode: xcache.ModeMemory},
		Stores:      stores,
	})
	if err != nil {
		panic(err)
	}

	auth, err := NewAuthService(AuthServiceParams{
		Config:      AuthConfig{SecretKey: "test-secret"},
		UserService: users,
	})
	if err != nil {
		panic(err)
	}

	return &ServicesForTest{
		Users:          users,
		Auth:           auth,
		Comments:       NewCommentService(CommentServiceParams{Stores: stores, Authorizer: authorizer}),
		KnowledgeBases: NewKnowledgeBaseService(KnowledgeBaseServiceParams{Stores: stores, Authorizer: authorizer}),
		Organizations: NewOrganizationService(OrganizationServiceParams{
			Stores:      stores,
			Authorizer:  authorizer,
			UserService: users,
		}),
	}
}
