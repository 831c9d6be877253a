package biz

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/pkg/broadcast"
	"github.com/cowrite/cowrite/internal/pkg/xcache"
	"github.com/cowrite/cowrite/internal/pkg/xtime"
	"github.com/cowrite/cowrite/internal/store"
)

type UserServiceParams struct {
	fx.In

	CacheConfig xcache.Config
	Stores      *store.Stores
}

func NewUserService(params UserServiceParams) (*UserService, error) {
	ctx := context.Background()

	cache, err := xcache.NewFromConfig[objects.User](ctx, params.CacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create user cache: %w", err)
	}

	svc := &UserService{
		stores:    params.Stores,
		UserCache: cache,
	}

	// Other instances keep their own memory tier, so evictions must reach them.
	if params.CacheConfig.Mode == xcache.ModeTwoLevel {
		bus, err := broadcast.NewRedisFromConfig[int64](ctx, params.CacheConfig.Redis, params.CacheConfig.KeyPrefix+userInvalidationChannel, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to create user invalidation bus: %w", err)
		}

		svc.watchInvalidations(bus)
	}

	return svc, nil
}

const userInvalidationChannel = "user:invalidate"

type UserService struct {
	stores *store.Stores

	// UserCache holds users by id. Cached users carry no password.
	UserCache xcache.Cache[objects.User]

	// loads collapses concurrent cache misses for the same user.
	loads singleflight.Group

	invalidations broadcast.Bus[int64]
	stopWatch     func()
}

// watchInvalidations evicts the users other instances report as changed.
func (s *UserService) watchInvalidations(bus broadcast.Bus[int64]) {
	ch, stop := bus.Subscribe()

	s.invalidations = bus
	s.stopWatch = stop

	go func() {
		for id := range ch {
			_ = s.UserCache.Delete(context.Background(), buildUserCacheKey(id))
		}
	}()
}

// Close stops listening for invalidations.
func (s *UserService) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
	}
}

// CreateUser stores a new active user. The password must already be hashed.
func (s *UserService) CreateUser(ctx context.Context, email, name, hashedPassword string) (*objects.User, error) {
	existing, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	now := xtime.StorageNow()
	u := &objects.User{
		Email:     email,
		Name:      name,
		Password:  hashedPassword,
		Status:    objects.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ok, err := s.stores.Users.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if !ok {
		return nil, ErrInternal
	}

	log.Info(ctx, "user created", log.Int64("user_id", u.ID))

	return u, nil
}

// GetUserByEmail returns the user registered with email, or nil.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*objects.User, error) {
	users, err := s.stores.Users.List(ctx, store.Filter{
		Where: []store.Predicate{store.EQ("email", email)},
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return lo.FirstOrEmpty(users), nil
}

// GetUserByID returns the user with id, or nil. The result may come from the
// cache and must not be written back.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*objects.User, error) {
	cacheKey := buildUserCacheKey(id)
	if u, err := s.UserCache.Get(ctx, cacheKey); err == nil {
		return &u, nil
	}

	v, err, shared := s.loads.Do(cacheKey, func() (any, error) {
		return s.loadUser(ctx, id, cacheKey)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		log.Debug(ctx, "user load deduplicated", log.Int64("user_id", id))
	}

	u, _ := v.(*objects.User)
	if u == nil {
		return nil, nil
	}

	// Callers sharing a load each get their own copy.
	out := *u

	return &out, nil
}

func (s *UserService) loadUser(ctx context.Context, id int64, cacheKey string) (*objects.User, error) {
	u, err := s.stores.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u == nil {
		return nil, nil
	}

	cached := *u
	cached.Password = ""

	if err := s.UserCache.Set(ctx, cacheKey, cached); err != nil {
		log.Warn(ctx, "failed to cache user", log.Cause(err))
	}

	return u, nil
}

// ListUsersByIDs returns the users with the given ids in no particular order.
func (s *UserService) ListUsersByIDs(ctx context.Context, ids []int64) ([]*objects.User, error) {
	users, err := s.stores.Users.List(ctx, store.Filter{
		Where: []store.Predicate{store.In("id", ids...)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// SetCurrentOrganization records organizationID, or none when nil, as the
// organization the user works in.
func (s *UserService) SetCurrentOrganization(ctx context.Context, userID int64, organizationID *int64) (*objects.User, error) {
	return s.setCurrentOrganization(ctx, s.stores, userID, organizationID)
}

func (s *UserService) setCurrentOrganization(ctx context.Context, stores *store.Stores, userID int64, organizationID *int64) (*objects.User, error) {
	u, err := stores.Users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrInvalidArgument)
	}

	u.CurrentOrganizationID = organizationID
	u.UpdatedAt = xtime.StorageNow()

	ok, err := stores.Users.UpdateByID(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if !ok {
		return nil, ErrInternal
	}

	s.invalidateUserCache(ctx, userID)

	return u, nil
}

func buildUserCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// invalidateUserCache removes a user from cache, here and on other instances.
func (s *UserService) invalidateUserCache(ctx context.Context, id int64) {
	cacheKey := buildUserCacheKey(id)
	_ = s.UserCache.Delete(ctx, cacheKey)

	if s.invalidations != nil {
		if err := s.invalidations.Publish(ctx, id); err != nil {
			log.Warn(ctx, "failed to publish user invalidation", log.Int64("user_id", id), log.Cause(err))
		}
	}
}
