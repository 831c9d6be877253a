package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/pkg/xtime"
)

// Entity is a guarded resource whose pointer type is E.
type Entity[E any] interface {
	Resource

	GetID() int64
	// KeepImmutable overwrites the fields an update must not change with the values of existing.
	KeepImmutable(existing E)
	Touch(now time.Time)
	MarkDeleted()
}

// Store is the part of the entity store the guard needs.
// Get returns a nil entity when no row matches.
type Store[E any] interface {
	Get(ctx context.Context, id int64) (E, error)
	UpdateByID(ctx context.Context, entity E) (bool, error)
}

type Guard[E Entity[E]] struct {
	store      Store[E]
	authorizer *Authorizer
	now        xtime.Clock
}

func NewGuard[E Entity[E]](store Store[E], authorizer *Authorizer) *Guard[E] {
	return &Guard[E]{
		store:      store,
		authorizer: authorizer,
		now:        xtime.StorageNow,
	}
}

// WithClock returns a copy of the guard that stamps updates with clock.
func (g *Guard[E]) WithClock(clock xtime.Clock) *Guard[E] {
	return &Guard[E]{
		store:      g.store,
		authorizer: g.authorizer,
		now:        clock.OrDefault(),
	}
}

// Load returns the visible entity with the given id, or ErrNotFound.
func (g *Guard[E]) Load(ctx context.Context, id int64) (E, error) {
	var zero E

	entity, err := g.store.Get(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("failed to load entity: %w", err)
	}

	if !IsVisible(entity) {
		return zero, ErrNotFound
	}

	return entity, nil
}

// Read loads the entity and checks that p may read it.
func (g *Guard[E]) Read(ctx context.Context, p *authz.Principal, id int64) (E, error) {
	var zero E

	if p == nil {
		return zero, ErrUnauthenticated
	}

	entity, err := g.Load(ctx, id)
	if err != nil {
		return zero, err
	}

	allowed, err := g.authorizer.CanRead(ctx, entity, *p)
	if err != nil {
		return zero, err
	}

	if !allowed {
		return zero, ErrForbidden
	}

	return entity, nil
}

// Update replaces the mutable fields of the entity with those of incoming and
// returns the reloaded entity. Immutable fields always come from the stored record.
func (g *Guard[E]) Update(ctx context.Context, p *authz.Principal, id int64, incoming E) (E, error) {
	if lo.IsNil(incoming) {
		var zero E
		return zero, errors.New("policy: nil update payload")
	}

	return g.Mutate(ctx, p, id, ActionUpdate, func(existing E) E {
		incoming.KeepImmutable(existing)
		incoming.Touch(g.now())

		return incoming
	})
}

// Delete marks the entity deleted. No other field, updated_at included, changes.
func (g *Guard[E]) Delete(ctx context.Context, p *authz.Principal, id int64) (bool, error) {
	existing, err := g.authorize(ctx, p, id, ActionDelete)
	if err != nil {
		return false, err
	}

	existing.MarkDeleted()

	if err := g.persist(ctx, existing); err != nil {
		return false, err
	}

	log.Info(ctx, "entity deleted",
		log.String("kind", existing.Kind().String()),
		log.Int64("id", id),
		log.String("principal", p.String()),
	)

	return true, nil
}

// Mutate authorizes action on the entity, persists the result of apply and
// returns the reloaded entity. apply receives the stored entity.
func (g *Guard[E]) Mutate(ctx context.Context, p *authz.Principal, id int64, action Action, apply func(existing E) E) (E, error) {
	var zero E

	existing, err := g.authorize(ctx, p, id, action)
	if err != nil {
		return zero, err
	}

	if err := g.persist(ctx, apply(existing)); err != nil {
		return zero, err
	}

	return g.Load(ctx, id)
}

// Now returns the time the guard stamps on updates.
func (g *Guard[E]) Now() time.Time {
	return g.now()
}

func (g *Guard[E]) authorize(ctx context.Context, p *authz.Principal, id int64, action Action) (E, error) {
	var zero E

	if p == nil {
		return zero, ErrUnauthenticated
	}

	existing, err := g.Load(ctx, id)
	if err != nil {
		return zero, err
	}

	allowed, err := g.authorizer.CanMutate(ctx, existing, action, *p)
	if err != nil {
		return zero, err
	}

	if !allowed {
		log.Warn(ctx, "mutation denied",
			log.String("kind", existing.Kind().String()),
			log.Int64("id", id),
			log.String("action", action.String()),
			log.String("principal", p.String()),
		)

		return zero, ErrForbidden
	}

	return existing, nil
}

func (g *Guard[E]) persist(ctx context.Context, entity E) error {
	ok, err := g.store.UpdateByID(ctx, entity)
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}

	if !ok {
		return ErrPersistenceFailed
	}

	return nil
}
