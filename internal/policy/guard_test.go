package policy

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/pkg/xtime"
)

var (
	created = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	pinned  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newKBGuard(rows ...*objects.KnowledgeBase) (*Guard[*objects.KnowledgeBase], *memStore[objects.KnowledgeBase]) {
	store := newMemStore(rows...)
	return NewGuard[*objects.KnowledgeBase](store, newTestAuthorizer()).WithClock(xtime.Fixed(pinned)), store
}

func TestGuard_Update_KeepsOwnerAndOrganization(t *testing.T) {
	guard, store := newKBGuard(&objects.KnowledgeBase{
		ID: 1, Name: "kb", OwnerID: ownerID, OrganizationID: ptr(orgID), CreatedAt: created, UpdatedAt: created,
	})

	incoming := &objects.KnowledgeBase{
		ID:             99,
		Name:           "renamed",
		Description:    "desc",
		CoverURL:       "cover",
		OwnerID:        outsiderID,
		OrganizationID: ptr(otherOrgID),
		Deleted:        true,
	}

	updated, err := guard.Update(context.Background(), authz.NewUserPrincipal(memberID), 1, incoming)
	require.NoError(t, err)

	want := &objects.KnowledgeBase{
		ID: 1, Name: "renamed", Description: "desc", CoverURL: "cover",
		OwnerID: ownerID, OrganizationID: ptr(orgID), CreatedAt: created, UpdatedAt: pinned,
	}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Errorf("updated mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, ownerID, store.stored(1).OwnerID)
	assert.Equal(t, orgID, *store.stored(1).OrganizationID)
	assert.False(t, store.stored(1).Deleted)
}

func TestGuard_Update_PersonalKnowledgeBase(t *testing.T) {
	guard, store := newKBGuard(&objects.KnowledgeBase{ID: 1, Name: "mine", OwnerID: ownerID})

	// memberID holds an ACTIVE membership in orgID, which is irrelevant for a personal knowledge base.
	_, err := guard.Update(context.Background(), authz.NewUserPrincipal(memberID), 1, &objects.KnowledgeBase{Name: "x"})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "mine", store.stored(1).Name)
	assert.Zero(t, store.updates)
}

func TestGuard_Update_OrganizationKnowledgeBase(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		wantErr   error
	}{
		{name: "owner", principal: ownerID},
		{name: "active member", principal: memberID},
		{name: "removed member", principal: removedID, wantErr: ErrForbidden},
		{name: "outsider", principal: outsiderID, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, _ := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID, OrganizationID: ptr(orgID)})

			_, err := guard.Update(context.Background(), authz.NewUserPrincipal(tt.principal), 1, &objects.KnowledgeBase{Name: "x"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestGuard_Outcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated before anything else", func(t *testing.T) {
		guard, store := newKBGuard()
		store.getErr = errStoreDown

		_, err := guard.Update(ctx, nil, 1, &objects.KnowledgeBase{})
		require.ErrorIs(t, err, ErrUnauthenticated)

		_, err = guard.Delete(ctx, nil, 1)
		require.ErrorIs(t, err, ErrUnauthenticated)

		_, err = guard.Read(ctx, nil, 1)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("absent is not found", func(t *testing.T) {
		guard, _ := newKBGuard()

		_, err := guard.Update(ctx, authz.NewUserPrincipal(ownerID), 1, &objects.KnowledgeBase{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleted is not found even for the owner", func(t *testing.T) {
		guard, _ := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID, Deleted: true})

		_, err := guard.Delete(ctx, authz.NewUserPrincipal(ownerID), 1)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = guard.Read(ctx, authz.NewUserPrincipal(ownerID), 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not found wins over forbidden", func(t *testing.T) {
		guard, _ := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID, Deleted: true})

		_, err := guard.Update(ctx, authz.NewUserPrincipal(outsiderID), 1, &objects.KnowledgeBase{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("store refusing the write", func(t *testing.T) {
		guard, store := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID})
		store.failUpdate = true

		_, err := guard.Update(ctx, authz.NewUserPrincipal(ownerID), 1, &objects.KnowledgeBase{Name: "x"})
		require.ErrorIs(t, err, ErrPersistenceFailed)

		ok, err := guard.Delete(ctx, authz.NewUserPrincipal(ownerID), 1)
		require.ErrorIs(t, err, ErrPersistenceFailed)
		assert.False(t, ok)
	})

	t.Run("store fault propagates", func(t *testing.T) {
		guard, store := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID})
		store.getErr = errStoreDown

		_, err := guard.Update(ctx, authz.NewUserPrincipal(ownerID), 1, &objects.KnowledgeBase{})
		require.ErrorIs(t, err, errStoreDown)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil payload", func(t *testing.T) {
		guard, _ := newKBGuard(&objects.KnowledgeBase{ID: 1, OwnerID: ownerID})

		_, err := guard.Update(ctx, authz.NewUserPrincipal(ownerID), 1, nil)
		require.Error(t, err)
	})
}

func TestGuard_Delete_OnlyFlipsDeleted(t *testing.T) {
	original := &objects.KnowledgeBase{
		ID: 1, Name: "kb", Description: "d", CoverURL: "c",
		OwnerID: ownerID, OrganizationID: ptr(orgID), CreatedAt: created, UpdatedAt: created,
	}
	guard, store := newKBGuard(original)
	before := *original

	ok, err := guard.Delete(context.Background(), authz.NewUserPrincipal(ownerID), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	after := *store.stored(1)
	assert.True(t, after.Deleted)

	after.Deleted = false
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("delete changed more than the deleted flag (-before +after):\n%s", diff)
	}

	_, err = guard.Load(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGuard_CommentStatusChange(t *testing.T) {
	store := newMemStore(&objects.Comment{ID: 1, UserID: ownerID, Content: "c", Status: objects.CommentStatusActive})
	guard := NewGuard[*objects.Comment](store, newTestAuthorizer()).WithClock(xtime.Fixed(pinned))

	setStatus := func(status objects.CommentStatus) func(*objects.Comment) *objects.Comment {
		return func(existing *objects.Comment) *objects.Comment {
			existing.Status = status
			existing.Touch(guard.Now())

			return existing
		}
	}

	for _, status := range []objects.CommentStatus{objects.CommentStatusResolved, objects.CommentStatusActive} {
		_, err := guard.Mutate(context.Background(), authz.NewUserPrincipal(outsiderID), 1, ActionStatusChange, setStatus(status))
		require.ErrorIs(t, err, ErrForbidden)
	}

	updated, err := guard.Mutate(context.Background(), authz.NewUserPrincipal(ownerID), 1, ActionStatusChange, setStatus(objects.CommentStatusResolved))
	require.NoError(t, err)
	assert.Equal(t, objects.CommentStatusResolved, updated.Status)
	assert.Equal(t, "c", updated.Content)
	assert.Equal(t, pinned, updated.UpdatedAt)
}

func TestGuard_CommentUpdateKeepsStatus(t *testing.T) {
	store := newMemStore(&objects.Comment{ID: 1, DocumentID: 5, UserID: ownerID, Content: "c", Status: objects.CommentStatusResolved})
	guard := NewGuard[*objects.Comment](store, newTestAuthorizer())

	updated, err := guard.Update(context.Background(), authz.NewUserPrincipal(ownerID), 1, &objects.Comment{
		Content: "edited", Status: objects.CommentStatusActive, DocumentID: 6, UserID: outsiderID,
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, objects.CommentStatusResolved, updated.Status)
	assert.Equal(t, int64(5), updated.DocumentID)
	assert.Equal(t, ownerID, updated.UserID)

	for _, p := range []int64{memberID, outsiderID} {
		_, err = guard.Update(context.Background(), authz.NewUserPrincipal(p), 1, &objects.Comment{Content: "x"})
		require.ErrorIs(t, err, ErrForbidden)

		_, err = guard.Delete(context.Background(), authz.NewUserPrincipal(p), 1)
		require.ErrorIs(t, err, ErrForbidden)
	}
}

func TestGuard_OrganizationOwnerOnly(t *testing.T) {
	store := newMemStore(&objects.Organization{ID: orgID, Name: "org", OwnerID: ownerID, CurrentMembers: 3, Status: objects.OrganizationStatusActive})
	guard := NewGuard[*objects.Organization](store, newTestAuthorizer())

	_, err := guard.Update(context.Background(), authz.NewUserPrincipal(memberID), orgID, &objects.Organization{Name: "x"})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := guard.Update(context.Background(), authz.NewUserPrincipal(ownerID), orgID, &objects.Organization{Name: "renamed", CurrentMembers: 50})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 3, updated.CurrentMembers)
	assert.Equal(t, objects.OrganizationStatusActive, updated.Status)
}

// Organization owned by U1, U2 an ACTIVE member, U3 unrelated.
func TestGuard_SharedKnowledgeBaseScenario(t *testing.T) {
	const (
		u1 int64 = 101
		u2 int64 = 102
		u3 int64 = 103
	)

	ctx := context.Background()
	finder := newMemberships(
		&objects.OrganizationMember{OrganizationID: orgID, UserID: u1, Role: objects.MemberRoleOwner, Status: objects.MemberStatusActive},
		&objects.OrganizationMember{OrganizationID: orgID, UserID: u2, Role: objects.MemberRoleMember, Status: objects.MemberStatusActive},
	)
	store := newMemStore(&objects.KnowledgeBase{ID: 1, Name: "shared", OwnerID: u1, OrganizationID: ptr(orgID)})
	guard := NewGuard[*objects.KnowledgeBase](store, NewAuthorizer(finder))

	updated, err := guard.Update(ctx, authz.NewUserPrincipal(u2), 1, &objects.KnowledgeBase{Name: "edited by u2"})
	require.NoError(t, err)
	assert.Equal(t, "edited by u2", updated.Name)
	assert.Equal(t, u1, updated.OwnerID)

	_, err = guard.Update(ctx, authz.NewUserPrincipal(u3), 1, &objects.KnowledgeBase{Name: "edited by u3"})
	require.ErrorIs(t, err, ErrForbidden)

	ok, err := guard.Delete(ctx, authz.NewUserPrincipal(u1), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, store.stored(1).Deleted)

	_, err = guard.Delete(ctx, authz.NewUserPrincipal(u2), 1)
	require.ErrorIs(t, err, ErrNotFound)
}
