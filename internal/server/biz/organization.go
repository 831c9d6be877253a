package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/store"
)

type OrganizationServiceParams struct {
	fx.In

	Stores      *store.Stores
	Authorizer  *policy.Authorizer
	UserService *UserService
}

func NewOrganizationService(params OrganizationServiceParams) *OrganizationService {
	guard := policy.NewGuard[*objects.Organization](params.Stores.Organizations, params.Authorizer)

	return &OrganizationService{
		stores:      params.Stores,
		guard:       guard,
		access:      orgAccess{orgs: guard, authorizer: params.Authorizer},
		UserService: params.UserService,
	}
}

type OrganizationService struct {
	stores *store.Stores
	guard  *policy.Guard[*objects.Organization]
	access orgAccess

	UserService *UserService
}

type CreateOrganizationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
	MaxMembers  int    `json:"maxMembers"`
}

// Create stores a new active organization owned by p together with the
// owner's membership.
func (s *OrganizationService) Create(ctx context.Context, p *authz.Principal, input CreateOrganizationInput) (*objects.Organization, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if input.MaxMembers < 0 {
		return nil, fmt.Errorf("%w: maxMembers must not be negative", ErrInvalidArgument)
	}

	now := s.guard.Now()
	org := &objects.Organization{
		Name:           name,
		Description:    input.Description,
		Published:      input.Published,
		MaxMembers:     input.MaxMembers,
		OwnerID:        p.UserID,
		Status:         objects.OrganizationStatusActive,
		CurrentMembers: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.stores.InTx(ctx, func(tx *store.Stores) error {
		if err := save(ctx, tx.Organizations, org); err != nil {
			return err
		}

		return save(ctx, tx.Members.SQLStore, &objects.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         p.UserID,
			Role:           objects.MemberRoleOwner,
			Status:         objects.MemberStatusActive,
			JoinedAt:       now,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	log.Info(ctx, "organization created", log.Int64("organization_id", org.ID), log.Int64("owner_id", p.UserID))

	return org, nil
}

// ListQuick returns the id and name of the organizations p is an ACTIVE member of.
func (s *OrganizationService) ListQuick(ctx context.Context, p *authz.Principal) ([]objects.QuickOrganization, error) {
	orgs, err := s.ListOrganized(ctx, p)
	if err != nil {
		return nil, err
	}

	return lo.Map(orgs, func(org *objects.Organization, _ int) objects.QuickOrganization {
		return objects.QuickOrganization{ID: org.ID, Name: org.Name}
	}), nil
}

// ListOrganized returns the visible organizations p is an ACTIVE member of, newest first.
func (s *OrganizationService) ListOrganized(ctx context.Context, p *authz.Principal) ([]*objects.Organization, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	members, err := s.stores.Members.ListActiveByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	orgIDs := lo.Map(members, func(m *objects.OrganizationMember, _ int) int64 {
		return m.OrganizationID
	})

	orgs, err := s.stores.Organizations.List(ctx, store.Filter{
		Where: []store.Predicate{
			store.In("id", orgIDs...),
			store.NotDeleted(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	return orgs, nil
}

// ListMembers returns the ACTIVE members of an organization p belongs to, in join order.
func (s *OrganizationService) ListMembers(ctx context.Context, p *authz.Principal, organizationID int64) ([]objects.MemberInfo, error) {
	if _, err := s.access.requireMember(ctx, p, organizationID); err != nil {
		return nil, err
	}

	members, err := s.stores.Members.ListActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	users, err := s.UserService.ListUsersByIDs(ctx, lo.Map(members, func(m *objects.OrganizationMember, _ int) int64 {
		return m.UserID
	}))
	if err != nil {
		return nil, err
	}

	byID := lo.KeyBy(users, func(u *objects.User) int64 { return u.ID })

	return lo.FilterMap(members, func(m *objects.OrganizationMember, _ int) (objects.MemberInfo, bool) {
		u, ok := byID[m.UserID]
		if !ok {
			return objects.MemberInfo{}, false
		}

		return objects.MemberInfo{
			UserInfo: objects.NewUserInfo(u),
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}, true
	}), nil
}

// Switch makes organizationID the current organization of p.
func (s *OrganizationService) Switch(ctx context.Context, p *authz.Principal, organizationID int64) (*objects.User, error) {
	org, err := s.access.requireMember(ctx, p, organizationID)
	if err != nil {
		return nil, err
	}

	return s.UserService.SetCurrentOrganization(ctx, p.UserID, &org.ID)
}

// AddMember lets the owner add userID with role, MEMBER when empty. A REMOVED
// membership is reactivated.
func (s *OrganizationService) AddMember(ctx context.Context, p *authz.Principal, organizationID, userID int64, role objects.MemberRole) (*objects.OrganizationMember, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	role = lo.CoalesceOrEmpty(role, objects.MemberRoleMember)
	if !role.IsAssignable() {
		return nil, fmt.Errorf("%w: role %q cannot be assigned", ErrInvalidArgument, role)
	}

	if _, err := s.access.requireOwner(ctx, p, organizationID); err != nil {
		return nil, err
	}

	u, err := s.UserService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u == nil {
		return nil, fmt.Errorf("user %d: %w", userID, policy.ErrNotFound)
	}

	var member *objects.OrganizationMember

	err = s.stores.InTx(ctx, func(tx *store.Stores) error {
		existing, err := tx.Members.Find(ctx, organizationID, userID)
		if err != nil {
			return err
		}

		if existing.IsActive() {
			return ErrAlreadyMember
		}

		org, err := reloadOrganization(ctx, tx, organizationID)
		if err != nil {
			return err
		}

		if !org.HasCapacity() {
			return ErrMemberLimitReached
		}

		now := s.guard.Now()

		if existing != nil {
			existing.Role = role
			existing.Status = objects.MemberStatusActive
			existing.JoinedAt = now
			existing.UpdatedAt = now

			if err := update(ctx, tx.Members.SQLStore, existing); err != nil {
				return err
			}

			member = existing
		} else {
			member = &objects.OrganizationMember{
				OrganizationID: organizationID,
				UserID:         userID,
				Role:           role,
				Status:         objects.MemberStatusActive,
				JoinedAt:       now,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			if err := save(ctx, tx.Members.SQLStore, member); err != nil {
				return err
			}
		}

		org.CurrentMembers++
		org.UpdatedAt = now

		return update(ctx, tx.Organizations, org)
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "organization member added",
		log.Int64("organization_id", organizationID),
		log.Int64("user_id", userID),
		log.String("role", string(role)),
	)

	return member, nil
}

// SetMemberRole lets the owner change the role of an ACTIVE member to ADMIN or MEMBER.
func (s *OrganizationService) SetMemberRole(ctx context.Context, p *authz.Principal, organizationID, userID int64, role objects.MemberRole) (*objects.OrganizationMember, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if !role.IsAssignable() {
		return nil, fmt.Errorf("%w: role %q cannot be assigned", ErrInvalidArgument, role)
	}

	org, err := s.access.requireOwner(ctx, p, organizationID)
	if err != nil {
		return nil, err
	}

	if userID == org.OwnerID {
		return nil, fmt.Errorf("%w: the owner role cannot be changed", ErrInvalidArgument)
	}

	member, err := s.stores.Members.FindActiveMembership(ctx, organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	if member == nil {
		return nil, fmt.Errorf("member %d: %w", userID, policy.ErrNotFound)
	}

	member.Role = role
	member.UpdatedAt = s.guard.Now()

	if err := update(ctx, s.stores.Members.SQLStore, member); err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember lets the owner remove an ACTIVE member. The owner cannot be removed.
func (s *OrganizationService) RemoveMember(ctx context.Context, p *authz.Principal, organizationID, userID int64) error {
	if err := requireUser(p); err != nil {
		return err
	}

	org, err := s.access.requireOwner(ctx, p, organizationID)
	if err != nil {
		return err
	}

	if userID == org.OwnerID {
		return fmt.Errorf("%w: the owner cannot be removed", ErrInvalidArgument)
	}

	err = s.stores.InTx(ctx, func(tx *store.Stores) error {
		member, err := tx.Members.FindActiveMembership(ctx, organizationID, userID)
		if err != nil {
			return err
		}

		if member == nil {
			return fmt.Errorf("member %d: %w", userID, policy.ErrNotFound)
		}

		now := s.guard.Now()

		member.Status = objects.MemberStatusRemoved
		member.UpdatedAt = now

		if err := update(ctx, tx.Members.SQLStore, member); err != nil {
			return err
		}

		stored, err := reloadOrganization(ctx, tx, organizationID)
		if err != nil {
			return err
		}

		stored.CurrentMembers = max(stored.CurrentMembers-1, 0)
		stored.UpdatedAt = now

		if err := update(ctx, tx.Organizations, stored); err != nil {
			return err
		}

		u, err := tx.Users.Get(ctx, userID)
		if err != nil {
			return err
		}

		if u != nil && u.CurrentOrganizationID != nil && *u.CurrentOrganizationID == organizationID {
			_, err = s.UserService.setCurrentOrganization(ctx, tx, userID, nil)
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info(ctx, "organization member removed",
		log.Int64("organization_id", organizationID),
		log.Int64("user_id", userID),
	)

	return nil
}

func (s *OrganizationService) Get(ctx context.Context, p *authz.Principal, id int64) (*objects.Organization, error) {
	return s.guard.Read(ctx, p, id)
}

// Update replaces the name, description, visibility, member limit and status of an organization.
func (s *OrganizationService) Update(ctx context.Context, p *authz.Principal, id int64, input *objects.Organization) (*objects.Organization, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if input.MaxMembers < 0 {
		return nil, fmt.Errorf("%w: maxMembers must not be negative", ErrInvalidArgument)
	}

	existing, err := s.guard.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MaxMembers > 0 && input.MaxMembers < existing.CurrentMembers {
		return nil, fmt.Errorf("%w: maxMembers %d is below the %d current members", ErrInvalidArgument, input.MaxMembers, existing.CurrentMembers)
	}

	input.Name = strings.TrimSpace(input.Name)

	return s.guard.Update(ctx, p, id, input)
}

func (s *OrganizationService) Delete(ctx context.Context, p *authz.Principal, id int64) (bool, error) {
	return s.guard.Delete(ctx, p, id)
}

// reloadOrganization reads the visible organization within tx.
func reloadOrganization(ctx context.Context, tx *store.Stores, id int64) (*objects.Organization, error) {
	org, err := tx.Organizations.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if !policy.IsVisible(org) {
		return nil, fmt.Errorf("organization %d: %w", id, policy.ErrNotFound)
	}

	return org, nil
}

func save[E store.Row](ctx context.Context, s *store.SQLStore[E], entity E) error {
	ok, err := s.Save(ctx, entity)
	if err != nil {
		return err
	}

	if !ok {
		return policy.ErrPersistenceFailed
	}

	return nil
}

func update[E store.Row](ctx context.Context, s *store.SQLStore[E], entity E) error {
	ok, err := s.UpdateByID(ctx, entity)
	if err != nil {
		return err
	}

	if !ok {
		return policy.ErrPersistenceFailed
	}

	return nil
}
