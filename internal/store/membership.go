package store

import (
	"context"

	"github.com/samber/lo"

	"github.com/cowrite/cowrite/internal/objects"
)

// MembershipStore stores organization memberships.
type MembershipStore struct {
	*SQLStore[*objects.OrganizationMember]
}

func NewMembershipStore(base *SQLStore[*objects.OrganizationMember]) *MembershipStore {
	return &MembershipStore{SQLStore: base}
}

func (s *MembershipStore) Using(conn Conn) *MembershipStore {
	return &MembershipStore{SQLStore: s.SQLStore.Using(conn)}
}

// Find returns the membership of userID in organizationID whatever its status, or nil.
func (s *MembershipStore) Find(ctx context.Context, organizationID, userID int64) (*objects.OrganizationMember, error) {
	members, err := s.List(ctx, Filter{
		Where: []Predicate{
			EQ("organization_id", organizationID),
			EQ("user_id", userID),
		},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	return lo.FirstOrEmpty(members), nil
}

// FindActiveMembership returns the ACTIVE membership of userID in organizationID, or nil.
func (s *MembershipStore) FindActiveMembership(ctx context.Context, organizationID, userID int64) (*objects.OrganizationMember, error) {
	member, err := s.Find(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}

	if !member.IsActive() {
		return nil, nil
	}

	return member, nil
}

// ListActiveByUser returns the ACTIVE memberships of userID.
func (s *MembershipStore) ListActiveByUser(ctx context.Context, userID int64) ([]*objects.OrganizationMember, error) {
	return s.List(ctx, Filter{
		Where: []Predicate{
			EQ("user_id", userID),
			EQ("status", string(objects.MemberStatusActive)),
		},
	})
}

// ListActiveByOrganization returns the ACTIVE memberships of organizationID in join order.
func (s *MembershipStore) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]*objects.OrganizationMember, error) {
	return s.List(ctx, Filter{
		Where: []Predicate{
			EQ("organization_id", organizationID),
			EQ("status", string(objects.MemberStatusActive)),
		},
	})
}
