package biz

import (
	"context"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
)

// orgAccess checks a principal's standing in an organization.
type orgAccess struct {
	orgs       *policy.Guard[*objects.Organization]
	authorizer *policy.Authorizer
}

// requireMember returns the visible organization when p is its owner or an ACTIVE member.
func (a orgAccess) requireMember(ctx context.Context, p *authz.Principal, organizationID int64) (*objects.Organization, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	org, err := a.orgs.Load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if p.Is(org.OwnerID) {
		return org, nil
	}

	member, err := a.authorizer.IsActiveMember(ctx, organizationID, p.UserID)
	if err != nil {
		return nil, err
	}

	if !member {
		return nil, policy.ErrForbidden
	}

	return org, nil
}

// requireOwner returns the visible organization when p may manage it.
func (a orgAccess) requireOwner(ctx context.Context, p *authz.Principal, organizationID int64) (*objects.Organization, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	org, err := a.orgs.Load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	allowed, err := a.authorizer.CanMutate(ctx, org, policy.ActionUpdate, *p)
	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, policy.ErrForbidden
	}

	return org, nil
}
