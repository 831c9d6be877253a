package policy

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/objects"
)

// MembershipFinder looks up the ACTIVE membership of a user in an organization.
// It returns nil, nil when there is none.
type MembershipFinder interface {
	FindActiveMembership(ctx context.Context, organizationID, userID int64) (*objects.OrganizationMember, error)
}

type Authorizer struct {
	memberships MembershipFinder
}

func NewAuthorizer(memberships MembershipFinder) *Authorizer {
	return &Authorizer{memberships: memberships}
}

// CanMutate reports whether p may perform action on r.
//
//   - Comment: only the author may update, change status or delete.
//   - KnowledgeBase: the owner may update and delete; an ACTIVE member of the
//     owning organization may update. Status changes do not apply.
//   - Organization: only the owner may update and delete.
func (a *Authorizer) CanMutate(ctx context.Context, r Resource, action Action, p authz.Principal) (bool, error) {
	if !p.IsUser() {
		return false, nil
	}

	var (
		allowed bool
		err     error
	)

	switch res := r.(type) {
	case *objects.Comment:
		allowed = a.canMutateComment(res, action, p)
	case *objects.KnowledgeBase:
		allowed, err = a.canMutateKnowledgeBase(ctx, res, action, p)
	case *objects.Organization:
		allowed = a.canMutateOrganization(res, action, p)
	default:
		return false, fmt.Errorf("policy: unsupported resource %T", r)
	}

	if err != nil {
		return false, err
	}

	if log.DebugEnabled(ctx) {
		log.Debug(ctx, "mutation authorization",
			log.String("kind", r.Kind().String()),
			log.String("action", action.String()),
			log.String("principal", p.String()),
			log.String("decision", lo.Ternary(allowed, "allow", "deny")),
		)
	}

	return allowed, nil
}

func (a *Authorizer) canMutateComment(c *objects.Comment, action Action, p authz.Principal) bool {
	switch action {
	case ActionUpdate, ActionStatusChange, ActionDelete:
		// TODO: let the owner of the commented document change the status once documents are modelled.
		return p.Is(c.UserID)
	default:
		return false
	}
}

func (a *Authorizer) canMutateKnowledgeBase(ctx context.Context, kb *objects.KnowledgeBase, action Action, p authz.Principal) (bool, error) {
	switch action {
	case ActionDelete:
		return p.Is(kb.OwnerID), nil
	case ActionUpdate:
		if p.Is(kb.OwnerID) {
			return true, nil
		}

		if kb.IsPersonal() {
			return false, nil
		}

		return a.isActiveMember(ctx, *kb.OrganizationID, p.UserID)
	default:
		return false, nil
	}
}

func (a *Authorizer) canMutateOrganization(o *objects.Organization, action Action, p authz.Principal) bool {
	switch action {
	case ActionUpdate, ActionDelete:
		return p.Is(o.OwnerID)
	default:
		return false
	}
}

// CanRead reports whether p may read r. Comments and organizations are
// readable by any user. A personal knowledge base is readable by its owner,
// an organization knowledge base also by ACTIVE members.
func (a *Authorizer) CanRead(ctx context.Context, r Resource, p authz.Principal) (bool, error) {
	if !p.IsUser() {
		return false, nil
	}

	switch res := r.(type) {
	case *objects.Comment, *objects.Organization:
		return true, nil
	case *objects.KnowledgeBase:
		if p.Is(res.OwnerID) {
			return true, nil
		}

		if res.IsPersonal() {
			return false, nil
		}

		return a.isActiveMember(ctx, *res.OrganizationID, p.UserID)
	default:
		return false, fmt.Errorf("policy: unsupported resource %T", r)
	}
}

// IsActiveMember reports whether userID holds an ACTIVE membership in organizationID.
func (a *Authorizer) IsActiveMember(ctx context.Context, organizationID, userID int64) (bool, error) {
	return a.isActiveMember(ctx, organizationID, userID)
}

func (a *Authorizer) isActiveMember(ctx context.Context, organizationID, userID int64) (bool, error) {
	member, err := a.memberships.FindActiveMembership(ctx, organizationID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to find membership: %w", err)
	}

	return member.IsActive(), nil
}
