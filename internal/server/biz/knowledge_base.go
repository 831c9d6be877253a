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

type KnowledgeBaseServiceParams struct {
	fx.In

	Stores     *store.Stores
	Authorizer *policy.Authorizer
}

func NewKnowledgeBaseService(params KnowledgeBaseServiceParams) *KnowledgeBaseService {
	return &KnowledgeBaseService{
		stores: params.Stores,
		guard:  policy.NewGuard[*objects.KnowledgeBase](params.Stores.KnowledgeBases, params.Authorizer),
		access: orgAccess{
			orgs:       policy.NewGuard[*objects.Organization](params.Stores.Organizations, params.Authorizer),
			authorizer: params.Authorizer,
		},
	}
}

type KnowledgeBaseService struct {
	stores *store.Stores
	guard  *policy.Guard[*objects.KnowledgeBase]
	access orgAccess
}

// ListOrganizationKnowledgeBases returns the id and name of every visible
// knowledge base of an organization the principal belongs to.
func (s *KnowledgeBaseService) ListOrganizationKnowledgeBases(ctx context.Context, p *authz.Principal, organizationID int64) ([]objects.OrgKnowledgeBase, error) {
	if _, err := s.access.requireMember(ctx, p, organizationID); err != nil {
		return nil, err
	}

	kbs, err := s.stores.KnowledgeBases.List(ctx, store.Filter{
		Where: []store.Predicate{
			store.EQ("organization_id", organizationID),
			store.NotDeleted(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge bases: %w", err)
	}

	return lo.Map(kbs, func(kb *objects.KnowledgeBase, _ int) objects.OrgKnowledgeBase {
		return objects.OrgKnowledgeBase{ID: kb.ID, Name: kb.Name}
	}), nil
}

// CreatePersonal creates a knowledge base owned by p outside any organization.
func (s *KnowledgeBaseService) CreatePersonal(ctx context.Context, p *authz.Principal, input *objects.KnowledgeBase) (*objects.KnowledgeBase, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if err := validateKnowledgeBase(input); err != nil {
		return nil, err
	}

	return s.create(ctx, p, input, nil)
}

// CreateOrganization creates a knowledge base shared with an organization p belongs to.
func (s *KnowledgeBaseService) CreateOrganization(ctx context.Context, p *authz.Principal, input *objects.KnowledgeBase) (*objects.KnowledgeBase, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if err := validateKnowledgeBase(input); err != nil {
		return nil, err
	}

	if input.OrganizationID == nil {
		return nil, fmt.Errorf("%w: organizationId is required", ErrInvalidArgument)
	}

	org, err := s.access.requireMember(ctx, p, *input.OrganizationID)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, p, input, &org.ID)
}

func (s *KnowledgeBaseService) create(ctx context.Context, p *authz.Principal, input *objects.KnowledgeBase, organizationID *int64) (*objects.KnowledgeBase, error) {
	now := s.guard.Now()
	kb := &objects.KnowledgeBase{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		CoverURL:       lo.CoalesceOrEmpty(strings.TrimSpace(input.CoverURL), objects.DefaultKnowledgeBaseCover),
		OwnerID:        p.UserID,
		OrganizationID: organizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ok, err := s.stores.KnowledgeBases.Save(ctx, kb)
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge base: %w", err)
	}

	if !ok {
		return nil, policy.ErrPersistenceFailed
	}

	log.Info(ctx, "knowledge base created",
		log.Int64("knowledge_base_id", kb.ID),
		log.Bool("personal", kb.IsPersonal()),
	)

	return kb, nil
}

// ListPersonal returns the visible personal knowledge bases of p, newest first.
func (s *KnowledgeBaseService) ListPersonal(ctx context.Context, p *authz.Principal) ([]*objects.KnowledgeBase, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	kbs, err := s.stores.KnowledgeBases.List(ctx, store.Filter{
		Where: []store.Predicate{
			store.EQ("owner_id", p.UserID),
			store.IsNull("organization_id"),
			store.NotDeleted(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge bases: %w", err)
	}

	return kbs, nil
}

// Update replaces the name, description and cover of the knowledge base input.ID.
func (s *KnowledgeBaseService) Update(ctx context.Context, p *authz.Principal, input *objects.KnowledgeBase) (*objects.KnowledgeBase, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if err := validateKnowledgeBase(input); err != nil {
		return nil, err
	}

	if input.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}

	input.Name = strings.TrimSpace(input.Name)
	input.CoverURL = lo.CoalesceOrEmpty(strings.TrimSpace(input.CoverURL), objects.DefaultKnowledgeBaseCover)

	return s.guard.Update(ctx, p, input.ID, input)
}

func (s *KnowledgeBaseService) Get(ctx context.Context, p *authz.Principal, id int64) (*objects.KnowledgeBase, error) {
	return s.guard.Read(ctx, p, id)
}

func (s *KnowledgeBaseService) Delete(ctx context.Context, p *authz.Principal, id int64) (bool, error) {
	return s.guard.Delete(ctx, p, id)
}

func validateKnowledgeBase(input *objects.KnowledgeBase) error {
	if input == nil {
		return fmt.Errorf("%w: knowledge base is required", ErrInvalidArgument)
	}

	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	return nil
}
