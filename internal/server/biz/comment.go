package biz

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/store"
)

type CommentServiceParams struct {
	fx.In

	Stores     *store.Stores
	Authorizer *policy.Authorizer
}

func NewCommentService(params CommentServiceParams) *CommentService {
	return &CommentService{
		stores: params.Stores,
		guard:  policy.NewGuard[*objects.Comment](params.Stores.Comments, params.Authorizer),
	}
}

// CommentService manages document comments. Every mutation of an existing
// comment goes through the guard.
type CommentService struct {
	stores *store.Stores
	guard  *policy.Guard[*objects.Comment]
}

// ListByDocument returns the visible comments of a document, newest first.
func (s *CommentService) ListByDocument(ctx context.Context, p *authz.Principal, documentID int64) ([]*objects.Comment, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	comments, err := s.stores.Comments.List(ctx, store.Filter{
		Where: []store.Predicate{
			store.EQ("document_id", documentID),
			store.NotDeleted(),
		},
		OrderBy: []store.Order{store.Desc("created_at"), store.Desc("id")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Create stores a new ACTIVE comment authored by p.
func (s *CommentService) Create(ctx context.Context, p *authz.Principal, input *objects.Comment) (*objects.Comment, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if err := validateComment(input); err != nil {
		return nil, err
	}

	now := s.guard.Now()
	comment := &objects.Comment{
		DocumentID: input.DocumentID,
		UserID:     p.UserID,
		Content:    input.Content,
		Anchor:     input.Anchor,
		Status:     objects.CommentStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ok, err := s.stores.Comments.Save(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if !ok {
		return nil, policy.ErrPersistenceFailed
	}

	log.Debug(ctx, "comment created", log.Int64("comment_id", comment.ID), log.Int64("document_id", comment.DocumentID))

	return comment, nil
}

// Update replaces the content and anchor of a comment.
func (s *CommentService) Update(ctx context.Context, p *authz.Principal, id int64, input *objects.Comment) (*objects.Comment, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if input == nil || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}

	return s.guard.Update(ctx, p, id, input)
}

// ChangeStatus sets the status of a comment and changes nothing else.
func (s *CommentService) ChangeStatus(ctx context.Context, p *authz.Principal, id int64, status objects.CommentStatus) (*objects.Comment, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown comment status %q", ErrInvalidArgument, status)
	}

	return s.guard.Mutate(ctx, p, id, policy.ActionStatusChange, func(existing *objects.Comment) *objects.Comment {
		existing.Status = status
		return existing
	})
}

func (s *CommentService) Delete(ctx context.Context, p *authz.Principal, id int64) (bool, error) {
	return s.guard.Delete(ctx, p, id)
}

func (s *CommentService) Get(ctx context.Context, p *authz.Principal, id int64) (*objects.Comment, error) {
	return s.guard.Read(ctx, p, id)
}

// Page returns one page of visible comments whose content contains the keyword.
func (s *CommentService) Page(ctx context.Context, p *authz.Principal, req objects.PageRequest) (*store.Page[*objects.Comment], error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}

	where := []store.Predicate{store.NotDeleted()}
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		where = append(where, store.Contains("content", keyword))
	}

	page, err := s.stores.Comments.Page(ctx, store.Filter{Where: where}, toPageSpec(req))
	if err != nil {
		return nil, fmt.Errorf("failed to page comments: %w", err)
	}

	return page, nil
}

func validateComment(input *objects.Comment) error {
	if input == nil {
		return fmt.Errorf("%w: comment is required", ErrInvalidArgument)
	}

	if input.DocumentID <= 0 {
		return fmt.Errorf("%w: documentId is required", ErrInvalidArgument)
	}

	if strings.TrimSpace(input.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}

	return nil
}
