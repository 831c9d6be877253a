package biz

import (
	"strings"

	"github.com/cowrite/cowrite/internal/authz"
	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
	"github.com/cowrite/cowrite/internal/store"
)

func toPageSpec(req objects.PageRequest) store.PageSpec {
	return store.PageSpec{
		Page:      req.Page,
		Size:      req.Size,
		SortField: req.SortBy,
		Ascending: strings.EqualFold(strings.TrimSpace(req.SortOrder), "asc"),
	}.Normalize()
}

func requireUser(p *authz.Principal) error {
	if p == nil {
		return policy.ErrUnauthenticated
	}

	return nil
}
