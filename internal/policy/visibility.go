package policy

import (
	"github.com/samber/lo"

	"github.com/cowrite/cowrite/internal/objects"
)

// Resource is anything the policy can reason about.
type Resource interface {
	Kind() objects.Kind
	IsDeleted() bool
}

// IsVisible is false for nil resources, typed nil pointers included, and for
// soft-deleted ones.
func IsVisible(r Resource) bool {
	if lo.IsNil(r) {
		return false
	}

	return !r.IsDeleted()
}
