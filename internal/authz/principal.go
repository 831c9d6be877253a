package authz

import (
	"context"
	"fmt"
)

// PrincipalType defines authorization principal types.
type PrincipalType int

const (
	// PrincipalTypeUnknown unknown principal type.
	PrincipalTypeUnknown PrincipalType = iota
	// PrincipalTypeUser user principal.
	PrincipalTypeUser
)

// String returns string representation of PrincipalType.
func (p PrincipalType) String() string {
	switch p {
	case PrincipalTypeUser:
		return "user"
	default:
		return "unknown"
	}
}

// Principal represents authorization principal.
// Each request can only have one Principal, guaranteed by WithPrincipal's set-once semantics.
type Principal struct {
	Type   PrincipalType
	UserID int64
}

// NewUserPrincipal returns a user principal for userID.
func NewUserPrincipal(userID int64) *Principal {
	return &Principal{Type: PrincipalTypeUser, UserID: userID}
}

// IsUser checks if it is a user principal.
func (p Principal) IsUser() bool {
	return p.Type == PrincipalTypeUser
}

// Is reports whether the principal acts as the user with the given id.
func (p Principal) Is(userID int64) bool {
	return p.IsUser() && p.UserID == userID
}

// String returns string representation of Principal (for audit logs).
func (p Principal) String() string {
	switch p.Type {
	case PrincipalTypeUser:
		return fmt.Sprintf("user:%d", p.UserID)
	default:
		return "unknown"
	}
}

// principalKey is an unexported key type to prevent external forgery.
type principalKey struct{}

// WithPrincipal sets Principal, returns error if a different one already exists.
func WithPrincipal(ctx context.Context, p Principal) (context.Context, error) {
	if existing, ok := GetPrincipal(ctx); ok {
		if existing != p {
			return ctx, fmt.Errorf("authz: principal conflict: existing=%s, new=%s", existing.String(), p.String())
		}

		return ctx, nil
	}

	return context.WithValue(ctx, principalKey{}, p), nil
}

// GetPrincipal gets Principal from context.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// FromContext returns the request principal, or nil when the request is unauthenticated.
func FromContext(ctx context.Context) *Principal {
	p, ok := GetPrincipal(ctx)
	if !ok || p.Type == PrincipalTypeUnknown {
		return nil
	}

	return &p
}

// NewUserContext creates a user principal context.
func NewUserContext(ctx context.Context, userID int64) context.Context {
	ctx, _ = WithPrincipal(ctx, Principal{Type: PrincipalTypeUser, UserID: userID})
	return ctx
}
