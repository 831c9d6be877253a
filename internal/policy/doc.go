// Package policy decides who may read and mutate comments, knowledge bases
// and organizations, and runs every guarded mutation through the same
// load, visibility, authorization and persist sequence.
//
// Outcomes are reported as the sentinel errors ErrUnauthenticated,
// ErrNotFound, ErrForbidden and ErrPersistenceFailed. Any other error comes
// from a collaborator (the store or the membership lookup) and should be
// treated as an internal failure.
package policy
