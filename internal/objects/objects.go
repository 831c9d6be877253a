// Package objects contains the entities persisted by the store and the value
// objects exchanged with the HTTP API. They live here so that store, policy
// and biz can share them without circular imports.
//
// Entities use camelCase json tags. The deleted flag is never decoded from a
// request body.
package objects

// Kind tags the closed set of resources guarded by the policy package.
type Kind string

const (
	KindComment       Kind = "comment"
	KindKnowledgeBase Kind = "knowledge_base"
	KindOrganization  Kind = "organization"
)

func (k Kind) String() string {
	return string(k)
}
