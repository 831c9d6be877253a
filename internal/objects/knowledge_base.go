package objects

import "time"

// DefaultKnowledgeBaseCover is used when a knowledge base is created without a cover.
const DefaultKnowledgeBaseCover = "https://cowrite.oss/static/default-kb-cover.png"

// KnowledgeBase is either personal (OrganizationID == nil) or shared with an organization.
type KnowledgeBase struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CoverURL       string    `json:"coverUrl"`
	OwnerID        int64     `json:"ownerId"`
	OrganizationID *int64    `json:"organizationId,omitempty"`
	Deleted        bool      `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (kb *KnowledgeBase) Kind() Kind        { return KindKnowledgeBase }
func (kb *KnowledgeBase) GetID() int64      { return kb.ID }
func (kb *KnowledgeBase) SetID(id int64)    { kb.ID = id }
func (kb *KnowledgeBase) IsDeleted() bool   { return kb.Deleted }
func (kb *KnowledgeBase) GetOwnerID() int64 { return kb.OwnerID }

// IsPersonal reports whether the knowledge base belongs to no organization.
func (kb *KnowledgeBase) IsPersonal() bool {
	return kb.OrganizationID == nil
}

func (kb *KnowledgeBase) KeepImmutable(existing *KnowledgeBase) {
	kb.ID = existing.ID
	kb.OwnerID = existing.OwnerID
	kb.Deleted = existing.Deleted
	kb.CreatedAt = existing.CreatedAt

	if existing.OrganizationID == nil {
		kb.OrganizationID = nil
	} else {
		orgID := *existing.OrganizationID
		kb.OrganizationID = &orgID
	}
}

func (kb *KnowledgeBase) Touch(now time.Time) {
	kb.UpdatedAt = now
}

func (kb *KnowledgeBase) MarkDeleted() {
	kb.Deleted = true
}

// OrgKnowledgeBase is the id and name projection of an organization knowledge base.
type OrgKnowledgeBase struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
