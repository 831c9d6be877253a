package objects

import "time"

type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "active"
	OrganizationStatusDisabled OrganizationStatus = "disabled"
)

func (s OrganizationStatus) IsValid() bool {
	return s == OrganizationStatusActive || s == OrganizationStatusDisabled
}

type Organization struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Published      bool               `json:"published"`
	MaxMembers     int                `json:"maxMembers"`
	OwnerID        int64              `json:"ownerId"`
	Status         OrganizationStatus `json:"status"`
	CurrentMembers int                `json:"currentMembers"`
	Deleted        bool               `json:"-"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (o *Organization) Kind() Kind        { return KindOrganization }
func (o *Organization) GetID() int64      { return o.ID }
func (o *Organization) SetID(id int64)    { o.ID = id }
func (o *Organization) IsDeleted() bool   { return o.Deleted }
func (o *Organization) GetOwnerID() int64 { return o.OwnerID }

// KeepImmutable also keeps the status when the incoming value is not a known one.
func (o *Organization) KeepImmutable(existing *Organization) {
	o.ID = existing.ID
	o.OwnerID = existing.OwnerID
	o.CurrentMembers = existing.CurrentMembers
	o.Deleted = existing.Deleted
	o.CreatedAt = existing.CreatedAt

	if !o.Status.IsValid() {
		o.Status = existing.Status
	}
}

func (o *Organization) Touch(now time.Time) {
	o.UpdatedAt = now
}

func (o *Organization) MarkDeleted() {
	o.Deleted = true
}

// HasCapacity reports whether one more member fits. MaxMembers <= 0 means unlimited.
func (o *Organization) HasCapacity() bool {
	return o.MaxMembers <= 0 || o.CurrentMembers < o.MaxMembers
}

// QuickOrganization is the id and name projection used by organization pickers.
type QuickOrganization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// IsAssignable reports whether the role may be granted through role changes.
// OWNER is reserved for the organization creator.
func (r MemberRole) IsAssignable() bool {
	return r == MemberRoleAdmin || r == MemberRoleMember
}

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusRemoved MemberStatus = "REMOVED"
)

// OrganizationMember links a user to an organization. Only ACTIVE memberships grant rights.
type OrganizationMember struct {
	ID             int64        `json:"id"`
	OrganizationID int64        `json:"organizationId"`
	UserID         int64        `json:"userId"`
	Role           MemberRole   `json:"role"`
	Status         MemberStatus `json:"status"`
	JoinedAt       time.Time    `json:"joinedAt"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (m *OrganizationMember) GetID() int64   { return m.ID }
func (m *OrganizationMember) SetID(id int64) { m.ID = id }

func (m *OrganizationMember) IsActive() bool {
	return m != nil && m.Status == MemberStatusActive
}
