package objects

import "time"

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Password              string     `json:"-"`
	Status                UserStatus `json:"status"`
	CurrentOrganizationID *int64     `json:"currentOrganizationId,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

// UserInfo is the public view of a user.
type UserInfo struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Status                UserStatus `json:"status"`
	CurrentOrganizationID *int64     `json:"currentOrganizationId,omitempty"`
}

func NewUserInfo(u *User) UserInfo {
	return UserInfo{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		Status:                u.Status,
		CurrentOrganizationID: u.CurrentOrganizationID,
	}
}

// MemberInfo is a user together with their role in an organization.
type MemberInfo struct {
	UserInfo

	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}
