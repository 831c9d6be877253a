package objects

import "time"

type CommentStatus string

const (
	CommentStatusActive   CommentStatus = "ACTIVE"
	CommentStatusResolved CommentStatus = "RESOLVED"
)

func (s CommentStatus) IsValid() bool {
	return s == CommentStatusActive || s == CommentStatusResolved
}

// Comment is a comment left on a document, optionally anchored to a text range.
type Comment struct {
	ID         int64         `json:"id"`
	DocumentID int64         `json:"documentId"`
	UserID     int64         `json:"userId"`
	Content    string        `json:"content"`
	Anchor     string        `json:"anchor,omitempty"`
	Status     CommentStatus `json:"status"`
	Deleted    bool          `json:"-"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (c *Comment) Kind() Kind        { return KindComment }
func (c *Comment) GetID() int64      { return c.ID }
func (c *Comment) SetID(id int64)    { c.ID = id }
func (c *Comment) IsDeleted() bool   { return c.Deleted }
func (c *Comment) GetOwnerID() int64 { return c.UserID }

// KeepImmutable copies the fields that only the store or a status change may
// set from existing onto c.
func (c *Comment) KeepImmutable(existing *Comment) {
	c.ID = existing.ID
	c.UserID = existing.UserID
	c.DocumentID = existing.DocumentID
	c.Status = existing.Status
	c.Deleted = existing.Deleted
	c.CreatedAt = existing.CreatedAt
}

func (c *Comment) Touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Comment) MarkDeleted() {
	c.Deleted = true
}
