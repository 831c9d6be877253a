package store

import (
	"database/sql"

	"github.com/cowrite/cowrite/internal/objects"
)

const (
	TableUsers               = "users"
	TableOrganizations       = "organizations"
	TableOrganizationMembers = "organization_members"
	TableKnowledgeBases      = "knowledge_bases"
	TableDocumentComments    = "document_comments"
)

var defaultOrder = []Order{Desc("created_at"), Desc("id")}

var UserTable = Table[*objects.User]{
	Name:    TableUsers,
	Columns: []string{"id", "email", "name", "password", "status", "current_organization_id", "created_at", "updated_at"},
	New:     func() *objects.User { return &objects.User{} },
	Fields: func(u *objects.User) []any {
		return []any{&u.ID, &u.Email, &u.Name, &u.Password, &u.Status, nullableInt64{&u.CurrentOrganizationID}, &u.CreatedAt, &u.UpdatedAt}
	},
	Values: func(u *objects.User) []any {
		return []any{u.Email, u.Name, u.Password, string(u.Status), nullable(u.CurrentOrganizationID), u.CreatedAt, u.UpdatedAt}
	},
	DefaultOrder: []Order{Asc("id")},
}

var OrganizationTable = Table[*objects.Organization]{
	Name: TableOrganizations,
	Columns: []string{
		"id", "name", "description", "published", "max_members", "owner_id",
		"status", "current_members", "deleted", "created_at", "updated_at",
	},
	New: func() *objects.Organization { return &objects.Organization{} },
	Fields: func(o *objects.Organization) []any {
		return []any{
			&o.ID, &o.Name, &o.Description, &o.Published, &o.MaxMembers, &o.OwnerID,
			&o.Status, &o.CurrentMembers, &o.Deleted, &o.CreatedAt, &o.UpdatedAt,
		}
	},
	Values: func(o *objects.Organization) []any {
		return []any{
			o.Name, o.Description, o.Published, o.MaxMembers, o.OwnerID,
			string(o.Status), o.CurrentMembers, o.Deleted, o.CreatedAt, o.UpdatedAt,
		}
	},
	DefaultOrder: defaultOrder,
}

var OrganizationMemberTable = Table[*objects.OrganizationMember]{
	Name:    TableOrganizationMembers,
	Columns: []string{"id", "organization_id", "user_id", "role", "status", "joined_at", "created_at", "updated_at"},
	New:     func() *objects.OrganizationMember { return &objects.OrganizationMember{} },
	Fields: func(m *objects.OrganizationMember) []any {
		return []any{&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt}
	},
	Values: func(m *objects.OrganizationMember) []any {
		return []any{m.OrganizationID, m.UserID, string(m.Role), string(m.Status), m.JoinedAt, m.CreatedAt, m.UpdatedAt}
	},
	DefaultOrder: []Order{Asc("joined_at"), Asc("id")},
}

var KnowledgeBaseTable = Table[*objects.KnowledgeBase]{
	Name: TableKnowledgeBases,
	Columns: []string{
		"id", "name", "description", "cover_url", "owner_id", "organization_id",
		"deleted", "created_at", "updated_at",
	},
	New: func() *objects.KnowledgeBase { return &objects.KnowledgeBase{} },
	Fields: func(kb *objects.KnowledgeBase) []any {
		return []any{
			&kb.ID, &kb.Name, &kb.Description, &kb.CoverURL, &kb.OwnerID, nullableInt64{&kb.OrganizationID},
			&kb.Deleted, &kb.CreatedAt, &kb.UpdatedAt,
		}
	},
	Values: func(kb *objects.KnowledgeBase) []any {
		return []any{
			kb.Name, kb.Description, kb.CoverURL, kb.OwnerID, nullable(kb.OrganizationID),
			kb.Deleted, kb.CreatedAt, kb.UpdatedAt,
		}
	},
	DefaultOrder: defaultOrder,
}

var CommentTable = Table[*objects.Comment]{
	Name: TableDocumentComments,
	Columns: []string{
		"id", "document_id", "user_id", "content", "anchor", "status",
		"deleted", "created_at", "updated_at",
	},
	New: func() *objects.Comment { return &objects.Comment{} },
	Fields: func(c *objects.Comment) []any {
		return []any{
			&c.ID, &c.DocumentID, &c.UserID, &c.Content, &c.Anchor, &c.Status,
			&c.Deleted, &c.CreatedAt, &c.UpdatedAt,
		}
	},
	Values: func(c *objects.Comment) []any {
		return []any{
			c.DocumentID, c.UserID, c.Content, c.Anchor, string(c.Status),
			c.Deleted, c.CreatedAt, c.UpdatedAt,
		}
	},
	DefaultOrder: defaultOrder,
}

// nullableInt64 scans a nullable integer column into an *int64 field.
type nullableInt64 struct {
	dst **int64
}

func (n nullableInt64) Scan(value any) error {
	var v sql.NullInt64
	if err := v.Scan(value); err != nil {
		return err
	}

	if !v.Valid {
		*n.dst = nil
		return nil
	}

	id := v.Int64
	*n.dst = &id

	return nil
}

func nullable(v *int64) any {
	if v == nil {
		return nil
	}

	return *v
}
