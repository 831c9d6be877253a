package store

import (
	"context"
	"database/sql"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/cowrite/cowrite/internal/objects"
)

// Stores groups the stores of every entity on one database.
type Stores struct {
	db *sql.DB

	Users          *SQLStore[*objects.User]
	Organizations  *SQLStore[*objects.Organization]
	Members        *MembershipStore
	KnowledgeBases *SQLStore[*objects.KnowledgeBase]
	Comments       *SQLStore[*objects.Comment]
}

func New(drv *entsql.Driver) *Stores {
	return &Stores{
		db:             drv.DB(),
		Users:          NewSQLStore(drv, UserTable),
		Organizations:  NewSQLStore(drv, OrganizationTable),
		Members:        NewMembershipStore(NewSQLStore(drv, OrganizationMemberTable)),
		KnowledgeBases: NewSQLStore(drv, KnowledgeBaseTable),
		Comments:       NewSQLStore(drv, CommentTable),
	}
}

// InTx runs fn with stores bound to a single transaction.
func (s *Stores) InTx(ctx context.Context, fn func(tx *Stores) error) error {
	return InTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&Stores{
			db:             s.db,
			Users:          s.Users.Using(tx),
			Organizations:  s.Organizations.Using(tx),
			Members:        s.Members.Using(tx),
			KnowledgeBases: s.KnowledgeBases.Using(tx),
			Comments:       s.Comments.Using(tx),
		})
	})
}
