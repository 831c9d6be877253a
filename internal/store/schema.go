package store

import (
	"context"
	"fmt"
	"math"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Migrate creates or upgrades every table the stores use.
func Migrate(ctx context.Context, drv *entsql.Driver) error {
	migrate, err := schema.NewMigrate(drv,
		schema.WithForeignKeys(false),
		schema.WithDropIndex(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrate.Create(ctx, Tables()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Tables returns the schema of every table.
func Tables() []*schema.Table {
	users := schema.NewTable(TableUsers).
		AddPrimary(idColumn()).
		AddColumn(stringColumn("email", 255)).
		AddColumn(stringColumn("name", 255)).
		AddColumn(stringColumn("password", 255)).
		AddColumn(stringColumn("status", 32)).
		AddColumn(&schema.Column{Name: "current_organization_id", Type: field.TypeInt64, Nullable: true}).
		AddColumn(timeColumn("created_at")).
		AddColumn(timeColumn("updated_at")).
		AddIndex("users_email", true, []string{"email"})

	organizations := schema.NewTable(TableOrganizations).
		AddPrimary(idColumn()).
		AddColumn(stringColumn("name", 255)).
		AddColumn(textColumn("description")).
		AddColumn(boolColumn("published")).
		AddColumn(&schema.Column{Name: "max_members", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "owner_id", Type: field.TypeInt64}).
		AddColumn(stringColumn("status", 32)).
		AddColumn(&schema.Column{Name: "current_members", Type: field.TypeInt, Default: 0}).
		AddColumn(boolColumn("deleted")).
		AddColumn(timeColumn("created_at")).
		AddColumn(timeColumn("updated_at")).
		AddIndex("organizations_owner_id", false, []string{"owner_id"})

	members := schema.NewTable(TableOrganizationMembers).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "organization_id", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "user_id", Type: field.TypeInt64}).
		AddColumn(stringColumn("role", 32)).
		AddColumn(stringColumn("status", 32)).
		AddColumn(timeColumn("joined_at")).
		AddColumn(timeColumn("created_at")).
		AddColumn(timeColumn("updated_at")).
		AddIndex("organization_members_organization_id_user_id", true, []string{"organization_id", "user_id"}).
		AddIndex("organization_members_user_id", false, []string{"user_id"})

	knowledgeBases := schema.NewTable(TableKnowledgeBases).
		AddPrimary(idColumn()).
		AddColumn(stringColumn("name", 255)).
		AddColumn(textColumn("description")).
		AddColumn(stringColumn("cover_url", 1024)).
		AddColumn(&schema.Column{Name: "owner_id", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "organization_id", Type: field.TypeInt64, Nullable: true}).
		AddColumn(boolColumn("deleted")).
		AddColumn(timeColumn("created_at")).
		AddColumn(timeColumn("updated_at")).
		AddIndex("knowledge_bases_owner_id", false, []string{"owner_id"}).
		AddIndex("knowledge_bases_organization_id", false, []string{"organization_id"})

	comments := schema.NewTable(TableDocumentComments).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "document_id", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "user_id", Type: field.TypeInt64}).
		AddColumn(textColumn("content")).
		AddColumn(stringColumn("anchor", 1024)).
		AddColumn(stringColumn("status", 32)).
		AddColumn(boolColumn("deleted")).
		AddColumn(timeColumn("created_at")).
		AddColumn(timeColumn("updated_at")).
		AddIndex("document_comments_document_id", false, []string{"document_id"})

	return []*schema.Table{users, organizations, members, knowledgeBases, comments}
}

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt64, Increment: true}
}

func stringColumn(name string, size int64) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: size, Default: ""}
}

func textColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: math.MaxInt32}
}

func boolColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeBool, Default: false}
}

// timeColumn keeps microseconds on MySQL, whose default timestamp drops them.
func timeColumn(name string) *schema.Column {
	return &schema.Column{
		Name:       name,
		Type:       field.TypeTime,
		SchemaType: map[string]string{dialect.MySQL: "datetime(6)"},
	}
}
