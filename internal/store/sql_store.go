package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/cowrite/cowrite/internal/log"
)

// SQLStore implements the generic entity store over one table.
type SQLStore[E Row] struct {
	conn    Conn
	dialect string
	table   Table[E]
}

func NewSQLStore[E Row](drv *entsql.Driver, table Table[E]) *SQLStore[E] {
	return &SQLStore[E]{
		conn:    drv.DB(),
		dialect: drv.Dialect(),
		table:   table,
	}
}

// Using returns a copy of the store that runs its statements on conn, typically a *sql.Tx.
func (s *SQLStore[E]) Using(conn Conn) *SQLStore[E] {
	return &SQLStore[E]{
		conn:    conn,
		dialect: s.dialect,
		table:   s.table,
	}
}

func (s *SQLStore[E]) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// Get returns the row with the given id regardless of its deleted flag, or a
// nil entity when there is none.
func (s *SQLStore[E]) Get(ctx context.Context, id int64) (E, error) {
	var zero E

	query, args := s.builder().
		Select(s.table.Columns...).
		From(entsql.Table(s.table.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := s.query(ctx, query, args)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, nil
	}

	return rows[0], nil
}

// Save inserts entity and stamps the generated id on it.
func (s *SQLStore[E]) Save(ctx context.Context, entity E) (bool, error) {
	insert := s.builder().
		Insert(s.table.Name).
		Columns(s.table.writable()...).
		Values(s.table.Values(entity)...)

	if s.dialect == dialect.Postgres {
		query, args := insert.Returning("id").Query()

		var id int64
		if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return false, fmt.Errorf("failed to insert into %s: %w", s.table.Name, err)
		}

		entity.SetID(id)

		return true, nil
	}

	query, args := insert.Query()

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert into %s: %w", s.table.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to read id for %s: %w", s.table.Name, err)
	}

	entity.SetID(id)

	return true, nil
}

// UpdateByID writes every column except id. It reports false when no row has the id.
func (s *SQLStore[E]) UpdateByID(ctx context.Context, entity E) (bool, error) {
	update := s.builder().Update(s.table.Name)

	values := s.table.Values(entity)
	for i, column := range s.table.writable() {
		update.Set(column, values[i])
	}

	query, args := update.Where(entsql.EQ("id", entity.GetID())).Query()

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", s.table.Name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for %s: %w", s.table.Name, err)
	}

	if affected == 0 {
		log.Warn(ctx, "update matched no row", log.String("table", s.table.Name), log.Int64("id", entity.GetID()))
	}

	return affected > 0, nil
}

// List returns the rows matching filter.
func (s *SQLStore[E]) List(ctx context.Context, filter Filter) ([]E, error) {
	if err := filter.validate(s.table.Columns); err != nil {
		return nil, err
	}

	selector := s.selector(filter).Select(s.table.Columns...)
	s.orderBy(selector, filter.OrderBy)

	if filter.Limit > 0 {
		selector.Limit(filter.Limit)
	}

	query, args := selector.Query()

	return s.query(ctx, query, args)
}

// Count returns the number of rows matching filter.
func (s *SQLStore[E]) Count(ctx context.Context, filter Filter) (int64, error) {
	if err := filter.validate(s.table.Columns); err != nil {
		return 0, err
	}

	query, args := s.selector(filter).Count().Query()

	var total int64
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.table.Name, err)
	}

	return total, nil
}

// Page returns one page of the rows matching filter. The page sort field, when
// it names a column, takes precedence over the filter order.
func (s *SQLStore[E]) Page(ctx context.Context, filter Filter, spec PageSpec) (*Page[E], error) {
	spec = spec.Normalize()

	total, err := s.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	order := filter.OrderBy
	if column, ok := spec.sortColumn(s.table.Columns); ok {
		order = []Order{{Column: column, Desc: !spec.Ascending}}
	}

	selector := s.selector(filter).Select(s.table.Columns...)
	s.orderBy(selector, order)
	selector.Limit(spec.Size).Offset(spec.offset())

	query, args := selector.Query()

	records, err := s.query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	return newPage(records, total, spec), nil
}

func (s *SQLStore[E]) selector(filter Filter) *entsql.Selector {
	selector := s.builder().Select().From(entsql.Table(s.table.Name))
	if p := filter.predicate(); p != nil {
		selector.Where(p)
	}

	return selector
}

func (s *SQLStore[E]) orderBy(selector *entsql.Selector, order []Order) {
	if len(order) == 0 {
		order = s.table.DefaultOrder
	}

	for _, o := range order {
		selector.OrderBy(o.build())
	}
}

func (s *SQLStore[E]) query(ctx context.Context, query string, args []any) ([]E, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table.Name, err)
	}

	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn(ctx, "failed to close rows", log.String("table", s.table.Name), log.Cause(cerr))
		}
	}()

	var result []E

	for rows.Next() {
		entity := s.table.New()
		if err := rows.Scan(s.table.Fields(entity)...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.table.Name, err)
		}

		result = append(result, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.table.Name, err)
	}

	return result, nil
}
