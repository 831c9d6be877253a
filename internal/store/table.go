package store

// Row is an entity with a surrogate int64 key.
type Row interface {
	GetID() int64
	SetID(id int64)
}

// Table maps an entity to a SQL table. Columns lists every column in scan
// order and must start with "id".
type Table[E Row] struct {
	Name    string
	Columns []string

	// New allocates an empty entity to scan into.
	New func() E
	// Fields returns pointers to the entity fields in Columns order.
	Fields func(E) []any
	// Values returns the values of every column except id, in Columns order.
	Values func(E) []any

	// DefaultOrder applies when neither the filter nor the page names an order.
	DefaultOrder []Order
}

func (t Table[E]) writable() []string {
	return t.Columns[1:]
}
