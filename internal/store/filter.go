package store

import (
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"
)

type op int

const (
	opEQ op = iota
	opContains
	opIsNull
	opNotNull
	opIn
)

// Predicate is a single column condition.
type Predicate struct {
	op     op
	column string
	value  any
}

// EQ matches rows whose column equals value.
func EQ(column string, value any) Predicate {
	return Predicate{op: opEQ, column: column, value: value}
}

// Contains matches rows whose column contains substr.
func Contains(column, substr string) Predicate {
	return Predicate{op: opContains, column: column, value: substr}
}

// In matches rows whose column is one of values. No values matches nothing.
func In[T any](column string, values ...T) Predicate {
	return Predicate{op: opIn, column: column, value: lo.ToAnySlice(values)}
}

func IsNull(column string) Predicate {
	return Predicate{op: opIsNull, column: column}
}

func NotNull(column string) Predicate {
	return Predicate{op: opNotNull, column: column}
}

func (p Predicate) build() *entsql.Predicate {
	switch p.op {
	case opContains:
		return entsql.Contains(p.column, p.value.(string))
	case opIsNull:
		return entsql.IsNull(p.column)
	case opNotNull:
		return entsql.NotNull(p.column)
	case opIn:
		return entsql.In(p.column, p.value.([]any)...)
	default:
		return entsql.EQ(p.column, p.value)
	}
}

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order {
	return Order{Column: column}
}

func Desc(column string) Order {
	return Order{Column: column, Desc: true}
}

func (o Order) build() string {
	if o.Desc {
		return entsql.Desc(o.Column)
	}

	return entsql.Asc(o.Column)
}

// Filter selects rows. All predicates must hold. Limit <= 0 means no limit.
type Filter struct {
	Where   []Predicate
	OrderBy []Order
	Limit   int
}

// NotDeleted matches rows that are not soft-deleted.
func NotDeleted() Predicate {
	return EQ("deleted", false)
}

func (f Filter) validate(columns []string) error {
	for _, p := range f.Where {
		if !lo.Contains(columns, p.column) {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, p.column)
		}
	}

	for _, o := range f.OrderBy {
		if !lo.Contains(columns, o.Column) {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, o.Column)
		}
	}

	return nil
}

func (f Filter) predicate() *entsql.Predicate {
	if len(f.Where) == 0 {
		return nil
	}

	return entsql.And(lo.Map(f.Where, func(p Predicate, _ int) *entsql.Predicate {
		return p.build()
	})...)
}
