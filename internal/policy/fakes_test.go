package policy

import (
	"context"
	"errors"

	"github.com/cowrite/cowrite/internal/objects"
)

type memStore[T any] struct {
	rows       map[int64]*T
	failUpdate bool
	getErr     error
	updates    int
}

func newMemStore[T any](rows ...*T) *memStore[T] {
	s := &memStore[T]{rows: map[int64]*T{}}
	for _, row := range rows {
		s.rows[idOf(row)] = row
	}

	return s
}

func idOf(v any) int64 {
	return v.(interface{ GetID() int64 }).GetID()
}

func (s *memStore[T]) Get(_ context.Context, id int64) (*T, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}

	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}

	clone := *row

	return &clone, nil
}

func (s *memStore[T]) UpdateByID(_ context.Context, entity *T) (bool, error) {
	if s.failUpdate {
		return false, nil
	}

	id := idOf(entity)
	if _, ok := s.rows[id]; !ok {
		return false, nil
	}

	clone := *entity
	s.rows[id] = &clone
	s.updates++

	return true, nil
}

// stored returns the row as persisted, bypassing visibility.
func (s *memStore[T]) stored(id int64) *T {
	return s.rows[id]
}

type memberships struct {
	rows map[[2]int64]*objects.OrganizationMember
	err  error
}

func newMemberships(members ...*objects.OrganizationMember) *memberships {
	m := &memberships{rows: map[[2]int64]*objects.OrganizationMember{}}
	for _, member := range members {
		m.rows[[2]int64{member.OrganizationID, member.UserID}] = member
	}

	return m
}

func (m *memberships) FindActiveMembership(_ context.Context, organizationID, userID int64) (*objects.OrganizationMember, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.rows[[2]int64{organizationID, userID}], nil
}

var errStoreDown = errors.New("store down")

func ptr[T any](v T) *T {
	return &v
}
