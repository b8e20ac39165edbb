package store

import (
	"context"
	"time"
)

// ============================================
// STATIC ROUTE OPERATIONS
// ============================================

func (s *Store) GetStaticRoute(ctx context.Context, id string) (*StaticRoute, error) {
	return getByField[StaticRoute](s.db, ctx, "id", id, ErrStaticRouteNotFound)
}

func (s *Store) ListStaticRoutes(ctx context.Context) ([]*StaticRoute, error) {
	return listAll[StaticRoute](s.db, ctx)
}

func (s *Store) CreateStaticRoute(ctx context.Context, r *StaticRoute) (string, error) {
	r.CreatedAt = time.Now()
	return createWithID(s.db, ctx, r, func(sr *StaticRoute, id string) { sr.ID = id }, r.ID, ErrDuplicateStaticRoute)
}

func (s *Store) DeleteStaticRoute(ctx context.Context, id string) error {
	return deleteByField[StaticRoute](s.db, ctx, "id", id, ErrStaticRouteNotFound)
}
