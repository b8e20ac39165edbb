package store

import (
	"context"
	"time"
)

// ============================================
// SEGMENT ROUTING LABEL RANGE OPERATIONS
// ============================================

func (s *Store) GetSRLabelRange(ctx context.Context, name string) (*SRLabelRangeBinding, error) {
	return getByField[SRLabelRangeBinding](s.db, ctx, "name", name, ErrSRRangeNotFound)
}

func (s *Store) ListSRLabelRanges(ctx context.Context) ([]*SRLabelRangeBinding, error) {
	return listAll[SRLabelRangeBinding](s.db, ctx)
}

func (s *Store) CreateSRLabelRange(ctx context.Context, r *SRLabelRangeBinding) (string, error) {
	r.CreatedAt = time.Now()
	return createWithID(s.db, ctx, r, func(b *SRLabelRangeBinding, id string) { b.ID = id }, r.ID, ErrDuplicateSRRange)
}

func (s *Store) DeleteSRLabelRange(ctx context.Context, name string) error {
	return deleteByField[SRLabelRangeBinding](s.db, ctx, "name", name, ErrSRRangeNotFound)
}
