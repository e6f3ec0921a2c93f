package repository

import (
	"context"
	"slices"

	"note-share-be/internal/entity"
)

// INoteRepository owns the persisted note collection. GetById reports
// serverutils.ErrNotFound for unknown ids; read failures wrap
// serverutils.ErrStoreUnavailable so an empty result always means empty.
type INoteRepository interface {
	GetAll(ctx context.Context) ([]*entity.Note, error)
	Create(ctx context.Context, note *entity.Note) (*entity.Note, error)
	GetById(ctx context.Context, id string) (*entity.Note, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// sortNewestFirst orders notes by CreatedAt descending, keeping insertion
// order for equal timestamps.
func sortNewestFirst(notes []*entity.Note) {
	slices.SortStableFunc(notes, func(a, b *entity.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
