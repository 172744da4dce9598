package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// CategoryRepository wraps sqlc queries for the pre-seeded categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	return r.store.ListCategories(ctx)
}

// Get returns the category with id, or ErrNotFound.
func (r *CategoryRepository) Get(ctx context.Context, id int32) (sqlcgen.Category, error) {
	c, err := r.store.GetCategory(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Category{}, ErrNotFound
	}
	return c, err
}
