package postgres

import (
	"context"
	"database/sql"

	"explorewithme/internal/domain"

	"github.com/lib/pq"
)

type categoryRepository struct {
	DB *sql.DB
}

// NewCategoryRepository returns a domain.CategoryRepository implemented with Postgres.
func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *categoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT id, name FROM categories WHERE id = ANY($1::uuid[]) ORDER BY name`, pq.Array(ids))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
