package postgres

import (
	"context"
	"database/sql"

	"explorewithme/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserShort, error) {
	query := `
		SELECT id, name
		FROM users
		WHERE id = $1
	`
	u := &domain.UserShort{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}
