package domain

import "context"

// Category groups events. Its lifecycle is managed elsewhere.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository looks up categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*Category, error)
	// ListByIDs returns the categories that exist among ids, in no particular order.
	ListByIDs(ctx context.Context, ids []string) ([]*Category, error)
}
