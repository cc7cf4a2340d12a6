package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
)

// MenuRepository defines the persistence contract for categories and menu items.
type MenuRepository interface {
	// AddCategory persists a category. A case-insensitive duplicate name is
	// reported as a precondition failure.
	AddCategory(ctx context.Context, category *menu.Category) error

	GetCategory(ctx context.Context, id kernel.UUID) (*menu.Category, error)

	// DeleteCategory removes a category together with its items.
	DeleteCategory(ctx context.Context, id kernel.UUID) error

	AddItem(ctx context.Context, item *menu.Item) error

	// GetItems returns the items with the given IDs, keyed by ID string.
	// Missing IDs are simply absent from the result.
	GetItems(ctx context.Context, ids []kernel.UUID) (map[string]*menu.Item, error)

	ListItemsByCategory(ctx context.Context, categoryID kernel.UUID) ([]*menu.Item, error)
}
