package queries

import (
	"context"

	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler reads non-completed orders, oldest first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return findOrders(h.db.WithContext(ctx).
		Where("status <> ?", order.Completed.String()).
		Order("created_at ASC, id ASC"))
}
