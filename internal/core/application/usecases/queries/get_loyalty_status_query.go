package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/loyalty"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetLoyaltyStatusQueryIsNotConstructed = errors.New(
		"GetLoyaltyStatusQuery must be created via NewGetLoyaltyStatusQuery constructor",
	)
)

// GetLoyaltyStatusQuery computes the caller's loyalty tier from their
// completed orders. Checkout recomputes the same value, so what is shown here
// is exactly what the next order earns.
type GetLoyaltyStatusQuery struct {
	customer kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetLoyaltyStatusQuery(customer kernel.Identity) (GetLoyaltyStatusQuery, error) {
	if err := validateIdentity(customer); err != nil {
		return GetLoyaltyStatusQuery{}, err
	}
	return GetLoyaltyStatusQuery{customer: customer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLoyaltyStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetLoyaltyStatusQueryIsNotConstructed)
}

type GetLoyaltyStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetLoyaltyStatusQueryHandler(db *gorm.DB) GetLoyaltyStatusQueryHandler {
	return GetLoyaltyStatusQueryHandler{db: db}
}

func (h GetLoyaltyStatusQueryHandler) Handle(ctx context.Context, query GetLoyaltyStatusQuery) (loyalty.Status, error) {
	if err := query.Validate(); err != nil {
		return loyalty.Status{}, err
	}

	var completed int64
	err := h.db.WithContext(ctx).
		Table("orders").
		Where("customer_id = ? AND status = ?", query.customer.UserID.Bytes(), order.Completed.String()).
		Count(&completed).Error
	if err != nil {
		return loyalty.Status{}, err
	}

	return loyalty.CalculateStatus(int(completed)), nil
}
