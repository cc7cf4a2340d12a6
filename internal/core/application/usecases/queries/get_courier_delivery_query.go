package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetCourierDeliveryQueryIsNotConstructed = errors.New(
		"GetCourierDeliveryQuery must be created via NewGetCourierDeliveryQuery constructor",
	)
)

// GetCourierDeliveryQuery returns the order in the calling courier's slot.
type GetCourierDeliveryQuery struct {
	courier kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetCourierDeliveryQuery(courier kernel.Identity) (GetCourierDeliveryQuery, error) {
	if err := validateIdentity(courier); err != nil {
		return GetCourierDeliveryQuery{}, err
	}
	if courier.Role != kernel.RoleCourier {
		return GetCourierDeliveryQuery{}, ErrCourierRoleRequired
	}
	return GetCourierDeliveryQuery{courier: courier, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDeliveryQueryIsNotConstructed)
}

type GetCourierDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierDeliveryQueryHandler(db *gorm.DB) GetCourierDeliveryQueryHandler {
	return GetCourierDeliveryQueryHandler{db: db}
}

// Handle returns nil when the courier carries no order.
func (h GetCourierDeliveryQueryHandler) Handle(ctx context.Context, query GetCourierDeliveryQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := findOrders(h.db.WithContext(ctx).
		Where("id = (SELECT taken_order FROM users WHERE id = ?)", query.courier.UserID.Bytes()))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}
