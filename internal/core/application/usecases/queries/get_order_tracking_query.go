package queries

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery follows one of the caller's orders. While the order is
// in transportation the courier's last reported position is included.
type GetOrderTrackingQuery struct {
	customer kernel.Identity
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(customer kernel.Identity, orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := validateIdentity(customer); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		customer: customer,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderTrackingView is an order plus the live courier position. The courier
// fields are nil unless the order is in transportation and the courier has
// reported a location.
type OrderTrackingView struct {
	Order                    OrderView
	CourierName              string
	CourierLocation          *kernel.Location
	CourierLocationUpdatedAt *time.Time
}

type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (OrderTrackingView, error) {
	if err := query.Validate(); err != nil {
		return OrderTrackingView{}, err
	}

	db := h.db.WithContext(ctx)

	orders, err := findOrders(db.Where("id = ?", query.orderID.Bytes()).Limit(1))
	if err != nil {
		return OrderTrackingView{}, err
	}
	if len(orders) == 0 {
		return OrderTrackingView{}, errs.NewObjectNotFoundError("orderId", query.orderID)
	}

	view := OrderTrackingView{Order: orders[0]}
	if !view.Order.CustomerID.IsEqual(query.customer.UserID) {
		return OrderTrackingView{}, ErrNotOrderOwner
	}

	if view.Order.Status != order.Transportation.String() || view.Order.CourierID == nil {
		return view, nil
	}

	var courier struct {
		Name               string
		LocationLatitude   *float64
		LocationLongitude  *float64
		LastLocationUpdate *time.Time
	}
	err = db.Table("users").
		Select("name, location_latitude, location_longitude, last_location_update").
		Where("id = ?", view.Order.CourierID.Bytes()).
		Take(&courier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil
	}
	if err != nil {
		return OrderTrackingView{}, err
	}

	view.CourierName = courier.Name
	if courier.LocationLatitude != nil && courier.LocationLongitude != nil {
		loc, locErr := kernel.NewLocation(*courier.LocationLatitude, *courier.LocationLongitude)
		if locErr != nil {
			return OrderTrackingView{}, locErr
		}
		view.CourierLocation = &loc
		view.CourierLocationUpdatedAt = courier.LastLocationUpdate
	}

	return view, nil
}
