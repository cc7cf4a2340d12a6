package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderView is the read model of an order shown to customers, couriers and
// staff. Amounts are the stored, cent-rounded values.
type OrderView struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	ContactName     string
	ContactPhone    string
	Address         string
	Destination     kernel.Location
	Items           []OrderItemView
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DeliveryFee     decimal.Decimal
	LoyaltyDiscount decimal.Decimal
	Total           decimal.Decimal
	Paid            bool
	Status          string
	CourierID       *kernel.UUID
	CreatedAt       time.Time
}

type OrderItemView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type orderRow struct {
	ID                   uuid.UUID
	CustomerID           uuid.UUID
	ContactName          string
	ContactPhone         string
	ContactAddress       string
	DestinationLatitude  float64
	DestinationLongitude float64
	Items                []OrderItemView `gorm:"serializer:json"`
	Subtotal             decimal.Decimal
	Tax                  decimal.Decimal
	DeliveryFee          decimal.Decimal
	LoyaltyDiscount      decimal.Decimal
	Total                decimal.Decimal
	OrderPaid            bool
	Status               string
	CourierID            *uuid.UUID
	CreatedAt            time.Time
}

// findOrders runs a query scoped to the orders table and maps the rows.
func findOrders(tx *gorm.DB) ([]OrderView, error) {
	var rows []orderRow
	if err := tx.Table("orders").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderView{}, err
	}
	destination, err := kernel.NewLocation(r.DestinationLatitude, r.DestinationLongitude)
	if err != nil {
		return OrderView{}, err
	}

	var courierID *kernel.UUID
	if r.CourierID != nil {
		cid, cidErr := kernel.UUIDFromBytes(r.CourierID[:])
		if cidErr != nil {
			return OrderView{}, cidErr
		}
		courierID = &cid
	}

	items := r.Items
	if items == nil {
		items = []OrderItemView{}
	}

	return OrderView{
		ID:              id,
		CustomerID:      customerID,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
		Address:         r.ContactAddress,
		Destination:     destination,
		Items:           items,
		Subtotal:        r.Subtotal,
		Tax:             r.Tax,
		DeliveryFee:     r.DeliveryFee,
		LoyaltyDiscount: r.LoyaltyDiscount,
		Total:           r.Total,
		Paid:            r.OrderPaid,
		Status:          statusName(r.Status),
		CourierID:       courierID,
		CreatedAt:       r.CreatedAt,
	}, nil
}

// statusName maps a stored status to its canonical name. Legacy spellings
// such as "pending" are folded; unknown values are passed through.
func statusName(stored string) string {
	status, err := order.ParseStatus(stored)
	if err != nil {
		return stored
	}
	return status.String()
}
