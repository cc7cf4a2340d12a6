// Package orderrepo persists order aggregates with gorm.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderDTO is the orders table. Items are stored inline as JSON; amounts are
// stored rounded to cents.
type OrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Contact          ContactDTO  `gorm:"embedded;embeddedPrefix:contact_"`
	Destination      LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Items            []ItemDTO   `gorm:"type:jsonb;serializer:json;not null"`
	Charges          ChargesDTO  `gorm:"embedded"`
	OrderPaid        bool        `gorm:"not null;default:false"`
	Status           string      `gorm:"type:varchar(20);not null;index"`
	CourierID        *uuid.UUID  `gorm:"type:uuid;index"`
	PaymentSessionID string      `gorm:"type:varchar(255);index"`
	CreatedAt        time.Time   `gorm:"not null;index"`
	UpdatedAt        time.Time   `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ContactDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64);not null"`
	Email   string `gorm:"type:varchar(255)"`
	Address string `gorm:"type:text;not null"`
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

type ItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type ChargesDTO struct {
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	BaseFee            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	WeatherAdjustment  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAdjustment    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	WeatherCondition   string          `gorm:"type:varchar(16);not null"`
	WeatherTemperature float64         `gorm:"not null"`
	WeatherWindSpeed   float64         `gorm:"not null"`
	LoyaltyDiscount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LoyaltyPercentage  int             `gorm:"not null"`
	LoyaltyTier        string          `gorm:"type:varchar(32)"`
	Total              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	charges := o.Charges().Rounded()
	contact := o.Contact()

	return OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		Contact: ContactDTO{
			Name:    contact.Name,
			Phone:   contact.Phone,
			Email:   contact.Email,
			Address: contact.Address,
		},
		Destination: LocationDTO{
			Latitude:  o.Destination().Latitude(),
			Longitude: o.Destination().Longitude(),
		},
		Items: items,
		Charges: ChargesDTO{
			Subtotal:           charges.Subtotal,
			Tax:                charges.Tax,
			BaseFee:            charges.Delivery.BaseFee,
			WeatherAdjustment:  charges.Delivery.WeatherAdjustment,
			TotalAdjustment:    charges.Delivery.TotalAdjustment,
			DeliveryFee:        charges.Delivery.TotalFee,
			WeatherCondition:   string(charges.Delivery.Weather.Condition),
			WeatherTemperature: charges.Delivery.Weather.TemperatureC,
			WeatherWindSpeed:   charges.Delivery.Weather.WindSpeedKmh,
			LoyaltyDiscount:    charges.LoyaltyDiscount,
			LoyaltyPercentage:  charges.LoyaltyPercentage,
			LoyaltyTier:        charges.LoyaltyTier,
			Total:              charges.Total,
		},
		OrderPaid:        o.IsPaid(),
		Status:           o.Status().String(),
		CourierID:        courierID,
		PaymentSessionID: o.PaymentSessionID(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	destination, err := kernel.NewLocation(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	status := order.Unknown
	if dto.Status != "" && dto.Status != order.Unknown.String() {
		if status, err = order.ParseStatus(dto.Status); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromString(itemDTO.ProductID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Name, itemDTO.Size, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	c := dto.Charges
	charges := order.Charges{
		Subtotal: c.Subtotal,
		Tax:      c.Tax,
		Delivery: delivery.FeeBreakdown{
			BaseFee:           c.BaseFee,
			WeatherAdjustment: c.WeatherAdjustment,
			TotalAdjustment:   c.TotalAdjustment,
			TotalFee:          c.DeliveryFee,
			Weather: delivery.Reading{
				Condition:    delivery.Condition(c.WeatherCondition),
				TemperatureC: c.WeatherTemperature,
				WindSpeedKmh: c.WeatherWindSpeed,
			},
		},
		LoyaltyDiscount:   c.LoyaltyDiscount,
		LoyaltyPercentage: c.LoyaltyPercentage,
		LoyaltyTier:       c.LoyaltyTier,
		Total:             c.Total,
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		CustomerID: customerID,
		Contact: order.Contact{
			Name:    dto.Contact.Name,
			Phone:   dto.Contact.Phone,
			Email:   dto.Contact.Email,
			Address: dto.Contact.Address,
		},
		Destination:      destination,
		Items:            items,
		Charges:          charges,
		Paid:             dto.OrderPaid,
		Status:           status,
		CourierID:        courierID,
		PaymentSessionID: dto.PaymentSessionID,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
