package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/loyalty"
	"foodorder/internal/core/ports"
)

// Requests

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserRequest struct {
	SignUpRequest
	Role string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type SizeDTO struct {
	Name       string          `json:"name"`
	ExtraPrice decimal.Decimal `json:"extraPrice"`
}

type MenuItemRequest struct {
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Sizes       []SizeDTO       `json:"sizes"`
	ImageURL    string          `json:"imageUrl"`
}

type CalculateFeeRequest struct {
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	BaseDeliveryFee *decimal.Decimal `json:"baseDeliveryFee"`
}

type CartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Name                      string            `json:"name"`
	Phone                     string            `json:"phone"`
	Email                     string            `json:"email"`
	Address                   string            `json:"address"`
	Latitude                  *float64          `json:"latitude"`
	Longitude                 *float64          `json:"longitude"`
	Items                     []CartItemRequest `json:"items"`
	LoyaltyDiscountPercentage *int              `json:"loyaltyDiscountPercentage"`
}

type UpdateOrderStatusRequest struct {
	ID          string `json:"id"`
	OrderStatus string `json:"orderStatus"`
}

type CourierAssignmentRequest struct {
	CourierID string `json:"courierId"`
	OrderID   string `json:"orderId"`
}

type CourierCompletionRequest struct {
	OrderID string `json:"orderId"`
}

type AvailabilityRequest struct {
	Availability *bool `json:"availability"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Responses

type IDResponse struct {
	ID string `json:"id"`
}

type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type WeatherResponse struct {
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperature"`
	WindSpeedKmh float64 `json:"windSpeed"`
}

type FeeResponse struct {
	BaseFee           json.Number     `json:"baseFee"`
	WeatherAdjustment json.Number     `json:"weatherAdjustment"`
	TotalAdjustment   json.Number     `json:"totalAdjustment"`
	TotalFee          json.Number     `json:"totalFee"`
	Weather           WeatherResponse `json:"weather"`
}

type TierResponse struct {
	Name               string `json:"name"`
	OrdersRequired     int    `json:"ordersRequired"`
	DiscountPercentage int    `json:"discountPercentage"`
}

type LoyaltyResponse struct {
	CurrentTier        *TierResponse `json:"currentTier"`
	NextTier           *TierResponse `json:"nextTier"`
	DiscountPercentage int           `json:"discountPercentage"`
	OrdersToNextTier   int           `json:"ordersToNextTier"`
	CompletedOrders    int           `json:"completedOrders"`
}

type CheckoutResponse struct {
	OrderID                   string      `json:"orderId"`
	Subtotal                  json.Number `json:"subtotal"`
	Tax                       json.Number `json:"tax"`
	DeliveryFee               FeeResponse `json:"deliveryFee"`
	LoyaltyDiscount           json.Number `json:"loyaltyDiscount"`
	LoyaltyDiscountPercentage int         `json:"loyaltyDiscountPercentage"`
	LoyaltyTier               string      `json:"loyaltyTier,omitempty"`
	Total                     json.Number `json:"total"`
	PaymentURL                string      `json:"paymentUrl"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	CustomerID      string                  `json:"customerId"`
	ContactName     string                  `json:"name"`
	ContactPhone    string                  `json:"phone"`
	Address         string                  `json:"address"`
	Destination     LocationDTO             `json:"destination"`
	Items           []queries.OrderItemView `json:"items"`
	Subtotal        json.Number             `json:"subtotal"`
	Tax             json.Number             `json:"tax"`
	DeliveryFee     json.Number             `json:"deliveryFee"`
	LoyaltyDiscount json.Number             `json:"loyaltyDiscount"`
	Total           json.Number             `json:"total"`
	OrderPaid       bool                    `json:"orderPaid"`
	OrderStatus     string                  `json:"orderStatus"`
	CourierID       *string                 `json:"courierId"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type TrackingResponse struct {
	Order                    OrderResponse `json:"order"`
	CourierName              string        `json:"courierName,omitempty"`
	CourierLocation          *LocationDTO  `json:"courierLocation"`
	CourierLocationUpdatedAt *time.Time    `json:"courierLocationUpdatedAt"`
}

type CourierResponse struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Location           *LocationDTO `json:"location"`
	LastLocationUpdate *time.Time   `json:"lastLocationUpdate"`
	DistanceKm         *float64     `json:"distanceKm,omitempty"`
}

type MenuItemResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	BasePrice   json.Number        `json:"basePrice"`
	Sizes       []queries.SizeView `json:"sizes"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}

type CategoryResponse struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Items []MenuItemResponse `json:"items"`
}

type GeocodeResponse struct {
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type ImageResponse struct {
	URL string `json:"url"`
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

// money renders an amount as a JSON number with two decimals.
func money(amount decimal.Decimal) json.Number {
	return json.Number(kernel.Round2(amount).StringFixed(2))
}

func toLocationDTO(loc kernel.Location) LocationDTO {
	return LocationDTO{Latitude: loc.Latitude(), Longitude: loc.Longitude()}
}

func toFeeResponse(fee delivery.FeeBreakdown) FeeResponse {
	return FeeResponse{
		BaseFee:           money(fee.BaseFee),
		WeatherAdjustment: money(fee.WeatherAdjustment),
		TotalAdjustment:   money(fee.TotalAdjustment),
		TotalFee:          money(fee.TotalFee),
		Weather: WeatherResponse{
			Condition:    string(fee.Weather.Condition),
			TemperatureC: fee.Weather.TemperatureC,
			WindSpeedKmh: fee.Weather.WindSpeedKmh,
		},
	}
}

func toTierResponse(tier *loyalty.Tier) *TierResponse {
	if tier == nil {
		return nil
	}
	return &TierResponse{
		Name:               tier.Name,
		OrdersRequired:     tier.OrdersRequired,
		DiscountPercentage: tier.DiscountPercentage,
	}
}

func toLoyaltyResponse(status loyalty.Status) LoyaltyResponse {
	return LoyaltyResponse{
		CurrentTier:        toTierResponse(status.CurrentTier),
		NextTier:           toTierResponse(status.NextTier),
		DiscountPercentage: status.DiscountPercentage,
		OrdersToNextTier:   status.OrdersToNextTier,
		CompletedOrders:    status.CompletedOrders,
	}
}

func toCheckoutResponse(result commands.CheckoutResult) CheckoutResponse {
	charges := result.Charges
	return CheckoutResponse{
		OrderID:                   result.OrderID.String(),
		Subtotal:                  money(charges.Subtotal),
		Tax:                       money(charges.Tax),
		DeliveryFee:               toFeeResponse(charges.Delivery),
		LoyaltyDiscount:           money(charges.LoyaltyDiscount),
		LoyaltyDiscountPercentage: charges.LoyaltyPercentage,
		LoyaltyTier:               charges.LoyaltyTier,
		Total:                     money(charges.Total),
		PaymentURL:                result.PaymentURL,
	}
}

func toOrderResponse(view queries.OrderView) OrderResponse {
	var courierID *string
	if view.CourierID != nil {
		id := view.CourierID.String()
		courierID = &id
	}
	items := view.Items
	if items == nil {
		items = []queries.OrderItemView{}
	}
	return OrderResponse{
		ID:              view.ID.String(),
		CustomerID:      view.CustomerID.String(),
		ContactName:     view.ContactName,
		ContactPhone:    view.ContactPhone,
		Address:         view.Address,
		Destination:     toLocationDTO(view.Destination),
		Items:           items,
		Subtotal:        money(view.Subtotal),
		Tax:             money(view.Tax),
		DeliveryFee:     money(view.DeliveryFee),
		LoyaltyDiscount: money(view.LoyaltyDiscount),
		Total:           money(view.Total),
		OrderPaid:       view.Paid,
		OrderStatus:     view.Status,
		CourierID:       courierID,
		CreatedAt:       view.CreatedAt,
	}
}

func toOrderResponses(views []queries.OrderView) []OrderResponse {
	response := make([]OrderResponse, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}
	return response
}

func toTrackingResponse(view queries.OrderTrackingView) TrackingResponse {
	response := TrackingResponse{
		Order:                    toOrderResponse(view.Order),
		CourierName:              view.CourierName,
		CourierLocationUpdatedAt: view.CourierLocationUpdatedAt,
	}
	if view.CourierLocation != nil {
		loc := toLocationDTO(*view.CourierLocation)
		response.CourierLocation = &loc
	}
	return response
}

func toCourierResponses(couriers []queries.AvailableCourierView) []CourierResponse {
	response := make([]CourierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = CourierResponse{
			ID:                 courier.ID.String(),
			Name:               courier.Name,
			LastLocationUpdate: courier.LastLocationUpdate,
			DistanceKm:         courier.DistanceKm,
		}
		if courier.Location != nil {
			loc := toLocationDTO(*courier.Location)
			response[i].Location = &loc
		}
	}
	return response
}

func toCategoryResponses(categories []queries.CategoryView) []CategoryResponse {
	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		items := make([]MenuItemResponse, len(category.Items))
		for j, item := range category.Items {
			sizes := item.Sizes
			if sizes == nil {
				sizes = []queries.SizeView{}
			}
			items[j] = MenuItemResponse{
				ID:          item.ID.String(),
				Name:        item.Name,
				Description: item.Description,
				BasePrice:   money(item.BasePrice),
				Sizes:       sizes,
				ImageURL:    item.ImageURL,
			}
		}
		response[i] = CategoryResponse{ID: category.ID.String(), Name: category.Name, Items: items}
	}
	return response
}

func toGeocodeResponses(results []ports.GeocodeResult) []GeocodeResponse {
	response := make([]GeocodeResponse, len(results))
	for i, result := range results {
		response[i] = GeocodeResponse{
			DisplayName: result.DisplayName,
			Latitude:    result.Location.Latitude(),
			Longitude:   result.Location.Longitude(),
		}
	}
	return response
}
