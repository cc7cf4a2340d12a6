package http

import (
	"context"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/loyalty"
	"foodorder/internal/core/ports"
)

// CommandHandler runs a use case that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (kernel.Identity, error)
}

// Handlers are the use cases served over HTTP. Command handlers are passed by
// pointer, query handlers by value.
type Handlers struct {
	// Accounts
	RegisterUser ResultHandler[commands.RegisterUserCommand, kernel.UUID]
	Login        ResultHandler[queries.LoginQuery, queries.Session]

	// Menu
	GetMenu          ResultHandler[queries.GetMenuQuery, []queries.CategoryView]
	CreateCategory   ResultHandler[commands.CreateCategoryCommand, kernel.UUID]
	DeleteCategory   CommandHandler[commands.DeleteCategoryCommand]
	CreateMenuItem   ResultHandler[commands.CreateMenuItemCommand, kernel.UUID]
	UploadMenuImage  ResultHandler[commands.UploadMenuImageCommand, string]
	CalculateFee     ResultHandler[queries.CalculateDeliveryFeeQuery, delivery.FeeBreakdown]
	Geocode          ResultHandler[queries.GeocodeQuery, []ports.GeocodeResult]
	GetLoyaltyStatus ResultHandler[queries.GetLoyaltyStatusQuery, loyalty.Status]

	// Orders
	Checkout          ResultHandler[commands.CheckoutCommand, commands.CheckoutResult]
	GetCustomerOrders ResultHandler[queries.GetCustomerOrdersQuery, []queries.OrderView]
	GetOrderTracking  ResultHandler[queries.GetOrderTrackingQuery, queries.OrderTrackingView]
	GetActiveOrders   ResultHandler[queries.GetActiveOrdersQuery, []queries.OrderView]
	UpdateOrderStatus CommandHandler[commands.UpdateOrderStatusCommand]
	ConfirmPayment    ResultHandler[commands.ConfirmPaymentCommand, commands.PaymentOutcome]

	// Couriers
	GetAvailableCouriers   ResultHandler[queries.GetAvailableCouriersQuery, []queries.AvailableCourierView]
	AssignCourier          CommandHandler[commands.AssignCourierCommand]
	CompleteDelivery       CommandHandler[commands.CompleteDeliveryCommand]
	SetCourierAvailability CommandHandler[commands.SetCourierAvailabilityCommand]
	UpdateCourierLocation  CommandHandler[commands.UpdateCourierLocationCommand]
	GetCourierDelivery     ResultHandler[queries.GetCourierDeliveryQuery, *queries.OrderView]
}
