package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBytes = 1 << 20
)

// CalculateDeliveryFee handles POST /delivery/calculate-fee.
func (s *Server) CalculateDeliveryFee(ctx echo.Context) error {
	var req CalculateFeeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}
	if err := requireCoordinates(req.Latitude, req.Longitude); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewCalculateDeliveryFeeQuery(*req.Latitude, *req.Longitude, req.BaseDeliveryFee)
	if err != nil {
		return s.fail(ctx, err)
	}

	fee, err := s.handlers.CalculateFee.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toFeeResponse(fee))
}

// Geocode handles GET /geocode?address=.
func (s *Server) Geocode(ctx echo.Context) error {
	query, err := queries.NewGeocodeQuery(ctx.QueryParam("address"))
	if err != nil {
		return s.fail(ctx, err)
	}

	results, err := s.handlers.Geocode.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toGeocodeResponses(results))
}

// GetLoyaltyStatus handles GET /loyalty.
func (s *Server) GetLoyaltyStatus(ctx echo.Context) error {
	customer, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetLoyaltyStatusQuery(customer)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.handlers.GetLoyaltyStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLoyaltyResponse(status))
}

// Checkout handles POST /checkout - places an order and opens a payment session.
func (s *Server) Checkout(ctx echo.Context) error {
	customer, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}
	if err := requireCoordinates(req.Latitude, req.Longitude); err != nil {
		return s.fail(ctx, err)
	}
	destination, err := kernel.NewLocation(*req.Latitude, *req.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.CartLine, len(req.Items))
	var lineErrs []error
	for i, item := range req.Items {
		productID, err := kernel.ParseUUID("productId", item.ProductID)
		lineErrs = append(lineErrs, err)
		lines[i] = commands.CartLine{ProductID: productID, Size: item.Size, Quantity: item.Quantity}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return s.fail(ctx, err)
	}

	contact := order.Contact{Name: req.Name, Phone: req.Phone, Email: req.Email, Address: req.Address}
	cmd, err := commands.NewCheckoutCommand(customer, contact, destination, lines, req.LoyaltyDiscountPercentage)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCheckoutResponse(result))
}

// GetMyOrders handles GET /my-orders - the caller's order history.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	customer, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customer)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrderTracking handles GET /my-orders/:id/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	customer, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(customer, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	tracking, err := s.handlers.GetOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingResponse(tracking))
}

// GetActiveOrders handles GET /orders - every order not yet completed.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpdateOrderStatus handles PATCH /orders - the generic staff status update.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	orderID, err := kernel.ParseUUID("id", req.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actor, orderID, req.OrderStatus)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Webhook handles POST /webhook - payment provider notifications. The raw
// body is needed for signature verification, so it is not bound.
func (s *Server) Webhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBytes))
	if err != nil {
		return s.fail(ctx, badRequest("unreadable request body"))
	}

	cmd, err := commands.NewConfirmPaymentCommand(payload, ctx.Request().Header.Get(signatureHeader))
	if err != nil {
		return s.fail(ctx, err)
	}

	outcome, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WebhookResponse{Received: true, Outcome: string(outcome)})
}

func requireCoordinates(latitude, longitude *float64) error {
	var errList []error
	if latitude == nil {
		errList = append(errList, errs.NewValueIsRequiredError("latitude"))
	}
	if longitude == nil {
		errList = append(errList, errs.NewValueIsRequiredError("longitude"))
	}
	return errors.Join(errList...)
}
