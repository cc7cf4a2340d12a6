package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// GetAvailableCouriers handles GET /couriers/available. With ?orderId= the
// couriers are ranked by distance to that order's destination.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var orderID *kernel.UUID
	if raw := ctx.QueryParam("orderId"); raw != "" {
		id, err := kernel.ParseUUID("orderId", raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		orderID = &id
	}

	query, err := queries.NewGetAvailableCouriersQuery(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	couriers, err := s.handlers.GetAvailableCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourierResponses(couriers))
}

// AssignCourier handles PATCH /courier-assignment.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CourierAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	orderID, err := kernel.ParseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	courierID, err := kernel.ParseUUID("courierId", req.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(actor, orderID, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles PATCH /courier-completion.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	courier, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CourierCompletionRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	orderID, err := kernel.ParseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(courier, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetCourierAvailability handles PATCH /courier/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courier, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req AvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}
	if req.Availability == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError("availability"))
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courier, *req.Availability)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.SetCourierAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCourierLocation handles PATCH /courier/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courier, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req LocationRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}
	if err := requireCoordinates(req.Latitude, req.Longitude); err != nil {
		return s.fail(ctx, err)
	}
	location, err := kernel.NewLocation(*req.Latitude, *req.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courier, location)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.UpdateCourierLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetMyDelivery handles GET /my-delivery - the order in the courier's slot,
// or null when it is empty.
func (s *Server) GetMyDelivery(ctx echo.Context) error {
	courier, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCourierDeliveryQuery(courier)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetCourierDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	if view == nil {
		return ctx.JSON(http.StatusOK, nil)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(*view))
}
