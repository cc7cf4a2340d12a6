package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrReleaseStaleCouriersCommandIsNotConstructed = errors.New(
	"ReleaseStaleCouriersCommand must be created via NewReleaseStaleCouriersCommand constructor",
)

// ReleaseStaleCouriersCommand marks idle couriers offline when they have not
// reported a location since Cutoff.
type ReleaseStaleCouriersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewReleaseStaleCouriersCommand(cutoff time.Time) (ReleaseStaleCouriersCommand, error) {
	if cutoff.IsZero() {
		return ReleaseStaleCouriersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ReleaseStaleCouriersCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseStaleCouriersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleCouriersCommandIsNotConstructed)
}

func (c ReleaseStaleCouriersCommand) Cutoff() time.Time {
	return c.cutoff
}

// ReleaseStaleCouriersCommandHandler only ever flips availability. Each
// courier is re-read under a row lock and re-checked, so a courier who took
// an order or reported a location after the scan is left alone.
type ReleaseStaleCouriersCommandHandler struct {
	uowFactory UserUoWFactory
	logger     *slog.Logger
}

func NewReleaseStaleCouriersCommandHandler(uowFactory UserUoWFactory, logger *slog.Logger) ReleaseStaleCouriersCommandHandler {
	return ReleaseStaleCouriersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "courier_presence"),
	}
}

// Handle returns the number of couriers marked unavailable.
func (h *ReleaseStaleCouriersCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleCouriersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.uowFactory.Create().UserRepository().ListStaleCouriers(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, candidate := range stale {
		ok, err := h.release(ctx, candidate.ID(), cmd.Cutoff())
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to release stale courier",
				"courier_id", candidate.ID().String(), "error", err)
			continue
		}
		if ok {
			released++
		}
	}

	return released, nil
}

func (h *ReleaseStaleCouriersCommandHandler) release(ctx context.Context, id kernel.UUID, cutoff time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	courier, err := userRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}
	if !courier.IsStale(cutoff) {
		return false, nil
	}

	if err = courier.SetAvailability(false); err != nil {
		return false, err
	}
	if err = userRepo.Update(ctx, courier); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
