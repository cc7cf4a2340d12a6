package commands

import (
	"context"
	"errors"
	"log/slog"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/guard"
)

var ErrDeleteCategoryCommandIsNotConstructed = errors.New(
	"DeleteCategoryCommand must be created via NewDeleteCategoryCommand constructor",
)

type DeleteCategoryCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Identity
	categoryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCategoryCommand(actor kernel.Identity, categoryID kernel.UUID) (DeleteCategoryCommand, error) {
	if err := errors.Join(validateIdentity(actor), categoryID.Validate()); err != nil {
		return DeleteCategoryCommand{}, err
	}

	return DeleteCategoryCommand{
		actor:      actor,
		categoryID: categoryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteCategoryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCategoryCommandIsNotConstructed)
}

func (c DeleteCategoryCommand) Actor() kernel.Identity {
	return c.actor
}

func (c DeleteCategoryCommand) CategoryID() kernel.UUID {
	return c.categoryID
}

// DeleteCategoryCommandHandler removes a category with all of its items.
// Hosted images are removed only after the rows are gone; an image that
// cannot be removed is logged and left behind.
type DeleteCategoryCommandHandler struct {
	uowFactory MenuUoWFactory
	images     ports.ImageStore
	logger     *slog.Logger
}

func NewDeleteCategoryCommandHandler(
	uowFactory MenuUoWFactory,
	images ports.ImageStore,
	logger *slog.Logger,
) DeleteCategoryCommandHandler {
	return DeleteCategoryCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		logger:     logger.With("component", "menu_maintenance"),
	}
}

func (h *DeleteCategoryCommandHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuRepository()
	if _, err := menuRepo.GetCategory(ctx, cmd.CategoryID()); err != nil {
		return err
	}

	items, err := menuRepo.ListItemsByCategory(ctx, cmd.CategoryID())
	if err != nil {
		return err
	}

	if err = menuRepo.DeleteCategory(ctx, cmd.CategoryID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, item := range items {
		if item.ImageURL() == "" {
			continue
		}
		if err = h.images.Delete(ctx, item.ImageURL()); err != nil {
			h.logger.WarnContext(ctx, "failed to delete menu image",
				"item_id", item.ID().String(), "image_url", item.ImageURL(), "error", err)
		}
	}

	return nil
}
