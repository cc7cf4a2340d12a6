package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
	"foodorder/internal/pkg/guard"
)

var ErrCreateMenuItemCommandIsNotConstructed = errors.New(
	"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
)

// CreateMenuItemCommand adds a product to a category. The item attributes are
// validated by menu.NewItem when the command is built.
type CreateMenuItemCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Identity
	params menu.ItemParams

	guard guard.ConstructorGuard
}

// NewCreateMenuItemCommand ignores params.ID and params.CreatedAt; both are
// assigned by the handler.
func NewCreateMenuItemCommand(actor kernel.Identity, params menu.ItemParams) (CreateMenuItemCommand, error) {
	params.ID = kernel.NewUUID()
	_, itemErr := menu.NewItem(params)

	if err := errors.Join(validateIdentity(actor), itemErr); err != nil {
		return CreateMenuItemCommand{}, err
	}

	return CreateMenuItemCommand{
		actor:  actor,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

func (c CreateMenuItemCommand) Actor() kernel.Identity {
	return c.actor
}

func (c CreateMenuItemCommand) Params() menu.ItemParams {
	return c.params
}

type CreateMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewCreateMenuItemCommandHandler(uowFactory MenuUoWFactory) CreateMenuItemCommandHandler {
	return CreateMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the item under an existing category.
func (h *CreateMenuItemCommandHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := requireStaff(cmd.Actor()); err != nil {
		return kernel.UUID{}, err
	}

	params := cmd.Params()
	params.CreatedAt = time.Time{}
	item, err := menu.NewItem(params)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuRepository()
	if _, err = menuRepo.GetCategory(ctx, item.CategoryID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = menuRepo.AddItem(ctx, item); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return item.ID(), nil
}
