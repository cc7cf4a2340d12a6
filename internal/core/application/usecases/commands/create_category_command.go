package commands

import (
	"context"
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrCreateCategoryCommandIsNotConstructed = errors.New(
	"CreateCategoryCommand must be created via NewCreateCategoryCommand constructor",
)

type CreateCategoryCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Identity
	name  string

	guard guard.ConstructorGuard
}

func NewCreateCategoryCommand(actor kernel.Identity, name string) (CreateCategoryCommand, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(validateIdentity(actor), nameErr); err != nil {
		return CreateCategoryCommand{}, err
	}

	return CreateCategoryCommand{
		actor: actor,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCategoryCommand) Validate() error {
	return c.guard.Validate(ErrCreateCategoryCommandIsNotConstructed)
}

func (c CreateCategoryCommand) Actor() kernel.Identity {
	return c.actor
}

func (c CreateCategoryCommand) Name() string {
	return c.name
}

type CreateCategoryCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewCreateCategoryCommandHandler(uowFactory MenuUoWFactory) CreateCategoryCommandHandler {
	return CreateCategoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the category. Name uniqueness is case-insensitive and is
// enforced by the repository.
func (h *CreateCategoryCommandHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := requireStaff(cmd.Actor()); err != nil {
		return kernel.UUID{}, err
	}

	category, err := menu.NewCategory(kernel.NewUUID(), cmd.Name())
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

	if err = uow.MenuRepository().AddCategory(ctx, category); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return category.ID(), nil
}
