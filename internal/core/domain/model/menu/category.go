package menu

import (
	"errors"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrCategoryIsNotConstructed = errors.New("category must be created via NewCategory constructor")

// Category groups menu items. Names are unique, compared case-insensitively.
type Category struct {
	id        kernel.UUID
	name      string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewCategory(id kernel.UUID, name string) (*Category, error) {
	return RestoreCategory(id, name, time.Now().UTC())
}

func RestoreCategory(id kernel.UUID, name string, createdAt time.Time) (*Category, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Category{id: id, name: name, createdAt: createdAt, guard: guard.NewConstructorGuard()}, nil
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrCategoryIsNotConstructed
	}
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c *Category) ID() kernel.UUID {
	return c.id
}

func (c *Category) Name() string {
	return c.name
}

// NameKey is the case-insensitive uniqueness key of the category name.
func (c *Category) NameKey() string {
	return strings.ToLower(c.name)
}

func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}
