package menu

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("menu item must be created via NewItem constructor")

// Size is a purchasable variant of an item, priced on top of the base price.
type Size struct {
	Name       string
	ExtraPrice decimal.Decimal
}

// Item is a product on the menu.
type Item struct {
	id          kernel.UUID
	categoryID  kernel.UUID
	name        string
	description string
	basePrice   decimal.Decimal
	sizes       []Size
	imageURL    string
	createdAt   time.Time
	guard       guard.ConstructorGuard
}

// ItemParams are the attributes of a menu item.
type ItemParams struct {
	ID          kernel.UUID
	CategoryID  kernel.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Sizes       []Size
	ImageURL    string
	CreatedAt   time.Time
}

// NewItem validates params and creates a menu item. Size names must be
// unique within the item and extra prices must not be negative.
func NewItem(p ItemParams) (*Item, error) {
	var errList []error
	if err := p.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := p.CategoryID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("categoryId", err))
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if p.BasePrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"basePrice", fmt.Errorf("%s is negative", p.BasePrice)))
	}

	seen := make(map[string]struct{}, len(p.Sizes))
	sizes := make([]Size, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizeName := strings.TrimSpace(s.Name)
		key := strings.ToLower(sizeName)
		if sizeName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("size name"))
			continue
		}
		if _, dup := seen[key]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"sizes", fmt.Errorf("size %q is listed twice", sizeName)))
			continue
		}
		if s.ExtraPrice.IsNegative() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"sizes", fmt.Errorf("size %q has a negative extra price", sizeName)))
			continue
		}
		seen[key] = struct{}{}
		sizes = append(sizes, Size{Name: sizeName, ExtraPrice: s.ExtraPrice})
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &Item{
		id:          p.ID,
		categoryID:  p.CategoryID,
		name:        name,
		description: strings.TrimSpace(p.Description),
		basePrice:   p.BasePrice,
		sizes:       sizes,
		imageURL:    strings.TrimSpace(p.ImageURL),
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) CategoryID() kernel.UUID {
	return i.categoryID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Description() string {
	return i.description
}

func (i *Item) BasePrice() decimal.Decimal {
	return i.basePrice
}

func (i *Item) Sizes() []Size {
	sizes := make([]Size, len(i.sizes))
	copy(sizes, i.sizes)
	return sizes
}

func (i *Item) ImageURL() string {
	return i.imageURL
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// UnitPrice returns the price of one unit in the requested size. An item
// without sizes is sold only with an empty size.
func (i *Item) UnitPrice(size string) (decimal.Decimal, error) {
	size = strings.TrimSpace(size)
	if len(i.sizes) == 0 {
		if size != "" {
			return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
				"size", fmt.Errorf("%s is not sold in size %q", i.name, size))
		}
		return i.basePrice, nil
	}

	for _, s := range i.sizes {
		if strings.EqualFold(s.Name, size) {
			return i.basePrice.Add(s.ExtraPrice), nil
		}
	}

	return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
		"size", fmt.Errorf("%s is not sold in size %q", i.name, size))
}
