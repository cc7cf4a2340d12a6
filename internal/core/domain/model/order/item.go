package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Item is one order line, priced from the menu at checkout time.
type Item struct {
	ProductID kernel.UUID
	Name      string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func NewItem(productID kernel.UUID, name, size string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		Size:      strings.TrimSpace(size),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	var errList []error
	if err := i.ProductID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if i.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if i.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", i.Quantity)))
	}
	if i.UnitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%s is negative", i.UnitPrice)))
	}
	return errors.Join(errList...)
}

// LineTotal is UnitPrice * Quantity, unrounded.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Contact is the delivery contact captured at checkout.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

func (c Contact) Validate() error {
	var errList []error
	if strings.TrimSpace(c.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(c.Phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if strings.TrimSpace(c.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		errList = append(errList, errs.NewValueIsInvalidError("email"))
	}
	return errors.Join(errList...)
}
