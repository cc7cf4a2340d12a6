package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
)

func testContact() order.Contact {
	return order.Contact{Name: "Ann", Phone: "+48 600 100 200", Email: "ann@example.com", Address: "Street 1"}
}

// newOrderAt builds an order and walks it through the regular transitions up
// to status. Orders past placed are paid.
func newOrderAt(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Ramen", "", 1, decimal.NewFromInt(12))
	require.NoError(t, err)
	items := []order.Item{item}
	charges := order.CalculateCharges(items, decimal.Zero,
		delivery.CalculateFee(decimal.NewFromInt(5), delivery.NeutralReading()), "", 0)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testContact(), mustLocation(52.2297, 21.0122), items, charges)
	require.NoError(t, err)
	if status == order.Placed {
		return o
	}

	o.MarkPaid()
	for _, step := range []order.Status{order.Processing, order.Ready} {
		require.NoError(t, o.UpdateStatus(step, kernel.RoleAdmin))
		if step == status {
			return o
		}
	}
	t.Fatalf("newOrderAt does not build %s orders", status)
	return nil
}

func newAvailableCourier(t *testing.T) *user.User {
	t.Helper()
	c, err := user.NewUser(kernel.NewUUID(), "Bob", "bob@example.com", "hash", kernel.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, c.SetAvailability(true))
	return c
}

// newCourierInTransit returns a courier who carries the returned order.
func newCourierInTransit(t *testing.T) (*user.User, *order.Order) {
	t.Helper()
	o := newOrderAt(t, order.Ready)
	c := newAvailableCourier(t)
	require.NoError(t, c.TakeOrder(o.ID()))
	require.NoError(t, o.AssignCourier(c.ID(), kernel.RoleAdmin))
	return c, o
}
