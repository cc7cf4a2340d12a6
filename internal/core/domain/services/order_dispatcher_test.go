package services_test

import (
	"testing"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	destination, _ := kernel.NewLocation(52.2297, 21.0122)
	item, err := order.NewItem(kernel.NewUUID(), "Ramen", "", 1, decimal.NewFromInt(12))
	require.NoError(t, err)
	items := []order.Item{item}
	charges := order.CalculateCharges(items, decimal.Zero,
		delivery.CalculateFee(decimal.NewFromInt(5), delivery.NeutralReading()), "", 0)
	contact := order.Contact{Name: "Ann", Phone: "123", Address: "Street 1"}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), contact, destination, items, charges)
	require.NoError(t, err)
	o.MarkPaid()
	require.NoError(t, o.UpdateStatus(order.Processing, kernel.RoleAdmin))
	require.NoError(t, o.UpdateStatus(order.Ready, kernel.RoleAdmin))
	return o
}

func newAvailableCourier(t *testing.T, name string) *user.User {
	t.Helper()
	c, err := user.NewUser(kernel.NewUUID(), name, name+"@example.com", "hash", kernel.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, c.SetAvailability(true))
	return c
}

func TestOrderDispatcher_Assign(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()

	t.Run("should assign a ready order to a free courier", func(t *testing.T) {
		o := newReadyOrder(t)
		c := newAvailableCourier(t, "alice")

		require.NoError(t, dispatcher.Assign(o, c, kernel.RoleManager))

		assert.Equal(t, order.Transportation, o.Status())
		assert.True(t, o.Courier().IsEqual(c.ID()))
		assert.True(t, c.TakenOrder().IsEqual(o.ID()))
	})

	t.Run("should reject a courier already holding an order and change nothing", func(t *testing.T) {
		c := newAvailableCourier(t, "bob")
		require.NoError(t, dispatcher.Assign(newReadyOrder(t), c, kernel.RoleAdmin))
		held := *c.TakenOrder()
		second := newReadyOrder(t)

		err := dispatcher.Assign(second, c, kernel.RoleAdmin)

		require.ErrorIs(t, err, user.ErrCourierUnavailable)
		assert.Equal(t, "no available couriers", errs.Reason(err))
		assert.Equal(t, order.Ready, second.Status())
		assert.Nil(t, second.Courier())
		assert.True(t, c.TakenOrder().IsEqual(held))
	})

	t.Run("should reject an offline courier", func(t *testing.T) {
		o := newReadyOrder(t)
		c := newAvailableCourier(t, "carl")
		require.NoError(t, c.SetAvailability(false))

		require.ErrorIs(t, dispatcher.Assign(o, c, kernel.RoleAdmin), user.ErrCourierUnavailable)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should reject an order that is not ready", func(t *testing.T) {
		o := newReadyOrder(t)
		c1 := newAvailableCourier(t, "dan")
		require.NoError(t, dispatcher.Assign(o, c1, kernel.RoleAdmin))
		c2 := newAvailableCourier(t, "eve")

		err := dispatcher.Assign(o, c2, kernel.RoleAdmin)

		require.ErrorIs(t, err, order.ErrWrongStatus)
		assert.Nil(t, c2.TakenOrder())
		assert.True(t, o.Courier().IsEqual(c1.ID()))
	})

	t.Run("should reject a non-courier account", func(t *testing.T) {
		o := newReadyOrder(t)
		manager, err := user.NewUser(kernel.NewUUID(), "Max", "max@example.com", "hash", kernel.RoleManager)
		require.NoError(t, err)

		require.ErrorIs(t, dispatcher.Assign(o, manager, kernel.RoleAdmin), errs.ErrObjectNotFound)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should reject a non-staff actor", func(t *testing.T) {
		o := newReadyOrder(t)
		c := newAvailableCourier(t, "fay")

		require.ErrorIs(t, dispatcher.Assign(o, c, kernel.RoleCourier), order.ErrWrongStatus)
		assert.Nil(t, c.TakenOrder())
	})
}

func TestOrderDispatcher_Complete(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()

	assigned := func(t *testing.T) (*order.Order, *user.User) {
		o := newReadyOrder(t)
		c := newAvailableCourier(t, "gus")
		require.NoError(t, dispatcher.Assign(o, c, kernel.RoleAdmin))
		return o, c
	}

	t.Run("assigned courier completes and frees the slot", func(t *testing.T) {
		o, c := assigned(t)

		require.NoError(t, dispatcher.Complete(o, c, c.ID()))

		assert.Equal(t, order.Completed, o.Status())
		assert.Nil(t, c.TakenOrder())
		assert.True(t, c.CanTakeOrder())
	})

	t.Run("other courier is rejected", func(t *testing.T) {
		o, c := assigned(t)
		other := newAvailableCourier(t, "hal")

		err := dispatcher.Complete(o, other, other.ID())

		require.ErrorIs(t, err, order.ErrNotAssigned)
		assert.Equal(t, order.Transportation, o.Status())
		assert.True(t, c.TakenOrder().IsEqual(o.ID()))
	})

	t.Run("caller must be the courier passed in", func(t *testing.T) {
		o, c := assigned(t)

		require.ErrorIs(t, dispatcher.Complete(o, c, kernel.NewUUID()), order.ErrNotAssigned)
	})

	t.Run("completing twice is rejected", func(t *testing.T) {
		o, c := assigned(t)
		require.NoError(t, dispatcher.Complete(o, c, c.ID()))

		require.ErrorIs(t, dispatcher.Complete(o, c, c.ID()), order.ErrWrongStatus)
	})
}

func TestOrderDispatcher_RankCouriers(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()
	destination, _ := kernel.NewLocation(52.2297, 21.0122)

	far := newAvailableCourier(t, "far")
	farLoc, _ := kernel.NewLocation(50.06, 19.94)
	require.NoError(t, far.UpdateLocation(farLoc, far.CreatedAt()))

	near := newAvailableCourier(t, "near")
	nearLoc, _ := kernel.NewLocation(52.24, 21.02)
	require.NoError(t, near.UpdateLocation(nearLoc, near.CreatedAt()))

	unknown := newAvailableCourier(t, "unknown")

	busy := newAvailableCourier(t, "busy")
	require.NoError(t, busy.TakeOrder(kernel.NewUUID()))

	ranked, err := dispatcher.RankCouriers(destination, []*user.User{unknown, far, busy, near})

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].Courier.IsEqual(near))
	assert.True(t, ranked[1].Courier.IsEqual(far))
	assert.True(t, ranked[2].Courier.IsEqual(unknown))
	assert.Nil(t, ranked[2].DistanceKm)
	assert.Less(t, *ranked[0].DistanceKm, *ranked[1].DistanceKm)
}
