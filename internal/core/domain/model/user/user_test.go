package user_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourier(t *testing.T) *user.User {
	t.Helper()
	c, err := user.NewUser(kernel.NewUUID(), "Bob", "bob@example.com", "hash", kernel.RoleCourier)
	require.NoError(t, err)
	return c
}

func TestNewUser(t *testing.T) {
	t.Run("should create a user with normalized email", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, " Alice ", " Alice@Example.COM ", "hash", kernel.RoleUser)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, "alice@example.com", u.Email())
		assert.Equal(t, kernel.RoleUser, u.Role())
		assert.False(t, u.IsCourier())
	})

	t.Run("couriers start offline with an empty slot", func(t *testing.T) {
		c := newCourier(t)

		assert.True(t, c.IsCourier())
		assert.False(t, c.IsAvailable())
		assert.Nil(t, c.TakenOrder())
		assert.False(t, c.CanTakeOrder())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		u, err := user.NewUser(kernel.UUID{}, " ", "not-an-email", "", kernel.Role("boss"))

		require.Error(t, err)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, user.ErrNameIsRequired)
		assert.ErrorIs(t, err, user.ErrEmailIsInvalid)
		assert.ErrorIs(t, err, user.ErrPasswordHashIsRequired)
		assert.Contains(t, err.Error(), "role")
	})
}

func TestUser_TakeOrder(t *testing.T) {
	t.Run("available courier takes an order", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.SetAvailability(true))
		orderID := kernel.NewUUID()

		require.NoError(t, c.TakeOrder(orderID))

		require.NotNil(t, c.TakenOrder())
		assert.True(t, c.TakenOrder().IsEqual(orderID))
		assert.False(t, c.CanTakeOrder())
	})

	t.Run("rejects a second order even while flagged available", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.SetAvailability(true))
		first := kernel.NewUUID()
		require.NoError(t, c.TakeOrder(first))

		err := c.TakeOrder(kernel.NewUUID())

		require.ErrorIs(t, err, user.ErrCourierUnavailable)
		assert.Equal(t, "no available couriers", errs.Reason(err))
		assert.True(t, c.TakenOrder().IsEqual(first))
	})

	t.Run("rejects an offline courier", func(t *testing.T) {
		c := newCourier(t)

		require.ErrorIs(t, c.TakeOrder(kernel.NewUUID()), user.ErrCourierUnavailable)
		assert.Nil(t, c.TakenOrder())
	})

	t.Run("rejects non-couriers", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Max", "max@example.com", "hash", kernel.RoleManager)
		require.NoError(t, err)

		require.ErrorIs(t, u.TakeOrder(kernel.NewUUID()), user.ErrNotACourier)
		require.ErrorIs(t, u.SetAvailability(true), errs.ErrForbidden)
	})
}

func TestUser_ReleaseOrder(t *testing.T) {
	c := newCourier(t)
	require.NoError(t, c.SetAvailability(true))
	orderID := kernel.NewUUID()
	require.NoError(t, c.TakeOrder(orderID))

	t.Run("rejects another order", func(t *testing.T) {
		require.ErrorIs(t, c.ReleaseOrder(kernel.NewUUID()), user.ErrSlotHoldsAnotherOrder)
		assert.NotNil(t, c.TakenOrder())
	})

	t.Run("releases the carried order", func(t *testing.T) {
		require.NoError(t, c.ReleaseOrder(orderID))
		assert.Nil(t, c.TakenOrder())
		assert.True(t, c.CanTakeOrder())
	})

	t.Run("going offline with an order keeps the order", func(t *testing.T) {
		other := kernel.NewUUID()
		require.NoError(t, c.TakeOrder(other))

		require.NoError(t, c.SetAvailability(false))

		assert.True(t, c.TakenOrder().IsEqual(other))
		require.NoError(t, c.ReleaseOrder(other))
	})
}

func TestUser_UpdateLocation(t *testing.T) {
	c := newCourier(t)
	loc, _ := kernel.NewLocation(50.06, 19.94)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.UpdateLocation(loc, at))

	require.NotNil(t, c.Location())
	assert.Equal(t, loc, *c.Location())
	assert.Equal(t, at, *c.LastLocationUpdate())
	require.Error(t, c.UpdateLocation(kernel.Location{}, at))
}

func TestUser_IsStale(t *testing.T) {
	now := time.Now().UTC()
	cutoff := now.Add(-15 * time.Minute)
	loc, _ := kernel.NewLocation(1, 1)

	t.Run("available idle courier without updates is stale", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.SetAvailability(true))

		assert.True(t, c.IsStale(cutoff))
	})

	t.Run("recent location keeps courier fresh", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.SetAvailability(true))
		require.NoError(t, c.UpdateLocation(loc, now))

		assert.False(t, c.IsStale(cutoff))
	})

	t.Run("courier carrying an order is never stale", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.SetAvailability(true))
		require.NoError(t, c.UpdateLocation(loc, now.Add(-time.Hour)))
		require.NoError(t, c.TakeOrder(kernel.NewUUID()))

		assert.False(t, c.IsStale(cutoff))
	})

	t.Run("offline courier is never stale", func(t *testing.T) {
		assert.False(t, newCourier(t).IsStale(cutoff))
	})
}

func TestRestoreUser(t *testing.T) {
	orderID := kernel.NewUUID()
	loc, _ := kernel.NewLocation(10, 10)
	ts := time.Now().UTC()

	u, err := user.RestoreUser(user.Snapshot{
		ID:                 kernel.NewUUID(),
		Name:               "Carl",
		Email:              "carl@example.com",
		PasswordHash:       "hash",
		Role:               kernel.RoleCourier,
		Available:          true,
		TakenOrder:         &orderID,
		Location:           &loc,
		LastLocationUpdate: &ts,
	})

	require.NoError(t, err)
	assert.True(t, u.IsAvailable())
	assert.True(t, u.TakenOrder().IsEqual(orderID))
	assert.False(t, u.CanTakeOrder())
	assert.Equal(t, loc, *u.Location())

	_, err = user.RestoreUser(user.Snapshot{ID: kernel.NewUUID(), Name: "x", Email: "x@example.com", PasswordHash: "h", Role: "nobody"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
