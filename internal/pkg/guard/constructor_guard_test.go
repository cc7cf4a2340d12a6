package guard_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/pkg/guard"
)

var errCartNotConstructed = errors.New("cart must be created via newCart")

type cart struct {
	lines int
	guard guard.ConstructorGuard
}

func newCart(lines int) (cart, error) {
	if lines <= 0 {
		return cart{}, errors.New("cart is empty")
	}
	return cart{lines: lines, guard: guard.NewConstructorGuard()}, nil
}

func (c cart) Validate() error {
	return c.guard.Validate(errCartNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       guard.ConstructorGuard
		given   error
		wantErr error
	}{
		{"constructed with custom error", guard.NewConstructorGuard(), errCartNotConstructed, nil},
		{"constructed with nil error", guard.NewConstructorGuard(), nil, nil},
		{"zero value returns the given error", guard.ConstructorGuard{}, errCartNotConstructed, errCartNotConstructed},
		{"zero value falls back to the default", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate(tt.given)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	t.Run("constructor output validates", func(t *testing.T) {
		c, err := newCart(2)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, 2, c.lines)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		c := cart{lines: 2}

		require.ErrorIs(t, c.Validate(), errCartNotConstructed)
	})

	t.Run("copies keep the guard", func(t *testing.T) {
		c, err := newCart(1)
		require.NoError(t, err)

		copied := c
		copied.lines = 3

		require.NoError(t, copied.Validate())
	})

	t.Run("constructor rules still apply", func(t *testing.T) {
		_, err := newCart(0)

		require.EqualError(t, err, "cart is empty")
	})
}
