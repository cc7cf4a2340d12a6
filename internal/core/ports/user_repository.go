package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user. A duplicate email is reported as a
	// precondition failure.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, aggregate *user.User) error

	// UpdateIfTakenOrder persists changes only if the stored delivery slot
	// still holds expected (nil meaning empty). Returns
	// errs.ErrConcurrentModification otherwise.
	UpdateIfTakenOrder(ctx context.Context, aggregate *user.User, expected *kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate retrieves a user and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// ListStaleCouriers returns available couriers holding no order whose last
	// location report is older than cutoff or missing.
	ListStaleCouriers(ctx context.Context, cutoff time.Time) ([]*user.User, error)
}
