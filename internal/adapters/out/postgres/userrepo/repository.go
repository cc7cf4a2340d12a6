package userrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodorder/internal/adapters/out/postgres/pgerrs"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"
)

// ErrEmailTaken is returned when an account with the same email exists.
var ErrEmailTaken = errs.NewPreconditionFailedError("email already registered")

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, EmailConstraint) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userId", aggregate.ID())
	}
	return nil
}

// UpdateIfTakenOrder writes the user only while the stored slot still holds
// expected. A unique violation on taken_order means the order sits in another
// courier's slot and is reported the same way.
func (r *GormUserRepository) UpdateIfTakenOrder(ctx context.Context, aggregate *user.User, expected *kernel.UUID) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).Model(&UserDTO{})
	if expected == nil {
		query = query.Where("id = ? AND taken_order IS NULL", dto.ID)
	} else {
		query = query.Where("id = ? AND taken_order = ?", dto.ID, expected.Bytes())
	}

	result := query.Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		if pgerrs.IsUniqueViolation(result.Error, "") {
			return errs.ErrConcurrentModification
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrConcurrentModification
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized := user.NormalizeEmail(email)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", normalized)
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListStaleCouriers returns available couriers with an empty slot whose last
// location report is older than cutoff, or who never reported one.
func (r *GormUserRepository) ListStaleCouriers(ctx context.Context, cutoff time.Time) ([]*user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND available AND taken_order IS NULL AND (last_location_update IS NULL OR last_location_update < ?)",
			kernel.RoleCourier.String(), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *GormUserRepository) get(db *gorm.DB, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
