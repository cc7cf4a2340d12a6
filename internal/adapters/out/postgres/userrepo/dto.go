// Package userrepo persists user aggregates, couriers' presence state
// included, with gorm.
package userrepo

import (
	"time"

	"github.com/google/uuid"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
)

// EmailConstraint is the unique index on normalized emails.
const EmailConstraint = "idx_users_email"

// UserDTO is the users table. taken_order is unique so that no order can sit
// in two couriers' slots.
type UserDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name               string      `gorm:"type:varchar(255);not null"`
	Email              string      `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash       string      `gorm:"type:varchar(255);not null"`
	Role               string      `gorm:"type:varchar(16);not null;index"`
	CreatedAt          time.Time   `gorm:"not null"`
	Available          bool        `gorm:"not null;default:false"`
	TakenOrder         *uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Location           LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	LastLocationUpdate *time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

func fromDomain(u *user.User) UserDTO {
	var takenOrder *uuid.UUID
	if id := u.TakenOrder(); id != nil {
		raw := id.Bytes()
		takenOrder = &raw
	}

	var location LocationDTO
	if loc := u.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		location.Latitude = &lat
		location.Longitude = &lon
	}

	return UserDTO{
		ID:                 u.ID().Bytes(),
		Name:               u.Name(),
		Email:              u.Email(),
		PasswordHash:       u.PasswordHash(),
		Role:               u.Role().String(),
		CreatedAt:          u.CreatedAt(),
		Available:          u.IsAvailable(),
		TakenOrder:         takenOrder,
		Location:           location,
		LastLocationUpdate: u.LastLocationUpdate(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var takenOrder *kernel.UUID
	if dto.TakenOrder != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.TakenOrder)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		takenOrder = &orderID
	}

	var location *kernel.Location
	if dto.Location.Latitude != nil && dto.Location.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Location.Latitude, *dto.Location.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return user.RestoreUser(user.Snapshot{
		ID:                 id,
		Name:               dto.Name,
		Email:              dto.Email,
		PasswordHash:       dto.PasswordHash,
		Role:               kernel.Role(dto.Role),
		CreatedAt:          dto.CreatedAt,
		Available:          dto.Available,
		TakenOrder:         takenOrder,
		Location:           location,
		LastLocationUpdate: dto.LastLocationUpdate,
	})
}
