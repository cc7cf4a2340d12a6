package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

// AvailableCourierView is a courier who can take an order now. DistanceKm is
// set only when ranking against an order and the courier has a location.
type AvailableCourierView struct {
	ID                 kernel.UUID
	Name               string
	Location           *kernel.Location
	LastLocationUpdate *time.Time
	DistanceKm         *float64
}

// GetAvailableCouriersQueryHandler reads free couriers and ranks them with
// the order dispatcher.
type GetAvailableCouriersQueryHandler struct {
	db         *gorm.DB
	dispatcher services.OrderDispatcher
}

func NewGetAvailableCouriersQueryHandler(
	db *gorm.DB,
	dispatcher services.OrderDispatcher,
) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db, dispatcher: dispatcher}
}

type courierRow struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	CreatedAt          time.Time
	LocationLatitude   *float64
	LocationLongitude  *float64
	LastLocationUpdate *time.Time
}

func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]AvailableCourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var rows []courierRow
	err := db.Table("users").
		Select("id, name, email, password_hash, created_at, " +
			"location_latitude, location_longitude, last_location_update").
		Where("role = ? AND available AND taken_order IS NULL", kernel.RoleCourier.String()).
		Order("name ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		c, restoreErr := row.toCourier()
		if restoreErr != nil {
			return nil, restoreErr
		}
		couriers = append(couriers, c)
	}

	if query.orderID == nil {
		views := make([]AvailableCourierView, 0, len(couriers))
		for _, c := range couriers {
			views = append(views, courierView(c, nil))
		}
		return views, nil
	}

	var destination struct {
		DestinationLatitude  float64
		DestinationLongitude float64
	}
	err = db.Table("orders").
		Select("destination_latitude, destination_longitude").
		Where("id = ?", query.orderID.Bytes()).
		Take(&destination).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", *query.orderID)
	}
	if err != nil {
		return nil, err
	}

	target, err := kernel.NewLocation(destination.DestinationLatitude, destination.DestinationLongitude)
	if err != nil {
		return nil, err
	}

	ranked, err := h.dispatcher.RankCouriers(target, couriers)
	if err != nil {
		return nil, err
	}

	views := make([]AvailableCourierView, 0, len(ranked))
	for _, rc := range ranked {
		views = append(views, courierView(rc.Courier, rc.DistanceKm))
	}
	return views, nil
}

func (r courierRow) toCourier() (*user.User, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if r.LocationLatitude != nil && r.LocationLongitude != nil {
		loc, locErr := kernel.NewLocation(*r.LocationLatitude, *r.LocationLongitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return user.RestoreUser(user.Snapshot{
		ID:                 id,
		Name:               r.Name,
		Email:              r.Email,
		PasswordHash:       r.PasswordHash,
		Role:               kernel.RoleCourier,
		CreatedAt:          r.CreatedAt,
		Available:          true,
		Location:           location,
		LastLocationUpdate: r.LastLocationUpdate,
	})
}

func courierView(c *user.User, distanceKm *float64) AvailableCourierView {
	return AvailableCourierView{
		ID:                 c.ID(),
		Name:               c.Name(),
		Location:           c.Location(),
		LastLocationUpdate: c.LastLocationUpdate(),
		DistanceKm:         distanceKm,
	}
}
