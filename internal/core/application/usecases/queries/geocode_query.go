package queries

import (
	"context"
	"errors"
	"strings"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGeocodeQueryIsNotConstructed = errors.New(
		"GeocodeQuery must be created via NewGeocodeQuery constructor",
	)
)

type GeocodeQuery struct {
	address string

	guard guard.ConstructorGuard
}

func NewGeocodeQuery(address string) (GeocodeQuery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GeocodeQuery{}, errs.NewValueIsRequiredError("address")
	}
	return GeocodeQuery{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (q GeocodeQuery) Validate() error {
	return q.guard.Validate(ErrGeocodeQueryIsNotConstructed)
}

type GeocodeQueryHandler struct {
	geocoder ports.Geocoder
}

func NewGeocodeQueryHandler(geocoder ports.Geocoder) GeocodeQueryHandler {
	return GeocodeQueryHandler{geocoder: geocoder}
}

func (h GeocodeQueryHandler) Handle(ctx context.Context, query GeocodeQuery) ([]ports.GeocodeResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	results, err := h.geocoder.Geocode(ctx, query.address)
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamFailure) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.NewUpstreamFailureError("geocoder", err)
	}
	return results, nil
}
