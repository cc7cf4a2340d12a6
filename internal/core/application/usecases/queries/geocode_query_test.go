package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

func TestGeocodeQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	loc, err := kernel.NewLocation(52.2297, 21.0122)
	require.NoError(t, err)

	t.Run("passes results through", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "Marszałkowska 1, Warsaw").
			Return([]ports.GeocodeResult{{DisplayName: "Marszałkowska 1", Location: loc}}, nil)

		query, err := queries.NewGeocodeQuery("  Marszałkowska 1, Warsaw ")
		require.NoError(t, err)

		results, err := queries.NewGeocodeQueryHandler(geocoder).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Marszałkowska 1", results[0].DisplayName)
	})

	t.Run("provider errors become upstream failures", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "somewhere").Return(nil, errors.New("dial tcp: timeout"))

		query, _ := queries.NewGeocodeQuery("somewhere")
		_, err := queries.NewGeocodeQueryHandler(geocoder).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrUpstreamFailure)
		assert.Equal(t, "geocoder is unavailable", errs.Reason(err))
	})
}
