package queries_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/ports"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockUserRepository) UpdateIfTakenOrder(ctx context.Context, aggregate *user.User, expected *kernel.UUID) error {
	return m.Called(ctx, aggregate, expected).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ListStaleCouriers(ctx context.Context, cutoff time.Time) ([]*user.User, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(identity kernel.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

type MockFeeCalculator struct {
	mock.Mock
}

func (m *MockFeeCalculator) Calculate(
	ctx context.Context,
	destination kernel.Location,
	baseFee decimal.Decimal,
) (delivery.FeeBreakdown, error) {
	args := m.Called(ctx, destination, baseFee)
	return args.Get(0).(delivery.FeeBreakdown), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) ([]ports.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.GeocodeResult), args.Error(1)
}
