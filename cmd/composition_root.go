package cmd

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/cloudinary"
	"foodorder/internal/adapters/out/nominatim"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/userrepo"
	"foodorder/internal/adapters/out/stripe"
	"foodorder/internal/adapters/out/weather"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"
	"foodorder/internal/pkg/auth"
)

// CompositionRoot wires adapters into use cases. Command handlers are built
// once and handed out by pointer.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	tokens     *auth.TokenManager
	hasher     auth.BcryptHasher
	payments   *stripe.Gateway
	images     *cloudinary.Client
	geocoder   *nominatim.Client
	fees       *services.DeliveryFeeCalculator
	dispatcher services.OrderDispatcher

	registerUser           commands.RegisterUserCommandHandler
	createCategory         commands.CreateCategoryCommandHandler
	deleteCategory         commands.DeleteCategoryCommandHandler
	createMenuItem         commands.CreateMenuItemCommandHandler
	uploadMenuImage        commands.UploadMenuImageCommandHandler
	checkout               commands.CheckoutCommandHandler
	updateOrderStatus      commands.UpdateOrderStatusCommandHandler
	confirmPayment         commands.ConfirmPaymentCommandHandler
	assignCourier          commands.AssignCourierCommandHandler
	completeDelivery       commands.CompleteDeliveryCommandHandler
	setCourierAvailability commands.SetCourierAvailabilityCommandHandler
	updateCourierLocation  commands.UpdateCourierLocationCommandHandler
	releaseStaleCouriers   commands.ReleaseStaleCouriersCommandHandler
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redisClient redis.Cmdable,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	payments, err := stripe.NewGateway(stripe.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		SuccessURL:    cfg.StripeSuccessURL,
		CancelURL:     cfg.StripeCancelURL,
		Currency:      cfg.Currency,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	images, err := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	}, cfg.ProviderTimeout)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	weatherProvider := weather.NewCachedProvider(
		weather.NewOpenMeteoClient(cfg.WeatherBaseURL, cfg.ProviderTimeout),
		redisClient,
		weather.DefaultCacheTTL,
		logger,
	)
	fees, err := services.NewDeliveryFeeCalculator(weatherProvider, logger)
	if err != nil {
		return nil, fmt.Errorf("delivery fee calculator: %w", err)
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		logger:     logger,
		tokens:     tokens,
		hasher:     auth.NewBcryptHasher(cfg.BcryptCost),
		payments:   payments,
		images:     images,
		geocoder:   nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.ProviderTimeout),
		fees:       fees,
		dispatcher: services.NewOrderDispatcher(),
	}
	c.buildCommandHandlers()
	return c, nil
}

func (c *CompositionRoot) buildCommandHandlers() {
	var orderUoW commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	var userUoW commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	var menuUoW commands.MenuUoWFactory = FuncMenuUoWFactory(func() commands.MenuUoW {
		return c.uowFactory.Create()
	})
	var deliveryUoW commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	var checkoutUoW commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})

	c.registerUser = commands.NewRegisterUserCommandHandler(userUoW, c.hasher)
	c.createCategory = commands.NewCreateCategoryCommandHandler(menuUoW)
	c.deleteCategory = commands.NewDeleteCategoryCommandHandler(menuUoW, c.images, c.logger)
	c.createMenuItem = commands.NewCreateMenuItemCommandHandler(menuUoW)
	c.uploadMenuImage = commands.NewUploadMenuImageCommandHandler(c.images)
	c.checkout = commands.NewCheckoutCommandHandler(checkoutUoW, c.fees, c.payments, commands.CheckoutPricing{
		TaxRate:         c.cfg.TaxRate,
		BaseDeliveryFee: c.cfg.BaseDeliveryFee,
	})
	c.updateOrderStatus = commands.NewUpdateOrderStatusCommandHandler(orderUoW)
	c.confirmPayment = commands.NewConfirmPaymentCommandHandler(orderUoW, c.payments, c.logger)
	c.assignCourier = commands.NewAssignCourierCommandHandler(deliveryUoW, c.dispatcher)
	c.completeDelivery = commands.NewCompleteDeliveryCommandHandler(deliveryUoW, c.dispatcher)
	c.setCourierAvailability = commands.NewSetCourierAvailabilityCommandHandler(userUoW)
	c.updateCourierLocation = commands.NewUpdateCourierLocationCommandHandler(userUoW)
	c.releaseStaleCouriers = commands.NewReleaseStaleCouriersCommandHandler(userUoW, c.logger)
}

// HTTPServer builds the REST adapter over every use case.
func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterUser: &c.registerUser,
		Login: queries.NewLoginQueryHandler(
			userrepo.NewGormUserRepository(c.gormDB), c.hasher, c.tokens),

		GetMenu:          queries.NewGetMenuQueryHandler(c.gormDB),
		CreateCategory:   &c.createCategory,
		DeleteCategory:   &c.deleteCategory,
		CreateMenuItem:   &c.createMenuItem,
		UploadMenuImage:  &c.uploadMenuImage,
		CalculateFee:     queries.NewCalculateDeliveryFeeQueryHandler(c.fees, c.cfg.BaseDeliveryFee),
		Geocode:          queries.NewGeocodeQueryHandler(c.geocoder),
		GetLoyaltyStatus: queries.NewGetLoyaltyStatusQueryHandler(c.gormDB),

		Checkout:          &c.checkout,
		GetCustomerOrders: queries.NewGetCustomerOrdersQueryHandler(c.gormDB),
		GetOrderTracking:  queries.NewGetOrderTrackingQueryHandler(c.gormDB),
		GetActiveOrders:   queries.NewGetActiveOrdersQueryHandler(c.gormDB),
		UpdateOrderStatus: &c.updateOrderStatus,
		ConfirmPayment:    &c.confirmPayment,

		GetAvailableCouriers:   queries.NewGetAvailableCouriersQueryHandler(c.gormDB, c.dispatcher),
		AssignCourier:          &c.assignCourier,
		CompleteDelivery:       &c.completeDelivery,
		SetCourierAvailability: &c.setCourierAvailability,
		UpdateCourierLocation:  &c.updateCourierLocation,
		GetCourierDelivery:     queries.NewGetCourierDeliveryQueryHandler(c.gormDB),
	}, c.tokens, c.logger)
}

// JobManager builds the scheduled jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(&c.releaseStaleCouriers, jobs.PresenceConfig{
		Window:   c.cfg.CourierPresenceWindow,
		Schedule: c.cfg.CourierPresenceSchedule,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncMenuUoWFactory func() commands.MenuUoW

func (f FuncMenuUoWFactory) Create() commands.MenuUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
