package config

import (
	"wallet-service/src/internal/delivery/http"
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/delivery/http/route"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/repository"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	profileRepository := repository.NewProfileRepository(config.DB)
	transactionRepository := repository.NewTransactionRepository(config.DB)
	settingsRepository := repository.NewSettingsRepository(config.DB)
	beneficiaryRepository := repository.NewBeneficiaryRepository(config.DB)
	productRepository := repository.NewProductRepository(config.DB)
	orderRepository := repository.NewOrderRepository(config.DB)

	transactionProducer := messaging.NewTransactionProducer(config.Producer, config.Log)
	vtuClient := NewVTUClient(config.Config, config.Log)
	settingsProvider := usecase.NewSettingsProvider(config.Log, settingsRepository, config.Redis)

	// setup use cases
	walletUseCase := usecase.NewWalletUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		transactionRepository,
		beneficiaryRepository,
		settingsProvider,
		vtuClient,
		transactionProducer,
		config.AsynqClient,
	)
	referralUseCase := usecase.NewReferralUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		transactionRepository,
		settingsProvider,
		config.Redis,
		vtuClient,
		transactionProducer,
	)
	profileUseCase := usecase.NewProfileUseCase(config.Log, config.Validate, profileRepository)
	beneficiaryUseCase := usecase.NewBeneficiaryUseCase(config.Log, config.Validate, beneficiaryRepository)
	storeUseCase := usecase.NewStoreUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		transactionRepository,
		productRepository,
		orderRepository,
		transactionProducer,
	)
	adminUseCase := usecase.NewAdminUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		transactionRepository,
		settingsRepository,
		productRepository,
		settingsProvider,
		transactionProducer,
	)

	// setup controllers
	walletController := http.NewWalletController(walletUseCase, config.Log)
	referralController := http.NewReferralController(referralUseCase, config.Log)
	profileController := http.NewProfileController(profileUseCase, config.Log)
	beneficiaryController := http.NewBeneficiaryController(beneficiaryUseCase, config.Log)
	storeController := http.NewStoreController(storeUseCase, config.Log)
	adminController := http.NewAdminController(adminUseCase, config.Log)

	// background task handlers
	config.Async.HandleFunc(usecase.TaskTypeEvaluateReferral, referralUseCase.HandleEvaluateTask)

	routeConfig := route.RouteConfig{
		App:                   config.App,
		WalletController:      walletController,
		ReferralController:    referralController,
		ProfileController:     profileController,
		BeneficiaryController: beneficiaryController,
		StoreController:       storeController,
		AdminController:       adminController,
		LoggerMiddleware:      middleware.NewLogger(config.Log),
		AuthMiddleware:        middleware.VerifyBearer(config.Config, config.Log),
		AdminMiddleware:       middleware.RequireAdmin(),
		WebhookMiddleware:     middleware.VerifyWebhookKey(config.Config),
	}
	routeConfig.Setup()
}
