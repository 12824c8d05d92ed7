// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/config"
	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/application/usecase/account"
	"github.com/finance-tracker/wallet/internal/application/usecase/auth"
	"github.com/finance-tracker/wallet/internal/application/usecase/billing"
	"github.com/finance-tracker/wallet/internal/application/usecase/category"
	creditcard "github.com/finance-tracker/wallet/internal/application/usecase/credit_card"
	"github.com/finance-tracker/wallet/internal/application/usecase/goal"
	"github.com/finance-tracker/wallet/internal/application/usecase/report"
	"github.com/finance-tracker/wallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
	"github.com/finance-tracker/wallet/internal/infra/server/router"
	"github.com/finance-tracker/wallet/internal/integration/adapters"
	"github.com/finance-tracker/wallet/internal/integration/email"
	"github.com/finance-tracker/wallet/internal/integration/email/templates"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/wallet/internal/integration/eventbus"
	"github.com/finance-tracker/wallet/internal/integration/lock"
	"github.com/finance-tracker/wallet/internal/integration/persistence"
)

// Options overrides collaborators that tests need to control.
type Options struct {
	// Clock defaults to the wall clock.
	Clock adapter.Clock
	// EmailSender defaults to Resend when an API key is configured, otherwise to an in-memory sender.
	EmailSender adapter.EmailSender
	// PasswordCost defaults to the production bcrypt cost.
	PasswordCost int
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	Router       *router.Router
	EventBus     adapter.EventBus
	ReminderWork *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redisClient selects the in-process locker, event bus and rate limiter.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	policy := valueobject.DueDatePolicy{NextMonthWhenBeforeClosing: cfg.Billing.DueNextMonthWhenBeforeClosing}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	cardRepo := persistence.NewCreditCardRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	billRepo := persistence.NewBillRepository(db)

	// Coordination: Redis when available, in-process otherwise
	var (
		locker      adapter.Locker
		bus         adapter.EventBus
		rateLimiter *middleware.RateLimiter
		redisHealth func() bool
	)
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, cfg.Billing.LockTTL)
		bus = eventbus.NewRedisBus(redisClient)
		rateLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
		redisHealth = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	} else {
		locker = lock.NewMemoryLocker(cfg.Billing.LockTTL)
		bus = eventbus.NewMemoryBus()
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}
	if !cfg.RateLimit.Enabled {
		rateLimiter.Disable()
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService(opts.PasswordCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)

	var suggester adapter.CategorySuggester
	if cfg.AI.GeminiAPIKey != "" {
		suggester = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		} else {
			slog.Warn("RESEND_API_KEY not set, bill reminders are kept in memory")
			sender = email.NewMockEmailSender()
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	mailer := email.NewReminderMailer(sender, renderer, cfg.Email.AppBaseURL)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, bus)

	// Create billing use cases
	aggregator := billing.NewBillAggregator(cardRepo, transactionRepo, policy)
	materializeBillUseCase := billing.NewMaterializeBillUseCase(aggregator, billRepo, bus)
	billDetailsUseCase := billing.NewGetBillDetailsUseCase(aggregator, billRepo, clock)
	currentBillUseCase := billing.NewGetCurrentBillUseCase(billDetailsUseCase, clock)
	listBillsUseCase := billing.NewListBillsUseCase(cardRepo, billRepo, clock)
	payBillUseCase := billing.NewPayBillUseCase(billRepo, accountRepo, cardRepo, materializeBillUseCase, locker, bus, clock)
	unpayBillUseCase := billing.NewUnpayBillUseCase(billRepo, locker, bus)
	resolvePeriodUseCase := billing.NewResolvePeriodUseCase(cardRepo, policy)
	remindersUseCase := billing.NewSendBillRemindersUseCase(billRepo, cardRepo, userRepo, mailer, clock, cfg.Billing.ReminderLeadDays)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo, bus)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, bus)

	// Create credit card use cases
	listCardsUseCase := creditcard.NewListCreditCardsUseCase(cardRepo)
	createCardUseCase := creditcard.NewCreateCreditCardUseCase(cardRepo, accountRepo)
	getCardUseCase := creditcard.NewGetCreditCardUseCase(cardRepo)
	updateCardUseCase := creditcard.NewUpdateCreditCardUseCase(cardRepo, accountRepo, bus)
	deleteCardUseCase := creditcard.NewDeleteCreditCardUseCase(cardRepo, bus)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, cardRepo, goalRepo, categoryRepo, materializeBillUseCase, bus)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, cardRepo, goalRepo, categoryRepo, materializeBillUseCase, bus)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, materializeBillUseCase, bus)
	statusUseCase := transaction.NewSetTransactionStatusUseCase(transactionRepo, materializeBillUseCase, bus)
	suggestUseCase := transaction.NewSuggestCategoryUseCase(categoryRepo, suggester)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, bus)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, bus)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, accountRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, accountRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	contributeUseCase := goal.NewContributeUseCase(goalRepo, createTransactionUseCase)
	withdrawUseCase := goal.NewWithdrawUseCase(goalRepo, createTransactionUseCase)

	breakdownUseCase := report.NewGetCategoryBreakdownUseCase(transactionRepo, categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealth)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		getAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)

	creditCardController := controller.NewCreditCardController(
		listCardsUseCase,
		createCardUseCase,
		getCardUseCase,
		updateCardUseCase,
		deleteCardUseCase,
	)

	billController := controller.NewBillController(
		listBillsUseCase,
		currentBillUseCase,
		billDetailsUseCase,
		materializeBillUseCase,
		payBillUseCase,
		unpayBillUseCase,
		resolvePeriodUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		statusUseCase,
		suggestUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		contributeUseCase,
		withdrawUseCase,
	)

	reportController := controller.NewReportController(breakdownUseCase, clock)
	eventController := controller.NewEventController(bus, cfg.Billing.EventKeepAlive)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		creditCardController,
		billController,
		transactionController,
		categoryController,
		goalController,
		reportController,
		eventController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Redis:        redisClient,
		Router:       r,
		EventBus:     bus,
		ReminderWork: email.NewWorker(remindersUseCase, email.WorkerConfig{PollInterval: cfg.Email.PollInterval}),
	}, nil
}
