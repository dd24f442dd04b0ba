// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pesawise/backend/config"
	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/application/usecase/advisor"
	"github.com/pesawise/backend/internal/application/usecase/auth"
	"github.com/pesawise/backend/internal/application/usecase/budget"
	"github.com/pesawise/backend/internal/application/usecase/dashboard"
	"github.com/pesawise/backend/internal/application/usecase/goal"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/application/usecase/profile"
	"github.com/pesawise/backend/internal/infra/server/router"
	"github.com/pesawise/backend/internal/integration/adapters"
	"github.com/pesawise/backend/internal/integration/entrypoint/controller"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
	"github.com/pesawise/backend/internal/integration/persistence"
)

const (
	advisorMaxRequests = 20
	relaxedMaxRequests = 1000
	redisPingTimeout   = 2 * time.Second
)

// Options carries the optional infrastructure the API can run with.
// Nil fields fall back to in-process behavior.
type Options struct {
	// Publisher queues sync batches. Nil imports them inline.
	Publisher adapter.SyncPublisher
	// Redis backs the shared rate limiters. Nil keeps counters in memory.
	Redis redis.UniversalClient
	// Summaries overrides the Gemini service built from config.
	Summaries adapter.AISummaryService
	// Clock overrides the system clock.
	Clock adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	var base adapter.Clock = adapter.SystemClock{}
	if opts.Clock != nil {
		base = opts.Clock
	}
	// Every date-relative use case sees the same local day as the dashboard.
	clock := adapter.NewZonedClock(base, cfg.Dashboard.Location())

	// Create repositories
	profileRepo := persistence.NewProfileRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	goalRepo := persistence.NewGoalRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	summaryService := opts.Summaries
	if summaryService == nil {
		summaryService = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model, cfg.AI.Timeout)
	}

	// Create auth and profile use cases
	registerUseCase := auth.NewRegisterUserUseCase(profileRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(profileRepo, passwordService, tokenService)
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo)

	// Create ledger use cases
	listTransactionsUseCase := ledger.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := ledger.NewCreateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := ledger.NewDeleteTransactionUseCase(transactionRepo)
	importUseCase := ledger.NewImportExternalUseCase(transactionRepo)
	syncUseCase := ledger.NewSyncMobileMoneyUseCase(importUseCase, opts.Publisher)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	overviewUseCase := budget.NewGetOverviewUseCase(budgetRepo, transactionRepo, clock)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, clock)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, clock)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	// Create dashboard and advisor use cases
	composeUseCase := dashboard.NewComposeDashboardUseCase(transactionRepo, goalRepo, clock, dashboard.DashboardOptions{
		TrendDays:          cfg.Dashboard.TrendDays,
		RecentTransactions: cfg.Dashboard.RecentTransactions,
		Location:           cfg.Dashboard.Location(),
	})
	seriesUseCase := dashboard.NewGetPeriodSeriesUseCase(transactionRepo, clock)
	adviceUseCase := advisor.NewGetAdviceUseCase(transactionRepo, clock)
	summaryUseCase := advisor.NewGenerateSummaryUseCase(summaryService, transactionRepo, goalRepo, clock)

	// Create controllers
	healthController := controller.NewHealthController(databaseChecker(db), cacheChecker(opts.Redis))
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	profileController := controller.NewProfileController(getProfileUseCase, updateProfileUseCase)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		syncUseCase,
	)
	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		createBudgetUseCase,
		deleteBudgetUseCase,
		overviewUseCase,
	)
	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
	)
	dashboardController := controller.NewDashboardController(composeUseCase, seriesUseCase)
	advisorController := controller.NewAdvisorController(adviceUseCase, summaryUseCase)

	// Create middleware
	loginRateLimiter, advisorRateLimiter := newRateLimiters(cfg, opts.Redis)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		profileController,
		transactionController,
		budgetController,
		goalController,
		dashboardController,
		advisorController,
		loginRateLimiter,
		advisorRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}

// newRateLimiters shares counters through Redis when it is configured.
// E2E and test environments get relaxed limits to keep suites stable.
func newRateLimiters(cfg *config.Config, client redis.UniversalClient) (login, advisor middleware.Limiter) {
	relaxed := cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test"

	loginMax := 5
	advisorMax := advisorMaxRequests
	if relaxed {
		loginMax = relaxedMaxRequests
		advisorMax = relaxedMaxRequests
	}

	if client != nil {
		return middleware.NewRedisRateLimiter(client, loginMax, time.Minute),
			middleware.NewRedisRateLimiter(client, advisorMax, time.Minute)
	}
	return middleware.NewRateLimiterWithConfig(loginMax, time.Minute),
		middleware.NewRateLimiterWithConfig(advisorMax, time.Minute)
}

func databaseChecker(db *gorm.DB) func() bool {
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}
}

// cacheChecker returns nil when Redis is not configured.
func cacheChecker(client redis.UniversalClient) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
