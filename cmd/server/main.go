package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"finance_tracker_echo/internal/handlers"
	"finance_tracker_echo/internal/ledger"
	appmw "finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/services"
	"finance_tracker_echo/pkg/logging"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment")
	}
	logging.Setup()

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL not set")
		os.Exit(1)
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := services.AutoMigrate(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// Redis backs the exchange-rate cache; the app runs without it
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			slog.Warn("Redis unavailable, exchange rates will not be cached", "error", err)
			cache = nil
		}
	}

	policy := ledger.ParsePolicy(os.Getenv("SETTLEMENT_POLICY"))
	slog.Info("Settlement reconciliation policy", "policy", policy)

	// Services
	rates := services.NewExchangeRateService(cache)
	friendService := services.NewFriendService(db)
	sharedExpenseService := services.NewSharedExpenseService(db, friendService, rates)
	balanceService := services.NewBalanceService(db, sharedExpenseService, policy)
	settlementService := services.NewSettlementService(db, friendService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appmw.CustomErrorHandler

	// Middleware
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Handlers
	friendHandler := handlers.NewFriendHandler(friendService, balanceService, settlementService)
	expenseHandler := handlers.NewExpenseHandler(db, rates)
	sharedExpenseHandler := handlers.NewSharedExpenseHandler(sharedExpenseService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	recurringHandler := handlers.NewRecurringHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	incomeHandler := handlers.NewIncomeHandler(db)
	accountHandler := handlers.NewAccountHandler(db)
	creditCardHandler := handlers.NewCreditCardHandler(db)

	// All routes act on behalf of a resolved user
	api := e.Group("/api")
	api.Use(appmw.RequireUser(db))

	// Friend routes
	api.GET("/friends", friendHandler.ListFriends)
	api.POST("/friends", friendHandler.CreateFriend)
	api.GET("/friends/:id", friendHandler.GetFriend)
	api.PUT("/friends/:id", friendHandler.UpdateFriend)
	api.DELETE("/friends/:id", friendHandler.DeleteFriend)
	api.GET("/friends/:id/settlements", friendHandler.ListSettlements)
	api.POST("/friends/:id/settlements", friendHandler.RecordSettlement)

	// Expense routes
	api.GET("/expenses", expenseHandler.ListExpenses)
	api.POST("/expenses", expenseHandler.CreateExpense)
	api.GET("/expenses/:id", expenseHandler.GetExpense)
	api.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	// Shared-expense routes
	api.GET("/shared-expenses", sharedExpenseHandler.ListSharedExpenses)
	api.POST("/shared-expenses", sharedExpenseHandler.CreateSharedExpense)
	api.GET("/shared-expenses/:id", sharedExpenseHandler.GetSharedExpense)
	api.DELETE("/shared-expenses/:id", sharedExpenseHandler.DeleteSharedExpense)

	// Category routes
	api.GET("/categories", categoryHandler.ListCategories)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	// Income routes
	api.GET("/income", incomeHandler.ListIncome)
	api.POST("/income", incomeHandler.CreateIncome)

	// Payment-source routes
	api.GET("/payment-sources", accountHandler.ListPaymentSources)
	api.POST("/payment-sources", accountHandler.CreatePaymentSource)
	api.GET("/payment-sources/:id", accountHandler.GetPaymentSource)
	api.PUT("/payment-sources/:id", accountHandler.UpdatePaymentSource)
	api.DELETE("/payment-sources/:id", accountHandler.DeletePaymentSource)

	// Credit-card routes
	api.GET("/credit-cards", creditCardHandler.ListCreditCards)
	api.POST("/credit-cards", creditCardHandler.CreateCreditCard)
	api.GET("/credit-cards/:id", creditCardHandler.GetCreditCard)
	api.DELETE("/credit-cards/:id", creditCardHandler.DeleteCreditCard)
	api.POST("/credit-cards/:id/payments", creditCardHandler.RecordPayment)

	// Balance routes
	api.GET("/balances", balanceHandler.GetBalances)
	api.GET("/balances/summary", balanceHandler.GetFriendsSummary)
	api.GET("/balances/transactions", balanceHandler.GetTransactionsByFriend)

	// Recurring-transaction routes
	api.GET("/recurring", recurringHandler.ListRecurring)
	api.POST("/recurring", recurringHandler.CreateRecurring)
	api.DELETE("/recurring/:id", recurringHandler.DeleteRecurring)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	e.Logger.Fatal(e.Start(":" + port))
}
