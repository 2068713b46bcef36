package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	database "github.com/pkoziol/ReceiptLedger/db"
	"github.com/pkoziol/ReceiptLedger/internal/auth"
	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
	"github.com/pkoziol/ReceiptLedger/internal/finance/infrastructure"
	"github.com/pkoziol/ReceiptLedger/internal/finance/interfaces"
	"github.com/pkoziol/ReceiptLedger/internal/ocr"
	"github.com/pkoziol/ReceiptLedger/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Infof("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Infof("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router              *http.ServeMux
	authHandler         *auth.Handler
	userHandler         *user.Handler
	authService         auth.Service
	expenseHandler      *interfaces.ExpenseHandler
	categoryHandler     *interfaces.CategoryHandler
	budgetHandler       *interfaces.BudgetHandler
	dashboardHandler    *interfaces.DashboardHandler
	receiptHandler      *interfaces.ReceiptHandler
	shoppingListHandler *interfaces.ShoppingListHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Info("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	if os.Getenv("OCR_SERVICE_URL") == "" {
		return errors.New("no OCR_SERVICE_URL provided")
	}
	return nil
}

func configureLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	withAuth := s.authService.JWTAccessTokenMiddleware()
	withAdmin := s.authService.RequireAdminMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/2fa/verify", http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("GET /api/protected/profile", withAuth(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("POST /api/protected/change-password", withAuth(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	protectedRoutes.Handle("POST /api/protected/2fa/register", withAuth(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/confirm", withAuth(http.HandlerFunc(s.authHandler.HandleConfirmTwoFactor)))
	protectedRoutes.Handle("DELETE /api/protected/2fa/disable", withAuth(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// EXPENSES API
	protectedRoutes.Handle("GET /api/protected/expenses", withAuth(http.HandlerFunc(s.expenseHandler.SearchExpenses)))
	protectedRoutes.Handle("POST /api/protected/expenses", withAuth(http.HandlerFunc(s.expenseHandler.CreateExpense)))
	protectedRoutes.Handle("GET /api/protected/expenses/{expenseID}", withAuth(http.HandlerFunc(s.expenseHandler.GetExpenseDetails)))
	protectedRoutes.Handle("PUT /api/protected/expenses/{expenseID}", withAuth(http.HandlerFunc(s.expenseHandler.UpdateExpense)))
	protectedRoutes.Handle("DELETE /api/protected/expenses/{expenseID}", withAuth(http.HandlerFunc(s.expenseHandler.DeleteExpense)))
	protectedRoutes.Handle("PUT /api/protected/expenses/{expenseID}/items/{itemID}", withAuth(http.HandlerFunc(s.expenseHandler.UpdateExpenseItem)))
	protectedRoutes.Handle("DELETE /api/protected/expenses/{expenseID}/items/{itemID}", withAuth(http.HandlerFunc(s.expenseHandler.DeleteExpenseItem)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories", withAuth(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("POST /api/protected/categories", withAuth(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/protected/categories/{categoryID}", withAuth(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/categories/{categoryID}", withAuth(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// BUDGETS API
	protectedRoutes.Handle("GET /api/protected/budgets", withAuth(http.HandlerFunc(s.budgetHandler.GetBudget)))
	protectedRoutes.Handle("POST /api/protected/budgets", withAuth(http.HandlerFunc(s.budgetHandler.CreateBudget)))
	protectedRoutes.Handle("PUT /api/protected/budgets/{budgetID}", withAuth(http.HandlerFunc(s.budgetHandler.UpdateBudget)))

	// DASHBOARD API
	protectedRoutes.Handle("GET /api/protected/dashboard", withAuth(http.HandlerFunc(s.dashboardHandler.GetDashboardData)))
	protectedRoutes.Handle("GET /api/protected/dashboard/yearly", withAuth(http.HandlerFunc(s.dashboardHandler.GetYearlySummary)))

	// RECEIPTS API
	protectedRoutes.Handle("POST /api/protected/receipts/process", withAuth(http.HandlerFunc(s.receiptHandler.ProcessReceipt)))

	// SHOPPING LISTS API
	protectedRoutes.Handle("GET /api/protected/lists", withAuth(http.HandlerFunc(s.shoppingListHandler.GetLists)))
	protectedRoutes.Handle("POST /api/protected/lists", withAuth(http.HandlerFunc(s.shoppingListHandler.CreateList)))
	protectedRoutes.Handle("GET /api/protected/lists/{listID}", withAuth(http.HandlerFunc(s.shoppingListHandler.GetList)))
	protectedRoutes.Handle("PUT /api/protected/lists/{listID}", withAuth(http.HandlerFunc(s.shoppingListHandler.UpdateList)))
	protectedRoutes.Handle("DELETE /api/protected/lists/{listID}", withAuth(http.HandlerFunc(s.shoppingListHandler.DeleteList)))
	protectedRoutes.Handle("POST /api/protected/lists/{listID}/items/{itemID}/toggle", withAuth(http.HandlerFunc(s.shoppingListHandler.TogglePurchased)))

	// ADMIN API
	protectedRoutes.Handle("GET /api/protected/admin/users", withAuth(withAdmin(http.HandlerFunc(s.userHandler.HandleListUsers))))
	protectedRoutes.Handle("POST /api/protected/admin/users", withAuth(withAdmin(http.HandlerFunc(s.userHandler.HandleCreateUser))))
	protectedRoutes.Handle("PUT /api/protected/admin/users/{userID}", withAuth(withAdmin(http.HandlerFunc(s.userHandler.HandleUpdateUser))))
	protectedRoutes.Handle("DELETE /api/protected/admin/users/{userID}", withAuth(withAdmin(http.HandlerFunc(s.userHandler.HandleDeleteUser))))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func startSessionCleanupScheduler(sessionManager auth.SessionManagerInterface) error {
	c := cron.New()
	_, err := c.AddFunc("@every 5m", func() {
		if removed := sessionManager.DeleteExpiredSessionTokens(); removed > 0 {
			log.Debugf("Removed %d expired session tokens", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	configureLogging()

	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not run database migrations: %v", err)
	}

	ocrClient := ocr.NewClient(os.Getenv("OCR_SERVICE_URL"))

	authRepo := auth.NewUserRepository(dbService.DB)
	userRepo := user.NewUserRepository(dbService.DB)

	sessionManager := auth.NewSessionManager()
	jwtManager := auth.NewJWTManager()
	authenticator := &auth.Authenticator{}

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)

	userService := user.NewUserService(userRepo, categoryService)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(authRepo, userService, sessionManager, jwtManager, authenticator)
	authHandler := auth.NewHandler(authService)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo, categoryService)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, categoryService)

	dashboardService := application.NewDashboardService(expenseRepo, budgetRepo)
	receiptService := application.NewReceiptService(ocrClient, categoryService)

	shoppingListRepo := infrastructure.NewShoppingListRepository(dbService.DB)
	shoppingListService := application.NewShoppingListService(shoppingListRepo)

	server := &Server{
		router:              http.NewServeMux(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		authService:         authService,
		expenseHandler:      interfaces.NewExpenseHandler(expenseService, respondJSON, respondError),
		categoryHandler:     interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		budgetHandler:       interfaces.NewBudgetHandler(budgetService, respondJSON, respondError),
		dashboardHandler:    interfaces.NewDashboardHandler(dashboardService, respondJSON, respondError),
		receiptHandler:      interfaces.NewReceiptHandler(receiptService, respondJSON, respondError),
		shoppingListHandler: interfaces.NewShoppingListHandler(shoppingListService, respondJSON, respondError),
	}

	server.RegisterRoutes()

	if err := startSessionCleanupScheduler(sessionManager); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}

	handler := loggingMiddleware(server.router)
	log.Info("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
