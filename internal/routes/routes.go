package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sport-inventory/internal/controllers"
	"sport-inventory/internal/listeners"
	"sport-inventory/internal/repositories"
	"sport-inventory/internal/services"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/eventbus"
	"sport-inventory/pkg/middleware"
	"sport-inventory/pkg/service"
	"sport-inventory/pkg/websocket"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Request *zap.Logger
	Admin   *zap.Logger
}

// Controllers собирает все обработчики, которые вешаются на маршруты.
type Controllers struct {
	Auth      *controllers.AuthController
	Request   *controllers.RequestController
	Equipment *controllers.EquipmentController
	Category  *controllers.CategoryController
	Purchase  *controllers.PurchaseController
	Dashboard *controllers.DashboardController
	User      *controllers.UserController
	WebSocket *controllers.WebSocketController
}

type Dependencies struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	JWT    service.JWTService
	Hub    *websocket.Hub
	Bus    *eventbus.Bus
	Config *config.Config
	Now    func() time.Time
}

// InitRouter создаёт репозитории, сервисы и контроллеры, подписывает слушателей
// на шину событий и регистрирует маршруты. Возвращает сервис очистки для планировщика.
func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) services.SweeperInterface {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")
	cfg := deps.Config

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(deps.DB)
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)
	userRepo := repositories.NewUserRepository(deps.DB, loggers.Auth)
	profileRepo := repositories.NewProfileRepository(deps.DB, loggers.Auth)
	categoryRepo := repositories.NewCategoryRepository(deps.DB, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(deps.DB, loggers.Main)
	requestRepo := repositories.NewRequestRepository(deps.DB, loggers.Request)
	priceHistoryRepo := repositories.NewPriceHistoryRepository(deps.DB, loggers.Request)

	// --- 2. СЕРВИСЫ ---
	views := services.NewViewCache(cacheRepo, cfg.Cache.ViewTTL, loggers.Main)
	sessions := services.NewSessionStore(cacheRepo, cfg.JWT.RefreshTokenTTL, loggers.Auth)
	resolver := services.NewSessionResolver(userRepo, profileRepo, sessions, cacheRepo, cfg.Auth, loggers.Auth)
	notifier := services.NewNotificationService(cacheRepo, deps.Hub, cfg.Lifecycle, deps.Now, loggers.Request)

	authService := services.NewAuthService(txManager, userRepo, profileRepo, cacheRepo, sessions, resolver,
		deps.JWT, deps.Bus, cfg.Auth, loggers.Auth)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, notifier, cfg.Lifecycle, deps.Now, loggers.Request)
	approvalService := services.NewApprovalService(txManager, requestRepo, equipmentRepo, categoryRepo, priceHistoryRepo,
		views, deps.Bus, deps.Now, loggers.Request)
	equipmentService := services.NewEquipmentService(equipmentRepo, views, loggers.Main)
	categoryService := services.NewCategoryService(txManager, categoryRepo, equipmentRepo, requestRepo, views, loggers.Admin)
	purchaseService := services.NewPurchaseService(requestRepo, priceHistoryRepo, views, loggers.Main)
	dashboardService := services.NewDashboardService(equipmentRepo, requestRepo, views, loggers.Main)
	userService := services.NewUserService(profileRepo, deps.Bus, loggers.Admin)
	sweeper := services.NewSweeper(requestRepo, notifier, views, cfg.Lifecycle, deps.Now, loggers.Request)

	// --- 3. СЛУШАТЕЛИ ---
	listeners.NewAuthStateListener(cacheRepo, sessions, loggers.Auth).Register(deps.Bus)
	listeners.NewRequestResolvedListener(notifier, loggers.Request).Register(deps.Bus)

	// --- 4. КОНТРОЛЛЕРЫ ---
	ctrls := Controllers{
		Auth:      controllers.NewAuthController(authService, loggers.Auth),
		Request:   controllers.NewRequestController(requestService, approvalService, loggers.Request),
		Equipment: controllers.NewEquipmentController(equipmentService, loggers.Main),
		Category:  controllers.NewCategoryController(categoryService, loggers.Admin),
		Purchase:  controllers.NewPurchaseController(purchaseService, loggers.Main),
		Dashboard: controllers.NewDashboardController(dashboardService, loggers.Main),
		User:      controllers.NewUserController(userService, loggers.Admin),
		WebSocket: controllers.NewWebSocketController(deps.Hub, notifier, loggers.Main),
	}

	authMW := middleware.NewAuthMiddleware(deps.JWT, resolver, loggers.Auth)
	RegisterRoutes(e, authMW, ctrls)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
	return sweeper
}

// RegisterRoutes вешает обработчики на маршруты /api, /ws и /metrics.
func RegisterRoutes(e *echo.Echo, authMW *middleware.AuthMiddleware, ctrls Controllers) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", ctrls.WebSocket.ServeWs, authMW.Auth)

	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)
	adminGroup := secureGroup.Group("/admin", authMW.AdminOnly)

	runAuthRouter(api, ctrls.Auth, authMW)
	runRequestRouter(secureGroup, adminGroup, ctrls.Request)
	runEquipmentRouter(secureGroup, adminGroup, ctrls.Equipment, ctrls.Dashboard)
	runCategoryRouter(secureGroup, adminGroup, ctrls.Category)
	runPurchaseRouter(secureGroup, adminGroup, ctrls.Purchase)
	runUserRouter(adminGroup, ctrls.User)
}
