// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sport-inventory/internal/routes"
	"sport-inventory/internal/scheduler"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/customvalidator"
	"sport-inventory/pkg/database/postgresql"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/eventbus"
	applogger "sport-inventory/pkg/logger"
	"sport-inventory/pkg/middleware"
	"sport-inventory/pkg/service"
	"sport-inventory/pkg/utils"
	"sport-inventory/pkg/websocket"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 3. PostgreSQL и миграции
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()
	if err := postgresql.Migrate(dbConn); err != nil {
		logger.Fatal("Не удалось применить миграции", zap.Error(err))
	}

	// 4. Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 5. Общие компоненты
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// 6. Маршруты
	sweeper := routes.InitRouter(e, routes.Dependencies{
		DB:     dbConn,
		Redis:  redisClient,
		JWT:    jwtSvc,
		Hub:    hub,
		Bus:    bus,
		Config: cfg,
		Now:    time.Now,
	}, &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Request: logger.Named("requests"),
		Admin:   logger.Named("admin"),
	})

	// 7. Планировщик
	sched, err := scheduler.New(sweeper, cfg.Lifecycle.SweepInterval, logger.Named("scheduler"))
	if err != nil {
		logger.Fatal("Не удалось создать планировщик", zap.Error(err))
	}
	sched.Start()

	// 8. Сервер
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	sched.Stop()
	bus.Wait()
}
