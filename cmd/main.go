package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminDeleteReservationHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/admin_delete_reservation"
	adminListReservationsHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/admin_list_reservations"
	cancelReservationHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/get_availability"
	getProfileHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/get_profile"
	getReservationsHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/get_reservations"
	loginHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/login"
	logoutHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/logout"
	registerHandler "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers/register"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/middleware"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/cache"
	reservationRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/reservation"
	userRepo "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/infra/storage/user"
	discordClient "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/integrations/discord"
	authService "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth"
	reservationsService "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/reservations"
	createReservationUC "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/get_availability"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/dbmetrics"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/logger"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/metrics"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/simpletxmanager"
	"github.com/ianyokoso/ASC-Lounge-Booking-System/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ASC-Lounge-Booking-System...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Опциональный кеш доступности
	var availabilityCache *cache.AvailabilityCache
	if cfg.Cache.Enabled {
		redisClient := cache.NewRedisClient(cfg.Cache)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx, redisClient); err != nil {
			// Кеш рекомендательный: без него просто ходим в БД напрямую
			log.Warn("Redis unavailable, availability cache disabled: %v", err)
		} else {
			availabilityCache = cache.NewAvailabilityCache(
				redisClient,
				time.Duration(cfg.Cache.TTLSeconds)*time.Second,
				log,
			)
			log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Address, cfg.Cache.TTLSeconds)
		}
		cancelPing()
	}

	// Discord webhook для уведомлений (best effort)
	discord := discordClient.NewClient(
		cfg.Discord.WebhookURL,
		time.Duration(cfg.Discord.Timeout)*time.Second,
		log,
	)
	if cfg.Discord.WebhookURL != "" {
		log.Info("Discord notifications enabled (timeout=%ds)", cfg.Discord.Timeout)
	} else {
		log.Info("Discord webhook not configured, notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		userRepository        *userRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	queryTimeout := time.Duration(cfg.Database.QueryTimeout) * time.Second

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB, queryTimeout)
		userRepository = userRepo.NewRepository(wrappedDB, queryTimeout)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db, queryTimeout)
		userRepository = userRepo.NewRepository(db, queryTimeout)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		userRepository,
		discord,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		userRepository,
		discord,
		txMgr,
		log,
	)

	// nil-кеш допустим: use case работает без кеширования
	var availabilityCacheDep getAvailabilityUC.Cache
	if availabilityCache != nil {
		availabilityCacheDep = availabilityCache
	}
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		availabilityCacheDep,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservations := getReservationsHandler.NewHandler(reservationsSvc, log)
	adminListReservations := adminListReservationsHandler.NewHandler(reservationsSvc, log)
	adminDeleteReservation := adminDeleteReservationHandler.NewHandler(reservationsSvc, log)
	register := registerHandler.NewHandler(authSvc, cfg.Session, log)
	login := loginHandler.NewHandler(authSvc, cfg.Session, log)
	logout := logoutHandler.NewHandler(cfg.Session, log)
	getProfile := getProfileHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов: конкретная дата или карта занятости
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Регистрация и вход
	api.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют сессионную cookie)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Session.CookieName))

	// --- Профиль текущего пользователя ---
	protected.HandleFunc("/auth/me", getProfile.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Администрирование ---
	protected.HandleFunc("/admin/reservations", adminListReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/reservations/{reservationId}", adminDeleteReservation.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
