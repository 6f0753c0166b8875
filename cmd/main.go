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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/check_availability"
	checkStaffAvailabilityHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/check_staff_availability"
	createBookingHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/get_booking"
	getScheduleConfigHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/get_schedule_config"
	getTenantBookingsHandler "github.com/m04kA/SPS-AvailabilityService/internal/api/handlers/get_tenant_bookings"
	"github.com/m04kA/SPS-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SPS-AvailabilityService/internal/config"
	availabilityCache "github.com/m04kA/SPS-AvailabilityService/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/schedule"
	packageRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
	staffRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/staff"
	bookingsService "github.com/m04kA/SPS-AvailabilityService/internal/service/bookings"
	scheduleConfigService "github.com/m04kA/SPS-AvailabilityService/internal/service/scheduleconfig"
	checkAvailabilityUC "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_availability"
	checkStaffAvailabilityUC "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_staff_availability"
	createBookingUC "github.com/m04kA/SPS-AvailabilityService/internal/usecase/create_booking"
	"github.com/m04kA/SPS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/logger"
	"github.com/m04kA/SPS-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/redislock"
	"github.com/m04kA/SPS-AvailabilityService/pkg/simpletxmanager"
	"github.com/m04kA/SPS-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting SPS-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Подключаемся к Redis (кеш доступности и advisory lock)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatal("Failed to ping redis: %v", err)
	}
	cancelPing()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr(), cfg.Redis.DB)

	// Кеш рассчитанной доступности дней
	cacheTTL := time.Duration(cfg.Availability.CacheTTLSeconds) * time.Second
	dayCache := availabilityCache.NewCache(redisClient, cacheTTL, metricsCollector)
	log.Info("Availability cache initialized (ttl=%s)", cacheTTL)

	// Кооперативная блокировка дня пакета при создании бронирования.
	// Выключенная блокировка оставляет nil: корректность обеспечивает
	// сериализуемая транзакция
	var dayLocker createBookingUC.DayLocker
	lockTTL := time.Duration(cfg.Availability.LockTTLSeconds) * time.Second
	if cfg.Availability.LockEnabled {
		dayLocker = redislock.New(redisClient)
		log.Info("Booking day lock enabled (ttl=%s)", lockTTL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		packageRepository  *packageRepo.Repository
		staffRepository    *staffRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		packageRepository = packageRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		packageRepository = packageRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		dayCache,
		log,
	)
	scheduleConfigSvc := scheduleConfigService.NewService(
		scheduleRepository,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		scheduleRepository,
		packageRepository,
		bookingRepository,
		dayCache,
		log,
	)

	checkStaffAvailabilityUseCase := checkStaffAvailabilityUC.NewUseCase(
		packageRepository,
		staffRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleRepository,
		packageRepository,
		bookingRepository,
		dayCache,
		dayLocker,
		lockTTL,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	checkStaffAvailability := checkStaffAvailabilityHandler.NewHandler(checkStaffAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Котировка доступности дня для витрины бронирования
	api.HandleFunc("/tenants/{tenantId}/packages/{packageId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.TenantAuth)

	// --- Доступность персонала ---
	// Проверка достаточности персонала для окна мероприятия
	protected.HandleFunc("/packages/{packageId}/staff-availability",
		checkStaffAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований арендатора
	protected.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Конфигурация расписания ---
	// Чтение конфигурации расписания арендатора
	protected.HandleFunc("/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)

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
		time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
