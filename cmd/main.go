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

	blockUserHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/block_user"
	cancelBookingHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/create_booking"
	createCarHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/create_car"
	deleteCarHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/delete_car"
	exportBookingsHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_booking"
	getCarHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_car"
	getDealershipBookingsHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_dealership_bookings"
	getUserBookingsHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_user_bookings"
	getWorkingHoursHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_working_hours"
	listCarsHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/list_cars"
	listUsersHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/list_users"
	updateBookingStatusHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/update_booking_status"
	updateCarHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/update_car"
	updateUserRoleHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/update_user_role"
	updateWorkingHoursHandler "github.com/avtomart/AVM-TestDriveService/internal/api/handlers/update_working_hours"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/config"
	"github.com/avtomart/AVM-TestDriveService/internal/infra/ratestore"
	bookingRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	scheduleRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/schedule"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	visionServiceClient "github.com/avtomart/AVM-TestDriveService/internal/integrations/visionservice"
	bookingsService "github.com/avtomart/AVM-TestDriveService/internal/service/bookings"
	carsService "github.com/avtomart/AVM-TestDriveService/internal/service/cars"
	scheduleService "github.com/avtomart/AVM-TestDriveService/internal/service/schedule"
	usersService "github.com/avtomart/AVM-TestDriveService/internal/service/users"
	createBookingUC "github.com/avtomart/AVM-TestDriveService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/avtomart/AVM-TestDriveService/internal/usecase/get_available_slots"
	"github.com/avtomart/AVM-TestDriveService/pkg/dbmetrics"
	"github.com/avtomart/AVM-TestDriveService/pkg/logger"
	"github.com/avtomart/AVM-TestDriveService/pkg/metrics"
	"github.com/avtomart/AVM-TestDriveService/pkg/simpletxmanager"
	"github.com/avtomart/AVM-TestDriveService/pkg/txmanager"
)

// TxManager покрывает оба менеджера транзакций (с метриками и без)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting AVM-TestDriveService...")
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

	// Redis для request guard (опционально)
	var counterStore middleware.CounterStore
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Guard умеет работать без Redis, не валим сервис на старте
			log.Error("Failed to ping Redis, request guard will use in-process limiter: %v", err)
		} else {
			counterStore = ratestore.NewRedisStore(redisClient)
			log.Info("Connected to Redis at %s (db=%d)", cfg.Redis.Address, cfg.Redis.DB)
		}
		defer redisClient.Close()
	}

	// Клиент сервиса анализа фотографий (опционально)
	var visionClient carsService.VisionServiceClient
	if cfg.VisionService.Enabled {
		visionClient = visionServiceClient.NewClient(
			cfg.VisionService.URL,
			time.Duration(cfg.VisionService.Timeout)*time.Second,
			log,
		)
		log.Info("Vision service client initialized (url=%s, timeout=%ds)",
			cfg.VisionService.URL, cfg.VisionService.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		carRepository      *carRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		userRepository     *userRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		carRepository = carRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		carRepository = carRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, userRepository, log)
	carSvc := carsService.NewService(carRepository, userRepository, visionClient, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, userRepository, txMgr, log)
	userSvc := usersService.NewService(userRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		carRepository,
		scheduleRepository,
		userRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		carRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDealershipBookings := getDealershipBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	listCars := listCarsHandler.NewHandler(carSvc, log)
	getCar := getCarHandler.NewHandler(carSvc, log)
	createCar := createCarHandler.NewHandler(carSvc, log)
	updateCar := updateCarHandler.NewHandler(carSvc, log)
	deleteCar := deleteCarHandler.NewHandler(carSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(userSvc, log)
	blockUser := blockUserHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Request ID присваивается всем запросам
	r.Use(middleware.RequestID)

	// Metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Request guard: rate limiting и отсечение сканеров
	if cfg.Security.Enabled {
		var guardMetrics middleware.MetricsCollector
		if cfg.Metrics.Enabled {
			guardMetrics = metricsCollector
		}
		guard := middleware.NewGuard(counterStore, middleware.GuardConfig{
			RequestsPerMinute: cfg.Security.RequestsPerMinute,
			BanThreshold:      cfg.Security.BanThreshold,
			BanDuration:       time.Duration(cfg.Security.BanMinutes) * time.Minute,
		}, guardMetrics, log)
		r.Use(guard.Middleware)
		log.Info("Request guard enabled (%d req/min, ban after %d strikes for %d min)",
			cfg.Security.RequestsPerMinute, cfg.Security.BanThreshold, cfg.Security.BanMinutes)
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

	// Каталог автомобилей
	api.HandleFunc("/cars", listCars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}", getCar.Handle).Methods(http.MethodGet)

	// Сетка слотов тест-драйва
	api.HandleFunc("/cars/{carId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание дилерского центра
	api.HandleFunc("/dealerships/{dealershipId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования тест-драйвов ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление каталогом (для сотрудников) ---
	protected.HandleFunc("/cars", createCar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{carId}", updateCar.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/cars/{carId}", deleteCar.Handle).Methods(http.MethodDelete)

	// --- Управление дилерским центром (для сотрудников) ---
	protected.HandleFunc("/dealerships/{dealershipId}/bookings", getDealershipBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealerships/{dealershipId}/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealerships/{dealershipId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// --- Управление пользователями (для суперадминов) ---
	protected.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/role", updateUserRole.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/block", blockUser.Handle).Methods(http.MethodPatch)

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
