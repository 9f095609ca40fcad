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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	changeBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/change_booking_status"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	createRecurringHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_recurring_booking"
	generateRecurringHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_recurring"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_bookings"
	getBusinessSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_bookings"
	listRecurringHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_recurring_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_booking"
	updateBusinessSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_business_settings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	recurringRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/recurring"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	recurringService "github.com/m04kA/SMC-AppointmentService/internal/service/recurring"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
	changeBookingStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_booking_status"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	generateRecurringUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_recurring"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")

	defaultLoc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid default timezone %q: %v", cfg.Booking.DefaultTimezone, err)
	}

	// Метрики nil-safe: при выключенных метриках collector остаётся nil
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txManager := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMetrics(metricsCollector),
		txmanager.WithRetry(cfg.Booking.TxMaxAttempts, cfg.Booking.TxRetryBackoff()),
	)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	recurringRepository := recurringRepo.NewRepository(wrappedDB)

	// Проверка правил бронирования, общая для всех путей записи
	guard := booking_guard.NewGuard(
		bookingRepository,
		businessRepository,
		log,
		booking_guard.WithServiceBuffers(cfg.Booking.ApplyServiceBuffers),
		booking_guard.WithMetrics(metricsCollector),
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, businessRepository, log)
	settingsSvc := settingsService.NewService(businessRepository, txManager, log)
	recurringSvc := recurringService.NewService(
		recurringRepository,
		businessRepository,
		serviceRepository,
		cfg.Booking.MaxRecurringOccurrences,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		serviceRepository,
		guard,
		txManager,
		metricsCollector,
		defaultLoc,
		log,
	)
	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		guard,
		txManager,
		defaultLoc,
		log,
	)
	changeStatusUseCase := changeBookingStatusUC.NewUseCase(
		bookingRepository,
		businessRepository,
		txManager,
		metricsCollector,
		log,
	)
	generateRecurringUseCase := generateRecurringUC.NewUseCase(
		bookingRepository,
		recurringRepository,
		businessRepository,
		serviceRepository,
		guard,
		txManager,
		metricsCollector,
		generateRecurringUC.Config{
			DefaultLocation: defaultLoc,
			MaxOccurrences:  cfg.Booking.MaxRecurringOccurrences,
			HorizonDays:     cfg.Booking.RecurringHorizonDays,
		},
		log,
	)
	availableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		serviceRepository,
		guard,
		defaultLoc,
		cfg.Booking.SlotStep(),
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(changeStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(changeStatusUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)
	updateBusinessSettings := updateBusinessSettingsHandler.NewHandler(settingsSvc, log)
	createRecurring := createRecurringHandler.NewHandler(recurringSvc, log)
	listRecurring := listRecurringHandler.NewHandler(recurringSvc, log)
	generateRecurring := generateRecurringHandler.NewHandler(generateRecurringUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Правила и часы работы бизнеса
	api.HandleFunc("/businesses/{businessId}/settings", getBusinessSettings.Handle).Methods(http.MethodGet)

	// Свободное время на дату
	api.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", changeBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для владельца) ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/settings", updateBusinessSettings.Handle).Methods(http.MethodPut)

	// --- Повторяющиеся записи ---
	protected.HandleFunc("/businesses/{businessId}/recurring-bookings", createRecurring.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/recurring-bookings", listRecurring.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/recurring-bookings/{recurringId}/generate",
		generateRecurring.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
