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

	bookAppointmentHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/book_appointment"
	createAvailabilityHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/create_availability"
	deleteAvailabilityHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/delete_availability"
	getAvailableSlotsHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/get_available_slots"
	getBookingFiltersHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/get_booking_filters"
	getClinicAvailabilityHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/get_clinic_availability"
	getDoctorBookingsHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/get_doctor_bookings"
	updateAvailabilityHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/update_booking_status"
	verifyBookingHandler "github.com/m04kA/CMS-BookingService/internal/api/handlers/verify_booking"
	"github.com/m04kA/CMS-BookingService/internal/api/middleware"
	"github.com/m04kA/CMS-BookingService/internal/config"
	availabilityRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/booking"
	notifyServiceClient "github.com/m04kA/CMS-BookingService/internal/integrations/notifyservice"
	availabilityService "github.com/m04kA/CMS-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/CMS-BookingService/internal/service/bookings"
	bookAppointmentUC "github.com/m04kA/CMS-BookingService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/CMS-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/CMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CMS-BookingService/pkg/logger"
	"github.com/m04kA/CMS-BookingService/pkg/metrics"
	"github.com/m04kA/CMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/CMS-BookingService/pkg/txmanager"
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

	log.Info("Starting CMS-BookingService...")
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

	// Инициализируем клиент сервиса уведомлений (если включён)
	var notifyClient *notifyServiceClient.Client
	if cfg.NotifyService.Enabled {
		notifyClient = notifyServiceClient.NewClient(
			cfg.NotifyService.URL,
			time.Duration(cfg.NotifyService.Timeout)*time.Second,
			log,
		)
		log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	} else {
		log.Info("NotifyService disabled, booking confirmations will not be sent")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		notifyClientOrNil(notifyClient),
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	verifyBooking := verifyBookingHandler.NewHandler(bookingSvc, log)
	getDoctorBookings := getDoctorBookingsHandler.NewHandler(bookingSvc, log)
	getBookingFilters := getBookingFiltersHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	getClinicAvailability := getClinicAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Запись к врачу (слот назначается автоматически)
	api.HandleFunc("/bookings", bookAppointment.Handle).Methods(http.MethodPost)

	// Свободные слоты врача на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка записей пациента по телефону
	api.HandleFunc("/bookings/verify", verifyBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Список записей врача с фильтрами
	protected.HandleFunc("/doctors/{doctorId}/bookings", getDoctorBookings.Handle).Methods(http.MethodGet)

	// Уникальные значения для фильтров регистратуры
	protected.HandleFunc("/doctors/{doctorId}/bookings/filters", getBookingFilters.Handle).Methods(http.MethodGet)

	// Смена статуса приёма
	protected.HandleFunc("/bookings/{appointmentId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Правила доступности ---
	// Создание правил (несколько дней за раз)
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Расписание клиники
	protected.HandleFunc("/clinics/{clinicId}/availability", getClinicAvailability.Handle).Methods(http.MethodGet)

	// Обновление правила
	protected.HandleFunc("/availability/{id}", updateAvailability.Handle).Methods(http.MethodPut)

	// Удаление правила
	protected.HandleFunc("/availability/{id}", deleteAvailability.Handle).Methods(http.MethodDelete)

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

// notifyClientOrNil конвертирует выключенного клиента в nil интерфейс,
// иначе сравнение notifyClient == nil внутри usecase не сработает
func notifyClientOrNil(client *notifyServiceClient.Client) bookAppointmentUC.NotifyServiceClient {
	if client == nil {
		return nil
	}
	return client
}
