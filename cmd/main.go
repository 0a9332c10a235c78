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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/admin_login"
	cancelBookingHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/delete_booking"
	exportHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/export"
	getAvailableSlotsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_bookings"
	getMemberHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_member"
	getMemberBookingsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_member_bookings"
	getSettingsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_settings"
	getSlotsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/get_slots"
	manageBlackoutsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/manage_blackouts"
	manageClientsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/manage_clients"
	manageSlotsHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/manage_slots"
	verifyMemberHandler "github.com/m04kA/SMC-GymBooking/internal/api/handlers/verify_member"
	"github.com/m04kA/SMC-GymBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GymBooking/internal/config"
	blackoutRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/blackout"
	bookingRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-GymBooking/internal/infra/storage/migrations"
	slotRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-GymBooking/internal/integrations/mailer"
	authService "github.com/m04kA/SMC-GymBooking/internal/service/auth"
	blackoutsService "github.com/m04kA/SMC-GymBooking/internal/service/blackouts"
	bookingsService "github.com/m04kA/SMC-GymBooking/internal/service/bookings"
	clientsService "github.com/m04kA/SMC-GymBooking/internal/service/clients"
	exportService "github.com/m04kA/SMC-GymBooking/internal/service/export"
	"github.com/m04kA/SMC-GymBooking/internal/service/notifications"
	slotsService "github.com/m04kA/SMC-GymBooking/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-GymBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-GymBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GymBooking/pkg/clock"
	"github.com/m04kA/SMC-GymBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
	"github.com/m04kA/SMC-GymBooking/pkg/metrics"
	"github.com/m04kA/SMC-GymBooking/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting %s booking service...", cfg.Site.Name)
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// При выключенных метриках collector остаётся nil, все Observe* его пропускают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	// Применяем миграции
	if cfg.Migrations.Enabled {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to initialize migrations: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка над соединением: метрики запросов и передача транзакции через context
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	blackoutRepository := blackoutRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Отправка писем: Resend или заглушка
	var sender notifications.Sender
	if cfg.Mailer.Enabled {
		sender = mailer.NewClient(
			cfg.Mailer.URL,
			cfg.Mailer.APIKey,
			cfg.Mailer.From,
			cfg.Site.Name,
			cfg.Mailer.RequestTimeout(),
			log,
		)
		log.Info("Mailer enabled (url=%s, from=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.From, cfg.Mailer.Timeout)
	} else {
		sender = &notifications.NopSender{Logger: log}
		log.Info("Mailer disabled, confirmation emails will be skipped")
	}

	outbox := notifications.NewOutbox(
		sender,
		cfg.Mailer.QueueSize,
		cfg.Mailer.Workers,
		cfg.Mailer.RequestTimeout(),
		metricsCollector,
		log,
	)
	outbox.Start()

	location, err := cfg.Site.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Site.Timezone, err)
	}
	// "Сегодня" для окна бронирования, абонементов и выгрузок считается в зоне зала
	siteClock := clock.New(location)
	log.Info("Site timezone: %s", location)

	// Инициализируем сервисы
	authSvc, err := authService.NewService(authService.Config{
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       cfg.Admin.SessionSecret,
		TTL:          cfg.Admin.SessionDuration(),
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize auth service: %v", err)
	}
	slotSvc := slotsService.NewService(slotRepository, txMgr, cfg.Booking.DefaultCapacity, log)
	blackoutSvc := blackoutsService.NewService(blackoutRepository, log).WithTimeProvider(siteClock)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, log).WithTimeProvider(siteClock)
	clientSvc := clientsService.NewService(clientRepository, bookingRepository, slotRepository, log).WithTimeProvider(siteClock)
	exportSvc := exportService.NewService(
		bookingRepository,
		slotRepository,
		clientRepository,
		location,
		cfg.Site.Name+" Bookings",
		log,
	).WithTimeProvider(siteClock)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		blackoutRepository,
		clientRepository,
		txMgr,
		outbox,
		metricsCollector,
		createBookingUC.Config{
			WindowDays:        cfg.Booking.WindowDays,
			RequireMembership: cfg.Booking.RequireMembership,
			SiteURL:           cfg.Site.URL,
		},
		log,
	).WithTimeProvider(siteClock)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		slotRepository,
		blackoutRepository,
		cfg.Booking.WindowDays,
		log,
	).WithTimeProvider(siteClock)

	// Инициализируем handlers
	getSettings := getSettingsHandler.NewHandler(getSettingsHandler.Settings{
		GymName:           cfg.Site.Name,
		WindowDays:        cfg.Booking.WindowDays,
		DefaultCapacity:   cfg.Booking.DefaultCapacity,
		RequireMembership: cfg.Booking.RequireMembership,
	})
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	verifyMember := verifyMemberHandler.NewHandler(clientSvc, authSvc, log)
	getMember := getMemberHandler.NewHandler(clientSvc, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(clientSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	manageSlots := manageSlotsHandler.NewHandler(slotSvc, log)
	manageBlackouts := manageBlackoutsHandler.NewHandler(blackoutSvc, log)
	manageClients := manageClientsHandler.NewHandler(clientSvc, log)
	export := exportHandler.NewHandler(exportSvc, log).WithTimeProvider(siteClock)

	auth := middleware.NewAuth(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/dates", getAvailableSlots.HandleDates).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена по ссылке из письма
	api.HandleFunc("/cancel/{token}", cancelBooking.Handle).Methods(http.MethodDelete)

	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)
	api.HandleFunc("/members/verify", verifyMember.Handle).Methods(http.MethodPost)

	// ============================================================
	// MEMBER ROUTES (токен участника)
	// ============================================================

	member := api.PathPrefix("/members/me").Subrouter()
	member.Use(auth.Member)

	member.HandleFunc("", getMember.Handle).Methods(http.MethodGet)
	member.HandleFunc("/bookings", getMemberBookings.Handle).Methods(http.MethodGet)
	member.HandleFunc("/bookings", createBooking.HandleMember).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (токен тренера)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Admin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	admin.HandleFunc("/slots", manageSlots.List).Methods(http.MethodGet)
	admin.HandleFunc("/slots", manageSlots.Create).Methods(http.MethodPost)
	admin.HandleFunc("/slots/order", manageSlots.Reorder).Methods(http.MethodPut)
	admin.HandleFunc("/slots/{slotId:[0-9]+}", manageSlots.Update).Methods(http.MethodPut)
	admin.HandleFunc("/slots/{slotId:[0-9]+}/active", manageSlots.SetActive).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{slotId:[0-9]+}", manageSlots.Delete).Methods(http.MethodDelete)

	// --- Блокировки ---
	admin.HandleFunc("/blackouts", manageBlackouts.List).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts", manageBlackouts.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blackouts/{blackoutId:[0-9]+}", manageBlackouts.Delete).Methods(http.MethodDelete)

	// --- Клиенты ---
	admin.HandleFunc("/clients", manageClients.List).Methods(http.MethodGet)
	admin.HandleFunc("/clients", manageClients.Create).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{clientId:[0-9]+}", manageClients.Get).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{clientId:[0-9]+}", manageClients.Update).Methods(http.MethodPut)
	admin.HandleFunc("/clients/{clientId:[0-9]+}", manageClients.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/clients/{clientId:[0-9]+}/renew", manageClients.Renew).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{clientId:[0-9]+}/bookings", manageClients.History).Methods(http.MethodGet)

	// --- Выгрузки ---
	admin.HandleFunc("/export/bookings.csv", export.BookingsCSV).Methods(http.MethodGet)
	admin.HandleFunc("/export/bookings.ics", export.BookingsICS).Methods(http.MethodGet)
	admin.HandleFunc("/export/clients.csv", export.ClientsCSV).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки писем из очереди, новых бронирований уже нет
	if err := outbox.Close(shutdownCtx); err != nil {
		log.Warn("Outbox closed with pending notifications: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
