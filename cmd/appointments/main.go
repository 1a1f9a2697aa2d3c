package main

import (
	"notarynow/internal/appointments/handler"
	"notarynow/internal/appointments/repository"
	"notarynow/internal/appointments/service"
	"notarynow/internal/appointments/validator"
	availabilityrepo "notarynow/internal/availability/repository"
	availabilitysvc "notarynow/internal/availability/service"
	availabilityval "notarynow/internal/availability/validator"
	catalogrepo "notarynow/internal/catalog/repository"
	catalogsvc "notarynow/internal/catalog/service"
	catalogval "notarynow/internal/catalog/validator"
	notificationsvc "notarynow/internal/notifications/service"
	"notarynow/pkg/app"
	"notarynow/pkg/config"
	"notarynow/pkg/kafka"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.NotificationsTopic, cfg.NotificationsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Could not create notifications producer", "error", err)
	}
	dispatcher := notificationsvc.NewDispatcher(producer, cfg)

	appointmentService := initServices(cfg, dispatcher)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.Run()

	dispatcher.Close()
	if err := producer.Close(); err != nil {
		cfg.Log.Error("Producer close failed", "error", err)
	}
}

func initServices(cfg *config.Config, dispatcher service.NotificationDispatcher) service.AppointmentService {
	slots := availabilitysvc.NewAvailabilityService(
		availabilityrepo.NewMongoTemplateRepository(cfg),
		availabilityrepo.NewMongoAppointmentReader(cfg),
		availabilityval.NewTemplateValidator(cfg.Log),
		cfg,
	)
	catalog := catalogsvc.NewCatalogService(
		catalogrepo.NewMongoServiceRepository(cfg),
		catalogrepo.NewMongoOfferingRepository(cfg),
		catalogval.NewCatalogValidator(cfg),
		cfg,
	)

	bookingValidator := validator.NewBookingValidator(cfg)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	providers := repository.NewMongoProviderDirectory(cfg)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		providers,
		slots,
		catalog,
		dispatcher,
		bookingValidator,
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
