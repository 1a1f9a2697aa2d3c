package main

import (
	"notarynow/internal/availability/handler"
	"notarynow/internal/availability/repository"
	"notarynow/internal/availability/service"
	"notarynow/internal/availability/validator"
	"notarynow/pkg/app"
	"notarynow/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewAvailabilityHandler(availabilityService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	templateValidator := validator.NewTemplateValidator(cfg.Log)
	templateRepo := repository.NewMongoTemplateRepository(cfg)
	appointmentReader := repository.NewMongoAppointmentReader(cfg)
	availabilityService := service.NewAvailabilityService(
		templateRepo,
		appointmentReader,
		templateValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
