package main

import (
	"notarynow/internal/catalog/handler"
	"notarynow/internal/catalog/repository"
	"notarynow/internal/catalog/service"
	"notarynow/internal/catalog/validator"
	"notarynow/pkg/app"
	"notarynow/pkg/config"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Catalog service")
	catalogService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewCatalogHandler(catalogService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CatalogService {
	catalogValidator := validator.NewCatalogValidator(cfg)
	serviceRepo := repository.NewMongoServiceRepository(cfg)
	offeringRepo := repository.NewMongoOfferingRepository(cfg)
	catalogService := service.NewCatalogService(
		serviceRepo,
		offeringRepo,
		catalogValidator,
		cfg,
	)

	cfg.Log.Info("Catalog service initialized", "database", cfg.MongoDatabaseName)
	return catalogService
}
