package main

import (
	"notarynow/internal/reports/handler"
	"notarynow/internal/reports/repository"
	"notarynow/internal/reports/service"
	"notarynow/pkg/app"
	"notarynow/pkg/config"
)

const ServiceName = "reports"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reports service")
	reportService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewReportHandler(reportService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReportService {
	reader := repository.NewMongoReportReader(cfg)
	reportService := service.NewReportService(reader, cfg)

	cfg.Log.Info("Report service initialized", "database", cfg.MongoDatabaseName)
	return reportService
}
