package main

import (
	"context"

	"notarynow/internal/notifications/handler"
	"notarynow/internal/notifications/repository"
	"notarynow/internal/notifications/service"
	"notarynow/pkg/app"
	"notarynow/pkg/config"
	"notarynow/pkg/kafka"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Notifier service")
	notificationRepo := repository.NewMongoNotificationRepository(cfg)
	consumer := initConsumer(cfg, notificationRepo)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil {
			cfg.Log.Error("Notification consumer stopped", "error", err)
		}
	}()

	inboxService := service.NewInboxService(notificationRepo, cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewNotificationHandler(inboxService, cfg))
	serverApp.Run()

	cancel()
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Consumer close failed", "error", err)
	}
}

func initConsumer(cfg *config.Config, repo repository.NotificationRepository) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.NotificationsTopic,
		GroupID:  ServiceName,
		DLQTopic: cfg.NotificationsDLQTopic,
	}, service.NewDeliveryHandler(repo, cfg))
	if err != nil {
		cfg.Log.Fatal("Could not create notification consumer", "error", err)
	}

	cfg.Log.Info("Notification consumer initialized", "topic", cfg.NotificationsTopic, "group", ServiceName)
	return consumer
}
