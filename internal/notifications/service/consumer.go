package service

import (
	"context"
	"fmt"

	"notarynow/internal/notifications/repository"
	"notarynow/pkg/config"
	"notarynow/pkg/kafka"
	"notarynow/pkg/model"
)

// NewDeliveryHandler returns the notifier worker's message handler: decode
// the published notification, persist it into the read model, and log the
// delivery attempt. An error return lets the consumer retry and eventually
// dead-letter the message.
func NewDeliveryHandler(repo repository.NotificationRepository, cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var n model.Notification
		if err := msg.DecodeValue(&n); err != nil {
			return fmt.Errorf("failed to decode notification event %s: %w", msg.GetEventID(), err)
		}

		if n.RecipientID == "" {
			return fmt.Errorf("notification event %s has no recipient", msg.GetEventID())
		}

		n.ID = ""
		n.Read = false

		if err := repo.Insert(ctx, &n); err != nil {
			return fmt.Errorf("failed to persist notification: %w", err)
		}

		cfg.Log.Info("Notification delivered",
			"event_id", msg.GetEventID(),
			"recipient_id", n.RecipientID,
			"type", n.Type,
		)
		return nil
	}
}
