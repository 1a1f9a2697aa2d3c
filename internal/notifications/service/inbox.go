package service

import (
	"context"
	"errors"
	"sync"

	notificationerrors "notarynow/internal/notifications/errors"
	"notarynow/internal/notifications/repository"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
)

// Inbox is a recipient's notification page plus their unread count.
type Inbox struct {
	Notifications []*model.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type InboxService interface {
	List(ctx context.Context, recipientID string, limit int, offset int64) (*Inbox, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type inboxService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewInboxService(repo repository.NotificationRepository, cfg *config.Config) InboxService {
	return &inboxService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *inboxService) List(ctx context.Context, recipientID string, limit int, offset int64) (*Inbox, error) {
	var (
		wg            sync.WaitGroup
		notifications []*model.Notification
		unread        int64
		findErr       error
		countErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		notifications, findErr = s.repo.FindByRecipient(ctx, recipientID, limit, offset)
	}()
	go func() {
		defer wg.Done()
		unread, countErr = s.repo.CountUnread(ctx, recipientID)
	}()
	wg.Wait()

	if findErr != nil {
		s.cfg.Log.Error("Failed to list notifications",
			"recipient_id", recipientID,
			"error", findErr,
		)
		return nil, mongotx.StoreError("Failed to list notifications", findErr)
	}
	if countErr != nil {
		s.cfg.Log.Error("Failed to count unread notifications",
			"recipient_id", recipientID,
			"error", countErr,
		)
		return nil, mongotx.StoreError("Failed to count unread notifications", countErr)
	}

	return &Inbox{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *inboxService) MarkRead(ctx context.Context, id, recipientID string) error {
	err := s.repo.MarkRead(ctx, id, recipientID)
	if err != nil {
		if errors.Is(err, notificationerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Notification", id)
		}
		if errors.Is(err, notificationerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid notification ID format")
		}
		s.cfg.Log.Error("Failed to mark notification read",
			"id", id,
			"recipient_id", recipientID,
			"error", err,
		)
		return mongotx.StoreError("Failed to mark notification read", err)
	}
	return nil
}

func (s *inboxService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	modified, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		s.cfg.Log.Error("Failed to mark notifications read",
			"recipient_id", recipientID,
			"error", err,
		)
		return 0, mongotx.StoreError("Failed to mark notifications read", err)
	}
	return modified, nil
}
