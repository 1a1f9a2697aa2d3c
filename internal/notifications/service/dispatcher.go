package service

import (
	"context"
	"sync"
	"time"

	"notarynow/pkg/config"
	"notarynow/pkg/kafka"
	"notarynow/pkg/model"
)

// Publisher is the delivery boundary. The Kafka producer satisfies it; a
// dispatch failure is logged and dropped, never propagated.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Dispatcher translates domain events into notifications and hands them to
// the publisher from a single background worker. Enqueueing never blocks
// the calling request; when the queue is full the event is dropped with a
// log line.
type Dispatcher struct {
	publisher Publisher
	cfg       *config.Config
	queue     chan *model.Notification
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewDispatcher(publisher Publisher, cfg *config.Config) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		cfg:       cfg,
		queue:     make(chan *model.Notification, cfg.NotificationQueueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

func (d *Dispatcher) AppointmentCreated(appt *model.Appointment, serviceName string) {
	d.enqueue(TranslateAppointmentCreated(appt, serviceName))
}

func (d *Dispatcher) AppointmentStatusChanged(appt *model.Appointment, serviceName string) {
	d.enqueue(TranslateStatusChanged(appt, serviceName))
}

func (d *Dispatcher) CertificationApprovalRequested(notaryName, certificationName string, adminIDs []string) {
	d.enqueue(TranslateCertificationApprovalRequested(notaryName, certificationName, adminIDs))
}

func (d *Dispatcher) CertificationApproved(notaryID, certificationName string) {
	d.enqueue(TranslateCertificationApproved(notaryID, certificationName))
}

func (d *Dispatcher) NewUserRegistered(userName string, role config.Role, adminIDs []string) {
	d.enqueue(TranslateNewUserRegistered(userName, role, adminIDs))
}

func (d *Dispatcher) enqueue(notifications []*model.Notification) {
	for _, n := range notifications {
		select {
		case d.queue <- n:
		default:
			d.cfg.Log.Warn("Notification queue full, dropping notification",
				"recipient_id", n.RecipientID,
				"type", n.Type,
			)
		}
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		d.publish(n)
	}
}

func (d *Dispatcher) publish(n *model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.WriteTimeout)
	defer cancel()

	msg := kafka.NewMessage().
		WithKey(n.RecipientID).
		WithValue(n).
		WithEventType(string(n.Type)).
		WithSource(d.cfg.ServiceName).
		WithHeader(kafka.HeaderRecipientID, n.RecipientID).
		Build()

	if err := d.publisher.Publish(ctx, msg); err != nil {
		d.cfg.Log.Error("Failed to publish notification",
			"recipient_id", n.RecipientID,
			"type", n.Type,
			"error", err,
		)
		return
	}

	d.cfg.Log.Debug("Notification published",
		"recipient_id", n.RecipientID,
		"type", n.Type,
	)
}

// Close drains the queue and stops the worker. Notifications enqueued
// after Close panics the send, so call it only on shutdown after the HTTP
// server is down.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		d.cfg.Log.Warn("Timed out waiting for notification worker to drain")
	}
}
