package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	appointmenterrors "notarynow/internal/appointments/errors"
	"notarynow/internal/appointments/repository"
	"notarynow/internal/appointments/validator"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
	"notarynow/pkg/sanitizer"
)

// SlotResolver supplies the free windows for a provider on one date. The
// availability service satisfies this.
type SlotResolver interface {
	FreeSlots(ctx context.Context, providerID string, date time.Time) ([]model.FreeWindow, error)
}

// CatalogReader resolves the snapshot price of an offering and reads catalog
// services. ResolveOffering returns SERVICE_NOT_OFFERED when the provider
// never opted in to the service.
type CatalogReader interface {
	ResolveOffering(ctx context.Context, providerID, serviceID string) (float64, *model.Service, error)
	GetService(ctx context.Context, serviceID string) (*model.Service, error)
}

// NotificationDispatcher receives lifecycle events. Implementations are
// fire-and-forget; a dispatch failure never fails the triggering operation.
type NotificationDispatcher interface {
	AppointmentCreated(appt *model.Appointment, serviceName string)
	AppointmentStatusChanged(appt *model.Appointment, serviceName string)
}

type AppointmentService interface {
	Create(ctx context.Context, req *model.BookingRequest, callerID string, role config.Role) (*model.Appointment, error)
	Transition(ctx context.Context, id string, next config.AppointmentStatus, callerID string, role config.Role) (*model.Appointment, error)
	GetByID(ctx context.Context, id string, callerID string, role config.Role) (*model.Appointment, error)
	List(ctx context.Context, callerID string, role config.Role, status config.AppointmentStatus, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo       repository.AppointmentRepository
	lockRepo   repository.SlotLockRepository
	providers  repository.ProviderDirectory
	slots      SlotResolver
	catalog    CatalogReader
	dispatcher NotificationDispatcher
	validator  *validator.BookingValidator
	cfg        *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	providers repository.ProviderDirectory,
	slots SlotResolver,
	catalog CatalogReader,
	dispatcher NotificationDispatcher,
	v *validator.BookingValidator,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:       repo,
		lockRepo:   lockRepo,
		providers:  providers,
		slots:      slots,
		catalog:    catalog,
		dispatcher: dispatcher,
		validator:  v,
		cfg:        cfg,
	}
}

// Create runs the booking checks in order, short-circuiting on the first
// failure: request shape, future start, active provider, offered service,
// slot containment, then the transactional overlap check guarded by an
// advisory lock. Success materializes a PENDING appointment with the
// resolved price stamped as its total cost.
func (s *appointmentService) Create(ctx context.Context, req *model.BookingRequest, callerID string, role config.Role) (*model.Appointment, error) {
	if role != config.RoleCustomer {
		return nil, apperrors.Forbidden("Only customers may book appointments")
	}

	req.Notes = sanitizer.NormalizeNotes(req.Notes)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed",
			"provider_id", req.ProviderID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if !req.ScheduledTime.After(time.Now()) {
		return nil, apperrors.PastTime("Appointments must be scheduled in the future")
	}

	if err := s.checkProviderBookable(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	price, svc, err := s.catalog.ResolveOffering(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	start := req.ScheduledTime.In(s.cfg.Location())
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	free, err := s.slots.FreeSlots(ctx, req.ProviderID, start)
	if err != nil {
		return nil, err
	}
	if !model.FitsInWindow(free, start, time.Duration(req.DurationMinutes)*time.Minute) {
		return nil, apperrors.SlotUnavailable("That time is not fully inside an open availability window")
	}

	intent := &model.BookingIntent{
		CustomerID:      callerID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		ScheduledTime:   start,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		TotalCost:       price,
	}

	lockIDs, err := s.acquireSlotLocks(ctx, req.ProviderID, start, end)
	if err != nil {
		return nil, err
	}
	defer s.releaseSlotLocks(ctx, lockIDs)

	appt := intent.Appointment()
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlapping, err := s.repo.FindOverlapping(sessCtx, req.ProviderID, start, end)
		if err != nil {
			return mongotx.StoreError("Failed to check existing appointments", err)
		}
		if len(overlapping) > 0 {
			first := overlapping[0]
			return apperrors.Conflict(fmt.Sprintf(
				"Appointment time overlaps with an existing appointment (%s - %s)",
				first.ScheduledTime.Format(time.RFC3339),
				first.EndTime().Format(time.RFC3339),
			))
		}
		if err := s.repo.Create(sessCtx, appt); err != nil {
			return mongotx.StoreError("Failed to create appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create appointment",
			"provider_id", req.ProviderID,
			"scheduled_time", start,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Appointment created successfully",
		"id", appt.ID,
		"customer_id", appt.CustomerID,
		"provider_id", appt.ProviderID,
		"scheduled_time", appt.ScheduledTime,
		"total_cost", appt.TotalCost,
	)

	s.dispatcher.AppointmentCreated(appt, svc.Name)

	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string, callerID string, role config.Role) (*model.Appointment, error) {
	appt, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canRead(appt, callerID, role) {
		return nil, apperrors.Forbidden("You may not view this appointment")
	}
	return appt, nil
}

// List scopes the result set by role: customers see their own bookings,
// notaries their own calendar, admins and secretaries everything.
func (s *appointmentService) List(ctx context.Context, callerID string, role config.Role, status config.AppointmentStatus, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, apperrors.InvalidInput("Invalid status filter: " + string(status))
	}

	filter := repository.ListFilter{Status: status}
	switch role {
	case config.RoleCustomer:
		filter.CustomerID = callerID
	case config.RoleNotary:
		filter.ProviderID = callerID
	case config.RoleAdmin, config.RoleSecretary:
	default:
		return nil, 0, apperrors.Forbidden("Unknown role")
	}

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = mongotx.StoreError("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = mongotx.StoreError("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

// --- Helpers ---

func (s *appointmentService) findByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmenterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmenterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, mongotx.StoreError("Failed to retrieve appointment", err)
	}
	return appt, nil
}

func canRead(appt *model.Appointment, callerID string, role config.Role) bool {
	switch role {
	case config.RoleAdmin, config.RoleSecretary:
		return true
	case config.RoleCustomer:
		return appt.CustomerID == callerID
	case config.RoleNotary:
		return appt.ProviderID == callerID
	}
	return false
}

func (s *appointmentService) checkProviderBookable(ctx context.Context, providerID string) error {
	provider, err := s.providers.FindProvider(ctx, providerID)
	if err != nil {
		return mongotx.StoreError("Failed to look up provider", err)
	}
	if provider == nil || provider.Role != config.RoleNotary {
		return apperrors.NotFoundWithID("Provider", providerID)
	}
	if !provider.Active {
		return apperrors.Validation("Provider is not accepting bookings", map[string]any{
			"provider_id": providerID,
		})
	}
	return nil
}

// slotLockBucket is the granularity of advisory lock documents. Any two
// overlapping intervals cover at least one common bucket, so holding every
// bucket that [start, end) touches serializes conflicting bookings even when
// their start times differ.
const slotLockBucket = 15 * time.Minute

// acquireSlotLocks creates one advisory lock per time bucket the requested
// interval touches, in chronological order. A duplicate key means another
// request is booking an overlapping interval right now; locks already taken
// are released before reporting the conflict.
func (s *appointmentService) acquireSlotLocks(ctx context.Context, providerID string, start, end time.Time) ([]string, error) {
	expiresAt := time.Now().Add(s.cfg.SlotLockTTL)

	var held []string
	for bucket := start.Truncate(slotLockBucket); bucket.Before(end); bucket = bucket.Add(slotLockBucket) {
		lock := &model.SlotLock{
			ID:        fmt.Sprintf("slot_lock_%s_%d", providerID, bucket.Unix()),
			ExpiresAt: expiresAt,
		}

		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			s.releaseSlotLocks(ctx, held)
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
			}
			return nil, mongotx.StoreError("Failed to acquire slot lock", err)
		}
		held = append(held, lock.ID)
	}

	return held, nil
}

func (s *appointmentService) releaseSlotLocks(ctx context.Context, lockIDs []string) {
	for _, lockID := range lockIDs {
		if err := s.lockRepo.Delete(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
		}
	}
}
