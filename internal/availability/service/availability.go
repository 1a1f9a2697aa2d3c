package service

import (
	"context"
	"errors"
	"time"

	availabilityerrors "notarynow/internal/availability/errors"
	"notarynow/internal/availability/repository"
	"notarynow/internal/availability/validator"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
)

type AvailabilityService interface {
	GetTemplate(ctx context.Context, providerID string) (*model.WeeklyTemplate, error)
	ReplaceTemplate(ctx context.Context, providerID string, tmpl *model.WeeklyTemplate, callerID string, role config.Role) error
	FreeSlots(ctx context.Context, providerID string, date time.Time) ([]model.FreeWindow, error)
	FreeSlotsRange(ctx context.Context, providerID string, from, to time.Time) ([]model.FreeWindow, error)
}

type availabilityService struct {
	repo         repository.TemplateRepository
	appointments repository.AppointmentReader
	validator    *validator.TemplateValidator
	cfg          *config.Config
}

func NewAvailabilityService(
	repo repository.TemplateRepository,
	appointments repository.AppointmentReader,
	v *validator.TemplateValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:         repo,
		appointments: appointments,
		validator:    v,
		cfg:          cfg,
	}
}

// GetTemplate returns the stored weekly template, or the onboarding default
// (all days enabled with the configured windows) for providers that never
// saved one.
func (s *availabilityService) GetTemplate(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	tmpl, err := s.repo.FindByProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrTemplateNotFound) {
			return model.DefaultWeeklyTemplate(providerID, s.cfg.DefaultDayWindows), nil
		}
		return nil, mongotx.StoreError("Failed to retrieve availability template", err)
	}

	return tmpl, nil
}

func (s *availabilityService) ReplaceTemplate(ctx context.Context, providerID string, tmpl *model.WeeklyTemplate, callerID string, role config.Role) error {
	if providerID == "" {
		return apperrors.InvalidInput("Provider ID cannot be empty")
	}
	if role != config.RoleNotary || callerID != providerID {
		return apperrors.Forbidden("Only the owning notary may update availability")
	}

	tmpl.ProviderID = providerID
	if err := s.validator.Validate(tmpl); err != nil {
		s.cfg.Log.Warn("Availability template validation failed",
			"provider_id", providerID,
			"error", err,
		)
		return apperrors.Validation("Availability template validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Replace(ctx, tmpl); err != nil {
		s.cfg.Log.Error("Failed to replace availability template",
			"provider_id", providerID,
			"error", err,
		)
		return mongotx.StoreError("Failed to save availability template", err)
	}

	s.cfg.Log.Info("Availability template replaced",
		"provider_id", providerID,
	)
	return nil
}

// FreeSlots resolves the bookable windows for one calendar date: the day's
// template windows minus intervals consumed by non-cancelled appointments.
func (s *availabilityService) FreeSlots(ctx context.Context, providerID string, date time.Time) ([]model.FreeWindow, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	tmpl, err := s.GetTemplate(ctx, providerID)
	if err != nil {
		return nil, err
	}

	loc := s.cfg.Location()
	date = date.In(loc)

	day, ok := tmpl.Days[model.WeekdayOf(date)]
	if !ok || !day.Enabled {
		return []model.FreeWindow{}, nil
	}

	windows := dayWindows(day, date, loc)
	if len(windows) == 0 {
		return []model.FreeWindow{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	blocking, err := s.appointments.FindBlocking(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to load blocking appointments",
			"provider_id", providerID,
			"date", dayStart.Format("2006-01-02"),
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to resolve free slots", err)
	}

	busy := make([]model.FreeWindow, 0, len(blocking))
	for _, a := range blocking {
		if !a.BlocksSlot() {
			continue
		}
		busy = append(busy, model.FreeWindow{Start: a.ScheduledTime.In(loc), End: a.EndTime().In(loc)})
	}

	free := subtractBusy(windows, busy)
	if free == nil {
		free = []model.FreeWindow{}
	}
	return free, nil
}

// FreeSlotsRange resolves free windows for every date in [from, to],
// inclusive on both ends, capped at 31 days.
func (s *availabilityService) FreeSlotsRange(ctx context.Context, providerID string, from, to time.Time) ([]model.FreeWindow, error) {
	if to.Before(from) {
		return nil, apperrors.InvalidInput("Range end must not be before range start")
	}

	const maxRangeDays = 31
	loc := s.cfg.Location()
	from = from.In(loc)
	to = to.In(loc)

	if days := int(to.Sub(from)/(24*time.Hour)) + 1; days > maxRangeDays {
		return nil, apperrors.InvalidInput("Date range cannot exceed 31 days")
	}

	var all []model.FreeWindow
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		slots, err := s.FreeSlots(ctx, providerID, d)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}
	if all == nil {
		all = []model.FreeWindow{}
	}
	return all, nil
}
