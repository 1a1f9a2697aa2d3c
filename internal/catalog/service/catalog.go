package service

import (
	"context"
	"errors"
	"sync"

	catalogerrors "notarynow/internal/catalog/errors"
	"notarynow/internal/catalog/repository"
	"notarynow/internal/catalog/validator"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
	"notarynow/pkg/sanitizer"
)

type CatalogService interface {
	CreateService(ctx context.Context, svc *model.Service, role config.Role) error
	GetService(ctx context.Context, serviceID string) (*model.Service, error)
	ListServices(ctx context.Context, limit int, offset int64) ([]*model.Service, int64, error)

	AddOffering(ctx context.Context, providerID, serviceID string, customPrice *float64, callerID string, role config.Role) (*model.ServiceOffering, error)
	RemoveOffering(ctx context.Context, providerID, serviceID string, callerID string, role config.Role) error
	ListOfferings(ctx context.Context, providerID string) ([]*model.ServiceOffering, error)

	ResolveOffering(ctx context.Context, providerID, serviceID string) (float64, *model.Service, error)
}

type catalogService struct {
	services  repository.ServiceRepository
	offerings repository.OfferingRepository
	validator *validator.CatalogValidator
	cfg       *config.Config
}

func NewCatalogService(
	services repository.ServiceRepository,
	offerings repository.OfferingRepository,
	v *validator.CatalogValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		services:  services,
		offerings: offerings,
		validator: v,
		cfg:       cfg,
	}
}

func (s *catalogService) CreateService(ctx context.Context, svc *model.Service, role config.Role) error {
	if role != config.RoleAdmin {
		return apperrors.Forbidden("Only administrators may create catalog services")
	}

	svc.Name = sanitizer.NormalizeName(svc.Name)
	svc.Description = sanitizer.TrimAndNormalize(svc.Description)

	if err := s.validator.ValidateService(svc); err != nil {
		s.cfg.Log.Warn("Service validation failed",
			"name", svc.Name,
			"error", err,
		)
		return apperrors.Validation("Service validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.services.Create(ctx, svc); err != nil {
		s.cfg.Log.Error("Failed to create service",
			"name", svc.Name,
			"error", err,
		)
		return mongotx.StoreError("Failed to create service", err)
	}

	s.cfg.Log.Info("Service created",
		"id", svc.ID,
		"name", svc.Name,
		"base_price", svc.BasePrice,
	)
	return nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*model.Service, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrServiceNotFound) {
			return nil, apperrors.NotFoundWithID("Service", serviceID)
		}
		if errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid service ID format")
		}
		s.cfg.Log.Error("Failed to get service",
			"id", serviceID,
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to get service", err)
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context, limit int, offset int64) ([]*model.Service, int64, error) {
	var (
		wg         sync.WaitGroup
		services   []*model.Service
		totalCount int64
		findErr    error
		countErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		services, findErr = s.services.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		totalCount, countErr = s.services.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		s.cfg.Log.Error("Failed to list services", "error", findErr)
		return nil, 0, mongotx.StoreError("Failed to list services", findErr)
	}
	if countErr != nil {
		s.cfg.Log.Error("Failed to count services", "error", countErr)
		return nil, 0, mongotx.StoreError("Failed to count services", countErr)
	}

	return services, totalCount, nil
}

// AddOffering opts a notary in to a catalog service, optionally with a
// price override. Only the notary may manage their own offerings.
func (s *catalogService) AddOffering(ctx context.Context, providerID, serviceID string, customPrice *float64, callerID string, role config.Role) (*model.ServiceOffering, error) {
	if role != config.RoleNotary || callerID != providerID {
		return nil, apperrors.Forbidden("Only the notary may manage their own offerings")
	}

	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	offering := &model.ServiceOffering{
		ProviderID:  providerID,
		ServiceID:   serviceID,
		CustomPrice: customPrice,
	}

	if err := s.validator.ValidateOffering(offering); err != nil {
		return nil, apperrors.Validation("Offering validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.offerings.Upsert(ctx, offering); err != nil {
		s.cfg.Log.Error("Failed to save offering",
			"provider_id", providerID,
			"service_id", serviceID,
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to save offering", err)
	}

	s.cfg.Log.Info("Offering saved",
		"provider_id", providerID,
		"service_id", serviceID,
		"price", offering.Price(svc.BasePrice),
	)
	return offering, nil
}

// RemoveOffering withdraws the opt-in. Existing appointments keep the cost
// stamped at booking time.
func (s *catalogService) RemoveOffering(ctx context.Context, providerID, serviceID string, callerID string, role config.Role) error {
	if role != config.RoleNotary || callerID != providerID {
		return apperrors.Forbidden("Only the notary may manage their own offerings")
	}

	if err := s.offerings.Delete(ctx, providerID, serviceID); err != nil {
		if errors.Is(err, catalogerrors.ErrOfferingNotFound) {
			return apperrors.NotFoundWithID("Offering", serviceID)
		}
		s.cfg.Log.Error("Failed to remove offering",
			"provider_id", providerID,
			"service_id", serviceID,
			"error", err,
		)
		return mongotx.StoreError("Failed to remove offering", err)
	}

	s.cfg.Log.Info("Offering removed",
		"provider_id", providerID,
		"service_id", serviceID,
	)
	return nil
}

func (s *catalogService) ListOfferings(ctx context.Context, providerID string) ([]*model.ServiceOffering, error) {
	offerings, err := s.offerings.FindByProvider(ctx, providerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list offerings",
			"provider_id", providerID,
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to list offerings", err)
	}
	return offerings, nil
}

// ResolveOffering returns the effective price a booking must snapshot. A
// provider who never opted in to the service yields SERVICE_NOT_OFFERED.
func (s *catalogService) ResolveOffering(ctx context.Context, providerID, serviceID string) (float64, *model.Service, error) {
	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return 0, nil, err
	}

	offering, err := s.offerings.Find(ctx, providerID, serviceID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrOfferingNotFound) {
			return 0, nil, apperrors.ServiceNotOffered(serviceID)
		}
		s.cfg.Log.Error("Failed to resolve offering",
			"provider_id", providerID,
			"service_id", serviceID,
			"error", err,
		)
		return 0, nil, mongotx.StoreError("Failed to resolve offering", err)
	}

	return offering.Price(svc.BasePrice), svc, nil
}
