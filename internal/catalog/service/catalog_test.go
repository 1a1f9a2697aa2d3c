package service

import (
	"context"
	"testing"

	catalogerrors "notarynow/internal/catalog/errors"
	"notarynow/internal/catalog/validator"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/logger"
	"notarynow/pkg/model"
)

const (
	providerID = "000000000000000000000020"
	serviceID  = "000000000000000000000030"
)

type mockServiceRepository struct {
	createFunc  func(ctx context.Context, svc *model.Service) error
	findByID    func(ctx context.Context, id string) (*model.Service, error)
	findAllFunc func(ctx context.Context, limit int, offset int64) ([]*model.Service, error)
	countFunc   func(ctx context.Context) (int64, error)
}

func (m *mockServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, svc)
	}
	svc.ID = serviceID
	return nil
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return &model.Service{ID: id, Name: "Property Transfer", BasePrice: 30000}, nil
}

func (m *mockServiceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Service, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Service{}, nil
}

func (m *mockServiceRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockOfferingRepository struct {
	upsertFunc func(ctx context.Context, offering *model.ServiceOffering) error
	deleteFunc func(ctx context.Context, providerID, serviceID string) error
	findFunc   func(ctx context.Context, providerID, serviceID string) (*model.ServiceOffering, error)
	byProvider func(ctx context.Context, providerID string) ([]*model.ServiceOffering, error)
}

func (m *mockOfferingRepository) Upsert(ctx context.Context, offering *model.ServiceOffering) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, offering)
	}
	return nil
}

func (m *mockOfferingRepository) Delete(ctx context.Context, providerID, serviceID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, providerID, serviceID)
	}
	return nil
}

func (m *mockOfferingRepository) Find(ctx context.Context, providerID, serviceID string) (*model.ServiceOffering, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, providerID, serviceID)
	}
	return nil, catalogerrors.ErrOfferingNotFound
}

func (m *mockOfferingRepository) FindByProvider(ctx context.Context, providerID string) ([]*model.ServiceOffering, error) {
	if m.byProvider != nil {
		return m.byProvider(ctx, providerID)
	}
	return []*model.ServiceOffering{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newService(services *mockServiceRepository, offerings *mockOfferingRepository) CatalogService {
	cfg := testConfig()
	return NewCatalogService(services, offerings, validator.NewCatalogValidator(cfg), cfg)
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateServiceAdminOnly(t *testing.T) {
	svc := newService(&mockServiceRepository{}, &mockOfferingRepository{})

	entry := &model.Service{Name: "Document Authentication", BasePrice: 75}
	for _, role := range []config.Role{config.RoleCustomer, config.RoleNotary, config.RoleSecretary} {
		if err := svc.CreateService(context.Background(), entry, role); !apperrors.HasCode(err, apperrors.CodeForbidden) {
			t.Errorf("role %s: expected FORBIDDEN, got %v", role, err)
		}
	}

	if err := svc.CreateService(context.Background(), entry, config.RoleAdmin); err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("expected repository-assigned ID")
	}
}

func TestCreateServiceValidation(t *testing.T) {
	svc := newService(&mockServiceRepository{}, &mockOfferingRepository{})

	tests := []struct {
		name  string
		entry *model.Service
	}{
		{"empty name", &model.Service{Name: "", BasePrice: 75}},
		{"zero price", &model.Service{Name: "Document Authentication", BasePrice: 0}},
		{"negative price", &model.Service{Name: "Document Authentication", BasePrice: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateService(context.Background(), tt.entry, config.RoleAdmin)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

// A custom price on the offering wins over the base price; without one the
// base price applies.
func TestResolveOfferingPrice(t *testing.T) {
	tests := []struct {
		name        string
		customPrice *float64
		want        float64
	}{
		{"custom price wins", floatPtr(25000), 25000},
		{"base price fallback", nil, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offerings := &mockOfferingRepository{
				findFunc: func(ctx context.Context, pid, sid string) (*model.ServiceOffering, error) {
					return &model.ServiceOffering{
						ProviderID:  pid,
						ServiceID:   sid,
						CustomPrice: tt.customPrice,
					}, nil
				},
			}
			svc := newService(&mockServiceRepository{}, offerings)

			price, entry, err := svc.ResolveOffering(context.Background(), providerID, serviceID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if price != tt.want {
				t.Errorf("expected price %f, got %f", tt.want, price)
			}
			if entry == nil || entry.Name != "Property Transfer" {
				t.Errorf("expected the catalog service back, got %+v", entry)
			}
		})
	}
}

func TestResolveOfferingNotOffered(t *testing.T) {
	svc := newService(&mockServiceRepository{}, &mockOfferingRepository{})

	_, _, err := svc.ResolveOffering(context.Background(), providerID, serviceID)
	if !apperrors.HasCode(err, apperrors.CodeServiceNotOffered) {
		t.Fatalf("expected SERVICE_NOT_OFFERED, got %v", err)
	}
}

func TestResolveOfferingUnknownService(t *testing.T) {
	services := &mockServiceRepository{
		findByID: func(ctx context.Context, id string) (*model.Service, error) {
			return nil, catalogerrors.ErrServiceNotFound
		},
	}
	svc := newService(services, &mockOfferingRepository{})

	_, _, err := svc.ResolveOffering(context.Background(), providerID, serviceID)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAddOfferingSelfOnly(t *testing.T) {
	svc := newService(&mockServiceRepository{}, &mockOfferingRepository{})

	tests := []struct {
		name     string
		callerID string
		role     config.Role
	}{
		{"customer", providerID, config.RoleCustomer},
		{"admin", providerID, config.RoleAdmin},
		{"other notary", "000000000000000000000098", config.RoleNotary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddOffering(context.Background(), providerID, serviceID, nil, tt.callerID, tt.role)
			if !apperrors.HasCode(err, apperrors.CodeForbidden) {
				t.Fatalf("expected FORBIDDEN, got %v", err)
			}
		})
	}

	offering, err := svc.AddOffering(context.Background(), providerID, serviceID, floatPtr(25000), providerID, config.RoleNotary)
	if err != nil {
		t.Fatalf("self opt-in failed: %v", err)
	}
	if offering.CustomPrice == nil || *offering.CustomPrice != 25000 {
		t.Errorf("expected custom price preserved, got %+v", offering.CustomPrice)
	}
}

func TestAddOfferingRejectsNonPositivePrice(t *testing.T) {
	svc := newService(&mockServiceRepository{}, &mockOfferingRepository{})

	_, err := svc.AddOffering(context.Background(), providerID, serviceID, floatPtr(0), providerID, config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRemoveOfferingNotFound(t *testing.T) {
	offerings := &mockOfferingRepository{
		deleteFunc: func(ctx context.Context, pid, sid string) error {
			return catalogerrors.ErrOfferingNotFound
		},
	}
	svc := newService(&mockServiceRepository{}, offerings)

	err := svc.RemoveOffering(context.Background(), providerID, serviceID, providerID, config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListServicesPairsCountWithPage(t *testing.T) {
	services := &mockServiceRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Service, error) {
			return []*model.Service{
				{ID: serviceID, Name: "Document Authentication", BasePrice: 75},
			}, nil
		},
		countFunc: func(ctx context.Context) (int64, error) {
			return 12, nil
		},
	}
	svc := newService(services, &mockOfferingRepository{})

	page, total, err := svc.ListServices(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || total != 12 {
		t.Errorf("expected 1 item and total 12, got %d and %d", len(page), total)
	}
}
