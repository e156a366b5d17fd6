package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
)

type fakeServiceRepo struct {
	services map[uint]*domain.Service
	nextID   uint
	deleted  []uint
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uint]*domain.Service), nextID: 1}
}

func (f *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	service.ID = f.nextID
	f.nextID++
	copied := *service
	f.services[service.ID] = &copied
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uint) (domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return domain.Service{}, errors.New("service not found")
	}
	return *svc, nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByTransporter(_ context.Context, transporterID uint) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range f.services {
		if svc.TransporterID == transporterID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	if _, ok := f.services[service.ID]; !ok {
		return errors.New("service not found")
	}
	copied := *service
	f.services[service.ID] = &copied
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.services[id]; !ok {
		return errors.New("service not found")
	}
	delete(f.services, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeOrdersRepo struct {
	cascaded []uint
	fail     error
}

func (f *fakeOrdersRepo) DeleteByService(_ context.Context, serviceID uint) error {
	if f.fail != nil {
		return f.fail
	}
	f.cascaded = append(f.cascaded, serviceID)
	return nil
}

func validInput(category string) CreateServiceInput {
	in := CreateServiceInput{
		ServiceName:     "Bucuresti - Roma",
		ServiceCategory: category,
		DestinationFrom: "Bucuresti",
		DestinationTo:   "Roma",
		RouteCities:     json.RawMessage(`["Sibiu","Arad"]`),
		TravelDate:      time.Now().Add(48 * time.Hour),
		DepartureTime:   "08:00",
		ArrivalDate:     time.Now().Add(72 * time.Hour),
		Availability:    json.RawMessage(`{"romania":["Monday"],"italy":["Thursday"]}`),
		PickupOption:    "yes",
		Price:           120,
		ServicePic:      "https://cdn.example.com/bus.jpg",
	}

	switch category {
	case domain.CategoryPassenger:
		in.TotalSeats = 8
	case domain.CategoryParcel:
		in.ParcelLoadCapacity = 100
	case domain.CategoryCarTowing:
		in.VehicleType = "sedan"
	case domain.CategoryVehicleTrailer:
		in.TrailerType = "flatbed"
	case domain.CategoryFurniture:
		in.FurnitureDetails = "3 wardrobes, 1 sofa"
	case domain.CategoryAnimal:
		in.AnimalType = "dog"
	}

	return in
}

func TestParseStringList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["Sibiu","Arad"]`, []string{"Sibiu", "Arad"}},
		{"json string wrapping array", `"[\"Sibiu\",\"Arad\"]"`, []string{"Sibiu", "Arad"}},
		{"comma delimited", `"Sibiu, Arad"`, []string{"Sibiu", "Arad"}},
		{"trims blanks", `[" Sibiu ",""]`, []string{"Sibiu"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseStringList(json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("parseStringList: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := parseStringList(json.RawMessage(`123`)); err == nil {
		t.Error("expected error for non-list input")
	}
}

func TestParseAvailability(t *testing.T) {
	direct := json.RawMessage(`{"romania":["Monday"],"italy":["Thursday"]}`)
	days, err := parseAvailability(direct)
	if err != nil {
		t.Fatalf("parseAvailability: %v", err)
	}
	if len(days.Romania) != 1 || len(days.Italy) != 1 {
		t.Errorf("unexpected days: %+v", days)
	}

	wrapped := json.RawMessage(`"{\"romania\":[\"Monday\"],\"italy\":[\"Thursday\"]}"`)
	days, err = parseAvailability(wrapped)
	if err != nil {
		t.Fatalf("parseAvailability wrapped: %v", err)
	}
	if len(days.Romania) != 1 || len(days.Italy) != 1 {
		t.Errorf("unexpected days from wrapped: %+v", days)
	}

	if _, err := parseAvailability(json.RawMessage(`42`)); err == nil {
		t.Error("expected error for invalid availability")
	}
}

func TestCreateServiceAllCategories(t *testing.T) {
	for category := range domain.ValidServiceCategories {
		t.Run(category, func(t *testing.T) {
			repo := newFakeServiceRepo()
			svc := NewCatalogService(repo, &fakeOrdersRepo{})

			created, err := svc.CreateService(context.Background(), 2, validInput(category))
			if err != nil {
				t.Fatalf("CreateService(%s): %v", category, err)
			}
			if created.TransporterID != 2 {
				t.Errorf("expected transporter 2, got %d", created.TransporterID)
			}
			if created.ServiceCategory != category {
				t.Errorf("expected category %s, got %s", category, created.ServiceCategory)
			}
		})
	}
}

func TestCreateServicePassengerSeatsDefault(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, &fakeOrdersRepo{})

	in := validInput(domain.CategoryPassenger)
	in.TotalSeats = 8
	in.AvailableSeats = 0

	created, err := svc.CreateService(context.Background(), 2, in)
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if created.AvailableSeats != 8 {
		t.Errorf("available seats should default to total, got %d", created.AvailableSeats)
	}
}

func TestCreateServiceCategoryRequirements(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateServiceInput)
	}{
		{"passenger without seats", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryPassenger
			in.TotalSeats = 0
		}},
		{"parcel without capacity", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryParcel
			in.ParcelLoadCapacity = 0
		}},
		{"car towing bad vehicle type", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryCarTowing
			in.VehicleType = "hovercraft"
		}},
		{"trailer bad type", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryVehicleTrailer
			in.TrailerType = "magnetic"
		}},
		{"furniture without details", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryFurniture
			in.FurnitureDetails = ""
		}},
		{"animal bad type", func(in *CreateServiceInput) {
			in.ServiceCategory = domain.CategoryAnimal
			in.AnimalType = "dragon"
		}},
		{"missing availability", func(in *CreateServiceInput) {
			in.Availability = json.RawMessage(`{"romania":[],"italy":[]}`)
		}},
		{"bad pickup option", func(in *CreateServiceInput) {
			in.PickupOption = "maybe"
		}},
		{"zero price", func(in *CreateServiceInput) {
			in.Price = 0
		}},
		{"missing picture", func(in *CreateServiceInput) {
			in.ServicePic = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeServiceRepo()
			svc := NewCatalogService(repo, &fakeOrdersRepo{})

			in := validInput(domain.CategoryPassenger)
			tc.mutate(&in)

			_, err := svc.CreateService(context.Background(), 2, in)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected validation error, got %T", err)
			}
			if len(repo.services) != 0 {
				t.Error("no service should be persisted")
			}
		})
	}
}

func TestGetMyServicesRequiresTransporter(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, &fakeOrdersRepo{})

	if _, err := svc.GetMyServices(context.Background(), 1, domain.RoleCustomer); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := svc.GetMyServices(context.Background(), 2, domain.RoleTransporter); err != nil {
		t.Errorf("transporter listing failed: %v", err)
	}
}

func TestUpdateServiceOwnership(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewCatalogService(repo, &fakeOrdersRepo{})

	created, err := svc.CreateService(context.Background(), 2, validInput(domain.CategoryPassenger))
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	newPrice := 150.0
	if _, err := svc.UpdateService(context.Background(), created.ID, 99, domain.RoleTransporter, UpdateServiceInput{Price: &newPrice}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for stranger, got %v", err)
	}

	updated, err := svc.UpdateService(context.Background(), created.ID, 99, domain.RoleAdmin, UpdateServiceInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Price != 150 {
		t.Errorf("expected price 150, got %v", updated.Price)
	}

	updated, err = svc.UpdateService(context.Background(), created.ID, 2, domain.RoleTransporter, UpdateServiceInput{ServiceName: "Cluj - Torino"})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.ServiceName != "Cluj - Torino" {
		t.Errorf("expected renamed service, got %q", updated.ServiceName)
	}
}

func TestDeleteServiceCascadesOrders(t *testing.T) {
	repo := newFakeServiceRepo()
	ordersRepo := &fakeOrdersRepo{}
	svc := NewCatalogService(repo, ordersRepo)

	created, err := svc.CreateService(context.Background(), 2, validInput(domain.CategoryPassenger))
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	if err := svc.DeleteService(context.Background(), created.ID, 1, domain.RoleCustomer); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for non-owner, got %v", err)
	}

	if err := svc.DeleteService(context.Background(), created.ID, 2, domain.RoleTransporter); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}

	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Error("service was not deleted")
	}
	if len(ordersRepo.cascaded) != 1 || ordersRepo.cascaded[0] != created.ID {
		t.Error("orders cascade did not run")
	}
}

func TestDeleteServiceKeepsRowWhenCascadeFails(t *testing.T) {
	repo := newFakeServiceRepo()
	ordersRepo := &fakeOrdersRepo{fail: errors.New("connection reset")}
	svc := NewCatalogService(repo, ordersRepo)

	created, err := svc.CreateService(context.Background(), 2, validInput(domain.CategoryPassenger))
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	if err := svc.DeleteService(context.Background(), created.ID, 2, domain.RoleTransporter); err == nil {
		t.Fatal("expected cascade error to surface")
	}

	if _, ok := repo.services[created.ID]; !ok {
		t.Error("service row should survive a failed order cascade")
	}
	if len(repo.deleted) != 0 {
		t.Error("service must not be deleted before its orders")
	}
}
