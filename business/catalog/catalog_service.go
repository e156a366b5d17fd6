package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"

	"gorm.io/datatypes"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	FindByID(ctx context.Context, id uint) (domain.Service, error)
	FindAll(ctx context.Context) ([]domain.Service, error)
	FindByTransporter(ctx context.Context, transporterID uint) ([]domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id uint) error
}

type OrdersRepository interface {
	DeleteByService(ctx context.Context, serviceID uint) error
}

type CatalogService struct {
	serviceRepo ServiceRepository
	ordersRepo  OrdersRepository
}

func NewCatalogService(serviceRepo ServiceRepository, ordersRepo OrdersRepository) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		ordersRepo:  ordersRepo,
	}
}

// CreateServiceInput carries the submission. RouteCities and Availability
// arrive as raw JSON because clients send them as arrays, JSON-encoded
// strings, or delimited strings.
type CreateServiceInput struct {
	ServiceName        string
	ServiceCategory    string
	DestinationFrom    string
	DestinationTo      string
	RouteCities        json.RawMessage
	TravelDate         time.Time
	DepartureTime      string
	ArrivalDate        time.Time
	Availability       json.RawMessage
	TotalSeats         int
	AvailableSeats     int
	ParcelLoadCapacity float64
	VehicleType        string
	TrailerType        string
	FurnitureDetails   string
	AnimalType         string
	PickupOption       string
	Price              float64
	ServicePic         string
}

// parseStringList accepts a JSON array, a JSON string wrapping an array, or
// a comma-delimited string.
func parseStringList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, domain.NewValidationError("invalid format, expected an array")
	}

	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return trimAll(list), nil
	}

	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	return trimAll(strings.Split(s, ",")), nil
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// parseAvailability accepts the availability object directly or wrapped in a
// JSON-encoded string.
func parseAvailability(raw json.RawMessage) (domain.AvailabilityDays, error) {
	if len(raw) == 0 {
		return domain.AvailabilityDays{}, nil
	}

	var days domain.AvailabilityDays
	if err := json.Unmarshal(raw, &days); err == nil {
		return days, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.AvailabilityDays{}, domain.NewValidationError(
			"invalid format for availability days, expected a JSON object")
	}

	if err := json.Unmarshal([]byte(s), &days); err != nil {
		return domain.AvailabilityDays{}, domain.NewValidationError(
			"invalid format for availability days, expected a JSON object")
	}

	return days, nil
}

// validateCategoryFields runs the per-category required-field checks.
func validateCategoryFields(service *domain.Service) error {
	switch service.ServiceCategory {
	case domain.CategoryPassenger:
		if service.TotalSeats <= 0 {
			return domain.NewValidationError("total seats must be greater than 0 for passenger transport")
		}
		if service.AvailableSeats <= 0 || service.AvailableSeats > service.TotalSeats {
			service.AvailableSeats = service.TotalSeats
		}

	case domain.CategoryParcel:
		if service.ParcelLoadCapacity <= 0 {
			return domain.NewValidationError("parcel load capacity must be greater than 0 for parcel transport")
		}

	case domain.CategoryCarTowing:
		if !domain.ValidVehicleTypes[service.VehicleType] {
			return domain.NewValidationError("a valid vehicle type is required for car towing")
		}

	case domain.CategoryVehicleTrailer:
		if !domain.ValidTrailerTypes[service.TrailerType] {
			return domain.NewValidationError("a valid trailer type is required for vehicle trailer transport")
		}

	case domain.CategoryFurniture:
		if service.FurnitureDetails == "" {
			return domain.NewValidationError("furniture details are required for furniture transport")
		}

	case domain.CategoryAnimal:
		if !domain.ValidAnimalTypes[service.AnimalType] {
			return domain.NewValidationError("a valid animal type is required for animal transport")
		}

	default:
		return domain.NewValidationError("invalid service category")
	}

	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, transporterID uint, in CreateServiceInput) (domain.Service, error) {
	if !domain.ValidServiceCategories[in.ServiceCategory] {
		return domain.Service{}, domain.NewValidationError("invalid service category")
	}

	routeCities, err := parseStringList(in.RouteCities)
	if err != nil {
		return domain.Service{}, err
	}
	if len(routeCities) < 1 {
		return domain.Service{}, domain.NewValidationError("at least 1 route city is required")
	}

	days, err := parseAvailability(in.Availability)
	if err != nil {
		return domain.Service{}, err
	}
	if len(days.Romania) == 0 || len(days.Italy) == 0 {
		return domain.Service{}, domain.NewValidationError(
			"availability days for Romania and Italy are required as arrays")
	}

	if in.PickupOption != "yes" && in.PickupOption != "no" {
		return domain.Service{}, domain.NewValidationError("pickup option must be yes or no")
	}

	if in.Price <= 0 {
		return domain.Service{}, domain.NewValidationError("price must be greater than 0")
	}

	if in.ServicePic == "" {
		return domain.Service{}, domain.NewValidationError("service picture is required")
	}

	service := domain.Service{
		TransporterID:      transporterID,
		ServiceName:        strings.TrimSpace(in.ServiceName),
		ServiceCategory:    in.ServiceCategory,
		DestinationFrom:    strings.TrimSpace(in.DestinationFrom),
		DestinationTo:      strings.TrimSpace(in.DestinationTo),
		TravelDate:         in.TravelDate,
		DepartureTime:      strings.TrimSpace(in.DepartureTime),
		ArrivalDate:        in.ArrivalDate,
		TotalSeats:         in.TotalSeats,
		AvailableSeats:     in.AvailableSeats,
		ParcelLoadCapacity: in.ParcelLoadCapacity,
		VehicleType:        in.VehicleType,
		TrailerType:        in.TrailerType,
		FurnitureDetails:   in.FurnitureDetails,
		AnimalType:         in.AnimalType,
		PickupOption:       in.PickupOption,
		Price:              in.Price,
		ServicePic:         in.ServicePic,
	}

	if err := validateCategoryFields(&service); err != nil {
		return domain.Service{}, err
	}

	if err := setJSONColumn(&service.RouteCities, routeCities); err != nil {
		return domain.Service{}, err
	}
	if err := setJSONColumn(&service.Availability, days); err != nil {
		return domain.Service{}, err
	}

	if err := s.serviceRepo.Create(ctx, &service); err != nil {
		logger.Error("Failed to create service", err)
		return domain.Service{}, err
	}

	return service, nil
}

func setJSONColumn(col *datatypes.JSON, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	*col = datatypes.JSON(raw)
	return nil
}

func (s *CatalogService) GetAllServices(ctx context.Context) ([]domain.Service, error) {
	return s.serviceRepo.FindAll(ctx)
}

func (s *CatalogService) GetService(ctx context.Context, id uint) (domain.Service, error) {
	return s.serviceRepo.FindByID(ctx, id)
}

// GetMyServices lists a transporter's own offerings.
func (s *CatalogService) GetMyServices(ctx context.Context, transporterID uint, role string) ([]domain.Service, error) {
	if !strings.EqualFold(role, domain.RoleTransporter) {
		return nil, domain.ErrUnauthorized
	}

	return s.serviceRepo.FindByTransporter(ctx, transporterID)
}

// UpdateServiceInput mirrors CreateServiceInput with everything optional.
type UpdateServiceInput struct {
	ServiceName        string
	ServiceCategory    string
	DestinationFrom    string
	DestinationTo      string
	RouteCities        json.RawMessage
	TravelDate         time.Time
	DepartureTime      string
	ArrivalDate        time.Time
	Availability       json.RawMessage
	TotalSeats         *int
	AvailableSeats     *int
	ParcelLoadCapacity *float64
	VehicleType        string
	TrailerType        string
	FurnitureDetails   string
	AnimalType         string
	PickupOption       string
	Price              *float64
	ServicePic         string
}

func (s *CatalogService) UpdateService(ctx context.Context, serviceID, actorID uint, role string, in UpdateServiceInput) (domain.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return domain.Service{}, err
	}

	if service.TransporterID != actorID && !strings.EqualFold(role, domain.RoleAdmin) {
		return domain.Service{}, domain.ErrUnauthorized
	}

	if in.ServiceName != "" {
		service.ServiceName = strings.TrimSpace(in.ServiceName)
	}
	if in.ServiceCategory != "" {
		if !domain.ValidServiceCategories[in.ServiceCategory] {
			return domain.Service{}, domain.NewValidationError("invalid service category")
		}
		service.ServiceCategory = in.ServiceCategory
	}
	if in.DestinationFrom != "" {
		service.DestinationFrom = strings.TrimSpace(in.DestinationFrom)
	}
	if in.DestinationTo != "" {
		service.DestinationTo = strings.TrimSpace(in.DestinationTo)
	}
	if !in.TravelDate.IsZero() {
		service.TravelDate = in.TravelDate
	}
	if in.DepartureTime != "" {
		service.DepartureTime = strings.TrimSpace(in.DepartureTime)
	}
	if !in.ArrivalDate.IsZero() {
		service.ArrivalDate = in.ArrivalDate
	}
	if in.TotalSeats != nil {
		service.TotalSeats = *in.TotalSeats
	}
	if in.AvailableSeats != nil {
		service.AvailableSeats = *in.AvailableSeats
	}
	if in.ParcelLoadCapacity != nil {
		service.ParcelLoadCapacity = *in.ParcelLoadCapacity
	}
	if in.VehicleType != "" {
		service.VehicleType = in.VehicleType
	}
	if in.TrailerType != "" {
		service.TrailerType = in.TrailerType
	}
	if in.FurnitureDetails != "" {
		service.FurnitureDetails = in.FurnitureDetails
	}
	if in.AnimalType != "" {
		service.AnimalType = in.AnimalType
	}
	if in.PickupOption != "" {
		if in.PickupOption != "yes" && in.PickupOption != "no" {
			return domain.Service{}, domain.NewValidationError("pickup option must be yes or no")
		}
		service.PickupOption = in.PickupOption
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return domain.Service{}, domain.NewValidationError("price must be greater than 0")
		}
		service.Price = *in.Price
	}
	if in.ServicePic != "" {
		service.ServicePic = in.ServicePic
	}

	if len(in.RouteCities) > 0 {
		routeCities, err := parseStringList(in.RouteCities)
		if err != nil {
			return domain.Service{}, err
		}
		if len(routeCities) < 1 {
			return domain.Service{}, domain.NewValidationError("at least 1 route city is required")
		}
		if err := setJSONColumn(&service.RouteCities, routeCities); err != nil {
			return domain.Service{}, err
		}
	}

	if len(in.Availability) > 0 {
		days, err := parseAvailability(in.Availability)
		if err != nil {
			return domain.Service{}, err
		}
		if len(days.Romania) == 0 || len(days.Italy) == 0 {
			return domain.Service{}, domain.NewValidationError(
				"availability days for Romania and Italy are required as arrays")
		}
		if err := setJSONColumn(&service.Availability, days); err != nil {
			return domain.Service{}, err
		}
	}

	if err := validateCategoryFields(&service); err != nil {
		return domain.Service{}, err
	}

	if err := s.serviceRepo.Update(ctx, &service); err != nil {
		return domain.Service{}, err
	}

	return service, nil
}

// DeleteService removes the offering and cascades to every order that
// references it.
func (s *CatalogService) DeleteService(ctx context.Context, serviceID, actorID uint, role string) error {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}

	if service.TransporterID != actorID && !strings.EqualFold(role, domain.RoleAdmin) {
		return domain.ErrUnauthorized
	}

	// Orders go first so a failure between the two deletes cannot
	// leave orders pointing at a service that no longer exists.
	if err := s.ordersRepo.DeleteByService(ctx, service.ID); err != nil {
		logger.Error("Failed to cascade order deletion", err, "service_id", service.ID)
		return err
	}

	return s.serviceRepo.Delete(ctx, service.ID)
}
