package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Transport categories a service can be listed under.
const (
	CategoryPassenger      = "passenger"
	CategoryParcel         = "parcel"
	CategoryCarTowing      = "car_towing"
	CategoryVehicleTrailer = "vehicle_trailer"
	CategoryFurniture      = "furniture"
	CategoryAnimal         = "animal"
)

var ValidServiceCategories = map[string]bool{
	CategoryPassenger:      true,
	CategoryParcel:         true,
	CategoryCarTowing:      true,
	CategoryVehicleTrailer: true,
	CategoryFurniture:      true,
	CategoryAnimal:         true,
}

// AvailabilityDays holds the weekdays a transporter runs the route, per
// departure country.
type AvailabilityDays struct {
	Romania []string `json:"romania"`
	Italy   []string `json:"italy"`
}

// Service is a transporter's published offering. Seats and parcel capacity
// only apply to their categories; the remaining type fields describe the
// other categories and stay empty otherwise.
type Service struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	TransporterID   uint           `gorm:"column:transporter_id;not null;index" json:"transporter_id"`
	ServiceName     string         `gorm:"column:service_name;not null" json:"service_name"`
	ServiceCategory string         `gorm:"column:service_category;not null;index" json:"service_category"`
	DestinationFrom string         `gorm:"column:destination_from;not null;index:idx_services_route" json:"destination_from"`
	DestinationTo   string         `gorm:"column:destination_to;not null;index:idx_services_route" json:"destination_to"`
	RouteCities     datatypes.JSON `gorm:"column:route_cities;type:jsonb" json:"route_cities"`
	TravelDate      time.Time      `gorm:"column:travel_date;index" json:"travel_date"`
	DepartureTime   string         `gorm:"column:departure_time" json:"departure_time"`
	ArrivalDate     time.Time      `gorm:"column:arrival_date" json:"arrival_date"`
	Availability    datatypes.JSON `gorm:"column:availability_days;type:jsonb" json:"availability_days"`

	// passenger
	TotalSeats     int `gorm:"column:total_seats;default:0" json:"total_seats"`
	AvailableSeats int `gorm:"column:available_seats;default:0" json:"available_seats"`
	// parcel
	ParcelLoadCapacity float64 `gorm:"column:parcel_load_capacity;default:0" json:"parcel_load_capacity"`
	// car_towing
	VehicleType string `gorm:"column:vehicle_type" json:"vehicle_type,omitempty"`
	// vehicle_trailer
	TrailerType string `gorm:"column:trailer_type" json:"trailer_type,omitempty"`
	// furniture
	FurnitureDetails string `gorm:"column:furniture_details" json:"furniture_details,omitempty"`
	// animal
	AnimalType string `gorm:"column:animal_type" json:"animal_type,omitempty"`

	PickupOption string    `gorm:"column:pickup_option" json:"pickup_option"`
	Price        float64   `gorm:"column:price;not null" json:"price"`
	ServicePic   string    `gorm:"column:service_pic;not null" json:"service_pic"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

var ValidVehicleTypes = map[string]bool{"sedan": true, "suv": true, "truck": true, "van": true}

var ValidTrailerTypes = map[string]bool{"flatbed": true, "enclosed": true, "lowboy": true}

var ValidAnimalTypes = map[string]bool{"dog": true, "cat": true, "bird": true, "livestock": true, "other": true}

// ServiceSummary is the slice of a service echoed back on order responses.
type ServiceSummary struct {
	ID              uint      `json:"id"`
	ServiceName     string    `json:"service_name"`
	ServiceCategory string    `json:"service_category"`
	DestinationFrom string    `json:"destination_from"`
	DestinationTo   string    `json:"destination_to"`
	TravelDate      time.Time `json:"travel_date"`
	DepartureTime   string    `json:"departure_time"`
	PickupOption    string    `json:"pickup_option"`
	Price           float64   `json:"price"`
	ServicePic      string    `json:"service_pic"`
}

func (s Service) Summary() ServiceSummary {
	return ServiceSummary{
		ID:              s.ID,
		ServiceName:     s.ServiceName,
		ServiceCategory: s.ServiceCategory,
		DestinationFrom: s.DestinationFrom,
		DestinationTo:   s.DestinationTo,
		TravelDate:      s.TravelDate,
		DepartureTime:   s.DepartureTime,
		PickupOption:    s.PickupOption,
		Price:           s.Price,
		ServicePic:      s.ServicePic,
	}
}
