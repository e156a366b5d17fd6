package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/business/catalog"
	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type CatalogService interface {
	CreateService(ctx context.Context, transporterID uint, in catalog.CreateServiceInput) (domain.Service, error)
	GetAllServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id uint) (domain.Service, error)
	GetMyServices(ctx context.Context, transporterID uint, role string) ([]domain.Service, error)
	UpdateService(ctx context.Context, serviceID, actorID uint, role string, in catalog.UpdateServiceInput) (domain.Service, error)
	DeleteService(ctx context.Context, serviceID, actorID uint, role string) error
}

type ServiceHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewServiceHandler(catalogService CatalogService) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateServiceRequest struct {
	ServiceName        string          `json:"service_name" validate:"required"`
	ServiceCategory    string          `json:"service_category" validate:"required"`
	DestinationFrom    string          `json:"destination_from" validate:"required"`
	DestinationTo      string          `json:"destination_to" validate:"required"`
	RouteCities        json.RawMessage `json:"route_cities" validate:"required"`
	TravelDate         time.Time       `json:"travel_date" validate:"required"`
	DepartureTime      string          `json:"departure_time" validate:"required"`
	ArrivalDate        time.Time       `json:"arrival_date" validate:"required"`
	Availability       json.RawMessage `json:"availability" validate:"required"`
	TotalSeats         int             `json:"total_seats,omitempty"`
	AvailableSeats     int             `json:"available_seats,omitempty"`
	ParcelLoadCapacity float64         `json:"parcel_load_capacity,omitempty"`
	VehicleType        string          `json:"vehicle_type,omitempty"`
	TrailerType        string          `json:"trailer_type,omitempty"`
	FurnitureDetails   string          `json:"furniture_details,omitempty"`
	AnimalType         string          `json:"animal_type,omitempty"`
	PickupOption       string          `json:"pickup_option" validate:"required"`
	Price              float64         `json:"price" validate:"required"`
	ServicePic         string          `json:"service_pic" validate:"required"`
}

type UpdateServiceRequest struct {
	ServiceName        string          `json:"service_name,omitempty"`
	ServiceCategory    string          `json:"service_category,omitempty"`
	DestinationFrom    string          `json:"destination_from,omitempty"`
	DestinationTo      string          `json:"destination_to,omitempty"`
	RouteCities        json.RawMessage `json:"route_cities,omitempty"`
	TravelDate         time.Time       `json:"travel_date,omitempty"`
	DepartureTime      string          `json:"departure_time,omitempty"`
	ArrivalDate        time.Time       `json:"arrival_date,omitempty"`
	Availability       json.RawMessage `json:"availability,omitempty"`
	TotalSeats         *int            `json:"total_seats,omitempty"`
	AvailableSeats     *int            `json:"available_seats,omitempty"`
	ParcelLoadCapacity *float64        `json:"parcel_load_capacity,omitempty"`
	VehicleType        string          `json:"vehicle_type,omitempty"`
	TrailerType        string          `json:"trailer_type,omitempty"`
	FurnitureDetails   string          `json:"furniture_details,omitempty"`
	AnimalType         string          `json:"animal_type,omitempty"`
	PickupOption       string          `json:"pickup_option,omitempty"`
	Price              *float64        `json:"price,omitempty"`
	ServicePic         string          `json:"service_pic,omitempty"`
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	transporterID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate service create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.CreateService(ctx, transporterID, catalog.CreateServiceInput{
		ServiceName:        req.ServiceName,
		ServiceCategory:    req.ServiceCategory,
		DestinationFrom:    req.DestinationFrom,
		DestinationTo:      req.DestinationTo,
		RouteCities:        req.RouteCities,
		TravelDate:         req.TravelDate,
		DepartureTime:      req.DepartureTime,
		ArrivalDate:        req.ArrivalDate,
		Availability:       req.Availability,
		TotalSeats:         req.TotalSeats,
		AvailableSeats:     req.AvailableSeats,
		ParcelLoadCapacity: req.ParcelLoadCapacity,
		VehicleType:        req.VehicleType,
		TrailerType:        req.TrailerType,
		FurnitureDetails:   req.FurnitureDetails,
		AnimalType:         req.AnimalType,
		PickupOption:       req.PickupOption,
		Price:              req.Price,
		ServicePic:         req.ServicePic,
	})
	if err != nil {
		logger.Error("Failed to create service", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Service created successfully",
		"service": service,
	})
}

func (h *ServiceHandler) GetAllServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.GetAllServices(ctx)
	if err != nil {
		logger.Error("Failed to get all services", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Services retrieved successfully",
		"services": services,
	})
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	var serviceID uint
	if _, err := fmt.Sscan(c.Param("id"), &serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.GetService(ctx, serviceID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Service retrieved successfully",
		"service": service,
	})
}

// GetMyServices lists the offerings of the logged-in transporter.
func (h *ServiceHandler) GetMyServices(c echo.Context) error {
	transporterID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.GetMyServices(ctx, transporterID, role)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Services retrieved successfully",
		"services": services,
	})
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	actorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	var serviceID uint
	if _, err := fmt.Sscan(c.Param("id"), &serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service ID"})
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.UpdateService(ctx, serviceID, actorID, role, catalog.UpdateServiceInput{
		ServiceName:        req.ServiceName,
		ServiceCategory:    req.ServiceCategory,
		DestinationFrom:    req.DestinationFrom,
		DestinationTo:      req.DestinationTo,
		RouteCities:        req.RouteCities,
		TravelDate:         req.TravelDate,
		DepartureTime:      req.DepartureTime,
		ArrivalDate:        req.ArrivalDate,
		Availability:       req.Availability,
		TotalSeats:         req.TotalSeats,
		AvailableSeats:     req.AvailableSeats,
		ParcelLoadCapacity: req.ParcelLoadCapacity,
		VehicleType:        req.VehicleType,
		TrailerType:        req.TrailerType,
		FurnitureDetails:   req.FurnitureDetails,
		AnimalType:         req.AnimalType,
		PickupOption:       req.PickupOption,
		Price:              req.Price,
		ServicePic:         req.ServicePic,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Service updated successfully",
		"service": service,
	})
}

// DeleteService removes an offering along with its orders.
func (h *ServiceHandler) DeleteService(c echo.Context) error {
	actorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	var serviceID uint
	if _, err := fmt.Sscan(c.Param("id"), &serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteService(ctx, serviceID, actorID, role); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Service and its orders deleted successfully",
	})
}
