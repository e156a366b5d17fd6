package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/business/orders"
	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, serviceID, customerID uint, in orders.CreateOrderInput) (domain.OrderDetail, error)
		GetAllOrders(ctx context.Context) ([]domain.OrderDetail, error)
		MyOrders(ctx context.Context, customerID uint) ([]domain.OrderDetail, error)
		UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) (domain.Order, error)
		UpdateOrder(ctx context.Context, orderID uint, totalPrice float64, notes, paymentStatus string) (domain.Order, error)
		DeleteOrder(ctx context.Context, orderID uint, role string) (string, error)
	}

	OrdersInput struct {
		SeatsBooked         int     `json:"seats_booked,omitempty"`
		LuggageQuantity     int     `json:"luggage_quantity,omitempty"`
		Quantity            int     `json:"quantity,omitempty"`
		Weight              float64 `json:"weight,omitempty"`
		VehicleDetails      string  `json:"vehicle_details,omitempty"`
		TowingRequirements  string  `json:"towing_requirements,omitempty"`
		VehicleType         string  `json:"vehicle_type,omitempty"`
		TrailerRequirements string  `json:"trailer_requirements,omitempty"`
		ItemCount           int     `json:"item_count,omitempty"`
		Dimensions          string  `json:"dimensions,omitempty"`
		FragileItems        bool    `json:"fragile_items,omitempty"`
		AnimalCount         int     `json:"animal_count,omitempty"`
		AnimalType          string  `json:"animal_type,omitempty"`
		SpecialNeeds        string  `json:"special_needs,omitempty"`
		CageRequired        bool    `json:"cage_required,omitempty"`
		TotalPrice          float64 `json:"total_price" validate:"required,gt=0"`
		Notes               string  `json:"notes,omitempty"`
	}

	OrderStatusInput struct {
		Status string `json:"status" validate:"required"`
	}

	OrderUpdateInput struct {
		TotalPrice    float64 `json:"total_price,omitempty"`
		Notes         string  `json:"notes,omitempty"`
		PaymentStatus string  `json:"payment_status,omitempty"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	serviceID, err := strconv.ParseUint(c.Param("serviceId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid service ID"})
	}

	var request OrdersInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	detail, err := h.ordersService.CreateOrder(ctx, uint(serviceID), customerID, orders.CreateOrderInput{
		SeatsBooked:         request.SeatsBooked,
		LuggageQuantity:     request.LuggageQuantity,
		Quantity:            request.Quantity,
		Weight:              request.Weight,
		VehicleDetails:      request.VehicleDetails,
		TowingRequirements:  request.TowingRequirements,
		VehicleType:         request.VehicleType,
		TrailerRequirements: request.TrailerRequirements,
		ItemCount:           request.ItemCount,
		Dimensions:          request.Dimensions,
		FragileItems:        request.FragileItems,
		AnimalCount:         request.AnimalCount,
		AnimalType:          request.AnimalType,
		SpecialNeeds:        request.SpecialNeeds,
		CageRequired:        request.CageRequired,
		TotalPrice:          request.TotalPrice,
		Notes:               request.Notes,
	})
	if err != nil {
		logger.Error("Failed to create order", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(detail))
}

// GetAllOrders is the admin listing across every customer.
func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	allOrders, err := h.ordersService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(allOrders))
}

func (h *OrdersHandler) MyOrders(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	myOrders, err := h.ordersService.MyOrders(ctx, customerID)
	if err != nil {
		logger.Error("Failed to get customer orders", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(myOrders))
}

func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	var request OrderStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateOrderStatus(ctx, uint(orderID), request.Status)
	if err != nil {
		logger.Error("Failed to update order status", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UpdateOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	var request OrderUpdateInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateOrder(ctx, uint(orderID), request.TotalPrice, request.Notes, request.PaymentStatus)
	if err != nil {
		logger.Error("Failed to update order", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	role, _ := c.Get("role").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	message, err := h.ordersService.DeleteOrder(ctx, uint(orderID), role)
	if err != nil {
		logger.Error("Failed to delete order", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(message))
}
