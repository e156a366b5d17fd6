package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/business/requests"
	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type RequestsService interface {
	CreateRequest(ctx context.Context, userID uint, in requests.CreateRequestInput) (domain.TransportRequest, error)
	GetAllRequests(ctx context.Context) ([]domain.TransportRequest, error)
	GetUserRequests(ctx context.Context, userID uint) ([]domain.TransportRequest, error)
	UpdateRequest(ctx context.Context, requestID, userID uint, in requests.CreateRequestInput) (domain.TransportRequest, error)
	DeleteRequest(ctx context.Context, requestID, userID uint) error
	AcceptRequest(ctx context.Context, requestID, transporterID uint) (domain.RequestBooking, error)
	AcceptedRequests(ctx context.Context, transporterID uint) ([]domain.TransportRequest, error)
	MarkFulfilled(ctx context.Context, requestID uint) (domain.TransportRequest, error)
}

type RequestsHandler struct {
	requestsService RequestsService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewRequestsHandler(requestsService RequestsService) *RequestsHandler {
	return &RequestsHandler{
		requestsService: requestsService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type TransportRequestInput struct {
	Departure   string    `json:"departure" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Passengers  int       `json:"passengers" validate:"required,min=1"`
	Category    string    `json:"category" validate:"required"`
	Notes       string    `json:"notes,omitempty"`
}

type TransportRequestUpdateInput struct {
	Departure   string    `json:"departure,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Date        time.Time `json:"date,omitempty"`
	Passengers  int       `json:"passengers,omitempty"`
	Category    string    `json:"category,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

func requestIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

func (h *RequestsHandler) CreateRequest(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TransportRequestInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	request, err := h.requestsService.CreateRequest(ctx, userID, requests.CreateRequestInput{
		Departure:   req.Departure,
		Destination: req.Destination,
		Date:        req.Date,
		Passengers:  req.Passengers,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		logger.Error("Failed to create transport request", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Transport request created successfully",
		"request": request,
	})
}

func (h *RequestsHandler) GetAllRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	allRequests, err := h.requestsService.GetAllRequests(ctx)
	if err != nil {
		logger.Error("Failed to get transport requests", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Requests retrieved successfully",
		"requests": allRequests,
	})
}

func (h *RequestsHandler) MyRequests(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	myRequests, err := h.requestsService.GetUserRequests(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Requests retrieved successfully",
		"requests": myRequests,
	})
}

func (h *RequestsHandler) UpdateRequest(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	requestID, err := requestIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request ID"})
	}

	var req TransportRequestUpdateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	request, err := h.requestsService.UpdateRequest(ctx, requestID, userID, requests.CreateRequestInput{
		Departure:   req.Departure,
		Destination: req.Destination,
		Date:        req.Date,
		Passengers:  req.Passengers,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Request updated successfully",
		"request": request,
	})
}

func (h *RequestsHandler) DeleteRequest(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	requestID, err := requestIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.requestsService.DeleteRequest(ctx, requestID, userID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Request deleted successfully",
	})
}

// AcceptRequest lets a transporter claim a pending request.
func (h *RequestsHandler) AcceptRequest(c echo.Context) error {
	transporterID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	requestID, err := requestIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	booking, err := h.requestsService.AcceptRequest(ctx, requestID, transporterID)
	if err != nil {
		logger.Error("Failed to accept transport request", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Request accepted successfully",
		"booking": booking,
	})
}

// AcceptedRequests lists the requests the transporter has claimed.
func (h *RequestsHandler) AcceptedRequests(c echo.Context) error {
	transporterID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	accepted, err := h.requestsService.AcceptedRequests(ctx, transporterID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Accepted requests retrieved successfully",
		"requests": accepted,
	})
}

func (h *RequestsHandler) MarkFulfilled(c echo.Context) error {
	requestID, err := requestIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	request, err := h.requestsService.MarkFulfilled(ctx, requestID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Request marked as fulfilled",
		"request": request,
	})
}
