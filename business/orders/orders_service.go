package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
	"github.com/shakeel7521951/bursa-backend/pkg/metrics"

	"github.com/google/uuid"
)

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetDeletedBy(ctx context.Context, id uint, deletedBy string) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id uint) error
}

type ServiceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Service, error)
	DecrementSeats(ctx context.Context, id uint, seats int) error
	DecrementParcelCapacity(ctx context.Context, id uint, weight float64) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

func validationError(format string, args ...any) error {
	return domain.NewValidationError(format, args...)
}

// CreateOrderInput carries every category field a client may submit; the
// category rule decides which subset is read.
type CreateOrderInput struct {
	SeatsBooked         int
	LuggageQuantity     int
	Quantity            int
	Weight              float64
	VehicleDetails      string
	TowingRequirements  string
	VehicleType         string
	TrailerRequirements string
	ItemCount           int
	Dimensions          string
	FragileItems        bool
	AnimalCount         int
	AnimalType          string
	SpecialNeeds        string
	CageRequired        bool
	TotalPrice          float64
	Notes               string
}

// categoryRule bundles the per-category pieces of the order workflow:
// input validation, building the detail payload, and the optional capacity
// claim on the service.
type categoryRule struct {
	validate func(in CreateOrderInput, svc domain.Service) error
	details  func(in CreateOrderInput) any
	claim    func(ctx context.Context, repo ServiceRepository, svc domain.Service, in CreateOrderInput) error
}

var categoryRules = map[string]categoryRule{
	domain.CategoryPassenger: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.SeatsBooked < 1 {
				return validationError("seats booked must be at least 1")
			}
			if svc.AvailableSeats < in.SeatsBooked {
				return validationError("not enough available seats")
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.PassengerOrder{SeatsBooked: in.SeatsBooked, LuggageQuantity: in.LuggageQuantity}
		},
		claim: func(ctx context.Context, repo ServiceRepository, svc domain.Service, in CreateOrderInput) error {
			if err := repo.DecrementSeats(ctx, svc.ID, in.SeatsBooked); err != nil {
				if errors.Is(err, domain.ErrInsufficientCapacity) {
					return validationError("not enough available seats")
				}
				return err
			}
			return nil
		},
	},
	domain.CategoryParcel: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.Quantity < 1 {
				return validationError("parcel quantity must be at least 1")
			}
			if in.Weight <= 0 {
				return validationError("parcel weight must be greater than zero")
			}
			if in.Weight > svc.ParcelLoadCapacity {
				return validationError("weight exceeds maximum capacity of %vkg", svc.ParcelLoadCapacity)
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.ParcelOrder{Quantity: in.Quantity, Weight: in.Weight}
		},
		claim: func(ctx context.Context, repo ServiceRepository, svc domain.Service, in CreateOrderInput) error {
			if err := repo.DecrementParcelCapacity(ctx, svc.ID, in.Weight); err != nil {
				if errors.Is(err, domain.ErrInsufficientCapacity) {
					return validationError("weight exceeds maximum capacity of %vkg", svc.ParcelLoadCapacity)
				}
				return err
			}
			return nil
		},
	},
	domain.CategoryCarTowing: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.VehicleDetails == "" {
				return validationError("vehicle details are required")
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.CarTowingOrder{VehicleDetails: in.VehicleDetails, TowingRequirements: in.TowingRequirements}
		},
	},
	domain.CategoryVehicleTrailer: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.VehicleType == "" {
				return validationError("vehicle type is required")
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.TrailerOrder{VehicleType: in.VehicleType, TrailerRequirements: in.TrailerRequirements}
		},
	},
	domain.CategoryFurniture: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.ItemCount < 1 {
				return validationError("item count must be at least 1")
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.FurnitureOrder{ItemCount: in.ItemCount, Dimensions: in.Dimensions, FragileItems: in.FragileItems}
		},
	},
	domain.CategoryAnimal: {
		validate: func(in CreateOrderInput, svc domain.Service) error {
			if in.AnimalCount < 1 {
				return validationError("animal count must be at least 1")
			}
			if in.AnimalType == "" {
				return validationError("animal type is required")
			}
			return nil
		},
		details: func(in CreateOrderInput) any {
			return domain.AnimalOrder{
				AnimalCount:  in.AnimalCount,
				AnimalType:   in.AnimalType,
				SpecialNeeds: in.SpecialNeeds,
				CageRequired: in.CageRequired,
			}
		},
	},
}

type OrdersService struct {
	orderRepo   OrdersRepository
	serviceRepo ServiceRepository
	userRepo    UserRepository
	notifRepo   NotificationRepository
	adminEmail  string
}

func NewOrdersService(
	orderRepo OrdersRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	notifRepo NotificationRepository,
	adminEmail string,
) *OrdersService {
	return &OrdersService{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		adminEmail:  adminEmail,
	}
}

// CreateOrder runs the order workflow: category validation, capacity claim,
// persistence, and the three notification emails. The capacity claim is a
// conditional decrement on the service row, so concurrent orders cannot
// overbook against a stale read.
func (s *OrdersService) CreateOrder(ctx context.Context, serviceID, customerID uint, in CreateOrderInput) (domain.OrderDetail, error) {
	start := time.Now()
	defer func() {
		metrics.OrderCreateLatency.Observe(time.Since(start).Seconds())
	}()

	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	rule, ok := categoryRules[service.ServiceCategory]
	if !ok {
		return domain.OrderDetail{}, validationError("unsupported service category")
	}

	if err := rule.validate(in, service); err != nil {
		metrics.OrderValidationFailures.WithLabelValues(service.ServiceCategory).Inc()
		return domain.OrderDetail{}, err
	}

	if rule.claim != nil {
		if err := rule.claim(ctx, s.serviceRepo, service, in); err != nil {
			metrics.OrderValidationFailures.WithLabelValues(service.ServiceCategory).Inc()
			return domain.OrderDetail{}, err
		}
	}

	order := domain.Order{
		Reference:       uuid.NewString(),
		CustomerID:      customerID,
		ServiceID:       service.ID,
		ServiceCategory: service.ServiceCategory,
		TotalPrice:      in.TotalPrice,
		Notes:           in.Notes,
		OrderStatus:     domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}

	if err := order.EncodeDetails(rule.details(in)); err != nil {
		return domain.OrderDetail{}, err
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		logger.Error("Failed to persist order", err)
		return domain.OrderDetail{}, err
	}

	metrics.OrdersCreated.WithLabelValues(service.ServiceCategory).Inc()

	detail, err := s.orderDetail(ctx, order.ID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	// The order is committed; notification failures are logged, not surfaced.
	s.sendOrderNotifications(detail, service)

	return detail, nil
}

func (s *OrdersService) sendOrderNotifications(detail domain.OrderDetail, service domain.Service) {
	customer := detail.Customer

	subject, body := customerConfirmationEmail(customer.Name, detail)
	if err := s.notifRepo.SendEmail(customer.Name, customer.Email, subject, body); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Warn("Failed to send customer order confirmation", err)
	}

	subject, body = adminNotificationEmail(customer.Name, detail)
	if err := s.notifRepo.SendEmail("Admin", s.adminEmail, subject, body); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Warn("Failed to send admin order notification", err)
	}

	transporter, err := s.userRepo.FindByID(context.Background(), service.TransporterID)
	if err != nil || transporter.Email == "" {
		logger.Warn("Transporter email not resolvable, skipping notification", "service_id", service.ID)
		return
	}

	subject, body = transporterNotificationEmail(customer, detail)
	if err := s.notifRepo.SendEmail(transporter.Name, transporter.Email, subject, body); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Warn("Failed to send transporter order notification", err)
	}
}

func (s *OrdersService) orderDetail(ctx context.Context, orderID uint) (domain.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	detail := domain.OrderDetail{Order: order}

	if service, err := s.serviceRepo.FindByID(ctx, order.ServiceID); err == nil {
		detail.Service = service.Summary()
	}

	if customer, err := s.userRepo.FindByID(ctx, order.CustomerID); err == nil {
		detail.Customer = customer.Summary()
	}

	return detail, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.OrderDetail, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, orders), nil
}

func (s *OrdersService) MyOrders(ctx context.Context, customerID uint) ([]domain.OrderDetail, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, orders), nil
}

func (s *OrdersService) enrich(ctx context.Context, orders []domain.Order) []domain.OrderDetail {
	details := make([]domain.OrderDetail, 0, len(orders))

	for _, order := range orders {
		detail := domain.OrderDetail{Order: order}

		if service, err := s.serviceRepo.FindByID(ctx, order.ServiceID); err == nil {
			detail.Service = service.Summary()
		}
		if customer, err := s.userRepo.FindByID(ctx, order.CustomerID); err == nil {
			detail.Customer = customer.Summary()
		}

		details = append(details, detail)
	}

	return details
}

// UpdateOrderStatus validates the new status against the allowed set,
// persists it, then emails the customer. The email runs after the write so a
// mail outage cannot block the status change.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) (domain.Order, error) {
	status := strings.ToLower(strings.TrimSpace(newStatus))
	if !domain.ValidOrderStatuses[status] {
		return domain.Order{}, validationError(
			"invalid status. allowed statuses: pending, confirmed, completed, cancelled, rejected")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return domain.Order{}, err
	}
	order.OrderStatus = status

	if customer, err := s.userRepo.FindByID(ctx, order.CustomerID); err == nil && customer.Email != "" {
		subject, body := statusUpdateEmail(customer.Name, status)
		if err := s.notifRepo.SendEmail(customer.Name, customer.Email, subject, body); err != nil {
			metrics.NotificationFailures.Inc()
			logger.Warn("Failed to send order status email", err)
		}
	}

	return order, nil
}

// UpdateOrder is the admin-side edit of price, notes, and payment fields.
func (s *OrdersService) UpdateOrder(ctx context.Context, orderID uint, totalPrice float64, notes, paymentStatus string) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if totalPrice > 0 {
		order.TotalPrice = totalPrice
	}
	if notes != "" {
		order.Notes = notes
	}
	if paymentStatus != "" {
		ps := strings.ToLower(paymentStatus)
		if ps != domain.PaymentStatusUnpaid && ps != domain.PaymentStatusPaid {
			return domain.Order{}, validationError("invalid payment status")
		}
		order.PaymentStatus = ps
	}

	if err := s.orderRepo.Update(ctx, &order); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

type deleteAction int

const (
	actionForbid deleteAction = iota
	actionCancel
	actionHardDelete
	actionSoftDelete
)

type deleteKey struct {
	role    string
	pending bool
}

// deletePolicy encodes who may do what to an order in a given state.
var deletePolicy = map[deleteKey]deleteAction{
	{domain.RoleAdmin, true}:     actionCancel,
	{domain.RoleAdmin, false}:    actionHardDelete,
	{domain.RoleCustomer, true}:  actionCancel,
	{domain.RoleCustomer, false}: actionSoftDelete,
}

// DeleteOrder applies the role/status policy table: admins cancel pending
// orders and hard-delete the rest; customers cancel pending orders and
// soft-delete the rest via the deleted_by marker.
func (s *OrdersService) DeleteOrder(ctx context.Context, orderID uint, role string) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	pending := order.OrderStatus == domain.OrderStatusPending
	action := deletePolicy[deleteKey{role: strings.ToLower(role), pending: pending}]

	switch action {
	case actionCancel:
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled); err != nil {
			return "", err
		}
		return "order cancelled successfully", nil

	case actionHardDelete:
		if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
			return "", err
		}
		return "order deleted by admin", nil

	case actionSoftDelete:
		if err := s.orderRepo.SetDeletedBy(ctx, order.ID, domain.DeletedByCustomer); err != nil {
			return "", err
		}
		return "order deleted successfully", nil

	default:
		return "", domain.ErrUnauthorized
	}
}
