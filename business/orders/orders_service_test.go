package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shakeel7521951/bursa-backend/domain"
)

type fakeOrdersRepo struct {
	orders map[uint]*domain.Order
	nextID uint

	statusUpdates map[uint]string
	deletedBy     map[uint]string
	hardDeleted   []uint
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		orders:        make(map[uint]*domain.Order),
		nextID:        1,
		statusUpdates: make(map[uint]string),
		deletedBy:     make(map[uint]string),
	}
}

func (f *fakeOrdersRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrdersRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return *order, nil
}

func (f *fakeOrdersRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindByCustomer(_ context.Context, customerID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if order.CustomerID == customerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	order, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	order.OrderStatus = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeOrdersRepo) SetDeletedBy(_ context.Context, id uint, deletedBy string) error {
	order, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	order.DeletedBy = deletedBy
	f.deletedBy[id] = deletedBy
	return nil
}

func (f *fakeOrdersRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return errors.New("order not found")
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrdersRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.orders[id]; !ok {
		return errors.New("order not found")
	}
	delete(f.orders, id)
	f.hardDeleted = append(f.hardDeleted, id)
	return nil
}

func (f *fakeOrdersRepo) DeleteByService(_ context.Context, serviceID uint) error {
	for id, order := range f.orders {
		if order.ServiceID == serviceID {
			delete(f.orders, id)
		}
	}
	return nil
}

type fakeServiceRepo struct {
	services map[uint]*domain.Service
}

func newFakeServiceRepo(services ...domain.Service) *fakeServiceRepo {
	f := &fakeServiceRepo{services: make(map[uint]*domain.Service)}
	for i := range services {
		copied := services[i]
		f.services[copied.ID] = &copied
	}
	return f
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uint) (domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return domain.Service{}, errors.New("service not found")
	}
	return *svc, nil
}

func (f *fakeServiceRepo) DecrementSeats(_ context.Context, id uint, seats int) error {
	svc, ok := f.services[id]
	if !ok || svc.AvailableSeats < seats {
		return domain.ErrInsufficientCapacity
	}
	svc.AvailableSeats -= seats
	return nil
}

func (f *fakeServiceRepo) DecrementParcelCapacity(_ context.Context, id uint, weight float64) error {
	svc, ok := f.services[id]
	if !ok || svc.ParcelLoadCapacity < weight {
		return domain.ErrInsufficientCapacity
	}
	svc.ParcelLoadCapacity -= weight
	return nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeNotifier struct {
	sent []sentMail
	fail bool
}

func (f *fakeNotifier) SendEmail(_, toEmail, subject, _ string) error {
	if f.fail {
		return errors.New("mailer down")
	}
	f.sent = append(f.sent, sentMail{to: toEmail, subject: subject})
	return nil
}

func newTestService(t *testing.T, services ...domain.Service) (*OrdersService, *fakeOrdersRepo, *fakeServiceRepo, *fakeNotifier) {
	t.Helper()

	ordersRepo := newFakeOrdersRepo()
	serviceRepo := newFakeServiceRepo(services...)
	userRepo := &fakeUserRepo{users: map[uint]domain.User{
		1: {ID: 1, Name: "Ion Popescu", Email: "ion@example.com", Role: domain.RoleCustomer},
		2: {ID: 2, Name: "Maria Trans", Email: "maria@example.com", Role: domain.RoleTransporter},
	}}
	notifier := &fakeNotifier{}

	svc := NewOrdersService(ordersRepo, serviceRepo, userRepo, notifier, "admin@example.com")
	return svc, ordersRepo, serviceRepo, notifier
}

func passengerService() domain.Service {
	return domain.Service{
		ID:              10,
		TransporterID:   2,
		ServiceName:     "Bucuresti - Roma",
		ServiceCategory: domain.CategoryPassenger,
		TotalSeats:      8,
		AvailableSeats:  8,
		Price:           120,
	}
}

func parcelService() domain.Service {
	return domain.Service{
		ID:                 11,
		TransporterID:      2,
		ServiceName:        "Colete Iasi - Milano",
		ServiceCategory:    domain.CategoryParcel,
		ParcelLoadCapacity: 100,
		Price:              3,
	}
}

func TestCreateOrderPassenger(t *testing.T) {
	svc, ordersRepo, serviceRepo, notifier := newTestService(t, passengerService())

	detail, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked:     3,
		LuggageQuantity: 2,
		TotalPrice:      360,
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if detail.Order.OrderStatus != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %q", detail.Order.OrderStatus)
	}
	if detail.Order.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("expected unpaid, got %q", detail.Order.PaymentStatus)
	}
	if detail.Order.Reference == "" {
		t.Error("expected a generated order reference")
	}

	var payload domain.PassengerOrder
	order := detail.Order
	if err := order.DecodeDetails(&payload); err != nil {
		t.Fatalf("DecodeDetails: %v", err)
	}
	if payload.SeatsBooked != 3 || payload.LuggageQuantity != 2 {
		t.Errorf("unexpected payload: %+v", payload)
	}

	if got := serviceRepo.services[10].AvailableSeats; got != 5 {
		t.Errorf("expected 5 seats left, got %d", got)
	}
	if len(ordersRepo.orders) != 1 {
		t.Errorf("expected 1 persisted order, got %d", len(ordersRepo.orders))
	}

	// customer, admin, transporter
	if len(notifier.sent) != 3 {
		t.Errorf("expected 3 notification emails, got %d", len(notifier.sent))
	}
}

func TestCreateOrderPassengerInsufficientSeats(t *testing.T) {
	service := passengerService()
	service.AvailableSeats = 2
	svc, ordersRepo, serviceRepo, _ := newTestService(t, service)

	_, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked: 3,
		TotalPrice:  360,
	})
	if err == nil {
		t.Fatal("expected error for overbooked seats")
	}

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected validation error, got %T", err)
	}

	if len(ordersRepo.orders) != 0 {
		t.Error("no order should be persisted when validation fails")
	}
	if got := serviceRepo.services[10].AvailableSeats; got != 2 {
		t.Errorf("capacity must be untouched, got %d", got)
	}
}

func TestCreateOrderParcelOverweight(t *testing.T) {
	svc, ordersRepo, _, _ := newTestService(t, parcelService())

	_, err := svc.CreateOrder(context.Background(), 11, 1, CreateOrderInput{
		Quantity:   2,
		Weight:     150,
		TotalPrice: 450,
	})
	if err == nil {
		t.Fatal("expected error for overweight parcel")
	}
	if len(ordersRepo.orders) != 0 {
		t.Error("no order should be persisted when validation fails")
	}
}

func TestCreateOrderParcelRejectsNonPositiveWeight(t *testing.T) {
	for _, weight := range []float64{0, -50} {
		svc, ordersRepo, serviceRepo, _ := newTestService(t, parcelService())

		_, err := svc.CreateOrder(context.Background(), 11, 1, CreateOrderInput{
			Quantity:   1,
			Weight:     weight,
			TotalPrice: 120,
		})
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("weight %v: expected validation error, got %v", weight, err)
		}
		if len(ordersRepo.orders) != 0 {
			t.Errorf("weight %v: no order should be persisted", weight)
		}
		if got := serviceRepo.services[11].ParcelLoadCapacity; got != 100 {
			t.Errorf("weight %v: capacity changed to %v", weight, got)
		}
	}
}

func TestCreateOrderParcelClaimsCapacity(t *testing.T) {
	svc, _, serviceRepo, _ := newTestService(t, parcelService())

	_, err := svc.CreateOrder(context.Background(), 11, 1, CreateOrderInput{
		Quantity:   1,
		Weight:     40,
		TotalPrice: 120,
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if got := serviceRepo.services[11].ParcelLoadCapacity; got != 60 {
		t.Errorf("expected 60kg capacity left, got %v", got)
	}
}

func TestCreateOrderCategoryValidation(t *testing.T) {
	cases := []struct {
		name     string
		category string
		input    CreateOrderInput
	}{
		{"car towing without details", domain.CategoryCarTowing, CreateOrderInput{TotalPrice: 100}},
		{"trailer without vehicle type", domain.CategoryVehicleTrailer, CreateOrderInput{TotalPrice: 100}},
		{"furniture without items", domain.CategoryFurniture, CreateOrderInput{TotalPrice: 100}},
		{"animal without type", domain.CategoryAnimal, CreateOrderInput{AnimalCount: 1, TotalPrice: 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := domain.Service{ID: 20, TransporterID: 2, ServiceCategory: tc.category, Price: 100}
			svc, ordersRepo, _, _ := newTestService(t, service)

			_, err := svc.CreateOrder(context.Background(), 20, 1, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected validation error, got %T", err)
			}
			if len(ordersRepo.orders) != 0 {
				t.Error("no order should be persisted")
			}
		})
	}
}

func TestCreateOrderNotificationFailureDoesNotFail(t *testing.T) {
	svc, ordersRepo, _, notifier := newTestService(t, passengerService())
	notifier.fail = true

	_, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked: 1,
		TotalPrice:  120,
	})
	if err != nil {
		t.Fatalf("order creation must succeed despite mailer outage: %v", err)
	}
	if len(ordersRepo.orders) != 1 {
		t.Errorf("expected 1 persisted order, got %d", len(ordersRepo.orders))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, ordersRepo, _, notifier := newTestService(t, passengerService())

	detail, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked: 1,
		TotalPrice:  120,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	notifier.sent = nil

	order, err := svc.UpdateOrderStatus(context.Background(), detail.Order.ID, "  Confirmed ")
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if order.OrderStatus != domain.OrderStatusConfirmed {
		t.Errorf("expected confirmed, got %q", order.OrderStatus)
	}
	if ordersRepo.statusUpdates[detail.Order.ID] != domain.OrderStatusConfirmed {
		t.Error("status change was not persisted")
	}
	if len(notifier.sent) != 1 {
		t.Errorf("expected 1 status email, got %d", len(notifier.sent))
	}
}

func TestUpdateOrderStatusRejectsUnknown(t *testing.T) {
	svc, _, _, _ := newTestService(t, passengerService())

	detail, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked: 1,
		TotalPrice:  120,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), detail.Order.ID, "shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestDeleteOrderPolicy(t *testing.T) {
	cases := []struct {
		name        string
		role        string
		status      string
		wantStatus  string
		wantDeleted bool
		wantSoft    bool
		wantErr     bool
	}{
		{"admin pending cancels", domain.RoleAdmin, domain.OrderStatusPending, domain.OrderStatusCancelled, false, false, false},
		{"admin confirmed hard deletes", domain.RoleAdmin, domain.OrderStatusConfirmed, "", true, false, false},
		{"customer pending cancels", domain.RoleCustomer, domain.OrderStatusPending, domain.OrderStatusCancelled, false, false, false},
		{"customer completed soft deletes", domain.RoleCustomer, domain.OrderStatusCompleted, "", false, true, false},
		{"transporter forbidden", domain.RoleTransporter, domain.OrderStatusPending, "", false, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, ordersRepo, _, _ := newTestService(t, passengerService())

			detail, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
				SeatsBooked: 1,
				TotalPrice:  120,
			})
			if err != nil {
				t.Fatalf("CreateOrder: %v", err)
			}
			orderID := detail.Order.ID
			ordersRepo.orders[orderID].OrderStatus = tc.status

			_, err = svc.DeleteOrder(context.Background(), orderID, tc.role)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DeleteOrder: %v", err)
			}

			if tc.wantDeleted {
				if _, ok := ordersRepo.orders[orderID]; ok {
					t.Error("expected order to be hard deleted")
				}
				return
			}

			if tc.wantSoft {
				if ordersRepo.deletedBy[orderID] != domain.DeletedByCustomer {
					t.Error("expected customer soft-delete marker")
				}
				return
			}

			if ordersRepo.orders[orderID].OrderStatus != tc.wantStatus {
				t.Errorf("expected status %q, got %q", tc.wantStatus, ordersRepo.orders[orderID].OrderStatus)
			}
		})
	}
}

func TestUpdateOrderPaymentStatus(t *testing.T) {
	svc, _, _, _ := newTestService(t, passengerService())

	detail, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
		SeatsBooked: 1,
		TotalPrice:  120,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	order, err := svc.UpdateOrder(context.Background(), detail.Order.ID, 150, "urgent", "Paid")
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if order.TotalPrice != 150 || order.Notes != "urgent" || order.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("unexpected order after update: %+v", order)
	}

	if _, err := svc.UpdateOrder(context.Background(), detail.Order.ID, 0, "", "refunded"); err == nil {
		t.Fatal("expected error for invalid payment status")
	}
}

func TestMyOrdersFiltersByCustomer(t *testing.T) {
	svc, _, _, _ := newTestService(t, passengerService())

	for range 2 {
		if _, err := svc.CreateOrder(context.Background(), 10, 1, CreateOrderInput{
			SeatsBooked: 1,
			TotalPrice:  120,
		}); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	mine, err := svc.MyOrders(context.Background(), 1)
	if err != nil {
		t.Fatalf("MyOrders: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 orders, got %d", len(mine))
	}
	for _, detail := range mine {
		if detail.Customer.ID != 1 {
			t.Errorf("expected customer 1, got %d", detail.Customer.ID)
		}
		if detail.Service.ID != 10 {
			t.Errorf("expected service 10, got %d", detail.Service.ID)
		}
	}

	other, err := svc.MyOrders(context.Background(), 99)
	if err != nil {
		t.Fatalf("MyOrders: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no orders for other customer, got %d", len(other))
	}
}
