package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
)

type fakeRequestRepo struct {
	requests map[uint]*domain.TransportRequest
	nextID   uint
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uint]*domain.TransportRequest), nextID: 1}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.TransportRequest) error {
	request.ID = f.nextID
	f.nextID++
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uint) (domain.TransportRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return domain.TransportRequest{}, errors.New("request not found")
	}
	return *request, nil
}

func (f *fakeRequestRepo) FindAll(_ context.Context) ([]domain.TransportRequest, error) {
	var out []domain.TransportRequest
	for _, request := range f.requests {
		out = append(out, *request)
	}
	return out, nil
}

func (f *fakeRequestRepo) FindByUser(_ context.Context, userID uint) ([]domain.TransportRequest, error) {
	var out []domain.TransportRequest
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) FindByIDsAndStatuses(_ context.Context, ids []uint, statuses []string) ([]domain.TransportRequest, error) {
	wantID := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wantID[id] = true
	}
	wantStatus := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		wantStatus[status] = true
	}

	var out []domain.TransportRequest
	for _, request := range f.requests {
		if wantID[request.ID] && wantStatus[request.Status] {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, request *domain.TransportRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return errors.New("request not found")
	}
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	request, ok := f.requests[id]
	if !ok {
		return errors.New("request not found")
	}
	request.Status = status
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.requests[id]; !ok {
		return errors.New("request not found")
	}
	delete(f.requests, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []domain.RequestBooking
	nextID   uint
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.RequestBooking) error {
	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingRepo) FindByTransporter(_ context.Context, transporterID uint) ([]domain.RequestBooking, error) {
	var out []domain.RequestBooking
	for _, booking := range f.bookings {
		if booking.TransporterID == transporterID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ExistsForRequest(_ context.Context, requestID uint) (bool, error) {
	for _, booking := range f.bookings {
		if booking.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

func validRequest() CreateRequestInput {
	return CreateRequestInput{
		Departure:   "Bucuresti",
		Destination: "Roma",
		Date:        time.Now().Add(72 * time.Hour),
		Passengers:  2,
		Category:    "Standard",
	}
}

func newTestService() (*RequestsService, *fakeRequestRepo, *fakeBookingRepo) {
	requestRepo := newFakeRequestRepo()
	bookingRepo := &fakeBookingRepo{}
	return NewRequestsService(requestRepo, bookingRepo), requestRepo, bookingRepo
}

func TestCreateRequest(t *testing.T) {
	svc, _, _ := newTestService()

	request, err := svc.CreateRequest(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if request.Status != domain.RequestStatusPending {
		t.Errorf("expected pending, got %q", request.Status)
	}
	if request.UserID != 1 {
		t.Errorf("expected owner 1, got %d", request.UserID)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _, _ := newTestService()

	in := validRequest()
	in.Passengers = 0
	if _, err := svc.CreateRequest(context.Background(), 1, in); err == nil {
		t.Error("expected error for zero passengers")
	}

	in = validRequest()
	in.Category = "Teleport"
	if _, err := svc.CreateRequest(context.Background(), 1, in); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestUpdateRequestOwnerOnly(t *testing.T) {
	svc, _, _ := newTestService()
	created, _ := svc.CreateRequest(context.Background(), 1, validRequest())

	in := CreateRequestInput{Passengers: 4}
	if _, err := svc.UpdateRequest(context.Background(), created.ID, 2, in); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for stranger, got %v", err)
	}

	updated, err := svc.UpdateRequest(context.Background(), created.ID, 1, in)
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	if updated.Passengers != 4 {
		t.Errorf("expected 4 passengers, got %d", updated.Passengers)
	}
}

func TestUpdateRequestPendingOnly(t *testing.T) {
	svc, requestRepo, _ := newTestService()
	created, _ := svc.CreateRequest(context.Background(), 1, validRequest())
	requestRepo.requests[created.ID].Status = domain.RequestStatusAccepted

	if _, err := svc.UpdateRequest(context.Background(), created.ID, 1, CreateRequestInput{Passengers: 4}); err == nil {
		t.Fatal("non-pending requests must not be editable")
	}
}

func TestDeleteRequestRules(t *testing.T) {
	svc, requestRepo, _ := newTestService()
	created, _ := svc.CreateRequest(context.Background(), 1, validRequest())

	if err := svc.DeleteRequest(context.Background(), created.ID, 2); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for stranger, got %v", err)
	}

	requestRepo.requests[created.ID].Status = domain.RequestStatusAccepted
	if err := svc.DeleteRequest(context.Background(), created.ID, 1); err == nil {
		t.Error("non-pending requests must not be deletable")
	}

	requestRepo.requests[created.ID].Status = domain.RequestStatusPending
	if err := svc.DeleteRequest(context.Background(), created.ID, 1); err != nil {
		t.Fatalf("DeleteRequest: %v", err)
	}
	if len(requestRepo.requests) != 0 {
		t.Error("request should be gone")
	}
}

func TestAcceptRequest(t *testing.T) {
	svc, requestRepo, bookingRepo := newTestService()
	created, _ := svc.CreateRequest(context.Background(), 1, validRequest())

	booking, err := svc.AcceptRequest(context.Background(), created.ID, 7)
	if err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}
	if booking.TransporterID != 7 || booking.RequestID != created.ID {
		t.Errorf("unexpected booking: %+v", booking)
	}
	if requestRepo.requests[created.ID].Status != domain.RequestStatusAccepted {
		t.Error("request should flip to accepted")
	}

	// second claim must fail
	if _, err := svc.AcceptRequest(context.Background(), created.ID, 8); err == nil {
		t.Fatal("double accept must fail")
	}
	if len(bookingRepo.bookings) != 1 {
		t.Errorf("expected a single booking, got %d", len(bookingRepo.bookings))
	}
}

func TestAcceptedRequestsAndFulfill(t *testing.T) {
	svc, requestRepo, _ := newTestService()

	first, _ := svc.CreateRequest(context.Background(), 1, validRequest())
	second, _ := svc.CreateRequest(context.Background(), 2, validRequest())

	if _, err := svc.AcceptRequest(context.Background(), first.ID, 7); err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}
	if _, err := svc.AcceptRequest(context.Background(), second.ID, 9); err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}

	accepted, err := svc.AcceptedRequests(context.Background(), 7)
	if err != nil {
		t.Fatalf("AcceptedRequests: %v", err)
	}
	if len(accepted) != 1 || accepted[0].ID != first.ID {
		t.Errorf("unexpected accepted list: %+v", accepted)
	}

	fulfilled, err := svc.MarkFulfilled(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("MarkFulfilled: %v", err)
	}
	if fulfilled.Status != domain.RequestStatusFulfilled {
		t.Errorf("expected fulfilled, got %q", fulfilled.Status)
	}
	if requestRepo.requests[first.ID].Status != domain.RequestStatusFulfilled {
		t.Error("fulfilled status was not persisted")
	}

	// fulfilled requests still show up for the transporter
	accepted, err = svc.AcceptedRequests(context.Background(), 7)
	if err != nil {
		t.Fatalf("AcceptedRequests: %v", err)
	}
	if len(accepted) != 1 {
		t.Errorf("fulfilled request should remain listed, got %d entries", len(accepted))
	}
}
