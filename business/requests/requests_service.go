package requests

import (
	"context"
	"strings"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type TransportRequestRepository interface {
	Create(ctx context.Context, request *domain.TransportRequest) error
	FindByID(ctx context.Context, id uint) (domain.TransportRequest, error)
	FindAll(ctx context.Context) ([]domain.TransportRequest, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.TransportRequest, error)
	FindByIDsAndStatuses(ctx context.Context, ids []uint, statuses []string) ([]domain.TransportRequest, error)
	Update(ctx context.Context, request *domain.TransportRequest) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type RequestBookingRepository interface {
	Create(ctx context.Context, booking *domain.RequestBooking) error
	FindByTransporter(ctx context.Context, transporterID uint) ([]domain.RequestBooking, error)
	ExistsForRequest(ctx context.Context, requestID uint) (bool, error)
}

type RequestsService struct {
	requestRepo TransportRequestRepository
	bookingRepo RequestBookingRepository
}

func NewRequestsService(requestRepo TransportRequestRepository, bookingRepo RequestBookingRepository) *RequestsService {
	return &RequestsService{
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
	}
}

type CreateRequestInput struct {
	Departure   string
	Destination string
	Date        time.Time
	Passengers  int
	Category    string
	Notes       string
}

func (s *RequestsService) CreateRequest(ctx context.Context, userID uint, in CreateRequestInput) (domain.TransportRequest, error) {
	if in.Departure == "" || in.Destination == "" || in.Date.IsZero() || in.Passengers < 1 {
		return domain.TransportRequest{}, domain.NewValidationError("all required fields must be filled in")
	}

	if !domain.ValidRequestCategories[in.Category] {
		return domain.TransportRequest{}, domain.NewValidationError("invalid request category")
	}

	request := domain.TransportRequest{
		UserID:      userID,
		Departure:   strings.TrimSpace(in.Departure),
		Destination: strings.TrimSpace(in.Destination),
		Date:        in.Date,
		Passengers:  in.Passengers,
		Category:    in.Category,
		Notes:       in.Notes,
		Status:      domain.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, &request); err != nil {
		logger.Error("Failed to create transport request", err)
		return domain.TransportRequest{}, err
	}

	return request, nil
}

func (s *RequestsService) GetAllRequests(ctx context.Context) ([]domain.TransportRequest, error) {
	return s.requestRepo.FindAll(ctx)
}

func (s *RequestsService) GetUserRequests(ctx context.Context, userID uint) ([]domain.TransportRequest, error) {
	return s.requestRepo.FindByUser(ctx, userID)
}

// UpdateRequest edits an ad-hoc request. Only the owner may edit, and only
// while the request is still pending.
func (s *RequestsService) UpdateRequest(ctx context.Context, requestID, userID uint, in CreateRequestInput) (domain.TransportRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return domain.TransportRequest{}, err
	}

	if request.UserID != userID {
		return domain.TransportRequest{}, domain.ErrUnauthorized
	}

	if request.Status != domain.RequestStatusPending {
		return domain.TransportRequest{}, domain.NewValidationError("only pending requests can be edited")
	}

	if in.Departure != "" {
		request.Departure = strings.TrimSpace(in.Departure)
	}
	if in.Destination != "" {
		request.Destination = strings.TrimSpace(in.Destination)
	}
	if !in.Date.IsZero() {
		request.Date = in.Date
	}
	if in.Passengers > 0 {
		request.Passengers = in.Passengers
	}
	if in.Category != "" {
		if !domain.ValidRequestCategories[in.Category] {
			return domain.TransportRequest{}, domain.NewValidationError("invalid request category")
		}
		request.Category = in.Category
	}
	if in.Notes != "" {
		request.Notes = in.Notes
	}

	if err := s.requestRepo.Update(ctx, &request); err != nil {
		return domain.TransportRequest{}, err
	}

	return request, nil
}

func (s *RequestsService) DeleteRequest(ctx context.Context, requestID, userID uint) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.UserID != userID {
		return domain.ErrUnauthorized
	}

	if request.Status != domain.RequestStatusPending {
		return domain.NewValidationError("only pending requests can be deleted")
	}

	return s.requestRepo.Delete(ctx, request.ID)
}

// AcceptRequest lets a transporter claim a pending request. The claim flips
// the request to accepted and records the booking join.
func (s *RequestsService) AcceptRequest(ctx context.Context, requestID, transporterID uint) (domain.RequestBooking, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return domain.RequestBooking{}, err
	}

	if request.Status != domain.RequestStatusPending {
		return domain.RequestBooking{}, domain.NewValidationError("request is no longer pending")
	}

	claimed, err := s.bookingRepo.ExistsForRequest(ctx, request.ID)
	if err != nil {
		return domain.RequestBooking{}, err
	}
	if claimed {
		return domain.RequestBooking{}, domain.NewValidationError("request has already been accepted")
	}

	if err := s.requestRepo.UpdateStatus(ctx, request.ID, domain.RequestStatusAccepted); err != nil {
		return domain.RequestBooking{}, err
	}

	booking := domain.RequestBooking{
		TransporterID: transporterID,
		RequestID:     request.ID,
	}

	if err := s.bookingRepo.Create(ctx, &booking); err != nil {
		logger.Error("Failed to create request booking", err)
		return domain.RequestBooking{}, err
	}

	return booking, nil
}

// AcceptedRequests lists the accepted and fulfilled requests a transporter
// has claimed.
func (s *RequestsService) AcceptedRequests(ctx context.Context, transporterID uint) ([]domain.TransportRequest, error) {
	bookings, err := s.bookingRepo.FindByTransporter(ctx, transporterID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.RequestID)
	}

	return s.requestRepo.FindByIDsAndStatuses(ctx, ids,
		[]string{domain.RequestStatusAccepted, domain.RequestStatusFulfilled})
}

func (s *RequestsService) MarkFulfilled(ctx context.Context, requestID uint) (domain.TransportRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return domain.TransportRequest{}, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, request.ID, domain.RequestStatusFulfilled); err != nil {
		return domain.TransportRequest{}, err
	}
	request.Status = domain.RequestStatusFulfilled

	return request, nil
}
