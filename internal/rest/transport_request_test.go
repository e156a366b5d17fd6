package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/business/requests"
	"github.com/shakeel7521951/bursa-backend/domain"
)

type fakeRequestsService struct {
	calls int
}

func (f *fakeRequestsService) CreateRequest(ctx context.Context, userID uint, in requests.CreateRequestInput) (domain.TransportRequest, error) {
	f.calls++
	return domain.TransportRequest{ID: 1, UserID: userID}, nil
}

func (f *fakeRequestsService) GetAllRequests(ctx context.Context) ([]domain.TransportRequest, error) {
	f.calls++
	return nil, nil
}

func (f *fakeRequestsService) GetUserRequests(ctx context.Context, userID uint) ([]domain.TransportRequest, error) {
	f.calls++
	return nil, nil
}

func (f *fakeRequestsService) UpdateRequest(ctx context.Context, requestID, userID uint, in requests.CreateRequestInput) (domain.TransportRequest, error) {
	f.calls++
	return domain.TransportRequest{}, nil
}

func (f *fakeRequestsService) DeleteRequest(ctx context.Context, requestID, userID uint) error {
	f.calls++
	return nil
}

func (f *fakeRequestsService) AcceptRequest(ctx context.Context, requestID, transporterID uint) (domain.RequestBooking, error) {
	f.calls++
	return domain.RequestBooking{}, nil
}

func (f *fakeRequestsService) AcceptedRequests(ctx context.Context, transporterID uint) ([]domain.TransportRequest, error) {
	f.calls++
	return nil, nil
}

func (f *fakeRequestsService) MarkFulfilled(ctx context.Context, requestID uint) (domain.TransportRequest, error) {
	f.calls++
	return domain.TransportRequest{}, nil
}

func TestCreateRequestWithoutIdentity(t *testing.T) {
	svc := &fakeRequestsService{}
	handler := NewRequestsHandler(svc)

	body := `{"departure":"Iasi","destination":"Roma","date":"2026-09-10T08:00:00Z","passengers":2,"category":"Standard"}`
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := handler.CreateRequest(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity in context, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Errorf("service should not be called, got %d calls", svc.calls)
	}
}

func TestCreateRequestWithIdentity(t *testing.T) {
	svc := &fakeRequestsService{}
	handler := NewRequestsHandler(svc)

	body := `{"departure":"Iasi","destination":"Roma","date":"2026-09-10T08:00:00Z","passengers":2,"category":"Standard"}`
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", uint(7))

	if err := handler.CreateRequest(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if svc.calls != 1 {
		t.Errorf("expected one service call, got %d", svc.calls)
	}
}
