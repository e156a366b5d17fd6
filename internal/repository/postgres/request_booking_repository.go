package postgres

import (
	"context"

	"github.com/shakeel7521951/bursa-backend/domain"

	"gorm.io/gorm"
)

type RequestBookingRepository struct {
	DB *gorm.DB
}

func NewRequestBookingRepository(db *gorm.DB) *RequestBookingRepository {
	return &RequestBookingRepository{
		DB: db,
	}
}

func (r *RequestBookingRepository) Create(ctx context.Context, booking *domain.RequestBooking) error {
	if err := r.DB.WithContext(ctx).Create(&booking).Error; err != nil {
		return err
	}

	return nil
}

func (r *RequestBookingRepository) FindByTransporter(ctx context.Context, transporterID uint) ([]domain.RequestBooking, error) {
	var bookings []domain.RequestBooking

	err := r.DB.WithContext(ctx).Where("transporter_id = ?", transporterID).Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *RequestBookingRepository) ExistsForRequest(ctx context.Context, requestID uint) (bool, error) {
	var count int64

	err := r.DB.WithContext(ctx).Model(&domain.RequestBooking{}).
		Where("request_id = ?", requestID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
