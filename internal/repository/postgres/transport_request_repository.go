package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"

	"gorm.io/gorm"
)

type TransportRequestRepository struct {
	DB *gorm.DB
}

func NewTransportRequestRepository(db *gorm.DB) *TransportRequestRepository {
	return &TransportRequestRepository{
		DB: db,
	}
}

func (r *TransportRequestRepository) Create(ctx context.Context, request *domain.TransportRequest) error {
	if err := r.DB.WithContext(ctx).Create(&request).Error; err != nil {
		return err
	}

	return nil
}

func (r *TransportRequestRepository) FindByID(ctx context.Context, id uint) (domain.TransportRequest, error) {
	var request domain.TransportRequest

	err := r.DB.WithContext(ctx).First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransportRequest{}, errors.New("transport request not found")
		}
		return domain.TransportRequest{}, err
	}

	return request, nil
}

func (r *TransportRequestRepository) FindAll(ctx context.Context) ([]domain.TransportRequest, error) {
	var requests []domain.TransportRequest

	if err := r.DB.WithContext(ctx).Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *TransportRequestRepository) FindByUser(ctx context.Context, userID uint) ([]domain.TransportRequest, error) {
	var requests []domain.TransportRequest

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// FindByIDsAndStatuses lists a transporter's claimed requests filtered by
// lifecycle status.
func (r *TransportRequestRepository) FindByIDsAndStatuses(ctx context.Context, ids []uint, statuses []string) ([]domain.TransportRequest, error) {
	if len(ids) == 0 {
		return []domain.TransportRequest{}, nil
	}

	var requests []domain.TransportRequest

	err := r.DB.WithContext(ctx).Where("id IN ?", ids).
		Where("status IN ?", statuses).Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *TransportRequestRepository) Update(ctx context.Context, request *domain.TransportRequest) error {
	request.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Where("id = ?", request.ID).Updates(request)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("transport request not found")
	}

	return nil
}

func (r *TransportRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.DB.WithContext(ctx).Model(&domain.TransportRequest{}).
		Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("transport request not found")
	}

	return nil
}

func (r *TransportRequestRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.TransportRequest{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("transport request not found")
	}

	return nil
}
