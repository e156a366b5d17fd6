package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	DB *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{
		DB: db,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	if err := r.DB.WithContext(ctx).Create(&service).Error; err != nil {
		return err
	}

	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (domain.Service, error) {
	var service domain.Service

	err := r.DB.WithContext(ctx).First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Service{}, errors.New("service not found")
		}
		return domain.Service{}, err
	}

	return service, nil
}

func (r *ServiceRepository) FindAll(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service

	if err := r.DB.WithContext(ctx).Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) FindByTransporter(ctx context.Context, transporterID uint) ([]domain.Service, error) {
	var services []domain.Service

	err := r.DB.WithContext(ctx).Where("transporter_id = ?", transporterID).Find(&services).Error
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	service.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Where("id = ?", service.ID).Updates(service)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("service not found")
	}

	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Service{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("service not found")
	}

	return nil
}

// DecrementSeats claims seats with a single conditional update so two
// concurrent orders cannot both pass the capacity check on a stale read.
func (r *ServiceRepository) DecrementSeats(ctx context.Context, id uint, seats int) error {
	result := r.DB.WithContext(ctx).Model(&domain.Service{}).
		Where("id = ? AND available_seats >= ?", id, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", seats))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrInsufficientCapacity
	}

	return nil
}

// DecrementParcelCapacity claims parcel load the same way, guarded by the
// remaining capacity.
func (r *ServiceRepository) DecrementParcelCapacity(ctx context.Context, id uint, weight float64) error {
	result := r.DB.WithContext(ctx).Model(&domain.Service{}).
		Where("id = ? AND parcel_load_capacity >= ?", id, weight).
		UpdateColumn("parcel_load_capacity", gorm.Expr("parcel_load_capacity - ?", weight))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrInsufficientCapacity
	}

	return nil
}
