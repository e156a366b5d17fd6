package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return err
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, errors.New("order not found")
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	if err := r.DB.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) FindByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"order_status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// SetDeletedBy marks the order without removing the record.
func (r *OrdersRepository) SetDeletedBy(ctx context.Context, id uint, deletedBy string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Update("deleted_by", deletedBy)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

func (r *OrdersRepository) Update(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Where("id = ?", order.ID).Updates(order)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

func (r *OrdersRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Order{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// DeleteByService removes every order referencing a service. Service deletion
// cascades through here.
func (r *OrdersRepository) DeleteByService(ctx context.Context, serviceID uint) error {
	return r.DB.WithContext(ctx).Where("service_id = ?", serviceID).
		Delete(&domain.Order{}).Error
}
