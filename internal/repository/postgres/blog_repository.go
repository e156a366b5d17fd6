package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"

	"gorm.io/gorm"
)

type BlogRepository struct {
	DB *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{
		DB: db,
	}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	if err := r.DB.WithContext(ctx).Create(&blog).Error; err != nil {
		return err
	}

	return nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id uint) (domain.Blog, error) {
	var blog domain.Blog

	err := r.DB.WithContext(ctx).First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Blog{}, errors.New("blog not found")
		}
		return domain.Blog{}, err
	}

	return blog, nil
}

func (r *BlogRepository) FindAll(ctx context.Context) ([]domain.Blog, error) {
	var blogs []domain.Blog

	if err := r.DB.WithContext(ctx).Find(&blogs).Error; err != nil {
		return nil, err
	}

	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	blog.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Where("id = ?", blog.ID).Updates(blog)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("blog not found")
	}

	return nil
}

// UpdateEngagement persists only the embedded like and comment sets.
func (r *BlogRepository) UpdateEngagement(ctx context.Context, blog *domain.Blog) error {
	result := r.DB.WithContext(ctx).Model(&domain.Blog{}).Where("id = ?", blog.ID).
		Updates(map[string]interface{}{
			"likes":      blog.Likes,
			"comments":   blog.Comments,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("blog not found")
	}

	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("blog not found")
	}

	return nil
}
