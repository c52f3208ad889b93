package repository

import (
	"context"
	"fmt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// 注文者を新規作成
func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Customer{}, repo.ErrDuplicate
		}
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// IDで注文者を1件取得
func (r *CustomerGormRepository) FindByID(ctx context.Context, id string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if isNotFound(err) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

// emailで注文者を1件取得
func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if isNotFound(err) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("find customer by email: %w", err)
	}
	return c, nil
}
