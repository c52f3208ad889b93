package repository

import (
	"context"
	"fmt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, repo.ErrDuplicate
		}
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (r *ProductGormRepository) FindByName(ctx context.Context, name string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product by name: %w", err)
	}
	return p, nil
}

// idsの商品を行ロック付きで取得（SELECT ... FOR UPDATE）
func (r *ProductGormRepository) FindAllByID(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("created_at asc").Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

// 在庫の書き戻し
// 読み取り時のversionと一致するときだけ更新する
func (r *ProductGormRepository) UpdateQuantity(ctx context.Context, products []model.Product) error {
	for _, p := range products {
		res := r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("id = ? AND version = ?", p.ID, p.Version).
			Updates(map[string]interface{}{
				"quantity": p.Quantity,
				"version":  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("update quantity of %s: %w", p.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return repo.ErrStockConflict
		}
	}
	return nil
}
