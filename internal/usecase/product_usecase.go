package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const msgProductNameTaken = "There is already one product with this name"

// 価格は小数2桁まで
const priceScale = 2

type ProductUsecase struct {
	productRepo repo.ProductRepository
	logger      *log.Entry
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, logger *log.Entry) *ProductUsecase {
	if logger == nil {
		logger = log.WithField("component", "product_usecase")
	}
	return &ProductUsecase{productRepo: productRepo, logger: logger}
}

type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	//商品名の重複チェック
	_, err := u.productRepo.FindByName(ctx, name)
	if err == nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgProductNameTaken)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		u.logger.WithError(err).Error("find product by name failed")
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:     name,
		Price:    in.Price.Round(priceScale),
		Quantity: in.Quantity,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgProductNameTaken)
	}
	if err != nil {
		u.logger.WithError(err).Error("create product failed")
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.WithFields(log.Fields{"product_id": p.ID, "quantity": p.Quantity}).Info("product created")
	return p, nil
}
