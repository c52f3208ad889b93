package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/validator"

	log "github.com/sirupsen/logrus"
)

const msgEmailAlreadyAssigned = "This e-mail is already assigned"

type CustomerUsecase struct {
	customers repo.CustomerRepository
	logger    *log.Entry
}

// DI
func NewCustomerUsecase(customers repo.CustomerRepository, logger *log.Entry) *CustomerUsecase {
	if logger == nil {
		logger = log.WithField("component", "customer_usecase")
	}
	return &CustomerUsecase{customers: customers, logger: logger}
}

type CreateCustomerInput struct {
	Name  string
	Email string
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, in CreateCustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !validator.IsEmailLike(email) {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	//email重複チェック
	_, err := u.customers.FindByEmail(ctx, email)
	if err == nil {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, msgEmailAlreadyAssigned)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		u.logger.WithError(err).Error("find customer by email failed")
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.customers.Create(ctx, model.Customer{Name: name, Email: email})
	if errors.Is(err, repo.ErrDuplicate) {
		//同時登録
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, msgEmailAlreadyAssigned)
	}
	if err != nil {
		u.logger.WithError(err).Error("create customer failed")
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.WithField("customer_id", c.ID).Info("customer created")
	return c, nil
}
