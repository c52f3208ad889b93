package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/metrics"
	repo "marketplace/internal/repository"

	log "github.com/sirupsen/logrus"
)

const (
	msgCustomerNotFound = "Customer does not exist"
	msgProductsNotFound = "Products not found"
	msgOrderNotFound    = "Order not found"
)

// 注文作成後に外部へ通知する（Kafkaなど）
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order model.Order) error
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(context.Context, model.Order) error { return nil }

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	publisher OrderEventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// DI
// publisher・metricsはnil可
func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	publisher OrderEventPublisher,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *OrderUsecase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if logger == nil {
		logger = log.WithField("component", "order_usecase")
	}
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

type CreateOrderInput struct {
	CustomerID string
	Products   []OrderProductInput
}

// CreateOrder は注文者と在庫を確認し、注文を作って在庫を減らす。
//
// 注文者確認〜在庫の書き戻しまでを1つのトランザクションで行う。
// どこかで失敗すれば注文も在庫も残らない。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (model.Order, error) {
	start := time.Now()
	defer func() { u.metrics.RecordDuration(time.Since(start)) }()

	if err := validateCreateOrder(in); err != nil {
		u.metrics.RecordOrderFailed(metrics.ReasonValidation)
		return model.Order{}, err
	}

	logger := u.logger.WithField("customer_id", in.CustomerID)

	var created model.Order
	reason := metrics.ReasonInternal

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文者の存在確認
		customer, err := r.Customers().FindByID(ctx, in.CustomerID)
		if errors.Is(err, repo.ErrNotFound) {
			reason = metrics.ReasonCustomerNotFound
			return NewNotFoundError(msgCustomerNotFound)
		}
		if err != nil {
			return u.dbError(logger, "find customer", err)
		}

		//在庫取得（行ロック）
		stocks, err := r.Products().FindAllByID(ctx, distinctProductIDs(in.Products))
		if err != nil {
			return u.dbError(logger, "find products", err)
		}
		if len(stocks) == 0 {
			reason = metrics.ReasonProductsNotFound
			return NewNotFoundError(msgProductsNotFound)
		}

		//カート作成（ここで在庫不足なら何も保存していない）
		cart, reserved, err := BuildOrderCart(in.Products, stocks)
		if err != nil {
			reason = metrics.ReasonInsufficientStock
			return err
		}

		order, err := r.Orders().Create(ctx, repo.CreateOrderInput{
			Customer: customer,
			Products: cart,
		})
		if err != nil {
			return u.dbError(logger, "create order", err)
		}

		//在庫の書き戻し（要求されていない商品もそのまま書く）
		if err := r.Products().UpdateQuantity(ctx, reserved); err != nil {
			if errors.Is(err, repo.ErrStockConflict) {
				reason = metrics.ReasonStockConflict
				logger.WithError(err).Warn("stock changed during order creation")
				return NewHTTPError(http.StatusConflict, "stock changed, retry")
			}
			return u.dbError(logger, "update quantity", err)
		}

		created = order
		return nil
	})
	if err != nil {
		u.metrics.RecordOrderFailed(reason)
		if !isKnownError(err) {
			//commit失敗など
			return model.Order{}, u.dbError(logger, "transaction", err)
		}
		if reason != metrics.ReasonInternal {
			logger.WithError(err).WithField("reason", reason).Info("order rejected")
		}
		return model.Order{}, err
	}

	var units int64
	for _, p := range created.OrderProducts {
		units += p.Quantity
	}
	u.metrics.RecordOrderCreated(units)
	logger.WithFields(log.Fields{
		"order_id": created.ID,
		"items":    len(created.OrderProducts),
	}).Info("order created")

	//コミット後なので失敗しても注文は返す
	if err := u.publisher.PublishOrderCreated(ctx, created); err != nil {
		logger.WithError(err).WithField("order_id", created.ID).Warn("failed to publish order created event")
	}

	return created, nil
}

// FindOrder は注文を明細・注文者付きで返す
func (u *OrderUsecase) FindOrder(ctx context.Context, orderID string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewNotFoundError(msgOrderNotFound)
	}
	if err != nil {
		return model.Order{}, u.dbError(u.logger.WithField("order_id", orderID), "find order", err)
	}
	return o, nil
}

func validateCreateOrder(in CreateOrderInput) error {
	if strings.TrimSpace(in.CustomerID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid customer_id")
	}
	for _, p := range in.Products {
		if strings.TrimSpace(p.ID) == "" {
			return NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if p.Quantity <= 0 {
			return NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}
	return nil
}

// 原因はログに残し、クライアントには"db error"だけ返す
func (u *OrderUsecase) dbError(logger *log.Entry, op string, err error) error {
	logger.WithError(err).WithField("op", op).Error("order storage failure")
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

func isKnownError(err error) bool {
	if _, ok := AsHTTPError(err); ok {
		return true
	}
	if _, ok := AsNotFoundError(err); ok {
		return true
	}
	_, ok := AsInsufficientStockError(err)
	return ok
}
