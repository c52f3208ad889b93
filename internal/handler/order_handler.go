package handler

import (
	"net/http"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	CustomerID string                      `json:"customer_id"`
	Products   []usecase.OrderProductInput `json:"products"`
}

type OrderProductResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderResponse struct {
	ID            string                 `json:"id"`
	Customer      CustomerResponse       `json:"customer"`
	OrderProducts []OrderProductResponse `json:"order_products"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func toOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderProductResponse, 0, len(o.OrderProducts))
	for _, op := range o.OrderProducts {
		items = append(items, OrderProductResponse{
			ID:        op.ID,
			ProductID: op.ProductID,
			Price:     op.Price.StringFixed(2),
			Quantity:  op.Quantity,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		Customer:      toCustomerResponse(o.Customer),
		OrderProducts: items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.POST("/orders", h.create, mw...)
	e.GET("/orders/:id", h.detail, mw...)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//IDはUUIDのみ（DBのuuid型に合わせる）
	if !validator.IsUUID(req.CustomerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
	}
	for _, p := range req.Products {
		if !validator.IsUUID(p.ID) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		}
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		CustomerID: req.CustomerID,
		Products:   req.Products,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(out))
}

func (h *OrderHandler) detail(c echo.Context) error {
	id := c.Param("id")
	if !validator.IsUUID(id) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.FindOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(out))
}
