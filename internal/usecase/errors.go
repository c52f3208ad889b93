package usecase

import (
	"errors"
	"fmt"
)

// ステータス付きのエラー（handlerでそのままJSONにする）
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 注文者・商品・注文が見つからない
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

func AsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	ok := errors.As(err, &nf)
	return nf, ok
}

const insufficientStockMessage = "Products with insufficient quantities"

// 要求数量が在庫を超えた
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d",
		insufficientStockMessage, e.ProductID, e.Requested, e.Available)
}

// クライアントに返すメッセージ（数量は出さない）
func (e *InsufficientStockError) PublicMessage() string {
	return insufficientStockMessage
}

func AsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	ok := errors.As(err, &ise)
	return ise, ok
}
