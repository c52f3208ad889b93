package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをステータス付きJSONにする
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if nf, ok := usecase.AsNotFoundError(err); ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Message})
	}
	if ise, ok := usecase.AsInsufficientStockError(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ise.PublicMessage()})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
