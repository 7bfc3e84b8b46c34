package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tanvirhs/resto/internal/domain/models"
)

// respondError maps the domain error taxonomy onto HTTP statuses and always
// reports the specific cause, so the operator can correct input and retry.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		duplicateErr   *models.DuplicateItemError
		notFoundErr    *models.ItemNotFoundError
		stockErr       *models.InsufficientStockError
		inputErr       *models.InvalidInputError
		persistenceErr *models.PersistenceError
	)

	switch {
	case errors.Is(err, models.ErrMissingCustomerInfo),
		errors.Is(err, models.ErrNoItemsSelected),
		errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &duplicateErr),
		errors.As(err, &stockErr):
		return http.StatusConflict
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
