package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"sellnow/internal/domain"
	"sellnow/internal/services"
)

// statusFor maps the engine's error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 handled by the global error handler.
func statusFor(err error) int {
	var (
		pricingErr  *domain.InvalidPricingError
		qtyErr      *domain.InvalidQuantityError
		mismatchErr *domain.PriceMismatchError
		stockErr    *domain.OutOfStockError
		seqErr      *domain.SequenceAllocationError
	)
	switch {
	case errors.As(err, &pricingErr), errors.As(err, &qtyErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &mismatchErr), errors.As(err, &stockErr):
		return fiber.StatusConflict
	case errors.As(err, &seqErr):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrNotPurchasable):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrVariantRequired), errors.Is(err, services.ErrCartEmpty):
		return fiber.StatusBadRequest
	case errors.Is(err, sql.ErrNoRows):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func jsonError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusNotFound {
		msg = "not found"
	}
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
