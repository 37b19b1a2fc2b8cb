package application

import (
	"errors"
	"fmt"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

var validationErrors = []error{
	domain.ErrMissingID,
	domain.ErrMissingCustomer,
	domain.ErrUnknownCustomer,
	domain.ErrSnapshotTooLong,
	domain.ErrNoItems,
	domain.ErrMissingCreatedAt,
	domain.ErrMissingItemID,
	domain.ErrItemOrderMismatch,
	domain.ErrEmptyProductName,
	domain.ErrProductNameTooLong,
	domain.ErrInvalidQuantity,
	domain.ErrNegativePrice,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return err
}
