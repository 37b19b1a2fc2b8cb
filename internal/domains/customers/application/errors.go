package application

import (
	"errors"
	"fmt"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid customer input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingID) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrContactTooLong) ||
		errors.Is(err, domain.ErrMissingCreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
