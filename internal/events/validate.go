package events

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEvent is returned when a required event field is missing or
// holds an unsupported value.
var ErrInvalidEvent = errors.New("invalid interaction event")

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("action", func(fl validator.FieldLevel) bool {
		return Action(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("failed to register action validator: %v", err))
	}
	if err := validate.RegisterValidation("navcontext", func(fl validator.FieldLevel) bool {
		return Context(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("failed to register navcontext validator: %v", err))
	}
}

// Validate checks the required fields of e after normalization.
func Validate(e InteractionEvent) error {
	e = e.normalize()
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEvent)
	}
	return nil
}
