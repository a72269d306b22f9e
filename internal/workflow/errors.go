package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not legal from the
	// order's current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrForbiddenDepartment is returned when the actor's department may not
	// trigger the action.
	ErrForbiddenDepartment = errors.New("department not allowed to perform action")

	// ErrValidation is returned when a mandatory transition input is missing.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownAction is returned for an action outside the transition table.
	ErrUnknownAction = errors.New("unknown workflow action")
)
