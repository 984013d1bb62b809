package options

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch marks input that could not be coerced to the setting's kind.
	ErrTypeMismatch = errors.New("options: type mismatch")
	// ErrInvalidValue marks input rejected by the setting's validator.
	ErrInvalidValue = errors.New("options: invalid value")
)

// Issue records a rejected setting. The setting keeps its previous value.
type Issue struct {
	Name    Name
	Value   any
	Kind    Kind
	Err     error
	Message string
}

func (i Issue) Error() string {
	if i.Message != "" {
		return i.Message
	}
	return fmt.Sprintf("%v for option '%s'", i.Err, i.Name)
}

func (i Issue) Unwrap() error { return i.Err }

func typeMismatch(name Name, kind Kind, value any) Issue {
	return Issue{
		Name:    name,
		Value:   value,
		Kind:    kind,
		Err:     ErrTypeMismatch,
		Message: fmt.Sprintf("could not set value '%v' for option '%s' because it was not of type '%s'", value, name, kind),
	}
}

func invalidValue(name Name, kind Kind, value any, message string) Issue {
	if message == "" {
		message = fmt.Sprintf("invalid value '%v' for option '%s'", value, name)
	}
	return Issue{
		Name:    name,
		Value:   value,
		Kind:    kind,
		Err:     ErrInvalidValue,
		Message: message,
	}
}
