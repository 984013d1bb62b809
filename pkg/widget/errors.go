package widget

import "errors"

var (
	// ErrContainerNotFound is returned by Create when the reference does not
	// resolve to an element.
	ErrContainerNotFound = errors.New("widget: container not found")
	// ErrAlreadyCreated is returned by Create for a container that already
	// hosts a live widget.
	ErrAlreadyCreated = errors.New("widget: container already hosts a searchdown")
	// ErrNotFound is returned when a reference resolves to no element.
	ErrNotFound = errors.New("widget: element not found")
	// ErrNoValue is returned by GetValue for a plain element with an empty value.
	ErrNoValue = errors.New("widget: element has no value")
)
