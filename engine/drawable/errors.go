package drawable

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateLocation is matched by every DuplicateLocationError.
	ErrDuplicateLocation = errors.New("duplicate vertex attribute location")
	// ErrDuplicateBinding is matched by every DuplicateBindingError.
	ErrDuplicateBinding = errors.New("duplicate binding slot")
	// ErrBuilderConsumed is returned by a Builder after Build has been called.
	ErrBuilderConsumed = errors.New("builder already built")
)

// DuplicateLocationError reports a vertex attribute registered twice at one shader location.
type DuplicateLocationError struct {
	Location uint32
}

func (e *DuplicateLocationError) Error() string {
	return fmt.Sprintf("%v: location %d", ErrDuplicateLocation, e.Location)
}

func (e *DuplicateLocationError) Is(target error) bool {
	return target == ErrDuplicateLocation
}

// DuplicateBindingError reports a resource registered twice at one (group, binding) slot.
type DuplicateBindingError struct {
	Group   uint32
	Binding uint32
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%v: group %d binding %d", ErrDuplicateBinding, e.Group, e.Binding)
}

func (e *DuplicateBindingError) Is(target error) bool {
	return target == ErrDuplicateBinding
}
