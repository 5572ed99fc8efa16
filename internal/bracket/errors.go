package bracket

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrInvalidConfiguration = errors.New("invalid tournament configuration")
	ErrSlotOccupied         = errors.New("slot already occupied")
	ErrNotEnoughSlots       = errors.New("not enough empty slots")
	ErrNotFound             = errors.New("not found")
)

// ConfigurationError lists every violation found while validating a
// tournament. It is returned before anything is mutated.
type ConfigurationError struct {
	errs *multierror.Error
}

func (e *ConfigurationError) Add(format string, args ...any) {
	e.errs = multierror.Append(e.errs, fmt.Errorf(format, args...))
}

func (e *ConfigurationError) Merge(other *ConfigurationError) {
	if other == nil || other.errs == nil {
		return
	}
	e.errs = multierror.Append(e.errs, other.errs.Errors...)
}

func (e *ConfigurationError) Violations() []string {
	if e == nil || e.errs == nil {
		return []string{}
	}
	out := make([]string, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		out = append(out, err.Error())
	}
	return out
}

func (e *ConfigurationError) Error() string {
	if e.errs == nil {
		return ErrInvalidConfiguration.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, e.errs.Error())
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// ErrorOrNil returns nil when no violation was recorded.
func (e *ConfigurationError) ErrorOrNil() error {
	if e == nil || e.errs == nil || len(e.errs.Errors) == 0 {
		return nil
	}
	return e
}
