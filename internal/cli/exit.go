package cli

import (
	"errors"
	"fmt"

	"quadsolve/internal/console"
	"quadsolve/internal/domain"
	"quadsolve/internal/service"
)

const (
	ExitSuccess           = 0
	ExitTestFailure       = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// InvocationError carries the exit code for a usage or configuration problem
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitConfigError, Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to the process exit code. Rejected input counts as
// an invalid invocation; unknown errors are internal.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}

	switch {
	case errors.Is(err, domain.ErrNonFinite),
		errors.Is(err, service.ErrNotQuadratic),
		errors.Is(err, service.ErrRootOverflow),
		errors.Is(err, console.ErrEndOfInput),
		errors.Is(err, console.ErrInvalidNumber):
		return ExitInvalidInvocation
	case errors.Is(err, service.ErrHistoryDisabled):
		return ExitConfigError
	}
	return ExitInternalError
}
