package commands

import (
	"errors"
	"fmt"
	"io"

	"hunnydu/internal/api"
	"hunnydu/internal/exitcode"
)

// writeError prints an action error and maps it to an exit code.
func writeError(errOut io.Writer, err error) int {
	var authErr *api.AuthError
	var netErr *api.NetworkError
	var conflictErr *api.ConflictError
	var notFoundErr *api.NotFoundError
	var validationErr *api.ValidationError

	switch {
	case errors.As(err, &authErr):
		fmt.Fprintf(errOut, "error: %v (run: hunnydu login)\n", err)
		return exitcode.AuthError
	case errors.As(err, &conflictErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &validationErr):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &netErr):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
