package workerbridge

import (
	"errors"
	"os/exec"
)

// asExitError unwraps err to an *exec.ExitError, if it is one.
func asExitError(err error) (*exec.ExitError, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
