package cmd

import (
	"context"
	"errors"
	"strings"

	clierrors "github.com/salmonumbrella/redelim/internal/errors"
)

const (
	ExitOK         = 0
	ExitSystem     = 1
	ExitUser       = 2
	ExitPermission = 3
	ExitNotFound   = 4
	ExitParse      = 5
	ExitCanceled   = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if clierrors.IsNotFoundError(err) {
		return ExitNotFound
	}
	if clierrors.IsPermissionError(err) {
		return ExitPermission
	}
	if clierrors.IsParseError(err) {
		return ExitParse
	}
	if clierrors.IsValidationError(err) || clierrors.IsUserError(err) {
		return ExitUser
	}
	// Cobra reports unknown subcommands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUser
	}
	return ExitSystem
}
