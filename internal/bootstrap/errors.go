package bootstrap

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Every failure returned by this package is marked with one of these, so
// callers can classify it with errors.Is regardless of the wrapped cause.
var (
	ErrUnavailableLayer       = errors.New("validation layers requested, but not available")
	ErrInstanceCreationFailed = errors.New("failed to create instance")
	ErrDiagnosticsSetupFailed = errors.New("failed to set up debug messenger")
	ErrNoDevicesFound         = errors.New("failed to find GPUs with Vulkan support")
	ErrNoSuitableDevice       = errors.New("failed to find a suitable GPU")
	ErrDeviceCreationFailed   = errors.New("failed to create logical device")
	ErrAlreadyBootstrapped    = errors.New("bootstrap already ran")
)

// fail builds "<context>: <kind>[: <cause>]" and marks it with kind.
func fail(kind, cause error, format string, args ...interface{}) error {
	context := fmt.Sprintf(format, args...)
	if cause == nil {
		return errors.Wrap(kind, context)
	}
	return errors.Mark(errors.Wrapf(cause, "%s: %s", context, kind), kind)
}
