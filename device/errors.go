package device

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks an operation/layout combination with no
// implementation path on the current engine. It is returned before any
// device work is enqueued.
var ErrUnsupported = errors.New("operation not supported by this engine")

// ErrKernelNotFound is returned by Module.Kernel when the module carries
// no kernel with the requested name.
var ErrKernelNotFound = errors.New("kernel not found in module")

// VendorError reports a non-success vendor status. The failed operation's
// output buffers are undefined; nothing is retried.
type VendorError struct {
	Routine string
	Status  Status
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor routine %s failed with status %d", e.Routine, e.Status)
}

// UsageError reports a caller-side precondition violation, detected
// before any device work is enqueued.
type UsageError struct {
	Op  string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// TransferError reports a failed blocking read-back of a device result.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: device transfer failed: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
