package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

// Workgroup geometry shared by every custom kernel launch. 1D launches
// cover a flat element count, 2D launches cover the two storage-order
// extents of a matrix.
const (
	blockDim1D = 256
	blockDim2D = 16
	// sumBlock is the per-partial element count of the two-phase
	// reduction; each accumulator slot covers one block of this size.
	sumBlock = 1024
)

// kernelPair names the two orientation variants of a matrix kernel. The
// variant is picked from the operand pair's order equality at dispatch
// time; names are spelled out here so lookup failures stay auditable.
type kernelPair struct {
	straight string
	flipped  string
}

func (p kernelPair) pick(sameOrder bool) string {
	if sameOrder {
		return p.straight
	}
	return p.flipped
}

// Matrix kernel name tables.
var (
	geSwapKernels   = kernelPair{"ge_swap_no_transp", "ge_swap_transp"}
	geCopyKernels   = kernelPair{"ge_copy_no_transp", "ge_copy_transp"}
	geAxpbyKernels  = kernelPair{"ge_axpby_no_transp", "ge_axpby_transp"}
	geEqualsKernels = kernelPair{"ge_equals_no_transp", "ge_equals_transp"}

	trSwapKernels   = kernelPair{"tr_swap_no_transp", "tr_swap_transp"}
	trCopyKernels   = kernelPair{"tr_copy_no_transp", "tr_copy_transp"}
	trAxpbyKernels  = kernelPair{"tr_axpby_no_transp", "tr_axpby_transp"}
	trEqualsKernels = kernelPair{"tr_equals_no_transp", "tr_equals_transp"}
)

// launch1D enqueues a kernel over n flat elements.
func (c *core[T]) launch1D(name string, n int, args ...any) error {
	k, err := c.mod.Kernel(name)
	if err != nil {
		if errors.Is(err, device.ErrKernelNotFound) {
			return fmt.Errorf("%s: %w", name, device.ErrUnsupported)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return k.Launch(c.q, device.Grid1D(n, blockDim1D), args...)
}

// launch2D enqueues a kernel over an sd x fd storage-extent range.
func (c *core[T]) launch2D(name string, sd, fd int, args ...any) error {
	k, err := c.mod.Kernel(name)
	if err != nil {
		if errors.Is(err, device.ErrKernelNotFound) {
			return fmt.Errorf("%s: %w", name, device.ErrUnsupported)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return k.Launch(c.q, device.Grid2D(sd, fd, blockDim2D, blockDim2D), args...)
}

// readFlag reads back the single int32 mismatch flag written by an
// equality kernel. The read drains the queue.
func (c *core[T]) readFlag(op string, buf device.Buffer) (int32, error) {
	var raw [4]byte
	if err := c.q.Read(buf, 0, raw[:]); err != nil {
		return 0, &device.TransferError{Op: op, Err: err}
	}
	return int32(binary.LittleEndian.Uint32(raw[:])), nil
}

// readElem reads back one element of the engine's width from a buffer at
// the given element offset.
func (c *core[T]) readElem(op string, buf device.Buffer, elemOff int) (T, error) {
	var z T
	raw := make([]byte, c.acc.ElemSize())
	if err := c.q.Read(buf, c.acc.ByteOffset(elemOff), raw); err != nil {
		return z, &device.TransferError{Op: op, Err: err}
	}
	switch c.acc.DType {
	case layout.Float64:
		return T(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
	default:
		return T(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	}
}

// unsupported wraps ErrUnsupported with the requesting operation's name.
func unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, device.ErrUnsupported)
}
