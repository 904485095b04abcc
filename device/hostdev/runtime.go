// Package hostdev is an in-process reference implementation of the device
// contracts: buffers live in host memory, the queue executes immediately,
// the kernel module is a registry of Go functions, and the vendor BLAS is
// a plain host implementation. It mirrors the accelerator path closely
// enough to serve as the CPU fallback and as the fixture the engine tests
// run against.
package hostdev

import (
	"fmt"
	"unsafe"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

type buffer struct {
	data []byte
}

func (b *buffer) Size() uint64 {
	return uint64(len(b.data))
}

func (b *buffer) Release() {
	b.data = nil
}

// queue is immediate-mode: every launch has already completed by the time
// Read or Write runs, so blocking semantics hold trivially.
type queue struct{}

func (queue) Read(buf device.Buffer, off uint64, dst []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("hostdev: foreign buffer %T", buf)
	}
	if off+uint64(len(dst)) > uint64(len(b.data)) {
		return fmt.Errorf("hostdev: read of %d bytes at %d exceeds buffer size %d", len(dst), off, len(b.data))
	}
	copy(dst, b.data[off:])
	return nil
}

func (queue) Write(buf device.Buffer, off uint64, src []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("hostdev: foreign buffer %T", buf)
	}
	if off+uint64(len(src)) > uint64(len(b.data)) {
		return fmt.Errorf("hostdev: write of %d bytes at %d exceeds buffer size %d", len(src), off, len(b.data))
	}
	copy(b.data[off:], src)
	return nil
}

// Runtime is the host-memory device runtime.
type Runtime struct {
	q queue
}

// New creates a host runtime.
func New() *Runtime {
	return &Runtime{}
}

// Queue returns the immediate-mode queue.
func (r *Runtime) Queue() device.Queue {
	return r.q
}

// Module returns the kernel registry for the given element width.
func (r *Runtime) Module(dt layout.DType) (device.Module, error) {
	switch dt {
	case layout.Float32:
		return newModule[float32](), nil
	case layout.Float64:
		return newModule[float64](), nil
	default:
		return nil, fmt.Errorf("hostdev: no kernel module for dtype %s", dt)
	}
}

// Alloc returns a zero-initialized host buffer.
func (r *Runtime) Alloc(size uint64) (device.Buffer, error) {
	return &buffer{data: make([]byte, size)}, nil
}

// Close releases nothing; host buffers are garbage collected.
func (r *Runtime) Close() error {
	return nil
}

// Blas32 returns the host vendor table for float32.
func (r *Runtime) Blas32() device.Blas[float32] {
	return hostBlas[float32]{}
}

// Blas64 returns the host vendor table for float64.
func (r *Runtime) Blas64() device.Blas[float64] {
	return hostBlas[float64]{}
}

// Upload creates a buffer holding the given elements.
func Upload[T device.Elem](r *Runtime, data []T) device.Buffer {
	size := len(data) * int(unsafe.Sizeof(*new(T)))
	b := &buffer{data: make([]byte, size)}
	if size > 0 {
		copy(b.data, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size))
	}
	return b
}

// Download copies a buffer's full contents back as elements.
func Download[T device.Elem](r *Runtime, buf device.Buffer) []T {
	b := buf.(*buffer)
	elem := int(unsafe.Sizeof(*new(T)))
	out := make([]T, len(b.data)/elem)
	if len(out) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(out)*elem), b.data)
	}
	return out
}

var _ device.Runtime = (*Runtime)(nil)

// elems reinterprets a host buffer as a typed slice.
func elems[T device.Elem](buf device.Buffer) []T {
	b := buf.(*buffer)
	if len(b.data) == 0 {
		return nil
	}
	elem := int(unsafe.Sizeof(*new(T)))
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), len(b.data)/elem)
}

// flags reinterprets a host buffer as int32 flags.
func flags(buf device.Buffer) []int32 {
	b := buf.(*buffer)
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b.data[0])), len(b.data)/4)
}
