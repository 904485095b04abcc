package hostdev

import (
	"fmt"

	"github.com/cubit-ml/cubit/device"
)

// elemT abbreviates the element constraint in kernel registrars.
type elemT = device.Elem

// sumBlock is the per-partial block size of the two-phase reduction,
// shared with the engine's accumulator sizing.
const sumBlock = 1024

// kernelFunc is one host kernel body. Host kernels iterate the logical
// range directly, so the launch grid is accepted and ignored.
type kernelFunc func(args []any) error

type module struct {
	kernels map[string]kernelFunc
}

func (m *module) Kernel(name string) (device.Kernel, error) {
	f, ok := m.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, device.ErrKernelNotFound)
	}
	return hostKernel{f: f}, nil
}

func (m *module) Release() {
	m.kernels = nil
}

type hostKernel struct {
	f kernelFunc
}

func (k hostKernel) Launch(_ device.Queue, _ device.Grid, args ...any) error {
	return k.f(args)
}

// argReader walks a kernel's positional argument list.
type argReader[T device.Elem] struct {
	args []any
	pos  int
}

func newArgs[T device.Elem](args []any) *argReader[T] {
	return &argReader[T]{args: args}
}

func (p *argReader[T]) next() any {
	v := p.args[p.pos]
	p.pos++
	return v
}

func (p *argReader[T]) Int() int {
	return p.next().(int)
}

func (p *argReader[T]) Elem() T {
	return p.next().(T)
}

// Buf returns the next buffer argument as a typed element view.
func (p *argReader[T]) Buf() []T {
	return elems[T](p.next().(device.Buffer))
}

// Flags returns the next buffer argument as an int32 flag view.
func (p *argReader[T]) Flags() []int32 {
	return flags(p.next().(device.Buffer))
}

// newModule builds the full kernel registry for one element width.
func newModule[T device.Elem]() *module {
	k := make(map[string]kernelFunc)
	registerVectorKernels[T](k)
	registerMatrixKernels[T](k)
	return &module{kernels: k}
}
