// Package engine maps a layout-agnostic dense linear-algebra surface onto
// two execution paths: vendor BLAS routines when operand layouts match
// vendor assumptions, and custom kernel launches when they do not.
//
// One Engine binds a device queue, a per-element-width kernel module and
// a vendor entrypoint table, and exposes bound Vector, GE (general dense)
// and TR (triangular) dispatchers. Operations issued through one engine
// execute in enqueue order; scalar-returning operations block on a device
// read-back, mutating operations return as soon as the work is enqueued.
// An engine is not safe for concurrent use without external
// serialization.
package engine

import (
	"fmt"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

// Engine is one element-width binding of the dispatch layer.
type Engine[T device.Elem] struct {
	Vector *VectorOps[T]
	GE     *GEOps[T]
	TR     *TROps[T]

	rt     device.Runtime
	mod    device.Module
	closed bool
}

// core carries what every dispatcher family needs.
type core[T device.Elem] struct {
	q   device.Queue
	mod device.Module
	bl  device.Blas[T]
	acc layout.Accessor
	rt  device.Runtime
}

// VectorOps dispatches the vector operation family.
type VectorOps[T device.Elem] struct{ core[T] }

// GEOps dispatches the general dense matrix family.
type GEOps[T device.Elem] struct{ core[T] }

// TROps dispatches the triangular matrix family.
type TROps[T device.Elem] struct{ core[T] }

// DTypeOf returns the layout dtype for the element type T.
func DTypeOf[T device.Elem]() layout.DType {
	var z T
	switch any(z).(type) {
	case float64:
		return layout.Float64
	default:
		return layout.Float32
	}
}

// New binds an engine to a runtime and a vendor entrypoint table. The
// kernel module for T's element width is loaded once here; Close releases
// it.
func New[T device.Elem](rt device.Runtime, bl device.Blas[T]) (*Engine[T], error) {
	dt := DTypeOf[T]()
	mod, err := rt.Module(dt)
	if err != nil {
		return nil, fmt.Errorf("engine: loading %s kernel module: %w", dt, err)
	}
	c := core[T]{q: rt.Queue(), mod: mod, bl: bl, acc: layout.Accessor{DType: dt}, rt: rt}
	return &Engine[T]{
		Vector: &VectorOps[T]{c},
		GE:     &GEOps[T]{c},
		TR:     &TROps[T]{c},
		rt:     rt,
		mod:    mod,
	}, nil
}

// Queue returns the command queue every operation of this engine enqueues
// onto.
func (e *Engine[T]) Queue() device.Queue {
	return e.rt.Queue()
}

// Module returns the engine's compiled kernel module.
func (e *Engine[T]) Module() device.Module {
	return e.mod
}

// Close releases the kernel module. Must be called exactly once per New.
func (e *Engine[T]) Close() error {
	if e.closed {
		return &device.UsageError{Op: "engine.Close", Msg: "engine already closed"}
	}
	e.closed = true
	e.mod.Release()
	return nil
}

// scratch allocates a zero-initialized device buffer scoped to a single
// operation call. Callers release it on every exit path.
func (c *core[T]) scratch(size uint64) (device.Buffer, error) {
	buf, err := c.rt.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("engine: scratch allocation of %d bytes: %w", size, err)
	}
	return buf, nil
}
