// Package device defines the contracts between the dispatch engines and
// the accelerator runtime they drive: buffers, an ordered command queue,
// a module of named precompiled kernels, and the vendor BLAS entrypoint
// table. Concrete runtimes live in the hostdev and webgpudev subpackages.
package device

import "github.com/cubit-ml/cubit/layout"

// Elem constrains the element types the engines are instantiated for.
type Elem interface {
	~float32 | ~float64
}

// Buffer is an opaque device allocation. Lifetime is managed by whoever
// allocated it; the engines never free operand buffers, only the scratch
// buffers they allocate themselves.
type Buffer interface {
	// Size returns the allocation size in bytes.
	Size() uint64
	// Release frees the allocation. Safe to call once.
	Release()
}

// Queue is an ordered command queue. Work enqueued through one queue
// executes in enqueue order; Read and Write are the synchronization
// points that drain previously enqueued work.
type Queue interface {
	// Read blocks until prior work on the queue has completed, then
	// copies len(dst) bytes out of buf starting at byte offset off.
	Read(buf Buffer, off uint64, dst []byte) error
	// Write copies len(src) bytes into buf starting at byte offset off.
	Write(buf Buffer, off uint64, src []byte) error
}

// Grid sizes a kernel launch: X and Y are workgroup counts, BlockX and
// BlockY the workgroup dimensions.
type Grid struct {
	X, Y           int
	BlockX, BlockY int
}

// Grid1D sizes a one-dimensional launch covering n elements.
func Grid1D(n, block int) Grid {
	return Grid{X: ceilDiv(n, block), Y: 1, BlockX: block, BlockY: 1}
}

// Grid2D sizes a two-dimensional launch covering an nx by ny cell range.
func Grid2D(nx, ny, blockX, blockY int) Grid {
	return Grid{X: ceilDiv(nx, blockX), Y: ceilDiv(ny, blockY), BlockX: blockX, BlockY: blockY}
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// Kernel is one precompiled device function.
type Kernel interface {
	// Launch enqueues the kernel. Args carry Buffers and scalar values
	// (int, or the module's element type) in the kernel's declared
	// parameter order; element offsets and strides are passed as plain
	// ints and resolved inside the kernel.
	Launch(q Queue, grid Grid, args ...any) error
}

// Module is a compiled set of kernels addressable by name. A runtime that
// cannot supply a requested kernel returns ErrKernelNotFound, which the
// engines surface as an unsupported capability.
type Module interface {
	Kernel(name string) (Kernel, error)
	// Release frees the module. Safe to call once.
	Release()
}

// Runtime bundles what an engine set needs from the device side. The
// engines treat it as read-only after construction.
type Runtime interface {
	Queue() Queue
	// Module returns the kernel module compiled for the given element
	// type.
	Module(dt layout.DType) (Module, error)
	// Alloc returns a zero-initialized device buffer of the given byte
	// size, used for per-operation scratch (equality flags, reduction
	// accumulators).
	Alloc(size uint64) (Buffer, error)
	Close() error
}
