package engine

import (
	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

// Vector is a strided view over a device buffer. The buffer is owned
// elsewhere; the engines only read the descriptor and enqueue work
// against the buffer.
type Vector[T device.Elem] struct {
	// Dim is the logical element count. A zero-dimensional vector makes
	// every operation a no-op returning its identity value.
	Dim int
	// Off is the element distance from the buffer start to the first
	// logical entry.
	Off int
	// Inc is the element distance between consecutive logical entries.
	Inc int
	// Data is the backing device buffer.
	Data device.Buffer
}

// NewVector builds a packed view (offset 0, stride 1) of n elements.
func NewVector[T device.Elem](n int, buf device.Buffer) Vector[T] {
	return Vector[T]{Dim: n, Off: 0, Inc: 1, Data: buf}
}

// General is a dense rows x cols matrix view.
type General[T device.Elem] struct {
	Rows, Cols int
	Order      layout.Order
	Stor       layout.Storage
	// Off is the element distance from the buffer start to element (0,0).
	Off  int
	Data device.Buffer
}

// NewGeneral builds a packed matrix view in the given order.
func NewGeneral[T device.Elem](order layout.Order, rows, cols int, buf device.Buffer) General[T] {
	return General[T]{
		Rows: rows, Cols: cols,
		Order: order,
		Stor:  layout.FullStorage(order, rows, cols),
		Data:  buf,
	}
}

// NewGeneralStrided builds a matrix view whose minor runs are ld elements
// apart.
func NewGeneralStrided[T device.Elem](order layout.Order, rows, cols, ld int, buf device.Buffer) General[T] {
	return General[T]{
		Rows: rows, Cols: cols,
		Order: order,
		Stor:  layout.StridedStorage(order, rows, cols, ld),
		Data:  buf,
	}
}

// Dim returns the logical element count rows*cols.
func (a General[T]) Dim() int {
	return a.Rows * a.Cols
}

// Triangular is a square matrix view of which only the Region-designated
// half is meaningful.
type Triangular[T device.Elem] struct {
	N     int
	Order layout.Order
	Stor  layout.Storage
	Reg   layout.Region
	Off   int
	Data  device.Buffer
}

// NewTriangular builds a packed n x n triangular view.
func NewTriangular[T device.Elem](order layout.Order, n int, reg layout.Region, buf device.Buffer) Triangular[T] {
	return Triangular[T]{
		N:     n,
		Order: order,
		Stor:  layout.FullStorage(order, n, n),
		Reg:   reg,
		Data:  buf,
	}
}

// storageSign returns the populated-half sign translated into a's storage
// frame: kernels index storage cells, so a row-major matrix flips the
// logical sign.
func (a Triangular[T]) storageSign() int {
	if a.Order.IsColMajor() {
		return a.Reg.Sign()
	}
	return -a.Reg.Sign()
}
