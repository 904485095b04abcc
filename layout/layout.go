// Package layout describes how dense and triangular matrices are laid out
// in device memory: storage order, leading dimensions, gapless detection,
// and triangular region encoding. The engine package consults these
// descriptors to choose between vendor calls and custom kernel launches.
package layout

// Order tags a matrix as row-major or column-major.
//
// Two matrices with equal Order can be combined by a vendor routine as-is;
// when the orders differ, the vendor's transpose flag substitutes for
// physically reordering the data.
type Order int

// Supported storage orders.
const (
	ColMajor Order = iota
	RowMajor
)

// IsColMajor reports whether o matches the vendor's canonical order.
func (o Order) IsColMajor() bool {
	return o == ColMajor
}

// String returns a human-readable order name.
func (o Order) String() string {
	switch o {
	case ColMajor:
		return "column-major"
	case RowMajor:
		return "row-major"
	default:
		return "unknown"
	}
}

// Storage describes one matrix's physical extents.
//
// Minor and Major are the two extents in storage order, not row/column
// order: Minor is the extent along the contiguous direction (rows for a
// column-major matrix, columns for a row-major one) and Major is the
// other. Ld is the leading dimension, the element distance between
// consecutive minor runs. Gapless is true when Ld == Minor, i.e. the
// matrix occupies one contiguous block with no padding; many vendor
// routines assume exactly that.
type Storage struct {
	Minor   int
	Major   int
	Ld      int
	Gapless bool
}

// FullStorage builds the descriptor of a packed rows x cols matrix in the
// given order.
func FullStorage(order Order, rows, cols int) Storage {
	minor, major := rows, cols
	if !order.IsColMajor() {
		minor, major = cols, rows
	}
	return Storage{Minor: minor, Major: major, Ld: minor, Gapless: true}
}

// StridedStorage builds the descriptor of a rows x cols matrix whose minor
// runs are ld elements apart. Gapless is derived, never caller-asserted.
func StridedStorage(order Order, rows, cols, ld int) Storage {
	minor, major := rows, cols
	if !order.IsColMajor() {
		minor, major = cols, rows
	}
	return Storage{Minor: minor, Major: major, Ld: ld, Gapless: ld == minor}
}

// Region describes the populated half of a triangular or symmetric-packed
// square matrix.
type Region struct {
	// Upper is true when the populated half lies above the diagonal.
	Upper bool
	// Unit is true when the diagonal is implicitly all ones; stored
	// diagonal values are then neither read nor written.
	Unit bool
}

// Sign returns the populated-half sign convention handed to kernels:
// +1 when the populated region is above the diagonal, -1 when below.
// A storage cell at logical (row, col) is populated iff
// Sign()*(col-row) >= UnitShift().
func (r Region) Sign() int {
	if r.Upper {
		return 1
	}
	return -1
}

// UnitShift returns 1 when the diagonal is implicit (excluded from the
// populated region), 0 otherwise.
func (r Region) UnitShift() int {
	if r.Unit {
		return 1
	}
	return 0
}

// Flip returns the region as seen through a transposed view of the matrix.
func (r Region) Flip() Region {
	return Region{Upper: !r.Upper, Unit: r.Unit}
}

// DType identifies an element type supported by the engines.
type DType int

// Supported element widths.
const (
	Float32 DType = iota
	Float64
)

// Size returns the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// String returns a human-readable dtype name.
func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Accessor converts between element and byte addressing for one element
// type. Engines use it to size scratch buffers and to turn element offsets
// into the byte offsets device APIs expect.
type Accessor struct {
	DType DType
}

// ElemSize returns the element width in bytes.
func (a Accessor) ElemSize() int {
	return a.DType.Size()
}

// ByteOffset converts an element offset into a byte offset.
func (a Accessor) ByteOffset(elems int) uint64 {
	return uint64(elems) * uint64(a.DType.Size())
}

// Zero returns n elements worth of zero-initialized bytes, used to reset
// scratch device buffers such as equality flags.
func (a Accessor) Zero(n int) []byte {
	return make([]byte, a.ByteOffset(n))
}
