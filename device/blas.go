package device

// Vendor enumerants, mirrored one-to-one onto whatever the concrete BLAS
// binding uses.

// Transpose selects the op(X) applied to a matrix operand.
type Transpose int

// Transpose values.
const (
	NoTrans Transpose = iota
	Trans
)

// Uplo names the stored triangular half, in the vendor's column-major
// frame.
type Uplo int

// Uplo values.
const (
	Lower Uplo = iota
	Upper
)

// Diag tells the vendor whether the diagonal is implicitly unit-valued.
type Diag int

// Diag values.
const (
	NonUnit Diag = iota
	Unit
)

// Side selects which side a triangular factor multiplies from.
type Side int

// Side values.
const (
	Left Side = iota
	Right
)

// Status is a vendor status code. Zero means success and the documented
// mutation happened; anything else means failure with output buffers in
// an undefined state. Callers must not assume partial completion.
type Status int

// StatusOK is the vendor success code.
const StatusOK Status = 0

// Blas is the vendor entrypoint table for one element width. Every call
// enqueues onto q and returns the vendor status; scalar results are
// written through the out pointer after an implicit queue drain.
//
// Dimensions, offsets, strides and leading dimensions are in elements.
// Index results (Iamax, Iamin) follow the vendor's 1-based convention;
// the engines convert.
type Blas[T Elem] interface {
	Swap(q Queue, n int, x Buffer, offX, incX int, y Buffer, offY, incY int) Status
	Copy(q Queue, n int, x Buffer, offX, incX int, y Buffer, offY, incY int) Status
	Dot(q Queue, n int, x Buffer, offX, incX int, y Buffer, offY, incY int, res *T) Status
	Nrm2(q Queue, n int, x Buffer, offX, incX int, res *T) Status
	Asum(q Queue, n int, x Buffer, offX, incX int, res *T) Status
	Iamax(q Queue, n int, x Buffer, offX, incX int, res *int) Status
	Iamin(q Queue, n int, x Buffer, offX, incX int, res *int) Status
	Rot(q Queue, n int, x Buffer, offX, incX int, y Buffer, offY, incY int, c, s T) Status
	Rotm(q Queue, n int, x Buffer, offX, incX int, y Buffer, offY, incY int, param Buffer, offP int) Status
	Scal(q Queue, n int, alpha T, x Buffer, offX, incX int) Status
	Axpy(q Queue, n int, alpha T, x Buffer, offX, incX int, y Buffer, offY, incY int) Status

	Gemv(q Queue, trans Transpose, m, n int, alpha T, a Buffer, offA, lda int,
		x Buffer, offX, incX int, beta T, y Buffer, offY, incY int) Status
	Ger(q Queue, m, n int, alpha T, x Buffer, offX, incX int,
		y Buffer, offY, incY int, a Buffer, offA, lda int) Status
	Gemm(q Queue, transA, transB Transpose, m, n, k int, alpha T,
		a Buffer, offA, lda int, b Buffer, offB, ldb int,
		beta T, c Buffer, offC, ldc int) Status

	Trmv(q Queue, uplo Uplo, trans Transpose, diag Diag, n int,
		a Buffer, offA, lda int, x Buffer, offX, incX int) Status
	Trmm(q Queue, side Side, uplo Uplo, trans Transpose, diag Diag, m, n int,
		alpha T, a Buffer, offA, lda int, b Buffer, offB, ldb int) Status
}
