package hostdev

import (
	"math"

	"github.com/cubit-ml/cubit/device"
)

// Host vendor status codes, mirroring the convention that zero means
// success and anything else leaves outputs undefined.
const (
	statusOK     = device.StatusOK
	statusBadDim = device.Status(7)
)

// hostBlas is the reference vendor entrypoint table: plain Go loops over
// host buffers, with the vendor's argument and status conventions.
type hostBlas[T elemT] struct{}

var _ device.Blas[float32] = hostBlas[float32]{}

func (hostBlas[T]) Swap(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs, ys := elems[T](x), elems[T](y)
	for i := 0; i < n; i++ {
		ix, iy := offX+i*incX, offY+i*incY
		xs[ix], ys[iy] = ys[iy], xs[ix]
	}
	return statusOK
}

func (hostBlas[T]) Copy(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs, ys := elems[T](x), elems[T](y)
	for i := 0; i < n; i++ {
		ys[offY+i*incY] = xs[offX+i*incX]
	}
	return statusOK
}

func (hostBlas[T]) Dot(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, res *T) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs, ys := elems[T](x), elems[T](y)
	var acc float64
	for i := 0; i < n; i++ {
		acc += float64(xs[offX+i*incX]) * float64(ys[offY+i*incY])
	}
	*res = T(acc)
	return statusOK
}

func (hostBlas[T]) Nrm2(q device.Queue, n int, x device.Buffer, offX, incX int, res *T) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs := elems[T](x)
	var acc float64
	for i := 0; i < n; i++ {
		v := float64(xs[offX+i*incX])
		acc += v * v
	}
	*res = T(math.Sqrt(acc))
	return statusOK
}

func (hostBlas[T]) Asum(q device.Queue, n int, x device.Buffer, offX, incX int, res *T) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs := elems[T](x)
	var acc float64
	for i := 0; i < n; i++ {
		acc += math.Abs(float64(xs[offX+i*incX]))
	}
	*res = T(acc)
	return statusOK
}

func (hostBlas[T]) Iamax(q device.Queue, n int, x device.Buffer, offX, incX int, res *int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs := elems[T](x)
	best, bestAbs := 0, math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := math.Abs(float64(xs[offX+i*incX])); v > bestAbs {
			best, bestAbs = i+1, v
		}
	}
	*res = best
	return statusOK
}

func (hostBlas[T]) Iamin(q device.Queue, n int, x device.Buffer, offX, incX int, res *int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs := elems[T](x)
	best, bestAbs := 0, math.Inf(1)
	for i := 0; i < n; i++ {
		if v := math.Abs(float64(xs[offX+i*incX])); v < bestAbs {
			best, bestAbs = i+1, v
		}
	}
	*res = best
	return statusOK
}

func (hostBlas[T]) Rot(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, c, s T) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs, ys := elems[T](x), elems[T](y)
	for i := 0; i < n; i++ {
		ix, iy := offX+i*incX, offY+i*incY
		xi, yi := xs[ix], ys[iy]
		xs[ix] = c*xi + s*yi
		ys[iy] = c*yi - s*xi
	}
	return statusOK
}

func (hostBlas[T]) Rotm(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, param device.Buffer, offP int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	ps := elems[T](param)
	flag := float64(ps[offP])
	var h11, h12, h21, h22 float64
	switch flag {
	case -2:
		return statusOK
	case -1:
		h11, h21, h12, h22 = float64(ps[offP+1]), float64(ps[offP+2]), float64(ps[offP+3]), float64(ps[offP+4])
	case 0:
		h11, h21, h12, h22 = 1, float64(ps[offP+2]), float64(ps[offP+3]), 1
	case 1:
		h11, h21, h12, h22 = float64(ps[offP+1]), -1, 1, float64(ps[offP+4])
	default:
		return device.Status(3)
	}
	xs, ys := elems[T](x), elems[T](y)
	for i := 0; i < n; i++ {
		ix, iy := offX+i*incX, offY+i*incY
		xi, yi := float64(xs[ix]), float64(ys[iy])
		xs[ix] = T(h11*xi + h12*yi)
		ys[iy] = T(h21*xi + h22*yi)
	}
	return statusOK
}

func (hostBlas[T]) Scal(q device.Queue, n int, alpha T, x device.Buffer, offX, incX int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs := elems[T](x)
	for i := 0; i < n; i++ {
		xs[offX+i*incX] *= alpha
	}
	return statusOK
}

func (hostBlas[T]) Axpy(q device.Queue, n int, alpha T, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	xs, ys := elems[T](x), elems[T](y)
	for i := 0; i < n; i++ {
		ys[offY+i*incY] += alpha * xs[offX+i*incX]
	}
	return statusOK
}

// geAt reads op(A)(r, c) from a column-major matrix.
func geAt[T elemT](a []T, off, lda, r, c int, trans device.Transpose) T {
	if trans == device.NoTrans {
		return a[off+c*lda+r]
	}
	return a[off+r*lda+c]
}

func (hostBlas[T]) Gemv(q device.Queue, trans device.Transpose, m, n int, alpha T, a device.Buffer, offA, lda int, x device.Buffer, offX, incX int, beta T, y device.Buffer, offY, incY int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	as, xs, ys := elems[T](a), elems[T](x), elems[T](y)
	rows, cols := m, n
	if trans == device.Trans {
		rows, cols = n, m
	}
	for r := 0; r < rows; r++ {
		var acc float64
		for c := 0; c < cols; c++ {
			acc += float64(geAt(as, offA, lda, r, c, trans)) * float64(xs[offX+c*incX])
		}
		iy := offY + r*incY
		ys[iy] = alpha*T(acc) + beta*ys[iy]
	}
	return statusOK
}

func (hostBlas[T]) Ger(q device.Queue, m, n int, alpha T, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, a device.Buffer, offA, lda int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	as, xs, ys := elems[T](a), elems[T](x), elems[T](y)
	for c := 0; c < n; c++ {
		yv := ys[offY+c*incY]
		for r := 0; r < m; r++ {
			as[offA+c*lda+r] += alpha * xs[offX+r*incX] * yv
		}
	}
	return statusOK
}

func (hostBlas[T]) Gemm(q device.Queue, transA, transB device.Transpose, m, n, k int, alpha T, a device.Buffer, offA, lda int, b device.Buffer, offB, ldb int, beta T, c device.Buffer, offC, ldc int) device.Status {
	if m < 0 || n < 0 || k < 0 {
		return statusBadDim
	}
	as, bs, cs := elems[T](a), elems[T](b), elems[T](c)
	for col := 0; col < n; col++ {
		for row := 0; row < m; row++ {
			var acc float64
			for kk := 0; kk < k; kk++ {
				acc += float64(geAt(as, offA, lda, row, kk, transA)) * float64(geAt(bs, offB, ldb, kk, col, transB))
			}
			ic := offC + col*ldc + row
			cs[ic] = alpha*T(acc) + beta*cs[ic]
		}
	}
	return statusOK
}

// triAt reads the (r, c) entry of a stored triangular matrix, honoring
// fill mode and unit diagonal; entries outside the stored half are zero.
func triAt[T elemT](a []T, off, lda, r, c int, uplo device.Uplo, diag device.Diag) T {
	if r == c {
		if diag == device.Unit {
			return 1
		}
		return a[off+c*lda+r]
	}
	if (uplo == device.Upper && c > r) || (uplo == device.Lower && c < r) {
		return a[off+c*lda+r]
	}
	return 0
}

// opTriAt reads op(A)(r, c) of a stored triangular matrix.
func opTriAt[T elemT](a []T, off, lda, r, c int, uplo device.Uplo, trans device.Transpose, diag device.Diag) T {
	if trans == device.Trans {
		r, c = c, r
	}
	return triAt(a, off, lda, r, c, uplo, diag)
}

func (hostBlas[T]) Trmv(q device.Queue, uplo device.Uplo, trans device.Transpose, diag device.Diag, n int, a device.Buffer, offA, lda int, x device.Buffer, offX, incX int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	as, xs := elems[T](a), elems[T](x)
	tmp := make([]float64, n)
	for r := 0; r < n; r++ {
		var acc float64
		for c := 0; c < n; c++ {
			acc += float64(opTriAt(as, offA, lda, r, c, uplo, trans, diag)) * float64(xs[offX+c*incX])
		}
		tmp[r] = acc
	}
	for r := 0; r < n; r++ {
		xs[offX+r*incX] = T(tmp[r])
	}
	return statusOK
}

func (hostBlas[T]) Trmm(q device.Queue, side device.Side, uplo device.Uplo, trans device.Transpose, diag device.Diag, m, n int, alpha T, a device.Buffer, offA, lda int, b device.Buffer, offB, ldb int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	as, bs := elems[T](a), elems[T](b)
	tmp := make([]float64, m*n)
	for col := 0; col < n; col++ {
		for row := 0; row < m; row++ {
			var acc float64
			if side == device.Left {
				for kk := 0; kk < m; kk++ {
					acc += float64(opTriAt(as, offA, lda, row, kk, uplo, trans, diag)) * float64(bs[offB+col*ldb+kk])
				}
			} else {
				for kk := 0; kk < n; kk++ {
					acc += float64(bs[offB+kk*ldb+row]) * float64(opTriAt(as, offA, lda, kk, col, uplo, trans, diag))
				}
			}
			tmp[col*m+row] = acc
		}
	}
	for col := 0; col < n; col++ {
		for row := 0; row < m; row++ {
			bs[offB+col*ldb+row] = alpha * T(tmp[col*m+row])
		}
	}
	return statusOK
}
