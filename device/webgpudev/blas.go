package webgpudev

import (
	"encoding/binary"
	"math"

	"github.com/cubit-ml/cubit/device"
)

// Vendor status codes reported by the shader-backed table.
const (
	statusOK          = device.StatusOK
	statusAllocFailed = device.Status(3)
	statusBadDim      = device.Status(7)
	statusExecFailed  = device.Status(13)
)

// sumBlock matches the per-partial block size of the reduction shaders.
const sumBlock = 1024

// shaderBlas is the vendor entrypoint table, implemented with WGSL
// shaders of the same module the custom kernels come from. Scalar
// results ride through a read-back, which drains the queue as the Blas
// contract requires.
type shaderBlas struct {
	rt  *Runtime
	mod *module
}

func (b *shaderBlas) run(name string, grid device.Grid, args ...any) device.Status {
	k, err := b.mod.Kernel(name)
	if err != nil {
		return statusExecFailed
	}
	if err := k.Launch(b.rt.Queue(), grid, args...); err != nil {
		return statusExecFailed
	}
	return statusOK
}

func (b *shaderBlas) grid1D(n int) device.Grid {
	return device.Grid1D(n, 256)
}

func (b *shaderBlas) grid2D(m, n int) device.Grid {
	return device.Grid2D(m, n, 16, 16)
}

// sumPartials reads the per-block partials back and folds them on the
// host in wider precision.
func (b *shaderBlas) sumPartials(acc device.Buffer, blocks int) (float64, bool) {
	raw := make([]byte, 4*blocks)
	if err := b.rt.Queue().Read(acc, 0, raw); err != nil {
		return 0, false
	}
	var s float64
	for i := 0; i < blocks; i++ {
		s += float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:])))
	}
	return s, true
}

func (b *shaderBlas) reduce(name string, n int, args ...any) (float64, device.Status) {
	blocks := (n + sumBlock - 1) / sumBlock
	acc, err := b.rt.Alloc(uint64(4 * blocks))
	if err != nil {
		return 0, statusAllocFailed
	}
	defer acc.Release()
	if st := b.run(name, b.grid1D(blocks), append(args, acc)...); st != statusOK {
		return 0, st
	}
	s, ok := b.sumPartials(acc, blocks)
	if !ok {
		return 0, statusExecFailed
	}
	return s, statusOK
}

func (b *shaderBlas) Swap(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("vector_swap", b.grid1D(n), n, x, offX, incX, y, offY, incY)
}

func (b *shaderBlas) Copy(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("vector_copy", b.grid1D(n), n, x, offX, incX, y, offY, incY)
}

func (b *shaderBlas) Dot(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, res *float32) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		*res = 0
		return statusOK
	}
	s, st := b.reduce("blas_dot_block", n, n, x, offX, incX, y, offY, incY)
	if st != statusOK {
		return st
	}
	*res = float32(s)
	return statusOK
}

func (b *shaderBlas) Nrm2(q device.Queue, n int, x device.Buffer, offX, incX int, res *float32) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		*res = 0
		return statusOK
	}
	s, st := b.reduce("blas_ssq_block", n, n, x, offX, incX)
	if st != statusOK {
		return st
	}
	*res = float32(math.Sqrt(s))
	return statusOK
}

func (b *shaderBlas) Asum(q device.Queue, n int, x device.Buffer, offX, incX int, res *float32) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		*res = 0
		return statusOK
	}
	s, st := b.reduce("blas_asum_block", n, n, x, offX, incX)
	if st != statusOK {
		return st
	}
	*res = float32(s)
	return statusOK
}

func (b *shaderBlas) extremeIndex(name string, n int, x device.Buffer, offX, incX int, res *int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		*res = 0
		return statusOK
	}
	idx, err := b.rt.Alloc(4)
	if err != nil {
		return statusAllocFailed
	}
	defer idx.Release()
	if st := b.run(name, device.Grid{X: 1, Y: 1, BlockX: 1, BlockY: 1}, n, x, offX, incX, idx); st != statusOK {
		return st
	}
	var raw [4]byte
	if err := b.rt.Queue().Read(idx, 0, raw[:]); err != nil {
		return statusExecFailed
	}
	*res = int(int32(binary.LittleEndian.Uint32(raw[:])))
	return statusOK
}

func (b *shaderBlas) Iamax(q device.Queue, n int, x device.Buffer, offX, incX int, res *int) device.Status {
	return b.extremeIndex("blas_iamax", n, x, offX, incX, res)
}

func (b *shaderBlas) Iamin(q device.Queue, n int, x device.Buffer, offX, incX int, res *int) device.Status {
	return b.extremeIndex("blas_iamin", n, x, offX, incX, res)
}

func (b *shaderBlas) Rot(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, c, s float32) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("blas_rot", b.grid1D(n), n, x, offX, incX, y, offY, incY, c, s)
}

func (b *shaderBlas) Rotm(q device.Queue, n int, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, param device.Buffer, offP int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("blas_rotm", b.grid1D(n), n, x, offX, incX, y, offY, incY, param, offP)
}

func (b *shaderBlas) Scal(q device.Queue, n int, alpha float32, x device.Buffer, offX, incX int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("blas_scal", b.grid1D(n), n, alpha, x, offX, incX)
}

func (b *shaderBlas) Axpy(q device.Queue, n int, alpha float32, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	return b.run("vector_axpby", b.grid1D(n), n, alpha, x, offX, incX, float32(1), y, offY, incY)
}

func (b *shaderBlas) Gemv(q device.Queue, trans device.Transpose, m, n int, alpha float32, a device.Buffer, offA, lda int, x device.Buffer, offX, incX int, beta float32, y device.Buffer, offY, incY int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	rows := m
	if trans == device.Trans {
		rows = n
	}
	if rows == 0 {
		return statusOK
	}
	return b.run("blas_gemv", b.grid1D(rows),
		int(trans), m, n, alpha, a, offA, lda, x, offX, incX, beta, y, offY, incY)
}

func (b *shaderBlas) Ger(q device.Queue, m, n int, alpha float32, x device.Buffer, offX, incX int, y device.Buffer, offY, incY int, a device.Buffer, offA, lda int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	if m == 0 || n == 0 {
		return statusOK
	}
	return b.run("blas_ger", b.grid2D(m, n),
		m, n, alpha, x, offX, incX, y, offY, incY, a, offA, lda)
}

func (b *shaderBlas) Gemm(q device.Queue, transA, transB device.Transpose, m, n, k int, alpha float32, a device.Buffer, offA, lda int, bb device.Buffer, offB, ldb int, beta float32, c device.Buffer, offC, ldc int) device.Status {
	if m < 0 || n < 0 || k < 0 {
		return statusBadDim
	}
	if m == 0 || n == 0 {
		return statusOK
	}
	return b.run("blas_gemm", b.grid2D(m, n),
		int(transA), int(transB), m, n, k, alpha,
		a, offA, lda, bb, offB, ldb, beta, c, offC, ldc)
}

func (b *shaderBlas) Trmv(q device.Queue, uplo device.Uplo, trans device.Transpose, diag device.Diag, n int, a device.Buffer, offA, lda int, x device.Buffer, offX, incX int) device.Status {
	if n < 0 {
		return statusBadDim
	}
	if n == 0 {
		return statusOK
	}
	// The product lands in gapless scratch first; writing x in place
	// would race its own reads.
	scratch, err := b.rt.Alloc(uint64(4 * n))
	if err != nil {
		return statusAllocFailed
	}
	defer scratch.Release()
	if st := b.run("blas_trmv", b.grid1D(n),
		int(uplo), int(trans), int(diag), n, a, offA, lda, x, offX, incX, scratch); st != statusOK {
		return st
	}
	return b.run("vector_copy", b.grid1D(n), n, scratch, 0, 1, x, offX, incX)
}

func (b *shaderBlas) Trmm(q device.Queue, side device.Side, uplo device.Uplo, trans device.Transpose, diag device.Diag, m, n int, alpha float32, a device.Buffer, offA, lda int, bb device.Buffer, offB, ldb int) device.Status {
	if m < 0 || n < 0 {
		return statusBadDim
	}
	if m == 0 || n == 0 {
		return statusOK
	}
	scratch, err := b.rt.Alloc(uint64(4 * m * n))
	if err != nil {
		return statusAllocFailed
	}
	defer scratch.Release()
	if st := b.run("blas_trmm", b.grid2D(m, n),
		int(side), int(uplo), int(trans), int(diag), m, n, alpha,
		a, offA, lda, bb, offB, ldb, scratch); st != statusOK {
		return st
	}
	return b.run("ge_copy_no_transp", b.grid2D(m, n), m, n, scratch, 0, m, bb, offB, ldb)
}

var _ device.Blas[float32] = (*shaderBlas)(nil)
