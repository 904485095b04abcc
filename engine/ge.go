package engine

import (
	"github.com/cubit-ml/cubit/device"
)

// vectorizable reports whether the operand pair can be handed to a
// unit-stride vendor call as one flat vector: same storage order and no
// padding in either operand.
func vectorizable[T device.Elem](a, b General[T]) bool {
	return a.Order == b.Order && a.Stor.Gapless && b.Stor.Gapless
}

// Swap exchanges a and b. Gapless same-order pairs go through a flat
// vendor swap; anything else runs a 2D kernel that honors each operand's
// own leading dimension.
func (g *GEOps[T]) Swap(a, b General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if vectorizable(a, b) {
		return vendorCall("swap", g.bl.Swap(g.q, a.Dim(), a.Data, a.Off, 1, b.Data, b.Off, 1))
	}
	return g.launch2D(geSwapKernels.pick(a.Order == b.Order), a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld)
}

// Copy copies a into b.
func (g *GEOps[T]) Copy(a, b General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if vectorizable(a, b) {
		return vendorCall("copy", g.bl.Copy(g.q, a.Dim(), a.Data, a.Off, 1, b.Data, b.Off, 1))
	}
	return g.launch2D(geCopyKernels.pick(a.Order == b.Order), a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld)
}

// Scal scales a by alpha.
func (g *GEOps[T]) Scal(alpha T, a General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if a.Stor.Gapless {
		return vendorCall("scal", g.bl.Scal(g.q, a.Dim(), alpha, a.Data, a.Off, 1))
	}
	return g.launch2D("ge_scal", a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, alpha, a.Data, a.Off, a.Stor.Ld)
}

// Axpy computes b <- alpha*a + b.
func (g *GEOps[T]) Axpy(alpha T, a, b General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if vectorizable(a, b) {
		return vendorCall("axpy", g.bl.Axpy(g.q, a.Dim(), alpha, a.Data, a.Off, 1, b.Data, b.Off, 1))
	}
	return g.axpbyKernel(alpha, a, 1, b)
}

// Axpby computes b <- alpha*a + beta*b through the add-scaled-matrices
// kernel; the gapless fast path scales then accumulates with vendor
// calls.
func (g *GEOps[T]) Axpby(alpha T, a General[T], beta T, b General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if vectorizable(a, b) {
		if err := vendorCall("scal", g.bl.Scal(g.q, b.Dim(), beta, b.Data, b.Off, 1)); err != nil {
			return err
		}
		return vendorCall("axpy", g.bl.Axpy(g.q, a.Dim(), alpha, a.Data, a.Off, 1, b.Data, b.Off, 1))
	}
	return g.axpbyKernel(alpha, a, beta, b)
}

func (g *GEOps[T]) axpbyKernel(alpha T, a General[T], beta T, b General[T]) error {
	return g.launch2D(geAxpbyKernels.pick(a.Order == b.Order), a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, alpha, a.Data, a.Off, a.Stor.Ld, beta, b.Data, b.Off, b.Stor.Ld)
}

// Dot returns the Frobenius inner product of a and b. Only gapless
// same-order pairs have an execution path; no strided 2D reduction
// exists, so anything else is a deliberate capability gap.
func (g *GEOps[T]) Dot(a, b General[T]) (T, error) {
	if a.Dim() == 0 {
		return 0, nil
	}
	if !vectorizable(a, b) {
		return 0, unsupported("ge dot")
	}
	var res T
	if err := vendorCall("dot", g.bl.Dot(g.q, a.Dim(), a.Data, a.Off, 1, b.Data, b.Off, 1, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Nrm2 returns the Frobenius norm of a. Requires gapless storage.
func (g *GEOps[T]) Nrm2(a General[T]) (T, error) {
	if a.Dim() == 0 {
		return 0, nil
	}
	if !a.Stor.Gapless {
		return 0, unsupported("ge nrm2")
	}
	var res T
	if err := vendorCall("nrm2", g.bl.Nrm2(g.q, a.Dim(), a.Data, a.Off, 1, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Asum returns the absolute sum over all entries. Requires gapless
// storage.
func (g *GEOps[T]) Asum(a General[T]) (T, error) {
	if a.Dim() == 0 {
		return 0, nil
	}
	if !a.Stor.Gapless {
		return 0, unsupported("ge asum")
	}
	var res T
	if err := vendorCall("asum", g.bl.Asum(g.q, a.Dim(), a.Data, a.Off, 1, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Nrm1 signals that the induced 1-norm has no implementation path here.
func (g *GEOps[T]) Nrm1(a General[T]) (T, error) {
	return 0, unsupported("ge nrm1")
}

// NrmI signals that the induced infinity norm has no implementation path
// here.
func (g *GEOps[T]) NrmI(a General[T]) (T, error) {
	return 0, unsupported("ge nrmi")
}

// Fill sets every entry of a to alpha.
func (g *GEOps[T]) Fill(alpha T, a General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	return g.launch2D("ge_set", a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, alpha, a.Data, a.Off, a.Stor.Ld)
}

// Equal reports whether a and b hold identical logical values, via the
// same device-flag protocol as vector equality but over a 2D grid.
func (g *GEOps[T]) Equal(a, b General[T]) (bool, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false, nil
	}
	if a.Dim() == 0 {
		return true, nil
	}
	flag, err := g.scratch(4)
	if err != nil {
		return false, err
	}
	defer flag.Release()
	if err := g.launch2D(geEqualsKernels.pick(a.Order == b.Order), a.Stor.Minor, a.Stor.Major,
		a.Stor.Minor, a.Stor.Major, a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld, flag); err != nil {
		return false, err
	}
	raw, err := g.readFlag("ge equals", flag)
	if err != nil {
		return false, err
	}
	return raw == 0, nil
}

// Mv computes y <- alpha*A*x + beta*y. Always a vendor call; A's
// orientation is absorbed by the transpose flag instead of reordering
// data. The in-place form (x aliasing y) has no path and is rejected
// up front.
func (g *GEOps[T]) Mv(alpha T, a General[T], x Vector[T], beta T, y Vector[T]) error {
	if x.Data == y.Data {
		return &device.UsageError{Op: "ge mv", Msg: "in-place matrix-vector multiply is not supported"}
	}
	if a.Dim() == 0 {
		return nil
	}
	if a.Order.IsColMajor() {
		return vendorCall("gemv", g.bl.Gemv(g.q, device.NoTrans, a.Rows, a.Cols, alpha,
			a.Data, a.Off, a.Stor.Ld, x.Data, x.Off, x.Inc, beta, y.Data, y.Off, y.Inc))
	}
	// Row-major A is the vendor's cols x rows matrix; transposing it
	// restores the logical operand.
	return vendorCall("gemv", g.bl.Gemv(g.q, device.Trans, a.Cols, a.Rows, alpha,
		a.Data, a.Off, a.Stor.Ld, x.Data, x.Off, x.Inc, beta, y.Data, y.Off, y.Inc))
}

// Rk applies the rank-1 update A <- A + alpha*x*y^T.
func (g *GEOps[T]) Rk(alpha T, x, y Vector[T], a General[T]) error {
	if a.Dim() == 0 {
		return nil
	}
	if a.Order.IsColMajor() {
		return vendorCall("ger", g.bl.Ger(g.q, a.Rows, a.Cols, alpha,
			x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, a.Data, a.Off, a.Stor.Ld))
	}
	// In the vendor's frame the row-major A is A^T, and
	// A^T + alpha*y*x^T is the same update.
	return vendorCall("ger", g.bl.Ger(g.q, a.Cols, a.Rows, alpha,
		y.Data, y.Off, y.Inc, x.Data, x.Off, x.Inc, a.Data, a.Off, a.Stor.Ld))
}

// Mm computes c <- alpha*a*b + beta*c. The canonical frame is c's order:
// in a column-major frame the operands keep their roles, in a row-major
// frame the product is computed as the transposed identity
// c^T = alpha*b^T*a^T. Either way each operand whose order differs from
// the frame is declared transposed to the vendor instead of being
// reordered, so one implementation serves all four orientation
// combinations of a and b.
func (g *GEOps[T]) Mm(alpha T, a, b General[T], beta T, c General[T]) error {
	if a.Rows != c.Rows || b.Cols != c.Cols || a.Cols != b.Rows {
		return &device.UsageError{Op: "ge mm", Msg: "operand dimensions do not chain"}
	}
	if c.Dim() == 0 {
		return nil
	}
	k := a.Cols
	if c.Order.IsColMajor() {
		return vendorCall("gemm", g.bl.Gemm(g.q,
			transOf(a.Order == c.Order), transOf(b.Order == c.Order),
			c.Rows, c.Cols, k, alpha,
			a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld,
			beta, c.Data, c.Off, c.Stor.Ld))
	}
	return vendorCall("gemm", g.bl.Gemm(g.q,
		transOf(b.Order == c.Order), transOf(a.Order == c.Order),
		c.Cols, c.Rows, k, alpha,
		b.Data, b.Off, b.Stor.Ld, a.Data, a.Off, a.Stor.Ld,
		beta, c.Data, c.Off, c.Stor.Ld))
}
