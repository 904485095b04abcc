package engine

import (
	"github.com/cubit-ml/cubit/device"
)

// Triangular dispatch. Structural operations always run 2D kernels: a
// vendor call cannot express "touch only the populated half", and once
// the two operands' orders differ the populated half cannot be inferred
// from shape alone. Every kernel therefore receives the region
// explicitly: the populated-half sign in the first operand's storage
// frame and the unit-diagonal shift. Triangular multiplies go to the
// vendor with the region translated into fill-mode and diagonal-type
// enumerants.

// Swap exchanges the populated halves of a and b.
func (t *TROps[T]) Swap(a, b Triangular[T]) error {
	if a.N == 0 {
		return nil
	}
	return t.launch2D(trSwapKernels.pick(a.Order == b.Order), a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(),
		a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld)
}

// Copy copies a's populated half into b.
func (t *TROps[T]) Copy(a, b Triangular[T]) error {
	if a.N == 0 {
		return nil
	}
	return t.launch2D(trCopyKernels.pick(a.Order == b.Order), a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(),
		a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld)
}

// Scal scales the populated half of a by alpha.
func (t *TROps[T]) Scal(alpha T, a Triangular[T]) error {
	if a.N == 0 {
		return nil
	}
	return t.launch2D("tr_scal", a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(), alpha, a.Data, a.Off, a.Stor.Ld)
}

// Fill sets every populated entry of a to alpha.
func (t *TROps[T]) Fill(alpha T, a Triangular[T]) error {
	if a.N == 0 {
		return nil
	}
	return t.launch2D("tr_set", a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(), alpha, a.Data, a.Off, a.Stor.Ld)
}

// Axpy computes b <- alpha*a + b over the populated half.
func (t *TROps[T]) Axpy(alpha T, a, b Triangular[T]) error {
	return t.Axpby(alpha, a, 1, b)
}

// Axpby computes b <- alpha*a + beta*b over the populated half.
func (t *TROps[T]) Axpby(alpha T, a Triangular[T], beta T, b Triangular[T]) error {
	if a.N == 0 {
		return nil
	}
	return t.launch2D(trAxpbyKernels.pick(a.Order == b.Order), a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(),
		alpha, a.Data, a.Off, a.Stor.Ld, beta, b.Data, b.Off, b.Stor.Ld)
}

// Equal reports whether the populated halves of a and b hold identical
// values. Regions must agree for the comparison to be meaningful.
func (t *TROps[T]) Equal(a, b Triangular[T]) (bool, error) {
	if a.N != b.N || a.Reg != b.Reg {
		return false, nil
	}
	if a.N == 0 {
		return true, nil
	}
	flag, err := t.scratch(4)
	if err != nil {
		return false, err
	}
	defer flag.Release()
	if err := t.launch2D(trEqualsKernels.pick(a.Order == b.Order), a.N, a.N,
		a.N, a.Reg.UnitShift(), a.storageSign(),
		a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld, flag); err != nil {
		return false, err
	}
	raw, err := t.readFlag("tr equals", flag)
	if err != nil {
		return false, err
	}
	return raw == 0, nil
}

// Dot signals that no triangular reduction is defined in this layer.
func (t *TROps[T]) Dot(a, b Triangular[T]) (T, error) {
	return 0, unsupported("tr dot")
}

// Nrm2 signals that no triangular reduction is defined in this layer.
func (t *TROps[T]) Nrm2(a Triangular[T]) (T, error) {
	return 0, unsupported("tr nrm2")
}

// Asum signals that no triangular reduction is defined in this layer.
func (t *TROps[T]) Asum(a Triangular[T]) (T, error) {
	return 0, unsupported("tr asum")
}

// Sum signals that no triangular reduction is defined in this layer.
func (t *TROps[T]) Sum(a Triangular[T]) (T, error) {
	return 0, unsupported("tr sum")
}

// Mv computes the in-place triangular multiply x <- A*x via the vendor.
// The region becomes the vendor's fill mode and diagonal type; A's
// orientation becomes the transpose flag, which also flips the fill mode
// because the vendor reads the column-major view.
func (t *TROps[T]) Mv(a Triangular[T], x Vector[T]) error {
	if a.N == 0 {
		return nil
	}
	return vendorCall("trmv", t.bl.Trmv(t.q,
		uploOf(a.Reg.Upper, a.Order.IsColMajor()),
		transOf(a.Order.IsColMajor()),
		diagOf(a.Reg.Unit), a.N,
		a.Data, a.Off, a.Stor.Ld, x.Data, x.Off, x.Inc))
}

// MvScaled signals that the out-of-place form y <- alpha*A*x + beta*y
// has no vendor path for triangular operands.
func (t *TROps[T]) MvScaled(alpha T, a Triangular[T], x Vector[T], beta T, y Vector[T]) error {
	return unsupported("tr mv (out of place)")
}

// Mm computes the in-place triangular-times-general product
// b <- alpha*A*b (left true) or b <- alpha*b*A (left false) via the
// vendor. b's orientation fixes the frame: a row-major b is the vendor's
// transposed matrix, which mirrors the side and transposes A.
func (t *TROps[T]) Mm(alpha T, a Triangular[T], b General[T], left bool) error {
	if b.Dim() == 0 {
		return nil
	}
	side := device.Left
	if !left {
		side = device.Right
	}
	if !b.Order.IsColMajor() {
		// b^T = alpha*b^T*A^T flips the multiplication side.
		if side == device.Left {
			side = device.Right
		} else {
			side = device.Left
		}
	}
	return vendorCall("trmm", t.bl.Trmm(t.q, side,
		uploOf(a.Reg.Upper, a.Order.IsColMajor()),
		transOf(a.Order == b.Order),
		diagOf(a.Reg.Unit),
		b.Stor.Minor, b.Stor.Major, alpha,
		a.Data, a.Off, a.Stor.Ld, b.Data, b.Off, b.Stor.Ld))
}
