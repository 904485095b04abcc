package engine

import (
	"github.com/cubit-ml/cubit/device"
)

// Vendor-backed vector operations. Offsets and strides are forwarded as
// vendor arguments; a zero-dimensional vector short-circuits to the
// operation's identity before anything is enqueued.

// Swap exchanges x and y.
func (v *VectorOps[T]) Swap(x, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("swap", v.bl.Swap(v.q, x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc))
}

// Copy copies x into y.
func (v *VectorOps[T]) Copy(x, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("copy", v.bl.Copy(v.q, x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc))
}

// Dot returns x . y. Blocks on the result read-back.
func (v *VectorOps[T]) Dot(x, y Vector[T]) (T, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	var res T
	if err := vendorCall("dot", v.bl.Dot(v.q, x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Nrm2 returns the Euclidean norm of x.
func (v *VectorOps[T]) Nrm2(x Vector[T]) (T, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	var res T
	if err := vendorCall("nrm2", v.bl.Nrm2(v.q, x.Dim, x.Data, x.Off, x.Inc, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Nrm1 returns the 1-norm of x, which for a vector is its absolute sum.
func (v *VectorOps[T]) Nrm1(x Vector[T]) (T, error) {
	return v.Asum(x)
}

// NrmI signals that the infinity norm has no vendor or kernel equivalent
// on this engine.
func (v *VectorOps[T]) NrmI(x Vector[T]) (T, error) {
	return 0, unsupported("nrmi")
}

// Asum returns the sum of absolute values of x.
func (v *VectorOps[T]) Asum(x Vector[T]) (T, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	var res T
	if err := vendorCall("asum", v.bl.Asum(v.q, x.Dim, x.Data, x.Off, x.Inc, &res)); err != nil {
		return 0, err
	}
	return res, nil
}

// Iamax returns the 0-based index of the entry with the largest
// magnitude. The vendor result is 1-based; the conversion floors at 0 so
// an empty vector reports index 0.
func (v *VectorOps[T]) Iamax(x Vector[T]) (int, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	var idx int
	if err := vendorCall("iamax", v.bl.Iamax(v.q, x.Dim, x.Data, x.Off, x.Inc, &idx)); err != nil {
		return 0, err
	}
	return max(idx-1, 0), nil
}

// Iamin returns the 0-based index of the entry with the smallest
// magnitude.
func (v *VectorOps[T]) Iamin(x Vector[T]) (int, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	var idx int
	if err := vendorCall("iamin", v.bl.Iamin(v.q, x.Dim, x.Data, x.Off, x.Inc, &idx)); err != nil {
		return 0, err
	}
	return max(idx-1, 0), nil
}

// Amax signals that the largest-magnitude value (as opposed to its index)
// has no vendor or kernel equivalent on this engine.
func (v *VectorOps[T]) Amax(x Vector[T]) (T, error) {
	return 0, unsupported("amax")
}

// Imax signals that non-magnitude extremum search has no vendor or kernel
// equivalent on this engine.
func (v *VectorOps[T]) Imax(x Vector[T]) (int, error) {
	return 0, unsupported("imax")
}

// Imin signals that non-magnitude extremum search has no vendor or kernel
// equivalent on this engine.
func (v *VectorOps[T]) Imin(x Vector[T]) (int, error) {
	return 0, unsupported("imin")
}

// Rot applies the plane rotation (c, s) to x and y.
func (v *VectorOps[T]) Rot(x, y Vector[T], c, s T) error {
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("rot", v.bl.Rot(v.q, x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, c, s))
}

// Rotm applies the modified Givens rotation held in param to x and y.
// The parameter vector must be contiguous.
func (v *VectorOps[T]) Rotm(x, y, param Vector[T]) error {
	if param.Inc != 1 {
		return &device.UsageError{Op: "rotm", Msg: "parameter vector must have stride 1"}
	}
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("rotm", v.bl.Rotm(v.q, x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, param.Data, param.Off))
}

// Rotg signals that rotation setup runs on the host, not on this engine.
func (v *VectorOps[T]) Rotg() error {
	return unsupported("rotg")
}

// Rotmg signals that modified-rotation setup runs on the host, not on
// this engine.
func (v *VectorOps[T]) Rotmg() error {
	return unsupported("rotmg")
}

// Scal scales x by alpha.
func (v *VectorOps[T]) Scal(alpha T, x Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("scal", v.bl.Scal(v.q, x.Dim, alpha, x.Data, x.Off, x.Inc))
}

// Axpy computes y <- alpha*x + y.
func (v *VectorOps[T]) Axpy(alpha T, x, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return vendorCall("axpy", v.bl.Axpy(v.q, x.Dim, alpha, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc))
}

// Kernel-backed vector operations: no vendor equivalent exists, so these
// launch 1D kernels sized to the logical dimension, passing each
// operand's buffer, offset and stride.

// Axpby computes y <- alpha*x + beta*y.
func (v *VectorOps[T]) Axpby(alpha T, x Vector[T], beta T, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D("vector_axpby", x.Dim,
		x.Dim, alpha, x.Data, x.Off, x.Inc, beta, y.Data, y.Off, y.Inc)
}

// Fill sets every entry of x to alpha.
func (v *VectorOps[T]) Fill(alpha T, x Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D("vector_set", x.Dim, x.Dim, alpha, x.Data, x.Off, x.Inc)
}

// CopySlice copies n entries of x starting at logical index kx into y
// starting at logical index ky.
func (v *VectorOps[T]) CopySlice(x Vector[T], kx int, y Vector[T], ky, n int) error {
	if n == 0 {
		return nil
	}
	if kx < 0 || ky < 0 || kx+n > x.Dim || ky+n > y.Dim {
		return &device.UsageError{Op: "copy-slice", Msg: "sub-range exceeds operand dimension"}
	}
	return v.launch1D("vector_copy", n,
		n, x.Data, x.Off+kx*x.Inc, x.Inc, y.Data, y.Off+ky*y.Inc, y.Inc)
}

// Sum returns the sum of x's entries via a two-phase block reduction:
// phase one folds each block of sumBlock elements into one accumulator
// slot (accumulating in wider precision inside the kernel), later phases
// fold the partials until one remains, which is read back synchronously.
// The stored per-block partials are element-width: the accumulator
// buffer holds T, so the wide accumulation rounds once per block.
func (v *VectorOps[T]) Sum(x Vector[T]) (T, error) {
	if x.Dim == 0 {
		return 0, nil
	}
	blocks := (x.Dim + sumBlock - 1) / sumBlock
	next := (blocks + sumBlock - 1) / sumBlock
	// Two ping-pong regions in one scratch buffer; a phase never writes
	// the region it reads.
	scratch, err := v.scratch(v.acc.ByteOffset(blocks + next))
	if err != nil {
		return 0, err
	}
	defer scratch.Release()

	if err := v.launch1D("vector_sum", blocks,
		x.Dim, x.Data, x.Off, x.Inc, scratch, 0); err != nil {
		return 0, err
	}
	n, off, altOff := blocks, 0, blocks
	for n > 1 {
		out := (n + sumBlock - 1) / sumBlock
		if err := v.launch1D("vector_sum", out,
			n, scratch, off, 1, scratch, altOff); err != nil {
			return 0, err
		}
		n = out
		off, altOff = altOff, off
	}
	return v.readElem("sum", scratch, off)
}

// Equal reports whether x and y hold identical values. A single-element
// device flag starts at zero and is raised by the kernel on the first
// mismatch; the blocking flag read is the synchronization point.
// Zero-dimensional vectors are equal only to each other.
func (v *VectorOps[T]) Equal(x, y Vector[T]) (bool, error) {
	if x.Dim == 0 || y.Dim == 0 {
		return x.Dim == y.Dim, nil
	}
	if x.Dim != y.Dim {
		return false, nil
	}
	flag, err := v.scratch(4)
	if err != nil {
		return false, err
	}
	defer flag.Release()
	if err := v.launch1D("vector_equals", x.Dim,
		x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, flag); err != nil {
		return false, err
	}
	raw, err := v.readFlag("equals", flag)
	if err != nil {
		return false, err
	}
	return raw == 0, nil
}
