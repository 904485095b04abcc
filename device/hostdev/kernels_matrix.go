package hostdev

// registerMatrixKernels fills the registry with the 2D GE and TR kernels.
// All of them index storage cells (i, j) with i along the minor extent;
// the _transp variants read the second operand with swapped indices,
// which is how a pair with differing storage orders meets cell-for-cell.
// TR kernels additionally receive the populated-half sign in the first
// operand's storage frame and the unit-diagonal shift: a cell is touched
// iff sign*(j-i) >= shift.
func registerMatrixKernels[T elemT](k map[string]kernelFunc) {
	k["ge_set"] = geFillKernel[T](func(_, alpha T) T { return alpha })
	k["ge_scal"] = geFillKernel[T](func(v, alpha T) T { return v * alpha })

	k["ge_copy_no_transp"] = gePairKernel[T](false, func(a, b T) (T, T) { return a, a })
	k["ge_copy_transp"] = gePairKernel[T](true, func(a, b T) (T, T) { return a, a })
	k["ge_swap_no_transp"] = gePairKernel[T](false, func(a, b T) (T, T) { return b, a })
	k["ge_swap_transp"] = gePairKernel[T](true, func(a, b T) (T, T) { return b, a })

	k["ge_axpby_no_transp"] = geAxpbyKernel[T](false)
	k["ge_axpby_transp"] = geAxpbyKernel[T](true)
	k["ge_equals_no_transp"] = geEqualsKernel[T](false)
	k["ge_equals_transp"] = geEqualsKernel[T](true)

	k["tr_set"] = trFillKernel[T](func(_, alpha T) T { return alpha })
	k["tr_scal"] = trFillKernel[T](func(v, alpha T) T { return v * alpha })

	k["tr_copy_no_transp"] = trPairKernel[T](false, func(a, b T) (T, T) { return a, a })
	k["tr_copy_transp"] = trPairKernel[T](true, func(a, b T) (T, T) { return a, a })
	k["tr_swap_no_transp"] = trPairKernel[T](false, func(a, b T) (T, T) { return b, a })
	k["tr_swap_transp"] = trPairKernel[T](true, func(a, b T) (T, T) { return b, a })

	k["tr_axpby_no_transp"] = trAxpbyKernel[T](false)
	k["tr_axpby_transp"] = trAxpbyKernel[T](true)
	k["tr_equals_no_transp"] = trEqualsKernel[T](false)
	k["tr_equals_transp"] = trEqualsKernel[T](true)
}

func geFillKernel[T elemT](f func(v, alpha T) T) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		sd, fd, alpha, a, offA, lda := p.Int(), p.Int(), p.Elem(), p.Buf(), p.Int(), p.Int()
		for j := 0; j < fd; j++ {
			for i := 0; i < sd; i++ {
				idx := offA + j*lda + i
				a[idx] = f(a[idx], alpha)
			}
		}
		return nil
	}
}

func gePairKernel[T elemT](transp bool, f func(a, b T) (T, T)) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		sd, fd, a, offA, lda := p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		b, offB, ldb := p.Buf(), p.Int(), p.Int()
		for j := 0; j < fd; j++ {
			for i := 0; i < sd; i++ {
				ia := offA + j*lda + i
				ib := pairIndex(transp, offB, ldb, i, j)
				a[ia], b[ib] = f(a[ia], b[ib])
			}
		}
		return nil
	}
}

func geAxpbyKernel[T elemT](transp bool) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		sd, fd, alpha, a, offA, lda := p.Int(), p.Int(), p.Elem(), p.Buf(), p.Int(), p.Int()
		beta, b, offB, ldb := p.Elem(), p.Buf(), p.Int(), p.Int()
		for j := 0; j < fd; j++ {
			for i := 0; i < sd; i++ {
				ib := pairIndex(transp, offB, ldb, i, j)
				b[ib] = alpha*a[offA+j*lda+i] + beta*b[ib]
			}
		}
		return nil
	}
}

func geEqualsKernel[T elemT](transp bool) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		sd, fd, a, offA, lda := p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		b, offB, ldb := p.Buf(), p.Int(), p.Int()
		flag := p.Flags()
		for j := 0; j < fd; j++ {
			for i := 0; i < sd; i++ {
				if a[offA+j*lda+i] != b[pairIndex(transp, offB, ldb, i, j)] {
					flag[0] = 1
					return nil
				}
			}
		}
		return nil
	}
}

func trFillKernel[T elemT](f func(v, alpha T) T) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, shift, sign := p.Int(), p.Int(), p.Int()
		alpha, a, offA, lda := p.Elem(), p.Buf(), p.Int(), p.Int()
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if sign*(j-i) < shift {
					continue
				}
				idx := offA + j*lda + i
				a[idx] = f(a[idx], alpha)
			}
		}
		return nil
	}
}

func trPairKernel[T elemT](transp bool, f func(a, b T) (T, T)) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, shift, sign := p.Int(), p.Int(), p.Int()
		a, offA, lda := p.Buf(), p.Int(), p.Int()
		b, offB, ldb := p.Buf(), p.Int(), p.Int()
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if sign*(j-i) < shift {
					continue
				}
				ia := offA + j*lda + i
				ib := pairIndex(transp, offB, ldb, i, j)
				a[ia], b[ib] = f(a[ia], b[ib])
			}
		}
		return nil
	}
}

func trAxpbyKernel[T elemT](transp bool) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, shift, sign := p.Int(), p.Int(), p.Int()
		alpha, a, offA, lda := p.Elem(), p.Buf(), p.Int(), p.Int()
		beta, b, offB, ldb := p.Elem(), p.Buf(), p.Int(), p.Int()
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if sign*(j-i) < shift {
					continue
				}
				ib := pairIndex(transp, offB, ldb, i, j)
				b[ib] = alpha*a[offA+j*lda+i] + beta*b[ib]
			}
		}
		return nil
	}
}

func trEqualsKernel[T elemT](transp bool) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, shift, sign := p.Int(), p.Int(), p.Int()
		a, offA, lda := p.Buf(), p.Int(), p.Int()
		b, offB, ldb := p.Buf(), p.Int(), p.Int()
		flag := p.Flags()
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				if sign*(j-i) < shift {
					continue
				}
				if a[offA+j*lda+i] != b[pairIndex(transp, offB, ldb, i, j)] {
					flag[0] = 1
					return nil
				}
			}
		}
		return nil
	}
}

func pairIndex(transp bool, off, ld, i, j int) int {
	if transp {
		return off + i*ld + j
	}
	return off + j*ld + i
}
