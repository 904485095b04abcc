package hostdev

import "math"

// registerVectorKernels fills the registry with the 1D vector kernels.
// Argument order of every kernel matches the launch sites in the engine
// package; do not reorder one without the other.
func registerVectorKernels[T elemT](k map[string]kernelFunc) {
	k["vector_copy"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX, y, offY, incY := p.Int(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			y[offY+i*incY] = x[offX+i*incX]
		}
		return nil
	}
	k["vector_swap"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX, y, offY, incY := p.Int(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			ix, iy := offX+i*incX, offY+i*incY
			x[ix], y[iy] = y[iy], x[ix]
		}
		return nil
	}
	k["vector_set"] = func(args []any) error {
		p := newArgs[T](args)
		n, alpha, x, offX, incX := p.Int(), p.Elem(), p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			x[offX+i*incX] = alpha
		}
		return nil
	}
	k["vector_axpby"] = func(args []any) error {
		p := newArgs[T](args)
		n, alpha, x, offX, incX := p.Int(), p.Elem(), p.Buf(), p.Int(), p.Int()
		beta, y, offY, incY := p.Elem(), p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			iy := offY + i*incY
			y[iy] = alpha*x[offX+i*incX] + beta*y[iy]
		}
		return nil
	}
	// vector_sum folds each block of sumBlock input elements into one
	// accumulator slot, accumulating in float64 regardless of T.
	k["vector_sum"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX, acc, offAcc := p.Int(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int()
		for base, slot := 0, 0; base < n; base, slot = base+sumBlock, slot+1 {
			var wide float64
			for i := base; i < n && i < base+sumBlock; i++ {
				wide += float64(x[offX+i*incX])
			}
			acc[offAcc+slot] = T(wide)
		}
		return nil
	}
	k["vector_equals"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX, y, offY, incY, flag := p.Int(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int(), p.Int(), p.Flags()
		for i := 0; i < n; i++ {
			if x[offX+i*incX] != y[offY+i*incY] {
				flag[0] = 1
				return nil
			}
		}
		return nil
	}
	k["vector_linear_frac"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX := p.Int(), p.Buf(), p.Int(), p.Int()
		y, offY, incY := p.Buf(), p.Int(), p.Int()
		scaleA, shiftA, scaleB, shiftB := p.Elem(), p.Elem(), p.Elem(), p.Elem()
		z, offZ, incZ := p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			z[offZ+i*incZ] = (scaleA*x[offX+i*incX] + shiftA) / (scaleB*y[offY+i*incY] + shiftB)
		}
		return nil
	}
	k["vector_modf"] = func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX := p.Int(), p.Buf(), p.Int(), p.Int()
		y, offY, incY := p.Buf(), p.Int(), p.Int()
		z, offZ, incZ := p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			whole, frac := math.Modf(float64(x[offX+i*incX]))
			y[offY+i*incY] = T(whole)
			z[offZ+i*incZ] = T(frac)
		}
		return nil
	}

	unary := map[string]func(float64) float64{
		"vector_sqr":      func(v float64) float64 { return v * v },
		"vector_inv":      func(v float64) float64 { return 1 / v },
		"vector_abs":      math.Abs,
		"vector_sqrt":     math.Sqrt,
		"vector_inv_sqrt": func(v float64) float64 { return 1 / math.Sqrt(v) },
		"vector_cbrt":     math.Cbrt,
		"vector_inv_cbrt": func(v float64) float64 { return 1 / math.Cbrt(v) },
		"vector_pow2o3": func(v float64) float64 {
			c := math.Cbrt(v)
			return c * c
		},
		"vector_pow3o2": func(v float64) float64 { return math.Pow(v, 1.5) },
		"vector_exp":    math.Exp,
		"vector_expm1":  math.Expm1,
		"vector_log":    math.Log,
		"vector_log10":  math.Log10,
		"vector_log1p":  math.Log1p,
		"vector_sin":    math.Sin,
		"vector_cos":    math.Cos,
		"vector_tan":    math.Tan,
		"vector_asin":   math.Asin,
		"vector_acos":   math.Acos,
		"vector_atan":   math.Atan,
		"vector_sinh":   math.Sinh,
		"vector_cosh":   math.Cosh,
		"vector_tanh":   math.Tanh,
		"vector_asinh":  math.Asinh,
		"vector_acosh":  math.Acosh,
		"vector_atanh":  math.Atanh,
		"vector_erf":    math.Erf,
		"vector_erfc":   math.Erfc,
		"vector_erf_inv":  math.Erfinv,
		"vector_erfc_inv": math.Erfcinv,
		"vector_cdf_norm": func(v float64) float64 { return 0.5 * math.Erfc(-v/math.Sqrt2) },
		"vector_cdf_norm_inv": func(v float64) float64 {
			return -math.Sqrt2 * math.Erfcinv(2*v)
		},
		"vector_gamma": math.Gamma,
		"vector_lgamma": func(v float64) float64 {
			lg, _ := math.Lgamma(v)
			return lg
		},
		"vector_floor":   math.Floor,
		"vector_ceil":    math.Ceil,
		"vector_trunc":   math.Trunc,
		"vector_round":   math.Round,
		"vector_sigmoid": func(v float64) float64 { return 1 / (1 + math.Exp(-v)) },
		"vector_ramp":    func(v float64) float64 { return math.Max(v, 0) },
	}
	for name, f := range unary {
		k[name] = unaryKernel[T](f)
	}

	binary := map[string]func(a, b float64) float64{
		"vector_mul":      func(a, b float64) float64 { return a * b },
		"vector_div":      func(a, b float64) float64 { return a / b },
		"vector_fmod":     math.Mod,
		"vector_frem":     math.Remainder,
		"vector_pow":      math.Pow,
		"vector_hypot":    math.Hypot,
		"vector_atan2":    math.Atan2,
		"vector_fmax":     math.Max,
		"vector_fmin":     math.Min,
		"vector_copysign": math.Copysign,
	}
	for name, f := range binary {
		k[name] = binaryKernel[T](f)
	}

	scaled := map[string]func(alpha, v float64) float64{
		"vector_powx": func(alpha, v float64) float64 { return math.Pow(v, alpha) },
		"vector_relu": func(alpha, v float64) float64 {
			if v > 0 {
				return v
			}
			return alpha * v
		},
		"vector_elu": func(alpha, v float64) float64 {
			if v > 0 {
				return v
			}
			return alpha * math.Expm1(v)
		},
	}
	for name, f := range scaled {
		k[name] = scaledKernel[T](f)
	}
}

func unaryKernel[T elemT](f func(float64) float64) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX, y, offY, incY := p.Int(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			y[offY+i*incY] = T(f(float64(x[offX+i*incX])))
		}
		return nil
	}
}

func binaryKernel[T elemT](f func(a, b float64) float64) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, x, offX, incX := p.Int(), p.Buf(), p.Int(), p.Int()
		y, offY, incY := p.Buf(), p.Int(), p.Int()
		z, offZ, incZ := p.Buf(), p.Int(), p.Int()
		for i := 0; i < n; i++ {
			z[offZ+i*incZ] = T(f(float64(x[offX+i*incX]), float64(y[offY+i*incY])))
		}
		return nil
	}
}

func scaledKernel[T elemT](f func(alpha, v float64) float64) kernelFunc {
	return func(args []any) error {
		p := newArgs[T](args)
		n, alpha, x, offX, incX, y, offY, incY := p.Int(), p.Elem(), p.Buf(), p.Int(), p.Int(), p.Buf(), p.Int(), p.Int()
		a := float64(alpha)
		for i := 0; i < n; i++ {
			y[offY+i*incY] = T(f(a, float64(x[offX+i*incX])))
		}
		return nil
	}
}
