package engine

// Elementwise vector math. None of these have vendor equivalents; each
// dispatches one 1D kernel named after the function it computes. Results
// land in the last operand; a zero-dimensional input is a no-op.

func (v *VectorOps[T]) mathUnary(name string, x, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D(name, x.Dim,
		x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc)
}

func (v *VectorOps[T]) mathBinary(name string, x, y, z Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D(name, x.Dim,
		x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc, z.Data, z.Off, z.Inc)
}

func (v *VectorOps[T]) mathScaled(name string, alpha T, x, y Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D(name, x.Dim,
		x.Dim, alpha, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc)
}

// Sqr computes y = x*x.
func (v *VectorOps[T]) Sqr(x, y Vector[T]) error { return v.mathUnary("vector_sqr", x, y) }

// Mul computes z = x*y elementwise.
func (v *VectorOps[T]) Mul(x, y, z Vector[T]) error { return v.mathBinary("vector_mul", x, y, z) }

// Div computes z = x/y elementwise.
func (v *VectorOps[T]) Div(x, y, z Vector[T]) error { return v.mathBinary("vector_div", x, y, z) }

// Inv computes y = 1/x.
func (v *VectorOps[T]) Inv(x, y Vector[T]) error { return v.mathUnary("vector_inv", x, y) }

// Abs computes y = |x|.
func (v *VectorOps[T]) Abs(x, y Vector[T]) error { return v.mathUnary("vector_abs", x, y) }

// Fmod computes z = x mod y, truncated toward zero.
func (v *VectorOps[T]) Fmod(x, y, z Vector[T]) error { return v.mathBinary("vector_fmod", x, y, z) }

// Frem computes the IEEE remainder z = x rem y.
func (v *VectorOps[T]) Frem(x, y, z Vector[T]) error { return v.mathBinary("vector_frem", x, y, z) }

// Sqrt computes y = sqrt(x).
func (v *VectorOps[T]) Sqrt(x, y Vector[T]) error { return v.mathUnary("vector_sqrt", x, y) }

// InvSqrt computes y = 1/sqrt(x).
func (v *VectorOps[T]) InvSqrt(x, y Vector[T]) error { return v.mathUnary("vector_inv_sqrt", x, y) }

// Cbrt computes y = cbrt(x).
func (v *VectorOps[T]) Cbrt(x, y Vector[T]) error { return v.mathUnary("vector_cbrt", x, y) }

// InvCbrt computes y = 1/cbrt(x).
func (v *VectorOps[T]) InvCbrt(x, y Vector[T]) error { return v.mathUnary("vector_inv_cbrt", x, y) }

// Pow2o3 computes y = x^(2/3).
func (v *VectorOps[T]) Pow2o3(x, y Vector[T]) error { return v.mathUnary("vector_pow2o3", x, y) }

// Pow3o2 computes y = x^(3/2).
func (v *VectorOps[T]) Pow3o2(x, y Vector[T]) error { return v.mathUnary("vector_pow3o2", x, y) }

// Pow computes z = x^y elementwise.
func (v *VectorOps[T]) Pow(x, y, z Vector[T]) error { return v.mathBinary("vector_pow", x, y, z) }

// Powx computes y = x^b for a scalar exponent b.
func (v *VectorOps[T]) Powx(x Vector[T], b T, y Vector[T]) error {
	return v.mathScaled("vector_powx", b, x, y)
}

// Hypot computes z = sqrt(x^2 + y^2) elementwise.
func (v *VectorOps[T]) Hypot(x, y, z Vector[T]) error { return v.mathBinary("vector_hypot", x, y, z) }

// Exp computes y = e^x.
func (v *VectorOps[T]) Exp(x, y Vector[T]) error { return v.mathUnary("vector_exp", x, y) }

// Expm1 computes y = e^x - 1.
func (v *VectorOps[T]) Expm1(x, y Vector[T]) error { return v.mathUnary("vector_expm1", x, y) }

// Log computes y = ln(x).
func (v *VectorOps[T]) Log(x, y Vector[T]) error { return v.mathUnary("vector_log", x, y) }

// Log10 computes y = log10(x).
func (v *VectorOps[T]) Log10(x, y Vector[T]) error { return v.mathUnary("vector_log10", x, y) }

// Log1p computes y = ln(1 + x).
func (v *VectorOps[T]) Log1p(x, y Vector[T]) error { return v.mathUnary("vector_log1p", x, y) }

// Sin computes y = sin(x).
func (v *VectorOps[T]) Sin(x, y Vector[T]) error { return v.mathUnary("vector_sin", x, y) }

// Cos computes y = cos(x).
func (v *VectorOps[T]) Cos(x, y Vector[T]) error { return v.mathUnary("vector_cos", x, y) }

// Tan computes y = tan(x).
func (v *VectorOps[T]) Tan(x, y Vector[T]) error { return v.mathUnary("vector_tan", x, y) }

// Asin computes y = arcsin(x).
func (v *VectorOps[T]) Asin(x, y Vector[T]) error { return v.mathUnary("vector_asin", x, y) }

// Acos computes y = arccos(x).
func (v *VectorOps[T]) Acos(x, y Vector[T]) error { return v.mathUnary("vector_acos", x, y) }

// Atan computes y = arctan(x).
func (v *VectorOps[T]) Atan(x, y Vector[T]) error { return v.mathUnary("vector_atan", x, y) }

// Atan2 computes z = atan2(x, y) elementwise.
func (v *VectorOps[T]) Atan2(x, y, z Vector[T]) error { return v.mathBinary("vector_atan2", x, y, z) }

// Sinh computes y = sinh(x).
func (v *VectorOps[T]) Sinh(x, y Vector[T]) error { return v.mathUnary("vector_sinh", x, y) }

// Cosh computes y = cosh(x).
func (v *VectorOps[T]) Cosh(x, y Vector[T]) error { return v.mathUnary("vector_cosh", x, y) }

// Tanh computes y = tanh(x).
func (v *VectorOps[T]) Tanh(x, y Vector[T]) error { return v.mathUnary("vector_tanh", x, y) }

// Asinh computes y = arsinh(x).
func (v *VectorOps[T]) Asinh(x, y Vector[T]) error { return v.mathUnary("vector_asinh", x, y) }

// Acosh computes y = arcosh(x).
func (v *VectorOps[T]) Acosh(x, y Vector[T]) error { return v.mathUnary("vector_acosh", x, y) }

// Atanh computes y = artanh(x).
func (v *VectorOps[T]) Atanh(x, y Vector[T]) error { return v.mathUnary("vector_atanh", x, y) }

// Erf computes y = erf(x).
func (v *VectorOps[T]) Erf(x, y Vector[T]) error { return v.mathUnary("vector_erf", x, y) }

// Erfc computes y = erfc(x).
func (v *VectorOps[T]) Erfc(x, y Vector[T]) error { return v.mathUnary("vector_erfc", x, y) }

// ErfInv computes y = erf^-1(x).
func (v *VectorOps[T]) ErfInv(x, y Vector[T]) error { return v.mathUnary("vector_erf_inv", x, y) }

// ErfcInv computes y = erfc^-1(x).
func (v *VectorOps[T]) ErfcInv(x, y Vector[T]) error { return v.mathUnary("vector_erfc_inv", x, y) }

// CdfNorm computes the standard normal CDF of each entry.
func (v *VectorOps[T]) CdfNorm(x, y Vector[T]) error { return v.mathUnary("vector_cdf_norm", x, y) }

// CdfNormInv computes the standard normal quantile of each entry. This is
// a kernel of its own, not a re-dispatch of vector_cdf_norm.
func (v *VectorOps[T]) CdfNormInv(x, y Vector[T]) error {
	return v.mathUnary("vector_cdf_norm_inv", x, y)
}

// Gamma computes y = gamma(x).
func (v *VectorOps[T]) Gamma(x, y Vector[T]) error { return v.mathUnary("vector_gamma", x, y) }

// LGamma computes y = ln|gamma(x)|.
func (v *VectorOps[T]) LGamma(x, y Vector[T]) error { return v.mathUnary("vector_lgamma", x, y) }

// Floor rounds each entry toward negative infinity.
func (v *VectorOps[T]) Floor(x, y Vector[T]) error { return v.mathUnary("vector_floor", x, y) }

// Ceil rounds each entry toward positive infinity.
func (v *VectorOps[T]) Ceil(x, y Vector[T]) error { return v.mathUnary("vector_ceil", x, y) }

// Trunc rounds each entry toward zero.
func (v *VectorOps[T]) Trunc(x, y Vector[T]) error { return v.mathUnary("vector_trunc", x, y) }

// Round rounds each entry to the nearest integer, half away from zero.
func (v *VectorOps[T]) Round(x, y Vector[T]) error { return v.mathUnary("vector_round", x, y) }

// Modf splits x into integral part y and fractional part z.
func (v *VectorOps[T]) Modf(x, y, z Vector[T]) error { return v.mathBinary("vector_modf", x, y, z) }

// Fmax computes z = max(x, y) elementwise.
func (v *VectorOps[T]) Fmax(x, y, z Vector[T]) error { return v.mathBinary("vector_fmax", x, y, z) }

// Fmin computes z = min(x, y) elementwise.
func (v *VectorOps[T]) Fmin(x, y, z Vector[T]) error { return v.mathBinary("vector_fmin", x, y, z) }

// Copysign computes z = |x| with y's sign, elementwise.
func (v *VectorOps[T]) Copysign(x, y, z Vector[T]) error {
	return v.mathBinary("vector_copysign", x, y, z)
}

// Sigmoid computes y = 1/(1 + e^-x).
func (v *VectorOps[T]) Sigmoid(x, y Vector[T]) error { return v.mathUnary("vector_sigmoid", x, y) }

// Ramp computes y = max(x, 0).
func (v *VectorOps[T]) Ramp(x, y Vector[T]) error { return v.mathUnary("vector_ramp", x, y) }

// Relu computes the leaky rectifier y = max(x, alpha*x).
func (v *VectorOps[T]) Relu(alpha T, x, y Vector[T]) error {
	return v.mathScaled("vector_relu", alpha, x, y)
}

// Elu computes the exponential linear unit with slope alpha.
func (v *VectorOps[T]) Elu(alpha T, x, y Vector[T]) error {
	return v.mathScaled("vector_elu", alpha, x, y)
}

// LinearFrac computes z = (scaleA*x + shiftA) / (scaleB*y + shiftB)
// elementwise.
func (v *VectorOps[T]) LinearFrac(x, y Vector[T], scaleA, shiftA, scaleB, shiftB T, z Vector[T]) error {
	if x.Dim == 0 {
		return nil
	}
	return v.launch1D("vector_linear_frac", x.Dim,
		x.Dim, x.Data, x.Off, x.Inc, y.Data, y.Off, y.Inc,
		scaleA, shiftA, scaleB, shiftB, z.Data, z.Off, z.Inc)
}
