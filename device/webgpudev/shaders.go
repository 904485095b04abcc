package webgpudev

import "fmt"

// shaderSources maps kernel names to WGSL compute shaders. Marshaling is
// positional: storage buffers bind in launch-argument order from binding
// 0, and all scalar arguments pack into the trailing uniform Params
// struct in launch-argument order. Every Params field list below mirrors
// its launch site; do not reorder one without the other.
//
// The erf, gamma and normal-CDF families have no WGSL builtin and no
// entry here, so their kernels resolve to ErrKernelNotFound.
var shaderSources = buildShaders()

func buildShaders() map[string]string {
	s := map[string]string{
		"vector_copy": `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    y[u32(p.off_y + i * p.inc_y)] = x[u32(p.off_x + i * p.inc_x)];
}
`,
		"vector_swap": `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let ix = u32(p.off_x + i * p.inc_x);
    let iy = u32(p.off_y + i * p.inc_y);
    let t = x[ix];
    x[ix] = y[iy];
    y[iy] = t;
}
`,
		"vector_set": `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
struct Params { n: i32, alpha: f32, off_x: i32, inc_x: i32 }
@group(0) @binding(1) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    x[u32(p.off_x + i * p.inc_x)] = p.alpha;
}
`,
		"vector_axpby": `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, alpha: f32, off_x: i32, inc_x: i32, beta: f32, off_y: i32, inc_y: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let iy = u32(p.off_y + i * p.inc_y);
    y[iy] = p.alpha * x[u32(p.off_x + i * p.inc_x)] + p.beta * y[iy];
}
`,
		// The reduction binds input and accumulator read_write because
		// later phases fold a scratch region into its sibling region of
		// the same buffer.
		"vector_sum": `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> acc: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_acc: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let b = i32(gid.x);
    let base = b * 1024;
    if (base >= p.n) { return; }
    let stop = min(p.n, base + 1024);
    var s = 0.0;
    for (var i = base; i < stop; i++) {
        s += x[u32(p.off_x + i * p.inc_x)];
    }
    acc[u32(p.off_acc + b)] = s;
}
`,
		"vector_equals": `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> flag: array<atomic<i32>>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    if (x[u32(p.off_x + i * p.inc_x)] != y[u32(p.off_y + i * p.inc_y)]) {
        atomicStore(&flag[0], 1);
    }
}
`,
		"vector_linear_frac": `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> z: array<f32>;
struct Params {
    n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32,
    scale_a: f32, shift_a: f32, scale_b: f32, shift_b: f32,
    off_z: i32, inc_z: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let num = p.scale_a * x[u32(p.off_x + i * p.inc_x)] + p.shift_a;
    let den = p.scale_b * y[u32(p.off_y + i * p.inc_y)] + p.shift_b;
    z[u32(p.off_z + i * p.inc_z)] = num / den;
}
`,
		"vector_modf": `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> z: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32, off_z: i32, inc_z: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let v = x[u32(p.off_x + i * p.inc_x)];
    let w = trunc(v);
    y[u32(p.off_y + i * p.inc_y)] = w;
    z[u32(p.off_z + i * p.inc_z)] = v - w;
}
`,
	}

	unary := map[string]string{
		"vector_sqr":      "v * v",
		"vector_inv":      "1.0 / v",
		"vector_abs":      "abs(v)",
		"vector_sqrt":     "sqrt(v)",
		"vector_inv_sqrt": "inverseSqrt(v)",
		"vector_cbrt":     "sign(v) * pow(abs(v), 1.0 / 3.0)",
		"vector_inv_cbrt": "sign(v) * pow(abs(v), -1.0 / 3.0)",
		"vector_pow2o3":   "pow(abs(v), 2.0 / 3.0)",
		"vector_pow3o2":   "pow(v, 1.5)",
		"vector_exp":      "exp(v)",
		"vector_expm1":    "exp(v) - 1.0",
		"vector_log":      "log(v)",
		"vector_log10":    "log(v) * 0.4342944819032518",
		"vector_log1p":    "log(1.0 + v)",
		"vector_sin":      "sin(v)",
		"vector_cos":      "cos(v)",
		"vector_tan":      "tan(v)",
		"vector_asin":     "asin(v)",
		"vector_acos":     "acos(v)",
		"vector_atan":     "atan(v)",
		"vector_sinh":     "sinh(v)",
		"vector_cosh":     "cosh(v)",
		"vector_tanh":     "tanh(v)",
		"vector_asinh":    "asinh(v)",
		"vector_acosh":    "acosh(v)",
		"vector_atanh":    "atanh(v)",
		"vector_floor":    "floor(v)",
		"vector_ceil":     "ceil(v)",
		"vector_trunc":    "trunc(v)",
		"vector_round":    "round(v)",
		"vector_sigmoid":  "1.0 / (1.0 + exp(-v))",
		"vector_ramp":     "max(v, 0.0)",
	}
	for name, expr := range unary {
		s[name] = unaryShader(expr)
	}

	binary := map[string]string{
		"vector_mul":      "a * b",
		"vector_div":      "a / b",
		"vector_fmod":     "a - b * trunc(a / b)",
		"vector_frem":     "a - b * round(a / b)",
		"vector_pow":      "pow(a, b)",
		"vector_hypot":    "length(vec2(a, b))",
		"vector_atan2":    "atan2(a, b)",
		"vector_fmax":     "max(a, b)",
		"vector_fmin":     "min(a, b)",
		"vector_copysign": "abs(a) * select(1.0, -1.0, b < 0.0)",
	}
	for name, expr := range binary {
		s[name] = binaryShader(expr)
	}

	scaled := map[string]string{
		"vector_powx": "pow(v, p.alpha)",
		"vector_relu": "select(p.alpha * v, v, v > 0.0)",
		"vector_elu":  "select(p.alpha * (exp(v) - 1.0), v, v > 0.0)",
	}
	for name, expr := range scaled {
		s[name] = scaledShader(expr)
	}

	for _, transp := range []bool{false, true} {
		suffix := "_no_transp"
		if transp {
			suffix = "_transp"
		}
		s["ge_copy"+suffix] = geCopyShader(transp)
		s["ge_swap"+suffix] = geSwapShader(transp)
		s["ge_axpby"+suffix] = geAxpbyShader(transp)
		s["ge_equals"+suffix] = geEqualsShader(transp)
		s["tr_copy"+suffix] = trCopyShader(transp)
		s["tr_swap"+suffix] = trSwapShader(transp)
		s["tr_axpby"+suffix] = trAxpbyShader(transp)
		s["tr_equals"+suffix] = trEqualsShader(transp)
	}
	s["ge_set"] = geFillShader("p.alpha")
	s["ge_scal"] = geFillShader("a[idx] * p.alpha")
	s["tr_set"] = trFillShader("p.alpha")
	s["tr_scal"] = trFillShader("a[idx] * p.alpha")

	registerBlasShaders(s)
	return s
}

func unaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let v = x[u32(p.off_x + i * p.inc_x)];
    y[u32(p.off_y + i * p.inc_y)] = %s;
}
`, expr)
}

func binaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> z: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32, off_z: i32, inc_z: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let a = x[u32(p.off_x + i * p.inc_x)];
    let b = y[u32(p.off_y + i * p.inc_y)];
    z[u32(p.off_z + i * p.inc_z)] = %s;
}
`, expr)
}

func scaledShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, alpha: f32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let v = x[u32(p.off_x + i * p.inc_x)];
    y[u32(p.off_y + i * p.inc_y)] = %s;
}
`, expr)
}

// pairIndexExpr is the second operand's cell index: straight variants
// walk it in the first operand's storage order, transposed variants with
// the extents swapped.
func pairIndexExpr(transp bool) string {
	if transp {
		return "u32(p.off_b + i * p.ldb + j)"
	}
	return "u32(p.off_b + j * p.ldb + i)"
}

func geFillShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
struct Params { sd: i32, fd: i32, alpha: f32, off_a: i32, lda: i32 }
@group(0) @binding(1) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.sd || j >= p.fd) { return; }
    let idx = u32(p.off_a + j * p.lda + i);
    a[idx] = %s;
}
`, expr)
}

func geCopyShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { sd: i32, fd: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.sd || j >= p.fd) { return; }
    b[%s] = a[u32(p.off_a + j * p.lda + i)];
}
`, pairIndexExpr(transp))
}

func geSwapShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { sd: i32, fd: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.sd || j >= p.fd) { return; }
    let ia = u32(p.off_a + j * p.lda + i);
    let ib = %s;
    let t = a[ia];
    a[ia] = b[ib];
    b[ib] = t;
}
`, pairIndexExpr(transp))
}

func geAxpbyShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { sd: i32, fd: i32, alpha: f32, off_a: i32, lda: i32, beta: f32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.sd || j >= p.fd) { return; }
    let ib = %s;
    b[ib] = p.alpha * a[u32(p.off_a + j * p.lda + i)] + p.beta * b[ib];
}
`, pairIndexExpr(transp))
}

func geEqualsShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> flag: array<atomic<i32>>;
struct Params { sd: i32, fd: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.sd || j >= p.fd) { return; }
    if (a[u32(p.off_a + j * p.lda + i)] != b[%s]) {
        atomicStore(&flag[0], 1);
    }
}
`, pairIndexExpr(transp))
}

// TR kernels touch cell (i, j) iff sign*(j-i) >= shift, with sign and
// shift expressed in the first operand's storage frame.
const trGuard = `
    let i = i32(gid.x);
    let j = i32(gid.y);
    if (i >= p.n || j >= p.n) { return; }
    if (p.sign * (j - i) < p.shift) { return; }
`

func trFillShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
struct Params { n: i32, shift: i32, sign: i32, alpha: f32, off_a: i32, lda: i32 }
@group(0) @binding(1) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
%s    let idx = u32(p.off_a + j * p.lda + i);
    a[idx] = %s;
}
`, trGuard, expr)
}

func trCopyShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { n: i32, shift: i32, sign: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
%s    b[%s] = a[u32(p.off_a + j * p.lda + i)];
}
`, trGuard, pairIndexExpr(transp))
}

func trSwapShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { n: i32, shift: i32, sign: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
%s    let ia = u32(p.off_a + j * p.lda + i);
    let ib = %s;
    let t = a[ia];
    a[ia] = b[ib];
    b[ib] = t;
}
`, trGuard, pairIndexExpr(transp))
}

func trAxpbyShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;
struct Params { n: i32, shift: i32, sign: i32, alpha: f32, off_a: i32, lda: i32, beta: f32, off_b: i32, ldb: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
%s    let ib = %s;
    b[ib] = p.alpha * a[u32(p.off_a + j * p.lda + i)] + p.beta * b[ib];
}
`, trGuard, pairIndexExpr(transp))
}

func trEqualsShader(transp bool) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> flag: array<atomic<i32>>;
struct Params { n: i32, shift: i32, sign: i32, off_a: i32, lda: i32, off_b: i32, ldb: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
%s    if (a[u32(p.off_a + j * p.lda + i)] != b[%s]) {
        atomicStore(&flag[0], 1);
    }
}
`, trGuard, pairIndexExpr(transp))
}
