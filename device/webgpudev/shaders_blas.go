package webgpudev

// registerBlasShaders adds the shaders behind the vendor entrypoint
// table. Reductions write one partial per 1024-element block; the table
// reads the partials back and finishes on the host, which also provides
// the implicit queue drain the Blas contract requires for scalar
// results.
func registerBlasShaders(s map[string]string) {
	s["blas_scal"] = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
struct Params { n: i32, alpha: f32, off_x: i32, inc_x: i32 }
@group(0) @binding(1) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let ix = u32(p.off_x + i * p.inc_x);
    x[ix] = x[ix] * p.alpha;
}
`
	s["blas_rot"] = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32, c: f32, s: f32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let ix = u32(p.off_x + i * p.inc_x);
    let iy = u32(p.off_y + i * p.inc_y);
    let xv = x[ix];
    let yv = y[iy];
    x[ix] = p.c * xv + p.s * yv;
    y[iy] = p.c * yv - p.s * xv;
}
`
	s["blas_rotm"] = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
@group(0) @binding(2) var<storage, read> h: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32, off_p: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = i32(gid.x);
    if (i >= p.n) { return; }
    let flag = h[u32(p.off_p)];
    if (flag == -2.0) { return; }
    var h11 = 1.0;
    var h12 = 1.0;
    var h21 = -1.0;
    var h22 = 1.0;
    if (flag == -1.0) {
        h11 = h[u32(p.off_p + 1)];
        h21 = h[u32(p.off_p + 2)];
        h12 = h[u32(p.off_p + 3)];
        h22 = h[u32(p.off_p + 4)];
    } else if (flag == 0.0) {
        h21 = h[u32(p.off_p + 2)];
        h12 = h[u32(p.off_p + 3)];
    } else if (flag == 1.0) {
        h11 = h[u32(p.off_p + 1)];
        h22 = h[u32(p.off_p + 4)];
    }
    let ix = u32(p.off_x + i * p.inc_x);
    let iy = u32(p.off_y + i * p.inc_y);
    let xv = x[ix];
    let yv = y[iy];
    x[ix] = h11 * xv + h12 * yv;
    y[iy] = h21 * xv + h22 * yv;
}
`
	s["blas_dot_block"] = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> acc: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32, off_y: i32, inc_y: i32 }
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let b = i32(gid.x);
    let base = b * 1024;
    if (base >= p.n) { return; }
    let stop = min(p.n, base + 1024);
    var s = 0.0;
    for (var i = base; i < stop; i++) {
        s += x[u32(p.off_x + i * p.inc_x)] * y[u32(p.off_y + i * p.inc_y)];
    }
    acc[u32(b)] = s;
}
`
	s["blas_asum_block"] = reduceBlockShader("abs(x[u32(p.off_x + i * p.inc_x)])")
	s["blas_ssq_block"] = reduceBlockShader("x[u32(p.off_x + i * p.inc_x)] * x[u32(p.off_x + i * p.inc_x)]")

	s["blas_iamax"] = extremeIndexShader(">")
	s["blas_iamin"] = extremeIndexShader("<")

	s["blas_gemv"] = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;
struct Params {
    trans: i32, m: i32, n: i32, alpha: f32, off_a: i32, lda: i32,
    off_x: i32, inc_x: i32, beta: f32, off_y: i32, inc_y: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let r = i32(gid.x);
    var rows = p.m;
    var cols = p.n;
    if (p.trans != 0) {
        rows = p.n;
        cols = p.m;
    }
    if (r >= rows) { return; }
    var s = 0.0;
    for (var c = 0; c < cols; c++) {
        var ia = p.off_a + c * p.lda + r;
        if (p.trans != 0) {
            ia = p.off_a + r * p.lda + c;
        }
        s += a[u32(ia)] * x[u32(p.off_x + c * p.inc_x)];
    }
    let iy = u32(p.off_y + r * p.inc_y);
    y[iy] = p.alpha * s + p.beta * y[iy];
}
`
	s["blas_ger"] = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> a: array<f32>;
struct Params {
    m: i32, n: i32, alpha: f32, off_x: i32, inc_x: i32,
    off_y: i32, inc_y: i32, off_a: i32, lda: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let r = i32(gid.x);
    let c = i32(gid.y);
    if (r >= p.m || c >= p.n) { return; }
    let ia = u32(p.off_a + c * p.lda + r);
    a[ia] = a[ia] + p.alpha * x[u32(p.off_x + r * p.inc_x)] * y[u32(p.off_y + c * p.inc_y)];
}
`
	s["blas_gemm"] = `
@group(0) @binding(0) var<storage, read> ma: array<f32>;
@group(0) @binding(1) var<storage, read> mb: array<f32>;
@group(0) @binding(2) var<storage, read_write> mc: array<f32>;
struct Params {
    ta: i32, tb: i32, m: i32, n: i32, k: i32, alpha: f32,
    off_a: i32, lda: i32, off_b: i32, ldb: i32,
    beta: f32, off_c: i32, ldc: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let row = i32(gid.x);
    let col = i32(gid.y);
    if (row >= p.m || col >= p.n) { return; }
    var s = 0.0;
    for (var kk = 0; kk < p.k; kk++) {
        var ia = p.off_a + kk * p.lda + row;
        if (p.ta != 0) {
            ia = p.off_a + row * p.lda + kk;
        }
        var ib = p.off_b + col * p.ldb + kk;
        if (p.tb != 0) {
            ib = p.off_b + kk * p.ldb + col;
        }
        s += ma[u32(ia)] * mb[u32(ib)];
    }
    let ic = u32(p.off_c + col * p.ldc + row);
    mc[ic] = p.alpha * s + p.beta * mc[ic];
}
`
	s["blas_trmv"] = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> t: array<f32>;
struct Params {
    uplo: i32, trans: i32, diag: i32, n: i32,
    off_a: i32, lda: i32, off_x: i32, inc_x: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
` + triAtFn + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let r = i32(gid.x);
    if (r >= p.n) { return; }
    var s = 0.0;
    for (var c = 0; c < p.n; c++) {
        s += tri_at(r, c) * x[u32(p.off_x + c * p.inc_x)];
    }
    t[u32(r)] = s;
}
`
	s["blas_trmm"] = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> t: array<f32>;
struct Params {
    side: i32, uplo: i32, trans: i32, diag: i32, m: i32, n: i32,
    alpha: f32, off_a: i32, lda: i32, off_b: i32, ldb: i32,
}
@group(0) @binding(3) var<uniform> p: Params;
` + triAtFn + `
@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let row = i32(gid.x);
    let col = i32(gid.y);
    if (row >= p.m || col >= p.n) { return; }
    var s = 0.0;
    if (p.side == 0) {
        for (var kk = 0; kk < p.m; kk++) {
            s += tri_at(row, kk) * b[u32(p.off_b + col * p.ldb + kk)];
        }
    } else {
        for (var kk = 0; kk < p.n; kk++) {
            s += b[u32(p.off_b + kk * p.ldb + row)] * tri_at(kk, col);
        }
    }
    t[u32(col * p.m + row)] = p.alpha * s;
}
`
}

// tri_at reads op(A)(r, c) of a stored triangular factor, honoring fill
// mode and unit diagonal; entries outside the stored half read as zero.
const triAtFn = `
fn tri_at(r0: i32, c0: i32) -> f32 {
    var r = r0;
    var c = c0;
    if (p.trans != 0) {
        let tmp = r;
        r = c;
        c = tmp;
    }
    if (r == c) {
        if (p.diag != 0) { return 1.0; }
        return a[u32(p.off_a + c * p.lda + r)];
    }
    if ((p.uplo != 0 && c > r) || (p.uplo == 0 && c < r)) {
        return a[u32(p.off_a + c * p.lda + r)];
    }
    return 0.0;
}
`

func reduceBlockShader(term string) string {
	return `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> acc: array<f32>;
struct Params { n: i32, off_x: i32, inc_x: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let b = i32(gid.x);
    let base = b * 1024;
    if (base >= p.n) { return; }
    let stop = min(p.n, base + 1024);
    var s = 0.0;
    for (var i = base; i < stop; i++) {
        s += ` + term + `;
    }
    acc[u32(b)] = s;
}
`
}

// extremeIndexShader scans serially so the first extreme wins, matching
// the vendor's tie-breaking. Result is the 1-based index, zero for an
// empty range.
func extremeIndexShader(cmp string) string {
	return `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> res: array<i32>;
struct Params { n: i32, off_x: i32, inc_x: i32 }
@group(0) @binding(2) var<uniform> p: Params;
@compute @workgroup_size(1)
fn main() {
    if (p.n <= 0) {
        res[0] = 0;
        return;
    }
    var best = 1;
    var bestv = abs(x[u32(p.off_x)]);
    for (var i = 1; i < p.n; i++) {
        let v = abs(x[u32(p.off_x + i * p.inc_x)]);
        if (v ` + cmp + ` bestv) {
            bestv = v;
            best = i + 1;
        }
    }
    res[0] = best;
}
`
}
