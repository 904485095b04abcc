package hostdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubit-ml/cubit/device"
)

// The vendor entrypoints take column-major storage and element-unit
// offsets; every expected slice below is spelled in that storage order.

func blasFixture(t *testing.T) (*Runtime, device.Queue, device.Blas[float32]) {
	t.Helper()
	rt := New()
	t.Cleanup(func() { require.NoError(t, rt.Close()) })
	return rt, rt.Queue(), rt.Blas32()
}

func TestBlasSwapCopy(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{1, 2, 3})
	y := Upload(rt, []float32{4, 5, 6})

	require.Equal(t, device.StatusOK, bl.Swap(q, 3, x, 0, 1, y, 0, 1))
	assert.Equal(t, []float32{4, 5, 6}, Download[float32](rt, x))
	assert.Equal(t, []float32{1, 2, 3}, Download[float32](rt, y))

	require.Equal(t, device.StatusOK, bl.Copy(q, 3, x, 0, 1, y, 0, 1))
	assert.Equal(t, []float32{4, 5, 6}, Download[float32](rt, y))
}

func TestBlasDotStrided(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{1, 99, 2, 99, 3})
	y := Upload(rt, []float32{10, 20, 30})

	var res float32
	require.Equal(t, device.StatusOK, bl.Dot(q, 3, x, 0, 2, y, 0, 1, &res))
	assert.Equal(t, float32(140), res)
}

func TestBlasNorms(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{3, -4})

	var res float32
	require.Equal(t, device.StatusOK, bl.Nrm2(q, 2, x, 0, 1, &res))
	assert.Equal(t, float32(5), res)
	require.Equal(t, device.StatusOK, bl.Asum(q, 2, x, 0, 1, &res))
	assert.Equal(t, float32(7), res)
}

func TestBlasIamaxIamin(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{-1, 5, -9, 2, 9})

	var idx int
	require.Equal(t, device.StatusOK, bl.Iamax(q, 5, x, 0, 1, &idx))
	assert.Equal(t, 3, idx, "one-based, first extreme wins")
	require.Equal(t, device.StatusOK, bl.Iamin(q, 5, x, 0, 1, &idx))
	assert.Equal(t, 1, idx)

	require.Equal(t, device.StatusOK, bl.Iamax(q, 0, x, 0, 1, &idx))
	assert.Equal(t, 0, idx, "empty input yields index zero")
}

func TestBlasRot(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{1, 0})
	y := Upload(rt, []float32{0, 1})

	require.Equal(t, device.StatusOK, bl.Rot(q, 2, x, 0, 1, y, 0, 1, 0, 1))
	assert.Equal(t, []float32{0, 1}, Download[float32](rt, x))
	assert.Equal(t, []float32{-1, 0}, Download[float32](rt, y))
}

func TestBlasRotmFlags(t *testing.T) {
	rt, q, bl := blasFixture(t)

	apply := func(param []float32, x0, y0 []float32) ([]float32, []float32) {
		x := Upload(rt, x0)
		y := Upload(rt, y0)
		h := Upload(rt, param)
		require.Equal(t, device.StatusOK, bl.Rotm(q, len(x0), x, 0, 1, y, 0, 1, h, 0))
		return Download[float32](rt, x), Download[float32](rt, y)
	}

	x, y := apply([]float32{-2, 0, 0, 0, 0}, []float32{1, 2}, []float32{3, 4})
	assert.Equal(t, []float32{1, 2}, x, "flag -2 is the identity")
	assert.Equal(t, []float32{3, 4}, y)

	x, y = apply([]float32{-1, 2, 0, 0, 3}, []float32{1, 2}, []float32{3, 4})
	assert.Equal(t, []float32{2, 4}, x)
	assert.Equal(t, []float32{9, 12}, y)

	x, y = apply([]float32{0, 0, 2, 3, 0}, []float32{1, 2}, []float32{10, 20})
	assert.Equal(t, []float32{31, 62}, x, "flag 0 forces unit diagonal")
	assert.Equal(t, []float32{12, 24}, y)

	x, y = apply([]float32{1, 2, 0, 0, 3}, []float32{1, 2}, []float32{10, 20})
	assert.Equal(t, []float32{12, 24}, x, "flag 1 forces the anti-diagonal")
	assert.Equal(t, []float32{29, 58}, y)
}

func TestBlasScalAxpy(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{1, 2, 3})
	y := Upload(rt, []float32{10, 20, 30})

	require.Equal(t, device.StatusOK, bl.Scal(q, 3, 2, x, 0, 1))
	assert.Equal(t, []float32{2, 4, 6}, Download[float32](rt, x))

	require.Equal(t, device.StatusOK, bl.Axpy(q, 3, 10, x, 0, 1, y, 0, 1))
	assert.Equal(t, []float32{30, 60, 90}, Download[float32](rt, y))
}

func TestBlasGemv(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// A = [[1 2 3], [4 5 6]], 2x3 column-major.
	a := Upload(rt, []float32{1, 4, 2, 5, 3, 6})

	x := Upload(rt, []float32{1, 1, 1})
	y := Upload(rt, []float32{1, 1})
	require.Equal(t, device.StatusOK,
		bl.Gemv(q, device.NoTrans, 2, 3, 2, a, 0, 2, x, 0, 1, 3, y, 0, 1))
	assert.Equal(t, []float32{15, 33}, Download[float32](rt, y))

	xt := Upload(rt, []float32{1, 1})
	yt := Upload(rt, []float32{0, 0, 0})
	require.Equal(t, device.StatusOK,
		bl.Gemv(q, device.Trans, 2, 3, 1, a, 0, 2, xt, 0, 1, 0, yt, 0, 1))
	assert.Equal(t, []float32{5, 7, 9}, Download[float32](rt, yt))
}

func TestBlasGer(t *testing.T) {
	rt, q, bl := blasFixture(t)
	a := Upload(rt, make([]float32, 4))
	x := Upload(rt, []float32{1, 2})
	y := Upload(rt, []float32{3, 4})

	require.Equal(t, device.StatusOK, bl.Ger(q, 2, 2, 1, x, 0, 1, y, 0, 1, a, 0, 2))
	assert.Equal(t, []float32{3, 6, 4, 8}, Download[float32](rt, a))
}

func TestBlasGemmTransposes(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// A = [[1 2], [3 4]], B = [[5 6], [7 8]], C = A*B = [[19 22], [43 50]].
	plainA := []float32{1, 3, 2, 4}
	transA := []float32{1, 2, 3, 4}
	plainB := []float32{5, 7, 6, 8}
	transB := []float32{5, 6, 7, 8}
	want := []float32{19, 43, 22, 50}

	cases := []struct {
		name   string
		ta, tb device.Transpose
		a, b   []float32
	}{
		{"nn", device.NoTrans, device.NoTrans, plainA, plainB},
		{"tn", device.Trans, device.NoTrans, transA, plainB},
		{"nt", device.NoTrans, device.Trans, plainA, transB},
		{"tt", device.Trans, device.Trans, transA, transB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Upload(rt, tc.a)
			b := Upload(rt, tc.b)
			c := Upload(rt, make([]float32, 4))
			require.Equal(t, device.StatusOK,
				bl.Gemm(q, tc.ta, tc.tb, 2, 2, 2, 1, a, 0, 2, b, 0, 2, 0, c, 0, 2))
			assert.Equal(t, want, Download[float32](rt, c))
		})
	}
}

func TestBlasGemmAccumulates(t *testing.T) {
	rt, q, bl := blasFixture(t)
	a := Upload(rt, []float32{1, 0, 0, 1})
	b := Upload(rt, []float32{1, 2, 3, 4})
	c := Upload(rt, []float32{10, 10, 10, 10})

	require.Equal(t, device.StatusOK,
		bl.Gemm(q, device.NoTrans, device.NoTrans, 2, 2, 2, 2, a, 0, 2, b, 0, 2, 1, c, 0, 2))
	assert.Equal(t, []float32{12, 14, 16, 18}, Download[float32](rt, c))
}

func TestBlasTrmv(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// Upper triangle of [[1 2 3], [. 4 5], [. . 6]]; the unstored half
	// holds garbage that must never be read.
	a := Upload(rt, []float32{1, 99, 99, 2, 4, 99, 3, 5, 6})

	x := Upload(rt, []float32{1, 1, 1})
	require.Equal(t, device.StatusOK,
		bl.Trmv(q, device.Upper, device.NoTrans, device.NonUnit, 3, a, 0, 3, x, 0, 1))
	assert.Equal(t, []float32{6, 9, 6}, Download[float32](rt, x))

	x = Upload(rt, []float32{1, 1, 1})
	require.Equal(t, device.StatusOK,
		bl.Trmv(q, device.Upper, device.Trans, device.NonUnit, 3, a, 0, 3, x, 0, 1))
	assert.Equal(t, []float32{1, 6, 14}, Download[float32](rt, x))

	x = Upload(rt, []float32{1, 1, 1})
	require.Equal(t, device.StatusOK,
		bl.Trmv(q, device.Upper, device.NoTrans, device.Unit, 3, a, 0, 3, x, 0, 1))
	assert.Equal(t, []float32{6, 6, 1}, Download[float32](rt, x), "unit diagonal ignores stored diagonal")
}

func TestBlasTrmvLower(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// Lower triangle of [[2 .], [1 3]].
	a := Upload(rt, []float32{2, 1, 99, 3})
	x := Upload(rt, []float32{1, 1})

	require.Equal(t, device.StatusOK,
		bl.Trmv(q, device.Lower, device.NoTrans, device.NonUnit, 2, a, 0, 2, x, 0, 1))
	assert.Equal(t, []float32{2, 4}, Download[float32](rt, x))
}

func TestBlasTrmmSides(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// A = [[2 1], [. 3]] upper, B = [[1 2], [3 4]].
	av := []float32{2, 99, 1, 3}
	bv := []float32{1, 3, 2, 4}

	a := Upload(rt, av)
	b := Upload(rt, bv)
	require.Equal(t, device.StatusOK,
		bl.Trmm(q, device.Left, device.Upper, device.NoTrans, device.NonUnit, 2, 2, 1, a, 0, 2, b, 0, 2))
	assert.Equal(t, []float32{5, 9, 8, 12}, Download[float32](rt, b), "A*B")

	a = Upload(rt, av)
	b = Upload(rt, bv)
	require.Equal(t, device.StatusOK,
		bl.Trmm(q, device.Right, device.Upper, device.NoTrans, device.NonUnit, 2, 2, 1, a, 0, 2, b, 0, 2))
	assert.Equal(t, []float32{2, 6, 7, 15}, Download[float32](rt, b), "B*A")
}

func TestBlasTrmmAlpha(t *testing.T) {
	rt, q, bl := blasFixture(t)
	// Unit diagonal with a zero strict upper half: the identity. The
	// stored diagonal holds garbage to prove it is never read.
	a := Upload(rt, []float32{99, 99, 0, 99})
	b := Upload(rt, []float32{1, 2, 3, 4})

	require.Equal(t, device.StatusOK,
		bl.Trmm(q, device.Left, device.Upper, device.NoTrans, device.Unit, 2, 2, 5, a, 0, 2, b, 0, 2))
	assert.Equal(t, []float32{5, 10, 15, 20}, Download[float32](rt, b))
}

func TestBlasNegativeDim(t *testing.T) {
	rt, q, bl := blasFixture(t)
	x := Upload(rt, []float32{1})
	y := Upload(rt, []float32{1})

	var res float32
	assert.Equal(t, statusBadDim, bl.Scal(q, -1, 2, x, 0, 1))
	assert.Equal(t, statusBadDim, bl.Dot(q, -1, x, 0, 1, y, 0, 1, &res))
	assert.Equal(t, statusBadDim, bl.Gemv(q, device.NoTrans, -1, 1, 1, x, 0, 1, x, 0, 1, 0, y, 0, 1))
	assert.Equal(t, statusBadDim, bl.Gemm(q, device.NoTrans, device.NoTrans, 1, 1, -1, 1, x, 0, 1, x, 0, 1, 0, y, 0, 1))
	assert.Equal(t, statusBadDim, bl.Trmv(q, device.Upper, device.NoTrans, device.NonUnit, -1, x, 0, 1, y, 0, 1))
}
