package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/device/hostdev"
	"github.com/cubit-ml/cubit/layout"
)

var orders = []layout.Order{layout.ColMajor, layout.RowMajor}

func TestGECopyAcrossOrders(t *testing.T) {
	vals := []float32{1, 2, 3, 4, 5, 6}
	for _, oa := range orders {
		for _, ob := range orders {
			t.Run(fmt.Sprintf("%v-to-%v", oa, ob), func(t *testing.T) {
				rt, eng := newEngine32(t)
				a := mat(rt, oa, 2, 3, vals)
				b := mat(rt, ob, 2, 3, make([]float32, 6))

				require.NoError(t, eng.GE.Copy(a, b))
				assert.Equal(t, vals, matVals(rt, b))

				eq, err := eng.GE.Equal(a, b)
				require.NoError(t, err)
				assert.True(t, eq)
			})
		}
	}
}

func TestGECopyStridedMatchesGapless(t *testing.T) {
	rt, eng := newEngine32(t)
	vals := []float32{1, 2, 3, 4, 5, 6}

	// Same copy once through the vendor fast path and once forced onto
	// the kernel path by a padded leading dimension.
	a := mat(rt, layout.ColMajor, 2, 3, vals)
	flat := mat(rt, layout.ColMajor, 2, 3, make([]float32, 6))
	padded := matStrided(rt, layout.ColMajor, 2, 3, 4, make([]float32, 6))

	require.NoError(t, eng.GE.Copy(a, flat))
	require.NoError(t, eng.GE.Copy(a, padded))

	assert.Equal(t, matVals(rt, flat), matVals(rt, padded))
}

func TestGESwapMixedOrder(t *testing.T) {
	rt, eng := newEngine32(t)
	av := []float32{1, 2, 3, 4}
	bv := []float32{5, 6, 7, 8}
	a := mat(rt, layout.ColMajor, 2, 2, av)
	b := mat(rt, layout.RowMajor, 2, 2, bv)

	require.NoError(t, eng.GE.Swap(a, b))
	assert.Equal(t, bv, matVals(rt, a))
	assert.Equal(t, av, matVals(rt, b))
}

func TestGEScalStridedLeavesPadding(t *testing.T) {
	rt, eng := newEngine32(t)
	a := matStrided(rt, layout.ColMajor, 2, 2, 3, []float32{1, 2, 3, 4})

	require.NoError(t, eng.GE.Scal(10, a))
	assert.Equal(t, []float32{10, 20, 30, 40}, matVals(rt, a))

	store := hostdev.Download[float32](rt, a.Data)
	assert.Equal(t, pad, store[2], "padding cell untouched")
	assert.Equal(t, pad, store[5], "padding cell untouched")
}

func TestGEFill(t *testing.T) {
	rt, eng := newEngine32(t)
	a := matStrided(rt, layout.RowMajor, 2, 2, 3, make([]float32, 4))

	require.NoError(t, eng.GE.Fill(5, a))
	assert.Equal(t, []float32{5, 5, 5, 5}, matVals(rt, a))
	store := hostdev.Download[float32](rt, a.Data)
	assert.Equal(t, pad, store[2])
}

func TestGEAxpby(t *testing.T) {
	for _, ob := range orders {
		t.Run(ob.String(), func(t *testing.T) {
			rt, eng := newEngine32(t)
			a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 2, 3, 4})
			b := mat(rt, ob, 2, 2, []float32{10, 20, 30, 40})

			require.NoError(t, eng.GE.Axpby(2, a, 3, b))
			assert.Equal(t, []float32{32, 64, 96, 128}, matVals(rt, b))
		})
	}
}

func TestGEAxpy(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 2, 3, 4})
	b := mat(rt, layout.ColMajor, 2, 2, []float32{1, 1, 1, 1})

	require.NoError(t, eng.GE.Axpy(3, a, b))
	assert.Equal(t, []float32{4, 7, 10, 13}, matVals(rt, b))
}

func TestGEDot(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 2, 3, 4})
	b := mat(rt, layout.ColMajor, 2, 2, []float32{2, 2, 2, 2})

	d, err := eng.GE.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, float32(20), d)
}

func TestGEDotCapabilityGaps(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 2, 3, 4})
	rowB := mat(rt, layout.RowMajor, 2, 2, []float32{1, 2, 3, 4})
	padB := matStrided(rt, layout.ColMajor, 2, 2, 3, []float32{1, 2, 3, 4})

	_, err := eng.GE.Dot(a, rowB)
	assert.ErrorIs(t, err, device.ErrUnsupported)
	_, err = eng.GE.Dot(a, padB)
	assert.ErrorIs(t, err, device.ErrUnsupported)
}

func TestGENorms(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{3, 0, 0, -4})

	n2, err := eng.GE.Nrm2(a)
	require.NoError(t, err)
	assert.Equal(t, float32(5), n2)

	asum, err := eng.GE.Asum(a)
	require.NoError(t, err)
	assert.Equal(t, float32(7), asum)

	padded := matStrided(rt, layout.ColMajor, 2, 2, 3, []float32{3, 0, 0, -4})
	_, err = eng.GE.Nrm2(padded)
	assert.ErrorIs(t, err, device.ErrUnsupported)
	_, err = eng.GE.Asum(padded)
	assert.ErrorIs(t, err, device.ErrUnsupported)

	_, err = eng.GE.Nrm1(a)
	assert.ErrorIs(t, err, device.ErrUnsupported)
	_, err = eng.GE.NrmI(a)
	assert.ErrorIs(t, err, device.ErrUnsupported)
}

func TestGEEqual(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 3, []float32{1, 2, 3, 4, 5, 6})
	b := mat(rt, layout.RowMajor, 2, 3, []float32{1, 2, 3, 4, 5, 6})
	c := mat(rt, layout.RowMajor, 2, 3, []float32{1, 2, 3, 4, 9, 6})

	eq, err := eng.GE.Equal(a, b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = eng.GE.Equal(a, c)
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = eng.GE.Equal(a, mat(rt, layout.ColMajor, 3, 2, []float32{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	assert.False(t, eq, "shape mismatch")
}

func TestGEMvOrientationInvariance(t *testing.T) {
	vals := []float32{1, 2, 3, 4, 5, 6}
	for _, order := range orders {
		t.Run(order.String(), func(t *testing.T) {
			rt, eng := newEngine32(t)
			a := mat(rt, order, 2, 3, vals)
			x := vec(rt, []float32{1, 1, 1})
			y := vec(rt, []float32{1, 1})

			require.NoError(t, eng.GE.Mv(2, a, x, 3, y))
			assert.Equal(t, []float32{15, 33}, dump(rt, y))
		})
	}
}

func TestGEMvRejectsInPlace(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 2, 3, 4})
	x := vec(rt, []float32{1, 1})

	err := eng.GE.Mv(1, a, x, 0, x)
	var usage *device.UsageError
	assert.ErrorAs(t, err, &usage)
}

func TestGERk(t *testing.T) {
	for _, order := range orders {
		t.Run(order.String(), func(t *testing.T) {
			rt, eng := newEngine32(t)
			a := mat(rt, order, 2, 2, make([]float32, 4))
			x := vec(rt, []float32{1, 2})
			y := vec(rt, []float32{3, 4})

			require.NoError(t, eng.GE.Rk(1, x, y, a))
			assert.Equal(t, []float32{3, 4, 6, 8}, matVals(rt, a))
		})
	}
}

// refMatMul multiplies row-major value grids on the host.
func refMatMul(m, n, k int, a, b []float32) []float32 {
	out := make([]float32, m*n)
	for r := 0; r < m; r++ {
		for c := 0; c < n; c++ {
			var acc float32
			for i := 0; i < k; i++ {
				acc += a[r*k+i] * b[i*n+c]
			}
			out[r*n+c] = acc
		}
	}
	return out
}

func TestGEMmAllOrientations(t *testing.T) {
	av := []float32{1, 2, 3, 4, 5, 6}    // 2x3
	bv := []float32{7, 8, 9, 10, 11, 12} // 3x2
	want := refMatMul(2, 2, 3, av, bv)

	for _, oa := range orders {
		for _, ob := range orders {
			for _, oc := range orders {
				t.Run(fmt.Sprintf("a-%v_b-%v_c-%v", oa, ob, oc), func(t *testing.T) {
					rt, eng := newEngine32(t)
					a := mat(rt, oa, 2, 3, av)
					b := mat(rt, ob, 3, 2, bv)
					c := mat(rt, oc, 2, 2, make([]float32, 4))

					require.NoError(t, eng.GE.Mm(1, a, b, 0, c))
					assert.Equal(t, want, matVals(rt, c))
				})
			}
		}
	}
}

func TestGEMmAccumulates(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 2, []float32{1, 0, 0, 1})
	b := mat(rt, layout.RowMajor, 2, 2, []float32{1, 2, 3, 4})
	c := mat(rt, layout.ColMajor, 2, 2, []float32{10, 10, 10, 10})

	// c <- 2*I*b + 1*c
	require.NoError(t, eng.GE.Mm(2, a, b, 1, c))
	assert.Equal(t, []float32{12, 14, 16, 18}, matVals(rt, c))
}

func TestGEMmRejectsBadChain(t *testing.T) {
	rt, eng := newEngine32(t)
	a := mat(rt, layout.ColMajor, 2, 3, make([]float32, 6))
	b := mat(rt, layout.ColMajor, 2, 2, make([]float32, 4))
	c := mat(rt, layout.ColMajor, 2, 2, make([]float32, 4))

	err := eng.GE.Mm(1, a, b, 0, c)
	var usage *device.UsageError
	assert.ErrorAs(t, err, &usage)
}

func TestGEEmptyIsNoOp(t *testing.T) {
	rt, eng := newEngine32(t)
	empty := mat(rt, layout.ColMajor, 0, 3, nil)

	require.NoError(t, eng.GE.Scal(2, empty))
	d, err := eng.GE.Dot(empty, empty)
	require.NoError(t, err)
	assert.Zero(t, d)

	eq, err := eng.GE.Equal(empty, mat(rt, layout.ColMajor, 0, 3, nil))
	require.NoError(t, err)
	assert.True(t, eq)
}
