package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubit-ml/cubit/device/hostdev"
	"github.com/cubit-ml/cubit/engine"
	"github.com/cubit-ml/cubit/layout"
)

// The engine tests run against the hostdev runtime: immediate-mode queue,
// host buffers, and the reference vendor table. Everything observable
// through the dispatch layer is covered here; runtime-specific behavior
// lives with each runtime's own tests.

func newEngine32(t *testing.T) (*hostdev.Runtime, *engine.Engine[float32]) {
	t.Helper()
	rt := hostdev.New()
	eng, err := engine.New[float32](rt, rt.Blas32())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, eng.Close())
		require.NoError(t, rt.Close())
	})
	return rt, eng
}

func newEngine64(t *testing.T) (*hostdev.Runtime, *engine.Engine[float64]) {
	t.Helper()
	rt := hostdev.New()
	eng, err := engine.New[float64](rt, rt.Blas64())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, eng.Close())
		require.NoError(t, rt.Close())
	})
	return rt, eng
}

func vec(rt *hostdev.Runtime, data []float32) engine.Vector[float32] {
	return engine.NewVector[float32](len(data), hostdev.Upload(rt, data))
}

// vecStrided builds a dim-element view at the given offset and stride
// over the uploaded backing data.
func vecStrided(rt *hostdev.Runtime, dim, off, inc int, data []float32) engine.Vector[float32] {
	return engine.Vector[float32]{Dim: dim, Off: off, Inc: inc, Data: hostdev.Upload(rt, data)}
}

func dump(rt *hostdev.Runtime, v engine.Vector[float32]) []float32 {
	return hostdev.Download[float32](rt, v.Data)
}

// pad marks storage cells no operation may touch.
const pad = float32(-999)

// storageIndex locates logical (r, c) inside a matrix's storage.
func storageIndex(order layout.Order, ld, r, c int) int {
	if order.IsColMajor() {
		return c*ld + r
	}
	return r*ld + c
}

// mat builds a gapless rows x cols matrix holding vals given in row-major
// reading order.
func mat(rt *hostdev.Runtime, order layout.Order, rows, cols int, vals []float32) engine.General[float32] {
	a := engine.NewGeneral[float32](order, rows, cols, nil)
	store := make([]float32, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			store[storageIndex(order, a.Stor.Ld, r, c)] = vals[r*cols+c]
		}
	}
	a.Data = hostdev.Upload(rt, store)
	return a
}

// matStrided is mat with a padded leading dimension; the padding cells
// hold the sentinel so tests can assert they were left alone.
func matStrided(rt *hostdev.Runtime, order layout.Order, rows, cols, ld int, vals []float32) engine.General[float32] {
	a := engine.NewGeneralStrided[float32](order, rows, cols, ld, nil)
	store := make([]float32, ld*a.Stor.Major)
	for i := range store {
		store[i] = pad
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			store[storageIndex(order, ld, r, c)] = vals[r*cols+c]
		}
	}
	a.Data = hostdev.Upload(rt, store)
	return a
}

// matVals reads a matrix back in row-major reading order.
func matVals(rt *hostdev.Runtime, a engine.General[float32]) []float32 {
	store := hostdev.Download[float32](rt, a.Data)
	out := make([]float32, a.Rows*a.Cols)
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Cols; c++ {
			out[r*a.Cols+c] = store[a.Off+storageIndex(a.Order, a.Stor.Ld, r, c)]
		}
	}
	return out
}

// tri builds a packed n x n triangular matrix. vals is the full n x n
// grid in row-major reading order; cells outside the populated region are
// stored as the sentinel so region discipline is observable.
func tri(rt *hostdev.Runtime, order layout.Order, n int, reg layout.Region, vals []float32) engine.Triangular[float32] {
	a := engine.NewTriangular[float32](order, n, reg, nil)
	store := make([]float32, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := vals[r*n+c]
			if reg.Sign()*(c-r) < reg.UnitShift() {
				v = pad
			}
			store[storageIndex(order, a.Stor.Ld, r, c)] = v
		}
	}
	a.Data = hostdev.Upload(rt, store)
	return a
}

// triVals reads the full stored grid back in row-major reading order.
func triVals(rt *hostdev.Runtime, a engine.Triangular[float32]) []float32 {
	store := hostdev.Download[float32](rt, a.Data)
	out := make([]float32, a.N*a.N)
	for r := 0; r < a.N; r++ {
		for c := 0; c < a.N; c++ {
			out[r*a.N+c] = store[a.Off+storageIndex(a.Order, a.Stor.Ld, r, c)]
		}
	}
	return out
}
