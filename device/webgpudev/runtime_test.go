package webgpudev_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/device/webgpudev"
	"github.com/cubit-ml/cubit/engine"
	"github.com/cubit-ml/cubit/layout"
)

// The webgpudev tests need a working adapter; they skip on machines
// without one so the rest of the suite stays runnable everywhere.

func newRuntime(t *testing.T) *webgpudev.Runtime {
	t.Helper()
	if !webgpudev.IsAvailable() {
		t.Skip("no WebGPU adapter available")
	}
	rt, err := webgpudev.New()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, rt.Close()) })
	return rt
}

func packFloats(vals []float32) []byte {
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func unpackFloats(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out
}

func TestBufferRoundTrip(t *testing.T) {
	rt := newRuntime(t)
	src := []float32{1, 2, 3, 4}
	buf, err := rt.Upload(packFloats(src))
	require.NoError(t, err)
	defer buf.Release()

	raw := make([]byte, 16)
	require.NoError(t, rt.Queue().Read(buf, 0, raw))
	assert.Equal(t, src, unpackFloats(raw))
}

func TestModuleFloat32Only(t *testing.T) {
	rt := newRuntime(t)
	_, err := rt.Module(layout.Float64)
	assert.Error(t, err, "WGSL has no f64")

	mod, err := rt.Module(layout.Float32)
	require.NoError(t, err)
	defer mod.Release()

	_, err = mod.Kernel("vector_set")
	assert.NoError(t, err)
	_, err = mod.Kernel("vector_erf")
	assert.ErrorIs(t, err, device.ErrKernelNotFound, "math families without WGSL builtins stay unregistered")
}

func TestEngineScalAsum(t *testing.T) {
	rt := newRuntime(t)
	eng, err := engine.New[float32](rt, rt.Blas32())
	require.NoError(t, err)
	defer eng.Close()

	buf, err := rt.Upload(packFloats([]float32{1, 2, 3, 4}))
	require.NoError(t, err)
	defer buf.Release()
	x := engine.NewVector[float32](4, buf)

	require.NoError(t, eng.Vector.Scal(2, x))
	asum, err := eng.Vector.Asum(x)
	require.NoError(t, err)
	assert.InDelta(t, 20, asum, 1e-5)
}

func TestEngineKernelPath(t *testing.T) {
	rt := newRuntime(t)
	eng, err := engine.New[float32](rt, rt.Blas32())
	require.NoError(t, err)
	defer eng.Close()

	buf, err := rt.Upload(packFloats([]float32{1, 4, 9, 16}))
	require.NoError(t, err)
	defer buf.Release()
	out, err := rt.Alloc(16)
	require.NoError(t, err)
	defer out.Release()

	x := engine.NewVector[float32](4, buf)
	y := engine.NewVector[float32](4, out)
	require.NoError(t, eng.Vector.Sqrt(x, y))

	raw := make([]byte, 16)
	require.NoError(t, rt.Queue().Read(y.Data, 0, raw))
	got := unpackFloats(raw)
	want := []float32{1, 2, 3, 4}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5)
	}
}
