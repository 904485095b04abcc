package hostdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

func TestAllocZeroed(t *testing.T) {
	rt := New()
	buf, err := rt.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), buf.Size())
	assert.Equal(t, []float32{0, 0, 0, 0}, Download[float32](rt, buf))
}

func TestQueueBounds(t *testing.T) {
	rt := New()
	buf, err := rt.Alloc(8)
	require.NoError(t, err)
	q := rt.Queue()

	require.NoError(t, q.Write(buf, 4, []byte{1, 2, 3, 4}))
	dst := make([]byte, 4)
	require.NoError(t, q.Read(buf, 4, dst))
	assert.Equal(t, []byte{1, 2, 3, 4}, dst)

	assert.Error(t, q.Read(buf, 8, dst))
	assert.Error(t, q.Write(buf, 6, []byte{1, 2, 3, 4}))
}

func TestModuleLookup(t *testing.T) {
	rt := New()
	mod, err := rt.Module(layout.Float32)
	require.NoError(t, err)
	defer mod.Release()

	_, err = mod.Kernel("vector_set")
	assert.NoError(t, err)

	_, err = mod.Kernel("no_such_kernel")
	assert.ErrorIs(t, err, device.ErrKernelNotFound)
}

func TestModuleRejectsUnknownDType(t *testing.T) {
	rt := New()
	_, err := rt.Module(layout.DType(9))
	assert.Error(t, err)
}

func TestKernelLaunch(t *testing.T) {
	rt := New()
	mod, err := rt.Module(layout.Float32)
	require.NoError(t, err)
	defer mod.Release()

	k, err := mod.Kernel("vector_set")
	require.NoError(t, err)

	x := Upload(rt, []float32{0, 0, 0, 0})
	require.NoError(t, k.Launch(rt.Queue(), device.Grid1D(3, 256), 3, float32(7), x, 1, 1))
	assert.Equal(t, []float32{0, 7, 7, 7}, Download[float32](rt, x))
}
