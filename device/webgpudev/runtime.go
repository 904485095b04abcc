// Package webgpudev implements the device contracts over WebGPU using
// the cogentcore wgpu bindings. Kernels are WGSL compute shaders compiled
// on first use and cached; the vendor BLAS entrypoints are shaders of the
// same module. WGSL has no 64-bit floats, so only the float32 module is
// available, and kernels whose math has no WGSL builtin (the
// erf/gamma/normal-CDF families) are reported as missing, which the
// dispatch layer surfaces as an unsupported capability.
package webgpudev

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/layout"
)

// Runtime owns the WebGPU instance, adapter, device and queue.
type Runtime struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	dev      *wgpu.Device
	wq       *wgpu.Queue

	info wgpu.AdapterInfo

	// Compiled pipelines are cached per kernel name; shader compilation
	// dominates small launches otherwise.
	mu        sync.RWMutex
	pipelines map[string]*wgpu.ComputePipeline
}

// New initializes WebGPU on the highest-performance adapter available.
func New() (rt *Runtime, err error) {
	// The native library loads lazily; a missing wgpu_native surfaces as
	// a panic inside CreateInstance.
	defer func() {
		if r := recover(); r != nil {
			rt = nil
			err = fmt.Errorf("webgpudev: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpudev: requesting adapter: %w", err)
	}
	info := adapter.GetInfo()
	dev, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpudev: requesting device: %w", err)
	}
	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpudev: device has no queue")
	}
	return &Runtime{
		instance:  instance,
		adapter:   adapter,
		dev:       dev,
		wq:        queue,
		info:      info,
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// IsAvailable probes whether a WebGPU adapter can be acquired.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// AdapterName describes the adapter this runtime runs on.
func (r *Runtime) AdapterName() string {
	return fmt.Sprintf("%s (%s)", r.info.Name, r.info.VendorName)
}

// Queue returns the device queue adapter.
func (r *Runtime) Queue() device.Queue {
	return gpuQueue{rt: r}
}

// Module returns the WGSL kernel module. Only float32 is expressible in
// WGSL.
func (r *Runtime) Module(dt layout.DType) (device.Module, error) {
	if dt != layout.Float32 {
		return nil, fmt.Errorf("webgpudev: no %s kernels: WGSL has no 64-bit floats", dt)
	}
	return newModule(r), nil
}

// Blas32 returns the shader-backed vendor entrypoint table.
func (r *Runtime) Blas32() device.Blas[float32] {
	return &shaderBlas{rt: r, mod: newModule(r)}
}

// Alloc creates a zero-initialized storage buffer. WebGPU guarantees
// fresh buffers read as zero.
func (r *Runtime) Alloc(size uint64) (device.Buffer, error) {
	// Storage bindings need 4-byte-aligned sizes.
	aligned := (size + 3) &^ 3
	buf, err := r.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  aligned,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpudev: buffer allocation of %d bytes: %w", size, err)
	}
	return &gpuBuffer{buf: buf, size: aligned}, nil
}

// Upload creates a storage buffer holding the given bytes.
func (r *Runtime) Upload(data []byte) (device.Buffer, error) {
	buf, err := r.Alloc(uint64(len(data)))
	if err != nil {
		return nil, err
	}
	if err := r.wq.WriteBuffer(buf.(*gpuBuffer).buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("webgpudev: uploading %d bytes: %w", len(data), err)
	}
	return buf, nil
}

// Close releases the WebGPU objects. Must be called exactly once.
func (r *Runtime) Close() error {
	r.mu.Lock()
	for _, p := range r.pipelines {
		p.Release()
	}
	r.pipelines = nil
	r.mu.Unlock()
	if r.wq != nil {
		r.wq.Release()
		r.wq = nil
	}
	if r.dev != nil {
		r.dev.Release()
		r.dev = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
	return nil
}

type gpuBuffer struct {
	buf  *wgpu.Buffer
	size uint64
}

func (b *gpuBuffer) Size() uint64 {
	return b.size
}

func (b *gpuBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

// gpuQueue adapts the wgpu queue. Read goes through a staging buffer
// because storage buffers cannot be mapped directly; the map wait is the
// queue drain the engines rely on for blocking reads.
type gpuQueue struct {
	rt *Runtime
}

func (q gpuQueue) Read(buf device.Buffer, off uint64, dst []byte) error {
	b, ok := buf.(*gpuBuffer)
	if !ok {
		return fmt.Errorf("webgpudev: foreign buffer %T", buf)
	}
	size := (uint64(len(dst)) + 3) &^ 3
	staging, err := q.rt.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	if err != nil {
		return fmt.Errorf("webgpudev: staging buffer: %w", err)
	}
	defer staging.Release()

	encoder, err := q.rt.dev.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("webgpudev: command encoder: %w", err)
	}
	if err := encoder.CopyBufferToBuffer(b.buf, off, staging, 0, size); err != nil {
		return fmt.Errorf("webgpudev: copy to staging: %w", err)
	}
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("webgpudev: encoding read-back: %w", err)
	}
	q.rt.wq.Submit(cmd)

	done := make(chan wgpu.BufferMapAsyncStatus, 1)
	if err := staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		done <- status
	}); err != nil {
		return fmt.Errorf("webgpudev: mapping staging buffer: %w", err)
	}
	q.rt.dev.Poll(true, nil)
	if status := <-done; status != wgpu.BufferMapAsyncStatusSuccess {
		return fmt.Errorf("webgpudev: staging map failed with status %v", status)
	}
	copy(dst, staging.GetMappedRange(0, uint(size)))
	staging.Unmap()
	return nil
}

func (q gpuQueue) Write(buf device.Buffer, off uint64, src []byte) error {
	b, ok := buf.(*gpuBuffer)
	if !ok {
		return fmt.Errorf("webgpudev: foreign buffer %T", buf)
	}
	if err := q.rt.wq.WriteBuffer(b.buf, off, src); err != nil {
		return fmt.Errorf("webgpudev: writing %d bytes: %w", len(src), err)
	}
	return nil
}

var _ device.Runtime = (*Runtime)(nil)
