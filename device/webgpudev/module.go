package webgpudev

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cubit-ml/cubit/device"
)

// module resolves kernel names against the WGSL source table. Pipelines
// are compiled lazily and cached on the runtime, so modules are cheap
// handles.
type module struct {
	rt *Runtime
}

func newModule(rt *Runtime) *module {
	return &module{rt: rt}
}

func (m *module) Kernel(name string) (device.Kernel, error) {
	if _, ok := shaderSources[name]; !ok {
		return nil, fmt.Errorf("%s: %w", name, device.ErrKernelNotFound)
	}
	return kernel{rt: m.rt, name: name}, nil
}

func (m *module) Release() {}

func (r *Runtime) pipeline(name string) (*wgpu.ComputePipeline, error) {
	r.mu.RLock()
	p, ok := r.pipelines[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pipelines[name]; ok {
		return p, nil
	}
	src, ok := shaderSources[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, device.ErrKernelNotFound)
	}
	shader, err := r.dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpudev: compiling %s: %w", name, err)
	}
	defer shader.Release()
	p, err = r.dev.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:   name,
		Compute: wgpu.ProgrammableStageDescriptor{Module: shader, EntryPoint: "main"},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpudev: pipeline for %s: %w", name, err)
	}
	r.pipelines[name] = p
	return p, nil
}

// kernel dispatches one named shader. Launch arguments follow the shared
// positional convention: buffers bind in encounter order starting at
// binding 0, and every scalar packs into the trailing uniform params
// block in encounter order, 4 bytes each, little-endian. Ints ride as
// i32 (strides and signs can be negative), element scalars as f32.
type kernel struct {
	rt   *Runtime
	name string
}

func (k kernel) Launch(_ device.Queue, grid device.Grid, args ...any) error {
	pipe, err := k.rt.pipeline(k.name)
	if err != nil {
		return err
	}

	var entries []wgpu.BindGroupEntry
	params := make([]byte, 0, 64)
	for i, arg := range args {
		switch v := arg.(type) {
		case device.Buffer:
			b, ok := v.(*gpuBuffer)
			if !ok {
				return fmt.Errorf("webgpudev: %s arg %d: foreign buffer %T", k.name, i, v)
			}
			entries = append(entries, wgpu.BindGroupEntry{
				Binding: uint32(len(entries)),
				Buffer:  b.buf,
				Size:    b.size,
			})
		case int:
			params = binary.LittleEndian.AppendUint32(params, uint32(int32(v)))
		case float32:
			params = binary.LittleEndian.AppendUint32(params, math.Float32bits(v))
		default:
			return fmt.Errorf("webgpudev: %s arg %d: unsupported type %T", k.name, i, arg)
		}
	}
	// Uniform blocks round up to 16 bytes.
	for len(params)%16 != 0 {
		params = append(params, 0)
	}

	paramBuf, err := k.rt.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: k.name + "-params",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(len(params)),
	})
	if err != nil {
		return fmt.Errorf("webgpudev: %s params buffer: %w", k.name, err)
	}
	defer paramBuf.Release()
	if err := k.rt.wq.WriteBuffer(paramBuf, 0, params); err != nil {
		return fmt.Errorf("webgpudev: %s params upload: %w", k.name, err)
	}
	entries = append(entries, wgpu.BindGroupEntry{
		Binding: uint32(len(entries)),
		Buffer:  paramBuf,
		Size:    uint64(len(params)),
	})

	layout := pipe.GetBindGroupLayout(0)
	bindGroup, err := k.rt.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   k.name,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("webgpudev: %s bind group: %w", k.name, err)
	}
	defer bindGroup.Release()

	encoder, err := k.rt.dev.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("webgpudev: %s encoder: %w", k.name, err)
	}
	defer encoder.Release()
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipe)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32(grid.X), uint32(max(grid.Y, 1)), 1)
	pass.End()
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("webgpudev: %s encoding: %w", k.name, err)
	}
	k.rt.wq.Submit(cmd)
	return nil
}

var _ device.Module = (*module)(nil)
