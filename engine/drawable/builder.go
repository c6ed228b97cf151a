// Package drawable builds GPU render pipelines together with the vertex,
// index and bound resources they draw with, and records the resulting draw
// calls into a render pass.
package drawable

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Target is the render destination a drawable's pipeline is built for.
type Target interface {
	Device() gpu.Device
	SurfaceFormat() wgpu.TextureFormat
	DepthFormat() wgpu.TextureFormat
	MultisampleCount() uint32
}

type attribute struct {
	location uint32
	stepMode wgpu.VertexStepMode
	format   wgpu.VertexFormat
	data     []byte
	shared   *InstancesAttribute
}

// Builder collects everything a Drawable needs and creates the GPU objects in
// Build. A Builder is single use.
type Builder struct {
	target        Target
	vertex        *shader.Module
	fragment      *shader.Module
	mode          DrawMode
	config        builderConfig
	attributes    []attribute
	slots         []BindingSlot
	instanceCount uint32
	blend         *wgpu.BlendState
	built         bool
}

// NewBuilder starts a drawable for target.
//
// Parameters:
//   - target: the render destination whose formats and sample count the pipeline must match
//   - vertex: the compiled module holding the vertex entry point
//   - fragment: the compiled module holding the fragment entry point (may be the same module)
//   - mode: Direct or Indexed
//   - options: builder options
//
// Returns:
//   - *Builder: the builder
func NewBuilder(target Target, vertex, fragment *shader.Module, mode DrawMode, options ...BuilderOption) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	return &Builder{
		target:        target,
		vertex:        vertex,
		fragment:      fragment,
		mode:          mode,
		config:        cfg,
		instanceCount: 1,
	}
}

// AddAttribute registers a vertex buffer read at a shader location. On error
// the builder is left unchanged.
//
// Parameters:
//   - location: the @location the attribute is read at
//   - stepMode: per-vertex or per-instance stepping
//   - data: raw element bytes, copied
//   - format: the vertex format of one element
//
// Returns:
//   - error: a *DuplicateLocationError if location is already taken
func (b *Builder) AddAttribute(location uint32, stepMode wgpu.VertexStepMode, data []byte, format wgpu.VertexFormat) error {
	if err := b.checkLocation(location, format); err != nil {
		return err
	}
	b.attributes = append(b.attributes, attribute{
		location: location,
		stepMode: stepMode,
		format:   format,
		data:     append([]byte(nil), data...),
	})
	return nil
}

// AddInstancesAttribute registers a shared per-instance buffer at a shader
// location. The built drawable holds its own reference to the buffer.
//
// Parameters:
//   - location: the @location the attribute is read at
//   - attr: the shared attribute
//
// Returns:
//   - error: a *DuplicateLocationError if location is already taken
func (b *Builder) AddInstancesAttribute(location uint32, attr *InstancesAttribute) error {
	if err := b.checkLocation(location, attr.format); err != nil {
		return err
	}
	b.attributes = append(b.attributes, attribute{
		location: location,
		stepMode: wgpu.VertexStepModeInstance,
		format:   attr.format,
		shared:   attr,
	})
	return nil
}

// AddBindingSlot binds a resource at (slot.Group, slot.Binding). On error the
// builder is left unchanged.
//
// Parameters:
//   - slot: the slot and the resource bound to it
//
// Returns:
//   - error: a *DuplicateBindingError if the slot is already taken
func (b *Builder) AddBindingSlot(slot BindingSlot) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if slot.Resource == nil {
		return fmt.Errorf("group %d binding %d: nil resource", slot.Group, slot.Binding)
	}
	for _, s := range b.slots {
		if s.Group == slot.Group && s.Binding == slot.Binding {
			return &DuplicateBindingError{Group: slot.Group, Binding: slot.Binding}
		}
	}
	b.slots = append(b.slots, slot)
	return nil
}

// AddUniform binds a uniform buffer. See AddBindingSlot.
func (b *Builder) AddUniform(group, binding uint32, u Bindable) error {
	return b.AddBindingSlot(BindingSlot{Group: group, Binding: binding, Resource: u})
}

// AddStorageBuffer binds a read-only storage buffer. See AddBindingSlot.
func (b *Builder) AddStorageBuffer(group, binding uint32, s Bindable) error {
	return b.AddBindingSlot(BindingSlot{Group: group, Binding: binding, Resource: s})
}

// SetInstanceCount sets the number of instances drawn. The default is 1.
func (b *Builder) SetInstanceCount(n uint32) {
	b.instanceCount = n
}

// SetBlendOption enables blending on the color target. nil disables it.
func (b *Builder) SetBlendOption(blend *wgpu.BlendState) {
	b.blend = blend
}

func (b *Builder) checkLocation(location uint32, format wgpu.VertexFormat) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if _, ok := vertexFormatSizes[format]; !ok {
		return fmt.Errorf("unsupported vertex format %v at location %d", format, location)
	}
	for _, a := range b.attributes {
		if a.location == location {
			return &DuplicateLocationError{Location: location}
		}
	}
	return nil
}

// Build creates the pipeline, buffers and bind groups. Bind groups are laid
// out in ascending group order with entries sorted by binding; unused group
// indices below the highest one get an empty layout.
//
// Returns:
//   - Drawable: the drawable
//   - error: error if any GPU object could not be created; nothing is leaked
func (b *Builder) Build() (Drawable, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	b.built = true

	device := b.target.Device()
	d := &drawable{
		mu:            &sync.Mutex{},
		id:            uuid.NewString(),
		label:         b.config.label,
		device:        device,
		mode:          b.mode,
		instanceCount: b.instanceCount,
		blendColor:    wgpu.Color{R: 1, G: 1, B: 1, A: 1},
	}

	if err := b.build(device, d); err != nil {
		d.Release()
		b.config.log.Error("drawable build failed", "label", b.config.label, "error", err)
		return nil, err
	}
	b.config.log.Debug("drawable built",
		"label", d.label,
		"id", d.id,
		"attributes", len(b.attributes),
		"groups", len(d.bindGroups),
		"instances", d.instanceCount,
	)
	return d, nil
}

func (b *Builder) build(device gpu.Device, d *drawable) error {
	vsEntry, err := b.vertex.EntryPoint(shader.StageVertex)
	if err != nil {
		return err
	}
	fsEntry, err := b.fragment.EntryPoint(shader.StageFragment)
	if err != nil {
		return err
	}

	layouts := make([]wgpu.VertexBufferLayout, 0, len(b.attributes))
	for i, a := range b.attributes {
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: vertexFormatSizes[a.format],
			StepMode:    a.stepMode,
			Attributes: []wgpu.VertexAttribute{{
				Format:         a.format,
				Offset:         0,
				ShaderLocation: a.location,
			}},
		})

		if a.shared != nil {
			d.vertexBuffers = append(d.vertexBuffers, a.shared.buffer.Retain())
			continue
		}
		buf, err := gpu.NewSharedBufferInit(device, fmt.Sprintf("%s attribute %d", b.config.label, i), a.data, wgpu.BufferUsageVertex)
		if err != nil {
			return err
		}
		d.vertexBuffers = append(d.vertexBuffers, buf)
	}

	if idx, ok := b.mode.(Indexed); ok {
		buf, err := gpu.NewSharedBufferInit(device, b.config.label+" indices", idx.Data, wgpu.BufferUsageIndex)
		if err != nil {
			return err
		}
		d.indexBuffer = buf
	}

	if err := b.buildBindGroups(device, d); err != nil {
		return err
	}

	d.pipelineLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            b.config.label + " Pipeline Layout",
		BindGroupLayouts: d.bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	depthCompare := wgpu.CompareFunctionLessEqual
	if !b.config.depthTest {
		depthCompare = wgpu.CompareFunctionAlways
	}
	d.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  b.config.label + " Render Pipeline",
		Layout: d.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.vertex.Handle(),
			EntryPoint: vsEntry,
			Buffers:    layouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.fragment.Handle(),
			EntryPoint: fsEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    b.target.SurfaceFormat(),
				Blend:     b.blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  b.config.topology,
			FrontFace: b.config.frontFace,
			CullMode:  b.config.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: b.target.MultisampleCount(),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            b.target.DepthFormat(),
			DepthWriteEnabled: b.config.depthTest,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *Builder) buildBindGroups(device gpu.Device, d *drawable) error {
	if len(b.slots) == 0 {
		return nil
	}
	slots := slices.Clone(b.slots)
	slices.SortFunc(slots, func(x, y BindingSlot) int {
		return cmp.Or(cmp.Compare(x.Group, y.Group), cmp.Compare(x.Binding, y.Binding))
	})
	maxGroup := slots[len(slots)-1].Group

	for g := uint32(0); g <= maxGroup; g++ {
		var layoutEntries []wgpu.BindGroupLayoutEntry
		var groupEntries []wgpu.BindGroupEntry
		for _, s := range slots {
			if s.Group != g {
				continue
			}
			layoutEntries = append(layoutEntries, s.Resource.LayoutEntry(s.Binding))
			groupEntries = append(groupEntries, s.Resource.GroupEntry(s.Binding))
			if sb, ok := s.Resource.(sharedBindable); ok {
				d.boundBuffers = append(d.boundBuffers, sb.sharedBuffer().Retain())
			}
		}

		layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s Bind Group Layout %d", b.config.label, g),
			Entries: layoutEntries,
		})
		if err != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, err)
		}
		d.bindGroupLayouts = append(d.bindGroupLayouts, layout)

		group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", b.config.label, g),
			Layout:  layout,
			Entries: groupEntries,
		})
		if err != nil {
			return fmt.Errorf("failed to create bind group for group %d: %w", g, err)
		}
		d.bindGroups = append(d.bindGroups, group)
	}
	return nil
}
