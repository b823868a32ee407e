package render_graph

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ResourceKind identifies the kind of GPU object a transient resource describes.
type ResourceKind int

const (
	// ResourceKindBuffer describes a linear GPU buffer.
	ResourceKindBuffer ResourceKind = iota

	// ResourceKindTexture describes a GPU texture (render target, depth buffer, storage image).
	ResourceKindTexture
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindBuffer:
		return "buffer"
	case ResourceKindTexture:
		return "texture"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

// BufferResourceInfo sizes a transient buffer.
type BufferResourceInfo struct {
	// Size is the buffer size in bytes. A size of 0 is a valid zero-width marker.
	Size uint64
	// Usage is forwarded to the allocator when it creates the aliased buffer view.
	Usage wgpu.BufferUsage
}

// TextureResourceInfo sizes a transient texture.
type TextureResourceInfo struct {
	// Size is the texture extent. DepthOrArrayLayers of 0 is treated as 1.
	Size wgpu.Extent3D
	// Format determines the bytes per texel.
	Format wgpu.TextureFormat
	// Usage is forwarded to the allocator when it creates the aliased texture.
	Usage wgpu.TextureUsage
	// MipLevelCount is the number of mip levels; 0 is treated as 1.
	MipLevelCount uint32
	// SampleCount is the MSAA sample count; 0 is treated as 1.
	SampleCount uint32
}

// TransientResourceInfo is the sizing descriptor of a transient resource.
// Build it with NewBufferResource or NewTextureResource.
type TransientResourceInfo struct {
	Kind    ResourceKind
	Buffer  BufferResourceInfo
	Texture TextureResourceInfo
}

// Lifetime is the inclusive range of dependency levels over which a transient resource is live.
type Lifetime struct {
	// Begin is the level of the first pass that writes the resource.
	Begin int
	// End is the level of the last pass that reads the resource, or Begin if nothing reads it.
	End int
}

// Overlaps reports whether two lifetimes share at least one level.
//
// Parameters:
//   - other: the lifetime to compare against
//
// Returns:
//   - bool: true if the ranges intersect
func (l Lifetime) Overlaps(other Lifetime) bool {
	return l.Begin <= other.End && other.Begin <= l.End
}

// NewBufferResource creates the sizing descriptor of a transient buffer.
//
// Parameters:
//   - size: the buffer size in bytes
//   - usage: the wgpu buffer usage flags
//
// Returns:
//   - TransientResourceInfo: the buffer descriptor
func NewBufferResource(size uint64, usage wgpu.BufferUsage) TransientResourceInfo {
	return TransientResourceInfo{
		Kind:   ResourceKindBuffer,
		Buffer: BufferResourceInfo{Size: size, Usage: usage},
	}
}

// NewTextureResource creates the sizing descriptor of a transient texture.
//
// Parameters:
//   - size: the texture extent
//   - format: the texel format
//   - usage: the wgpu texture usage flags
//   - options: functional options for mip and sample counts
//
// Returns:
//   - TransientResourceInfo: the texture descriptor
func NewTextureResource(size wgpu.Extent3D, format wgpu.TextureFormat, usage wgpu.TextureUsage, options ...TextureResourceOption) TransientResourceInfo {
	t := TextureResourceInfo{
		Size:          size,
		Format:        format,
		Usage:         usage,
		MipLevelCount: 1,
		SampleCount:   1,
	}
	for _, option := range options {
		option(&t)
	}
	return TransientResourceInfo{Kind: ResourceKindTexture, Texture: t}
}

// ByteSize returns the number of bytes the resource occupies in a memory region.
// Textures are sized as the sum of all mip levels times layers, samples and bytes per texel.
// An unknown texture format or an empty texture extent is an error; no size is ever guessed.
//
// Returns:
//   - uint64: the size in bytes
//   - error: ErrInvalidResource if the descriptor cannot be sized
func (i TransientResourceInfo) ByteSize() (uint64, error) {
	switch i.Kind {
	case ResourceKindBuffer:
		return i.Buffer.Size, nil
	case ResourceKindTexture:
		return i.Texture.byteSize()
	default:
		return 0, fmt.Errorf("%w: unknown resource kind %d", ErrInvalidResource, int(i.Kind))
	}
}

func (t TextureResourceInfo) byteSize() (uint64, error) {
	texel, ok := bytesPerTexel[t.Format]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported texture format %v", ErrInvalidResource, t.Format)
	}
	if t.Size.Width == 0 || t.Size.Height == 0 {
		return 0, fmt.Errorf("%w: texture extent %dx%d is empty", ErrInvalidResource, t.Size.Width, t.Size.Height)
	}

	layers := uint64(max(t.Size.DepthOrArrayLayers, 1))
	samples := uint64(max(t.SampleCount, 1))
	mips := max(t.MipLevelCount, 1)

	var total uint64
	for m := range mips {
		w := uint64(max(t.Size.Width>>m, 1))
		h := uint64(max(t.Size.Height>>m, 1))
		total += w * h
	}
	return total * layers * samples * texel, nil
}

// bytesPerTexel covers the uncompressed formats usable as render targets or storage textures.
// Depth formats with implementation-defined layouts use their widest common footprint.
var bytesPerTexel = map[wgpu.TextureFormat]uint64{
	wgpu.TextureFormatR8Unorm:             1,
	wgpu.TextureFormatR8Uint:              1,
	wgpu.TextureFormatStencil8:            1,
	wgpu.TextureFormatRG8Unorm:            2,
	wgpu.TextureFormatR16Float:            2,
	wgpu.TextureFormatDepth16Unorm:        2,
	wgpu.TextureFormatRGBA8Unorm:          4,
	wgpu.TextureFormatRGBA8UnormSrgb:      4,
	wgpu.TextureFormatBGRA8Unorm:          4,
	wgpu.TextureFormatBGRA8UnormSrgb:      4,
	wgpu.TextureFormatRG16Float:           4,
	wgpu.TextureFormatR32Float:            4,
	wgpu.TextureFormatR32Uint:             4,
	wgpu.TextureFormatDepth24Plus:         4,
	wgpu.TextureFormatDepth24PlusStencil8: 4,
	wgpu.TextureFormatDepth32Float:        4,
	wgpu.TextureFormatRGBA16Float:         8,
	wgpu.TextureFormatRG32Float:           8,
	wgpu.TextureFormatRGBA32Float:         16,
	wgpu.TextureFormatRGBA32Uint:          16,
}

// textureFormatNames uses the WebGPU canonical spelling of each format.
var textureFormatNames = map[string]wgpu.TextureFormat{
	"r8unorm":              wgpu.TextureFormatR8Unorm,
	"r8uint":               wgpu.TextureFormatR8Uint,
	"stencil8":             wgpu.TextureFormatStencil8,
	"rg8unorm":             wgpu.TextureFormatRG8Unorm,
	"r16float":             wgpu.TextureFormatR16Float,
	"depth16unorm":         wgpu.TextureFormatDepth16Unorm,
	"rgba8unorm":           wgpu.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb":      wgpu.TextureFormatRGBA8UnormSrgb,
	"bgra8unorm":           wgpu.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb":      wgpu.TextureFormatBGRA8UnormSrgb,
	"rg16float":            wgpu.TextureFormatRG16Float,
	"r32float":             wgpu.TextureFormatR32Float,
	"r32uint":              wgpu.TextureFormatR32Uint,
	"depth24plus":          wgpu.TextureFormatDepth24Plus,
	"depth24plus-stencil8": wgpu.TextureFormatDepth24PlusStencil8,
	"depth32float":         wgpu.TextureFormatDepth32Float,
	"rgba16float":          wgpu.TextureFormatRGBA16Float,
	"rg32float":            wgpu.TextureFormatRG32Float,
	"rgba32float":          wgpu.TextureFormatRGBA32Float,
	"rgba32uint":           wgpu.TextureFormatRGBA32Uint,
}

var bufferUsageNames = map[string]wgpu.BufferUsage{
	"map_read":  wgpu.BufferUsageMapRead,
	"map_write": wgpu.BufferUsageMapWrite,
	"copy_src":  wgpu.BufferUsageCopySrc,
	"copy_dst":  wgpu.BufferUsageCopyDst,
	"index":     wgpu.BufferUsageIndex,
	"vertex":    wgpu.BufferUsageVertex,
	"uniform":   wgpu.BufferUsageUniform,
	"storage":   wgpu.BufferUsageStorage,
	"indirect":  wgpu.BufferUsageIndirect,
}

var textureUsageNames = map[string]wgpu.TextureUsage{
	"copy_src":          wgpu.TextureUsageCopySrc,
	"copy_dst":          wgpu.TextureUsageCopyDst,
	"texture_binding":   wgpu.TextureUsageTextureBinding,
	"storage_binding":   wgpu.TextureUsageStorageBinding,
	"render_attachment": wgpu.TextureUsageRenderAttachment,
}

// ParseTextureFormat maps a WebGPU format name such as "rgba16float" or "depth24plus-stencil8"
// to its wgpu constant. Matching is case-insensitive.
//
// Parameters:
//   - name: the format name
//
// Returns:
//   - wgpu.TextureFormat: the matching format
//   - error: ErrInvalidResource if the name is unknown
func ParseTextureFormat(name string) (wgpu.TextureFormat, error) {
	f, ok := textureFormatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown texture format %q", ErrInvalidResource, name)
	}
	return f, nil
}

// ParseBufferUsage combines buffer usage names such as "storage" or "copy_dst" into usage flags.
//
// Parameters:
//   - names: the usage names
//
// Returns:
//   - wgpu.BufferUsage: the combined flags
//   - error: ErrInvalidResource if any name is unknown
func ParseBufferUsage(names ...string) (wgpu.BufferUsage, error) {
	var usage wgpu.BufferUsage
	for _, name := range names {
		u, ok := bufferUsageNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w: unknown buffer usage %q", ErrInvalidResource, name)
		}
		usage |= u
	}
	return usage, nil
}

// ParseTextureUsage combines texture usage names such as "render_attachment" into usage flags.
//
// Parameters:
//   - names: the usage names
//
// Returns:
//   - wgpu.TextureUsage: the combined flags
//   - error: ErrInvalidResource if any name is unknown
func ParseTextureUsage(names ...string) (wgpu.TextureUsage, error) {
	var usage wgpu.TextureUsage
	for _, name := range names {
		u, ok := textureUsageNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w: unknown texture usage %q", ErrInvalidResource, name)
		}
		usage |= u
	}
	return usage, nil
}
