package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/engine/render_graph"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclLoaderBackend decodes `pass`, `transient_texture` and `transient_buffer` blocks.
type hclLoaderBackend struct{}

var _ loaderBackend = &hclLoaderBackend{}

func newHCLLoaderBackend() *hclLoaderBackend {
	return &hclLoaderBackend{}
}

func (b *hclLoaderBackend) Load(path string, variables map[string]cty.Value) (Declaration, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Declaration{}, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.decode(name, file, variables)
}

func (b *hclLoaderBackend) LoadReader(name string, r io.Reader, variables map[string]cty.Value) (Declaration, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Declaration{}, fmt.Errorf("failed to read %q: %w", name, err)
	}
	file, diags := hclparse.NewParser().ParseHCL(src, name+".hcl")
	if diags.HasErrors() {
		return Declaration{}, fmt.Errorf("failed to parse HCL source %q: %w", name, diags)
	}
	return b.decode(name, file, variables)
}

// decode evaluates the file body against the variables and converts every block into its
// render_graph counterpart.
func (b *hclLoaderBackend) decode(name string, file *hcl.File, variables map[string]cty.Value) (Declaration, error) {
	var parsed hclDeclarationFile
	if diags := gohcl.DecodeBody(file.Body, newEvalContext(variables), &parsed); diags.HasErrors() {
		return Declaration{}, fmt.Errorf("failed to decode HCL declaration %q: %w", name, diags)
	}

	decl := Declaration{
		Name:      name,
		Passes:    make([]render_graph.Pass, 0, len(parsed.Passes)),
		Resources: make([]ResourceDeclaration, 0, len(parsed.Textures)+len(parsed.Buffers)),
	}

	for _, p := range parsed.Passes {
		decl.Passes = append(decl.Passes, render_graph.NewPass(p.Name,
			render_graph.WithInputs(p.Inputs...),
			render_graph.WithOutputs(p.Outputs...),
			render_graph.WithTransientOutputs(p.TransientOutputs...),
		))
	}

	for _, t := range parsed.Textures {
		info, err := t.resourceInfo()
		if err != nil {
			return Declaration{}, fmt.Errorf("transient_texture %q: %w", t.Name, err)
		}
		decl.Resources = append(decl.Resources, ResourceDeclaration{Name: t.Name, Info: info})
	}

	for _, buf := range parsed.Buffers {
		usage, err := render_graph.ParseBufferUsage(buf.Usage...)
		if err != nil {
			return Declaration{}, fmt.Errorf("transient_buffer %q: %w", buf.Name, err)
		}
		decl.Resources = append(decl.Resources, ResourceDeclaration{
			Name: buf.Name,
			Info: render_graph.NewBufferResource(buf.Size, usage),
		})
	}

	return decl, nil
}

func (t *hclTexture) resourceInfo() (render_graph.TransientResourceInfo, error) {
	format, err := render_graph.ParseTextureFormat(t.Format)
	if err != nil {
		return render_graph.TransientResourceInfo{}, err
	}
	usage, err := render_graph.ParseTextureUsage(t.Usage...)
	if err != nil {
		return render_graph.TransientResourceInfo{}, err
	}

	var options []render_graph.TextureResourceOption
	if t.MipLevels != nil {
		options = append(options, render_graph.WithMipLevelCount(*t.MipLevels))
	}
	if t.SampleSize != nil {
		options = append(options, render_graph.WithSampleCount(*t.SampleSize))
	}

	layers := uint32(1)
	if t.Layers != nil {
		layers = *t.Layers
	}

	return render_graph.NewTextureResource(
		wgpu.Extent3D{Width: t.Width, Height: t.Height, DepthOrArrayLayers: layers},
		format,
		usage,
		options...,
	), nil
}

// newEvalContext exposes the loader variables and a small set of numeric functions to expressions.
func newEvalContext(variables map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: variables,
		Functions: map[string]function.Function{
			"max":   stdlib.MaxFunc,
			"min":   stdlib.MinFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
		},
	}
}
