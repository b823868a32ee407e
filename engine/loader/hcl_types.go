package loader

// hclDeclarationFile represents the top-level structure of a declaration file for decoding.
type hclDeclarationFile struct {
	Passes   []*hclPass    `hcl:"pass,block"`
	Textures []*hclTexture `hcl:"transient_texture,block"`
	Buffers  []*hclBuffer  `hcl:"transient_buffer,block"`
}

// hclPass is a `pass "Name" { ... }` block.
type hclPass struct {
	Name             string   `hcl:"name,label"`
	Inputs           []string `hcl:"inputs,optional"`
	Outputs          []string `hcl:"outputs,optional"`
	TransientOutputs []string `hcl:"transient_outputs,optional"`
}

// hclTexture is a `transient_texture "Name" { ... }` block.
type hclTexture struct {
	Name       string   `hcl:"name,label"`
	Width      uint32   `hcl:"width"`
	Height     uint32   `hcl:"height"`
	Layers     *uint32  `hcl:"layers,optional"`
	Format     string   `hcl:"format"`
	Usage      []string `hcl:"usage,optional"`
	MipLevels  *uint32  `hcl:"mip_levels,optional"`
	SampleSize *uint32  `hcl:"samples,optional"`
}

// hclBuffer is a `transient_buffer "Name" { ... }` block.
type hclBuffer struct {
	Name  string   `hcl:"name,label"`
	Size  uint64   `hcl:"size"`
	Usage []string `hcl:"usage,optional"`
}
