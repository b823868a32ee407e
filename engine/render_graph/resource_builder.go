package render_graph

// TextureResourceOption is a functional option for NewTextureResource.
type TextureResourceOption func(t *TextureResourceInfo)

// WithMipLevelCount sets the number of mip levels of a transient texture.
//
// Parameters:
//   - count: the mip level count (values below 1 are treated as 1)
//
// Returns:
//   - TextureResourceOption: option function to apply
func WithMipLevelCount(count uint32) TextureResourceOption {
	return func(t *TextureResourceInfo) {
		t.MipLevelCount = max(count, 1)
	}
}

// WithSampleCount sets the MSAA sample count of a transient texture.
//
// Parameters:
//   - count: the sample count (values below 1 are treated as 1)
//
// Returns:
//   - TextureResourceOption: option function to apply
func WithSampleCount(count uint32) TextureResourceOption {
	return func(t *TextureResourceInfo) {
		t.SampleCount = max(count, 1)
	}
}
