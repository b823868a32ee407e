package loader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/engine/render_graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaration_Apply(t *testing.T) {
	decl, err := newScreenLoader().Load("testdata/frame.hcl")
	require.NoError(t, err)

	ran := false
	b := render_graph.NewRenderGraphBuilder()
	require.NoError(t, decl.Apply(b, map[string]render_graph.PassFunc{
		"PostPass": func(render_graph.PassContext) error { ran = true; return nil },
	}))
	assert.Equal(t, 5, b.PassCount())

	g, err := b.Build()
	require.NoError(t, err)

	for name, want := range map[string]int{
		"ShadowPass":    0,
		"LightCullPass": 0,
		"GeometryPass":  1,
		"BloomPass":     2,
		"PostPass":      3,
	} {
		level, ok := g.PassLevel(name)
		require.True(t, ok, name)
		assert.Equal(t, want, level, name)
	}

	assert.Nil(t, g.Body("ShadowPass"))
	require.NotNil(t, g.Body("PostPass"))
	require.NoError(t, g.Body("PostPass")(render_graph.PassContext{}))
	assert.True(t, ran)

	assert.Len(t, g.Lifetimes(), 4)
	assert.Less(t, g.TransientMemory(), g.UnaliasedMemory())
}

func TestDeclaration_ApplyErrors(t *testing.T) {
	t.Run("body for an undeclared pass", func(t *testing.T) {
		decl := Declaration{Name: "frame", Passes: []render_graph.Pass{render_graph.NewPass("A")}}
		err := decl.Apply(render_graph.NewRenderGraphBuilder(), map[string]render_graph.PassFunc{
			"B": func(render_graph.PassContext) error { return nil },
		})
		assert.ErrorIs(t, err, render_graph.ErrUnknownPass)
	})

	t.Run("duplicate pass blocks", func(t *testing.T) {
		decl, err := newScreenLoader().LoadReader("dup", strings.NewReader(`
pass "A" {}
pass "A" {}
`))
		require.NoError(t, err)
		err = decl.Apply(render_graph.NewRenderGraphBuilder(), nil)
		assert.ErrorIs(t, err, render_graph.ErrDuplicatePass)
	})

	t.Run("applied twice to one builder", func(t *testing.T) {
		decl, err := newScreenLoader().Load("testdata/frame.hcl")
		require.NoError(t, err)
		b := render_graph.NewRenderGraphBuilder()
		require.NoError(t, decl.Apply(b, nil))
		assert.Error(t, decl.Apply(b, nil))
	})
}

func TestDeclaration_MatchesProgrammaticGraph(t *testing.T) {
	decl, err := NewLoader(BackendTypeHCL).Load("testdata/scenario.hcl")
	require.NoError(t, err)

	fromFile := render_graph.NewRenderGraphBuilder()
	require.NoError(t, decl.Apply(fromFile, nil))
	loaded, err := fromFile.Build()
	require.NoError(t, err)

	inCode := render_graph.NewRenderGraphBuilder()
	for _, p := range []render_graph.Pass{
		render_graph.NewPass("ShadowPass", render_graph.WithOutputs("ShadowMap")),
		render_graph.NewPass("GeometryPass", render_graph.WithInputs("ShadowMap"), render_graph.WithOutputs("SceneColor", "SceneDepth")),
		render_graph.NewPass("PostPass", render_graph.WithInputs("SceneColor"), render_graph.WithOutputs("FinalImage")),
	} {
		require.NoError(t, inCode.AddPass(p, nil))
	}
	built, err := inCode.Build()
	require.NoError(t, err)

	assert.Equal(t, built.Passes(), loaded.Passes())
	assert.Equal(t, built.Levels(), loaded.Levels())
}
