package render_graph

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// frameScenario is the shadow → geometry → post chain used throughout the tests.
func frameScenario() []Pass {
	return []Pass{
		NewPass("ShadowPass", WithOutputs("ShadowMap")),
		NewPass("GeometryPass", WithInputs("ShadowMap"), WithOutputs("SceneColor", "SceneDepth")),
		NewPass("PostPass", WithInputs("SceneColor"), WithOutputs("FinalImage")),
	}
}

// newBuilder registers passes without bodies.
func newBuilder(t *testing.T, passes []Pass, options ...RenderGraphBuilderOption) RenderGraphBuilder {
	t.Helper()
	b := NewRenderGraphBuilder(options...)
	for _, p := range passes {
		require.NoError(t, b.AddPass(p, nil))
	}
	return b
}

// randomDAG generates n passes where pass i writes "r<i>" and reads a random subset of the
// resources written by lower-numbered passes, then shuffles the declaration order.
func randomDAG(rng *rand.Rand, n int) []Pass {
	passes := make([]Pass, n)
	for i := range n {
		var inputs []string
		for j := range i {
			if rng.IntN(4) == 0 {
				inputs = append(inputs, fmt.Sprintf("r%d", j))
			}
		}
		passes[i] = NewPass(fmt.Sprintf("pass%d", i), WithInputs(inputs...), WithOutputs(fmt.Sprintf("r%d", i)))
	}
	rng.Shuffle(len(passes), func(a, b int) { passes[a], passes[b] = passes[b], passes[a] })
	return passes
}

// names maps execution-order positions to pass names.
func names(passes []Pass) []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = p.Name
	}
	return out
}
